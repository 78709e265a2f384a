package models

type Category struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null" json:"name" validate:"required,max=80"`
	GameID          uint   `gorm:"not null" json:"gameId"`
	Game            *Game  `gorm:"foreignKey:GameID" json:"game,omitempty"`
	CreatedByUserID uint   `json:"createdByUserId"`
	CreatedByUser   *User  `gorm:"foreignKey:CreatedByUserID" json:"createdByUser,omitempty"`
}

// CategoryInput - create/update payload for a category
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=80"`
}
