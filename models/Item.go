package models

type Item struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name" validate:"required,max=120"`
	Description       string    `json:"description"`
	PhotoURL          string    `json:"photoUrl" validate:"max=2000"`
	ViewableToPlayers bool      `gorm:"default:true" json:"viewableToPlayers"`
	GameID            uint      `gorm:"not null" json:"gameId"`
	Game              *Game     `gorm:"foreignKey:GameID" json:"game,omitempty"`
	CreatedByUserID   uint      `gorm:"not null" json:"createdByUserId"`
	CreatedByUser     *User     `gorm:"foreignKey:CreatedByUserID" json:"createdByUser,omitempty"`
	CategoryID        *uint     `json:"categoryId"`
	Category          *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// ItemInput - create/update payload for an item
type ItemInput struct {
	Name              string `json:"name" validate:"required,max=120"`
	Description       string `json:"description"`
	PhotoURL          string `json:"photoUrl" validate:"max=2000"`
	CategoryID        *uint  `json:"categoryId"`
	ViewableToPlayers bool   `json:"viewableToPlayers"`
}
