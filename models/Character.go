package models

type Character struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"not null" json:"name" validate:"required,max=100"`
	Description       string `json:"description" validate:"max=2000"`
	PhotoURL          string `json:"photoUrl" validate:"max=2000"`
	ViewableToPlayers bool   `gorm:"default:true" json:"viewableToPlayers"`
	GameID            uint   `gorm:"not null" json:"gameId"`
	Game              *Game  `gorm:"foreignKey:GameID" json:"game,omitempty"`
	CreatedByUserID   uint   `gorm:"not null" json:"createdByUserId"`
	CreatedByUser     *User  `gorm:"foreignKey:CreatedByUserID" json:"createdByUser,omitempty"`
	OwnerUserID       uint   `json:"ownerUserId"`
	Owner             *User  `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
}

// CharacterInput - create/update payload for a character
type CharacterInput struct {
	Name              string `json:"name" validate:"required,max=100"`
	Description       string `json:"description" validate:"max=2000"`
	PhotoURL          string `json:"photoUrl" validate:"max=2000"`
	OwnerUserID       uint   `json:"ownerUserId" validate:"required,gte=1"`
	ViewableToPlayers bool   `json:"viewableToPlayers"`
}
