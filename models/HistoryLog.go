package models

import "time"

// History log action codes.
const (
	ActionGameCreated            = "GameCreated"
	ActionGameEdited             = "GameEdited"
	ActionCharacterCreated       = "CharacterCreated"
	ActionCharacterEdited        = "CharacterEdited"
	ActionCharacterDeleted       = "CharacterDeleted"
	ActionCharacterAssignedOwner = "CharacterAssignedOwner"
	ActionItemCreated            = "ItemCreated"
	ActionItemEdited             = "ItemEdited"
	ActionItemDeleted            = "ItemDeleted"
	ActionItemAssigned           = "ItemAssigned"
	ActionItemRemoved            = "ItemRemoved"
	ActionCategoryCreated        = "CategoryCreated"
	ActionCategoryEdited         = "CategoryEdited"
	ActionCategoryDeleted        = "CategoryDeleted"
	ActionUserAdded              = "UserAdded"
	ActionUserRemoved            = "UserRemoved"
)

// HistoryLog is an append-only audit record. Rows are never edited; they are
// only removed when their game (or referenced character) is deleted.
type HistoryLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GameID      uint      `gorm:"not null;index" json:"gameId"`
	Game        *Game     `gorm:"foreignKey:GameID" json:"-"`
	ItemID      *uint     `json:"itemId,omitempty"`
	CharacterID *uint     `json:"characterId,omitempty"`
	CategoryID  *uint     `json:"categoryId,omitempty"`
	UserID      uint      `gorm:"not null" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action      string    `gorm:"not null;size:40" json:"action"`
	Details     string    `json:"details"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}
