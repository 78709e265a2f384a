package models

// ItemCharacter is a character inventory entry. A character holds at most one
// entry per item; quantity changes update the row in place.
type ItemCharacter struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ItemID      uint       `gorm:"not null;uniqueIndex:uniq_character_item" json:"itemId"`
	Item        *Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	CharacterID uint       `gorm:"not null;uniqueIndex:uniq_character_item" json:"characterId"`
	Character   *Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
	Quantity    int        `gorm:"default:1" json:"quantity"`
	// True = equipped/with character; false = stored (stash, chest, etc.)
	IsEquipped bool `json:"isEquipped"`
}

// AssignItemInput - one item selection on the assign-items form
type AssignItemInput struct {
	ItemID     uint `json:"itemId" validate:"required,gte=1"`
	Quantity   int  `json:"quantity"`
	IsEquipped bool `json:"isEquipped"`
}

// InventoryUpdateRow - one row of a bulk inventory update
type InventoryUpdateRow struct {
	EntryID    uint `json:"entryId" validate:"required,gte=1"`
	Quantity   int  `json:"quantity"`
	IsEquipped bool `json:"isEquipped"`
}
