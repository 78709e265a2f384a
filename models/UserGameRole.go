package models

// UserGameRole links a user to a game they are a member of. The game creator
// is an owner even without a row here; see services.Authorizer.
type UserGameRole struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"not null;uniqueIndex:uniq_user_game" json:"gameId"`
	Game       *Game     `gorm:"foreignKey:GameID" json:"game,omitempty"`
	UserID     uint      `gorm:"not null;uniqueIndex:uniq_user_game" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IsOwner    bool      `json:"isOwner"`
	Privileges Privilege `json:"privileges"`
}

// EditPrivilegesInput - new privilege selection for a player
type EditPrivilegesInput struct {
	UserID     uint     `json:"userId" validate:"required,gte=1"`
	Privileges []string `json:"privileges"`
}
