package models

import "time"

type Game struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name" validate:"required,max=100"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedByUserID uint      `gorm:"not null" json:"createdByUserId"`
	CreatedByUser   *User     `gorm:"foreignKey:CreatedByUserID" json:"createdByUser,omitempty"`
	JoinCode        string    `gorm:"uniqueIndex:uniq_games_join_code,where:join_code <> ''" json:"joinCode,omitempty"`
	JoinCodeActive  bool      `json:"joinCodeActive"`
}

// GameInput - create/update payload for a game
type GameInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// JoinGameInput - payload for joining a game by invite code
type JoinGameInput struct {
	JoinCode string `json:"joinCode" validate:"required"`
}
