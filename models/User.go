package models

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email" validate:"required,email"`
	Name         string `gorm:"unique;not null" json:"name" validate:"required,min=3,max=50"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// LoginInput - credentials posted to /login
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput - payload posted to /users
type RegisterInput struct {
	Name     string `json:"name" form:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=128"`
}

// UpdateProfileInput - profile edits; password change requires the current one
type UpdateProfileInput struct {
	Name            string `json:"name" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=8,max=128"`
}
