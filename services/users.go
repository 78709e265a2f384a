package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// UserService handles registration, login checks, and profile edits.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// Register creates an account. Email and username collisions come back as
// field-level validation errors.
func (s *UserService) Register(input models.RegisterInput) (*models.User, error) {
	if _, err := s.store.UserByEmail(input.Email); err == nil {
		return nil, &ValidationError{Field: "email", Message: "This email address is already registered!"}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	taken, err := s.store.UserNameTaken(input.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ValidationError{Field: "name", Message: "Username already exists!"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, &ValidationError{Field: "email", Message: "This email address is already registered!"}
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks login credentials. Every failure maps to the same
// error so account existence cannot be probed.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.UserByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get loads one user by id.
func (s *UserService) Get(userID uint) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateProfile edits name, email, and optionally the password. Changing the
// password requires the current one.
func (s *UserService) UpdateProfile(userID uint, input models.UpdateProfileInput) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if input.Email != user.Email {
		if _, err := s.store.UserByEmail(input.Email); err == nil {
			return nil, &ValidationError{Field: "email", Message: "This email address is already registered!"}
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	if input.Name != user.Name {
		taken, err := s.store.UserNameTaken(input.Name, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ValidationError{Field: "name", Message: "Username already exists!"}
		}
	}
	if input.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
			return nil, &ValidationError{Field: "currentPassword", Message: "Current password is incorrect."}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.Name = input.Name
	user.Email = input.Email
	if err := s.store.UpdateUser(user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, &ValidationError{Field: "email", Message: "This email address is already registered!"}
		}
		return nil, err
	}
	return user, nil
}
