package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"campaignkeeper/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	e := newEnv(t)

	user, err := e.users.Register(models.RegisterInput{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "Password123!" {
		t.Fatal("password stored in plain text")
	}

	got, err := e.users.Authenticate("alice@example.com", "Password123!")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated user %d, want %d", got.ID, user.ID)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	e := newEnv(t)
	e.user(t, "alice")

	_, err := e.users.Register(models.RegisterInput{
		Name:     "someone",
		Email:    "alice@example.com",
		Password: "Password123!",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Errorf("duplicate email = %v, want email validation error", err)
	}

	_, err = e.users.Register(models.RegisterInput{
		Name:     "alice",
		Email:    "other@example.com",
		Password: "Password123!",
	})
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("duplicate name = %v, want name validation error", err)
	}
}

func TestAuthenticateFailuresLookAlike(t *testing.T) {
	e := newEnv(t)
	if _, err := e.users.Register(models.RegisterInput{
		Name: "alice", Email: "alice@example.com", Password: "Password123!",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := e.users.Authenticate("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := e.users.Authenticate("nobody@example.com", "Password123!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfilePasswordChangeNeedsCurrent(t *testing.T) {
	e := newEnv(t)
	user, err := e.users.Register(models.RegisterInput{
		Name: "alice", Email: "alice@example.com", Password: "Password123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = e.users.UpdateProfile(user.ID, models.UpdateProfileInput{
		Name:            "alice",
		Email:           "alice@example.com",
		CurrentPassword: "wrong",
		NewPassword:     "Swordfish1!",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "currentPassword" {
		t.Fatalf("wrong current password = %v, want currentPassword validation error", err)
	}

	updated, err := e.users.UpdateProfile(user.ID, models.UpdateProfileInput{
		Name:            "alicia",
		Email:           "alicia@example.com",
		CurrentPassword: "Password123!",
		NewPassword:     "Swordfish1!",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "alicia" || updated.Email != "alicia@example.com" {
		t.Errorf("profile = %s %s", updated.Name, updated.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("Swordfish1!")) != nil {
		t.Error("new password does not verify")
	}
}

func TestUpdateProfileRejectsTakenIdentity(t *testing.T) {
	e := newEnv(t)
	e.user(t, "alice")
	bob, err := e.users.Register(models.RegisterInput{
		Name: "bob", Email: "bob@example.com", Password: "Swordfish1!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = e.users.UpdateProfile(bob.ID, models.UpdateProfileInput{
		Name:  "bob",
		Email: "alice@example.com",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Errorf("taken email = %v, want email validation error", err)
	}

	_, err = e.users.UpdateProfile(bob.ID, models.UpdateProfileInput{
		Name:  "alice",
		Email: "bob@example.com",
	})
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("taken name = %v, want name validation error", err)
	}

	// keeping your own identity is fine
	if _, err := e.users.UpdateProfile(bob.ID, models.UpdateProfileInput{
		Name:  "bob",
		Email: "bob@example.com",
	}); err != nil {
		t.Errorf("no-op update = %v", err)
	}
}
