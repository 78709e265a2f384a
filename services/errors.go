package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both genuinely missing entities and entities hidden from
// the requesting user; callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrForbidden means the entity exists and is visible, but the acting user
// lacks the required privilege.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned on any login failure; the message never
// reveals whether the email exists.
var ErrInvalidCredentials = errors.New("incorrect email address or password")

// ErrInvalidJoinCode is the single error for every join failure caused by the
// code itself - unknown, blank, or deactivated - so valid-but-inactive codes
// cannot be probed.
var ErrInvalidJoinCode = errors.New("join code is invalid or deactivated")

// ErrAlreadyMember rejects joining a game the user created or already joined.
var ErrAlreadyMember = errors.New("you are already part of this game")

// ErrTransient signals a storage-layer failure unrelated to business rules;
// the caller may retry.
var ErrTransient = errors.New("temporary failure, please try again")

// ValidationError carries a field-level input problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ref(id uint) *uint {
	return &id
}
