package services

import (
	"errors"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// Authorizer resolves ownership and effective privileges for a user inside a
// game. Ownership is derived: the game's creator always has full privileges,
// with or without an explicit membership row.
type Authorizer struct {
	store store.Store
}

func NewAuthorizer(s store.Store) *Authorizer {
	return &Authorizer{store: s}
}

// IsOwner reports whether the user created the game or holds a membership row
// flagged as owner. A missing game is simply not owned.
func (a *Authorizer) IsOwner(userID, gameID uint) (bool, error) {
	game, err := a.store.GameByID(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if game.CreatedByUserID == userID {
		return true, nil
	}
	role, err := a.store.Membership(gameID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role.IsOwner, nil
}

// PrivilegesOf returns the user's effective privilege set for the game: the
// full set for owners, the stored membership set for players, and the empty
// set for non-members.
func (a *Authorizer) PrivilegesOf(userID, gameID uint) (models.Privilege, error) {
	isOwner, err := a.IsOwner(userID, gameID)
	if err != nil {
		return models.PrivilegeNone, err
	}
	if isOwner {
		return models.OwnerPrivileges, nil
	}
	role, err := a.store.Membership(gameID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.PrivilegeNone, nil
	}
	if err != nil {
		return models.PrivilegeNone, err
	}
	return role.Privileges, nil
}

// AuthorizedGame returns the game if the user is its creator or a member.
// Non-members get ErrNotFound: the game's existence is hidden from them.
func (a *Authorizer) AuthorizedGame(userID, gameID uint) (*models.Game, error) {
	game, err := a.store.GameByID(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if game.CreatedByUserID == userID {
		return game, nil
	}
	if _, err := a.store.Membership(gameID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return game, nil
}

// OwnedGame returns the game only if the user is an owner; anyone else,
// member or not, gets ErrNotFound.
func (a *Authorizer) OwnedGame(userID, gameID uint) (*models.Game, error) {
	game, err := a.store.GameByID(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	isOwner, err := a.IsOwner(userID, gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, ErrNotFound
	}
	return game, nil
}

// actorName resolves a user's display name for history log details.
func (a *Authorizer) actorName(userID uint) string {
	user, err := a.store.UserByID(userID)
	if err != nil || user.Name == "" {
		return "Unknown user"
	}
	return user.Name
}
