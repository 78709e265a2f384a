package services

import (
	"errors"
	"testing"

	"campaignkeeper/models"
)

func TestCreatorIsOwnerWithoutMembershipRow(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")

	// drop the explicit membership; the creator column alone must suffice
	if err := e.store.DeleteMembership(g.ID, alice.ID); err != nil {
		t.Fatalf("delete membership: %v", err)
	}

	isOwner, err := e.authz.IsOwner(alice.ID, g.ID)
	if err != nil {
		t.Fatalf("IsOwner: %v", err)
	}
	if !isOwner {
		t.Error("creator should be owner without a membership row")
	}

	privileges, err := e.authz.PrivilegesOf(alice.ID, g.ID)
	if err != nil {
		t.Fatalf("PrivilegesOf: %v", err)
	}
	if privileges != models.OwnerPrivileges {
		t.Errorf("creator privileges = %v, want full set", privileges)
	}
}

func TestMemberIsNotOwner(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	isOwner, err := e.authz.IsOwner(bob.ID, g.ID)
	if err != nil {
		t.Fatalf("IsOwner: %v", err)
	}
	if isOwner {
		t.Error("player should not be owner")
	}

	privileges, err := e.authz.PrivilegesOf(bob.ID, g.ID)
	if err != nil {
		t.Fatalf("PrivilegesOf: %v", err)
	}
	if privileges != models.PlayerPrivileges {
		t.Errorf("player privileges = %v, want player preset", privileges)
	}
}

func TestNonMemberPrivilegesEmpty(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	mallory := e.user(t, "mallory")
	g := e.game(t, alice, "Stormreach")

	privileges, err := e.authz.PrivilegesOf(mallory.ID, g.ID)
	if err != nil {
		t.Fatalf("PrivilegesOf: %v", err)
	}
	if privileges != models.PrivilegeNone {
		t.Errorf("non-member privileges = %v, want none", privileges)
	}
}

func TestAuthorizedGameHidesExistence(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	mallory := e.user(t, "mallory")
	g := e.game(t, alice, "Stormreach")

	if _, err := e.authz.AuthorizedGame(mallory.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-member access = %v, want ErrNotFound", err)
	}
	if _, err := e.authz.AuthorizedGame(mallory.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing game = %v, want ErrNotFound", err)
	}
}

func TestOwnedGameRejectsPlainMember(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	if _, err := e.authz.OwnedGame(bob.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("member owner access = %v, want ErrNotFound", err)
	}
	if _, err := e.authz.OwnedGame(alice.ID, g.ID); err != nil {
		t.Errorf("creator owner access: %v", err)
	}
}

func TestCoOwnerMembershipGrantsOwnership(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")

	role := &models.UserGameRole{GameID: g.ID, UserID: bob.ID, IsOwner: true, Privileges: models.OwnerPrivileges}
	if err := e.store.CreateMembership(role); err != nil {
		t.Fatalf("create membership: %v", err)
	}

	isOwner, err := e.authz.IsOwner(bob.ID, g.ID)
	if err != nil {
		t.Fatalf("IsOwner: %v", err)
	}
	if !isOwner {
		t.Error("owner-flagged membership should grant ownership")
	}
}
