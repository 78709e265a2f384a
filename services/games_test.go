package services

import (
	"errors"
	"testing"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

func TestCreateGameMakesOwnerMembership(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")

	role, err := e.store.Membership(g.ID, alice.ID)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	if !role.IsOwner || role.Privileges != models.OwnerPrivileges {
		t.Errorf("creator membership = owner %v privileges %v", role.IsOwner, role.Privileges)
	}
	if n := e.countAction(t, g.ID, models.ActionGameCreated); n != 1 {
		t.Errorf("GameCreated entries = %d, want 1", n)
	}
}

func TestGamePagePreviews(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")

	for _, name := range []string{"Aria", "Bram", "Celeste", "Dara", "Ewan"} {
		e.character(t, g, alice, name)
	}
	for _, name := range []string{"Longsword", "Shield"} {
		e.item(t, g, alice, name)
	}

	details, err := e.games.Get(alice.ID, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if details.CharacterCount != 5 || len(details.Characters) != 3 {
		t.Errorf("characters: count %d preview %d, want 5 and 3", details.CharacterCount, len(details.Characters))
	}
	if details.ItemCount != 2 || len(details.Items) != 2 {
		t.Errorf("items: count %d preview %d, want 2 and 2", details.ItemCount, len(details.Items))
	}
	if !details.IsOwner {
		t.Error("creator should be reported as owner")
	}
	if len(details.History) == 0 {
		t.Error("history sidebar should not be empty")
	}
}

func TestGamePageHidesInvisibleContentFromPlayers(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	visible, err := e.characters.Create(alice.ID, g.ID, models.CharacterInput{Name: "Aria", OwnerUserID: alice.ID, ViewableToPlayers: true})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	if _, err := e.characters.Create(alice.ID, g.ID, models.CharacterInput{Name: "Secret NPC", OwnerUserID: alice.ID, ViewableToPlayers: false}); err != nil {
		t.Fatalf("create character: %v", err)
	}

	details, err := e.games.Get(bob.ID, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if details.CharacterCount != 1 {
		t.Fatalf("player sees %d characters, want 1", details.CharacterCount)
	}
	if details.Characters[0].ID != visible.ID {
		t.Errorf("player sees %q", details.Characters[0].Name)
	}
	if details.IsOwner {
		t.Error("player should not be reported as owner")
	}
}

func TestDeleteGameCreatorOnly(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")

	// co-owner, but not the creator
	role := &models.UserGameRole{GameID: g.ID, UserID: bob.ID, IsOwner: true, Privileges: models.OwnerPrivileges}
	if err := e.store.CreateMembership(role); err != nil {
		t.Fatalf("create membership: %v", err)
	}

	if err := e.games.Delete(bob.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("co-owner delete = %v, want ErrNotFound", err)
	}
	if err := e.games.Delete(alice.ID, g.ID); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
}

func TestDeleteGameCascades(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")
	ch := e.character(t, g, alice, "Aria")
	it := e.item(t, g, alice, "Longsword")
	if err := e.inventory.Assign(alice.ID, ch.ID, it.ID, 1, false); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := e.games.Delete(alice.ID, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := e.store.GameByID(g.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("game row survived deletion")
	}
	if _, err := e.store.CharacterByID(ch.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("character survived deletion")
	}
	if _, err := e.store.ItemByID(it.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("item survived deletion")
	}
	if entries, _ := e.store.RecentHistory(g.ID, 10); len(entries) != 0 {
		t.Errorf("history survived deletion: %d entries", len(entries))
	}
	if _, err := e.store.Membership(g.ID, alice.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("membership survived deletion")
	}
}

func TestKickPlayerCreatorProtection(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	message, err := e.games.KickPlayer(alice.ID, g.ID, alice.ID)
	if err != nil {
		t.Fatalf("KickPlayer: %v", err)
	}
	if message != "You cannot remove the game owner." {
		t.Errorf("message = %q", message)
	}
	// the creator's membership is untouched
	if _, err := e.store.Membership(g.ID, alice.ID); err != nil {
		t.Error("creator membership should survive")
	}

	message, err = e.games.KickPlayer(alice.ID, g.ID, bob.ID)
	if err != nil {
		t.Fatalf("KickPlayer: %v", err)
	}
	if message != "Player removed." {
		t.Errorf("message = %q", message)
	}
	if _, err := e.store.Membership(g.ID, bob.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("kicked player still has a membership")
	}
	if n := e.countAction(t, g.ID, models.ActionUserRemoved); n != 1 {
		t.Errorf("UserRemoved entries = %d, want 1", n)
	}
}

func TestEditPrivileges(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	// creator protection mirrors the kick behavior
	message, err := e.games.EditPrivileges(alice.ID, g.ID, alice.ID, []string{"ViewItems"})
	if err != nil {
		t.Fatalf("EditPrivileges: %v", err)
	}
	if message != "You cannot change privileges for the game owner." {
		t.Errorf("message = %q", message)
	}

	_, err = e.games.EditPrivileges(alice.ID, g.ID, bob.ID, []string{"ViewItems", "ViewCharacters", "NoSuchFlag"})
	if err != nil {
		t.Fatalf("EditPrivileges: %v", err)
	}
	role, err := e.store.Membership(g.ID, bob.ID)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	want := models.PrivilegeViewItems | models.PrivilegeViewCharacters
	if role.Privileges != want {
		t.Errorf("privileges = %v, want %v", role.Privileges, want)
	}
}

func TestPlayersRosterOwnerOnly(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	if _, err := e.games.Players(bob.ID, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("player roster access = %v, want ErrNotFound", err)
	}

	roster, err := e.games.Players(alice.ID, g.ID)
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if len(roster.Players) != 2 {
		t.Fatalf("roster size = %d, want 2", len(roster.Players))
	}
	if len(roster.AllPrivileges) != 20 {
		t.Errorf("grantable privileges = %d, want 20", len(roster.AllPrivileges))
	}
}
