package services

import (
	"errors"
	"testing"

	"campaignkeeper/models"
)

func TestAssignCreatesSingleEntryPerItem(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")
	ch := e.character(t, g, alice, "Aria")
	sword := e.item(t, g, alice, "Longsword")

	if err := e.inventory.Assign(alice.ID, ch.ID, sword.ID, 1, true); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	// assigning the same item again must update the row, not add another
	if err := e.inventory.Assign(alice.ID, ch.ID, sword.ID, 3, false); err != nil {
		t.Fatalf("second assign: %v", err)
	}

	entries, err := e.store.InventoryForCharacter(ch.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Quantity != 3 || entries[0].IsEquipped {
		t.Errorf("entry = qty %d equipped %v, want qty 3 unequipped", entries[0].Quantity, entries[0].IsEquipped)
	}

	if n := e.countAction(t, g.ID, models.ActionItemAssigned); n != 1 {
		t.Errorf("ItemAssigned entries = %d, want 1", n)
	}
	if n := e.countAction(t, g.ID, models.ActionItemEdited); n != 1 {
		t.Errorf("ItemEdited entries = %d, want 1", n)
	}
}

func TestAssignClampsQuantity(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")
	ch := e.character(t, g, alice, "Aria")
	sword := e.item(t, g, alice, "Longsword")

	for _, qty := range []int{0, -5} {
		if err := e.inventory.Assign(alice.ID, ch.ID, sword.ID, qty, false); err != nil {
			t.Fatalf("assign qty %d: %v", qty, err)
		}
		entries, err := e.store.InventoryForCharacter(ch.ID)
		if err != nil {
			t.Fatalf("inventory: %v", err)
		}
		if entries[0].Quantity != 1 {
			t.Errorf("qty %d clamped to %d, want 1", qty, entries[0].Quantity)
		}
	}
}

func TestAssignIdempotentSkipsHistory(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")
	ch := e.character(t, g, alice, "Aria")
	sword := e.item(t, g, alice, "Longsword")

	if err := e.inventory.Assign(alice.ID, ch.ID, sword.ID, 2, true); err != nil {
		t.Fatalf("assign: %v", err)
	}
	before := len(e.historyFor(t, g.ID))

	// identical values: no observable change, no audit entry
	if err := e.inventory.Assign(alice.ID, ch.ID, sword.ID, 2, true); err != nil {
		t.Fatalf("repeat assign: %v", err)
	}
	after := len(e.historyFor(t, g.ID))
	if after != before {
		t.Errorf("history grew from %d to %d on a no-op", before, after)
	}
}

func TestAssignRejectsCrossGameItem(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g1 := e.game(t, alice, "Stormreach")
	g2 := e.game(t, alice, "Duskhaven")
	ch := e.character(t, g1, alice, "Aria")
	foreign := e.item(t, g2, alice, "Battleaxe")

	err := e.inventory.Assign(alice.ID, ch.ID, foreign.ID, 1, false)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("cross-game assign = %v, want ValidationError", err)
	}
}

func TestAssignManySkipsInvalidRows(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g1 := e.game(t, alice, "Stormreach")
	g2 := e.game(t, alice, "Duskhaven")
	ch := e.character(t, g1, alice, "Aria")
	sword := e.item(t, g1, alice, "Longsword")
	foreign := e.item(t, g2, alice, "Battleaxe")

	rows := []models.AssignItemInput{
		{ItemID: sword.ID, Quantity: 2},
		{ItemID: foreign.ID, Quantity: 1}, // other game, skipped
		{ItemID: 9999, Quantity: 1},       // unknown, skipped
	}
	if err := e.inventory.AssignMany(alice.ID, ch.ID, rows); err != nil {
		t.Fatalf("AssignMany: %v", err)
	}

	entries, err := e.store.InventoryForCharacter(ch.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemID != sword.ID {
		t.Fatalf("entries = %+v, want only the sword", entries)
	}
}

func TestInventoryPrivilegeRules(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	carol := e.user(t, "carol")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)
	e.join(t, g, carol)

	aria := e.character(t, g, alice, "Aria")
	sword := e.item(t, g, alice, "Longsword")

	// bob has the privilege but no tie to alice's character
	if err := e.inventory.Assign(bob.ID, aria.ID, sword.ID, 1, false); !errors.Is(err, ErrForbidden) {
		t.Errorf("unrelated member assign = %v, want ErrForbidden", err)
	}

	// bob's own character is fine
	brom, err := e.characters.Create(bob.ID, g.ID, models.CharacterInput{Name: "Brom", OwnerUserID: bob.ID})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	if err := e.inventory.Assign(bob.ID, brom.ID, sword.ID, 1, false); err != nil {
		t.Errorf("own character assign: %v", err)
	}

	// a member with the privilege stripped is refused even on their own character
	role, err := e.store.Membership(g.ID, carol.ID)
	if err != nil {
		t.Fatalf("membership: %v", err)
	}
	role.Privileges &^= models.PrivilegeAddItemsToCharacters
	if err := e.store.UpdateMembership(role); err != nil {
		t.Fatalf("update membership: %v", err)
	}
	cara, err := e.characters.Create(carol.ID, g.ID, models.CharacterInput{Name: "Cara", OwnerUserID: carol.ID})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	if err := e.inventory.Assign(carol.ID, cara.ID, sword.ID, 1, false); !errors.Is(err, ErrForbidden) {
		t.Errorf("stripped privilege assign = %v, want ErrForbidden", err)
	}
}

func TestUpdateBulkSkipsForeignEntries(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")
	aria := e.character(t, g, alice, "Aria")
	bram := e.character(t, g, alice, "Bram")
	sword := e.item(t, g, alice, "Longsword")
	shield := e.item(t, g, alice, "Shield")

	if err := e.inventory.Assign(alice.ID, aria.ID, sword.ID, 1, false); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := e.inventory.Assign(alice.ID, bram.ID, shield.ID, 1, false); err != nil {
		t.Fatalf("assign: %v", err)
	}

	ariaEntries, _ := e.store.InventoryForCharacter(aria.ID)
	bramEntries, _ := e.store.InventoryForCharacter(bram.ID)

	rows := []models.InventoryUpdateRow{
		{EntryID: ariaEntries[0].ID, Quantity: 5},
		{EntryID: bramEntries[0].ID, Quantity: 9}, // belongs to bram, skipped
		{EntryID: 9999, Quantity: 2},              // unknown, skipped
	}
	if err := e.inventory.UpdateBulk(alice.ID, aria.ID, rows); err != nil {
		t.Fatalf("UpdateBulk: %v", err)
	}

	ariaEntries, _ = e.store.InventoryForCharacter(aria.ID)
	if ariaEntries[0].Quantity != 5 {
		t.Errorf("aria qty = %d, want 5", ariaEntries[0].Quantity)
	}
	bramEntries, _ = e.store.InventoryForCharacter(bram.ID)
	if bramEntries[0].Quantity != 1 {
		t.Errorf("bram qty = %d, want untouched 1", bramEntries[0].Quantity)
	}
}

func TestRemoveEntry(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")
	aria := e.character(t, g, alice, "Aria")
	sword := e.item(t, g, alice, "Longsword")

	if err := e.inventory.Assign(alice.ID, aria.ID, sword.ID, 1, false); err != nil {
		t.Fatalf("assign: %v", err)
	}
	entries, _ := e.store.InventoryForCharacter(aria.ID)

	if err := e.inventory.Remove(alice.ID, aria.ID, entries[0].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	entries, _ = e.store.InventoryForCharacter(aria.ID)
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
	if n := e.countAction(t, g.ID, models.ActionItemRemoved); n != 1 {
		t.Errorf("ItemRemoved entries = %d, want 1", n)
	}
}
