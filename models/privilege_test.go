package models

import "testing"

func TestPrivilegeAllCoversEveryFlag(t *testing.T) {
	for _, name := range PrivilegeAll.Names() {
		flag, ok := PrivilegeByName(name)
		if !ok {
			t.Fatalf("PrivilegeByName(%q) not found", name)
		}
		if !PrivilegeAll.Has(flag) {
			t.Errorf("PrivilegeAll missing %s", name)
		}
	}
	if len(PrivilegeAll.Names()) != 20 {
		t.Errorf("expected 20 privileges, got %d", len(PrivilegeAll.Names()))
	}
}

func TestPrivilegeHas(t *testing.T) {
	p := PrivilegeCreateItems | PrivilegeViewItems
	if !p.Has(PrivilegeCreateItems) {
		t.Error("expected CreateItems")
	}
	if p.Has(PrivilegeDeleteItems) {
		t.Error("unexpected DeleteItems")
	}
	if PrivilegeNone.Has(PrivilegeViewItems) {
		t.Error("PrivilegeNone should hold nothing")
	}
}

func TestPlayerPrivileges(t *testing.T) {
	granted := []Privilege{
		PrivilegeCreateCharacters,
		PrivilegeEditCharacters,
		PrivilegeCreateItems,
		PrivilegeEditItems,
		PrivilegeDeleteItems,
		PrivilegeViewCharacters,
		PrivilegeViewItems,
		PrivilegeViewCategories,
		PrivilegeAddItemsToCharacters,
		PrivilegeRemoveItemsFromCharacters,
		PrivilegeEditCharacterInventory,
		PrivilegeViewHistoryLogs,
	}
	for _, p := range granted {
		if !PlayerPrivileges.Has(p) {
			t.Errorf("player preset missing %s", p)
		}
	}

	denied := []Privilege{
		PrivilegeEditGame,
		PrivilegeCreateJoinCode,
		PrivilegeActivateJoinCode,
		PrivilegeDeleteCharacters,
		PrivilegeCreateCategories,
		PrivilegeEditCategories,
		PrivilegeDeleteCategories,
		PrivilegeRemovePlayers,
	}
	for _, p := range denied {
		if PlayerPrivileges.Has(p) {
			t.Errorf("player preset should not include %s", p)
		}
	}
}

func TestOwnerPrivilegesIsFullSet(t *testing.T) {
	if OwnerPrivileges != PrivilegeAll {
		t.Errorf("owner preset should be the full set")
	}
}

func TestPrivilegeByName(t *testing.T) {
	flag, ok := PrivilegeByName("EditGame")
	if !ok || flag != PrivilegeEditGame {
		t.Errorf("EditGame lookup failed: %v %v", flag, ok)
	}
	if _, ok := PrivilegeByName("NoSuchPrivilege"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestNamesRoundTrip(t *testing.T) {
	p := PrivilegeEditGame | PrivilegeViewItems | PrivilegeRemovePlayers
	var rebuilt Privilege
	for _, name := range p.Names() {
		flag, ok := PrivilegeByName(name)
		if !ok {
			t.Fatalf("name %q did not resolve", name)
		}
		rebuilt |= flag
	}
	if rebuilt != p {
		t.Errorf("round trip mismatch: got %v want %v", rebuilt, p)
	}
}
