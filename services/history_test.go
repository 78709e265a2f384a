package services

import (
	"errors"
	"testing"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

func TestRecordStampsTimestamp(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")

	entries := e.historyFor(t, g.ID)
	if len(entries) == 0 {
		t.Fatal("game creation should have logged an entry")
	}
	if !withinLastMinute(entries[0].Timestamp) {
		t.Errorf("timestamp %v not freshly stamped", entries[0].Timestamp)
	}
}

func TestOwnerSeesEverything(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	e.character(t, g, alice, "Aria")
	e.item(t, g, alice, "Longsword")

	all := e.historyFor(t, g.ID)
	seen, err := e.history.Recent(g.ID, alice.ID, true, DefaultRecentLimit)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(seen) != len(all) {
		t.Errorf("owner sees %d entries, want %d", len(seen), len(all))
	}
}

func TestViewerFilter(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	g := e.game(t, alice, "Stormreach")
	e.join(t, g, bob)

	// alice's private world: her character and item
	aria := e.character(t, g, alice, "Aria")
	sword := e.item(t, g, alice, "Longsword")

	// bob's own activity
	brom, err := e.characters.Create(bob.ID, g.ID, models.CharacterInput{Name: "Brom", OwnerUserID: bob.ID})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	dagger, err := e.items.Create(bob.ID, g.ID, models.ItemInput{Name: "Dagger"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	seen, err := e.history.Recent(g.ID, bob.ID, false, DefaultRecentLimit)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}

	for _, entry := range seen {
		owns := entry.UserID == bob.ID ||
			(entry.CharacterID != nil && *entry.CharacterID == brom.ID) ||
			(entry.ItemID != nil && *entry.ItemID == dagger.ID)
		if !owns {
			t.Errorf("viewer saw foreign entry %q (%s)", entry.Details, entry.Action)
		}
	}

	// alice's entries stay hidden until they touch something of bob's
	for _, entry := range seen {
		if entry.CharacterID != nil && *entry.CharacterID == aria.ID {
			t.Errorf("viewer saw alice's character entry %q", entry.Details)
		}
	}

	// once the sword lands in bob's inventory, its entries surface
	if err := e.inventory.Assign(alice.ID, aria.ID, sword.ID, 1, false); err != nil {
		t.Fatalf("assign to aria: %v", err)
	}
	if err := e.inventory.Assign(bob.ID, brom.ID, sword.ID, 1, false); err != nil {
		t.Fatalf("assign to brom: %v", err)
	}

	seen, err = e.history.Recent(g.ID, bob.ID, false, DefaultRecentLimit)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	found := false
	for _, entry := range seen {
		if entry.ItemID != nil && *entry.ItemID == sword.ID {
			found = true
		}
	}
	if !found {
		t.Error("held item's entries should be visible to the holder's owner")
	}
}

func TestRecentOrderingAndLimit(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	g := e.game(t, alice, "Stormreach")

	for i := 0; i < 40; i++ {
		if err := e.history.Record(g.ID, alice.ID, models.ActionGameEdited, "tick", nil, nil, nil); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	seen, err := e.history.Recent(g.ID, alice.ID, true, DefaultRecentLimit)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(seen) != DefaultRecentLimit {
		t.Fatalf("entries = %d, want %d", len(seen), DefaultRecentLimit)
	}
	for i := 1; i < len(seen); i++ {
		prev, cur := seen[i-1], seen[i]
		if cur.Timestamp.After(prev.Timestamp) {
			t.Fatalf("entries out of order at %d", i)
		}
		if cur.Timestamp.Equal(prev.Timestamp) && cur.ID > prev.ID {
			t.Fatalf("equal timestamps must order by id descending at %d", i)
		}
	}
}

// failingStore wraps the memory store and rejects appends.
type failingStore struct {
	*store.MemoryStore
}

var errAppend = errors.New("disk full")

func (f *failingStore) AppendHistory(entry *models.HistoryLog) error {
	return errAppend
}

func TestAppendModes(t *testing.T) {
	base := store.NewMemoryStore()
	broken := &failingStore{MemoryStore: base}

	fatal := NewHistoryService(broken, AppendFatal)
	if err := fatal.Record(1, 1, models.ActionGameEdited, "x", nil, nil, nil); !errors.Is(err, errAppend) {
		t.Errorf("fatal mode = %v, want append failure", err)
	}

	ignore := NewHistoryService(broken, AppendIgnore)
	if err := ignore.Record(1, 1, models.ActionGameEdited, "x", nil, nil, nil); err != nil {
		t.Errorf("ignore mode = %v, want nil", err)
	}

	report := NewHistoryService(broken, AppendReport)
	if err := report.Record(1, 1, models.ActionGameEdited, "x", nil, nil, nil); err != nil {
		t.Errorf("report mode = %v, want nil", err)
	}
}

func TestParseAppendMode(t *testing.T) {
	cases := map[string]AppendMode{
		"fatal":  AppendFatal,
		"ignore": AppendIgnore,
		"report": AppendReport,
		"":       AppendReport,
		"bogus":  AppendReport,
	}
	for in, want := range cases {
		if got := ParseAppendMode(in); got != want {
			t.Errorf("ParseAppendMode(%q) = %v, want %v", in, got, want)
		}
	}
}
