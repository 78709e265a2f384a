package services

import (
	"testing"
	"time"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// env bundles a memory store with the full service stack for tests.
type env struct {
	store      *store.MemoryStore
	authz      *Authorizer
	history    *HistoryService
	users      *UserService
	games      *GameService
	joinCodes  *JoinCodeService
	characters *CharacterService
	items      *ItemService
	categories *CategoryService
	inventory  *InventoryService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := store.NewMemoryStore()
	authz := NewAuthorizer(st)
	history := NewHistoryService(st, AppendFatal)
	return &env{
		store:      st,
		authz:      authz,
		history:    history,
		users:      NewUserService(st),
		games:      NewGameService(st, authz, history),
		joinCodes:  NewJoinCodeService(st, authz, history),
		characters: NewCharacterService(st, authz, history),
		items:      NewItemService(st, authz, history),
		categories: NewCategoryService(st, authz, history),
		inventory:  NewInventoryService(st, authz, history),
	}
}

func (e *env) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	if err := e.store.CreateUser(u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (e *env) game(t *testing.T, owner *models.User, name string) *models.Game {
	t.Helper()
	g, err := e.games.Create(owner.ID, models.GameInput{Name: name})
	if err != nil {
		t.Fatalf("create game %s: %v", name, err)
	}
	return g
}

// join adds a user to a game with the standard player privilege set.
func (e *env) join(t *testing.T, g *models.Game, u *models.User) {
	t.Helper()
	role := &models.UserGameRole{GameID: g.ID, UserID: u.ID, Privileges: models.PlayerPrivileges}
	if err := e.store.CreateMembership(role); err != nil {
		t.Fatalf("join game: %v", err)
	}
}

func (e *env) character(t *testing.T, g *models.Game, creator *models.User, name string) *models.Character {
	t.Helper()
	ch, err := e.characters.Create(creator.ID, g.ID, models.CharacterInput{
		Name:              name,
		OwnerUserID:       creator.ID,
		ViewableToPlayers: true,
	})
	if err != nil {
		t.Fatalf("create character %s: %v", name, err)
	}
	return ch
}

func (e *env) item(t *testing.T, g *models.Game, creator *models.User, name string) *models.Item {
	t.Helper()
	it, err := e.items.Create(creator.ID, g.ID, models.ItemInput{
		Name:              name,
		ViewableToPlayers: true,
	})
	if err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return it
}

func (e *env) historyFor(t *testing.T, gameID uint) []models.HistoryLog {
	t.Helper()
	entries, err := e.store.RecentHistory(gameID, 100)
	if err != nil {
		t.Fatalf("recent history: %v", err)
	}
	return entries
}

// countAction tallies history entries by action for a game.
func (e *env) countAction(t *testing.T, gameID uint, action string) int {
	t.Helper()
	n := 0
	for _, entry := range e.historyFor(t, gameID) {
		if entry.Action == action {
			n++
		}
	}
	return n
}

// withinLastMinute reports whether ts was stamped recently, in UTC.
func withinLastMinute(ts time.Time) bool {
	now := time.Now().UTC()
	return !ts.After(now) && now.Sub(ts) < time.Minute
}
