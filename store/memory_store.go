package store

import (
	"sort"
	"sync"

	"campaignkeeper/models"
)

// MemoryStore is an in-process Store used by tests. It enforces the same
// uniqueness constraints as the database schema: email, display name,
// (game,user) membership, (character,item) inventory pair, and non-empty
// join codes.
type MemoryStore struct {
	mu sync.RWMutex

	nextID      uint
	users       map[uint]models.User
	games       map[uint]models.Game
	memberships map[uint]models.UserGameRole
	characters  map[uint]models.Character
	items       map[uint]models.Item
	categories  map[uint]models.Category
	inventory   map[uint]models.ItemCharacter
	history     []models.HistoryLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[uint]models.User),
		games:       make(map[uint]models.Game),
		memberships: make(map[uint]models.UserGameRole),
		characters:  make(map[uint]models.Character),
		items:       make(map[uint]models.Item),
		categories:  make(map[uint]models.Category),
		inventory:   make(map[uint]models.ItemCharacter),
	}
}

func (m *MemoryStore) allocID() uint {
	m.nextID++
	return m.nextID
}

// ==================== USERS ====================

func (m *MemoryStore) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Name == user.Name {
			return ErrConflict
		}
	}
	user.ID = m.allocID()
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) UserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryStore) UserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UserNameTaken(name string, excludeUserID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Name == name && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	for _, u := range m.users {
		if u.ID != user.ID && (u.Email == user.Email || u.Name == user.Name) {
			return ErrConflict
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// ==================== GAMES ====================

func (m *MemoryStore) CreateGame(game *models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if game.JoinCode != "" && m.joinCodeInUseLocked(game.JoinCode, game.ID) {
		return ErrConflict
	}
	game.ID = m.allocID()
	m.games[game.ID] = *game
	return nil
}

func (m *MemoryStore) joinCodeInUseLocked(code string, excludeGameID uint) bool {
	for _, g := range m.games {
		if g.JoinCode == code && g.ID != excludeGameID {
			return true
		}
	}
	return false
}

func (m *MemoryStore) GameByID(id uint) (*models.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	game, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if creator, ok := m.users[game.CreatedByUserID]; ok {
		u := creator
		game.CreatedByUser = &u
	}
	return &game, nil
}

func (m *MemoryStore) GameByJoinCode(code string) (*models.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.JoinCode == code {
			game := g
			return &game, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) JoinCodeInUse(code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.joinCodeInUseLocked(code, 0), nil
}

func (m *MemoryStore) GamesForUser(userID uint) ([]models.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	member := make(map[uint]bool)
	for _, role := range m.memberships {
		if role.UserID == userID {
			member[role.GameID] = true
		}
	}
	var games []models.Game
	for _, g := range m.games {
		if g.CreatedByUserID == userID || member[g.ID] {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}

func (m *MemoryStore) UpdateGame(game *models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[game.ID]; !ok {
		return ErrNotFound
	}
	if game.JoinCode != "" && m.joinCodeInUseLocked(game.JoinCode, game.ID) {
		return ErrConflict
	}
	m.games[game.ID] = *game
	return nil
}

func (m *MemoryStore) DeleteGame(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *MemoryStore) CountGames() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.games)), nil
}

// ==================== MEMBERSHIPS ====================

func (m *MemoryStore) CreateMembership(role *models.UserGameRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.memberships {
		if r.GameID == role.GameID && r.UserID == role.UserID {
			return ErrConflict
		}
	}
	role.ID = m.allocID()
	m.memberships[role.ID] = *role
	return nil
}

func (m *MemoryStore) Membership(gameID, userID uint) (*models.UserGameRole, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.memberships {
		if r.GameID == gameID && r.UserID == userID {
			role := r
			return &role, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) MembershipsForGame(gameID uint) ([]models.UserGameRole, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var roles []models.UserGameRole
	for _, r := range m.memberships {
		if r.GameID == gameID {
			if u, ok := m.users[r.UserID]; ok {
				user := u
				r.User = &user
			}
			roles = append(roles, r)
		}
	}
	sort.Slice(roles, func(i, j int) bool {
		var a, b string
		if roles[i].User != nil {
			a = roles[i].User.Name
		}
		if roles[j].User != nil {
			b = roles[j].User.Name
		}
		return a < b
	})
	return roles, nil
}

func (m *MemoryStore) UpdateMembership(role *models.UserGameRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.memberships[role.ID]; !ok {
		return ErrNotFound
	}
	m.memberships[role.ID] = *role
	return nil
}

func (m *MemoryStore) DeleteMembership(gameID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.memberships {
		if r.GameID == gameID && r.UserID == userID {
			delete(m.memberships, id)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteMembershipsForGame(gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.memberships {
		if r.GameID == gameID {
			delete(m.memberships, id)
		}
	}
	return nil
}

// ==================== CHARACTERS ====================

func (m *MemoryStore) CreateCharacter(character *models.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	character.ID = m.allocID()
	m.characters[character.ID] = *character
	return nil
}

func (m *MemoryStore) CharacterByID(id uint) (*models.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	character, ok := m.characters[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &character, nil
}

func (m *MemoryStore) CharactersForGame(gameID uint) ([]models.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var characters []models.Character
	for _, c := range m.characters {
		if c.GameID == gameID {
			characters = append(characters, c)
		}
	}
	sort.Slice(characters, func(i, j int) bool { return characters[i].Name < characters[j].Name })
	return characters, nil
}

func (m *MemoryStore) CharacterIDsForViewer(gameID, userID uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, c := range m.characters {
		if c.GameID == gameID && (c.OwnerUserID == userID || c.CreatedByUserID == userID) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) UpdateCharacter(character *models.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.characters[character.ID]; !ok {
		return ErrNotFound
	}
	m.characters[character.ID] = *character
	return nil
}

func (m *MemoryStore) DeleteCharacter(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.characters, id)
	return nil
}

func (m *MemoryStore) DeleteCharactersForGame(gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.characters {
		if c.GameID == gameID {
			delete(m.characters, id)
		}
	}
	return nil
}

func (m *MemoryStore) CountCharacters() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.characters)), nil
}

// ==================== ITEMS ====================

func (m *MemoryStore) CreateItem(item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.allocID()
	m.items[item.ID] = *item
	return nil
}

func (m *MemoryStore) ItemByID(id uint) (*models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if item.CategoryID != nil {
		if c, ok := m.categories[*item.CategoryID]; ok {
			category := c
			item.Category = &category
		}
	}
	return &item, nil
}

func (m *MemoryStore) ItemsForGame(gameID uint) ([]models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var items []models.Item
	for _, i := range m.items {
		if i.GameID == gameID {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (m *MemoryStore) ItemIDsCreatedBy(gameID, userID uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, i := range m.items {
		if i.GameID == gameID && i.CreatedByUserID == userID {
			ids = append(ids, i.ID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) UpdateItem(item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return ErrNotFound
	}
	m.items[item.ID] = *item
	return nil
}

func (m *MemoryStore) DeleteItem(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) DeleteItemsForGame(gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, i := range m.items {
		if i.GameID == gameID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *MemoryStore) ClearCategoryFromItems(categoryID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, i := range m.items {
		if i.CategoryID != nil && *i.CategoryID == categoryID {
			i.CategoryID = nil
			i.Category = nil
			m.items[id] = i
		}
	}
	return nil
}

func (m *MemoryStore) CountItems() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}

// ==================== CATEGORIES ====================

func (m *MemoryStore) CreateCategory(category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = m.allocID()
	m.categories[category.ID] = *category
	return nil
}

func (m *MemoryStore) CategoryByID(id uint) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

func (m *MemoryStore) CategoriesForGame(gameID uint) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []models.Category
	for _, c := range m.categories {
		if c.GameID == gameID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *MemoryStore) UpdateCategory(category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return ErrNotFound
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *MemoryStore) DeleteCategory(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.categories, id)
	return nil
}

func (m *MemoryStore) DeleteCategoriesForGame(gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.categories {
		if c.GameID == gameID {
			delete(m.categories, id)
		}
	}
	return nil
}

// ==================== INVENTORY LEDGER ====================

func (m *MemoryStore) CreateInventoryEntry(entry *models.ItemCharacter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.inventory {
		if e.CharacterID == entry.CharacterID && e.ItemID == entry.ItemID {
			return ErrConflict
		}
	}
	entry.ID = m.allocID()
	stored := *entry
	stored.Item = nil
	stored.Character = nil
	m.inventory[entry.ID] = stored
	return nil
}

func (m *MemoryStore) InventoryEntryByID(id uint) (*models.ItemCharacter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.inventory[id]
	if !ok {
		return nil, ErrNotFound
	}
	if i, ok := m.items[entry.ItemID]; ok {
		item := i
		entry.Item = &item
	}
	return &entry, nil
}

func (m *MemoryStore) InventoryEntryFor(characterID, itemID uint) (*models.ItemCharacter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.inventory {
		if e.CharacterID == characterID && e.ItemID == itemID {
			entry := e
			return &entry, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) InventoryForCharacter(characterID uint) ([]models.ItemCharacter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []models.ItemCharacter
	for _, e := range m.inventory {
		if e.CharacterID == characterID {
			if i, ok := m.items[e.ItemID]; ok {
				item := i
				e.Item = &item
			}
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		var a, b string
		if entries[i].Item != nil {
			a = entries[i].Item.Name
		}
		if entries[j].Item != nil {
			b = entries[j].Item.Name
		}
		return a < b
	})
	return entries, nil
}

func (m *MemoryStore) ItemIDsOnCharacters(characterIDs []uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[uint]bool, len(characterIDs))
	for _, id := range characterIDs {
		wanted[id] = true
	}
	seen := make(map[uint]bool)
	var ids []uint
	for _, e := range m.inventory {
		if wanted[e.CharacterID] && !seen[e.ItemID] {
			seen[e.ItemID] = true
			ids = append(ids, e.ItemID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) UpdateInventoryEntry(entry *models.ItemCharacter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inventory[entry.ID]; !ok {
		return ErrNotFound
	}
	stored := *entry
	stored.Item = nil
	stored.Character = nil
	m.inventory[entry.ID] = stored
	return nil
}

func (m *MemoryStore) DeleteInventoryEntry(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inventory, id)
	return nil
}

func (m *MemoryStore) DeleteInventoryForCharacter(characterID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.inventory {
		if e.CharacterID == characterID {
			delete(m.inventory, id)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteInventoryForItem(itemID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.inventory {
		if e.ItemID == itemID {
			delete(m.inventory, id)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteInventoryForGame(gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.inventory {
		if c, ok := m.characters[e.CharacterID]; ok && c.GameID == gameID {
			delete(m.inventory, id)
		}
	}
	return nil
}

// ==================== HISTORY LOG ====================

func (m *MemoryStore) AppendHistory(entry *models.HistoryLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.allocID()
	stored := *entry
	stored.Game = nil
	stored.User = nil
	m.history = append(m.history, stored)
	return nil
}

func (m *MemoryStore) recentLocked(gameID uint, limit int, visible func(models.HistoryLog) bool) []models.HistoryLog {
	var logs []models.HistoryLog
	for _, h := range m.history {
		if h.GameID == gameID && visible(h) {
			if u, ok := m.users[h.UserID]; ok {
				user := u
				h.User = &user
			}
			logs = append(logs, h)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].Timestamp.After(logs[j].Timestamp)
		}
		return logs[i].ID > logs[j].ID
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs
}

func (m *MemoryStore) RecentHistory(gameID uint, limit int) ([]models.HistoryLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recentLocked(gameID, limit, func(models.HistoryLog) bool { return true }), nil
}

func (m *MemoryStore) RecentHistoryForViewer(gameID, viewerID uint, characterIDs, itemIDs []uint, limit int) ([]models.HistoryLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chars := make(map[uint]bool, len(characterIDs))
	for _, id := range characterIDs {
		chars[id] = true
	}
	items := make(map[uint]bool, len(itemIDs))
	for _, id := range itemIDs {
		items[id] = true
	}
	return m.recentLocked(gameID, limit, func(h models.HistoryLog) bool {
		if h.UserID == viewerID {
			return true
		}
		if h.CharacterID != nil && chars[*h.CharacterID] {
			return true
		}
		if h.ItemID != nil && items[*h.ItemID] {
			return true
		}
		return false
	}), nil
}

func (m *MemoryStore) DeleteHistoryForCharacter(characterID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.history[:0]
	for _, h := range m.history {
		if h.CharacterID == nil || *h.CharacterID != characterID {
			kept = append(kept, h)
		}
	}
	m.history = kept
	return nil
}

func (m *MemoryStore) DeleteHistoryForGame(gameID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.history[:0]
	for _, h := range m.history {
		if h.GameID != gameID {
			kept = append(kept, h)
		}
	}
	m.history = kept
	return nil
}
