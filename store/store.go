package store

import "campaignkeeper/models"

// Store defines persistence operations for the campaign entities. All lookups
// return ErrNotFound for missing rows; writes that violate a uniqueness
// constraint return ErrConflict.
type Store interface {
	// users
	CreateUser(user *models.User) error
	UserByID(id uint) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UserNameTaken(name string, excludeUserID uint) (bool, error)
	UpdateUser(user *models.User) error
	CountUsers() (int64, error)

	// games
	CreateGame(game *models.Game) error
	GameByID(id uint) (*models.Game, error)
	GameByJoinCode(code string) (*models.Game, error)
	JoinCodeInUse(code string) (bool, error)
	GamesForUser(userID uint) ([]models.Game, error)
	UpdateGame(game *models.Game) error
	DeleteGame(id uint) error
	CountGames() (int64, error)

	// memberships
	CreateMembership(role *models.UserGameRole) error
	Membership(gameID, userID uint) (*models.UserGameRole, error)
	MembershipsForGame(gameID uint) ([]models.UserGameRole, error)
	UpdateMembership(role *models.UserGameRole) error
	DeleteMembership(gameID, userID uint) error
	DeleteMembershipsForGame(gameID uint) error

	// characters
	CreateCharacter(character *models.Character) error
	CharacterByID(id uint) (*models.Character, error)
	CharactersForGame(gameID uint) ([]models.Character, error)
	CharacterIDsForViewer(gameID, userID uint) ([]uint, error)
	UpdateCharacter(character *models.Character) error
	DeleteCharacter(id uint) error
	DeleteCharactersForGame(gameID uint) error
	CountCharacters() (int64, error)

	// items
	CreateItem(item *models.Item) error
	ItemByID(id uint) (*models.Item, error)
	ItemsForGame(gameID uint) ([]models.Item, error)
	ItemIDsCreatedBy(gameID, userID uint) ([]uint, error)
	UpdateItem(item *models.Item) error
	DeleteItem(id uint) error
	DeleteItemsForGame(gameID uint) error
	ClearCategoryFromItems(categoryID uint) error
	CountItems() (int64, error)

	// categories
	CreateCategory(category *models.Category) error
	CategoryByID(id uint) (*models.Category, error)
	CategoriesForGame(gameID uint) ([]models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error
	DeleteCategoriesForGame(gameID uint) error

	// inventory ledger
	CreateInventoryEntry(entry *models.ItemCharacter) error
	InventoryEntryByID(id uint) (*models.ItemCharacter, error)
	InventoryEntryFor(characterID, itemID uint) (*models.ItemCharacter, error)
	InventoryForCharacter(characterID uint) ([]models.ItemCharacter, error)
	ItemIDsOnCharacters(characterIDs []uint) ([]uint, error)
	UpdateInventoryEntry(entry *models.ItemCharacter) error
	DeleteInventoryEntry(id uint) error
	DeleteInventoryForCharacter(characterID uint) error
	DeleteInventoryForItem(itemID uint) error
	DeleteInventoryForGame(gameID uint) error

	// history log
	AppendHistory(entry *models.HistoryLog) error
	RecentHistory(gameID uint, limit int) ([]models.HistoryLog, error)
	RecentHistoryForViewer(gameID, viewerID uint, characterIDs, itemIDs []uint, limit int) ([]models.HistoryLog, error)
	DeleteHistoryForCharacter(characterID uint) error
	DeleteHistoryForGame(gameID uint) error
}
