package store

import (
	"errors"

	"gorm.io/gorm"

	"campaignkeeper/models"
)

// GormStore implements Store on top of GORM + Postgres. The *gorm.DB must be
// opened with TranslateError so duplicate-key violations surface as
// gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

// ==================== USERS ====================

func (s *GormStore) CreateUser(user *models.User) error {
	return wrapErr(s.db.Create(user).Error)
}

func (s *GormStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *GormStore) UserNameTaken(name string, excludeUserID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("name = ? AND id <> ?", name, excludeUserID).
		Count(&count).Error
	return count > 0, wrapErr(err)
}

func (s *GormStore) UpdateUser(user *models.User) error {
	return wrapErr(s.db.Save(user).Error)
}

func (s *GormStore) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, wrapErr(err)
}

// ==================== GAMES ====================

func (s *GormStore) CreateGame(game *models.Game) error {
	return wrapErr(s.db.Create(game).Error)
}

func (s *GormStore) GameByID(id uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.Preload("CreatedByUser").First(&game, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &game, nil
}

func (s *GormStore) GameByJoinCode(code string) (*models.Game, error) {
	var game models.Game
	if err := s.db.Where("join_code = ?", code).First(&game).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &game, nil
}

func (s *GormStore) JoinCodeInUse(code string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Game{}).Where("join_code = ?", code).Count(&count).Error
	return count > 0, wrapErr(err)
}

func (s *GormStore) GamesForUser(userID uint) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Preload("CreatedByUser").
		Where("created_by_user_id = ? OR id IN (?)", userID,
			s.db.Model(&models.UserGameRole{}).Select("game_id").Where("user_id = ?", userID)).
		Order("name").
		Find(&games).Error
	return games, wrapErr(err)
}

func (s *GormStore) UpdateGame(game *models.Game) error {
	return wrapErr(s.db.Save(game).Error)
}

func (s *GormStore) DeleteGame(id uint) error {
	return wrapErr(s.db.Delete(&models.Game{}, id).Error)
}

func (s *GormStore) CountGames() (int64, error) {
	var count int64
	err := s.db.Model(&models.Game{}).Count(&count).Error
	return count, wrapErr(err)
}

// ==================== MEMBERSHIPS ====================

func (s *GormStore) CreateMembership(role *models.UserGameRole) error {
	return wrapErr(s.db.Create(role).Error)
}

func (s *GormStore) Membership(gameID, userID uint) (*models.UserGameRole, error) {
	var role models.UserGameRole
	err := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&role).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &role, nil
}

func (s *GormStore) MembershipsForGame(gameID uint) ([]models.UserGameRole, error) {
	var roles []models.UserGameRole
	err := s.db.Preload("User").
		Joins("JOIN users ON users.id = user_game_roles.user_id").
		Where("user_game_roles.game_id = ?", gameID).
		Order("users.name").
		Find(&roles).Error
	return roles, wrapErr(err)
}

func (s *GormStore) UpdateMembership(role *models.UserGameRole) error {
	return wrapErr(s.db.Save(role).Error)
}

func (s *GormStore) DeleteMembership(gameID, userID uint) error {
	return wrapErr(s.db.Where("game_id = ? AND user_id = ?", gameID, userID).
		Delete(&models.UserGameRole{}).Error)
}

func (s *GormStore) DeleteMembershipsForGame(gameID uint) error {
	return wrapErr(s.db.Where("game_id = ?", gameID).Delete(&models.UserGameRole{}).Error)
}

// ==================== CHARACTERS ====================

func (s *GormStore) CreateCharacter(character *models.Character) error {
	return wrapErr(s.db.Create(character).Error)
}

func (s *GormStore) CharacterByID(id uint) (*models.Character, error) {
	var character models.Character
	err := s.db.Preload("CreatedByUser").Preload("Owner").Preload("Game").
		First(&character, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &character, nil
}

func (s *GormStore) CharactersForGame(gameID uint) ([]models.Character, error) {
	var characters []models.Character
	err := s.db.Preload("CreatedByUser").Preload("Owner").
		Where("game_id = ?", gameID).
		Order("name").
		Find(&characters).Error
	return characters, wrapErr(err)
}

func (s *GormStore) CharacterIDsForViewer(gameID, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Character{}).
		Where("game_id = ? AND (owner_user_id = ? OR created_by_user_id = ?)", gameID, userID, userID).
		Pluck("id", &ids).Error
	return ids, wrapErr(err)
}

func (s *GormStore) UpdateCharacter(character *models.Character) error {
	return wrapErr(s.db.Save(character).Error)
}

func (s *GormStore) DeleteCharacter(id uint) error {
	return wrapErr(s.db.Delete(&models.Character{}, id).Error)
}

func (s *GormStore) DeleteCharactersForGame(gameID uint) error {
	return wrapErr(s.db.Where("game_id = ?", gameID).Delete(&models.Character{}).Error)
}

func (s *GormStore) CountCharacters() (int64, error) {
	var count int64
	err := s.db.Model(&models.Character{}).Count(&count).Error
	return count, wrapErr(err)
}

// ==================== ITEMS ====================

func (s *GormStore) CreateItem(item *models.Item) error {
	return wrapErr(s.db.Create(item).Error)
}

func (s *GormStore) ItemByID(id uint) (*models.Item, error) {
	var item models.Item
	err := s.db.Preload("Category").Preload("CreatedByUser").Preload("Game").
		First(&item, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &item, nil
}

func (s *GormStore) ItemsForGame(gameID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Preload("Category").Preload("CreatedByUser").
		Where("game_id = ?", gameID).
		Order("name").
		Find(&items).Error
	return items, wrapErr(err)
}

func (s *GormStore) ItemIDsCreatedBy(gameID, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Item{}).
		Where("game_id = ? AND created_by_user_id = ?", gameID, userID).
		Pluck("id", &ids).Error
	return ids, wrapErr(err)
}

func (s *GormStore) UpdateItem(item *models.Item) error {
	return wrapErr(s.db.Save(item).Error)
}

func (s *GormStore) DeleteItem(id uint) error {
	return wrapErr(s.db.Delete(&models.Item{}, id).Error)
}

func (s *GormStore) DeleteItemsForGame(gameID uint) error {
	return wrapErr(s.db.Where("game_id = ?", gameID).Delete(&models.Item{}).Error)
}

func (s *GormStore) ClearCategoryFromItems(categoryID uint) error {
	return wrapErr(s.db.Model(&models.Item{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error)
}

func (s *GormStore) CountItems() (int64, error) {
	var count int64
	err := s.db.Model(&models.Item{}).Count(&count).Error
	return count, wrapErr(err)
}

// ==================== CATEGORIES ====================

func (s *GormStore) CreateCategory(category *models.Category) error {
	return wrapErr(s.db.Create(category).Error)
}

func (s *GormStore) CategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.Preload("CreatedByUser").Preload("Game").First(&category, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

func (s *GormStore) CategoriesForGame(gameID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("game_id = ?", gameID).Order("name").Find(&categories).Error
	return categories, wrapErr(err)
}

func (s *GormStore) UpdateCategory(category *models.Category) error {
	return wrapErr(s.db.Save(category).Error)
}

func (s *GormStore) DeleteCategory(id uint) error {
	return wrapErr(s.db.Delete(&models.Category{}, id).Error)
}

func (s *GormStore) DeleteCategoriesForGame(gameID uint) error {
	return wrapErr(s.db.Where("game_id = ?", gameID).Delete(&models.Category{}).Error)
}

// ==================== INVENTORY LEDGER ====================

func (s *GormStore) CreateInventoryEntry(entry *models.ItemCharacter) error {
	return wrapErr(s.db.Create(entry).Error)
}

func (s *GormStore) InventoryEntryByID(id uint) (*models.ItemCharacter, error) {
	var entry models.ItemCharacter
	if err := s.db.Preload("Item").First(&entry, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &entry, nil
}

func (s *GormStore) InventoryEntryFor(characterID, itemID uint) (*models.ItemCharacter, error) {
	var entry models.ItemCharacter
	err := s.db.Where("character_id = ? AND item_id = ?", characterID, itemID).
		First(&entry).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &entry, nil
}

func (s *GormStore) InventoryForCharacter(characterID uint) ([]models.ItemCharacter, error) {
	var entries []models.ItemCharacter
	err := s.db.Preload("Item").Preload("Item.Category").
		Joins("JOIN items ON items.id = item_characters.item_id").
		Where("item_characters.character_id = ?", characterID).
		Order("items.name").
		Find(&entries).Error
	return entries, wrapErr(err)
}

func (s *GormStore) ItemIDsOnCharacters(characterIDs []uint) ([]uint, error) {
	if len(characterIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := s.db.Model(&models.ItemCharacter{}).
		Where("character_id IN ?", characterIDs).
		Distinct().
		Pluck("item_id", &ids).Error
	return ids, wrapErr(err)
}

func (s *GormStore) UpdateInventoryEntry(entry *models.ItemCharacter) error {
	return wrapErr(s.db.Save(entry).Error)
}

func (s *GormStore) DeleteInventoryEntry(id uint) error {
	return wrapErr(s.db.Delete(&models.ItemCharacter{}, id).Error)
}

func (s *GormStore) DeleteInventoryForCharacter(characterID uint) error {
	return wrapErr(s.db.Where("character_id = ?", characterID).
		Delete(&models.ItemCharacter{}).Error)
}

func (s *GormStore) DeleteInventoryForItem(itemID uint) error {
	return wrapErr(s.db.Where("item_id = ?", itemID).Delete(&models.ItemCharacter{}).Error)
}

func (s *GormStore) DeleteInventoryForGame(gameID uint) error {
	return wrapErr(s.db.Where("character_id IN (?)",
		s.db.Model(&models.Character{}).Select("id").Where("game_id = ?", gameID)).
		Delete(&models.ItemCharacter{}).Error)
}

// ==================== HISTORY LOG ====================

func (s *GormStore) AppendHistory(entry *models.HistoryLog) error {
	return wrapErr(s.db.Create(entry).Error)
}

func (s *GormStore) RecentHistory(gameID uint, limit int) ([]models.HistoryLog, error) {
	var logs []models.HistoryLog
	err := s.db.Preload("User").
		Where("game_id = ?", gameID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, wrapErr(err)
}

func (s *GormStore) RecentHistoryForViewer(gameID, viewerID uint, characterIDs, itemIDs []uint, limit int) ([]models.HistoryLog, error) {
	// Empty ID sets must not match anything; IN with an empty slice would.
	if len(characterIDs) == 0 {
		characterIDs = []uint{0}
	}
	if len(itemIDs) == 0 {
		itemIDs = []uint{0}
	}
	var logs []models.HistoryLog
	err := s.db.Preload("User").
		Where("game_id = ?", gameID).
		Where("user_id = ? OR character_id IN ? OR item_id IN ?", viewerID, characterIDs, itemIDs).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, wrapErr(err)
}

func (s *GormStore) DeleteHistoryForCharacter(characterID uint) error {
	return wrapErr(s.db.Where("character_id = ?", characterID).
		Delete(&models.HistoryLog{}).Error)
}

func (s *GormStore) DeleteHistoryForGame(gameID uint) error {
	return wrapErr(s.db.Where("game_id = ?", gameID).Delete(&models.HistoryLog{}).Error)
}
