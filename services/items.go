package services

import (
	"errors"
	"fmt"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// ItemService handles item CRUD. Items follow the same ownership and
// visibility rules as characters, minus an assigned owner.
type ItemService struct {
	store   store.Store
	authz   *Authorizer
	history *HistoryService
}

func NewItemService(s store.Store, authz *Authorizer, history *HistoryService) *ItemService {
	return &ItemService{store: s, authz: authz, history: history}
}

// ItemPage is one page of the item list.
type ItemPage struct {
	Items     []models.Item `json:"items"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageCount int           `json:"pageCount"`
}

// List pages through the game's items, optionally filtered to one category.
// Viewers without the view privilege get ErrNotFound; non-owners see only
// viewable items and their own.
func (s *ItemService) List(userID, gameID uint, categoryID *uint, page int) (*ItemPage, error) {
	if _, err := s.authz.AuthorizedGame(userID, gameID); err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, gameID)
		if err != nil {
			return nil, err
		}
		if !privileges.Has(models.PrivilegeViewItems) {
			return nil, ErrNotFound
		}
	}
	items, err := s.store.ItemsForGame(gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		items = filterItems(items, userID)
	}
	if categoryID != nil {
		filtered := items[:0]
		for _, i := range items {
			if i.CategoryID != nil && *i.CategoryID == *categoryID {
				filtered = append(filtered, i)
			}
		}
		items = filtered
	}

	total := len(items)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return &ItemPage{
		Items:     items[start:end],
		Total:     total,
		Page:      page,
		PageCount: pageCount,
	}, nil
}

// Get loads one item. Items hidden from the viewer are reported as missing.
func (s *ItemService) Get(userID, itemID uint) (*models.Item, error) {
	item, err := s.store.ItemByID(itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.AuthorizedGame(userID, item.GameID); err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, item.GameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, item.GameID)
		if err != nil {
			return nil, err
		}
		if !privileges.Has(models.PrivilegeViewItems) {
			return nil, ErrNotFound
		}
		if !item.ViewableToPlayers && item.CreatedByUserID != userID {
			return nil, ErrNotFound
		}
	}
	return item, nil
}

// Create adds an item. A chosen category must belong to the same game.
// Non-owners cannot create hidden items; the flag is forced to visible.
func (s *ItemService) Create(userID, gameID uint, input models.ItemInput) (*models.Item, error) {
	if _, err := s.authz.AuthorizedGame(userID, gameID); err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, gameID)
		if err != nil {
			return nil, err
		}
		if !privileges.Has(models.PrivilegeCreateItems) {
			return nil, ErrForbidden
		}
		input.ViewableToPlayers = true
	}
	if err := s.checkCategory(gameID, input.CategoryID); err != nil {
		return nil, err
	}
	item := &models.Item{
		Name:              input.Name,
		Description:       input.Description,
		PhotoURL:          input.PhotoURL,
		ViewableToPlayers: input.ViewableToPlayers,
		GameID:            gameID,
		CreatedByUserID:   userID,
		CategoryID:        input.CategoryID,
	}
	if err := s.store.CreateItem(item); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(gameID, userID, models.ActionItemCreated,
		fmt.Sprintf("Item %s created by %s", item.Name, actor),
		nil, ref(item.ID), item.CategoryID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) checkCategory(gameID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.store.CategoryByID(*categoryID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && category.GameID != gameID) {
		return &ValidationError{Field: "categoryId", Message: "Select a category from this game."}
	}
	return err
}

// Update edits an item. Game owners may edit anything; other members need the
// edit privilege and must be the item's creator, and cannot hide it.
func (s *ItemService) Update(userID, itemID uint, input models.ItemInput) (*models.Item, error) {
	item, err := s.store.ItemByID(itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.AuthorizedGame(userID, item.GameID); err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, item.GameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, item.GameID)
		if err != nil {
			return nil, err
		}
		if !privileges.Has(models.PrivilegeEditItems) || item.CreatedByUserID != userID {
			return nil, ErrForbidden
		}
		input.ViewableToPlayers = true
	}
	if err := s.checkCategory(item.GameID, input.CategoryID); err != nil {
		return nil, err
	}
	item.Name = input.Name
	item.Description = input.Description
	item.PhotoURL = input.PhotoURL
	item.ViewableToPlayers = input.ViewableToPlayers
	item.CategoryID = input.CategoryID
	item.Category = nil
	if err := s.store.UpdateItem(item); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(item.GameID, userID, models.ActionItemEdited,
		fmt.Sprintf("Item %s edited by %s", item.Name, actor),
		nil, ref(item.ID), item.CategoryID); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item and any inventory entries that reference it. Game
// owners may delete any item; other members need the delete privilege and
// must be the item's creator. Returns the deleted item so callers can
// invalidate per-game caches without a separate read.
func (s *ItemService) Delete(userID, itemID uint) (*models.Item, error) {
	item, err := s.store.ItemByID(itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.AuthorizedGame(userID, item.GameID); err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, item.GameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, item.GameID)
		if err != nil {
			return nil, err
		}
		if !privileges.Has(models.PrivilegeDeleteItems) || item.CreatedByUserID != userID {
			return nil, ErrForbidden
		}
	}
	if err := s.store.DeleteInventoryForItem(item.ID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(item.GameID, userID, models.ActionItemDeleted,
		fmt.Sprintf("Item %s deleted by %s", item.Name, actor),
		nil, nil, nil); err != nil {
		return nil, err
	}
	return item, nil
}
