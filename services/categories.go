package services

import (
	"errors"
	"fmt"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// CategoryService handles item category CRUD. Categories are always visible
// to members who can view them; there is no per-category hiding.
type CategoryService struct {
	store   store.Store
	authz   *Authorizer
	history *HistoryService
}

func NewCategoryService(s store.Store, authz *Authorizer, history *HistoryService) *CategoryService {
	return &CategoryService{store: s, authz: authz, history: history}
}

// AuthorizeView enforces the category read gate: owners always pass, other
// members need the view privilege. Callers serving cached lists must go
// through this too, so the gate holds regardless of cache state.
func (s *CategoryService) AuthorizeView(userID, gameID uint) error {
	if _, err := s.authz.AuthorizedGame(userID, gameID); err != nil {
		return err
	}
	isOwner, err := s.authz.IsOwner(userID, gameID)
	if err != nil {
		return err
	}
	if isOwner {
		return nil
	}
	privileges, err := s.authz.PrivilegesOf(userID, gameID)
	if err != nil {
		return err
	}
	if !privileges.Has(models.PrivilegeViewCategories) {
		return ErrNotFound
	}
	return nil
}

// List returns all categories of a game.
func (s *CategoryService) List(userID, gameID uint) ([]models.Category, error) {
	if err := s.AuthorizeView(userID, gameID); err != nil {
		return nil, err
	}
	return s.store.CategoriesForGame(gameID)
}

// Create adds a category to a game.
func (s *CategoryService) Create(userID, gameID uint, input models.CategoryInput) (*models.Category, error) {
	if err := s.requirePrivilege(userID, gameID, models.PrivilegeCreateCategories); err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:            input.Name,
		GameID:          gameID,
		CreatedByUserID: userID,
	}
	if err := s.store.CreateCategory(category); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(gameID, userID, models.ActionCategoryCreated,
		fmt.Sprintf("Category %s created by %s", category.Name, actor),
		nil, nil, ref(category.ID)); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category.
func (s *CategoryService) Update(userID, categoryID uint, input models.CategoryInput) (*models.Category, error) {
	category, err := s.store.CategoryByID(categoryID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.requirePrivilege(userID, category.GameID, models.PrivilegeEditCategories); err != nil {
		return nil, err
	}
	category.Name = input.Name
	if err := s.store.UpdateCategory(category); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(category.GameID, userID, models.ActionCategoryEdited,
		fmt.Sprintf("Category %s edited by %s", category.Name, actor),
		nil, nil, ref(category.ID)); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Items in it are kept and become uncategorized.
// Returns the deleted category so callers can invalidate per-game caches.
func (s *CategoryService) Delete(userID, categoryID uint) (*models.Category, error) {
	category, err := s.store.CategoryByID(categoryID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.requirePrivilege(userID, category.GameID, models.PrivilegeDeleteCategories); err != nil {
		return nil, err
	}
	if err := s.store.ClearCategoryFromItems(category.ID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteCategory(category.ID); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(category.GameID, userID, models.ActionCategoryDeleted,
		fmt.Sprintf("Category %s deleted by %s", category.Name, actor),
		nil, nil, nil); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) requirePrivilege(userID, gameID uint, required models.Privilege) error {
	if _, err := s.authz.AuthorizedGame(userID, gameID); err != nil {
		return err
	}
	isOwner, err := s.authz.IsOwner(userID, gameID)
	if err != nil {
		return err
	}
	if isOwner {
		return nil
	}
	privileges, err := s.authz.PrivilegesOf(userID, gameID)
	if err != nil {
		return err
	}
	if !privileges.Has(required) {
		return ErrForbidden
	}
	return nil
}
