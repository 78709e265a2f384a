package services

import (
	"errors"
	"fmt"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// InventoryService maintains the item-character ledger: at most one entry per
// (character, item) pair, quantity clamped to at least 1, and a history entry
// for every observable change.
type InventoryService struct {
	store   store.Store
	authz   *Authorizer
	history *HistoryService
}

func NewInventoryService(s store.Store, authz *Authorizer, history *HistoryService) *InventoryService {
	return &InventoryService{store: s, authz: authz, history: history}
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// authorizeCharacter loads the character and enforces the shared inventory
// access rule: game owners may always act; other members need the given
// privilege and a personal tie to the character (its owner or its creator).
func (s *InventoryService) authorizeCharacter(userID, characterID uint, required models.Privilege) (*models.Character, bool, error) {
	character, err := s.store.CharacterByID(characterID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}
	if _, err := s.authz.AuthorizedGame(userID, character.GameID); err != nil {
		return nil, false, err
	}
	isOwner, err := s.authz.IsOwner(userID, character.GameID)
	if err != nil {
		return nil, false, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, character.GameID)
		if err != nil {
			return nil, false, err
		}
		if !privileges.Has(required) ||
			(character.OwnerUserID != userID && character.CreatedByUserID != userID) {
			return nil, false, ErrForbidden
		}
	}
	return character, isOwner, nil
}

// Assign upserts a single ledger entry for (character, item). A new pair
// inserts a row and logs ItemAssigned; an existing pair is updated in place
// and logs ItemEdited only when quantity or equipped state actually changed.
func (s *InventoryService) Assign(userID, characterID, itemID uint, quantity int, isEquipped bool) error {
	character, _, err := s.authorizeCharacter(userID, characterID, models.PrivilegeAddItemsToCharacters)
	if err != nil {
		return err
	}
	item, err := s.store.ItemByID(itemID)
	if errors.Is(err, store.ErrNotFound) {
		return &ValidationError{Field: "itemId", Message: "Select an item from this game."}
	}
	if err != nil {
		return err
	}
	if item.GameID != character.GameID {
		return &ValidationError{Field: "itemId", Message: "Select an item from this game."}
	}
	return s.applyAssignment(character, item, userID, quantity, isEquipped)
}

// AssignMany applies the assign-items form: each selected row follows the
// same upsert rules as Assign. Rows pointing at items from another game are
// skipped.
func (s *InventoryService) AssignMany(userID, characterID uint, rows []models.AssignItemInput) error {
	character, _, err := s.authorizeCharacter(userID, characterID, models.PrivilegeAddItemsToCharacters)
	if err != nil {
		return err
	}
	for _, row := range rows {
		item, err := s.store.ItemByID(row.ItemID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if item.GameID != character.GameID {
			continue
		}
		if err := s.applyAssignment(character, item, userID, row.Quantity, row.IsEquipped); err != nil {
			return err
		}
	}
	return nil
}

func (s *InventoryService) applyAssignment(character *models.Character, item *models.Item, userID uint, quantity int, isEquipped bool) error {
	quantity = clampQuantity(quantity)

	entry, err := s.store.InventoryEntryFor(character.ID, item.ID)
	if errors.Is(err, store.ErrNotFound) {
		entry = &models.ItemCharacter{
			CharacterID: character.ID,
			ItemID:      item.ID,
			Quantity:    quantity,
			IsEquipped:  isEquipped,
		}
		if err := s.store.CreateInventoryEntry(entry); err != nil {
			if errors.Is(err, store.ErrConflict) {
				// concurrent assign created the row first; fall through to
				// the update path
				return s.applyAssignment(character, item, userID, quantity, isEquipped)
			}
			return err
		}
		actor := s.authz.actorName(userID)
		return s.history.Record(character.GameID, userID, models.ActionItemAssigned,
			fmt.Sprintf("Character %s assigned %s by %s", character.Name, item.Name, actor),
			ref(character.ID), ref(item.ID), nil)
	}
	if err != nil {
		return err
	}

	if entry.Quantity == quantity && entry.IsEquipped == isEquipped {
		// no observable change, no audit entry
		return nil
	}
	entry.Quantity = quantity
	entry.IsEquipped = isEquipped
	if err := s.store.UpdateInventoryEntry(entry); err != nil {
		return err
	}
	actor := s.authz.actorName(userID)
	return s.history.Record(character.GameID, userID, models.ActionItemEdited,
		fmt.Sprintf("Character's %s edited by %s", item.Name, actor),
		ref(character.ID), ref(item.ID), nil)
}

// Update adjusts a single existing entry's quantity and equipped flag.
func (s *InventoryService) Update(userID, characterID, entryID uint, quantity int, isEquipped bool) error {
	character, _, err := s.authorizeCharacter(userID, characterID, models.PrivilegeEditCharacterInventory)
	if err != nil {
		return err
	}
	entry, err := s.store.InventoryEntryByID(entryID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && entry.CharacterID != character.ID) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.applyEntryUpdate(character, entry, userID, quantity, isEquipped)
}

// UpdateBulk applies a list of entry updates scoped to one character. Rows
// that do not resolve to one of the character's entries are silently skipped.
func (s *InventoryService) UpdateBulk(userID, characterID uint, rows []models.InventoryUpdateRow) error {
	character, _, err := s.authorizeCharacter(userID, characterID, models.PrivilegeEditCharacterInventory)
	if err != nil {
		return err
	}
	for _, row := range rows {
		entry, err := s.store.InventoryEntryByID(row.EntryID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if entry.CharacterID != character.ID {
			continue
		}
		if err := s.applyEntryUpdate(character, entry, userID, row.Quantity, row.IsEquipped); err != nil {
			return err
		}
	}
	return nil
}

func (s *InventoryService) applyEntryUpdate(character *models.Character, entry *models.ItemCharacter, userID uint, quantity int, isEquipped bool) error {
	quantity = clampQuantity(quantity)
	if entry.Quantity == quantity && entry.IsEquipped == isEquipped {
		return nil
	}
	entry.Quantity = quantity
	entry.IsEquipped = isEquipped
	if err := s.store.UpdateInventoryEntry(entry); err != nil {
		return err
	}
	itemName := "Item"
	if entry.Item != nil {
		itemName = entry.Item.Name
	}
	actor := s.authz.actorName(userID)
	return s.history.Record(character.GameID, userID, models.ActionItemEdited,
		fmt.Sprintf("Character's %s edited by %s", itemName, actor),
		ref(character.ID), ref(entry.ItemID), nil)
}

// Remove deletes one ledger entry after re-checking authorization.
func (s *InventoryService) Remove(userID, characterID, entryID uint) error {
	character, _, err := s.authorizeCharacter(userID, characterID, models.PrivilegeRemoveItemsFromCharacters)
	if err != nil {
		return err
	}
	entry, err := s.store.InventoryEntryByID(entryID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && entry.CharacterID != character.ID) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := s.store.DeleteInventoryEntry(entry.ID); err != nil {
		return err
	}
	itemName := "Item"
	if entry.Item != nil {
		itemName = entry.Item.Name
	}
	actor := s.authz.actorName(userID)
	return s.history.Record(character.GameID, userID, models.ActionItemRemoved,
		fmt.Sprintf("Character's %s removed by %s", itemName, actor),
		ref(character.ID), ref(entry.ItemID), nil)
}

// ForCharacter lists a character's inventory, item names preloaded, for the
// character detail view.
func (s *InventoryService) ForCharacter(userID, characterID uint) ([]models.ItemCharacter, error) {
	character, err := s.store.CharacterByID(characterID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.AuthorizedGame(userID, character.GameID); err != nil {
		return nil, err
	}
	return s.store.InventoryForCharacter(characterID)
}
