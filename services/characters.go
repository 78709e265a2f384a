package services

import (
	"errors"
	"fmt"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// pageSize is the list page length for characters and items.
const pageSize = 10

// CharacterService handles character CRUD under the game's privilege and
// visibility rules.
type CharacterService struct {
	store   store.Store
	authz   *Authorizer
	history *HistoryService
}

func NewCharacterService(s store.Store, authz *Authorizer, history *HistoryService) *CharacterService {
	return &CharacterService{store: s, authz: authz, history: history}
}

// CharacterPage is one page of the character list.
type CharacterPage struct {
	Characters []models.Character `json:"characters"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageCount  int                `json:"pageCount"`
}

// CharacterDetails is the character page payload: the character, its
// inventory, what the viewer may do with it, and the history sidebar.
type CharacterDetails struct {
	Character      *models.Character      `json:"character"`
	Inventory      []models.ItemCharacter `json:"inventory"`
	CanEdit        bool                   `json:"canEdit"`
	CanAssignItems bool                   `json:"canAssignItems"`
	History        []models.HistoryLog    `json:"history"`
}

// List pages through the game's characters. Viewers without the view
// privilege get ErrNotFound; non-owners see only characters that are
// viewable, owned by them, or created by them.
func (s *CharacterService) List(userID, gameID uint, page int) (*CharacterPage, error) {
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
		if !privileges.Has(models.PrivilegeViewCharacters) {
			return nil, ErrNotFound
		}
	}
	characters, err := s.store.CharactersForGame(gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		characters = filterCharacters(characters, userID)
	}
	return pageCharacters(characters, page), nil
}

func pageCharacters(characters []models.Character, page int) *CharacterPage {
	total := len(characters)
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
	return &CharacterPage{
		Characters: characters[start:end],
		Total:      total,
		Page:       page,
		PageCount:  pageCount,
	}
}

// Get loads one character with its inventory. A character hidden from the
// viewer is reported as missing, not forbidden.
func (s *CharacterService) Get(userID, characterID uint) (*CharacterDetails, error) {
	character, isOwner, err := s.visibleCharacter(userID, characterID)
	if err != nil {
		return nil, err
	}
	privileges, err := s.authz.PrivilegesOf(userID, character.GameID)
	if err != nil {
		return nil, err
	}
	inventory, err := s.store.InventoryForCharacter(character.ID)
	if err != nil {
		return nil, err
	}
	history, err := s.history.Recent(character.GameID, userID, isOwner, 0)
	if err != nil {
		return nil, err
	}
	related := character.OwnerUserID == userID || character.CreatedByUserID == userID
	return &CharacterDetails{
		Character:      character,
		Inventory:      inventory,
		CanEdit:        isOwner || (privileges.Has(models.PrivilegeEditCharacters) && related),
		CanAssignItems: isOwner || (privileges.Has(models.PrivilegeAddItemsToCharacters) && related),
		History:        history,
	}, nil
}

func (s *CharacterService) visibleCharacter(userID, characterID uint) (*models.Character, bool, error) {
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
		if !privileges.Has(models.PrivilegeViewCharacters) {
			return nil, false, ErrNotFound
		}
		if !character.ViewableToPlayers &&
			character.OwnerUserID != userID && character.CreatedByUserID != userID {
			return nil, false, ErrNotFound
		}
	}
	return character, isOwner, nil
}

// Create adds a character. The assigned owner must be a member of the game.
// Non-owners cannot create hidden characters; the flag is forced to visible.
func (s *CharacterService) Create(userID, gameID uint, input models.CharacterInput) (*models.Character, error) {
	game, err := s.authz.AuthorizedGame(userID, gameID)
	if err != nil {
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
		if !privileges.Has(models.PrivilegeCreateCharacters) {
			return nil, ErrForbidden
		}
		input.ViewableToPlayers = true
	}
	if err := s.checkAssignedOwner(game, input.OwnerUserID); err != nil {
		return nil, err
	}
	character := &models.Character{
		Name:              input.Name,
		Description:       input.Description,
		PhotoURL:          input.PhotoURL,
		ViewableToPlayers: input.ViewableToPlayers,
		GameID:            gameID,
		CreatedByUserID:   userID,
		OwnerUserID:       input.OwnerUserID,
	}
	if err := s.store.CreateCharacter(character); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(gameID, userID, models.ActionCharacterCreated,
		fmt.Sprintf("Character %s created by %s", character.Name, actor),
		ref(character.ID), nil, nil); err != nil {
		return nil, err
	}
	ownerName := s.authz.actorName(character.OwnerUserID)
	if err := s.history.Record(gameID, userID, models.ActionCharacterAssignedOwner,
		fmt.Sprintf("Character %s assigned to %s", character.Name, ownerName),
		ref(character.ID), nil, nil); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) checkAssignedOwner(game *models.Game, ownerUserID uint) error {
	if ownerUserID == game.CreatedByUserID {
		return nil
	}
	if _, err := s.store.Membership(game.ID, ownerUserID); errors.Is(err, store.ErrNotFound) {
		return &ValidationError{Field: "ownerUserId", Message: "The selected owner is not a member of this game."}
	} else if err != nil {
		return err
	}
	return nil
}

// Update edits a character. Game owners may edit anything; other members need
// the edit privilege and must be the character's creator or assigned owner,
// and they cannot change its owner or hide it.
func (s *CharacterService) Update(userID, characterID uint, input models.CharacterInput) (*models.Character, error) {
	character, err := s.store.CharacterByID(characterID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	game, err := s.authz.AuthorizedGame(userID, character.GameID)
	if err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, character.GameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, character.GameID)
		if err != nil {
			return nil, err
		}
		if !privileges.Has(models.PrivilegeEditCharacters) ||
			(character.OwnerUserID != userID && character.CreatedByUserID != userID) {
			return nil, ErrForbidden
		}
		input.OwnerUserID = character.OwnerUserID
		input.ViewableToPlayers = true
	}
	ownerChanged := input.OwnerUserID != character.OwnerUserID
	if ownerChanged {
		if err := s.checkAssignedOwner(game, input.OwnerUserID); err != nil {
			return nil, err
		}
	}
	character.Name = input.Name
	character.Description = input.Description
	character.PhotoURL = input.PhotoURL
	character.ViewableToPlayers = input.ViewableToPlayers
	character.OwnerUserID = input.OwnerUserID
	if err := s.store.UpdateCharacter(character); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(character.GameID, userID, models.ActionCharacterEdited,
		fmt.Sprintf("Character %s edited by %s", character.Name, actor),
		ref(character.ID), nil, nil); err != nil {
		return nil, err
	}
	if ownerChanged {
		ownerName := s.authz.actorName(character.OwnerUserID)
		if err := s.history.Record(character.GameID, userID, models.ActionCharacterAssignedOwner,
			fmt.Sprintf("Character %s assigned to %s", character.Name, ownerName),
			ref(character.ID), nil, nil); err != nil {
			return nil, err
		}
	}
	return character, nil
}

// Delete removes a character, its inventory, and its history references.
// Game owners may delete any character; other members need the delete
// privilege and must be the character's creator.
func (s *CharacterService) Delete(userID, characterID uint) error {
	character, err := s.store.CharacterByID(characterID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.authz.AuthorizedGame(userID, character.GameID); err != nil {
		return err
	}
	isOwner, err := s.authz.IsOwner(userID, character.GameID)
	if err != nil {
		return err
	}
	if !isOwner {
		privileges, err := s.authz.PrivilegesOf(userID, character.GameID)
		if err != nil {
			return err
		}
		if !privileges.Has(models.PrivilegeDeleteCharacters) || character.CreatedByUserID != userID {
			return ErrForbidden
		}
	}
	if err := s.store.DeleteInventoryForCharacter(character.ID); err != nil {
		return err
	}
	if err := s.store.DeleteHistoryForCharacter(character.ID); err != nil {
		return err
	}
	if err := s.store.DeleteCharacter(character.ID); err != nil {
		return err
	}
	actor := s.authz.actorName(userID)
	return s.history.Record(character.GameID, userID, models.ActionCharacterDeleted,
		fmt.Sprintf("Character %s deleted by %s", character.Name, actor),
		nil, nil, nil)
}
