package services

import (
	"errors"
	"fmt"
	"time"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// previewSize is how many characters/items/categories show on the game page
// before the "view all" links.
const previewSize = 3

// GameService covers game CRUD and the roster operations owners run on their
// players.
type GameService struct {
	store   store.Store
	authz   *Authorizer
	history *HistoryService
}

func NewGameService(s store.Store, authz *Authorizer, history *HistoryService) *GameService {
	return &GameService{store: s, authz: authz, history: history}
}

// GameDetails is the game page payload: previews of the game's content plus
// the viewer's standing in it.
type GameDetails struct {
	Game           *models.Game        `json:"game"`
	Characters     []models.Character  `json:"characters"`
	CharacterCount int                 `json:"characterCount"`
	Items          []models.Item       `json:"items"`
	ItemCount      int                 `json:"itemCount"`
	Categories     []models.Category   `json:"categories"`
	CategoryCount  int                 `json:"categoryCount"`
	IsOwner        bool                `json:"isOwner"`
	Privileges     []string            `json:"privileges"`
	History        []models.HistoryLog `json:"history"`
}

// PlayerEntry is one roster row on the players page.
type PlayerEntry struct {
	UserID     uint     `json:"userId"`
	Name       string   `json:"name"`
	IsOwner    bool     `json:"isOwner"`
	Privileges []string `json:"privileges"`
}

// Roster is the players page payload. AllPrivileges lists every grantable
// privilege name so the edit form can render checkboxes.
type Roster struct {
	Players       []PlayerEntry `json:"players"`
	AllPrivileges []string      `json:"allPrivileges"`
}

// Create stores a new game and an explicit owner membership for its creator.
func (s *GameService) Create(userID uint, input models.GameInput) (*models.Game, error) {
	game := &models.Game{
		Name:            input.Name,
		Description:     input.Description,
		CreatedAt:       time.Now().UTC(),
		CreatedByUserID: userID,
	}
	if err := s.store.CreateGame(game); err != nil {
		return nil, err
	}
	membership := &models.UserGameRole{
		GameID:     game.ID,
		UserID:     userID,
		IsOwner:    true,
		Privileges: models.OwnerPrivileges,
	}
	if err := s.store.CreateMembership(membership); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(game.ID, userID, models.ActionGameCreated,
		fmt.Sprintf("Game created by %s", actor), nil, nil, nil); err != nil {
		return nil, err
	}
	return game, nil
}

// Mine lists the games the user created or joined.
func (s *GameService) Mine(userID uint) ([]models.Game, error) {
	return s.store.GamesForUser(userID)
}

// Get assembles the game page for one viewer. Characters and items the
// viewer may not see are excluded from previews and counts alike.
func (s *GameService) Get(userID, gameID uint) (*GameDetails, error) {
	game, err := s.authz.AuthorizedGame(userID, gameID)
	if err != nil {
		return nil, err
	}
	isOwner, err := s.authz.IsOwner(userID, gameID)
	if err != nil {
		return nil, err
	}
	privileges, err := s.authz.PrivilegesOf(userID, gameID)
	if err != nil {
		return nil, err
	}

	characters, err := s.store.CharactersForGame(gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		characters = filterCharacters(characters, userID)
	}
	items, err := s.store.ItemsForGame(gameID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		items = filterItems(items, userID)
	}
	categories, err := s.store.CategoriesForGame(gameID)
	if err != nil {
		return nil, err
	}

	history, err := s.history.Recent(gameID, userID, isOwner, DefaultRecentLimit)
	if err != nil {
		return nil, err
	}

	details := &GameDetails{
		Game:           game,
		CharacterCount: len(characters),
		ItemCount:      len(items),
		CategoryCount:  len(categories),
		IsOwner:        isOwner,
		Privileges:     privileges.Names(),
		History:        history,
	}
	details.Characters = characters[:min(previewSize, len(characters))]
	details.Items = items[:min(previewSize, len(items))]
	details.Categories = categories[:min(previewSize, len(categories))]
	return details, nil
}

// Update edits the game name and description. Owners only.
func (s *GameService) Update(userID, gameID uint, input models.GameInput) (*models.Game, error) {
	game, err := s.authz.OwnedGame(userID, gameID)
	if err != nil {
		return nil, err
	}
	game.Name = input.Name
	game.Description = input.Description
	if err := s.store.UpdateGame(game); err != nil {
		return nil, err
	}
	actor := s.authz.actorName(userID)
	if err := s.history.Record(gameID, userID, models.ActionGameEdited,
		fmt.Sprintf("Game edited by %s", actor), nil, nil, nil); err != nil {
		return nil, err
	}
	return game, nil
}

// Delete removes a game and everything under it. Only the user who created
// the game may delete it; co-owners may not.
func (s *GameService) Delete(userID, gameID uint) error {
	game, err := s.store.GameByID(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if game.CreatedByUserID != userID {
		return ErrNotFound
	}
	// children first, then the game row itself
	if err := s.store.DeleteInventoryForGame(gameID); err != nil {
		return err
	}
	if err := s.store.DeleteHistoryForGame(gameID); err != nil {
		return err
	}
	if err := s.store.DeleteCharactersForGame(gameID); err != nil {
		return err
	}
	if err := s.store.DeleteItemsForGame(gameID); err != nil {
		return err
	}
	if err := s.store.DeleteCategoriesForGame(gameID); err != nil {
		return err
	}
	if err := s.store.DeleteMembershipsForGame(gameID); err != nil {
		return err
	}
	return s.store.DeleteGame(gameID)
}

// Players returns the roster for the players page. Owners only.
func (s *GameService) Players(userID, gameID uint) (*Roster, error) {
	game, err := s.authz.OwnedGame(userID, gameID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.store.MembershipsForGame(gameID)
	if err != nil {
		return nil, err
	}
	roster := &Roster{AllPrivileges: models.PrivilegeAll.Names()}
	for _, m := range memberships {
		name := "Unknown user"
		if m.User != nil {
			name = m.User.Name
		}
		roster.Players = append(roster.Players, PlayerEntry{
			UserID:     m.UserID,
			Name:       name,
			IsOwner:    m.IsOwner || m.UserID == game.CreatedByUserID,
			Privileges: m.Privileges.Names(),
		})
	}
	return roster, nil
}

// KickPlayer removes a player from the game along with their membership row.
// The game creator cannot be removed; that case returns a message for the
// page banner rather than an error.
func (s *GameService) KickPlayer(actorID, gameID, targetID uint) (string, error) {
	game, err := s.authz.OwnedGame(actorID, gameID)
	if err != nil {
		return "", err
	}
	if targetID == game.CreatedByUserID {
		return "You cannot remove the game owner.", nil
	}
	if _, err := s.store.Membership(gameID, targetID); errors.Is(err, store.ErrNotFound) {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}
	if err := s.store.DeleteMembership(gameID, targetID); err != nil {
		return "", err
	}
	actor := s.authz.actorName(actorID)
	if err := s.history.Record(gameID, actorID, models.ActionUserRemoved,
		fmt.Sprintf("%s removed a player from the game", actor), nil, nil, nil); err != nil {
		return "", err
	}
	return "Player removed.", nil
}

// EditPrivileges replaces a player's privilege set with the named flags.
// Unknown names are ignored. The game creator's privileges cannot be edited;
// that case returns a banner message rather than an error.
func (s *GameService) EditPrivileges(actorID, gameID, targetID uint, names []string) (string, error) {
	game, err := s.authz.OwnedGame(actorID, gameID)
	if err != nil {
		return "", err
	}
	if targetID == game.CreatedByUserID {
		return "You cannot change privileges for the game owner.", nil
	}
	membership, err := s.store.Membership(gameID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	var privileges models.Privilege
	for _, name := range names {
		if flag, ok := models.PrivilegeByName(name); ok {
			privileges |= flag
		}
	}
	membership.Privileges = privileges
	if err := s.store.UpdateMembership(membership); err != nil {
		return "", err
	}
	return "Privileges updated.", nil
}

func filterCharacters(characters []models.Character, userID uint) []models.Character {
	visible := characters[:0]
	for _, c := range characters {
		if c.ViewableToPlayers || c.OwnerUserID == userID || c.CreatedByUserID == userID {
			visible = append(visible, c)
		}
	}
	return visible
}

func filterItems(items []models.Item, userID uint) []models.Item {
	visible := items[:0]
	for _, i := range items {
		if i.ViewableToPlayers || i.CreatedByUserID == userID {
			visible = append(visible, i)
		}
	}
	return visible
}
