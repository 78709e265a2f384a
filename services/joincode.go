package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"campaignkeeper/models"
	"campaignkeeper/store"
)

// joinCodeAlphabet drops 0, 1, I and O so codes survive being read aloud or
// scribbled on paper.
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// maxJoinCodeAttempts bounds the uniqueness retry loop; past this the store
// is assumed unhealthy and the caller gets a transient error.
const maxJoinCodeAttempts = 100

// JoinCodeService generates invite codes, toggles their activation, and
// admits joining users into a game's roster.
type JoinCodeService struct {
	store   store.Store
	authz   *Authorizer
	history *HistoryService
}

func NewJoinCodeService(s store.Store, authz *Authorizer, history *HistoryService) *JoinCodeService {
	return &JoinCodeService{store: s, authz: authz, history: history}
}

func randomSegment(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// len(joinCodeAlphabet) is 32, which divides 256 evenly, so the modulo
	// introduces no bias.
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf), nil
}

// generateUnique builds XXX-XXXX-XXXX codes until one not stored on any game,
// active or not, is found.
func (s *JoinCodeService) generateUnique() (string, error) {
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		segs := make([]string, 3)
		for i, n := range []int{3, 4, 4} {
			seg, err := randomSegment(n)
			if err != nil {
				return "", err
			}
			segs[i] = seg
		}
		code := strings.Join(segs, "-")
		inUse, err := s.store.JoinCodeInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find an unused join code: %w", ErrTransient)
}

// Generate assigns a fresh code to the game and activates it. Owner only.
func (s *JoinCodeService) Generate(userID, gameID uint) (*models.Game, error) {
	game, err := s.authz.OwnedGame(userID, gameID)
	if err != nil {
		return nil, err
	}
	code, err := s.generateUnique()
	if err != nil {
		return nil, err
	}
	game.JoinCode = code
	game.JoinCodeActive = true
	if err := s.store.UpdateGame(game); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// lost a race with another generation; the caller can retry
			return nil, fmt.Errorf("join code collided: %w", ErrTransient)
		}
		return nil, err
	}
	return game, nil
}

// Toggle activates or deactivates the stored code without erasing it, so a
// deactivated code can be re-enabled later unchanged. Returns a user-facing
// message when the game has no code yet.
func (s *JoinCodeService) Toggle(userID, gameID uint, activate bool) (*models.Game, string, error) {
	game, err := s.authz.OwnedGame(userID, gameID)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(game.JoinCode) == "" {
		return game, "Generate a join code first.", nil
	}
	game.JoinCodeActive = activate
	if err := s.store.UpdateGame(game); err != nil {
		return nil, "", err
	}
	if activate {
		return game, "Join code activated.", nil
	}
	return game, "Join code deactivated.", nil
}

// Join admits the user into the game matching the code. The code is trimmed
// and uppercased before lookup; any code-related failure yields the same
// generic ErrInvalidJoinCode.
func (s *JoinCodeService) Join(userID uint, rawCode string) (*models.Game, error) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))
	if code == "" {
		return nil, ErrInvalidJoinCode
	}

	game, err := s.store.GameByJoinCode(code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidJoinCode
	}
	if err != nil {
		return nil, err
	}
	if !game.JoinCodeActive {
		return nil, ErrInvalidJoinCode
	}

	if game.CreatedByUserID == userID {
		return nil, ErrAlreadyMember
	}
	if _, err := s.store.Membership(game.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	role := &models.UserGameRole{
		GameID:     game.ID,
		UserID:     userID,
		IsOwner:    false,
		Privileges: models.PlayerPrivileges,
	}
	if err := s.store.CreateMembership(role); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// simultaneous join attempts; the row already exists
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	actor := s.authz.actorName(userID)
	if err := s.history.Record(game.ID, userID, models.ActionUserAdded,
		fmt.Sprintf("%s joined the game using a code", actor), nil, nil, nil); err != nil {
		return nil, err
	}
	return game, nil
}
