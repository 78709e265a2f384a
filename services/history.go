package services

import (
	"time"

	"campaignkeeper/models"
	"campaignkeeper/monitoring"
	"campaignkeeper/store"
	"campaignkeeper/utils"
)

// DefaultRecentLimit caps the history sidebar length.
const DefaultRecentLimit = 30

// AppendMode controls what happens when a history append fails after its
// triggering mutation has already been committed. The mutation is never
// rolled back; the mode only decides how loudly the failure is reported.
type AppendMode int

const (
	// AppendReport logs the failure and carries on (default).
	AppendReport AppendMode = iota
	// AppendFatal propagates the failure to the caller.
	AppendFatal
	// AppendIgnore swallows the failure silently.
	AppendIgnore
)

// ParseAppendMode reads the HISTORY_APPEND_MODE setting.
func ParseAppendMode(s string) AppendMode {
	switch s {
	case "fatal":
		return AppendFatal
	case "ignore":
		return AppendIgnore
	default:
		return AppendReport
	}
}

// HistoryService appends audit entries and reads them back filtered per
// viewer.
type HistoryService struct {
	store store.Store
	mode  AppendMode
}

func NewHistoryService(s store.Store, mode AppendMode) *HistoryService {
	return &HistoryService{store: s, mode: mode}
}

// Record appends one audit entry. The timestamp is assigned here, in UTC;
// callers never supply one. Returns an error only in AppendFatal mode.
func (h *HistoryService) Record(gameID, userID uint, action, details string, characterID, itemID, categoryID *uint) error {
	entry := &models.HistoryLog{
		GameID:      gameID,
		UserID:      userID,
		Action:      action,
		Details:     details,
		CharacterID: characterID,
		ItemID:      itemID,
		CategoryID:  categoryID,
		Timestamp:   time.Now().UTC(),
	}
	err := h.store.AppendHistory(entry)
	if err == nil {
		monitoring.HistoryAppendsTotal.WithLabelValues(action).Inc()
		return nil
	}
	switch h.mode {
	case AppendFatal:
		return err
	case AppendIgnore:
		return nil
	default:
		if utils.Log != nil {
			utils.Log.WithField("action", action).WithField("game_id", gameID).
				WithError(err).Error("history append failed")
		}
		return nil
	}
}

// Recent returns the newest entries for the game, newest first. Owners see
// everything. Other viewers see only entries they authored, entries touching
// a character they own or created, and entries touching an item they created
// or that currently sits in one of their characters' inventories. The filter
// is applied inside the store query, not after the fact.
func (h *HistoryService) Recent(gameID, viewerID uint, isOwner bool, limit int) ([]models.HistoryLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if isOwner {
		return h.store.RecentHistory(gameID, limit)
	}

	characterIDs, err := h.store.CharacterIDsForViewer(gameID, viewerID)
	if err != nil {
		return nil, err
	}
	createdItemIDs, err := h.store.ItemIDsCreatedBy(gameID, viewerID)
	if err != nil {
		return nil, err
	}
	heldItemIDs, err := h.store.ItemIDsOnCharacters(characterIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(createdItemIDs)+len(heldItemIDs))
	itemIDs := make([]uint, 0, len(createdItemIDs)+len(heldItemIDs))
	for _, id := range append(createdItemIDs, heldItemIDs...) {
		if !seen[id] {
			seen[id] = true
			itemIDs = append(itemIDs, id)
		}
	}

	return h.store.RecentHistoryForViewer(gameID, viewerID, characterIDs, itemIDs, limit)
}
