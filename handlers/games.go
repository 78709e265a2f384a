package handlers

import (
	"net/http"

	"campaignkeeper/cache"
	"campaignkeeper/models"

	"github.com/gin-gonic/gin"
)

// GetGames lists the games the user created or joined.
func (h *Handler) GetGames(c *gin.Context) {
	games, err := h.Games.Mine(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame returns the game page payload.
func (h *Handler) GetGame(c *gin.Context) {
	details, err := h.Games.Get(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateGame creates a game owned by the caller.
func (h *Handler) CreateGame(c *gin.Context) {
	var input models.GameInput
	if !bindAndValidate(c, &input) {
		return
	}

	game, err := h.Games.Create(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// UpdateGame edits name and description. Owners only.
func (h *Handler) UpdateGame(c *gin.Context) {
	var input models.GameInput
	if !bindAndValidate(c, &input) {
		return
	}

	game, err := h.Games.Update(currentUserID(c), pathID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// DeleteGame removes a game and everything in it. Creator only.
func (h *Handler) DeleteGame(c *gin.Context) {
	gameID := pathID(c, "id")
	if err := h.Games.Delete(currentUserID(c), gameID); err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateGameContent(gameID)
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// GetPlayers returns the roster page. Owners only.
func (h *Handler) GetPlayers(c *gin.Context) {
	roster, err := h.Games.Players(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// KickPlayer removes a player from the game. Owners only.
func (h *Handler) KickPlayer(c *gin.Context) {
	message, err := h.Games.KickPlayer(currentUserID(c), pathID(c, "id"), pathID(c, "userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// EditPrivileges replaces a player's privilege set. Owners only.
func (h *Handler) EditPrivileges(c *gin.Context) {
	var input models.EditPrivilegesInput
	if !bindAndValidate(c, &input) {
		return
	}

	message, err := h.Games.EditPrivileges(currentUserID(c), pathID(c, "id"), input.UserID, input.Privileges)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GetHistory returns the viewer-filtered history sidebar for a game.
func (h *Handler) GetHistory(c *gin.Context) {
	userID := currentUserID(c)
	gameID := pathID(c, "id")

	if _, err := h.Authz.AuthorizedGame(userID, gameID); err != nil {
		respondError(c, err)
		return
	}

	isOwner, err := h.Authz.IsOwner(userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.History.Recent(gameID, userID, isOwner, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
