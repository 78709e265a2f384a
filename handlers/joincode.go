package handlers

import (
	"errors"
	"net/http"

	"campaignkeeper/models"
	"campaignkeeper/monitoring"
	"campaignkeeper/services"

	"github.com/gin-gonic/gin"
)

// GenerateJoinCode issues a fresh active join code for a game. Owners only.
func (h *Handler) GenerateJoinCode(c *gin.Context) {
	game, err := h.JoinCodes.Generate(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joinCode": game.JoinCode, "joinCodeActive": game.JoinCodeActive})
}

// ToggleJoinCode activates or deactivates the game's join code. Owners only.
func (h *Handler) ToggleJoinCode(c *gin.Context) {
	var input struct {
		Activate bool `json:"activate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, message, err := h.JoinCodes.Toggle(currentUserID(c), pathID(c, "id"), input.Activate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"joinCode":       game.JoinCode,
		"joinCodeActive": game.JoinCodeActive,
	})
}

// JoinGame adds the caller to a game by invite code.
func (h *Handler) JoinGame(c *gin.Context) {
	var input models.JoinGameInput
	if !bindAndValidate(c, &input) {
		return
	}

	game, err := h.JoinCodes.Join(currentUserID(c), input.JoinCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidJoinCode):
			monitoring.JoinAttemptsTotal.WithLabelValues("invalid").Inc()
		case errors.Is(err, services.ErrAlreadyMember):
			monitoring.JoinAttemptsTotal.WithLabelValues("already_member").Inc()
		}
		respondError(c, err)
		return
	}
	monitoring.JoinAttemptsTotal.WithLabelValues("success").Inc()

	c.JSON(http.StatusOK, game)
}
