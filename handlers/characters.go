package handlers

import (
	"net/http"
	"strconv"

	"campaignkeeper/models"

	"github.com/gin-gonic/gin"
)

// GetCharacters pages through a game's characters.
func (h *Handler) GetCharacters(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.Characters.List(currentUserID(c), pathID(c, "id"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCharacter returns one character with its inventory.
func (h *Handler) GetCharacter(c *gin.Context) {
	details, err := h.Characters.Get(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateCharacter adds a character to a game.
func (h *Handler) CreateCharacter(c *gin.Context) {
	var input models.CharacterInput
	if !bindAndValidate(c, &input) {
		return
	}

	character, err := h.Characters.Create(currentUserID(c), pathID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

// UpdateCharacter edits a character.
func (h *Handler) UpdateCharacter(c *gin.Context) {
	var input models.CharacterInput
	if !bindAndValidate(c, &input) {
		return
	}

	character, err := h.Characters.Update(currentUserID(c), pathID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

// DeleteCharacter removes a character and its inventory.
func (h *Handler) DeleteCharacter(c *gin.Context) {
	if err := h.Characters.Delete(currentUserID(c), pathID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Character deleted"})
}
