package handlers

import (
	"net/http"
	"strconv"

	"campaignkeeper/cache"
	"campaignkeeper/models"

	"github.com/gin-gonic/gin"
)

// GetItems pages through a game's items, optionally filtered by category.
func (h *Handler) GetItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var categoryID *uint
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId must be numeric"})
			return
		}
		parsed := uint(id)
		categoryID = &parsed
	}

	result, err := h.Items.List(currentUserID(c), pathID(c, "id"), categoryID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetItem returns one item.
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.Items.Get(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem adds an item to a game.
func (h *Handler) CreateItem(c *gin.Context) {
	var input models.ItemInput
	if !bindAndValidate(c, &input) {
		return
	}

	gameID := pathID(c, "id")
	item, err := h.Items.Create(currentUserID(c), gameID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateGameContent(gameID)
	c.JSON(http.StatusCreated, item)
}

// UpdateItem edits an item.
func (h *Handler) UpdateItem(c *gin.Context) {
	var input models.ItemInput
	if !bindAndValidate(c, &input) {
		return
	}

	item, err := h.Items.Update(currentUserID(c), pathID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateGameContent(item.GameID)
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item and its inventory entries.
func (h *Handler) DeleteItem(c *gin.Context) {
	item, err := h.Items.Delete(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateGameContent(item.GameID)
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
