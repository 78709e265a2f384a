package handlers

import (
	"net/http"

	"campaignkeeper/cache"
	"campaignkeeper/models"

	"github.com/gin-gonic/gin"
)

// GetCategories lists a game's categories.
func (h *Handler) GetCategories(c *gin.Context) {
	userID := currentUserID(c)
	gameID := pathID(c, "id")

	// Categories have no per-viewer visibility, so the cached list is safe
	// to share once the view gate passes.
	if err := h.Categories.AuthorizeView(userID, gameID); err != nil {
		respondError(c, err)
		return
	}
	var cached []models.Category
	if err := cache.GetCategories(gameID, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	categories, err := h.Categories.List(userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.SetCategories(gameID, categories)

	c.JSON(http.StatusOK, categories)
}

// CreateCategory adds a category to a game.
func (h *Handler) CreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if !bindAndValidate(c, &input) {
		return
	}

	gameID := pathID(c, "id")
	category, err := h.Categories.Create(currentUserID(c), gameID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateCategories(gameID)
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	var input models.CategoryInput
	if !bindAndValidate(c, &input) {
		return
	}

	category, err := h.Categories.Update(currentUserID(c), pathID(c, "id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateCategories(category.GameID)
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category; its items become uncategorized.
func (h *Handler) DeleteCategory(c *gin.Context) {
	category, err := h.Categories.Delete(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateGameContent(category.GameID)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
