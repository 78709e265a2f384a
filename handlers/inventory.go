package handlers

import (
	"net/http"

	"campaignkeeper/models"

	"github.com/gin-gonic/gin"
)

// GetInventory lists a character's inventory entries.
func (h *Handler) GetInventory(c *gin.Context) {
	entries, err := h.Inventory.ForCharacter(currentUserID(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AssignItems applies the assign-items form to a character.
func (h *Handler) AssignItems(c *gin.Context) {
	var input struct {
		Items []models.AssignItemInput `json:"items" validate:"required,min=1,dive"`
	}
	if !bindAndValidate(c, &input) {
		return
	}

	if err := h.Inventory.AssignMany(currentUserID(c), pathID(c, "id"), input.Items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Items assigned"})
}

// AssignItem upserts a single inventory entry.
func (h *Handler) AssignItem(c *gin.Context) {
	var input models.AssignItemInput
	if !bindAndValidate(c, &input) {
		return
	}

	err := h.Inventory.Assign(currentUserID(c), pathID(c, "id"), input.ItemID, input.Quantity, input.IsEquipped)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item assigned"})
}

// UpdateInventoryEntry adjusts one entry's quantity and equipped state.
func (h *Handler) UpdateInventoryEntry(c *gin.Context) {
	var input struct {
		Quantity   int  `json:"quantity"`
		IsEquipped bool `json:"isEquipped"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Inventory.Update(currentUserID(c), pathID(c, "id"), pathID(c, "entryId"), input.Quantity, input.IsEquipped)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory updated"})
}

// UpdateInventory applies the bulk inventory edit form.
func (h *Handler) UpdateInventory(c *gin.Context) {
	var input struct {
		Entries []models.InventoryUpdateRow `json:"entries" validate:"required,min=1,dive"`
	}
	if !bindAndValidate(c, &input) {
		return
	}

	if err := h.Inventory.UpdateBulk(currentUserID(c), pathID(c, "id"), input.Entries); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory updated"})
}

// RemoveInventoryEntry deletes one inventory entry.
func (h *Handler) RemoveInventoryEntry(c *gin.Context) {
	err := h.Inventory.Remove(currentUserID(c), pathID(c, "id"), pathID(c, "entryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}
