package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"campaignkeeper/services"
	"campaignkeeper/utils"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	Authz      *services.Authorizer
	Users      *services.UserService
	Games      *services.GameService
	JoinCodes  *services.JoinCodeService
	Characters *services.CharacterService
	Items      *services.ItemService
	Categories *services.CategoryService
	Inventory  *services.InventoryService
	History    *services.HistoryService
	Stats      *services.StatsService
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	id, _ := c.Get("userID")
	userID, _ := id.(uint)
	return userID
}

// pathID parses a numeric path parameter; 0 means absent or malformed.
func pathID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// respondError translates service errors into HTTP responses.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{validation.Field: validation.Message}})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to do that"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidJoinCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		utils.Log.WithError(err).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindAndValidate binds the JSON body into dest and runs struct validation.
func bindAndValidate(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if err := utils.ValidateStruct(dest); err != nil {
		utils.ValidationErrorResponse(c, err)
		return false
	}
	return true
}
