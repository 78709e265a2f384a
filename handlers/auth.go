package handlers

import (
	"net/http"

	"campaignkeeper/cache"
	"campaignkeeper/models"
	"campaignkeeper/monitoring"
	"campaignkeeper/utils"

	"github.com/gin-gonic/gin"
)

// Login checks credentials and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput
	if !bindAndValidate(c, &input) {
		return
	}

	user, err := h.Users.Authenticate(input.Email, input.Password)
	if err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		respondError(c, err)
		return
	}
	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var input models.RegisterInput
	if !bindAndValidate(c, &input) {
		return
	}

	user, err := h.Users.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Profile returns the authenticated user.
func (h *Handler) Profile(c *gin.Context) {
	userID := currentUserID(c)

	var cached models.User
	if err := cache.GetUser(userID, &cached); err == nil && cached.ID != 0 {
		c.JSON(http.StatusOK, cached)
		return
	}

	user, err := h.Users.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.SetUser(userID, user)

	c.JSON(http.StatusOK, user)
}

// UpdateProfile edits the authenticated user's profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var input models.UpdateProfileInput
	if !bindAndValidate(c, &input) {
		return
	}

	user, err := h.Users.UpdateProfile(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = cache.InvalidateUser(user.ID)

	c.JSON(http.StatusOK, user)
}
