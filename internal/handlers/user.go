package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/middleware"
	"github.com/taskhive/taskhive-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SyncUser reconciles an identity-provider profile with a local user record
// and stores the resolved user id in the cookie session.
func (h *UserHandler) SyncUser(c *gin.Context) {
	type SyncRequest struct {
		Auth0ID  string  `json:"auth0Id" binding:"required"`
		Email    string  `json:"email" binding:"required"`
		FullName *string `json:"fullName"`
	}

	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "auth0Id and email are required")
		return
	}

	user, err := h.userService.SyncUser(services.SyncUserInput{
		Auth0ID:  req.Auth0ID,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := middleware.SetSessionUser(c, user.ID); err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Me returns the user recorded in the current session.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "No active session")
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout drops the session.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// CreateUser creates a user without a provider identity.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email    string  `json:"email" binding:"required"`
		FullName *string `json:"fullName"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "email is required")
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.FullName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser returns one user by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns all users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
