package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/middleware"
	"storefront-backend/models"
)

// AuthProvider is the service surface AuthController depends on.
type AuthProvider interface {
	Register(ctx context.Context, name, email, password string) (*models.UserProfile, string, error)
	Login(ctx context.Context, email, password string) (*models.UserProfile, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	auth AuthProvider
}

func NewAuthController(auth AuthProvider) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates an account and returns the profile with a bearer token.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid request body", err))
		return
	}

	profile, token, err := ac.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": profile, "token": token})
}

// Login authenticates a user and returns the profile with a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid request body", err))
		return
	}

	profile, token, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile, "token": token})
}

// Profile returns the authenticated caller's profile.
func (ac *AuthController) Profile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	profile, err := ac.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}
