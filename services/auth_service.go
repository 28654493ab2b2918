package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront-backend/common/logger"
	"storefront-backend/models"
)

// UserStore is the persistence surface AuthService depends on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and returns the
// profile with a fresh access token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.UserProfile, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", newServiceError(http.StatusConflict, "an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Error("failed to look up user by email", zap.Error(err))
		return nil, "", newServiceError(http.StatusInternalServerError, "failed to register user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", zap.Error(err))
		return nil, "", newServiceError(http.StatusInternalServerError, "failed to register user")
	}

	user := &models.User{Name: name, Email: email, Password: string(hashed)}
	if err := s.users.Create(ctx, user); err != nil {
		logger.Log.Error("failed to create user", zap.Error(err))
		return nil, "", newServiceError(http.StatusInternalServerError, "failed to register user")
	}

	token, err := s.tokens.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		logger.Log.Error("failed to issue token", zap.Error(err))
		return nil, "", newServiceError(http.StatusInternalServerError, "failed to register user")
	}

	profile := user.Profile()
	logger.Log.Info("user registered", zap.String("user_id", user.ID.String()))
	return &profile, token, nil
}

// Login verifies credentials and returns the profile with a fresh access
// token. Unknown emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", newServiceError(http.StatusUnauthorized, "invalid email or password")
		}
		logger.Log.Error("failed to look up user by email", zap.Error(err))
		return nil, "", newServiceError(http.StatusInternalServerError, "failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", newServiceError(http.StatusUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		logger.Log.Error("failed to issue token", zap.Error(err))
		return nil, "", newServiceError(http.StatusInternalServerError, "failed to log in")
	}

	profile := user.Profile()
	return &profile, token, nil
}

// GetProfile returns the public profile for an authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newServiceError(http.StatusNotFound, "user not found")
		}
		logger.Log.Error("failed to look up user", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to load profile")
	}
	profile := user.Profile()
	return &profile, nil
}
