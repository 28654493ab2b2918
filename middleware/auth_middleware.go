package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/services"
)

const (
	UserContextKey  = "userID"
	EmailContextKey = "email"
)

// RequireAuth validates the bearer token and asserts the caller's identity
// into the gin context. Every cart, order and payment route sits behind it.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, "invalid token subject")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(UserContextKey, userID)
		c.Set(EmailContextKey, email)
		c.Next()
	}
}

// GetUserID reads the authenticated user id set by RequireAuth.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}

// GetEmail reads the authenticated email set by RequireAuth.
func GetEmail(c *gin.Context) (string, error) {
	if val, ok := c.Get(EmailContextKey); ok {
		if email, ok := val.(string); ok {
			return email, nil
		}
	}
	return "", errors.New("email not found in context")
}

func abortUnauthorized(c *gin.Context, message string) {
	appErr := apperrors.New(http.StatusUnauthorized, message, nil)
	_ = c.Error(appErr)
	c.AbortWithStatusJSON(appErr.Code, appErr)
}
