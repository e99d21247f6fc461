package api

import (
	"coachvision/backend/internal/auth"
	"coachvision/backend/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
	ContextClaimsKey = "claims"
)

// AuthMiddleware validates the bearer token, including revocation, and
// stores the caller's id for downstream handlers.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, CodeUnauthenticated, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			abortWithError(c, http.StatusUnauthorized, CodeUnauthenticated, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortWithError(c, http.StatusUnauthorized, CodeUnauthenticated, "Token has expired")
			case errors.Is(err, auth.ErrTokenRevoked):
				abortWithError(c, http.StatusUnauthorized, CodeUnauthenticated, "Token has been revoked")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingUserID):
				abortWithError(c, http.StatusUnauthorized, CodeUnauthenticated, "Invalid token")
			default:
				respondError(c, err)
			}
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok || idStr == "" {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}

func getClaimsFromContext(c *gin.Context) (*auth.Claims, error) {
	raw, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, errors.New("token claims not found in context")
	}
	claims, ok := raw.(*auth.Claims)
	if !ok {
		return nil, errors.New("invalid claims type in context")
	}
	return claims, nil
}

// requireCaller aborts with 401 when the middleware did not run.
func requireCaller(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, CodeUnauthenticated, "Authentication required")
		return "", false
	}
	return userID, true
}

// requireSelf checks that a user id named in the path or body is the caller.
func requireSelf(c *gin.Context, callerID, userID string) bool {
	if userID != callerID {
		abortWithError(c, http.StatusForbidden, CodeForbidden, "Not authorized to access other users' data")
		return false
	}
	return true
}
