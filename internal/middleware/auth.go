package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

const AdminKey = "admin"

// TokenVerifier checks an admin session token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AdminAuth rejects requests without a valid admin session. An expired
// session is reported separately so the dashboard can send the user back
// to the login screen.
func AdminAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "missing authorization header"})
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "invalid authorization header format"})
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "empty token"})
			return
		}

		subject, err := verifier.Verify(tokenString)
		if errors.Is(err, services.ErrSessionExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "session expired", Message: "please log in again"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "invalid token"})
			return
		}

		c.Set(AdminKey, subject)
		c.Next()
	}
}
