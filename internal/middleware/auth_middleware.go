package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/pkg/auth"
)

// Context keys set by AdminAuth.
const (
	ContextAdminID  = "adminID"
	ContextUsername = "username"
	ContextCampus   = "campus"
)

// AuthMiddleware guards the admin endpoints.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// AdminAuth validates the bearer token and checks that it was issued for
// the campus named in the route.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing or malformed")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		if campus := c.Param("campus"); campus != "" && !strings.EqualFold(campus, claims.Campus) {
			detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("Token was not issued for this campus")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextCampus, claims.Campus)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	detail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}
