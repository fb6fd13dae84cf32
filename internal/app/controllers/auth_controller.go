package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/middleware"
)

// AuthService authenticates admins.
type AuthService interface {
	Login(ctx context.Context, campusKey string, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
}

// AuthController handles admin authentication
type AuthController struct {
	authService AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles admin login
// @Summary Admin login
// @Description Issues an access token valid for the campus admin routes.
// @Tags auth
// @Accept json
// @Produce json
// @Param campus path string true "Campus key"
// @Param request body dto.AdminLoginRequest true "Credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /{campus}/admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), ctx.Param(campusParam), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, token, "Login successful")
}
