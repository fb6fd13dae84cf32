package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/auth"
)

// AuthService handles admin authentication
type AuthService struct {
	admins     AdminStore
	campuses   *Campuses
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(admins AdminStore, campuses *Campuses, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		admins:     admins,
		campuses:   campuses,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks an admin's credentials and issues an access token for the
// campus. Unknown users and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, campusKey string, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByUsername(ctx, campus.Key, strings.TrimSpace(req.Username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewStorageError("could not load admin", err)
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.logger.Warn().Str("campus", campus.Key).Str("username", admin.Username).Msg("Failed admin login")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("campus", campus.Key).Str("username", admin.Username).Msg("Admin logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Campus:      campus.Key,
		Username:    admin.Username,
	}, nil
}

// EnsureAdmin creates the admin when the campus does not have it yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, campusKey, username, password string) error {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = s.admins.Create(ctx, &models.Admin{Username: username, PasswordHash: hash, Campus: campus.Key})
	if apperrors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info().Str("campus", campus.Key).Str("username", username).Msg("Default admin created")
	return nil
}
