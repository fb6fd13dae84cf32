package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// AdminSeeder creates an admin when the campus does not have it yet.
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, campusKey, username, password string) error
}

// CreateDefaultAdmins makes sure every campus has the configured admin
// account. A failing campus does not stop the others; all errors are
// returned joined.
func CreateDefaultAdmins(ctx context.Context, admins AdminSeeder, campuses []string, username, password string, lgr zerolog.Logger) error {
	if username == "" || password == "" {
		lgr.Warn().Msg("No default admin credentials configured, skipping admin seed")
		return nil
	}

	var finalErr error
	for _, campus := range campuses {
		if err := admins.EnsureAdmin(ctx, campus, username, password); err != nil {
			lgr.Error().Err(err).Str("campus", campus).Msg("Error creating default admin")
			finalErr = errors.Join(finalErr, fmt.Errorf("campus %s: %w", campus, err))
		}
	}
	lgr.Info().Int("campuses", len(campuses)).Msg("Default admin check finished")
	return finalErr
}
