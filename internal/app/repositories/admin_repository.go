package repositories

import (
	"context"
	"fmt"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/db"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/dberrors"
)

// AdminRepository handles database operations for admin users
type AdminRepository struct {
	registry *db.Registry
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(registry *db.Registry) *AdminRepository {
	return &AdminRepository{registry: registry}
}

// GetByUsername retrieves an admin of a campus.
func (r *AdminRepository) GetByUsername(ctx context.Context, campus, username string) (*models.Admin, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	var a models.Admin
	err = database.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, campus_name, created_at
		FROM admin_users
		WHERE campus_name = $1 AND username = $2`, campus, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Campus, &a.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &a, nil
}

// Create inserts an admin user.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	database, err := r.registry.Get(admin.Campus)
	if err != nil {
		return err
	}

	err = database.Pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, password_hash, campus_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		admin.Username, admin.PasswordHash, admin.Campus,
	).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}
