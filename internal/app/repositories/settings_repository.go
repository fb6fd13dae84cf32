package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/db"
)

const settingsColumns = `
	campus_name, admission_number_format, admission_starting_number, current_sequence_number,
	reporting_date_term1, reporting_date_term2, reporting_date_term3, created_at, updated_at`

// SettingsRepository stores the per-campus admission counter and reporting dates.
type SettingsRepository struct {
	registry *db.Registry
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(registry *db.Registry) *SettingsRepository {
	return &SettingsRepository{registry: registry}
}

func scanSettings(row pgx.Row) (*models.CampusSettings, error) {
	var s models.CampusSettings
	err := row.Scan(
		&s.Campus,
		&s.AdmissionNumberFormat,
		&s.StartingSequence,
		&s.CurrentSequence,
		&s.ReportingDates[0],
		&s.ReportingDates[1],
		&s.ReportingDates[2],
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func ensureSettings(ctx context.Context, q db.Querier, campus string, defaults models.SettingsDefaults) error {
	_, err := q.Exec(ctx, `
		INSERT INTO campus_settings (campus_name, admission_number_format, admission_starting_number, current_sequence_number)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (campus_name) DO NOTHING`,
		campus, defaults.AdmissionNumberFormat, defaults.StartingSequence)
	return err
}

// GetOrCreate returns the settings row of a campus, creating it from defaults
// on first use.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, campus string, defaults models.SettingsDefaults) (*models.CampusSettings, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	if err := ensureSettings(ctx, database.Pool, campus, defaults); err != nil {
		return nil, fmt.Errorf("error creating settings: %w", err)
	}

	settings, err := scanSettings(database.Pool.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM campus_settings WHERE campus_name = $1`, campus))
	if err != nil {
		return nil, fmt.Errorf("error retrieving settings: %w", err)
	}
	return settings, nil
}

// Update applies upd under a row lock. check sees the locked row and may veto
// the update; when it returns an error nothing is written. The counter is
// raised to the new starting sequence when that is higher and never lowered.
func (r *SettingsRepository) Update(
	ctx context.Context,
	campus string,
	defaults models.SettingsDefaults,
	upd models.SettingsUpdate,
	check func(current *models.CampusSettings) error,
) (*models.CampusSettings, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	var updated *models.CampusSettings
	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := ensureSettings(ctx, tx, campus, defaults); err != nil {
			return fmt.Errorf("error creating settings: %w", err)
		}

		current, err := scanSettings(tx.QueryRow(ctx,
			`SELECT `+settingsColumns+` FROM campus_settings WHERE campus_name = $1 FOR UPDATE`, campus))
		if err != nil {
			return fmt.Errorf("error locking settings: %w", err)
		}
		if check != nil {
			if err := check(current); err != nil {
				return err
			}
		}

		updated, err = scanSettings(tx.QueryRow(ctx, `
			UPDATE campus_settings SET
				admission_number_format = COALESCE($2::varchar, admission_number_format),
				admission_starting_number = COALESCE($3::bigint, admission_starting_number),
				current_sequence_number = GREATEST(current_sequence_number, COALESCE($3::bigint, current_sequence_number)),
				reporting_date_term1 = $4::date,
				reporting_date_term2 = $5::date,
				reporting_date_term3 = $6::date,
				updated_at = NOW()
			WHERE campus_name = $1
			RETURNING `+settingsColumns,
			campus,
			upd.AdmissionNumberFormat,
			upd.StartingSequence,
			upd.ReportingDates[0],
			upd.ReportingDates[1],
			upd.ReportingDates[2],
		))
		if err != nil {
			return fmt.Errorf("error updating settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// NextSequence issues one sequence value and returns it with the campus
// format template. Row creation, increment and read happen in one
// statement, so concurrent callers never observe the same value.
func (r *SettingsRepository) NextSequence(ctx context.Context, campus string, defaults models.SettingsDefaults) (string, int64, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return "", 0, err
	}

	var (
		format string
		seq    int64
	)
	err = database.Pool.QueryRow(ctx, `
		INSERT INTO campus_settings (campus_name, admission_number_format, admission_starting_number, current_sequence_number)
		VALUES ($1, $2, $3, $3 + 1)
		ON CONFLICT (campus_name) DO UPDATE
			SET current_sequence_number = campus_settings.current_sequence_number + 1,
				updated_at = NOW()
		RETURNING admission_number_format, current_sequence_number - 1`,
		campus, defaults.AdmissionNumberFormat, defaults.StartingSequence,
	).Scan(&format, &seq)
	if err != nil {
		return "", 0, fmt.Errorf("error issuing sequence: %w", err)
	}
	return format, seq, nil
}
