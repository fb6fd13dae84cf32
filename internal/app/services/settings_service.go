package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/helpers"
)

// reportingFallback is the gap between issue and reporting when neither the
// campus nor the student has a reporting date.
const reportingFallback = 7 * 24 * time.Hour

// SettingsService resolves and validates per-campus settings.
type SettingsService struct {
	settings SettingsStore
	campuses *Campuses
	location *time.Location
	now      Clock
	logger   zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings SettingsStore, campuses *Campuses, location *time.Location, now Clock, logger zerolog.Logger) *SettingsService {
	if now == nil {
		now = time.Now
	}
	return &SettingsService{
		settings: settings,
		campuses: campuses,
		location: location,
		now:      now,
		logger:   logger,
	}
}

// Get returns the settings of a campus, creating them on first use.
func (s *SettingsService) Get(ctx context.Context, campusKey string) (*models.CampusSettings, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetOrCreate(ctx, campus.Key, s.campuses.Defaults(campus))
	if err != nil {
		return nil, apperrors.NewStorageError("could not load campus settings", err)
	}
	return settings, nil
}

// Update validates upd against the current settings and commits it. The
// first failing rule is returned as a *apperrors.ValidationError and nothing
// is written.
func (s *SettingsService) Update(ctx context.Context, campusKey string, upd models.SettingsUpdate) (*models.CampusSettings, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}

	today := helpers.DateOnly(s.now(), s.location)
	updated, err := s.settings.Update(ctx, campus.Key, s.campuses.Defaults(campus), upd,
		func(current *models.CampusSettings) error {
			return ValidateSettingsUpdate(upd, current, today)
		})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrValidationFailed) {
			return nil, err
		}
		return nil, apperrors.NewStorageError("could not update campus settings", err)
	}

	s.logger.Info().Str("campus", campus.Key).Int64("current_sequence", updated.CurrentSequence).Msg("Campus settings updated")
	return updated, nil
}

// ValidateSettingsUpdate checks upd against current. Rules run in a fixed
// order and the first failure is returned: starting sequence, then the
// term 1 to 3 reporting dates (future, then weekday), then the format.
// today is midnight of the current date in the campus time zone.
func ValidateSettingsUpdate(upd models.SettingsUpdate, current *models.CampusSettings, today time.Time) error {
	if upd.StartingSequence != nil && *upd.StartingSequence < current.CurrentSequence {
		return apperrors.NewValidationError("startingSequence",
			fmt.Sprintf("Starting number cannot be less than the current sequence (%d)", current.CurrentSequence))
	}

	for i, d := range upd.ReportingDates {
		if d == nil {
			continue
		}
		term := i + models.MinTerm
		field := fmt.Sprintf("term%dReportingDate", term)
		date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, today.Location())

		if !date.After(today) {
			return apperrors.NewValidationError(field,
				fmt.Sprintf("Term %d Reporting Date must be a future date (not today or past).", term))
		}
		if !helpers.IsWeekday(date) {
			return apperrors.NewValidationError(field,
				fmt.Sprintf("Term %d Reporting Date must be a weekday (Monday to Friday).", term))
		}
	}

	if upd.AdmissionNumberFormat != nil {
		format := strings.TrimSpace(*upd.AdmissionNumberFormat)
		if format == "" || !strings.Contains(format, SeqToken) {
			return apperrors.NewValidationError("admissionNumberFormat", "Admission number format must contain {seq}")
		}
	}
	return nil
}

// ReportingDateFor picks the reporting date printed on a student's letter:
// the campus date for the student's term, else the student's own date,
// else a week after issue.
func ReportingDateFor(settings *models.CampusSettings, student *models.Student, issuedOn time.Time) time.Time {
	if d := settings.ReportingDate(student.Term); d != nil {
		return *d
	}
	if student.ReportingDate != nil {
		return *student.ReportingDate
	}
	return issuedOn.Add(reportingFallback)
}
