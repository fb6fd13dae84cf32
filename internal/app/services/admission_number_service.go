package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// Admission number template tokens.
const (
	SeqToken  = "{seq}"
	YearToken = "{year}"
)

// FormatAdmissionNumber substitutes {seq} and then {year} in template.
// Every other character is copied unchanged.
func FormatAdmissionNumber(template string, seq int64, year int) string {
	out := strings.ReplaceAll(template, SeqToken, strconv.FormatInt(seq, 10))
	return strings.ReplaceAll(out, YearToken, strconv.Itoa(year))
}

// AdmissionNumberService issues campus admission numbers.
type AdmissionNumberService struct {
	settings SettingsStore
	campuses *Campuses
	location *time.Location
	now      Clock
	logger   zerolog.Logger
}

// NewAdmissionNumberService creates a new AdmissionNumberService
func NewAdmissionNumberService(settings SettingsStore, campuses *Campuses, location *time.Location, now Clock, logger zerolog.Logger) *AdmissionNumberService {
	if now == nil {
		now = time.Now
	}
	return &AdmissionNumberService{
		settings: settings,
		campuses: campuses,
		location: location,
		now:      now,
		logger:   logger,
	}
}

// Issue increments the campus counter and returns the formatted number for
// the value it held. Every call consumes a value, even if the caller later
// fails to use the number.
func (s *AdmissionNumberService) Issue(ctx context.Context, campusKey string) (string, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return "", err
	}

	template, seq, err := s.settings.NextSequence(ctx, campus.Key, s.campuses.Defaults(campus))
	if err != nil {
		return "", apperrors.NewStorageError("could not issue admission number", err)
	}
	if !strings.Contains(template, SeqToken) {
		// A template without {seq} would hand every student the same number.
		return "", apperrors.NewValidationError("admissionNumberFormat", "Admission number format must contain {seq}")
	}

	number := FormatAdmissionNumber(template, seq, s.now().In(s.location).Year())
	s.logger.Info().Str("campus", campus.Key).Int64("sequence", seq).Str("admission_number", number).Msg("Admission number issued")
	return number, nil
}
