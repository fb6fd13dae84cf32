package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func int64p(v int64) *int64 { return &v }

func strp(s string) *string { return &s }

func newSettingsService(settings SettingsStore) *SettingsService {
	return NewSettingsService(settings, testCampuses(), eat, fixedClock, zerolog.Nop())
}

func TestValidateSettingsUpdate(t *testing.T) {
	today := time.Date(2026, time.October, 15, 0, 0, 0, 0, eat)
	current := &models.CampusSettings{CurrentSequence: 1050}

	tests := []struct {
		name      string
		upd       models.SettingsUpdate
		wantField string
		wantMsg   string
	}{
		{
			name: "valid weekdays for all terms",
			upd: models.SettingsUpdate{
				StartingSequence: int64p(1050),
				ReportingDates:   [3]*time.Time{date(2027, time.January, 11), date(2027, time.May, 3), date(2027, time.September, 6)},
			},
		},
		{
			name:      "starting sequence below counter",
			upd:       models.SettingsUpdate{StartingSequence: int64p(1049)},
			wantField: "startingSequence",
			wantMsg:   "Starting number cannot be less than the current sequence (1050)",
		},
		{
			name:      "reporting date today",
			upd:       models.SettingsUpdate{ReportingDates: [3]*time.Time{date(2026, time.October, 15)}},
			wantField: "term1ReportingDate",
			wantMsg:   "Term 1 Reporting Date must be a future date (not today or past).",
		},
		{
			name:      "reporting date in the past",
			upd:       models.SettingsUpdate{ReportingDates: [3]*time.Time{nil, date(2026, time.March, 2)}},
			wantField: "term2ReportingDate",
			wantMsg:   "Term 2 Reporting Date must be a future date (not today or past).",
		},
		{
			name:      "saturday",
			upd:       models.SettingsUpdate{ReportingDates: [3]*time.Time{nil, nil, date(2026, time.October, 17)}},
			wantField: "term3ReportingDate",
			wantMsg:   "Term 3 Reporting Date must be a weekday (Monday to Friday).",
		},
		{
			name:      "sunday",
			upd:       models.SettingsUpdate{ReportingDates: [3]*time.Time{date(2026, time.October, 18)}},
			wantField: "term1ReportingDate",
			wantMsg:   "Term 1 Reporting Date must be a weekday (Monday to Friday).",
		},
		{
			name: "starting sequence reported before dates",
			upd: models.SettingsUpdate{
				StartingSequence: int64p(1),
				ReportingDates:   [3]*time.Time{date(2026, time.October, 18)},
			},
			wantField: "startingSequence",
			wantMsg:   "Starting number cannot be less than the current sequence (1050)",
		},
		{
			name:      "earlier term reported first",
			upd:       models.SettingsUpdate{ReportingDates: [3]*time.Time{nil, date(2026, time.October, 15), date(2026, time.October, 17)}},
			wantField: "term2ReportingDate",
			wantMsg:   "Term 2 Reporting Date must be a future date (not today or past).",
		},
		{
			name:      "format without sequence",
			upd:       models.SettingsUpdate{AdmissionNumberFormat: strp("EAVI/{year}")},
			wantField: "admissionNumberFormat",
			wantMsg:   "Admission number format must contain {seq}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettingsUpdate(tt.upd, current, today)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestSettingsUpdate_PersistsValidDates(t *testing.T) {
	settings := newFakeSettings()
	svc := newSettingsService(settings)

	dates := [3]*time.Time{date(2027, time.January, 11), date(2027, time.May, 3), date(2027, time.September, 6)}
	updated, err := svc.Update(context.Background(), "twon", models.SettingsUpdate{
		AdmissionNumberFormat: strp("TW/{seq}/{year}"),
		StartingSequence:      int64p(1500),
		ReportingDates:        dates,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), updated.CurrentSequence)

	got, err := svc.Get(context.Background(), "twon")
	require.NoError(t, err)
	assert.Equal(t, "TW/{seq}/{year}", got.AdmissionNumberFormat)
	for term := models.MinTerm; term <= models.MaxTerm; term++ {
		require.NotNil(t, got.ReportingDate(term))
		assert.True(t, dates[term-1].Equal(*got.ReportingDate(term)))
	}
}

func TestSettingsUpdate_RejectedUpdateWritesNothing(t *testing.T) {
	settings := newFakeSettings()
	svc := newSettingsService(settings)

	_, err := svc.Update(context.Background(), "twon", models.SettingsUpdate{
		AdmissionNumberFormat: strp("NEW/{seq}"),
		ReportingDates:        [3]*time.Time{date(2027, time.January, 11), date(2027, time.January, 16)},
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	got, err := svc.Get(context.Background(), "twon")
	require.NoError(t, err)
	assert.Equal(t, "EAVI/{seq}/{year}", got.AdmissionNumberFormat)
	assert.Nil(t, got.ReportingDate(1))
}

func TestSettingsUpdate_NumbersContinueFromRaisedStart(t *testing.T) {
	settings := newFakeSettings()
	svc := newSettingsService(settings)
	numbers := newNumberService(settings)

	_, err := numbers.Issue(context.Background(), "west")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "west", models.SettingsUpdate{StartingSequence: int64p(3000)})
	require.NoError(t, err)

	number, err := numbers.Issue(context.Background(), "west")
	require.NoError(t, err)
	assert.Equal(t, "EAVI/3000/2026", number)
}

func TestSettingsService_StorageFailure(t *testing.T) {
	settings := newFakeSettings()
	settings.err = errors.New("timeout")
	svc := newSettingsService(settings)

	_, err := svc.Get(context.Background(), "twon")
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	_, err = svc.Update(context.Background(), "twon", models.SettingsUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestReportingDateFor(t *testing.T) {
	issued := time.Date(2026, time.October, 15, 9, 0, 0, 0, eat)
	termDate := date(2027, time.January, 11)
	ownDate := date(2026, time.November, 2)

	settings := &models.CampusSettings{ReportingDates: [3]*time.Time{nil, termDate}}

	got := ReportingDateFor(settings, &models.Student{Term: 2, ReportingDate: ownDate}, issued)
	assert.True(t, got.Equal(*termDate))

	got = ReportingDateFor(settings, &models.Student{Term: 1, ReportingDate: ownDate}, issued)
	assert.True(t, got.Equal(*ownDate))

	got = ReportingDateFor(settings, &models.Student{Term: 3}, issued)
	assert.True(t, got.Equal(issued.AddDate(0, 0, 7)))
}
