package models

import "time"

// CampusSettings holds the admission-number counter and term reporting
// dates of one campus. CurrentSequence is the next value to be issued.
type CampusSettings struct {
	Campus                string        `json:"campus" db:"campus_name"`
	AdmissionNumberFormat string        `json:"admissionNumberFormat" db:"admission_number_format"`
	StartingSequence      int64         `json:"startingSequence" db:"admission_starting_number"`
	CurrentSequence       int64         `json:"currentSequence" db:"current_sequence_number"`
	ReportingDates        [3]*time.Time `json:"reportingDates"`
	CreatedAt             time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time     `json:"updatedAt" db:"updated_at"`
}

// ReportingDate returns the configured reporting date for a term (1..3).
func (s *CampusSettings) ReportingDate(term int) *time.Time {
	if s == nil || term < MinTerm || term > MaxTerm {
		return nil
	}
	return s.ReportingDates[term-1]
}

// SettingsDefaults seeds a campus settings row on first use.
type SettingsDefaults struct {
	AdmissionNumberFormat string
	StartingSequence      int64
}

// SettingsUpdate carries an administrator's changes. Nil fields are left
// unchanged, except reporting dates which are replaced as submitted.
type SettingsUpdate struct {
	AdmissionNumberFormat *string
	StartingSequence      *int64
	ReportingDates        [3]*time.Time
}
