package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/repositories"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// StudentService handles student lookups and admin actions.
type StudentService struct {
	students StudentStore
	campuses *Campuses
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, campuses *Campuses, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		campuses: campuses,
		logger:   logger,
	}
}

// Lookup finds a student by admission number.
func (s *StudentService) Lookup(ctx context.Context, campusKey, admissionNumber string) (*models.StudentDetail, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}
	admissionNumber = strings.TrimSpace(admissionNumber)
	if admissionNumber == "" {
		return nil, apperrors.NewValidationError("admission_number", "Admission number is required")
	}

	student, err := s.students.GetByAdmissionNumber(ctx, campus.Key, admissionNumber)
	if err != nil {
		return nil, wrapStoreError(err, "could not load student")
	}
	return student, nil
}

// List returns one page of students and the total count.
func (s *StudentService) List(ctx context.Context, campusKey string, filter repositories.StudentListFilter) ([]*models.StudentDetail, int64, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperrors.NewValidationError("status", "Status must be one of pending, admitted, rejected")
	}

	students, total, err := s.students.List(ctx, campus.Key, filter)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("could not list students", err)
	}
	if students == nil {
		students = []*models.StudentDetail{}
	}
	return students, total, nil
}

// UpdateStatus changes a student's admission status.
func (s *StudentService) UpdateStatus(ctx context.Context, campusKey string, id int64, status models.StudentStatus) error {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return apperrors.NewValidationError("status", "Status must be one of pending, admitted, rejected")
	}

	if err := s.students.UpdateStatus(ctx, campus.Key, id, status); err != nil {
		return wrapStoreError(err, "could not update student status")
	}
	s.logger.Info().Str("campus", campus.Key).Int64("student_id", id).Str("status", string(status)).Msg("Student status updated")
	return nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, campusKey string, id int64) error {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return err
	}
	if err := s.students.Delete(ctx, campus.Key, id); err != nil {
		return wrapStoreError(err, "could not delete student")
	}
	s.logger.Info().Str("campus", campus.Key).Int64("student_id", id).Msg("Student deleted")
	return nil
}
