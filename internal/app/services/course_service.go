package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// CourseService handles course bookkeeping.
type CourseService struct {
	courses  CourseStore
	fees     ArtifactStore
	campuses *Campuses
	logger   zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, fees ArtifactStore, campuses *Campuses, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses:  courses,
		fees:     fees,
		campuses: campuses,
		logger:   logger,
	}
}

// List returns the courses of a campus, optionally for one department.
func (s *CourseService) List(ctx context.Context, campusKey, department string) ([]*models.Course, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.List(ctx, campus.Key, strings.TrimSpace(department))
	if err != nil {
		return nil, apperrors.NewStorageError("could not list courses", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

// Get returns one course.
func (s *CourseService) Get(ctx context.Context, campusKey string, id int64) (*models.Course, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, campus.Key, id)
	if err != nil {
		return nil, wrapStoreError(err, "could not load course")
	}
	return course, nil
}

// Departments lists the departments that offer courses.
func (s *CourseService) Departments(ctx context.Context, campusKey string) ([]string, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}
	departments, err := s.courses.ListDepartments(ctx, campus.Key)
	if err != nil {
		return nil, apperrors.NewStorageError("could not list departments", err)
	}
	return departments, nil
}

// Create adds a course.
func (s *CourseService) Create(ctx context.Context, campusKey string, req *dto.CourseRequest) (*models.Course, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}
	course, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	course.Campus = campus.Key

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, wrapStoreError(err, "could not create course")
	}
	s.logger.Info().Str("campus", campus.Key).Int64("course_id", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// Update replaces a course.
func (s *CourseService) Update(ctx context.Context, campusKey string, id int64, req *dto.CourseRequest) (*models.Course, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}
	course, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	course.ID = id
	course.Campus = campus.Key

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, wrapStoreError(err, "could not update course")
	}
	s.logger.Info().Str("campus", campus.Key).Int64("course_id", id).Msg("Course updated")
	return course, nil
}

// Delete removes a course that no student is enrolled in.
func (s *CourseService) Delete(ctx context.Context, campusKey string, id int64) error {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, campus.Key, id); err != nil {
		return wrapStoreError(err, "could not delete course")
	}
	s.logger.Info().Str("campus", campus.Key).Int64("course_id", id).Msg("Course deleted")
	return nil
}

func (s *CourseService) fromRequest(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:          strings.TrimSpace(req.Name),
		Department:    strings.TrimSpace(req.Department),
		FeePerTerm:    req.FeePerTerm,
		FeePerYear:    req.FeePerYear,
		DurationYears: req.DurationYears,
		MinimumGrade:  strings.ToUpper(strings.TrimSpace(req.MinimumGrade)),
	}

	if req.FeeStructureFile != nil && strings.TrimSpace(*req.FeeStructureFile) != "" {
		name, err := feeFilename(strings.TrimSpace(*req.FeeStructureFile))
		if err != nil {
			return nil, apperrors.NewValidationError("feeStructureFile", "Invalid fee structure filename")
		}
		ok, err := s.fees.Exists(ctx, FeeDir+"/"+name)
		if err != nil {
			return nil, apperrors.NewStorageError("could not check fee structure", err)
		}
		if !ok {
			return nil, apperrors.NewValidationError("feeStructureFile", "Fee structure file has not been uploaded")
		}
		course.FeeStructureFile = &name
	}
	return course, nil
}

// wrapStoreError keeps caller-facing errors and marks the rest as storage
// failures.
func wrapStoreError(err error, message string) error {
	if apperrors.Is(err,
		apperrors.ErrCampusNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrAdminNotFound,
		apperrors.ErrCourseCodeExists,
		apperrors.ErrCourseHasStudents,
		apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrValidationFailed,
	) {
		return err
	}
	return apperrors.NewStorageError(message, err)
}
