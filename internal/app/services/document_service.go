package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/braxton0054/eavisystem/internal/admission"
	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/helpers"
)

// PackageAssembler turns document input into a finished package.
type PackageAssembler interface {
	Assemble(ctx context.Context, in admission.Input) (*admission.Package, error)
}

// GeneratedDocument is a student's stored admission package.
type GeneratedDocument struct {
	Filename string
	Path     string
	Data     []byte
	// Generated is false when a previously stored package was reused.
	Generated bool
}

// DocumentConfig holds the fixed inputs of every package.
type DocumentConfig struct {
	Institution admission.Institution
	Assets      admission.Assets
	Location    *time.Location
	Timeout     time.Duration
}

// DocumentService produces admission packages at most once per student.
type DocumentService struct {
	students  StudentStore
	courses   CourseStore
	settings  SettingsStore
	campuses  *Campuses
	assembler PackageAssembler
	store     ArtifactStore
	config    DocumentConfig
	now       Clock
	group     singleflight.Group
	logger    zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	students StudentStore,
	courses CourseStore,
	settings SettingsStore,
	campuses *Campuses,
	assembler PackageAssembler,
	store ArtifactStore,
	config DocumentConfig,
	now Clock,
	logger zerolog.Logger,
) *DocumentService {
	if now == nil {
		now = time.Now
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &DocumentService{
		students:  students,
		courses:   courses,
		settings:  settings,
		campuses:  campuses,
		assembler: assembler,
		store:     store,
		config:    config,
		now:       now,
		logger:    logger,
	}
}

// ArtifactName derives the package filename from the student's name and
// admission number.
func ArtifactName(student *models.Student) string {
	return helpers.SanitizeFilename(student.FullName) + "_" + helpers.SanitizeFilename(student.AdmissionNumber) + ".pdf"
}

// artifactPath locates a package inside its campus directory. Admission
// numbers are only unique within a campus.
func artifactPath(campusKey, filename string) string {
	return AdmissionDir + "/" + campusKey + "/" + filename
}

// Ensure returns the student's admission package, generating and recording
// it only when no stored package exists. Concurrent calls for the same
// student share one generation.
func (s *DocumentService) Ensure(ctx context.Context, campusKey, admissionNumber string) (*GeneratedDocument, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}

	v, err, _ := s.group.Do(campus.Key+"|"+admissionNumber, func() (interface{}, error) {
		// Shared by every waiting caller, so one caller's cancellation must
		// not fail the others.
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Timeout)
		defer cancel()
		return s.ensure(genCtx, campus, admissionNumber)
	})
	if err != nil {
		return nil, err
	}
	return v.(*GeneratedDocument), nil
}

func (s *DocumentService) ensure(ctx context.Context, campus Campus, admissionNumber string) (*GeneratedDocument, error) {
	detail, err := s.students.GetByAdmissionNumber(ctx, campus.Key, admissionNumber)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, apperrors.NewStorageError("could not load student", err)
	}
	student := &detail.Student
	log := s.logger.With().Str("campus", campus.Key).Str("admission_number", admissionNumber).Logger()

	candidate := ArtifactName(student)
	if student.DocumentPath != nil && *student.DocumentPath != "" {
		candidate = *student.DocumentPath
	}

	stored := artifactPath(campus.Key, candidate)
	exists, err := s.store.Exists(ctx, stored)
	if err != nil {
		return nil, apperrors.NewStorageError("could not check stored document", err)
	}
	if exists {
		data, err := s.store.ReadFile(ctx, stored)
		if err != nil {
			return nil, apperrors.NewStorageError("could not read stored document", err)
		}
		if student.DocumentPath == nil || *student.DocumentPath == "" {
			if err := s.students.SetDocumentPath(ctx, campus.Key, student.ID, candidate); err != nil {
				return nil, apperrors.NewStorageError("could not record admission package", err)
			}
		}
		log.Debug().Str("filename", candidate).Msg("Reusing stored admission package")
		return &GeneratedDocument{Filename: candidate, Path: stored, Data: data}, nil
	}
	if student.DocumentPath != nil {
		log.Warn().Str("filename", candidate).Msg("Stored admission package missing, regenerating")
	}

	var (
		course   *models.Course
		settings *models.CampusSettings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		course, err = s.courses.GetByID(gctx, campus.Key, student.CourseID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.GetOrCreate(gctx, campus.Key, s.campuses.Defaults(campus))
		return err
	})
	if err := g.Wait(); err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, apperrors.NewStorageError("could not load document data", err)
	}

	pkg, err := s.assembler.Assemble(ctx, s.input(student, course, settings))
	if err != nil {
		return nil, apperrors.NewStorageError("could not generate admission package", err)
	}

	filename := ArtifactName(student)
	path := artifactPath(campus.Key, filename)
	if err := s.store.WriteFile(ctx, path, pkg.Data); err != nil {
		return nil, apperrors.NewStorageError("could not store admission package", err)
	}

	if student.DocumentPath == nil || *student.DocumentPath != filename {
		if err := s.students.SetDocumentPath(ctx, campus.Key, student.ID, filename); err != nil {
			if rmErr := s.store.Remove(context.WithoutCancel(ctx), path); rmErr != nil {
				log.Error().Err(rmErr).Str("path", path).Msg("Failed to remove unrecorded admission package")
			}
			return nil, apperrors.NewStorageError("could not record admission package", err)
		}
	}

	log.Info().
		Str("filename", filename).
		Int("pages", pkg.Pages).
		Bool("fee_structure", pkg.FeeAppended).
		Msg("Admission package generated")
	return &GeneratedDocument{Filename: filename, Path: path, Data: pkg.Data, Generated: true}, nil
}

func (s *DocumentService) input(student *models.Student, course *models.Course, settings *models.CampusSettings) admission.Input {
	issuedOn := s.now().In(s.config.Location)
	reporting := ReportingDateFor(settings, student, issuedOn)

	info := admission.CourseInfo{
		Name:       course.Name,
		Department: course.Department,
		FeePerTerm: course.FeePerTerm,
		FeePerYear: course.FeePerYear,
	}
	if course.FeeStructureFile != nil {
		info.FeeStructureFile = *course.FeeStructureFile
	}

	return admission.Input{
		Student: admission.StudentInfo{
			Name:            student.FullName,
			AdmissionNumber: student.AdmissionNumber,
		},
		Course:        info,
		Institution:   s.config.Institution,
		Assets:        s.config.Assets,
		IssuedOn:      issuedOn,
		ReportingDate: &reporting,
	}
}
