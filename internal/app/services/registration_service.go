package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/email"
	"github.com/braxton0054/eavisystem/internal/pkg/validation"
)

const emailTimeout = 30 * time.Second

// RegistrationService admits new students.
type RegistrationService struct {
	students    StudentStore
	courses     CourseStore
	numbers     *AdmissionNumberService
	documents   *DocumentService
	mailer      email.EmailService
	campuses    *Campuses
	institution string
	wg          sync.WaitGroup
	logger      zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	students StudentStore,
	courses CourseStore,
	numbers *AdmissionNumberService,
	documents *DocumentService,
	mailer email.EmailService,
	campuses *Campuses,
	institution string,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		students:    students,
		courses:     courses,
		numbers:     numbers,
		documents:   documents,
		mailer:      mailer,
		campuses:    campuses,
		institution: institution,
		logger:      logger,
	}
}

// Register issues an admission number, stores the student and produces the
// admission package, which is then emailed in the background. A number
// issued for a registration that fails to store is not reused.
func (s *RegistrationService) Register(ctx context.Context, campusKey string, req *dto.RegisterStudentRequest) (*dto.RegistrationResponse, error) {
	campus, err := s.campuses.Lookup(campusKey)
	if err != nil {
		return nil, err
	}

	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.Campus = campus.Key

	// Fail before consuming a number when the course does not exist.
	if _, err := s.courses.GetByID(ctx, campus.Key, student.CourseID); err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewValidationError("courseId", "Selected course does not exist")
		}
		return nil, apperrors.NewStorageError("could not load course", err)
	}

	number, err := s.numbers.Issue(ctx, campus.Key)
	if err != nil {
		return nil, err
	}
	student.AdmissionNumber = number

	if err := s.students.Create(ctx, student); err != nil {
		s.logger.Error().Err(err).Str("campus", campus.Key).Str("admission_number", number).Msg("Issued admission number left unused")
		return nil, wrapStoreError(err, "could not register student")
	}

	log := s.logger.With().Str("campus", campus.Key).Str("admission_number", number).Logger()
	log.Info().Int64("student_id", student.ID).Msg("Student registered")

	resp := &dto.RegistrationResponse{Student: student, AdmissionNumber: number}

	doc, err := s.documents.Ensure(ctx, campus.Key, number)
	if err != nil {
		// The student is registered; the package is generated again on download.
		log.Error().Err(err).Msg("Admission package generation failed")
		return resp, nil
	}
	resp.DocumentFilename = doc.Filename
	student.DocumentPath = &doc.Filename

	s.sendAsync(email.AdmissionMessage(s.institution, student.FullName, student.Email, number, doc.Filename, doc.Data), log)
	return resp, nil
}

func (s *RegistrationService) sendAsync(msg email.Message, log zerolog.Logger) {
	if s.mailer == nil || msg.ToAddress == "" {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.Error().Err(err).Str("to", msg.ToAddress).Msg("Failed to email admission package")
		}
	}()
}

// Wait blocks until background emails have finished.
func (s *RegistrationService) Wait() {
	s.wg.Wait()
}

func studentFromRequest(req *dto.RegisterStudentRequest) (*models.Student, error) {
	student := &models.Student{
		FullName:    strings.Join(strings.Fields(req.FullName), " "),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Location:    strings.TrimSpace(req.Location),
		CourseID:    req.CourseID,
		Term:        req.Term,
		Status:      models.StatusAdmitted,
		KCSEGrade:   strings.ToUpper(strings.TrimSpace(req.KCSEGrade)),
	}
	if student.FullName == "" {
		return nil, apperrors.NewValidationError("fullName", "Full name is required")
	}
	if student.Term == 0 {
		student.Term = models.MinTerm
	}
	if student.Term < models.MinTerm || student.Term > models.MaxTerm {
		return nil, apperrors.NewValidationError("term", "Term must be 1, 2 or 3")
	}
	if student.KCSEGrade == "" || strings.EqualFold(student.KCSEGrade, validation.NotProvided) {
		student.KCSEGrade = validation.NotProvided
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth", "Date of birth must be YYYY-MM-DD")
		}
		student.DateOfBirth = &dob
	}
	return student, nil
}
