package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/app/repositories"
	"github.com/braxton0054/eavisystem/internal/app/services"
	"github.com/braxton0054/eavisystem/internal/middleware"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/helpers"
)

// RegistrationService admits students.
type RegistrationService interface {
	Register(ctx context.Context, campusKey string, req *dto.RegisterStudentRequest) (*dto.RegistrationResponse, error)
}

// StudentService looks up and administers students.
type StudentService interface {
	Lookup(ctx context.Context, campusKey, admissionNumber string) (*models.StudentDetail, error)
	List(ctx context.Context, campusKey string, filter repositories.StudentListFilter) ([]*models.StudentDetail, int64, error)
	UpdateStatus(ctx context.Context, campusKey string, id int64, status models.StudentStatus) error
	Delete(ctx context.Context, campusKey string, id int64) error
}

// DocumentService produces admission packages.
type DocumentService interface {
	Ensure(ctx context.Context, campusKey, admissionNumber string) (*services.GeneratedDocument, error)
}

// StudentController handles registration and student records
type StudentController struct {
	registrationService RegistrationService
	studentService      StudentService
	documentService     DocumentService
}

// NewStudentController creates a new StudentController
func NewStudentController(registrationService RegistrationService, studentService StudentService, documentService DocumentService) *StudentController {
	return &StudentController{
		registrationService: registrationService,
		studentService:      studentService,
		documentService:     documentService,
	}
}

// Register handles student registration
// @Summary Register a student
// @Description Issues an admission number and generates the admission package.
// @Tags students
// @Accept json
// @Produce json
// @Param campus path string true "Campus key"
// @Param request body dto.RegisterStudentRequest true "Applicant"
// @Success 201 {object} dto.StructuredResponse{data=dto.RegistrationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /{campus}/registration/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.registrationService.Register(ctx.Request.Context(), ctx.Param(campusParam), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Student registered successfully")
}

// Lookup finds a student by admission number
// @Summary Look up a student
// @Tags students
// @Produce json
// @Param campus path string true "Campus key"
// @Param admission_number query string true "Admission number"
// @Success 200 {object} dto.StructuredResponse{data=models.StudentDetail}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /{campus}/students/lookup [get]
func (c *StudentController) Lookup(ctx *gin.Context) {
	student, err := c.studentService.Lookup(ctx.Request.Context(), ctx.Param(campusParam), ctx.Query("admission_number"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Student retrieved successfully")
}

// DownloadDocument streams the student's admission package, generating it
// when it does not exist yet
// @Summary Download admission package
// @Tags students
// @Produce application/pdf
// @Param campus path string true "Campus key"
// @Param admission_number query string true "Admission number"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /{campus}/students/document [get]
func (c *StudentController) DownloadDocument(ctx *gin.Context) {
	admissionNumber := ctx.Query("admission_number")
	if admissionNumber == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("admission_number", "Admission number is required"))
		return
	}

	doc, err := c.documentService.Ensure(ctx.Request.Context(), ctx.Param(campusParam), admissionNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, doc.Filename, doc.Data)
}

// ListStudents returns one page of students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param status query string false "pending, admitted or rejected"
// @Param courseId query int false "Course ID"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentListResponse}
// @Router /{campus}/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := repositories.StudentListFilter{
		Status: models.StudentStatus(ctx.Query("status")),
		Limit:  limit,
		Offset: offset,
	}
	if raw := ctx.Query("courseId"); raw != "" {
		courseID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || courseID <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("courseId", "Course ID must be a positive number"))
			return
		}
		filter.CourseID = courseID
	}

	students, total, err := c.studentService.List(ctx.Request.Context(), ctx.Param(campusParam), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, "Students retrieved successfully")
}

// UpdateStatus changes a student's admission status
// @Summary Update student status
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentStatusRequest true "Status"
// @Success 200 {object} dto.SuccessResponse
// @Router /{campus}/students/{id}/status [put]
func (c *StudentController) UpdateStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "student")
	if !ok {
		return
	}
	var req dto.UpdateStudentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.studentService.UpdateStatus(ctx.Request.Context(), ctx.Param(campusParam), id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Student status updated successfully"})
}

// DeleteStudent removes a student record
// @Summary Delete a student
// @Tags students
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param id path int true "Student ID"
// @Success 204
// @Router /{campus}/students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := idParam(ctx, "student")
	if !ok {
		return
	}
	if err := c.studentService.Delete(ctx.Request.Context(), ctx.Param(campusParam), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
