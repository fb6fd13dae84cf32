package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/middleware"
)

// CourseService manages courses.
type CourseService interface {
	List(ctx context.Context, campusKey, department string) ([]*models.Course, error)
	Get(ctx context.Context, campusKey string, id int64) (*models.Course, error)
	Departments(ctx context.Context, campusKey string) ([]string, error)
	Create(ctx context.Context, campusKey string, req *dto.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, campusKey string, id int64, req *dto.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, campusKey string, id int64) error
}

// CourseController handles course-related operations
type CourseController struct {
	courseService CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses returns the campus courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param campus path string true "Campus key"
// @Param department query string false "Filter by department"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Course}
// @Router /{campus}/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context(), ctx.Param(campusParam), ctx.Query("department"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses, "Courses retrieved successfully")
}

// GetCourse returns one course
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param campus path string true "Campus key"
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /{campus}/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := idParam(ctx, "course")
	if !ok {
		return
	}
	course, err := c.courseService.Get(ctx.Request.Context(), ctx.Param(campusParam), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course, "Course retrieved successfully")
}

// ListDepartments returns the departments offering courses
// @Summary List departments
// @Tags courses
// @Produce json
// @Param campus path string true "Campus key"
// @Success 200 {object} dto.StructuredResponse{data=[]string}
// @Router /{campus}/departments [get]
func (c *CourseController) ListDepartments(ctx *gin.Context) {
	departments, err := c.courseService.Departments(ctx.Request.Context(), ctx.Param(campusParam))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, departments, "Departments retrieved successfully")
}

// CreateCourse adds a course
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.StructuredResponse{data=models.Course}
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /{campus}/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), ctx.Param(campusParam), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, course, "Course created successfully")
}

// UpdateCourse replaces a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.StructuredResponse{data=models.Course}
// @Router /{campus}/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := idParam(ctx, "course")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), ctx.Param(campusParam), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course, "Course updated successfully")
}

// DeleteCourse removes a course without students
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param id path int true "Course ID"
// @Success 204
// @Failure 409 {object} dto.ErrorResponse "Course has students"
// @Router /{campus}/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := idParam(ctx, "course")
	if !ok {
		return
	}
	if err := c.courseService.Delete(ctx.Request.Context(), ctx.Param(campusParam), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
