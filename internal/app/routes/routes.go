package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/controllers"
	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/middleware"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Settings *controllers.SettingsController
	Students *controllers.StudentController
	Courses  *controllers.CourseController
	Fees     *controllers.FeeController
}

// HealthCheck reports whether the service can reach its dependencies.
type HealthCheck func(c *gin.Context) error

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctl Controllers, authMiddleware *middleware.AuthMiddleware, health HealthCheck) {
	v1 := router.Group("/api/v1")

	// Every route is scoped to one campus database.
	campus := v1.Group("/:campus")
	{
		campus.POST("/admin/login", ctl.Auth.Login)

		campus.GET("/settings", ctl.Settings.GetSettings)
		campus.POST("/registration/register", ctl.Students.Register)
		campus.GET("/students/lookup", ctl.Students.Lookup)
		campus.GET("/students/document", ctl.Students.DownloadDocument)

		campus.GET("/courses", ctl.Courses.ListCourses)
		campus.GET("/courses/:id", ctl.Courses.GetCourse)
		campus.GET("/departments", ctl.Courses.ListDepartments)

		campus.GET("/fees", ctl.Fees.ListFees)
		campus.GET("/fees/download/:filename", ctl.Fees.DownloadFee)
	}

	admin := campus.Group("")
	admin.Use(authMiddleware.AdminAuth())
	{
		admin.PUT("/settings", ctl.Settings.UpdateSettings)

		admin.GET("/students", ctl.Students.ListStudents)
		admin.PUT("/students/:id/status", ctl.Students.UpdateStatus)
		admin.DELETE("/students/:id", ctl.Students.DeleteStudent)

		admin.POST("/courses", ctl.Courses.CreateCourse)
		admin.PUT("/courses/:id", ctl.Courses.UpdateCourse)
		admin.DELETE("/courses/:id", ctl.Courses.DeleteCourse)

		admin.POST("/fees/upload", ctl.Fees.UploadFee)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c); err != nil {
				detail := dto.NewErrorDetail(dto.ErrorCodeStorageError, "Service unavailable").WithDetails(err.Error())
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Service healthy"))
	})

	router.NoRoute(func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("Route not found"))
	})
}
