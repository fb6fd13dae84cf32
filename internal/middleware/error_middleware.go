package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/braxton0054/eavisystem/internal/app/models/dto"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and error body.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetail(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetail(err error) (int, *dto.ErrorDetail) {
	var verr *apperrors.ValidationError
	var cerr *apperrors.CustomError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, verr.Message).WithField(verr.Field)
	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeStorageError, "Storage is temporarily unavailable")
	case errors.Is(err, apperrors.ErrCampusNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeCampusNotFound, "Campus not found")
	case apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrCourseNotFound, apperrors.ErrFeeFileNotFound, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err))
	case apperrors.Is(err, apperrors.ErrCourseCodeExists, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOf(err))
	case apperrors.Is(err, apperrors.ErrCourseHasStudents, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, messageOf(err))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")
	case errors.Is(err, apperrors.ErrBadRequest):
		msg := "Bad request"
		if errors.As(err, &cerr) {
			msg = cerr.Message
		}
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, msg)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// messageOf prefers the caller-facing message of a CustomError.
func messageOf(err error) string {
	var cerr *apperrors.CustomError
	if errors.As(err, &cerr) && cerr.Message != "" {
		return cerr.Message
	}
	return err.Error()
}

// HandleBindingError answers a request whose body or query failed to bind.
// The first failing field is reported; when several fail, all of them are
// listed in details.
func HandleBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, formatValidationError(fe)).WithField(fe.Field())
		if len(verrs) > 1 {
			all := dto.NewValidationErrors()
			for _, fe := range verrs {
				all.AddError(fe.Field(), formatValidationError(fe))
			}
			detail.WithDetails(all)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
