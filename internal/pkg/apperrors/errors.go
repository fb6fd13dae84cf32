package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// ErrStorage marks failures of the database or file storage that leave
	// no partial side effects behind.
	ErrStorage = errors.New("storage failure")
)

// Admissions errors
var (
	ErrCampusNotFound    = errors.New("campus not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrAdminNotFound     = errors.New("admin not found")
	ErrFeeFileNotFound   = errors.New("fee structure file not found")
	ErrCourseHasStudents = errors.New("course has registered students and cannot be deleted")
	ErrCourseCodeExists  = errors.New("course with this code already exists")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewStorageError wraps a storage failure so it maps to a server error.
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrStorage, cause),
		Message: message,
	}
}

// Is returns whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError pairs a sentinel with a caller-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// ValidationError reports a single rejected input field. The first failing
// rule produces it; nothing is applied when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
