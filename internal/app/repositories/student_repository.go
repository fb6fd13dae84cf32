package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/db"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/dberrors"
)

// Unique constraint on (campus_name, admission_number).
const studentAdmissionNumberKey = "students_campus_admission_number_key"

const studentDetailSelect = `
	SELECT s.student_id, s.admission_number, s.full_name, s.email, s.phone_number, s.date_of_birth,
		s.location, s.course_id, s.term, s.campus_name, s.status, s.kcse_grade, s.admission_date,
		s.reporting_date, s.pdf_path, s.created_at, s.updated_at,
		COALESCE(c.course_name, ''), COALESCE(c.department, ''), c.fee_structure_pdf_name
	FROM students s
	LEFT JOIN courses c ON c.course_id = s.course_id`

// StudentListFilter narrows List results. Zero values match everything.
type StudentListFilter struct {
	Status   models.StudentStatus
	CourseID int64
	Limit    int
	Offset   int
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	registry *db.Registry
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(registry *db.Registry) *StudentRepository {
	return &StudentRepository{registry: registry}
}

func scanStudentDetail(row pgx.Row) (*models.StudentDetail, error) {
	var d models.StudentDetail
	err := row.Scan(
		&d.ID,
		&d.AdmissionNumber,
		&d.FullName,
		&d.Email,
		&d.PhoneNumber,
		&d.DateOfBirth,
		&d.Location,
		&d.CourseID,
		&d.Term,
		&d.Campus,
		&d.Status,
		&d.KCSEGrade,
		&d.AdmissionDate,
		&d.ReportingDate,
		&d.DocumentPath,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CourseName,
		&d.Department,
		&d.FeeStructureFile,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a student and fills in the generated fields.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	database, err := r.registry.Get(student.Campus)
	if err != nil {
		return err
	}

	err = database.Pool.QueryRow(ctx, `
		INSERT INTO students (admission_number, full_name, email, phone_number, date_of_birth, location,
			course_id, term, campus_name, status, kcse_grade, reporting_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING student_id, admission_date, created_at, updated_at`,
		student.AdmissionNumber, student.FullName, student.Email, student.PhoneNumber, student.DateOfBirth,
		student.Location, student.CourseID, student.Term, student.Campus, student.Status, student.KCSEGrade,
		student.ReportingDate,
	).Scan(&student.ID, &student.AdmissionDate, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, studentAdmissionNumberKey):
			return apperrors.NewConflictError("admission number already issued: " + student.AdmissionNumber)
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByAdmissionNumber retrieves a student with course details.
func (r *StudentRepository) GetByAdmissionNumber(ctx context.Context, campus, admissionNumber string) (*models.StudentDetail, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	detail, err := scanStudentDetail(database.Pool.QueryRow(ctx,
		studentDetailSelect+` WHERE s.campus_name = $1 AND s.admission_number = $2`, campus, admissionNumber))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return detail, nil
}

// GetByID retrieves a student with course details.
func (r *StudentRepository) GetByID(ctx context.Context, campus string, id int64) (*models.StudentDetail, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	detail, err := scanStudentDetail(database.Pool.QueryRow(ctx,
		studentDetailSelect+` WHERE s.campus_name = $1 AND s.student_id = $2`, campus, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return detail, nil
}

// List returns students newest first, with the total matching count.
func (r *StudentRepository) List(ctx context.Context, campus string, filter StudentListFilter) ([]*models.StudentDetail, int64, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, 0, err
	}

	where := ` WHERE s.campus_name = $1
		AND ($2::text = '' OR s.status = $2::text)
		AND ($3::bigint = 0 OR s.course_id = $3::bigint)`
	args := []any{campus, string(filter.Status), filter.CourseID}

	var total int64
	if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM students s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := database.Pool.Query(ctx,
		studentDetailSelect+where+` ORDER BY s.created_at DESC, s.student_id DESC LIMIT $4 OFFSET $5`,
		append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.StudentDetail
	for rows.Next() {
		d, err := scanStudentDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// UpdateStatus changes the admission status of a student.
func (r *StudentRepository) UpdateStatus(ctx context.Context, campus string, id int64, status models.StudentStatus) error {
	database, err := r.registry.Get(campus)
	if err != nil {
		return err
	}

	tag, err := database.Pool.Exec(ctx,
		`UPDATE students SET status = $3, updated_at = NOW() WHERE campus_name = $1 AND student_id = $2`,
		campus, id, status)
	if err != nil {
		return fmt.Errorf("error updating student status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student. The admission number is not returned to the pool.
func (r *StudentRepository) Delete(ctx context.Context, campus string, id int64) error {
	database, err := r.registry.Get(campus)
	if err != nil {
		return err
	}

	tag, err := database.Pool.Exec(ctx,
		`DELETE FROM students WHERE campus_name = $1 AND student_id = $2`, campus, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetDocumentPath records the filename of the student's generated package.
func (r *StudentRepository) SetDocumentPath(ctx context.Context, campus string, id int64, filename string) error {
	database, err := r.registry.Get(campus)
	if err != nil {
		return err
	}

	tag, err := database.Pool.Exec(ctx,
		`UPDATE students SET pdf_path = $3, updated_at = NOW() WHERE campus_name = $1 AND student_id = $2`,
		campus, id, filename)
	if err != nil {
		return fmt.Errorf("error recording document path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
