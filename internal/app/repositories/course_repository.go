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

const courseCodeKey = "courses_campus_code_key"

// Fees are read back as text so they print exactly as stored.
const courseColumns = `
	course_id, course_code, course_name, department, fee_per_term::text, fee_per_year::text,
	duration_years, minimum_kcse_grade, fee_structure_pdf_name, campus_name`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	registry *db.Registry
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(registry *db.Registry) *CourseRepository {
	return &CourseRepository{registry: registry}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Department,
		&c.FeePerTerm,
		&c.FeePerYear,
		&c.DurationYears,
		&c.MinimumGrade,
		&c.FeeStructureFile,
		&c.Campus,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func courseWriteError(err error, action string) error {
	if dberrors.IsDuplicateConstraintError(err, courseCodeKey) {
		return apperrors.ErrCourseCodeExists
	}
	return fmt.Errorf("error %s course: %w", action, err)
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	database, err := r.registry.Get(course.Campus)
	if err != nil {
		return err
	}

	err = database.Pool.QueryRow(ctx, `
		INSERT INTO courses (course_code, course_name, department, fee_per_term, fee_per_year,
			duration_years, minimum_kcse_grade, fee_structure_pdf_name, campus_name)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9)
		RETURNING course_id`,
		course.Code, course.Name, course.Department, course.FeePerTerm, course.FeePerYear,
		course.DurationYears, course.MinimumGrade, course.FeeStructureFile, course.Campus,
	).Scan(&course.ID)
	if err != nil {
		return courseWriteError(err, "creating")
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, campus string, id int64) (*models.Course, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	course, err := scanCourse(database.Pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE campus_name = $1 AND course_id = $2`, campus, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// List returns the courses of a campus, optionally for one department.
func (r *CourseRepository) List(ctx context.Context, campus, department string) ([]*models.Course, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	rows, err := database.Pool.Query(ctx, `SELECT `+courseColumns+` FROM courses
		WHERE campus_name = $1 AND ($2::text = '' OR department = $2::text)
		ORDER BY department, course_name`, campus, department)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// Update replaces the editable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	database, err := r.registry.Get(course.Campus)
	if err != nil {
		return err
	}

	tag, err := database.Pool.Exec(ctx, `
		UPDATE courses SET course_code = $3, course_name = $4, department = $5,
			fee_per_term = $6::numeric, fee_per_year = $7::numeric, duration_years = $8,
			minimum_kcse_grade = $9, fee_structure_pdf_name = $10
		WHERE campus_name = $1 AND course_id = $2`,
		course.Campus, course.ID, course.Code, course.Name, course.Department,
		course.FeePerTerm, course.FeePerYear, course.DurationYears, course.MinimumGrade, course.FeeStructureFile,
	)
	if err != nil {
		return courseWriteError(err, "updating")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course that no student references.
func (r *CourseRepository) Delete(ctx context.Context, campus string, id int64) error {
	database, err := r.registry.Get(campus)
	if err != nil {
		return err
	}

	tag, err := database.Pool.Exec(ctx, `DELETE FROM courses WHERE campus_name = $1 AND course_id = $2`, campus, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasStudents
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListDepartments returns the distinct department names of a campus.
func (r *CourseRepository) ListDepartments(ctx context.Context, campus string) ([]string, error) {
	database, err := r.registry.Get(campus)
	if err != nil {
		return nil, err
	}

	rows, err := database.Pool.Query(ctx,
		`SELECT DISTINCT department FROM courses WHERE campus_name = $1 ORDER BY department`, campus)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	departments := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}
