package services

import (
	"context"
	"strings"
	"time"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/app/repositories"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
	"github.com/braxton0054/eavisystem/internal/pkg/filestorage"
)

// Storage directories under the storage root.
const (
	AdmissionDir = "admission"
	FeeDir       = "fee"
)

// SettingsStore is the settings data access used by services.
type SettingsStore interface {
	GetOrCreate(ctx context.Context, campus string, defaults models.SettingsDefaults) (*models.CampusSettings, error)
	Update(ctx context.Context, campus string, defaults models.SettingsDefaults, upd models.SettingsUpdate,
		check func(current *models.CampusSettings) error) (*models.CampusSettings, error)
	NextSequence(ctx context.Context, campus string, defaults models.SettingsDefaults) (string, int64, error)
}

// StudentStore is the student data access used by services.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByAdmissionNumber(ctx context.Context, campus, admissionNumber string) (*models.StudentDetail, error)
	GetByID(ctx context.Context, campus string, id int64) (*models.StudentDetail, error)
	List(ctx context.Context, campus string, filter repositories.StudentListFilter) ([]*models.StudentDetail, int64, error)
	UpdateStatus(ctx context.Context, campus string, id int64, status models.StudentStatus) error
	Delete(ctx context.Context, campus string, id int64) error
	SetDocumentPath(ctx context.Context, campus string, id int64, filename string) error
}

// CourseStore is the course data access used by services.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, campus string, id int64) (*models.Course, error)
	List(ctx context.Context, campus, department string) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, campus string, id int64) error
	ListDepartments(ctx context.Context, campus string) ([]string, error)
}

// AdminStore is the admin data access used by services.
type AdminStore interface {
	GetByUsername(ctx context.Context, campus, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// ArtifactStore locates and stores generated packages and uploaded files.
type ArtifactStore interface {
	Exists(ctx context.Context, path string) (bool, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
	List(ctx context.Context, dir string) ([]filestorage.FileInfo, error)
}

var (
	_ SettingsStore = (*repositories.SettingsRepository)(nil)
	_ StudentStore  = (*repositories.StudentRepository)(nil)
	_ CourseStore   = (*repositories.CourseRepository)(nil)
	_ AdminStore    = (*repositories.AdminRepository)(nil)
	_ ArtifactStore = (*filestorage.LocalStorage)(nil)
)

// Campus is the per-campus configuration services need.
type Campus struct {
	Key              string
	Name             string
	StartingSequence int64
}

// Campuses resolves campus keys case-insensitively to their canonical form.
type Campuses struct {
	byKey         map[string]Campus
	defaultFormat string
}

// NewCampuses indexes the configured campuses.
func NewCampuses(defaultFormat string, campuses ...Campus) *Campuses {
	c := &Campuses{byKey: make(map[string]Campus, len(campuses)), defaultFormat: defaultFormat}
	for _, campus := range campuses {
		campus.Key = strings.ToLower(strings.TrimSpace(campus.Key))
		c.byKey[campus.Key] = campus
	}
	return c
}

// Lookup returns the campus for key or apperrors.ErrCampusNotFound.
func (c *Campuses) Lookup(key string) (Campus, error) {
	campus, ok := c.byKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Campus{}, apperrors.ErrCampusNotFound
	}
	return campus, nil
}

// Defaults returns the settings a campus starts with.
func (c *Campuses) Defaults(campus Campus) models.SettingsDefaults {
	return models.SettingsDefaults{
		AdmissionNumberFormat: c.defaultFormat,
		StartingSequence:      campus.StartingSequence,
	}
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time
