package repositories

import "github.com/braxton0054/eavisystem/internal/db"

// Repositories holds all the repository instances
type Repositories struct {
	SettingsRepository *SettingsRepository
	StudentRepository  *StudentRepository
	CourseRepository   *CourseRepository
	AdminRepository    *AdminRepository
}

// NewRepositories initializes all repositories over the campus registry.
func NewRepositories(registry *db.Registry) *Repositories {
	return &Repositories{
		SettingsRepository: NewSettingsRepository(registry),
		StudentRepository:  NewStudentRepository(registry),
		CourseRepository:   NewCourseRepository(registry),
		AdminRepository:    NewAdminRepository(registry),
	}
}
