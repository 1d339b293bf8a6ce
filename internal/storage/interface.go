package storage

import "studyflow/internal/models"

// Provider is the external state owner: it supplies tasks and preferences
// to the scheduler and keeps generated plans for display. Providers are not
// safe for concurrent use, and sharing one store path between processes is
// not supported.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Courses
	AddCourse(models.Course) error
	GetAllCourses() ([]models.Course, error)

	// Plans, keyed by generation date (YYYY-MM-DD)
	SavePlan(date string, result models.ScheduleResult) error
	GetPlan(date string) (models.ScheduleResult, error)

	// Utils
	GetConfigPath() string
}
