package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"studyflow/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	course_id  TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL,
	type       TEXT NOT NULL,
	due_at     TEXT NOT NULL,
	est_hours  REAL NOT NULL,
	difficulty INTEGER NOT NULL,
	priority   TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS courses (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS plans (
	date   TEXT PRIMARY KEY,
	result TEXT NOT NULL
);
`

// SQLiteStore persists app state in a single SQLite database. Nested values
// (preferences, plan results) are stored as JSON blobs.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetPreferences(); err != nil {
		if err := s.SavePreferences(models.DefaultPreferences()); err != nil {
			return fmt.Errorf("failed to save default preferences: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studyflow init' first")
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetPreferences() (models.Preferences, error) {
	row := s.db.QueryRow("SELECT value FROM settings WHERE key = 'preferences'")
	var raw string
	if err := row.Scan(&raw); err != nil {
		return models.Preferences{}, fmt.Errorf("preferences not found: %w", err)
	}
	var prefs models.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, nil
}

func (s *SQLiteStore) SavePreferences(prefs models.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to serialize preferences: %w", err)
	}
	_, err = s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES ('preferences', ?)", string(raw))
	return err
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

const taskColumns = "id, course_id, title, type, due_at, est_hours, difficulty, priority, notes, status"

func scanTask(scan func(dest ...any) error) (models.Task, error) {
	var t models.Task
	var taskType, priority, status, dueAt string
	err := scan(&t.ID, &t.CourseID, &t.Title, &taskType, &dueAt, &t.EstHours, &t.Difficulty, &priority, &t.Notes, &status)
	if err != nil {
		return models.Task{}, err
	}
	t.Type = models.TaskType(taskType)
	t.Priority = models.Priority(priority)
	t.Status = models.TaskStatus(status)
	t.DueAt, err = time.Parse(time.RFC3339, dueAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("invalid due date for task %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row.Scan)
	if err != nil {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return task, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query("SELECT " + taskColumns + " FROM tasks ORDER BY due_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.CourseID, task.Title, string(task.Type),
		task.DueAt.Format(time.RFC3339), task.EstHours, task.Difficulty,
		string(task.Priority), task.Notes, string(task.Status))
	return err
}

func (s *SQLiteStore) DeleteTask(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddCourse(course models.Course) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO courses (id, name, color) VALUES (?, ?, ?)",
		course.ID, course.Name, course.Color)
	return err
}

func (s *SQLiteStore) GetAllCourses() ([]models.Course, error) {
	rows, err := s.db.Query("SELECT id, name, color FROM courses ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *SQLiteStore) SavePlan(date string, result models.ScheduleResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}
	_, err = s.db.Exec("INSERT OR REPLACE INTO plans (date, result) VALUES (?, ?)", date, string(raw))
	return err
}

func (s *SQLiteStore) GetPlan(date string) (models.ScheduleResult, error) {
	row := s.db.QueryRow("SELECT result FROM plans WHERE date = ?", date)
	var raw string
	if err := row.Scan(&raw); err != nil {
		return models.ScheduleResult{}, fmt.Errorf("no plan found for date: %s", date)
	}
	var result models.ScheduleResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.ScheduleResult{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
