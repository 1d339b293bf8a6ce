package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studyflow/internal/models"
)

type jsonFile struct {
	Version     int                              `json:"version"`
	Preferences models.Preferences               `json:"preferences"`
	Tasks       map[string]models.Task           `json:"tasks"`
	Courses     map[string]models.Course         `json:"courses"`
	Plans       map[string]models.ScheduleResult `json:"plans"`
}

// JSONStore keeps everything in one pretty-printed JSON file.
type JSONStore struct {
	path string
	data *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = &jsonFile{
		Version:     1,
		Preferences: models.DefaultPreferences(),
		Tasks:       make(map[string]models.Task),
		Courses:     make(map[string]models.Course),
		Plans:       make(map[string]models.ScheduleResult),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studyflow init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.data = &jsonFile{}
	if err := json.Unmarshal(raw, s.data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.data.Tasks == nil {
		s.data.Tasks = make(map[string]models.Task)
	}
	if s.data.Courses == nil {
		s.data.Courses = make(map[string]models.Course)
	}
	if s.data.Plans == nil {
		s.data.Plans = make(map[string]models.ScheduleResult)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetPreferences() (models.Preferences, error) {
	if err := s.loaded(); err != nil {
		return models.Preferences{}, err
	}
	return s.data.Preferences, nil
}

func (s *JSONStore) SavePreferences(prefs models.Preferences) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Preferences = prefs
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if err := s.loaded(); err != nil {
		return models.Task{}, err
	}
	task, ok := s.data.Tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(s.data.Tasks))
	for _, task := range s.data.Tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.data.Tasks[task.ID]; !ok {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	s.data.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.data.Tasks[id]; !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	delete(s.data.Tasks, id)
	return s.save()
}

func (s *JSONStore) AddCourse(course models.Course) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Courses[course.ID] = course
	return s.save()
}

func (s *JSONStore) GetAllCourses() ([]models.Course, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(s.data.Courses))
	for _, course := range s.data.Courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (s *JSONStore) SavePlan(date string, result models.ScheduleResult) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Plans[date] = result
	return s.save()
}

func (s *JSONStore) GetPlan(date string) (models.ScheduleResult, error) {
	if err := s.loaded(); err != nil {
		return models.ScheduleResult{}, err
	}
	result, ok := s.data.Plans[date]
	if !ok {
		return models.ScheduleResult{}, fmt.Errorf("no plan found for date: %s", date)
	}
	return result, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
