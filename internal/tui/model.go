package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"studyflow/internal/models"
	"studyflow/internal/scheduler"
	"studyflow/internal/storage"
	"studyflow/internal/tui/components/agenda"
	"studyflow/internal/tui/components/tasklist"
	"studyflow/internal/validation"
)

type SessionState int

const (
	StateAgenda SessionState = iota
	StateTasks
	StateAddTask
	StateConfirmDelete
)

const tabCount = 2

type TaskFormModel struct {
	Title      string
	CourseID   string
	Type       models.TaskType
	Due        string
	Hours      string
	Difficulty string
	Priority   models.Priority
	Notes      string
}

type Model struct {
	store             storage.Provider
	scheduler         *scheduler.Scheduler
	state             SessionState
	keys              KeyMap
	help              help.Model
	taskList          tasklist.Model
	agendaModel       agenda.Model
	form              *huh.Form
	taskForm          *TaskFormModel
	taskToDeleteID    string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler) Model {
	tasks, err := store.GetAllTasks()
	if err != nil {
		tasks = []models.Task{}
	}
	courses, _ := store.GetAllCourses()

	am := agenda.New(0, 0)
	today := time.Now().Format("2006-01-02")
	if plan, err := store.GetPlan(today); err == nil {
		am.SetPlan(plan, tasks)
	}

	m := Model{
		store:       store,
		scheduler:   sched,
		state:       StateAgenda,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		taskList:    tasklist.New(tasks, courses, 0, 0),
		agendaModel: am,
	}
	m.updateValidationStatus()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateAgenda:
		keys = append(keys, m.keys.Generate)
	case StateTasks:
		keys = append(keys, m.keys.Add, m.keys.Done, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateAgenda:
		actions = []key.Binding{m.keys.Generate}
	case StateTasks:
		actions = []key.Binding{m.keys.Add, m.keys.Done, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) updateValidationStatus() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		m.validationWarning = "validation unavailable"
		return
	}
	prefs, err := m.store.GetPreferences()
	if err != nil {
		m.validationWarning = "validation unavailable"
		return
	}

	validator := validation.New()
	conflicts := append(
		validator.ValidateTasks(tasks).Conflicts,
		validator.ValidatePreferences(prefs).Conflicts...,
	)
	if len(conflicts) > 0 {
		m.validationWarning = fmt.Sprintf("%d validation warning(s), run 'studyflow validate' for details", len(conflicts))
	} else {
		m.validationWarning = ""
	}
}

func newTaskForm(fm *TaskFormModel, courses []models.Course) *huh.Form {
	courseOpts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range courses {
		courseOpts = append(courseOpts, huh.NewOption(c.Name, c.ID))
	}

	typeOpts := make([]huh.Option[models.TaskType], len(models.TaskTypes))
	for i, t := range models.TaskTypes {
		typeOpts[i] = huh.NewOption(string(t), t)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Course").
				Options(courseOpts...).
				Value(&fm.CourseID),
			huh.NewSelect[models.TaskType]().
				Title("Type").
				Options(typeOpts...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Due (YYYY-MM-DD)").
				Value(&fm.Due).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Estimated hours").
				Value(&fm.Hours).
				Validate(func(s string) error {
					f, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if f <= 0 {
						return fmt.Errorf("hours must be positive")
					}
					return nil
				}),
			huh.NewInput().
				Title("Difficulty (1-5)").
				Value(&fm.Difficulty).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 || i > 5 {
						return fmt.Errorf("difficulty must be 1-5")
					}
					return nil
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&fm.Priority),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}
