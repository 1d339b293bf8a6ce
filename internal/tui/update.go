package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"studyflow/internal/models"
	"studyflow/internal/scheduler"
	"studyflow/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-6)
		m.agendaModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tasklist.AddTaskMsg:
		courses, _ := m.store.GetAllCourses()
		m.taskForm = &TaskFormModel{
			Type:     models.TaskReading,
			Priority: models.PriorityMedium,
		}
		m.form = newTaskForm(m.taskForm, courses)
		m.state = StateAddTask
		return m, m.form.Init()

	case tasklist.DoneTaskMsg:
		if task, err := m.store.GetTask(msg.ID); err == nil {
			task.Status = models.TaskDone
			_ = m.store.UpdateTask(task)
		}
		m.refreshTasks()
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateAddTask:
		return m.updateAddTask(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Generate) && m.state == StateAgenda:
			m.generatePlan()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateAgenda:
		m.agendaModel, cmd = m.agendaModel.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateAddTask(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.state = StateTasks
		m.form = nil
		m.taskForm = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.saveTaskForm()
		m.state = StateTasks
		m.form = nil
		m.taskForm = nil
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.state = StateTasks
		m.form = nil
		m.taskForm = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y":
			_ = m.store.DeleteTask(m.taskToDeleteID)
			m.taskToDeleteID = ""
			m.refreshTasks()
			m.state = StateTasks
		case "n", "esc":
			m.taskToDeleteID = ""
			m.state = StateTasks
		}
	}
	return m, nil
}

// saveTaskForm converts the completed form into a task. Field values were
// already validated by the form, so parse errors fall back to zero values.
func (m *Model) saveTaskForm() {
	if m.taskForm == nil {
		return
	}
	fm := m.taskForm

	due, _ := time.Parse("2006-01-02", fm.Due)
	due = due.Add(23*time.Hour + 59*time.Minute)
	hours, _ := strconv.ParseFloat(fm.Hours, 64)
	difficulty, _ := strconv.Atoi(fm.Difficulty)

	task := models.Task{
		ID:         uuid.New().String(),
		CourseID:   fm.CourseID,
		Title:      fm.Title,
		Type:       fm.Type,
		DueAt:      due,
		EstHours:   hours,
		Difficulty: difficulty,
		Priority:   fm.Priority,
		Notes:      fm.Notes,
		Status:     models.TaskOpen,
	}
	_ = m.store.AddTask(task)
	m.refreshTasks()
}

func (m *Model) refreshTasks() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		return
	}
	courses, _ := m.store.GetAllCourses()
	m.taskList.SetTasks(tasks, courses)
	m.updateValidationStatus()
}

func (m *Model) generatePlan() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		return
	}
	prefs, err := m.store.GetPreferences()
	if err != nil {
		return
	}

	result := m.scheduler.Schedule(tasks, prefs, scheduler.DefaultDaysAhead)
	_ = m.store.SavePlan(time.Now().Format("2006-01-02"), result)
	m.agendaModel.SetPlan(result, tasks)
	m.updateValidationStatus()
}
