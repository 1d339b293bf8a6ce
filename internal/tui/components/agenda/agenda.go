package agenda

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyflow/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginTop(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Model renders a generated study plan grouped by day.
type Model struct {
	viewport viewport.Model
	Plan     *models.ScheduleResult
	Tasks    map[string]models.Task
	width    int
	height   int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{
		viewport: vp,
		Tasks:    make(map[string]models.Task),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan yet. Press 'g' to generate one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPlan(plan models.ScheduleResult, tasks []models.Task) {
	m.Plan = &plan
	for _, t := range tasks {
		m.Tasks[t.ID] = t
	}
	m.Render()
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No plan loaded.")
		return
	}

	var b strings.Builder
	lastDay := ""
	for _, s := range m.Plan.Sessions {
		day := s.StartAt.Format("Monday, Jan 2")
		if day != lastDay {
			b.WriteString(dayStyle.Render(day) + "\n")
			lastDay = day
		}

		timeStr := fmt.Sprintf("%s - %s", s.StartAt.Format("15:04"), s.EndAt.Format("15:04"))
		label := s.Label
		style := taskStyle
		if s.Type != models.SessionTask {
			style = breakStyle
		} else if t, ok := m.Tasks[s.TaskID]; ok {
			label = t.Title
		}
		if s.Status == models.SessionDone {
			label = "✓ " + label
			style = breakStyle
		}

		b.WriteString(fmt.Sprintf("%s %s\n", timeStyle.Render(timeStr), style.Render(label)))
	}

	if len(m.Plan.Sessions) > 0 {
		b.WriteString(fmt.Sprintf("\n%.1fh planned, %.0f%% of requested time\n",
			m.Plan.TotalPlannedHours, m.Plan.Coverage))
	}
	for _, c := range m.Plan.Conflicts {
		b.WriteString(warnStyle.Render("! "+c) + "\n")
	}
	for _, s := range m.Plan.Suggestions {
		b.WriteString(hintStyle.Render("> "+s) + "\n")
	}

	m.viewport.SetContent(b.String())
}
