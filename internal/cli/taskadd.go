package cli

import (
	"fmt"

	"github.com/google/uuid"

	"studyflow/internal/models"
)

type TaskAddCmd struct {
	Title      string  `arg:"" help:"Task title."`
	Type       string  `short:"t" help:"Task type (reading|problem-set|essay|exam-prep|memorization)." default:"reading" enum:"reading,problem-set,essay,exam-prep,memorization"`
	Due        string  `short:"d" help:"Due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)." required:""`
	Hours      float64 `short:"H" help:"Estimated hours of work." required:""`
	Difficulty int     `short:"D" help:"Difficulty (1-5)." default:"3"`
	Priority   string  `short:"p" help:"Priority (low|medium|high)." default:"medium" enum:"low,medium,high"`
	Course     string  `short:"c" help:"Course ID."`
	Notes      string  `short:"n" help:"Free-form notes."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Hours <= 0 {
		return fmt.Errorf("estimated hours must be positive")
	}
	if c.Difficulty < 1 || c.Difficulty > 5 {
		return fmt.Errorf("difficulty must be between 1 and 5")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	loc := locationFromPrefs(ctx)
	dueAt, err := parseDueAt(c.Due, loc)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:         uuid.New().String(),
		CourseID:   c.Course,
		Title:      c.Title,
		Type:       models.TaskType(c.Type),
		DueAt:      dueAt,
		EstHours:   c.Hours,
		Difficulty: c.Difficulty,
		Priority:   models.Priority(c.Priority),
		Notes:      c.Notes,
		Status:     models.TaskOpen,
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Title, task.ID)
	return nil
}
