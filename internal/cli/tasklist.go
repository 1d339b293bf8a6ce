package cli

import (
	"fmt"

	"studyflow/internal/models"
)

type TaskListCmd struct {
	All bool `short:"a" help:"Include completed tasks."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	loc := locationFromPrefs(ctx)
	sortTasksByDue(tasks)

	shown := 0
	for _, t := range tasks {
		if !c.All && t.Status != models.TaskOpen {
			continue
		}
		fmt.Printf("%-36s  %-12s  %-8s  %4.1fh  due %s  [%s]\n",
			t.ID, t.Type, t.Priority, t.EstHours,
			t.DueAt.In(loc).Format("2006-01-02 15:04"), t.Status)
		fmt.Printf("  %s\n", t.Title)
		shown++
	}

	if shown == 0 {
		fmt.Println("No tasks. Add one with 'studyflow task add'.")
	}
	return nil
}
