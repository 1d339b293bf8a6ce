package cli

import (
	"fmt"

	"studyflow/internal/models"
)

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to mark done."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}

	task.Status = models.TaskDone
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Marked done: %s\n", task.Title)
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted task %s\n", c.ID)
	return nil
}
