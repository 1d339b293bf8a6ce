package cli

import (
	"fmt"

	"studyflow/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	validator := validation.New()
	taskResult := validator.ValidateTasks(tasks)
	prefResult := validator.ValidatePreferences(prefs)

	if !taskResult.HasConflicts() && !prefResult.HasConflicts() {
		fmt.Println("Everything looks good.")
		return nil
	}

	for _, conflict := range append(taskResult.Conflicts, prefResult.Conflicts...) {
		fmt.Printf("[%s] %s\n", conflict.Type, conflict.Message)
	}
	return fmt.Errorf("found %d issue(s)", len(taskResult.Conflicts)+len(prefResult.Conflicts))
}
