package cli

import (
	"fmt"
	"time"

	"studyflow/internal/validation"
)

type ScheduleCmd struct {
	Days   int  `short:"d" help:"Number of days to plan ahead." default:"7"`
	NoSave bool `help:"Print the plan without saving it."`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	validator := validation.New()
	for _, result := range []validation.Result{
		validator.ValidateTasks(tasks),
		validator.ValidatePreferences(prefs),
	} {
		for _, conflict := range result.Conflicts {
			fmt.Printf("Warning: %s\n", conflict.Message)
		}
	}

	result := ctx.Scheduler.Schedule(tasks, prefs, c.Days)

	loc := locationFromPrefs(ctx)
	if len(result.Sessions) == 0 {
		fmt.Println("No sessions scheduled.")
	} else {
		printSessions(result.Sessions, tasks, loc)
	}
	printDiagnostics(result)

	if !c.NoSave {
		date := time.Now().In(loc).Format("2006-01-02")
		if err := ctx.Store.SavePlan(date, result); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		fmt.Printf("Plan saved for %s\n", date)
	}
	return nil
}
