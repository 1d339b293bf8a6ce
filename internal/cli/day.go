package cli

import (
	"fmt"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

type DayCmd struct {
	Date string `arg:"" help:"Day to show (YYYY-MM-DD or 'today')." default:"today"`
	Plan string `help:"Generation date of the plan to read (YYYY-MM-DD, defaults to today)."`
	Done string `help:"Mark a plan session done by session ID."`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	loc := locationFromPrefs(ctx)
	today := time.Now().In(loc).Format("2006-01-02")

	day := c.Date
	if day == "today" {
		day = today
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}

	planDate := c.Plan
	if planDate == "" {
		planDate = today
	}

	result, err := ctx.Store.GetPlan(planDate)
	if err != nil {
		return err
	}

	if c.Done != "" {
		for i := range result.Sessions {
			if result.Sessions[i].ID == c.Done {
				result.Sessions[i].Status = models.SessionDone
				if err := ctx.Store.SavePlan(planDate, result); err != nil {
					return err
				}
				fmt.Printf("Marked session %s done\n", c.Done)
				return nil
			}
		}
		return fmt.Errorf("session not found: %s", c.Done)
	}

	var daySessions []models.PlanSession
	for _, sess := range result.Sessions {
		if timeutil.DayKey(sess.StartAt, loc) == day {
			daySessions = append(daySessions, sess)
		}
	}

	if len(daySessions) == 0 {
		fmt.Printf("No sessions planned for %s\n", day)
		return nil
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	printSessions(daySessions, tasks, loc)
	return nil
}
