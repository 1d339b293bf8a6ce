package cli

import (
	"fmt"
	"strings"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeparse"
	"studyflow/internal/timeutil"
)

type ConstraintAddCmd struct {
	Type  string `short:"t" help:"Constraint type." default:"personal" enum:"sleep,meal,work,class,personal,unavailable"`
	When  string `short:"w" help:"Free-text window, e.g. '10pm til 6am'."`
	Start string `short:"s" help:"Window start (HH:MM)."`
	End   string `short:"e" help:"Window end (HH:MM)."`
	Days  string `short:"D" help:"Comma-separated weekdays for a recurring constraint."`
	Date  string `short:"o" help:"One-time constraint date (YYYY-MM-DD)."`
}

func (c *ConstraintAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	start, end := c.Start, c.End
	if c.When != "" {
		interval, err := timeparse.ParseInterval(c.When)
		if err != nil {
			return fmt.Errorf("could not understand %q as a time range", c.When)
		}
		start, end = interval.Start, interval.End
	}
	if _, err := timeutil.ParseClock(start); err != nil {
		return err
	}
	if _, err := timeutil.ParseClock(end); err != nil {
		return err
	}

	constraint := models.TimeConstraint{
		Type:      models.ConstraintType(c.Type),
		StartTime: start,
		EndTime:   end,
	}

	switch {
	case c.Days != "":
		days, err := parseWeekdays(c.Days)
		if err != nil {
			return err
		}
		constraint.IsRecurring = true
		constraint.Days = days
	case c.Date != "":
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}
		constraint.SpecificDate = c.Date
	default:
		return fmt.Errorf("either --days or --date is required")
	}

	prefs.Constraints = append(prefs.Constraints, constraint)
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return err
	}

	fmt.Printf("Added %s constraint %s–%s\n", c.Type, start, end)
	return nil
}

type ConstraintListCmd struct{}

func (c *ConstraintListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	if len(prefs.Constraints) == 0 {
		fmt.Println("No constraints.")
		return nil
	}

	for i, constraint := range prefs.Constraints {
		when := constraint.SpecificDate
		if constraint.IsRecurring {
			var names []string
			for _, d := range constraint.Days {
				names = append(names, d.String()[:3])
			}
			when = strings.Join(names, ",")
		}
		fmt.Printf("%2d. %-12s %s–%s  %s\n", i+1, constraint.Type, constraint.StartTime, constraint.EndTime, when)
	}
	return nil
}
