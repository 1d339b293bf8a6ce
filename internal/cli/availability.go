package cli

import (
	"fmt"

	"studyflow/internal/models"
	"studyflow/internal/timeparse"
	"studyflow/internal/timeutil"
)

type AvailabilityCmd struct {
	Day       string `arg:"" optional:"" help:"Weekday to update (mon..sun). Omit to show the weekly schedule."`
	Off       bool   `help:"Mark the day unavailable."`
	Start     string `short:"s" help:"Day start (HH:MM)."`
	End       string `short:"e" help:"Day end (HH:MM)."`
	When      string `short:"w" help:"Free-text window, e.g. '9am - 5pm'. Overrides --start/--end."`
	Meal      string `short:"m" help:"Add a meal break, free text, e.g. 'noon to 1pm'."`
	MealLabel string `help:"Label for the added meal break." default:"Lunch"`
}

func (c *AvailabilityCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	if c.Day == "" {
		printWeeklySchedule(prefs.WeeklySchedule)
		return nil
	}

	wd, err := parseWeekday(c.Day)
	if err != nil {
		return err
	}

	if prefs.WeeklySchedule == nil {
		prefs.WeeklySchedule = models.WeeklySchedule{}
	}
	ds := prefs.WeeklySchedule[wd]

	switch {
	case c.Off:
		ds.IsAvailable = false
	case c.When != "":
		interval, err := timeparse.ParseInterval(c.When)
		if err != nil {
			return fmt.Errorf("could not understand %q as a time range", c.When)
		}
		ds.IsAvailable = true
		ds.StartTime = interval.Start
		ds.EndTime = interval.End
	case c.Start != "" && c.End != "":
		if _, err := timeutil.ParseClock(c.Start); err != nil {
			return err
		}
		if _, err := timeutil.ParseClock(c.End); err != nil {
			return err
		}
		ds.IsAvailable = true
		ds.StartTime = c.Start
		ds.EndTime = c.End
	}

	if c.Meal != "" {
		interval, err := timeparse.ParseInterval(c.Meal)
		if err != nil {
			return fmt.Errorf("could not understand %q as a time range", c.Meal)
		}
		ds.MealBreaks = append(ds.MealBreaks, models.MealBreak{
			Start: interval.Start,
			End:   interval.End,
			Label: c.MealLabel,
		})
	}

	prefs.WeeklySchedule[wd] = ds
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return err
	}

	fmt.Printf("Updated %s\n", wd)
	return nil
}

func printWeeklySchedule(schedule models.WeeklySchedule) {
	for _, wd := range sortedWeekdays() {
		ds, ok := schedule[wd]
		if !ok || !ds.IsAvailable {
			fmt.Printf("%-9s  unavailable\n", wd)
			continue
		}
		line := fmt.Sprintf("%-9s  %s–%s", wd, ds.StartTime, ds.EndTime)
		for _, meal := range ds.MealBreaks {
			line += fmt.Sprintf("  (%s %s–%s)", meal.Label, meal.Start, meal.End)
		}
		fmt.Println(line)
	}
}
