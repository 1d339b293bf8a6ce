package cli

import (
	"fmt"
	"strings"

	"studyflow/internal/models"
)

type SettingsCmd struct {
	Block    int    `help:"Study block length in minutes." default:"-1"`
	Break    int    `help:"Break length in minutes (0 disables breaks and merges sessions)." default:"-1"`
	Timezone string `help:"IANA timezone name, e.g. Europe/Berlin."`
	Optimal  string `help:"Comma-separated optimal study windows (morning,afternoon,evening)."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	changed := false
	if c.Block >= 0 {
		prefs.BlockLengthMinutes = c.Block
		changed = true
	}
	if c.Break >= 0 {
		prefs.BreakLengthMinutes = c.Break
		changed = true
	}
	if c.Timezone != "" {
		prefs.Timezone = c.Timezone
		changed = true
	}
	if c.Optimal != "" {
		times := models.OptimalStudyTimes{}
		for _, part := range strings.Split(c.Optimal, ",") {
			switch strings.TrimSpace(strings.ToLower(part)) {
			case "morning":
				times.Morning = true
			case "afternoon":
				times.Afternoon = true
			case "evening":
				times.Evening = true
			default:
				return fmt.Errorf("unknown study window: %s", part)
			}
		}
		prefs.OptimalStudyTimes = times
		changed = true
	}

	if changed {
		if err := ctx.Store.SavePreferences(prefs); err != nil {
			return err
		}
		fmt.Println("Settings updated.")
		return nil
	}

	tz := prefs.Timezone
	if tz == "" {
		tz = "(host local)"
	}
	fmt.Printf("Timezone:      %s\n", tz)
	fmt.Printf("Block length:  %d min\n", prefs.BlockLengthMinutes)
	fmt.Printf("Break length:  %d min\n", prefs.BreakLengthMinutes)
	fmt.Printf("Optimal times: morning=%t afternoon=%t evening=%t\n",
		prefs.OptimalStudyTimes.Morning, prefs.OptimalStudyTimes.Afternoon, prefs.OptimalStudyTimes.Evening)
	return nil
}
