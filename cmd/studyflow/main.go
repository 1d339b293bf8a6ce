package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"studyflow/internal/cli"
	"studyflow/internal/scheduler"
	"studyflow/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/studyflow/studyflow.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize studyflow storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Schedule cli.ScheduleCmd `cmd:"" help:"Generate a study plan."`
	Day      cli.DayCmd      `cmd:"" help:"Show planned sessions for a day."`
	Task     struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a study task."`
		List   cli.TaskListCmd   `cmd:"" help:"List tasks."`
		Done   cli.TaskDoneCmd   `cmd:"" help:"Mark a task done."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Course struct {
		Add  cli.CourseAddCmd  `cmd:"" help:"Add a course."`
		List cli.CourseListCmd `cmd:"" help:"List courses."`
	} `cmd:"" help:"Manage courses."`
	Availability cli.AvailabilityCmd `cmd:"" help:"Show or edit the weekly availability schedule."`
	Constraint   struct {
		Add  cli.ConstraintAddCmd  `cmd:"" help:"Add a time constraint."`
		List cli.ConstraintListCmd `cmd:"" help:"List time constraints."`
	} `cmd:"" help:"Manage time constraints."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change scheduling settings."`
	Validate cli.ValidateCmd `cmd:"" help:"Check tasks and preferences for problems."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check the local setup."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studyflow"),
		kong.Description("Personal study-task scheduler"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// JSON stores are handy for debugging; SQLite is the default.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
