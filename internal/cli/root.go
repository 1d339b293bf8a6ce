package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"studyflow/internal/constants"
	"studyflow/internal/models"
	"studyflow/internal/scheduler"
	"studyflow/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
}

var dayMap = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd, nil
	}
	// Fall back to a number (0=Sunday, 6=Saturday)
	num, err := strconv.Atoi(key)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		wd, err := parseWeekday(part)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}

// parseDueAt accepts "YYYY-MM-DD" (due at end of that day) or
// "YYYY-MM-DDTHH:MM" in the given location.
func parseDueAt(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date, use YYYY-MM-DD or YYYY-MM-DDTHH:MM: %w", err)
	}
	return t.Add(23*time.Hour + 59*time.Minute), nil
}

func locationFromPrefs(ctx *Context) *time.Location {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil || prefs.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// printSessions renders sessions grouped by calendar day, with the study
// method appended to task sessions.
func printSessions(sessions []models.PlanSession, tasks []models.Task, loc *time.Location) {
	byTask := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byTask[t.ID] = t
	}

	tipShown := make(map[string]bool)
	lastDay := ""
	for _, sess := range sessions {
		day := sess.StartAt.In(loc).Format("Monday, Jan 2")
		if day != lastDay {
			if lastDay != "" {
				fmt.Println()
			}
			fmt.Println(day)
			lastDay = day
		}

		span := fmt.Sprintf("%s–%s", sess.StartAt.In(loc).Format("15:04"), sess.EndAt.In(loc).Format("15:04"))
		switch sess.Type {
		case models.SessionTask:
			task, ok := byTask[sess.TaskID]
			if !ok {
				fmt.Printf("  %s  (unknown task)\n", span)
				continue
			}
			title := task.Title
			if sess.Status == models.SessionDone {
				title += " (done)"
			}
			fmt.Printf("  %s  %s [%s]\n", span, title, constants.StudyMethods[task.Type])
			if !tipShown[task.ID] {
				tipShown[task.ID] = true
				if tip := constants.StudyTips[task.Type]; tip != "" {
					fmt.Printf("         tip: %s\n", tip)
				}
			}
		default:
			label := sess.Label
			if label == "" {
				label = string(sess.Type)
			}
			fmt.Printf("  %s  %s\n", span, label)
		}
	}
}

func printDiagnostics(result models.ScheduleResult) {
	if len(result.Conflicts) > 0 {
		fmt.Println("\nConflicts:")
		for _, c := range result.Conflicts {
			fmt.Printf("  - %s\n", c)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	fmt.Printf("\nPlanned %.1f hours, %.0f%% coverage\n", result.TotalPlannedHours, result.Coverage)
}

// sortedWeekdays returns Monday..Sunday for stable settings output.
func sortedWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
}

func sortTasksByDue(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].DueAt.Equal(tasks[j].DueAt) {
			return tasks[i].Title < tasks[j].Title
		}
		return tasks[i].DueAt.Before(tasks[j].DueAt)
	})
}
