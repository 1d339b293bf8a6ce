package validation

import (
	"fmt"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

type ConflictType string

const (
	ConflictDuplicateTaskTitle ConflictType = "duplicate_task_title"
	ConflictInvalidEstimate    ConflictType = "invalid_estimate"
	ConflictInvalidDifficulty  ConflictType = "invalid_difficulty"
	ConflictPastDue            ConflictType = "past_due"
	ConflictInvalidTimeFormat  ConflictType = "invalid_time_format"
	ConflictInvalidBlockLength ConflictType = "invalid_block_length"
	ConflictUnknownTimezone    ConflictType = "unknown_timezone"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type Result struct {
	Conflicts []Conflict
}

func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Validator checks tasks and preferences before they reach the scheduler.
// The scheduler assumes validated input; everything flagged here would
// otherwise be silently skipped or produce an empty plan.
type Validator struct {
	now func() time.Time
}

func New() *Validator {
	return &Validator{now: time.Now}
}

func NewWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

func (v *Validator) ValidateTasks(tasks []models.Task) Result {
	var result Result

	seen := make(map[string]bool)
	for _, t := range tasks {
		if seen[t.Title] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictDuplicateTaskTitle,
				Message: fmt.Sprintf("duplicate task title %q", t.Title),
			})
		}
		seen[t.Title] = true

		if t.EstHours <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvalidEstimate,
				Message: fmt.Sprintf("task %q has non-positive estimated hours", t.Title),
			})
		}
		if t.Difficulty < 1 || t.Difficulty > 5 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvalidDifficulty,
				Message: fmt.Sprintf("task %q has difficulty %d, expected 1-5", t.Title, t.Difficulty),
			})
		}
		if t.Status == models.TaskOpen && t.DueAt.Before(v.now()) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictPastDue,
				Message: fmt.Sprintf("task %q is already past its due date", t.Title),
			})
		}
	}

	return result
}

func (v *Validator) ValidatePreferences(prefs models.Preferences) Result {
	var result Result

	if prefs.BlockLengthMinutes <= 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictInvalidBlockLength,
			Message: "block length must be a positive number of minutes",
		})
	}
	if prefs.BreakLengthMinutes < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictInvalidBlockLength,
			Message: "break length cannot be negative",
		})
	}

	if prefs.Timezone != "" {
		if _, err := time.LoadLocation(prefs.Timezone); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictUnknownTimezone,
				Message: fmt.Sprintf("unknown timezone %q", prefs.Timezone),
			})
		}
	}

	for wd, ds := range prefs.WeeklySchedule {
		if !ds.IsAvailable {
			continue
		}
		v.checkClock(&result, ds.StartTime, fmt.Sprintf("%s start", wd))
		v.checkClock(&result, ds.EndTime, fmt.Sprintf("%s end", wd))
		for _, meal := range ds.MealBreaks {
			v.checkClock(&result, meal.Start, fmt.Sprintf("%s meal break start", wd))
			v.checkClock(&result, meal.End, fmt.Sprintf("%s meal break end", wd))
		}
	}

	for i, block := range prefs.TimeBlocks {
		v.checkClock(&result, block.StartTime, fmt.Sprintf("time block %d start", i+1))
		v.checkClock(&result, block.EndTime, fmt.Sprintf("time block %d end", i+1))
	}

	for i, c := range prefs.Constraints {
		v.checkClock(&result, c.StartTime, fmt.Sprintf("constraint %d start", i+1))
		v.checkClock(&result, c.EndTime, fmt.Sprintf("constraint %d end", i+1))
	}

	return result
}

func (v *Validator) checkClock(result *Result, clock, context string) {
	if _, err := timeutil.ParseClock(clock); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictInvalidTimeFormat,
			Message: fmt.Sprintf("%s: %v", context, err),
		})
	}
}
