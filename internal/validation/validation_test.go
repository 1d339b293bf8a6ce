package validation

import (
	"testing"
	"time"

	"studyflow/internal/models"
)

var testNow = time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

func testValidator() *Validator {
	return NewWithClock(func() time.Time { return testNow })
}

func goodTask(title string) models.Task {
	return models.Task{
		ID:         title,
		Title:      title,
		Type:       models.TaskReading,
		DueAt:      testNow.AddDate(0, 0, 3),
		EstHours:   2,
		Difficulty: 3,
		Priority:   models.PriorityMedium,
		Status:     models.TaskOpen,
	}
}

func hasConflict(r Result, ct ConflictType) bool {
	for _, c := range r.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateTasks_CleanInput(t *testing.T) {
	result := testValidator().ValidateTasks([]models.Task{goodTask("a"), goodTask("b")})
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %v", result.Conflicts)
	}
}

func TestValidateTasks_DuplicateTitles(t *testing.T) {
	result := testValidator().ValidateTasks([]models.Task{goodTask("same"), goodTask("same")})
	if !hasConflict(result, ConflictDuplicateTaskTitle) {
		t.Error("expected a duplicate title conflict")
	}
}

func TestValidateTasks_BadEstimateAndDifficulty(t *testing.T) {
	task := goodTask("bad")
	task.EstHours = 0
	task.Difficulty = 6

	result := testValidator().ValidateTasks([]models.Task{task})
	if !hasConflict(result, ConflictInvalidEstimate) {
		t.Error("expected an invalid estimate conflict")
	}
	if !hasConflict(result, ConflictInvalidDifficulty) {
		t.Error("expected an invalid difficulty conflict")
	}
}

func TestValidateTasks_PastDueOnlyForOpenTasks(t *testing.T) {
	overdue := goodTask("overdue")
	overdue.DueAt = testNow.AddDate(0, 0, -1)

	result := testValidator().ValidateTasks([]models.Task{overdue})
	if !hasConflict(result, ConflictPastDue) {
		t.Error("expected a past due conflict for an open task")
	}

	overdue.Status = models.TaskDone
	result = testValidator().ValidateTasks([]models.Task{overdue})
	if hasConflict(result, ConflictPastDue) {
		t.Error("done tasks should not be flagged as past due")
	}
}

func TestValidatePreferences_CleanDefaults(t *testing.T) {
	result := testValidator().ValidatePreferences(models.DefaultPreferences())
	if result.HasConflicts() {
		t.Errorf("default preferences should validate, got %v", result.Conflicts)
	}
}

func TestValidatePreferences_BlockAndBreakLengths(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.BlockLengthMinutes = 0
	prefs.BreakLengthMinutes = -5

	result := testValidator().ValidatePreferences(prefs)
	if !hasConflict(result, ConflictInvalidBlockLength) {
		t.Error("expected block/break length conflicts")
	}
	if len(result.Conflicts) != 2 {
		t.Errorf("expected two conflicts, got %v", result.Conflicts)
	}
}

func TestValidatePreferences_UnknownTimezone(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.Timezone = "Mars/Olympus_Mons"

	result := testValidator().ValidatePreferences(prefs)
	if !hasConflict(result, ConflictUnknownTimezone) {
		t.Error("expected an unknown timezone conflict")
	}
}

func TestValidatePreferences_MalformedClocks(t *testing.T) {
	prefs := models.DefaultPreferences()
	monday := prefs.WeeklySchedule[time.Monday]
	monday.StartTime = "9am"
	prefs.WeeklySchedule[time.Monday] = monday
	prefs.Constraints = []models.TimeConstraint{{
		Type:      models.ConstraintWork,
		StartTime: "25:00",
		EndTime:   "17:00",
	}}

	result := testValidator().ValidatePreferences(prefs)
	count := 0
	for _, c := range result.Conflicts {
		if c.Type == ConflictInvalidTimeFormat {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected two time format conflicts, got %d: %v", count, result.Conflicts)
	}
}

func TestValidatePreferences_SkipsUnavailableDays(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.WeeklySchedule[time.Sunday] = models.DaySchedule{
		IsAvailable: false,
		StartTime:   "nonsense",
		EndTime:     "also nonsense",
	}

	result := testValidator().ValidatePreferences(prefs)
	if result.HasConflicts() {
		t.Errorf("unavailable days should not be checked, got %v", result.Conflicts)
	}
}
