package scheduler

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

// Monday, Jan 5 2026, midnight UTC.
var testNow = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func testScheduler() *Scheduler {
	return NewWithClock(func() time.Time { return testNow })
}

func testPrefs() models.Preferences {
	schedule := models.WeeklySchedule{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		schedule[wd] = models.DaySchedule{
			IsAvailable: true,
			StartTime:   "09:00",
			EndTime:     "17:00",
		}
	}
	return models.Preferences{
		Timezone:           "UTC",
		BlockLengthMinutes: 45,
		BreakLengthMinutes: 15,
		OptimalStudyTimes:  models.OptimalStudyTimes{Morning: true, Afternoon: true},
		WeeklySchedule:     schedule,
	}
}

func readingTask(id string, hours float64, due time.Time) models.Task {
	return models.Task{
		ID:         id,
		Title:      "Read " + id,
		Type:       models.TaskReading,
		DueAt:      due,
		EstHours:   hours,
		Difficulty: 3,
		Priority:   models.PriorityMedium,
		Status:     models.TaskOpen,
	}
}

func taskMinutes(result models.ScheduleResult) int {
	total := 0
	for _, s := range result.Sessions {
		if s.Type == models.SessionTask {
			total += s.Minutes()
		}
	}
	return total
}

func TestSchedule_ExactCoverage(t *testing.T) {
	task := readingTask("t1", 2, testNow.AddDate(0, 0, 3))
	result := testScheduler().Schedule([]models.Task{task}, testPrefs(), 7)

	if got := taskMinutes(result); got != 120 {
		t.Errorf("expected exactly 120 scheduled minutes, got %d", got)
	}
	if result.Coverage != 100 {
		t.Errorf("expected 100%% coverage, got %.1f", result.Coverage)
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("unexpected conflicts: %v", result.Conflicts)
	}
	if result.TotalPlannedHours != 2 {
		t.Errorf("expected 2 planned hours, got %.2f", result.TotalPlannedHours)
	}
}

func TestSchedule_NoOverlappingSessions(t *testing.T) {
	tasks := []models.Task{
		readingTask("t1", 3, testNow.AddDate(0, 0, 4)),
		readingTask("t2", 2, testNow.AddDate(0, 0, 5)),
		{
			ID: "t3", Title: "Essay draft", Type: models.TaskEssay,
			DueAt: testNow.AddDate(0, 0, 6), EstHours: 3, Difficulty: 4,
			Priority: models.PriorityHigh, Status: models.TaskOpen,
		},
	}
	result := testScheduler().Schedule(tasks, testPrefs(), 7)

	for i := 0; i < len(result.Sessions); i++ {
		for j := i + 1; j < len(result.Sessions); j++ {
			a, b := result.Sessions[i], result.Sessions[j]
			if timeutil.Overlaps(a.StartAt, a.EndAt, b.StartAt, b.EndAt) {
				t.Errorf("sessions overlap: %s [%v-%v] and %s [%v-%v]",
					a.ID, a.StartAt, a.EndAt, b.ID, b.StartAt, b.EndAt)
			}
		}
	}
}

func TestSchedule_RespectsDueDate(t *testing.T) {
	due := testNow.AddDate(0, 0, 2)
	task := readingTask("t1", 2, due)
	result := testScheduler().Schedule([]models.Task{task}, testPrefs(), 7)

	for _, s := range result.Sessions {
		if s.Type == models.SessionTask && s.StartAt.After(due) {
			t.Errorf("session %s starts after the due date: %v > %v", s.ID, s.StartAt, due)
		}
	}
}

func TestSchedule_ConflictWhenNothingFitsBeforeDue(t *testing.T) {
	// Due before the first availability window opens.
	task := readingTask("t1", 1, testNow.Add(time.Hour))
	result := testScheduler().Schedule([]models.Task{task}, testPrefs(), 7)

	if len(result.Sessions) != 0 {
		t.Errorf("expected no sessions, got %d", len(result.Sessions))
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %v", result.Conflicts)
	}
	if !strings.Contains(result.Conflicts[0], task.Title) {
		t.Errorf("conflict should name the task: %q", result.Conflicts[0])
	}
}

func TestSchedule_HighPriorityWinsScarceSlots(t *testing.T) {
	prefs := testPrefs()
	// Exactly one 45-minute slot in the whole horizon.
	prefs.WeeklySchedule = models.WeeklySchedule{
		time.Monday: {IsAvailable: true, StartTime: "09:00", EndTime: "10:30"},
	}

	low := readingTask("low", 0.75, testNow.AddDate(0, 0, 1))
	low.Priority = models.PriorityLow
	high := readingTask("high", 0.75, testNow.AddDate(0, 0, 6))
	high.Priority = models.PriorityHigh

	result := testScheduler().Schedule([]models.Task{low, high}, prefs, 7)

	for _, s := range result.Sessions {
		if s.Type == models.SessionTask && s.TaskID != "high" {
			t.Errorf("expected only the high priority task to be placed, found session for %s", s.TaskID)
		}
	}
	foundHigh := false
	for _, s := range result.Sessions {
		if s.TaskID == "high" {
			foundHigh = true
		}
	}
	if !foundHigh {
		t.Error("high priority task was not scheduled")
	}
	if len(result.Conflicts) != 1 || !strings.Contains(result.Conflicts[0], low.Title) {
		t.Errorf("expected a conflict for the low priority task, got %v", result.Conflicts)
	}
}

func TestSchedule_InsertsBreaksBetweenSessions(t *testing.T) {
	task := readingTask("t1", 2, testNow.AddDate(0, 0, 3))
	result := testScheduler().Schedule([]models.Task{task}, testPrefs(), 7)

	breaks := 0
	for _, s := range result.Sessions {
		if s.Type == models.SessionBreak {
			breaks++
			if s.Label != "Break" && s.Label != "Long Break" {
				t.Errorf("unexpected break label %q", s.Label)
			}
			if s.Minutes() > 15 {
				t.Errorf("break longer than configured length: %d min", s.Minutes())
			}
		}
	}
	if breaks == 0 {
		t.Error("expected breaks between back-to-back sessions")
	}
}

func TestSchedule_MergesSessionsWhenBreaksDisabled(t *testing.T) {
	prefs := testPrefs()
	prefs.BreakLengthMinutes = 0

	task := readingTask("t1", 1.5, testNow.AddDate(0, 0, 3))
	result := testScheduler().Schedule([]models.Task{task}, prefs, 7)

	for _, s := range result.Sessions {
		if s.Type == models.SessionBreak {
			t.Errorf("found a break session with breaks disabled: %s", s.ID)
		}
	}
	if len(result.Sessions) != 1 {
		t.Fatalf("expected adjacent sessions to merge into one, got %d", len(result.Sessions))
	}
	if got := result.Sessions[0].Minutes(); got != 90 {
		t.Errorf("merged session should cover 90 minutes, got %d", got)
	}
}

func TestSchedule_ExtendsLastSessionToCoverShortfall(t *testing.T) {
	prefs := testPrefs()
	// One 45-minute slot; the task needs 60. The tail session stretches.
	prefs.WeeklySchedule = models.WeeklySchedule{
		time.Monday: {IsAvailable: true, StartTime: "09:00", EndTime: "10:00"},
	}

	task := readingTask("t1", 1, testNow.AddDate(0, 0, 1))
	result := testScheduler().Schedule([]models.Task{task}, prefs, 7)

	if got := taskMinutes(result); got != 60 {
		t.Errorf("expected the shortfall to be absorbed, got %d minutes", got)
	}
	if result.Coverage != 100 {
		t.Errorf("expected 100%% coverage, got %.1f", result.Coverage)
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	tasks := []models.Task{
		readingTask("t1", 2, testNow.AddDate(0, 0, 3)),
		readingTask("t2", 1, testNow.AddDate(0, 0, 4)),
	}
	first := testScheduler().Schedule(tasks, testPrefs(), 7)
	second := testScheduler().Schedule(tasks, testPrefs(), 7)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical inputs produced different plans")
	}
}

func TestSchedule_IgnoresDoneTasks(t *testing.T) {
	task := readingTask("t1", 2, testNow.AddDate(0, 0, 3))
	task.Status = models.TaskDone
	result := testScheduler().Schedule([]models.Task{task}, testPrefs(), 7)

	if len(result.Sessions) != 0 {
		t.Errorf("done tasks must not be scheduled, got %d sessions", len(result.Sessions))
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected a getting-started suggestion for an empty plan")
	}
}

func TestSchedule_DailySessionCap(t *testing.T) {
	// Essays are capped at one session per day.
	task := models.Task{
		ID: "essay", Title: "Long essay", Type: models.TaskEssay,
		DueAt: testNow.AddDate(0, 0, 6), EstHours: 3, Difficulty: 3,
		Priority: models.PriorityMedium, Status: models.TaskOpen,
	}
	result := testScheduler().Schedule([]models.Task{task}, testPrefs(), 7)

	perDay := map[string]int{}
	for _, s := range result.Sessions {
		if s.Type == models.SessionTask {
			perDay[timeutil.DayKey(s.StartAt, time.UTC)]++
		}
	}
	for day, n := range perDay {
		if n > 1 {
			t.Errorf("essay scheduled %d times on %s, cap is 1", n, day)
		}
	}
}

func TestGenerateSlots_SkipsMealBreaks(t *testing.T) {
	prefs := testPrefs()
	monday := prefs.WeeklySchedule[time.Monday]
	monday.MealBreaks = []models.MealBreak{{Start: "12:00", End: "13:00", Label: "Lunch"}}
	prefs.WeeklySchedule[time.Monday] = monday

	loc := time.UTC
	slots := generateSlots(testNow, 1, prefs, loc)
	if len(slots) == 0 {
		t.Fatal("expected slots for an available day")
	}

	lunchStart := timeutil.At(testNow, 12*60, loc)
	lunchEnd := timeutil.At(testNow, 13*60, loc)
	for _, sl := range slots {
		if timeutil.Overlaps(sl.startAt, sl.endAt, lunchStart, lunchEnd) {
			t.Errorf("slot %v-%v overlaps the lunch break", sl.startAt, sl.endAt)
		}
	}
}

func TestGenerateSlots_SkipsRecurringConstraints(t *testing.T) {
	prefs := testPrefs()
	prefs.Constraints = []models.TimeConstraint{{
		Type:        models.ConstraintClass,
		StartTime:   "10:00",
		EndTime:     "11:00",
		IsRecurring: true,
		Days:        []time.Weekday{time.Monday},
	}}

	loc := time.UTC
	slots := generateSlots(testNow, 1, prefs, loc)

	classStart := timeutil.At(testNow, 10*60, loc)
	classEnd := timeutil.At(testNow, 11*60, loc)
	for _, sl := range slots {
		if timeutil.Overlaps(sl.startAt, sl.endAt, classStart, classEnd) {
			t.Errorf("slot %v-%v overlaps a recurring constraint", sl.startAt, sl.endAt)
		}
	}
}

func TestGenerateSlots_SkipsMalformedDays(t *testing.T) {
	prefs := testPrefs()
	prefs.WeeklySchedule = models.WeeklySchedule{
		time.Monday:  {IsAvailable: true, StartTime: "9am", EndTime: "17:00"},
		time.Tuesday: {IsAvailable: true, StartTime: "09:00", EndTime: "17:00"},
	}

	slots := generateSlots(testNow, 2, prefs, time.UTC)
	for _, sl := range slots {
		if sl.startAt.Weekday() == time.Monday {
			t.Errorf("slot generated from a malformed day entry: %v", sl.startAt)
		}
	}
	if len(slots) == 0 {
		t.Error("well-formed Tuesday should still produce slots")
	}
}

func TestSlotPriority_PrefersOptimalWindows(t *testing.T) {
	prefs := models.Preferences{OptimalStudyTimes: models.OptimalStudyTimes{Morning: true}}
	loc := time.UTC

	nine := timeutil.At(testNow, 9*60, loc)
	thirteen := timeutil.At(testNow, 13*60, loc)

	if slotPriority(nine, prefs, loc) <= slotPriority(thirteen, prefs, loc) {
		t.Error("a morning slot should outrank an afternoon slot when mornings are preferred")
	}
}

func TestPrioritize_PriorityDominatesUrgency(t *testing.T) {
	urgent := readingTask("urgent-low", 1, testNow.Add(6*time.Hour))
	urgent.Priority = models.PriorityLow
	relaxed := readingTask("relaxed-high", 1, testNow.AddDate(0, 0, 20))
	relaxed.Priority = models.PriorityHigh

	ordered := prioritize([]models.Task{urgent, relaxed}, testNow)
	if ordered[0].ID != "relaxed-high" {
		t.Errorf("high priority should come first, got %s", ordered[0].ID)
	}
}

func TestPrioritize_UrgencyBreaksPriorityTies(t *testing.T) {
	soon := readingTask("soon", 1, testNow.AddDate(0, 0, 1))
	later := readingTask("later", 1, testNow.AddDate(0, 0, 10))

	ordered := prioritize([]models.Task{later, soon}, testNow)
	if ordered[0].ID != "soon" {
		t.Errorf("the sooner-due task should come first, got %s", ordered[0].ID)
	}
}

func TestPrioritize_ComplexityBreaksRemainingTies(t *testing.T) {
	// Same priority, same due date: the heavier task type wins.
	reading := readingTask("reading", 1, testNow.AddDate(0, 0, 5))
	exam := models.Task{
		ID: "exam", Title: "Exam prep", Type: models.TaskExamPrep,
		DueAt: testNow.AddDate(0, 0, 5), EstHours: 1, Difficulty: 3,
		Priority: models.PriorityMedium, Status: models.TaskOpen,
	}

	ordered := prioritize([]models.Task{reading, exam}, testNow)
	if ordered[0].ID != "exam" {
		t.Errorf("exam prep outweighs reading on complexity, got %s first", ordered[0].ID)
	}
}

func TestReconcile_TrimsExcessFromTheTail(t *testing.T) {
	start := timeutil.At(testNow, 9*60, time.UTC)
	sessions := []models.PlanSession{
		{StartAt: start, EndAt: timeutil.AddMinutes(start, 45), Type: models.SessionTask},
		{StartAt: timeutil.AddMinutes(start, 60), EndAt: timeutil.AddMinutes(start, 105), Type: models.SessionTask},
	}
	windowEnds := []time.Time{timeutil.AddMinutes(start, 480), timeutil.AddMinutes(start, 480)}

	reconcile(sessions, windowEnds, nil, 70)

	total := sessions[0].Minutes() + sessions[1].Minutes()
	if total != 70 {
		t.Errorf("expected 70 total minutes after trim, got %d", total)
	}
	if sessions[1].Minutes() < 15 {
		t.Errorf("trim went below the session floor: %d", sessions[1].Minutes())
	}
}

func TestReconcile_SpreadsLargeShortfall(t *testing.T) {
	start := timeutil.At(testNow, 9*60, time.UTC)
	sessions := []models.PlanSession{
		{StartAt: start, EndAt: timeutil.AddMinutes(start, 30), Type: models.SessionTask},
		{StartAt: timeutil.AddMinutes(start, 120), EndAt: timeutil.AddMinutes(start, 150), Type: models.SessionTask},
	}
	windowEnds := []time.Time{timeutil.AddMinutes(start, 480), timeutil.AddMinutes(start, 480)}

	// 60 + 40 short: per-session extension caps at 15, the rest spreads.
	reconcile(sessions, windowEnds, nil, 100)

	total := sessions[0].Minutes() + sessions[1].Minutes()
	if total != 100 {
		t.Errorf("expected 100 total minutes after extension, got %d", total)
	}
	if timeutil.Overlaps(sessions[0].StartAt, sessions[0].EndAt, sessions[1].StartAt, sessions[1].EndAt) {
		t.Error("extension made the sessions overlap")
	}
}

func TestReconcile_ExtensionNeverCrossesNextSession(t *testing.T) {
	start := timeutil.At(testNow, 9*60, time.UTC)
	// Back-to-back sessions with a 15-minute gap and a tight window: only
	// the gap is available, the rest of the shortfall must stay unplaced.
	sessions := []models.PlanSession{
		{StartAt: start, EndAt: timeutil.AddMinutes(start, 30), Type: models.SessionTask},
		{StartAt: timeutil.AddMinutes(start, 45), EndAt: timeutil.AddMinutes(start, 75), Type: models.SessionTask},
	}
	windowEnds := []time.Time{timeutil.AddMinutes(start, 75), timeutil.AddMinutes(start, 75)}

	reconcile(sessions, windowEnds, nil, 120)

	if timeutil.Overlaps(sessions[0].StartAt, sessions[0].EndAt, sessions[1].StartAt, sessions[1].EndAt) {
		t.Errorf("sessions overlap after reconciliation: [%v-%v] [%v-%v]",
			sessions[0].StartAt, sessions[0].EndAt, sessions[1].StartAt, sessions[1].EndAt)
	}
	if sessions[1].EndAt.After(windowEnds[1]) {
		t.Errorf("session extended past its availability window: %v", sessions[1].EndAt)
	}
	total := sessions[0].Minutes() + sessions[1].Minutes()
	if total != 75 {
		t.Errorf("expected only the 15-minute gap to be absorbed (75 total), got %d", total)
	}
}

func TestSchedule_CrampedWindowKeepsSessionsDisjoint(t *testing.T) {
	prefs := testPrefs()
	prefs.BlockLengthMinutes = 30
	// One short Monday window: two 30-minute slots for a two-hour task.
	prefs.WeeklySchedule = models.WeeklySchedule{
		time.Monday: {IsAvailable: true, StartTime: "09:00", EndTime: "10:15"},
	}

	task := readingTask("t1", 2, testNow.AddDate(0, 0, 1))
	result := testScheduler().Schedule([]models.Task{task}, prefs, 7)

	var taskSessions []models.PlanSession
	for _, s := range result.Sessions {
		if s.Type == models.SessionTask {
			taskSessions = append(taskSessions, s)
		}
	}
	for i := 0; i < len(taskSessions); i++ {
		for j := i + 1; j < len(taskSessions); j++ {
			a, b := taskSessions[i], taskSessions[j]
			if timeutil.Overlaps(a.StartAt, a.EndAt, b.StartAt, b.EndAt) {
				t.Errorf("sessions overlap: [%v-%v] and [%v-%v]", a.StartAt, a.EndAt, b.StartAt, b.EndAt)
			}
		}
	}

	windowEnd := timeutil.At(testNow, 10*60+15, time.UTC)
	for _, s := range taskSessions {
		if s.EndAt.After(windowEnd) {
			t.Errorf("session runs past the availability window: %v", s.EndAt)
		}
	}

	// 75 of 120 requested minutes fit; coverage must reflect that, not 100.
	if got := taskMinutes(result); got != 75 {
		t.Errorf("expected 75 scheduled minutes, got %d", got)
	}
	if result.Coverage >= 100 {
		t.Errorf("coverage should reflect the shortfall, got %.1f", result.Coverage)
	}
	found := false
	for _, c := range result.Conflicts {
		if strings.Contains(c, task.Title) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a conflict reporting the shortfall, got %v", result.Conflicts)
	}
}

func TestInsertBreaks_LongBreakLabel(t *testing.T) {
	start := timeutil.At(testNow, 9*60, time.UTC)
	sessions := []models.PlanSession{
		{ID: "a", StartAt: start, EndAt: timeutil.AddMinutes(start, 45), Type: models.SessionTask, TaskID: "t1"},
		{ID: "b", StartAt: timeutil.AddMinutes(start, 120), EndAt: timeutil.AddMinutes(start, 165), Type: models.SessionTask, TaskID: "t1"},
	}

	out := insertBreaks(sessions, 15)
	var brk *models.PlanSession
	for i := range out {
		if out[i].Type == models.SessionBreak {
			brk = &out[i]
		}
	}
	if brk == nil {
		t.Fatal("expected a break for a 75-minute gap")
	}
	if brk.Label != "Long Break" {
		t.Errorf("a gap of an hour or more should be a Long Break, got %q", brk.Label)
	}
	if brk.Minutes() != 15 {
		t.Errorf("break should be capped at the configured length, got %d", brk.Minutes())
	}
}

func TestInsertBreaks_SkipsHugeGaps(t *testing.T) {
	start := timeutil.At(testNow, 9*60, time.UTC)
	sessions := []models.PlanSession{
		{ID: "a", StartAt: start, EndAt: timeutil.AddMinutes(start, 45), Type: models.SessionTask},
		{ID: "b", StartAt: timeutil.AddMinutes(start, 300), EndAt: timeutil.AddMinutes(start, 345), Type: models.SessionTask},
	}

	for _, s := range insertBreaks(sessions, 15) {
		if s.Type == models.SessionBreak {
			t.Error("gaps beyond 90 minutes should not get a break")
		}
	}
}
