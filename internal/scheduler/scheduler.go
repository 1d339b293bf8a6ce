package scheduler

import (
	"fmt"
	"math"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

// DefaultDaysAhead is the rolling horizon used when the caller passes a
// non-positive day count.
const DefaultDaysAhead = 7

// Scheduler turns open tasks plus availability preferences into a concrete
// sequence of study sessions. It holds no state between runs; the clock is
// injected so a run is a pure function of its inputs.
type Scheduler struct {
	now func() time.Time
}

func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// NewWithClock returns a scheduler that reads "now" from the given function.
func NewWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Schedule computes a study plan for the next daysAhead days. It never
// returns an error: malformed availability data is skipped, and tasks that
// cannot be placed are reported through the result's Conflicts.
func (s *Scheduler) Schedule(tasks []models.Task, prefs models.Preferences, daysAhead int) models.ScheduleResult {
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}

	loc := locationFor(prefs.Timezone)
	now := s.now().In(loc)

	var open []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskOpen {
			open = append(open, t)
		}
	}

	if len(open) == 0 {
		return models.ScheduleResult{
			Sessions:    []models.PlanSession{},
			Conflicts:   []string{},
			Suggestions: []string{"Add some tasks to get started with your personalized study plan!"},
			Coverage:    100,
		}
	}

	slots := generateSlots(now, daysAhead, prefs, loc)
	ordered := prioritize(open, now)

	var sessions []models.PlanSession
	conflicts := []string{}
	requestedMinutes := 0
	scheduledMinutes := 0

	for _, task := range ordered {
		need := int(math.Round(task.EstHours * 60))
		requestedMinutes += need

		placed := allocate(task, slots, sessions, prefs, loc)
		if len(placed) == 0 {
			due := task.DueAt.In(loc).Format("Jan 2, 3:04 PM")
			conflicts = append(conflicts, fmt.Sprintf("Cannot schedule %q before %s - not enough available time", task.Title, due))
			continue
		}

		placedMinutes := 0
		for _, sess := range placed {
			placedMinutes += sess.Minutes()
		}
		if placedMinutes < need {
			due := task.DueAt.In(loc).Format("Jan 2, 3:04 PM")
			conflicts = append(conflicts, fmt.Sprintf("Only %d of %d minutes scheduled for %q before %s - not enough available time", placedMinutes, need, task.Title, due))
		}

		sessions = append(sessions, placed...)
		scheduledMinutes += placedMinutes
		slots = removeConsumed(slots, placed)
	}

	coverage := 100.0
	if requestedMinutes > 0 {
		coverage = float64(scheduledMinutes) / float64(requestedMinutes) * 100
	}

	return models.ScheduleResult{
		Sessions:          insertBreaks(sessions, prefs.BreakLengthMinutes),
		Conflicts:         conflicts,
		Suggestions:       diagnose(open, sessions, slots, now, coverage),
		TotalPlannedHours: float64(scheduledMinutes) / 60,
		Coverage:          coverage,
	}
}

// locationFor resolves an IANA zone name, falling back to the host zone when
// the name is empty or unknown.
func locationFor(tz string) *time.Location {
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

// removeConsumed drops every slot that overlaps a placed session. Matching
// start instants alone would leave reconciliation-extended sessions sharing
// time with slots still in the pool.
func removeConsumed(slots []slot, placed []models.PlanSession) []slot {
	remaining := slots[:0]
	for _, sl := range slots {
		consumed := false
		for _, sess := range placed {
			if timeutil.Overlaps(sl.startAt, sl.endAt, sess.StartAt, sess.EndAt) {
				consumed = true
				break
			}
		}
		if !consumed {
			remaining = append(remaining, sl)
		}
	}
	return remaining
}
