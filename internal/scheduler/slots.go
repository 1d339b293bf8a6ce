package scheduler

import (
	"sort"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

// slot is a fixed-length, constraint-free candidate window. windowEnd is the
// end of the availability window the slot was cut from; session extensions
// may spill past endAt into the following break gap but never past it. The
// priority is a relative score used only for ordering, never a hard
// constraint.
type slot struct {
	startAt   time.Time
	endAt     time.Time
	windowEnd time.Time
	priority  int
}

// Slot priority boosts. Tunable heuristics: the only requirement is that a
// slot aligned with stated preference scores higher than one that is not.
const (
	optimalWindowBoost = 3 // slot starts inside an enabled optimal study window
	morningPeakBoost   = 2 // 09:00-11:59
	afternoonPeakBoost = 1 // 14:00-16:59
)

// generateSlots expands availability into candidate slots over the horizon,
// sorted by descending priority with start time as the deterministic
// tie-breaker.
func generateSlots(now time.Time, daysAhead int, prefs models.Preferences, loc *time.Location) []slot {
	step := prefs.BlockLengthMinutes + prefs.BreakLengthMinutes
	if prefs.BlockLengthMinutes <= 0 || step <= 0 {
		return nil
	}

	var slots []slot
	for i := 0; i < daysAhead; i++ {
		day := now.AddDate(0, 0, i)
		for _, w := range dayWindows(day, prefs, loc) {
			for cur := w.start; ; cur = timeutil.AddMinutes(cur, step) {
				end := timeutil.AddMinutes(cur, prefs.BlockLengthMinutes)
				if end.After(w.end) {
					break
				}
				if excluded(cur, end, day, prefs, loc) {
					continue
				}
				slots = append(slots, slot{startAt: cur, endAt: end, windowEnd: w.end, priority: slotPriority(cur, prefs, loc)})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].priority != slots[j].priority {
			return slots[i].priority > slots[j].priority
		}
		return slots[i].startAt.Before(slots[j].startAt)
	})
	return slots
}

type window struct {
	start time.Time
	end   time.Time
}

// dayWindows returns the base availability windows for one calendar day:
// the explicit time blocks when configured, otherwise the weekday's entry
// from the weekly schedule. Windows with malformed times are skipped rather
// than failing the run.
func dayWindows(day time.Time, prefs models.Preferences, loc *time.Location) []window {
	if len(prefs.TimeBlocks) > 0 {
		var windows []window
		for _, block := range prefs.TimeBlocks {
			w, ok := clockWindow(day, block.StartTime, block.EndTime, loc)
			if ok {
				windows = append(windows, w)
			}
		}
		return windows
	}

	ds, ok := prefs.WeeklySchedule[day.In(loc).Weekday()]
	if !ok || !ds.IsAvailable {
		return nil
	}
	w, ok := clockWindow(day, ds.StartTime, ds.EndTime, loc)
	if !ok {
		return nil
	}
	return []window{w}
}

func clockWindow(day time.Time, startClock, endClock string, loc *time.Location) (window, bool) {
	start, err := timeutil.ParseClock(startClock)
	if err != nil {
		return window{}, false
	}
	end, err := timeutil.ParseClock(endClock)
	if err != nil || end <= start {
		return window{}, false
	}
	return window{start: timeutil.At(day, start, loc), end: timeutil.At(day, end, loc)}, true
}

// excluded reports whether a candidate slot collides with a meal break for
// that weekday or with an applicable time constraint. Malformed exclusion
// windows are treated as not constraining anything.
func excluded(slotStart, slotEnd, day time.Time, prefs models.Preferences, loc *time.Location) bool {
	weekday := day.In(loc).Weekday()

	if ds, ok := prefs.WeeklySchedule[weekday]; ok {
		for _, meal := range ds.MealBreaks {
			if w, ok := clockWindow(day, meal.Start, meal.End, loc); ok &&
				timeutil.Overlaps(slotStart, slotEnd, w.start, w.end) {
				return true
			}
		}
	}

	for _, c := range prefs.Constraints {
		if c.IsRecurring {
			if !containsWeekday(c.Days, weekday) {
				continue
			}
		} else if c.SpecificDate != timeutil.DayKey(day, loc) {
			continue
		}
		if w, ok := clockWindow(day, c.StartTime, c.EndTime, loc); ok &&
			timeutil.Overlaps(slotStart, slotEnd, w.start, w.end) {
			return true
		}
	}

	return false
}

func containsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}

func slotPriority(slotStart time.Time, prefs models.Preferences, loc *time.Location) int {
	hour := slotStart.In(loc).Hour()
	priority := 1

	if hour >= 6 && hour < 12 && prefs.OptimalStudyTimes.Morning {
		priority += optimalWindowBoost
	}
	if hour >= 12 && hour < 18 && prefs.OptimalStudyTimes.Afternoon {
		priority += optimalWindowBoost
	}
	if hour >= 18 && hour < 22 && prefs.OptimalStudyTimes.Evening {
		priority += optimalWindowBoost
	}

	if hour >= 9 && hour <= 11 {
		priority += morningPeakBoost
	}
	if hour >= 14 && hour <= 16 {
		priority += afternoonPeakBoost
	}

	return priority
}
