package scheduler

import (
	"fmt"
	"math"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

const (
	// minSessionMinutes is the floor below which no session is trimmed.
	minSessionMinutes = 15
	// maxExtensionMinutes caps how far one session's end is pushed during
	// reconciliation before the remainder is spread across all sessions.
	maxExtensionMinutes = 15
)

var baseSessionLength = map[models.TaskType]int{
	models.TaskReading:      45,
	models.TaskMemorization: 30,
	models.TaskProblemSet:   60,
	models.TaskEssay:        90,
	models.TaskExamPrep:     50,
}

// optimalSessionLength is the preferred single-session duration for a task:
// the type's base length, stretched for hard tasks and shortened for easy
// ones.
func optimalSessionLength(taskType models.TaskType, difficulty int) int {
	length, ok := baseSessionLength[taskType]
	if !ok {
		length = 45
	}
	if difficulty >= 4 {
		length = min(length+15, 120)
	}
	if difficulty <= 2 {
		length = max(length-15, 30)
	}
	return length
}

// maxSessionsPerDay caps how many sessions of one task land on a single
// calendar day. Memorization benefits from spaced repetition; essays and
// exam prep need one block of deep work.
func maxSessionsPerDay(taskType models.TaskType, difficulty int) int {
	sessions := 2
	switch taskType {
	case models.TaskMemorization:
		sessions = 4
	case models.TaskEssay, models.TaskExamPrep:
		sessions = 1
	case models.TaskReading, models.TaskProblemSet:
		sessions = 3
	}
	if difficulty >= 4 {
		sessions = max(1, sessions-1)
	}
	return sessions
}

// allocate walks the slot pool in priority order and carves out sessions for
// one task until its estimated effort is covered. Session durations are
// reconciled toward round(estHours*60) minutes, but only within the free
// time actually available; a shortfall the windows cannot absorb is left for
// the caller to report. When no slot can host the task at all, nil is
// returned.
func allocate(task models.Task, slots []slot, placed []models.PlanSession, prefs models.Preferences, loc *time.Location) []models.PlanSession {
	needed := int(math.Round(task.EstHours * 60))
	if needed <= 0 {
		return nil
	}
	optimal := optimalSessionLength(task.Type, task.Difficulty)
	dailyCap := maxSessionsPerDay(task.Type, task.Difficulty)

	var sessions []models.PlanSession
	var windowEnds []time.Time
	remaining := needed
	sessionsToday := 0
	lastDay := ""

	for _, sl := range slots {
		if remaining <= 0 {
			break
		}
		if sl.startAt.After(task.DueAt) {
			continue
		}

		day := timeutil.DayKey(sl.startAt, loc)
		if day != lastDay {
			sessionsToday = 0
			lastDay = day
		}
		if sessionsToday >= dailyCap {
			continue
		}

		duration := min(optimal, remaining, prefs.BlockLengthMinutes)
		end := timeutil.AddMinutes(sl.startAt, duration)
		if end.After(sl.endAt) {
			continue
		}

		sessions = append(sessions, models.PlanSession{
			ID:      fmt.Sprintf("%s-%d", task.ID, len(sessions)),
			TaskID:  task.ID,
			StartAt: sl.startAt,
			EndAt:   end,
			Type:    models.SessionTask,
			Status:  models.SessionPlanned,
		})
		windowEnds = append(windowEnds, sl.windowEnd)
		remaining -= duration
		sessionsToday++
	}

	if len(sessions) == 0 {
		return nil
	}
	reconcile(sessions, windowEnds, placed, needed)
	return sessions
}

// reconcile adjusts session end times toward the task's requested minutes.
// Shortfall is absorbed by extending sessions from the last one backward
// (capped per session), then spread evenly; no extension ever crosses the
// start of another session or the end of the containing availability window,
// so an unabsorbable remainder simply stays unscheduled. Excess is trimmed
// from the last session backward without shrinking any session below the
// minimum floor.
func reconcile(sessions []models.PlanSession, windowEnds []time.Time, placed []models.PlanSession, needed int) {
	total := 0
	for _, s := range sessions {
		total += s.Minutes()
	}

	switch diff := needed - total; {
	case diff > 0:
		headroom := extensionHeadroom(sessions, windowEnds, placed)
		toAdd := diff
		for i := len(sessions) - 1; i >= 0 && toAdd > 0; i-- {
			if ext := min(toAdd, maxExtensionMinutes, headroom[i]); ext > 0 {
				sessions[i].EndAt = timeutil.AddMinutes(sessions[i].EndAt, ext)
				headroom[i] -= ext
				toAdd -= ext
			}
		}
		if toAdd > 0 {
			perSession := (toAdd + len(sessions) - 1) / len(sessions)
			for i := range sessions {
				if toAdd <= 0 {
					break
				}
				if ext := min(perSession, toAdd, headroom[i]); ext > 0 {
					sessions[i].EndAt = timeutil.AddMinutes(sessions[i].EndAt, ext)
					headroom[i] -= ext
					toAdd -= ext
				}
			}
		}
		for i := range sessions {
			if toAdd <= 0 {
				break
			}
			if ext := min(toAdd, headroom[i]); ext > 0 {
				sessions[i].EndAt = timeutil.AddMinutes(sessions[i].EndAt, ext)
				headroom[i] -= ext
				toAdd -= ext
			}
		}
	case diff < 0:
		toTrim := -diff
		for i := len(sessions) - 1; i >= 0 && toTrim > 0; i-- {
			cut := min(toTrim, max(0, sessions[i].Minutes()-minSessionMinutes))
			if cut > 0 {
				sessions[i].EndAt = timeutil.AddMinutes(sessions[i].EndAt, -cut)
				toTrim -= cut
			}
		}
	}
}

// extensionHeadroom returns, per session, how many minutes its end can move
// forward without touching the next session (own or already placed) or
// leaving the availability window.
func extensionHeadroom(sessions []models.PlanSession, windowEnds []time.Time, placed []models.PlanSession) []int {
	headroom := make([]int, len(sessions))
	for i := range sessions {
		limit := windowEnds[i]
		for j := range sessions {
			if j != i && !sessions[j].StartAt.Before(sessions[i].EndAt) && sessions[j].StartAt.Before(limit) {
				limit = sessions[j].StartAt
			}
		}
		for _, p := range placed {
			if !p.StartAt.Before(sessions[i].EndAt) && p.StartAt.Before(limit) {
				limit = p.StartAt
			}
		}
		headroom[i] = max(0, timeutil.MinutesBetween(sessions[i].EndAt, limit))
	}
	return headroom
}
