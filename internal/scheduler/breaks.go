package scheduler

import (
	"fmt"
	"sort"
	"time"

	"studyflow/internal/models"
	"studyflow/internal/timeutil"
)

const (
	// mergeGapTolerance absorbs rounding when joining adjacent sessions of
	// the same task while breaks are disabled.
	mergeGapTolerance = time.Minute
	// maxBreakGapMinutes is the largest gap that still gets a synthetic
	// break; anything longer is just idle time on the timeline.
	maxBreakGapMinutes = 90
	// longBreakThresholdMinutes switches the break label.
	longBreakThresholdMinutes = 60
)

// insertBreaks post-processes the placed task sessions. With breaks disabled
// it merges adjacent same-task sessions into contiguous blocks; otherwise it
// fills qualifying gaps between sessions with break sessions.
func insertBreaks(sessions []models.PlanSession, breakLengthMinutes int) []models.PlanSession {
	ordered := make([]models.PlanSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartAt.Before(ordered[j].StartAt)
	})

	if breakLengthMinutes == 0 {
		return mergeAdjacent(ordered)
	}

	out := make([]models.PlanSession, 0, len(ordered))
	for i, cur := range ordered {
		out = append(out, cur)
		if i == len(ordered)-1 {
			continue
		}

		gap := timeutil.MinutesBetween(cur.EndAt, ordered[i+1].StartAt)
		if gap < breakLengthMinutes || gap > maxBreakGapMinutes {
			continue
		}

		label := "Break"
		if gap >= longBreakThresholdMinutes {
			label = "Long Break"
		}
		out = append(out, models.PlanSession{
			ID:      fmt.Sprintf("break-%d", i),
			StartAt: cur.EndAt,
			EndAt:   timeutil.AddMinutes(cur.EndAt, min(gap, breakLengthMinutes)),
			Type:    models.SessionBreak,
			Status:  models.SessionPlanned,
			Label:   label,
		})
	}
	return out
}

// mergeAdjacent joins consecutive sessions of the same task whose gap is
// within the rounding tolerance.
func mergeAdjacent(ordered []models.PlanSession) []models.PlanSession {
	out := make([]models.PlanSession, 0, len(ordered))
	for _, s := range ordered {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.Type == models.SessionTask && s.Type == models.SessionTask &&
				last.TaskID == s.TaskID && s.StartAt.Sub(last.EndAt) <= mergeGapTolerance {
				if s.EndAt.After(last.EndAt) {
					last.EndAt = s.EndAt
				}
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
