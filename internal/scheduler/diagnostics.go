package scheduler

import (
	"fmt"
	"time"

	"studyflow/internal/models"
)

const (
	urgentHorizonDays    = 2
	lowCoverageThreshold = 80
	hardTaskSuggestionAt = 3
)

// diagnose emits human-readable suggestions about the run: blocked
// schedules, looming due dates, low coverage, difficulty clustering, and
// unused availability. taskSessions holds only study sessions, before break
// insertion; remaining is the slot pool left after allocation.
func diagnose(open []models.Task, taskSessions []models.PlanSession, remaining []slot, now time.Time, coverage float64) []string {
	if len(taskSessions) == 0 {
		return []string{"No study sessions could be scheduled. Consider extending your available hours or adjusting task due dates."}
	}

	suggestions := []string{}

	urgent := 0
	for _, t := range open {
		if t.DueAt.Sub(now).Hours()/24 <= urgentHorizonDays {
			urgent++
		}
	}
	if urgent > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%d task(s) due within 2 days - prioritize these first.", urgent))
	}

	if coverage < lowCoverageThreshold {
		suggestions = append(suggestions, fmt.Sprintf("Only %.0f%% of study time scheduled. Consider extending available hours or reducing task scope.", coverage))
	}

	hard := 0
	for _, t := range open {
		if t.Difficulty >= 4 {
			hard++
		}
	}
	if hard > hardTaskSuggestionAt {
		suggestions = append(suggestions, "You have many high-difficulty tasks. Schedule these during your peak focus hours.")
	}

	if len(remaining) > len(taskSessions) {
		suggestions = append(suggestions, "You have unused study time available. Consider adding more tasks or breaking large tasks into smaller ones.")
	}

	return suggestions
}
