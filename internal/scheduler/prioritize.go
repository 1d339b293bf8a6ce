package scheduler

import (
	"math"
	"sort"
	"time"

	"studyflow/internal/models"
)

// Explicit priority strongly dominates the other ordering factors: a high
// priority task always sorts before a medium one regardless of urgency.
var priorityWeight = map[models.Priority]float64{
	models.PriorityLow:    1,
	models.PriorityMedium: 5,
	models.PriorityHigh:   15,
}

var typeComplexity = map[models.TaskType]float64{
	models.TaskReading:      1.0,
	models.TaskMemorization: 1.1,
	models.TaskProblemSet:   1.3,
	models.TaskEssay:        1.5,
	models.TaskExamPrep:     1.6,
}

const (
	// urgencyFloorDays keeps 1/daysUntilDue bounded for overdue tasks.
	urgencyFloorDays = 0.1
	// urgencyTieThreshold is the minimum urgency difference that breaks a
	// same-priority tie before complexity is consulted.
	urgencyTieThreshold = 0.1
	// difficultyScale stretches type complexity by task difficulty.
	difficultyScale = 0.2
)

// prioritize returns the open tasks in allocation order: priority weight
// first, then urgency, then type complexity adjusted for difficulty. The
// sort is stable, so equal inputs keep their incoming order.
func prioritize(tasks []models.Task, now time.Time) []models.Task {
	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		if wa, wb := weightFor(a.Priority), weightFor(b.Priority); wa != wb {
			return wa > wb
		}

		urgencyDiff := 1/daysUntilDue(a.DueAt, now) - 1/daysUntilDue(b.DueAt, now)
		if math.Abs(urgencyDiff) > urgencyTieThreshold {
			return urgencyDiff > 0
		}

		return complexityScore(a) > complexityScore(b)
	})

	return ordered
}

func weightFor(p models.Priority) float64 {
	if w, ok := priorityWeight[p]; ok {
		return w
	}
	return priorityWeight[models.PriorityMedium]
}

func daysUntilDue(due, now time.Time) float64 {
	return math.Max(urgencyFloorDays, due.Sub(now).Hours()/24)
}

func complexityScore(t models.Task) float64 {
	weight, ok := typeComplexity[t.Type]
	if !ok {
		weight = 1.0
	}
	return weight * (1 + (float64(t.Difficulty)-3)*difficultyScale)
}
