package models

import "time"

type SessionType string

const (
	SessionTask        SessionType = "task"
	SessionBreak       SessionType = "break"
	SessionMeal        SessionType = "meal"
	SessionSleep       SessionType = "sleep"
	SessionUnavailable SessionType = "unavailable"
)

type SessionStatus string

const (
	SessionPlanned SessionStatus = "planned"
	SessionDone    SessionStatus = "done"
)

// PlanSession is one scheduled time block: either study time for a task
// or a synthetic block (break, meal). Times are absolute instants.
type PlanSession struct {
	ID      string        `json:"id"`
	TaskID  string        `json:"task_id"`
	StartAt time.Time     `json:"start_at"`
	EndAt   time.Time     `json:"end_at"`
	Type    SessionType   `json:"type"`
	Status  SessionStatus `json:"status"`
	Label   string        `json:"label,omitempty"`
}

// Minutes returns the session duration in whole minutes.
func (s PlanSession) Minutes() int {
	return int(s.EndAt.Sub(s.StartAt) / time.Minute)
}

// ScheduleResult is the aggregate output of one scheduling run.
type ScheduleResult struct {
	Sessions          []PlanSession `json:"sessions"`
	Conflicts         []string      `json:"conflicts"`
	Suggestions       []string      `json:"suggestions"`
	TotalPlannedHours float64       `json:"total_planned_hours"`
	Coverage          float64       `json:"coverage"` // 0..100
}
