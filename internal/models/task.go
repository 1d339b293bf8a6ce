package models

import "time"

type TaskType string

const (
	TaskReading      TaskType = "reading"
	TaskProblemSet   TaskType = "problem-set"
	TaskEssay        TaskType = "essay"
	TaskExamPrep     TaskType = "exam-prep"
	TaskMemorization TaskType = "memorization"
)

// TaskTypes lists every valid task type, in display order.
var TaskTypes = []TaskType{TaskReading, TaskProblemSet, TaskEssay, TaskExamPrep, TaskMemorization}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

// Task is a unit of study work. The scheduler only ever reads tasks;
// status changes happen through storage.
type Task struct {
	ID         string     `json:"id"`
	CourseID   string     `json:"course_id,omitempty"`
	Title      string     `json:"title"`
	Type       TaskType   `json:"type"`
	DueAt      time.Time  `json:"due_at"`
	EstHours   float64    `json:"est_hours"`
	Difficulty int        `json:"difficulty"` // 1-5
	Priority   Priority   `json:"priority"`
	Notes      string     `json:"notes,omitempty"`
	Status     TaskStatus `json:"status"`
}

// Course groups tasks for display purposes.
type Course struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
