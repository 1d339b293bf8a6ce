package models

import "time"

// MealBreak is a sub-interval of a day's availability that must stay free.
type MealBreak struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
	Label string `json:"label"`
}

// DaySchedule describes availability for one weekday.
type DaySchedule struct {
	IsAvailable bool        `json:"is_available"`
	StartTime   string      `json:"start_time"` // HH:MM
	EndTime     string      `json:"end_time"`   // HH:MM
	MealBreaks  []MealBreak `json:"meal_breaks,omitempty"`
}

// WeeklySchedule maps weekdays to their availability windows.
type WeeklySchedule map[time.Weekday]DaySchedule

// TimeBlock is an explicit availability window applied identically to every
// day in the horizon. When any blocks are configured they take precedence
// over the weekly schedule.
type TimeBlock struct {
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

type ConstraintType string

const (
	ConstraintSleep       ConstraintType = "sleep"
	ConstraintMeal        ConstraintType = "meal"
	ConstraintWork        ConstraintType = "work"
	ConstraintClass       ConstraintType = "class"
	ConstraintPersonal    ConstraintType = "personal"
	ConstraintUnavailable ConstraintType = "unavailable"
)

// TimeConstraint is an ad-hoc exclusion window, either recurring on a set of
// weekdays or bound to one specific calendar date.
type TimeConstraint struct {
	Type         ConstraintType `json:"type"`
	StartTime    string         `json:"start_time"` // HH:MM
	EndTime      string         `json:"end_time"`   // HH:MM
	IsRecurring  bool           `json:"is_recurring"`
	Days         []time.Weekday `json:"days,omitempty"`
	SpecificDate string         `json:"specific_date,omitempty"` // YYYY-MM-DD
}

// OptimalStudyTimes marks which parts of the day the user studies best in.
// Morning is 06-12, afternoon 12-18, evening 18-22.
type OptimalStudyTimes struct {
	Morning   bool `json:"morning"`
	Afternoon bool `json:"afternoon"`
	Evening   bool `json:"evening"`
}

// Preferences holds everything the scheduler needs besides the tasks.
type Preferences struct {
	Timezone           string            `json:"timezone"` // IANA zone name; empty means host local
	BlockLengthMinutes int               `json:"block_length_minutes"`
	BreakLengthMinutes int               `json:"break_length_minutes"` // 0 disables breaks and merges sessions
	OptimalStudyTimes  OptimalStudyTimes `json:"optimal_study_times"`
	WeeklySchedule     WeeklySchedule    `json:"weekly_schedule"`
	TimeBlocks         []TimeBlock       `json:"time_blocks,omitempty"`
	Constraints        []TimeConstraint  `json:"constraints,omitempty"`
}

// DefaultPreferences returns the out-of-the-box weekly setup: weekdays
// 09:00-18:00 with a lunch break, Saturday 10:00-16:00, Sunday off.
func DefaultPreferences() Preferences {
	lunch := []MealBreak{{Start: "12:00", End: "13:00", Label: "Lunch"}}
	weekday := DaySchedule{IsAvailable: true, StartTime: "09:00", EndTime: "18:00", MealBreaks: lunch}

	return Preferences{
		BlockLengthMinutes: 45,
		BreakLengthMinutes: 15,
		OptimalStudyTimes:  OptimalStudyTimes{Morning: true, Afternoon: true},
		WeeklySchedule: WeeklySchedule{
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
			time.Saturday: {
				IsAvailable: true,
				StartTime:   "10:00",
				EndTime:     "16:00",
				MealBreaks:  []MealBreak{{Start: "13:00", End: "14:00", Label: "Lunch"}},
			},
			time.Sunday: {StartTime: "10:00", EndTime: "16:00"},
		},
	}
}
