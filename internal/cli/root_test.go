package cli

import (
	"testing"
	"time"

	"studyflow/internal/models"
)

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"mon", time.Monday, false},
		{"Monday", time.Monday, false},
		{" FRI ", time.Friday, false},
		{"0", time.Sunday, false},
		{"6", time.Saturday, false},
		{"7", 0, true},
		{"noday", 0, true},
	}

	for _, c := range cases {
		got, err := parseWeekday(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseWeekday(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWeekday(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseWeekday(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := parseWeekdays("mon,wed, fri")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}

	if _, err := parseWeekdays("mon,bogus"); err == nil {
		t.Error("expected error for an invalid entry")
	}
}

func TestParseDueAt(t *testing.T) {
	loc := time.UTC

	got, err := parseDueAt("2026-01-09T14:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.January, 9, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = parseDueAt("2026-01-09", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2026, time.January, 9, 23, 59, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("date-only form should be due at end of day, got %v", got)
	}

	if _, err := parseDueAt("next tuesday", loc); err == nil {
		t.Error("expected error for a non-date string")
	}
}

func TestSortTasksByDue(t *testing.T) {
	due := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "b", DueAt: due},
		{Title: "a", DueAt: due},
		{Title: "c", DueAt: due.AddDate(0, 0, -1)},
	}

	sortTasksByDue(tasks)

	if tasks[0].Title != "c" {
		t.Errorf("earliest due date should sort first, got %s", tasks[0].Title)
	}
	if tasks[1].Title != "a" || tasks[2].Title != "b" {
		t.Errorf("equal due dates should sort by title, got %s then %s", tasks[1].Title, tasks[2].Title)
	}
}
