package entities

import (
	"testing"
	"time"
)

func dayShiftWeek() map[time.Weekday][]WorkWindow {
	week := make(map[time.Weekday][]WorkWindow)
	for day := time.Monday; day <= time.Friday; day++ {
		week[day] = []WorkWindow{{Start: 8 * time.Hour, End: 16 * time.Hour}}
	}
	return week
}

func TestCalendar_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		id          CalendarID
		week        map[time.Weekday][]WorkWindow
		expectError string
	}{
		{"empty id", "", dayShiftWeek(), "calendar id cannot be empty"},
		{"no working time", "EMPTY", map[time.Weekday][]WorkWindow{}, "calendar EMPTY has no working time"},
		{
			"end before start", "BAD",
			map[time.Weekday][]WorkWindow{time.Monday: {{Start: 16 * time.Hour, End: 8 * time.Hour}}},
			"calendar BAD: Monday window end must be after start: 16h0m0s-8h0m0s",
		},
		{
			"outside day", "BAD",
			map[time.Weekday][]WorkWindow{time.Monday: {{Start: 8 * time.Hour, End: 25 * time.Hour}}},
			"calendar BAD: Monday window outside day bounds: 8h0m0s-25h0m0s",
		},
		{
			"overlapping windows", "BAD",
			map[time.Weekday][]WorkWindow{time.Monday: {
				{Start: 8 * time.Hour, End: 12 * time.Hour},
				{Start: 11 * time.Hour, End: 16 * time.Hour},
			}},
			"calendar BAD: Monday windows overlap at 11h0m0s",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCalendar(tc.id, "", tc.week)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}

	if _, err := NewCalendar("SHIFT", "Day shift", dayShiftWeek()); err != nil {
		t.Fatalf("Expected valid calendar creation to succeed: %v", err)
	}
}

func TestCalendar_SubtractWorking_Continuous(t *testing.T) {
	cal := ContinuousCalendar("ALWAYS")
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	start, err := cal.SubtractWorking(end, 48*time.Hour)
	if err != nil {
		t.Fatalf("SubtractWorking failed: %v", err)
	}
	expected := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, start)
	}
}

func TestCalendar_SubtractWorking_ZeroElapsed(t *testing.T) {
	cal := ContinuousCalendar("ALWAYS")
	end := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	start, err := cal.SubtractWorking(end, 0)
	if err != nil {
		t.Fatalf("SubtractWorking failed: %v", err)
	}
	if !start.Equal(end) {
		t.Errorf("Expected zero elapsed to return the end instant, got %v", start)
	}
}

func TestCalendar_SubtractWorking_NegativeElapsed(t *testing.T) {
	cal := ContinuousCalendar("ALWAYS")
	_, err := cal.SubtractWorking(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), -time.Hour)
	if err == nil {
		t.Fatal("Expected error for negative elapsed time")
	}
}

func TestCalendar_SubtractWorking_SkipsWeekend(t *testing.T) {
	cal, err := NewCalendar("SHIFT", "Day shift", dayShiftWeek())
	if err != nil {
		t.Fatalf("Failed to create calendar: %v", err)
	}

	// Monday 2026-03-09 12:00 back by 8 working hours: 4h on Monday morning,
	// the weekend contributes nothing, 4h on Friday afternoon.
	end := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	start, err := cal.SubtractWorking(end, 8*time.Hour)
	if err != nil {
		t.Fatalf("SubtractWorking failed: %v", err)
	}
	expected := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, start)
	}
}

func TestCalendar_SubtractWorking_EndOutsideWindow(t *testing.T) {
	cal, err := NewCalendar("SHIFT", "Day shift", dayShiftWeek())
	if err != nil {
		t.Fatalf("Failed to create calendar: %v", err)
	}

	// Tuesday 20:00 is after the shift; the walk starts consuming at 16:00.
	end := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	start, err := cal.SubtractWorking(end, 2*time.Hour)
	if err != nil {
		t.Fatalf("SubtractWorking failed: %v", err)
	}
	expected := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, start)
	}
}

func TestCalendar_SubtractWorking_SkipsException(t *testing.T) {
	cal, err := NewCalendar("SHIFT", "Day shift", dayShiftWeek())
	if err != nil {
		t.Fatalf("Failed to create calendar: %v", err)
	}
	cal.AddException(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)) // that Friday is a holiday

	end := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	start, err := cal.SubtractWorking(end, 8*time.Hour)
	if err != nil {
		t.Fatalf("SubtractWorking failed: %v", err)
	}
	// 4h Monday morning, Friday skipped, 4h Thursday afternoon.
	expected := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, start)
	}
}

func TestCalendar_SubtractWorking_MultipleWindows(t *testing.T) {
	week := map[time.Weekday][]WorkWindow{
		time.Wednesday: {
			{Start: 8 * time.Hour, End: 12 * time.Hour},
			{Start: 13 * time.Hour, End: 17 * time.Hour},
		},
	}
	cal, err := NewCalendar("SPLIT", "Split shift", week)
	if err != nil {
		t.Fatalf("Failed to create calendar: %v", err)
	}

	// 6 working hours back from Wednesday 17:00 crosses the lunch break.
	end := time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC)
	start, err := cal.SubtractWorking(end, 6*time.Hour)
	if err != nil {
		t.Fatalf("SubtractWorking failed: %v", err)
	}
	expected := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	if !start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, start)
	}
}

func TestCalendar_SubtractWorking_ExhaustedHorizon(t *testing.T) {
	cal, err := NewCalendar("SHIFT", "Day shift", dayShiftWeek())
	if err != nil {
		t.Fatalf("Failed to create calendar: %v", err)
	}
	// Blank out every day the walk will visit.
	end := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	for d := 0; d <= maxLookbackDays; d++ {
		cal.AddException(end.AddDate(0, 0, -d))
	}

	if _, err := cal.SubtractWorking(end, time.Hour); err == nil {
		t.Fatal("Expected error when no working time is reachable")
	}
}
