package entities

import (
	"fmt"
	"sort"
	"time"
)

// CalendarID represents a named working-time calendar
type CalendarID string

// WorkWindow is a working period within a single day, expressed as offsets
// from midnight. Start is inclusive, End exclusive.
type WorkWindow struct {
	Start time.Duration
	End   time.Duration
}

// Calendar describes working time as a weekly template of work windows plus
// exception dates on which no work happens at all.
type Calendar struct {
	ID         CalendarID
	Name       string
	Week       map[time.Weekday][]WorkWindow
	Exceptions map[string]bool // dates formatted as 2006-01-02
}

// maxLookbackDays bounds the backward walk so a calendar whose working time
// has been blanked out by exceptions cannot loop forever.
const maxLookbackDays = 5 * 366

const dateLayout = "2006-01-02"

// NewCalendar creates a validated Calendar. Windows are sorted by start time;
// each weekday's windows must be non-empty spans within the day and must not
// overlap. A calendar must carry at least one window somewhere in the week.
func NewCalendar(id CalendarID, name string, week map[time.Weekday][]WorkWindow) (*Calendar, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("calendar id cannot be empty")
	}

	total := 0
	sorted := make(map[time.Weekday][]WorkWindow, len(week))
	for day, windows := range week {
		ws := make([]WorkWindow, len(windows))
		copy(ws, windows)
		sort.Slice(ws, func(i, j int) bool { return ws[i].Start < ws[j].Start })
		for i, w := range ws {
			if w.Start < 0 || w.End > 24*time.Hour {
				return nil, fmt.Errorf("calendar %s: %s window outside day bounds: %v-%v", id, day, w.Start, w.End)
			}
			if w.End <= w.Start {
				return nil, fmt.Errorf("calendar %s: %s window end must be after start: %v-%v", id, day, w.Start, w.End)
			}
			if i > 0 && w.Start < ws[i-1].End {
				return nil, fmt.Errorf("calendar %s: %s windows overlap at %v", id, day, w.Start)
			}
		}
		sorted[day] = ws
		total += len(ws)
	}
	if total == 0 {
		return nil, fmt.Errorf("calendar %s has no working time", id)
	}

	return &Calendar{
		ID:         id,
		Name:       name,
		Week:       sorted,
		Exceptions: make(map[string]bool),
	}, nil
}

// ContinuousCalendar returns a 24-hour, seven-day calendar. Useful for
// resources that are never off shift.
func ContinuousCalendar(id CalendarID) *Calendar {
	week := make(map[time.Weekday][]WorkWindow, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		week[day] = []WorkWindow{{Start: 0, End: 24 * time.Hour}}
	}
	cal, _ := NewCalendar(id, "Continuous", week)
	return cal
}

// AddException marks a date as fully non-working.
func (c *Calendar) AddException(date time.Time) {
	c.Exceptions[date.Format(dateLayout)] = true
}

func (c *Calendar) exceptionOn(day time.Time) bool {
	return c.Exceptions[day.Format(dateLayout)]
}

// SubtractWorking returns the instant that precedes end by the given amount
// of working time, skipping non-working periods. A zero elapsed duration
// returns end unchanged.
func (c *Calendar) SubtractWorking(end time.Time, elapsed time.Duration) (time.Time, error) {
	if elapsed < 0 {
		return time.Time{}, fmt.Errorf("calendar %s: elapsed working time cannot be negative: %v", c.ID, elapsed)
	}
	if elapsed == 0 {
		return end, nil
	}

	remaining := elapsed
	cursor := end
	day := startOfDay(end)

	for i := 0; i < maxLookbackDays; i++ {
		if !c.exceptionOn(day) {
			windows := c.Week[day.Weekday()]
			for j := len(windows) - 1; j >= 0; j-- {
				windowStart := day.Add(windows[j].Start)
				windowEnd := day.Add(windows[j].End)
				if windowEnd.After(cursor) {
					windowEnd = cursor
				}
				if !windowEnd.After(windowStart) {
					continue
				}
				span := windowEnd.Sub(windowStart)
				if span >= remaining {
					return windowEnd.Add(-remaining), nil
				}
				remaining -= span
			}
		}
		// The day boundary is the exclusive upper bound for the previous day.
		cursor = day
		day = day.AddDate(0, 0, -1)
	}

	return time.Time{}, fmt.Errorf("calendar %s: no working time found within %d days before %s",
		c.ID, maxLookbackDays, end.Format(time.RFC3339))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
