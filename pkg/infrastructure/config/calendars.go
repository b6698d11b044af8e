package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// CalendarsFile models a calendars.yml document.
type CalendarsFile struct {
	Calendars []CalendarSpec `yaml:"calendars"`
}

// CalendarSpec is one calendar definition.
type CalendarSpec struct {
	ID         string                  `yaml:"id"`
	Name       string                  `yaml:"name"`
	Continuous bool                    `yaml:"continuous"`
	Week       map[string][]WindowSpec `yaml:"week"`
	Exceptions []string                `yaml:"exceptions"`
}

// WindowSpec is a working window in HH:MM clock times.
type WindowSpec struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// LoadCalendars reads and validates calendar definitions from a YAML file.
func LoadCalendars(path string) ([]*entities.Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendars file %s: %w", path, err)
	}
	return CalendarsFromYAML(data)
}

// CalendarsFromYAML parses calendar definitions from YAML bytes.
func CalendarsFromYAML(data []byte) ([]*entities.Calendar, error) {
	var file CalendarsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse calendars YAML: %w", err)
	}
	if len(file.Calendars) == 0 {
		return nil, fmt.Errorf("calendars YAML defines no calendars")
	}

	var calendars []*entities.Calendar
	for _, spec := range file.Calendars {
		calendar, err := spec.build()
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, calendar)
	}
	return calendars, nil
}

func (spec CalendarSpec) build() (*entities.Calendar, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("calendar definition missing id")
	}

	var calendar *entities.Calendar
	if spec.Continuous {
		if len(spec.Week) > 0 {
			return nil, fmt.Errorf("calendar %s: continuous calendars must not define a week", spec.ID)
		}
		calendar = entities.ContinuousCalendar(entities.CalendarID(spec.ID))
		calendar.Name = spec.Name
	} else {
		week := make(map[time.Weekday][]entities.WorkWindow, len(spec.Week))
		for dayName, windowSpecs := range spec.Week {
			day, ok := weekdays[strings.ToLower(dayName)]
			if !ok {
				return nil, fmt.Errorf("calendar %s: unknown weekday %q", spec.ID, dayName)
			}
			for _, ws := range windowSpecs {
				start, err := parseClock(ws.Start)
				if err != nil {
					return nil, fmt.Errorf("calendar %s: %s start: %w", spec.ID, dayName, err)
				}
				end, err := parseClock(ws.End)
				if err != nil {
					return nil, fmt.Errorf("calendar %s: %s end: %w", spec.ID, dayName, err)
				}
				week[day] = append(week[day], entities.WorkWindow{Start: start, End: end})
			}
		}
		var err error
		calendar, err = entities.NewCalendar(entities.CalendarID(spec.ID), spec.Name, week)
		if err != nil {
			return nil, err
		}
	}

	for _, exception := range spec.Exceptions {
		date, err := time.Parse("2006-01-02", exception)
		if err != nil {
			return nil, fmt.Errorf("calendar %s: invalid exception date %q (expected YYYY-MM-DD)", spec.ID, exception)
		}
		calendar.AddException(date)
	}
	return calendar, nil
}

// parseClock converts "HH:MM" (or "24:00") to an offset from midnight.
func parseClock(value string) (time.Duration, error) {
	if value == "24:00" {
		return 24 * time.Hour, nil
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", value)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
