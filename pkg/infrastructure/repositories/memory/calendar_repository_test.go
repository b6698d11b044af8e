package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

func TestCalendarRepository_LoadAndGet(t *testing.T) {
	repo := NewCalendarRepository(10)

	workshop, err := entities.NewCalendar("WORKSHOP", "Day shift", map[time.Weekday][]entities.WorkWindow{
		time.Monday: {{Start: 8 * time.Hour, End: 16 * time.Hour}},
	})
	if err != nil {
		t.Fatalf("Failed to create calendar: %v", err)
	}
	if err := repo.LoadCalendars([]*entities.Calendar{workshop, entities.ContinuousCalendar("SUPPLIER")}); err != nil {
		t.Fatalf("Failed to load calendars: %v", err)
	}

	retrieved, err := repo.GetCalendar("WORKSHOP")
	if err != nil {
		t.Fatalf("Failed to get calendar: %v", err)
	}
	if retrieved.Name != "Day shift" {
		t.Errorf("Expected name 'Day shift', got %s", retrieved.Name)
	}
	if len(retrieved.Week[time.Monday]) != 1 {
		t.Errorf("Unexpected Monday windows: %v", retrieved.Week[time.Monday])
	}

	all, err := repo.GetAllCalendars()
	if err != nil {
		t.Fatalf("Failed to get all calendars: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 calendars, got %d", len(all))
	}
}

func TestCalendarRepository_GetCalendar_NotFound(t *testing.T) {
	repo := NewCalendarRepository(10)

	_, err := repo.GetCalendar("NONEXISTENT")
	if !errors.Is(err, repositories.ErrCalendarNotFound) {
		t.Errorf("Expected ErrCalendarNotFound, got %v", err)
	}
}
