package memory

import (
	"fmt"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

// CalendarRepository is an in-memory working-calendar store
type CalendarRepository struct {
	calendars []entities.Calendar
	byID      map[entities.CalendarID]int
}

// NewCalendarRepository creates an in-memory calendar repository
func NewCalendarRepository(expectedCalendars int) *CalendarRepository {
	return &CalendarRepository{
		calendars: make([]entities.Calendar, 0, expectedCalendars),
		byID:      make(map[entities.CalendarID]int, expectedCalendars),
	}
}

// Verify interface compliance
var _ repositories.CalendarRepository = (*CalendarRepository)(nil)

// LoadCalendars loads calendars into the repository
func (r *CalendarRepository) LoadCalendars(calendars []*entities.Calendar) error {
	for _, calendar := range calendars {
		r.AddCalendar(*calendar)
	}
	return nil
}

// AddCalendar adds a calendar to the repository
func (r *CalendarRepository) AddCalendar(calendar entities.Calendar) {
	r.byID[calendar.ID] = len(r.calendars)
	r.calendars = append(r.calendars, calendar)
}

// GetCalendar returns the calendar for an identifier
func (r *CalendarRepository) GetCalendar(calendarID entities.CalendarID) (*entities.Calendar, error) {
	index, exists := r.byID[calendarID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrCalendarNotFound, calendarID)
	}
	return &r.calendars[index], nil
}

// GetAllCalendars returns all calendars
func (r *CalendarRepository) GetAllCalendars() ([]*entities.Calendar, error) {
	calendars := make([]*entities.Calendar, 0, len(r.calendars))
	for i := range r.calendars {
		calendars = append(calendars, &r.calendars[i])
	}
	return calendars, nil
}
