package repositories

import (
	"errors"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// ErrCalendarNotFound indicates an unknown calendar identifier
var ErrCalendarNotFound = errors.New("calendar not found")

// CalendarRepository provides access to working-time calendars
type CalendarRepository interface {
	GetCalendar(calendarID entities.CalendarID) (*entities.Calendar, error)
	GetAllCalendars() ([]*entities.Calendar, error)
	LoadCalendars(calendars []*entities.Calendar) error
}
