package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// WorkingCalendar answers working-time arithmetic: given an end instant and
// an elapsed working duration, what is the start instant?
type WorkingCalendar interface {
	SubtractWorking(end time.Time, elapsed time.Duration) (time.Time, error)
}

// CalendarResolver resolves a calendar reference to a working calendar.
// Injected explicitly; the scheduler performs no lookups by well-known name.
type CalendarResolver interface {
	Resolve(id entities.CalendarID) (WorkingCalendar, error)
}

// DurationEstimator estimates the elapsed working time a step takes for a
// given quantity. Implementations are opaque to the scheduler.
type DurationEstimator interface {
	Estimate(step entities.RoutingStep, quantity decimal.Decimal) (time.Duration, error)
}

// ScheduleRequest is the immutable input to a backward scheduling run. Steps
// are in forward production order: the last element finishes last.
type ScheduleRequest struct {
	Steps        []entities.RoutingStep
	CompletionAt time.Time
	Quantity     decimal.Decimal
	// TrailingOffset is extra working time (e.g. shipping) appended after the
	// structurally last step before the order counts as available.
	TrailingOffset time.Duration
}

// ScheduleResult maps each scheduled step to its latest start instant.
// Inactive steps produce no entry, so len(StepStarts) may be less than the
// number of request steps.
type ScheduleResult struct {
	StepStarts map[entities.StepID]time.Time
	// OrderStart is the start instant of the earliest scheduled step. When no
	// step is active it equals the requested completion instant: an order
	// with nothing to schedule needs no backward shift.
	OrderStart time.Time
}

// BackwardScheduler walks a routing's step chain from the last step to the
// first, computing for each active step the latest start that still meets
// the required completion instant.
type BackwardScheduler struct {
	calendars CalendarResolver
	estimator DurationEstimator
}

// NewBackwardScheduler creates a scheduler with the given collaborators
func NewBackwardScheduler(calendars CalendarResolver, estimator DurationEstimator) *BackwardScheduler {
	return &BackwardScheduler{
		calendars: calendars,
		estimator: estimator,
	}
}

// Schedule computes start instants for the request's steps. The end-date
// cursor for step i is the start computed for step i+1, seeded with the
// completion instant. Steps inactive at the cursor are skipped without
// moving it. Safe for concurrent use when the collaborators are.
func (s *BackwardScheduler) Schedule(req ScheduleRequest) (*ScheduleResult, error) {
	if req.CompletionAt.IsZero() {
		return nil, fmt.Errorf("%w: completion instant is required", ErrInvalidRequest)
	}
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity cannot be negative, got %s", ErrInvalidRequest, req.Quantity)
	}
	if req.TrailingOffset < 0 {
		return nil, fmt.Errorf("%w: trailing offset cannot be negative, got %v", ErrInvalidRequest, req.TrailingOffset)
	}

	starts := make(map[entities.StepID]time.Time, len(req.Steps))
	cursor := req.CompletionAt

	for i := len(req.Steps) - 1; i >= 0; i-- {
		step := req.Steps[i]
		if !step.ActiveAt(cursor) {
			continue
		}

		duration, err := s.estimator.Estimate(step, req.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: step %s: %w", ErrEstimateFailed, step.ID, err)
		}
		if i == len(req.Steps)-1 {
			duration += req.TrailingOffset
		}

		calendar, err := s.calendars.Resolve(step.CalendarID)
		if err != nil {
			return nil, fmt.Errorf("%w: step %s calendar %s: %w", ErrCalendarUnavailable, step.ID, step.CalendarID, err)
		}
		start, err := calendar.SubtractWorking(cursor, duration)
		if err != nil {
			return nil, fmt.Errorf("%w: step %s: %w", ErrCalendarUnavailable, step.ID, err)
		}

		starts[step.ID] = start
		cursor = start
	}

	return &ScheduleResult{
		StepStarts: starts,
		OrderStart: cursor,
	}, nil
}
