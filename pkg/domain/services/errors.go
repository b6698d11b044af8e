package services

import "errors"

var (
	// ErrInvalidRequest indicates a schedule request that fails validation
	// before any computation happens.
	ErrInvalidRequest = errors.New("invalid schedule request")

	// ErrCalendarUnavailable indicates a step's working-time calendar could
	// not be resolved or applied. The whole schedule is aborted.
	ErrCalendarUnavailable = errors.New("calendar unavailable")

	// ErrEstimateFailed indicates the duration estimator failed for a step.
	ErrEstimateFailed = errors.New("duration estimate failed")
)
