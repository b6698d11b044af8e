package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// StandardEstimator estimates step duration from the step's own standard
// times: setup time plus run time per unit scaled by quantity. A zero
// quantity therefore yields the bare setup time.
type StandardEstimator struct{}

// NewStandardEstimator creates the default duration estimator
func NewStandardEstimator() *StandardEstimator {
	return &StandardEstimator{}
}

var _ DurationEstimator = (*StandardEstimator)(nil)

// Estimate returns the step's standard duration for the quantity
func (e *StandardEstimator) Estimate(step entities.RoutingStep, quantity decimal.Decimal) (time.Duration, error) {
	if quantity.IsNegative() {
		return 0, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	return step.StandardDuration(quantity), nil
}
