package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RoutingID represents a unique routing identifier
type RoutingID string

// StepID represents a unique routing step identifier
type StepID string

// RoutingStep is a single production operation within a routing. A step may
// carry a validity window; outside that window it is not scheduled.
type RoutingStep struct {
	ID             StepID
	SequenceNum    int
	CalendarID     CalendarID
	EffectiveFrom  *time.Time
	EffectiveThru  *time.Time
	SetupTime      time.Duration
	RunTimePerUnit time.Duration
}

// NewRoutingStep creates a validated RoutingStep
func NewRoutingStep(
	id StepID,
	sequenceNum int,
	calendarID CalendarID,
	setupTime, runTimePerUnit time.Duration,
) (*RoutingStep, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("step id cannot be empty")
	}
	if sequenceNum <= 0 {
		return nil, fmt.Errorf("sequence number must be positive, got %d", sequenceNum)
	}
	if string(calendarID) == "" {
		return nil, fmt.Errorf("step %s: calendar id cannot be empty", id)
	}
	if setupTime < 0 {
		return nil, fmt.Errorf("step %s: setup time cannot be negative, got %v", id, setupTime)
	}
	if runTimePerUnit < 0 {
		return nil, fmt.Errorf("step %s: run time per unit cannot be negative, got %v", id, runTimePerUnit)
	}
	return &RoutingStep{
		ID:             id,
		SequenceNum:    sequenceNum,
		CalendarID:     calendarID,
		SetupTime:      setupTime,
		RunTimePerUnit: runTimePerUnit,
	}, nil
}

// ActiveAt reports whether the step's validity window covers the instant.
// An open bound is always satisfied.
func (s *RoutingStep) ActiveAt(t time.Time) bool {
	if s.EffectiveFrom != nil && t.Before(*s.EffectiveFrom) {
		return false
	}
	if s.EffectiveThru != nil && !t.Before(*s.EffectiveThru) {
		return false
	}
	return true
}

// StandardDuration is the default duration model: setup time plus run time
// scaled by quantity.
func (s *RoutingStep) StandardDuration(quantity decimal.Decimal) time.Duration {
	run := decimal.NewFromInt(int64(s.RunTimePerUnit)).Mul(quantity)
	return s.SetupTime + time.Duration(run.IntPart())
}

// Routing is the ordered chain of steps that produces one unit of a product.
// Steps are held in ascending sequence order; the last step finishes last.
type Routing struct {
	ID        RoutingID
	ProductID ProductID
	Steps     []RoutingStep
}

// NewRouting creates a validated Routing with steps sorted by sequence number
func NewRouting(id RoutingID, productID ProductID, steps []RoutingStep) (*Routing, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("routing id cannot be empty")
	}
	if string(productID) == "" {
		return nil, fmt.Errorf("routing %s: product id cannot be empty", id)
	}

	sorted := make([]RoutingStep, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SequenceNum < sorted[j].SequenceNum })

	seen := make(map[StepID]bool, len(sorted))
	for i, step := range sorted {
		if seen[step.ID] {
			return nil, fmt.Errorf("routing %s: duplicate step id %s", id, step.ID)
		}
		seen[step.ID] = true
		if i > 0 && sorted[i-1].SequenceNum == step.SequenceNum {
			return nil, fmt.Errorf("routing %s: duplicate sequence number %d", id, step.SequenceNum)
		}
	}

	return &Routing{
		ID:        id,
		ProductID: productID,
		Steps:     sorted,
	}, nil
}
