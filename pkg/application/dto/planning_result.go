package dto

import (
	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// WarningKind classifies a planning degradation
type WarningKind int

const (
	RoutingUnavailable WarningKind = iota
	CalendarUnavailable
	EstimateFailed
)

// String method for WarningKind enum
func (k WarningKind) String() string {
	switch k {
	case RoutingUnavailable:
		return "RoutingUnavailable"
	case CalendarUnavailable:
		return "CalendarUnavailable"
	case EstimateFailed:
		return "EstimateFailed"
	default:
		return "Unknown"
	}
}

// Warning records a typed degradation for one shortage. The planner never
// swallows a lookup failure silently; it either aborts or records one of
// these and falls back to an unshifted start date.
type Warning struct {
	Kind      WarningKind        `json:"kind"`
	ProductID entities.ProductID `json:"product_id"`
	Detail    string             `json:"detail"`
}

// PlanningResult contains the complete output of a planning run
type PlanningResult struct {
	Orders       []entities.ProposedOrder `json:"orders"`
	Requirements []entities.Requirement   `json:"requirements"`
	Skipped      []entities.ProductID     `json:"skipped"`
	Warnings     []Warning                `json:"warnings"`
}
