package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType represents the kind of proposed order
type OrderType int

const (
	Make OrderType = iota
	Buy
)

// String method for OrderType enum
func (o OrderType) String() string {
	switch o {
	case Make:
		return "Make"
	case Buy:
		return "Buy"
	default:
		return "Unknown"
	}
}

// RequirementType distinguishes internal (production) from product
// (procurement) requirements
type RequirementType int

const (
	InternalRequirement RequirementType = iota
	ProductRequirement
)

// String method for RequirementType enum
func (r RequirementType) String() string {
	switch r {
	case InternalRequirement:
		return "Internal"
	case ProductRequirement:
		return "Product"
	default:
		return "Unknown"
	}
}

// RequirementStatus is the lifecycle state of a requirement
type RequirementStatus string

const (
	RequirementProposed RequirementStatus = "PROPOSED"
)

// ProposedOrder is a not-yet-committed purchase or production proposal. It is
// a value assembled once by the planner; collaborators never mutate it.
type ProposedOrder struct {
	ProductID  ProductID
	FacilityID FacilityID
	Type       OrderType
	Quantity   decimal.Decimal
	RequiredBy time.Time
	StartAt    time.Time
	// StepStarts maps each scheduled routing step to its computed start
	// instant. Nil for procured products and for orders with no active steps.
	StepStarts map[StepID]time.Time
}

// NewProposedOrder creates a validated ProposedOrder
func NewProposedOrder(
	productID ProductID,
	facilityID FacilityID,
	orderType OrderType,
	quantity decimal.Decimal,
	requiredBy, startAt time.Time,
	stepStarts map[StepID]time.Time,
) (*ProposedOrder, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if string(facilityID) == "" {
		return nil, fmt.Errorf("facility id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	if requiredBy.IsZero() {
		return nil, fmt.Errorf("required-by date is required")
	}
	if startAt.After(requiredBy) {
		return nil, fmt.Errorf("start date %v cannot be after required-by date %v", startAt, requiredBy)
	}
	return &ProposedOrder{
		ProductID:  productID,
		FacilityID: facilityID,
		Type:       orderType,
		Quantity:   quantity,
		RequiredBy: requiredBy,
		StartAt:    startAt,
		StepStarts: stepStarts,
	}, nil
}

// Requirement is the persisted record created from a proposed order,
// pending promotion to a real purchase or production order.
type Requirement struct {
	ID          string
	ProductID   ProductID
	FacilityID  FacilityID
	Type        RequirementType
	Status      RequirementStatus
	Quantity    decimal.Decimal
	RequiredBy  time.Time
	StartAt     time.Time
	Description string
	CreatedAt   time.Time
}

// NewRequirement creates a Requirement from a proposed order, assigning a
// fresh identifier.
func NewRequirement(order *ProposedOrder, description string) (*Requirement, error) {
	if order == nil {
		return nil, fmt.Errorf("proposed order is required")
	}
	reqType := InternalRequirement
	if order.Type == Buy {
		reqType = ProductRequirement
	}
	return &Requirement{
		ID:          uuid.NewString(),
		ProductID:   order.ProductID,
		FacilityID:  order.FacilityID,
		Type:        reqType,
		Status:      RequirementProposed,
		Quantity:    order.Quantity,
		RequiredBy:  order.RequiredBy,
		StartAt:     order.StartAt,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
