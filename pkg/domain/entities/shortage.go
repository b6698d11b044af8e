package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Shortage represents a projected supply gap that planning must cover
type Shortage struct {
	ProductID               ProductID
	FacilityID              FacilityID
	ManufacturingFacilityID FacilityID
	Quantity                decimal.Decimal
	RequiredBy              time.Time
	Source                  string
}

// NewShortage creates a validated Shortage
func NewShortage(
	productID ProductID,
	facilityID, manufacturingFacilityID FacilityID,
	quantity decimal.Decimal,
	requiredBy time.Time,
	source string,
) (*Shortage, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if string(facilityID) == "" {
		return nil, fmt.Errorf("facility id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("shortage quantity cannot be negative, got %s", quantity)
	}
	if requiredBy.IsZero() {
		return nil, fmt.Errorf("required-by date is required")
	}
	return &Shortage{
		ProductID:               productID,
		FacilityID:              facilityID,
		ManufacturingFacilityID: manufacturingFacilityID,
		Quantity:                quantity,
		RequiredBy:              requiredBy,
		Source:                  source,
	}, nil
}
