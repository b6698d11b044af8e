package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID represents a unique product identifier
type ProductID string

// FacilityID represents a stocking or manufacturing facility
type FacilityID string

// ProcurementMethod represents how a product is supplied
type ProcurementMethod int

const (
	Manufactured ProcurementMethod = iota
	Procured
)

// String method for ProcurementMethod enum
func (m ProcurementMethod) String() string {
	switch m {
	case Manufactured:
		return "Manufactured"
	case Procured:
		return "Procured"
	default:
		return "Unknown"
	}
}

// Product represents product master data used by planning
type Product struct {
	ID            ProductID
	Name          string
	Method        ProcurementMethod
	WorkInProcess bool
	// VariantOfID points at the parent product whose routing applies when
	// this product has no routing of its own. Empty for standalone products.
	VariantOfID ProductID
}

// NewProduct creates a validated Product
func NewProduct(id ProductID, name string, method ProcurementMethod) (*Product, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	return &Product{
		ID:     id,
		Name:   name,
		Method: method,
	}, nil
}

// ProductFacility holds the per-facility supply policy for a product
type ProductFacility struct {
	ProductID       ProductID
	FacilityID      FacilityID
	DaysToShip      int
	ReorderQuantity decimal.Decimal
	MinimumStock    decimal.Decimal
}

// NewProductFacility creates a validated ProductFacility
func NewProductFacility(
	productID ProductID,
	facilityID FacilityID,
	daysToShip int,
	reorderQuantity, minimumStock decimal.Decimal,
) (*ProductFacility, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if string(facilityID) == "" {
		return nil, fmt.Errorf("facility id cannot be empty")
	}
	if daysToShip < 0 {
		return nil, fmt.Errorf("days to ship cannot be negative, got %d", daysToShip)
	}
	if reorderQuantity.IsNegative() {
		return nil, fmt.Errorf("reorder quantity cannot be negative, got %s", reorderQuantity)
	}
	if minimumStock.IsNegative() {
		return nil, fmt.Errorf("minimum stock cannot be negative, got %s", minimumStock)
	}
	return &ProductFacility{
		ProductID:       productID,
		FacilityID:      facilityID,
		DaysToShip:      daysToShip,
		ReorderQuantity: reorderQuantity,
		MinimumStock:    minimumStock,
	}, nil
}
