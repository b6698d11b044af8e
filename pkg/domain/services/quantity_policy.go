package services

import "github.com/shopspring/decimal"

// AdjustToReorder raises a proposed quantity to at least the configured
// reorder quantity: max(quantity, reorderQuantity).
func AdjustToReorder(quantity, reorderQuantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThan(reorderQuantity) {
		return reorderQuantity
	}
	return quantity
}
