package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAdjustToReorder(t *testing.T) {
	testCases := []struct {
		name     string
		quantity string
		reorder  string
		expected string
	}{
		{"shortage below reorder is raised", "3", "25", "25"},
		{"shortage above reorder is kept", "40", "25", "40"},
		{"shortage equal to reorder is kept", "25", "25", "25"},
		{"zero reorder leaves quantity alone", "7", "0", "7"},
		{"fractional quantities compare exactly", "2.5", "2.75", "2.75"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quantity := decimal.RequireFromString(tc.quantity)
			reorder := decimal.RequireFromString(tc.reorder)
			expected := decimal.RequireFromString(tc.expected)

			result := AdjustToReorder(quantity, reorder)
			if !result.Equal(expected) {
				t.Errorf("Expected %s, got %s", expected, result)
			}
		})
	}
}
