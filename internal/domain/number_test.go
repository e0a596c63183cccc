package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"gstrecon/internal/domain"
)

func TestToNumber(t *testing.T) {
	price := 42.5
	var nilPtr *float64
	label := "₹ 1,25,000"

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"int64", int64(9), 9},
		{"uint8", uint8(4), 4},
		{"float32", float32(2.5), 2.5},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"plain string", "18", 18},
		{"rupee string", "₹1,25,000.50", 125000.5},
		{"rs prefix", "Rs. 2,500", 2500},
		{"percent", "12%", 12},
		{"garbage", "abc", 0},
		{"nan string", "NaN", 0},
		{"empty string", "", 0},
		{"json number", json.Number("3.25"), 3.25},
		{"decimal wrapper", map[string]any{"$numberDecimal": "19067.80"}, 19067.8},
		{"int wrapper", map[string]any{"$numberInt": "5"}, 5},
		{"single key map", map[string]any{"value": 11.0}, 11},
		{"multi key map", map[string]any{"a": 1.0, "b": 2.0}, 0},
		{"pointer", &price, 42.5},
		{"string pointer", &label, 125000},
		{"nil pointer", nilPtr, 0},
		{"bool", true, 0},
		{"false", false, 0},
		{"slice", []any{1.0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ToNumber(tt.in))
		})
	}
}
