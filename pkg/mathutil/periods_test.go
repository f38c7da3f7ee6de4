package mathutil

import (
	"math"
	"testing"
)

func TestSaturatingAdd(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected int
	}{
		{"No values", nil, 0},
		{"Small periods", []int{1, 2, 14, 6}, 23},
		{"Mixed signs", []int{10, -3}, 7},
		{"Overflow clamps to max", []int{1, math.MaxInt}, math.MaxInt},
		{"Repeated overflow stays at max", []int{1, math.MaxInt, 1, math.MaxInt}, math.MaxInt},
		{"Underflow clamps to min", []int{-2, math.MinInt}, math.MinInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SaturatingAdd(tt.values...); got != tt.expected {
				t.Errorf("SaturatingAdd(%v) = %d, expected %d", tt.values, got, tt.expected)
			}
		})
	}
}

func TestFloorInt(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int
	}{
		{"Fraction is floored", 2.9, 2},
		{"Negative fraction", -0.5, -1},
		{"Largest exact quotient", 1e18, 1000000000000000000},
		{"Beyond int range", 1e19, math.MaxInt},
		{"Far beyond int range", 1e30, math.MaxInt},
		{"Positive infinity", math.Inf(1), math.MaxInt},
		{"Below int range", -1e30, math.MinInt},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FloorInt(tt.input); got != tt.expected {
				t.Errorf("FloorInt(%v) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}
