package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNPV(t *testing.T) {
	// 10000/1.1 + 10000/1.21 + 10000/1.331 - 20000 = 4868.52...
	got := NPV(20_000, 10_000, 0.10, 3)
	assert.InDelta(t, 4868.52, got, 0.01)
}

func TestNPVZeroYears(t *testing.T) {
	assert.Equal(t, -20_000.0, NPV(20_000, 10_000, 0.10, 0), "no benefit years leaves only the upfront cost")
}

func TestNPVZeroRate(t *testing.T) {
	assert.InDelta(t, 10_000.0, NPV(20_000, 10_000, 0, 3), 0.001, "undiscounted benefits sum linearly")
}

func TestPaybackYears(t *testing.T) {
	tests := []struct {
		name    string
		upfront float64
		benefit float64
		want    float64
	}{
		{"even payback", 20_000, 10_000, 2.0},
		{"fractional payback", 15_000, 10_000, 1.5},
		{"zero benefit never divides by zero", 20_000, 0, 0},
		{"zero upfront", 0, 10_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaybackYears(tt.upfront, tt.benefit))
		})
	}
}
