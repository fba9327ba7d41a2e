// Package testutil provides shared test infrastructure for the simulator.
// It consolidates stable configuration fixtures and assertion helpers used
// across sim/ and its sub-package tests.
package testutil

import (
	"math"
	"testing"
)

// StableCase is a stable M/c/c configuration with its expected utilization.
type StableCase struct {
	Name        string
	ArrivalRate float64
	ServiceRate float64
	Servers     int
	WarmUp      float64
	Target      int
}

// OfferedLoad returns λ/(μc).
func (c StableCase) OfferedLoad() float64 {
	return c.ArrivalRate / (c.ServiceRate * float64(c.Servers))
}

// StableCases covers single- and multi-server systems from light to heavy load.
var StableCases = []StableCase{
	{Name: "mm1_half_load", ArrivalRate: 1.0, ServiceRate: 2.0, Servers: 1, WarmUp: 100, Target: 2000},
	{Name: "mm4_light", ArrivalRate: 0.5, ServiceRate: 1.0, Servers: 4, WarmUp: 50, Target: 1000},
	{Name: "mm2_heavy", ArrivalRate: 1.8, ServiceRate: 1.0, Servers: 2, WarmUp: 20, Target: 1000},
	{Name: "mm8_moderate", ArrivalRate: 5.0, ServiceRate: 1.0, Servers: 8, WarmUp: 10, Target: 1000},
	{Name: "tiny_target", ArrivalRate: 1.0, ServiceRate: 3.0, Servers: 1, WarmUp: 0.5, Target: 1},
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertFiniteNonNegative fails if v is NaN, infinite or negative.
func AssertFiniteNonNegative(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		t.Errorf("%s: got %v, want a finite non-negative value", name, v)
	}
}
