// Package finance computes the ROI metrics derived from a proposal's
// pricing model.
package finance

import "math"

// NPV is the discounted sum of the annual benefit over the holding period
// minus the upfront cost:
//
//	sum over y in 1..years of benefit/(1+rate)^y, minus upfront.
func NPV(upfront, annualBenefit, discountRate float64, years int) float64 {
	var npv float64
	for y := 1; y <= years; y++ {
		npv += annualBenefit / math.Pow(1+discountRate, float64(y))
	}
	return npv - upfront
}

// PaybackYears is the time for cumulative benefit to equal the upfront
// cost. Zero when the annual benefit is zero; never divides by zero.
func PaybackYears(upfront, annualBenefit float64) float64 {
	if annualBenefit == 0 {
		return 0
	}
	return upfront / annualBenefit
}
