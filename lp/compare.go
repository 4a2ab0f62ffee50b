// SPDX-License-Identifier: MIT

package lp

import "math"

// Compare performs epsilon-tolerant floating-point comparisons. The zero value
// uses DefaultEpsilon.
type Compare struct {
	Eps float64
}

func (c Compare) eps() float64 {
	if c.Eps <= 0 {
		return DefaultEpsilon
	}

	return c.Eps
}

// Epsilon returns the effective tolerance.
func (c Compare) Epsilon() float64 { return c.eps() }

// Eq reports |a-b| <= eps.
func (c Compare) Eq(a, b float64) bool { return math.Abs(a-b) <= c.eps() }

// Less reports a < b - eps.
func (c Compare) Less(a, b float64) bool { return a < b-c.eps() }

// LessEq reports a <= b + eps.
func (c Compare) LessEq(a, b float64) bool { return a <= b+c.eps() }

// Greater reports a > b + eps.
func (c Compare) Greater(a, b float64) bool { return a > b+c.eps() }

// GreaterEq reports a >= b - eps.
func (c Compare) GreaterEq(a, b float64) bool { return a >= b-c.eps() }

// Zero reports |a| <= eps.
func (c Compare) Zero(a float64) bool { return c.Eq(a, 0) }

// IsInteger reports whether a is within eps of an integer.
func (c Compare) IsInteger(a float64) bool { return c.Eq(a, math.Round(a)) }

// Round returns a rounded to the nearest integer.
func (c Compare) Round(a float64) float64 { return math.Round(a) }
