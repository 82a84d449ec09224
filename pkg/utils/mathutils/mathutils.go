// Package mathutils provides rounding and percent-change helpers.
package mathutils

import "math"

// Round rounds v to the given number of decimal places
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// PercDiff returns the percent change from prev to curr, rounded to
// `decimals` places. decimals == -1 skips rounding. A zero prev yields 0
// so callers do not have to special-case missing history.
func PercDiff(curr, prev float64, decimals int) float64 {
	if prev == 0 {
		return 0
	}
	diff := (curr - prev) / prev * 100
	if decimals == -1 {
		return diff
	}
	return Round(diff, decimals)
}
