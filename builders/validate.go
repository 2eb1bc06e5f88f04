package builders

import (
	"github.com/petrel-ai/petrel/core"
)

// checkRange validates an optional float field against an inclusive range.
// Unset fields always pass.
func checkRange(field string, v *float64, min, max float64) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return &core.OutOfRangeError{Field: field, Min: min, Max: max, Actual: *v}
	}
	return nil
}

// checkPositive validates an optional integer field that must be strictly
// greater than zero.
func checkPositive(field string, v *int) error {
	if v == nil {
		return nil
	}
	if *v <= 0 {
		return &core.NotPositiveError{Field: field, Actual: *v}
	}
	return nil
}

// checkIntRange validates an optional integer field against an inclusive
// range.
func checkIntRange(field string, v *int, min, max int) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return &core.OutOfRangeError{Field: field, Min: float64(min), Max: float64(max), Actual: float64(*v)}
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
