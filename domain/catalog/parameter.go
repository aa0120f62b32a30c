package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Clamp returns the value a slider for p would hold after being moved to v:
// inside [Min, Max] and on the Min + k*Step grid.
func (p ParameterSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	if v <= p.Min {
		return p.Min
	}
	if v >= p.Max {
		return p.Max
	}

	snapped := p.Min + math.Round((v-p.Min)/p.Step)*p.Step
	if snapped > p.Max {
		snapped = p.Max
	}
	snapped = roundTo(snapped, p.Precision())
	if p.Integer {
		snapped = math.Round(snapped)
	}
	return snapped
}

// Contains reports whether v lies within the declared bounds
func (p ParameterSpec) Contains(v float64) bool {
	return v >= p.Min && v <= p.Max
}

// Precision is the number of decimals needed to represent values on the step grid
func (p ParameterSpec) Precision() int {
	if p.Integer {
		return 0
	}
	return max(decimals(p.Step), decimals(p.Min))
}

// Format renders v the way the control displays it
func (p ParameterSpec) Format(v float64) string {
	if p.Integer {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decimals(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
