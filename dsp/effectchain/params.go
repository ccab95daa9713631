package effectchain

import "math"

// ProgramKey is the node parameter that selects a program by index or name.
// It is applied before any other parameter.
const ProgramKey = "program"

// Params holds the parsed parameters for a single chain node.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	v, ok := p.Str[key]
	if !ok {
		return def
	}

	return v
}
