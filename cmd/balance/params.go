package main

import (
	"github.com/pthm-cable/snakeclash/config"
)

// ParamSpec defines a single tunable autopilot weight.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable weights.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the autopilot parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "item_weight", Path: "autopilot.item_weight", Min: 0.1, Max: 5.0, Default: 1.0},
			{Name: "chest_bias", Path: "autopilot.chest_bias", Min: 1.0, Max: 10.0, Default: 3.0},
			{Name: "prey_weight", Path: "autopilot.prey_weight", Min: 0.0, Max: 5.0, Default: 1.5},
			{Name: "threat_weight", Path: "autopilot.threat_weight", Min: 0.0, Max: 10.0, Default: 4.0},
			{Name: "threat_range", Path: "autopilot.threat_range", Min: 5.0, Max: 60.0, Default: 25.0},
			{Name: "boundary_guard", Path: "autopilot.boundary_guard", Min: 0.5, Max: 0.98, Default: 0.85},
			{Name: "scan_radius", Path: "autopilot.scan_radius", Min: 20.0, Max: 150.0, Default: 60.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg.Autopilot. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Autopilot = config.AutopilotConfig{
		ItemWeight:    c[0],
		ChestBias:     c[1],
		PreyWeight:    c[2],
		ThreatWeight:  c[3],
		ThreatRange:   c[4],
		BoundaryGuard: c[5],
		ScanRadius:    c[6],
	}
}

// ExtractFromConfig reads the current weights from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	a := cfg.Autopilot
	return []float64{
		a.ItemWeight,
		a.ChestBias,
		a.PreyWeight,
		a.ThreatWeight,
		a.ThreatRange,
		a.BoundaryGuard,
		a.ScanRadius,
	}
}
