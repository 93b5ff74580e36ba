// Package effect samples rasterized text into particles and animates them
// dispersing and reassembling on a host-driven frame loop.
package effect

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default option values
const (
	DefaultPadding  = 160
	DefaultDensity  = 4
	DefaultDuration = 2500 // in ms
	DefaultScale    = 2
)

// Options configures one disintegrator instance. Zero fields fall back to defaults.
type Options struct {
	Padding  int     `json:"padding"`  // pixels sampled around the text box
	Density  int     `json:"density"`  // grid step in device pixels
	Duration float64 `json:"duration"` // ms per half-cycle
	Scale    int     `json:"scale"`    // device oversampling factor

	// SymmetricScatter scales the Y dispersal by the surface height instead of its width
	SymmetricScatter bool `json:"symmetricScatter,omitempty"`
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		Padding:  DefaultPadding,
		Density:  DefaultDensity,
		Duration: DefaultDuration,
		Scale:    DefaultScale,
	}
}

// WithDefaults merges o over the defaults
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Padding > 0 {
		d.Padding = o.Padding
	}
	if o.Density > 0 {
		d.Density = o.Density
	}
	if o.Duration > 0 {
		d.Duration = o.Duration
	}
	if o.Scale > 0 {
		d.Scale = o.Scale
	}
	d.SymmetricScatter = o.SymmetricScatter
	return d
}

// LoadOptions reads options from a JSON file and merges them over the defaults
func LoadOptions(filename string) (Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	var o Options
	if err := json.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("parse options %s: %w", filename, err)
	}
	return o.WithDefaults(), nil
}

// SaveOptions writes options to a JSON file
func SaveOptions(filename string, o Options) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
