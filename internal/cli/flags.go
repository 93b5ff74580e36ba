// Package cli holds the flags shared by the window and terminal hosts.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/olivierh59500/text-disintegrator/effect"
)

// Settings collects the command line
type Settings struct {
	Text      string
	FontPath  string
	FontSize  float64
	Color     string
	Padding   int
	Density   int
	Duration  float64
	Scale     int
	Symmetric bool
	Seed      int64
	Noise     bool
	Config    string
}

// Register binds the settings to flags
func Register(flags *flag.FlagSet) *Settings {
	s := &Settings{}
	flags.StringVar(&s.Text, "text", "Disintegrate", "text to render")
	flags.StringVar(&s.FontPath, "font", "", "TTF/OTF font file (default Go Regular)")
	flags.Float64Var(&s.FontSize, "size", 64, "font size in pixels")
	flags.StringVar(&s.Color, "color", "#e0e0e0", "text colour")
	flags.IntVar(&s.Padding, "padding", 0, "pixels sampled around the text (default 160)")
	flags.IntVar(&s.Density, "density", 0, "grid step in device pixels (default 4)")
	flags.Float64Var(&s.Duration, "duration", 0, "half-cycle duration in ms (default 2500)")
	flags.IntVar(&s.Scale, "scale", 0, "oversampling factor (default 2)")
	flags.BoolVar(&s.Symmetric, "symmetric", false, "scatter Y by surface height instead of width")
	flags.Int64Var(&s.Seed, "seed", 0, "random seed (default time based)")
	flags.BoolVar(&s.Noise, "noise", false, "draw particle parameters from Perlin noise")
	flags.StringVar(&s.Config, "config", "", "JSON options file, overridden by flags")
	return s
}

// Options merges flags over the config file over the defaults
func (s *Settings) Options() (effect.Options, error) {
	o := effect.DefaultOptions()
	if s.Config != "" {
		loaded, err := effect.LoadOptions(s.Config)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return effect.Options{}, err
		default:
			o = loaded
		}
	}
	if s.Padding > 0 {
		o.Padding = s.Padding
	}
	if s.Density > 0 {
		o.Density = s.Density
	}
	if s.Duration > 0 {
		o.Duration = s.Duration
	}
	if s.Scale > 0 {
		o.Scale = s.Scale
	}
	if s.Symmetric {
		o.SymmetricScatter = true
	}
	return o, nil
}

// Random returns the configured randomness source
func (s *Settings) Random() effect.Source {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if s.Noise {
		return effect.NewNoiseSource(seed)
	}
	return effect.NewRand(seed)
}

// EffectConfig builds the host-independent part of the controller config
func (s *Settings) EffectConfig(fonts effect.Fonts) (effect.Config, error) {
	opts, err := s.Options()
	if err != nil {
		return effect.Config{}, err
	}
	col, err := effect.ParseColor(s.Color)
	if err != nil {
		return effect.Config{}, fmt.Errorf("invalid -color: %w", err)
	}
	return effect.Config{
		Text:     s.Text,
		FontSize: s.FontSize,
		Color:    col,
		Options:  opts,
		Fonts:    fonts,
		Random:   s.Random(),
	}, nil
}
