// Package config holds rendering defaults that can be tuned from the
// environment without touching the command line.
package config

import (
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "CONTRIBMAP_"

// Render configures the figure and the whole-sequence backbone feature.
type Render struct {
	FigureWidth   float64 `env:"FIGURE_WIDTH" envDefault:"20"`
	DPI           float64 `env:"DPI" envDefault:"100"`
	BackboneLabel string  `env:"BACKBONE_LABEL" envDefault:"Spike"`
	BackboneColor string  `env:"BACKBONE_COLOR" envDefault:"#ffd700"`
}

// Load reads the process environment.
func Load() (Render, error) { return LoadFrom(nil) }

// LoadFrom reads environ instead of the process environment when it is non-nil.
func LoadFrom(environ map[string]string) (Render, error) {
	var cfg Render
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot use.
func (r Render) Validate() error {
	if r.FigureWidth <= 0 {
		return errors.Errorf("%sFIGURE_WIDTH must be > 0, got %v", EnvPrefix, r.FigureWidth)
	}
	if r.DPI <= 0 {
		return errors.Errorf("%sDPI must be > 0, got %v", EnvPrefix, r.DPI)
	}
	if !IsHexColor(r.BackboneColor) {
		return errors.Errorf("%sBACKBONE_COLOR must be a #rrggbb color, got %q", EnvPrefix, r.BackboneColor)
	}
	return nil
}

// IsHexColor reports whether s looks like #rgb or #rrggbb.
func IsHexColor(s string) bool {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 3 && len(h) != 6 {
		return false
	}
	_, err := strconv.ParseUint(h, 16, 32)
	return err == nil
}
