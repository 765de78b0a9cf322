// Package config holds the figure style passed explicitly to every render call and its
// TOML representation.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Style controls figure geometry and the shared look of every panel. The zero value is not
// usable; start from DefaultStyle.
type Style struct {
	// Figure width and height of one panel row, in inches (converted with DPI).
	Width     float64 `toml:"width"`
	RowHeight float64 `toml:"row_height"`
	DPI       float64 `toml:"dpi"`

	LineWidth float64 `toml:"line_width"`
	FontSize  float64 `toml:"font_size"`

	// Colors accept the names understood by plot.ParseColor (e.g. "r", "green", "#1f77b4").
	Background  string `toml:"background"`
	SignalColor string `toml:"signal_color"`
	TextColor   string `toml:"text_color"`
	GridColor   string `toml:"grid_color"`

	// Panels shorter than this many pixels are stretched so axis labels stay legible.
	MinPanelHeight int `toml:"min_panel_height"`
	// Legend entries per legend row.
	LegendColumns int  `toml:"legend_columns"`
	ShowGrid      bool `toml:"show_grid"`
}

// DefaultStyle mirrors the classic figure settings: 15 x 1.5 inch rows and thin 0.5 pt lines.
func DefaultStyle() Style {
	return Style{
		Width:          15,
		RowHeight:      1.5,
		DPI:            100,
		LineWidth:      0.5,
		FontSize:       9,
		Background:     "white",
		SignalColor:    "#1f77b4",
		TextColor:      "black",
		GridColor:      "#dddddd",
		MinPanelHeight: 140,
		LegendColumns:  5,
	}
}

var ErrInvalidStyle = errors.New("invalid style")

// Validate rejects values no figure can be rendered with.
func (s Style) Validate() error {
	check := func(name string, v float64) error {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidStyle, name, v)
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"width", s.Width},
		{"row_height", s.RowHeight},
		{"dpi", s.DPI},
		{"line_width", s.LineWidth},
		{"font_size", s.FontSize},
	} {
		if err := check(f.name, f.v); err != nil {
			return err
		}
	}
	if s.MinPanelHeight < 0 {
		return fmt.Errorf("%w: min_panel_height must not be negative, got %d", ErrInvalidStyle, s.MinPanelHeight)
	}
	if s.LegendColumns < 1 {
		return fmt.Errorf("%w: legend_columns must be at least 1, got %d", ErrInvalidStyle, s.LegendColumns)
	}
	return nil
}

// WithWidth returns a copy of s with the figure width replaced when w > 0.
func (s Style) WithWidth(w float64) Style {
	if w > 0 {
		s.Width = w
	}
	return s
}

// WidthPx is the figure width in pixels.
func (s Style) WidthPx() int { return int(math.Round(s.Width * s.DPI)) }

// RowHeightPx is the height of one panel row in pixels, before the MinPanelHeight clamp.
func (s Style) RowHeightPx() int { return int(math.Round(s.RowHeight * s.DPI)) }
