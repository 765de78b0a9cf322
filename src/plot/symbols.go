package plot

import (
	"fmt"
	"strings"
)

const (
	DefaultAnnotationMarker = "o"
	DefaultAnnotationColor  = "red"
	DefaultAnnotationLabel  = "Detected beats"

	DefaultGroundTruthLineStyle = "dotted"
	DefaultGroundTruthColor     = "g"
	DefaultGroundTruthLineWidth = 2.0
	DefaultGroundTruthLabel     = "Annotated beats"
	groundTruthAlpha            = 128
)

// AnnotationSymbol is how detected annotations are drawn. Empty fields take the defaults
// (red "o" markers labelled "Detected beats").
type AnnotationSymbol struct {
	Marker string
	Color  string
	Label  string
}

// Resolve returns a copy with every empty field replaced by its default.
func (s AnnotationSymbol) Resolve() AnnotationSymbol {
	if strings.TrimSpace(s.Marker) == "" {
		s.Marker = DefaultAnnotationMarker
	}
	if strings.TrimSpace(s.Color) == "" {
		s.Color = DefaultAnnotationColor
	}
	if strings.TrimSpace(s.Label) == "" {
		s.Label = DefaultAnnotationLabel
	}
	return s
}

// GroundTruthSymbol is how reference annotations are drawn as vertical lines. Empty fields
// take the defaults (green dotted lines, width 2, labelled "Annotated beats").
type GroundTruthSymbol struct {
	LineStyle string
	Color     string
	LineWidth float64
	Label     string
}

// Resolve returns a copy with every empty field replaced by its default.
func (s GroundTruthSymbol) Resolve() GroundTruthSymbol {
	if strings.TrimSpace(s.LineStyle) == "" {
		s.LineStyle = DefaultGroundTruthLineStyle
	}
	if strings.TrimSpace(s.Color) == "" {
		s.Color = DefaultGroundTruthColor
	}
	if s.LineWidth <= 0 {
		s.LineWidth = DefaultGroundTruthLineWidth
	}
	if strings.TrimSpace(s.Label) == "" {
		s.Label = DefaultGroundTruthLabel
	}
	return s
}

// markerDotWidth maps a marker name to a dot radius. go-chart only draws round dots, so the
// marker selects the size: "." and "," are small, everything else is a regular dot.
func markerDotWidth(marker string) float64 {
	switch marker {
	case ",":
		return 1.5
	case ".":
		return 2.5
	case "o":
		return 4
	default:
		return 5
	}
}

func validateSymbols(a AnnotationSymbol, g GroundTruthSymbol) error {
	if _, err := ParseColor(a.Color); err != nil {
		return fmt.Errorf("annotation symbol: %w", err)
	}
	if _, err := ParseColor(g.Color); err != nil {
		return fmt.Errorf("ground truth symbol: %w", err)
	}
	if _, err := ParseLineStyle(g.LineStyle); err != nil {
		return fmt.Errorf("ground truth symbol: %w", err)
	}
	return nil
}
