package plot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// matplotlib short names keep matplotlib's values ("g" is #008000, not pure green).
var namedColors = map[string]drawing.Color{
	"r":       drawing.ColorRed,
	"red":     drawing.ColorRed,
	"g":       drawing.ColorFromHex("008000"),
	"green":   drawing.ColorFromHex("008000"),
	"b":       drawing.ColorBlue,
	"blue":    drawing.ColorBlue,
	"c":       drawing.ColorFromHex("00bfbf"),
	"cyan":    drawing.ColorFromHex("00bfbf"),
	"m":       drawing.ColorFromHex("bf00bf"),
	"magenta": drawing.ColorFromHex("bf00bf"),
	"y":       drawing.ColorFromHex("bfbf00"),
	"yellow":  drawing.ColorFromHex("bfbf00"),
	"k":       drawing.ColorBlack,
	"black":   drawing.ColorBlack,
	"w":       drawing.ColorWhite,
	"white":   drawing.ColorWhite,
	"orange":  drawing.ColorFromHex("ffa500"),
	"purple":  drawing.ColorFromHex("800080"),
	"gray":    drawing.ColorFromHex("808080"),
	"grey":    drawing.ColorFromHex("808080"),
}

// ParseColor understands single-letter and common color names plus #rgb / #rrggbb / #rrggbbaa hex.
// drawing.ColorFromHex reads invalid digits as zero, so the digits are checked first.
func ParseColor(s string) (drawing.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[key]; ok {
		return c, nil
	}
	if !strings.HasPrefix(key, "#") {
		return drawing.Color{}, fmt.Errorf("unknown color %q", s)
	}
	hex := key[1:]
	switch len(hex) {
	case 3, 6, 8:
	default:
		return drawing.Color{}, fmt.Errorf("bad hex color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return drawing.Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 8 {
		a, _ := strconv.ParseUint(hex[6:], 16, 8)
		return drawing.ColorFromHex(hex[:6]).WithAlpha(uint8(a)), nil
	}
	return drawing.ColorFromHex(hex), nil
}

// colorOr parses s and falls back to def when s is empty or unparseable.
func colorOr(s string, def drawing.Color) drawing.Color {
	if strings.TrimSpace(s) == "" {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

// ParseLineStyle maps a line style name to a go-chart stroke dash array (nil = solid).
func ParseLineStyle(s string) ([]float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid", "-":
		return nil, nil
	case "dotted", ":":
		return []float64{2, 3}, nil
	case "dashed", "--":
		return []float64{6, 4}, nil
	case "dashdot", "-.":
		return []float64{6, 3, 2, 3}, nil
	default:
		return nil, fmt.Errorf("unknown line style %q", s)
	}
}
