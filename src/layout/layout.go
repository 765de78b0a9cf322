package layout

import (
	"math"
	"strconv"
)

const (
	// MinFigureWidth keeps axis labels and table cells from collapsing on narrow figures.
	MinFigureWidth = 400
	// TableRowHeight is the pixel height of one table row (7x13 glyphs plus padding).
	TableRowHeight = 22
	// LegendRowHeight is the pixel height of one legend row.
	LegendRowHeight = 20
)

// ComputePanelSize applies the width/height clamp rules used for chart panels.
// Input: desired raw width and row height in pixels. Returns clamped width & height.
func ComputePanelSize(rawW, rawH, minH int) (int, int) {
	w := rawW
	if w < MinFigureWidth {
		w = MinFigureWidth
	}
	h := rawH
	if h < minH {
		h = minH
	}
	// never taller than wide
	if h > w {
		h = w
	}
	return w, h
}

// ComputeTableColumnWidths splits totalW between the columns in proportion to the widest
// text of each column (header or cell), with a floor so short numbers still get a cell.
// The widths always sum to totalW.
func ComputeTableColumnWidths(totalW int, header []string, rows [][]string) []int {
	n := len(header)
	if n == 0 || totalW <= 0 {
		return nil
	}
	const minChars = 6
	weights := make([]int, n)
	sum := 0
	for i := range header {
		w := len([]rune(header[i]))
		for _, r := range rows {
			if i < len(r) && len([]rune(r[i])) > w {
				w = len([]rune(r[i]))
			}
		}
		if w < minChars {
			w = minChars
		}
		weights[i] = w
		sum += w
	}
	out := make([]int, n)
	used := 0
	for i, w := range weights {
		out[i] = totalW * w / sum
		used += out[i]
	}
	// hand the rounding remainder to the last column
	out[n-1] += totalW - used
	return out
}

// LegendRows returns how many legend rows n entries need at cols entries per row.
func LegendRows(n, cols int) int {
	if n <= 0 {
		return 0
	}
	if cols < 1 {
		cols = 1
	}
	return (n + cols - 1) / cols
}

// BuildAxisTicks returns up to about n tick positions covering [min, max] using
// the 1,2,2.5,5 * 10^k step pattern. Ticks outside [min, max] are dropped so the first and
// last labels sit on the visible axis. Falls back to {min, max} for degenerate domains.
func BuildAxisTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return []float64{min, max}
	}
	all := BuildNumericTicks(min, max, n)
	out := make([]float64, 0, len(all))
	for _, v := range all {
		if v >= min-1e-9 && v <= max+1e-9 {
			out = append(out, v)
		}
	}
	if len(out) < 2 {
		out = []float64{round6(min), round6(max)}
	}
	return out
}

// pow10Floor returns 10^floor(log10(x)) safeguarding tiny values.
func pow10Floor(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(x)))
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using the same 1,2,2.5,5 pattern.
// Returns slice of raw numeric positions (label formatting left to caller for domain specific units).
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := pow10Floor(span / float64(n-1))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > end+bestStep*0.5 {
			break
		}
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick provides a compact tick label.
func FormatNumericTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// PaddedRange widens [min, max] by frac of the span on both sides. A flat or empty range
// becomes [v-1, v+1] so chart ranges never have zero height.
func PaddedRange(min, max, frac float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0, 1
	}
	if max <= min {
		return min - 1, min + 1
	}
	pad := (max - min) * frac
	return min - pad, max + pad
}

// MinMax returns the smallest and largest finite values over all slices. ok is false when
// there is none.
func MinMax(series ...[]float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			ok = true
		}
	}
	return min, max, ok
}
