package layout

import (
	"math"
	"reflect"
	"testing"
)

func TestComputePanelSize(t *testing.T) {
	cases := []struct {
		w, h, minH   int
		wantW, wantH int
	}{
		{1500, 150, 140, 1500, 150},
		{1500, 100, 140, 1500, 140},
		{100, 150, 140, 400, 150},
		{400, 900, 0, 400, 400},
	}
	for _, c := range cases {
		w, h := ComputePanelSize(c.w, c.h, c.minH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("ComputePanelSize(%d,%d,%d) = %d,%d want %d,%d", c.w, c.h, c.minH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestComputeTableColumnWidths(t *testing.T) {
	header := []string{"Sample n°", "RMSE", "Max Error", "Out of range"}
	rows := [][]string{{"105", "3.21", "12.5", "4.2%"}}
	ws := ComputeTableColumnWidths(1003, header, rows)
	if len(ws) != 4 {
		t.Fatalf("got %d widths", len(ws))
	}
	sum := 0
	for _, w := range ws {
		if w <= 0 {
			t.Fatalf("non-positive column width: %v", ws)
		}
		sum += w
	}
	if sum != 1003 {
		t.Fatalf("widths sum to %d want 1003: %v", sum, ws)
	}
	// "Out of range" is the widest header so its column is the widest
	if ws[3] < ws[1] {
		t.Fatalf("expected wide header to get a wider column: %v", ws)
	}
	if ComputeTableColumnWidths(100, nil, nil) != nil {
		t.Fatalf("expected nil for empty header")
	}
}

func TestLegendRows(t *testing.T) {
	cases := []struct{ n, cols, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{3, 0, 3},
	}
	for _, c := range cases {
		if got := LegendRows(c.n, c.cols); got != c.want {
			t.Fatalf("LegendRows(%d,%d)=%d want %d", c.n, c.cols, got, c.want)
		}
	}
}

func TestBuildAxisTicks_WithinWindow(t *testing.T) {
	got := BuildAxisTicks(4.0, 5.8, 6)
	want := []float64{4, 4.5, 5, 5.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ticks %v want %v", got, want)
	}
	flat := BuildAxisTicks(2, 2, 6)
	if len(flat) != 2 {
		t.Fatalf("degenerate domain ticks %v", flat)
	}
}

func TestBuildNumericTicks_MonotonicCoversRange(t *testing.T) {
	for _, r := range [][2]float64{{0, 1}, {-3, 7}, {110, 160}, {0.001, 0.004}} {
		ticks := BuildNumericTicks(r[0], r[1], 6)
		if len(ticks) < 2 {
			t.Fatalf("range %v: too few ticks %v", r, ticks)
		}
		if ticks[0] > r[0] || ticks[len(ticks)-1] < r[1] {
			t.Fatalf("range %v not covered by %v", r, ticks)
		}
		for i := 1; i < len(ticks); i++ {
			if ticks[i] <= ticks[i-1] {
				t.Fatalf("range %v ticks not increasing: %v", r, ticks)
			}
		}
	}
	if BuildNumericTicks(0, 1, 1) != nil {
		t.Fatalf("n<2 should yield nil")
	}
}

func TestFormatNumericTick(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		150:    "150",
		12.34:  "12.3",
		1.5:    "1.50",
		0.25:   "0.250",
		0.0012: "0.0012",
	}
	for in, want := range cases {
		if got := FormatNumericTick(in); got != want {
			t.Fatalf("FormatNumericTick(%v)=%q want %q", in, got, want)
		}
	}
}

func TestPaddedRangeAndMinMax(t *testing.T) {
	lo, hi := PaddedRange(0, 10, 0.05)
	if lo != -0.5 || hi != 10.5 {
		t.Fatalf("PaddedRange = %v,%v", lo, hi)
	}
	lo, hi = PaddedRange(3, 3, 0.05)
	if lo != 2 || hi != 4 {
		t.Fatalf("flat PaddedRange = %v,%v", lo, hi)
	}
	mn, mx, ok := MinMax([]float64{3, math.NaN(), -1}, []float64{8})
	if !ok || mn != -1 || mx != 8 {
		t.Fatalf("MinMax = %v,%v,%v", mn, mx, ok)
	}
	if _, _, ok := MinMax(nil, []float64{math.NaN()}); ok {
		t.Fatalf("MinMax of no finite values should report !ok")
	}
}
