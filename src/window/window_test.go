package window

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestSelectWindow_Examples(t *testing.T) {
	cases := []struct {
		length, count, idx int
		wantS, wantE       int
	}{
		{100, 5, 2, 40, 59},
		{10, 3, 2, 6, 8},
		{100, 1, 0, 0, 99},
		{10, 4, 3, 6, 7}, // round(2.5)=2: samples 8,9 fall outside every section
		{7, 2, 1, 4, 6},  // round(3.5)=4: last section truncated at the end
		{0, 3, 1, 0, 0},
	}
	for _, c := range cases {
		s, e, err := SelectWindow(c.length, c.count, c.idx)
		if err != nil {
			t.Fatalf("SelectWindow(%d,%d,%d) unexpected error: %v", c.length, c.count, c.idx, err)
		}
		if s != c.wantS || e != c.wantE {
			t.Fatalf("SelectWindow(%d,%d,%d) = (%d,%d) want (%d,%d)", c.length, c.count, c.idx, s, e, c.wantS, c.wantE)
		}
	}
}

func TestSelectWindow_InvalidSection(t *testing.T) {
	cases := []struct{ length, count, idx int }{
		{100, 5, 5},
		{100, 5, 9},
		{100, 0, 0},
		{100, 3, -1},
	}
	for _, c := range cases {
		_, _, err := SelectWindow(c.length, c.count, c.idx)
		if !errors.Is(err, ErrInvalidSection) {
			t.Fatalf("SelectWindow(%d,%d,%d) err=%v want ErrInvalidSection", c.length, c.count, c.idx, err)
		}
		var ise *InvalidSectionError
		if !errors.As(err, &ise) || ise.Index != c.idx || ise.Count != c.count {
			t.Fatalf("expected *InvalidSectionError{%d,%d}, got %#v", c.idx, c.count, err)
		}
	}
	if _, _, err := SelectWindow(-1, 1, 0); !errors.Is(err, ErrNegativeLength) {
		t.Fatalf("negative length err=%v", err)
	}
}

func TestSelectWindow_BoundsProperty(t *testing.T) {
	for length := 1; length <= 64; length++ {
		for count := 1; count <= 16; count++ {
			prevStart := -1
			for idx := 0; idx < count; idx++ {
				s, e, err := SelectWindow(length, count, idx)
				if err != nil {
					t.Fatalf("(%d,%d,%d): %v", length, count, idx, err)
				}
				if s < 0 || s > e || e >= length {
					t.Fatalf("(%d,%d,%d) => (%d,%d) violates 0<=start<=end<length", length, count, idx, s, e)
				}
				if s < prevStart {
					t.Fatalf("(%d,%d,%d) start %d went backwards from %d", length, count, idx, s, prevStart)
				}
				prevStart = s
			}
		}
	}
}

func TestSections_StartsAreSectionLengthApart(t *testing.T) {
	ws, err := Sections(100, 5)
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(ws) != 5 {
		t.Fatalf("got %d windows", len(ws))
	}
	if ws[0].Start != 0 {
		t.Fatalf("first window starts at %d", ws[0].Start)
	}
	sl := SectionLength(100, 5)
	for i := 1; i < len(ws); i++ {
		if ws[i].Start != ws[i-1].Start+sl {
			t.Fatalf("section %d starts at %d, want %d", i, ws[i].Start, ws[i-1].Start+sl)
		}
	}
	if _, err := Sections(10, 0); !errors.Is(err, ErrInvalidSection) {
		t.Fatalf("Sections(10,0) err=%v", err)
	}
}

// The union of all section windows misses the last sample of each section plus any
// remainder after the last section.
func TestSections_UncoveredSamples(t *testing.T) {
	cases := []struct {
		length, count int
		want          []int
	}{
		{100, 5, []int{19, 39, 59, 79, 99}},
		{10, 3, []int{2, 5, 8, 9}},
		{7, 2, []int{3, 6}},
	}
	for _, c := range cases {
		ws, err := Sections(c.length, c.count)
		if err != nil {
			t.Fatalf("Sections(%d,%d): %v", c.length, c.count, err)
		}
		covered := make([]bool, c.length)
		for _, w := range ws {
			for i := w.Start; i < w.End; i++ {
				covered[i] = true
			}
		}
		var got []int
		for i, ok := range covered {
			if !ok {
				got = append(got, i)
			}
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Sections(%d,%d) uncovered=%v want %v", c.length, c.count, got, c.want)
		}
	}
}

func TestSectionLength_RoundsHalfToEven(t *testing.T) {
	if got := SectionLength(5, 2); got != 2 {
		t.Fatalf("SectionLength(5,2)=%d want 2", got)
	}
	if got := SectionLength(7, 2); got != 4 {
		t.Fatalf("SectionLength(7,2)=%d want 4", got)
	}
	if got := SectionLength(2, 5); got != 1 {
		t.Fatalf("SectionLength(2,5)=%d want 1", got)
	}
}

func TestToTimeAxis(t *testing.T) {
	xs, err := ToTimeAxis(40, 59, 10)
	if err != nil {
		t.Fatalf("ToTimeAxis: %v", err)
	}
	if len(xs) != 19 {
		t.Fatalf("len=%d want 19", len(xs))
	}
	if xs[0] != 4.0 || math.Abs(xs[18]-5.8) > 1e-9 {
		t.Fatalf("unexpected endpoints %v .. %v", xs[0], xs[18])
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			t.Fatalf("not strictly increasing at %d: %v <= %v", i, xs[i], xs[i-1])
		}
	}
	empty, err := ToTimeAxis(5, 5, 250)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty window => %v, %v", empty, err)
	}
}

func TestToTimeAxis_ZeroFrequency(t *testing.T) {
	if _, err := ToTimeAxis(0, 10, 0); !errors.Is(err, ErrZeroSamplingFrequency) {
		t.Fatalf("err=%v want ErrZeroSamplingFrequency", err)
	}
	if _, err := ToTimeAxis(0, 10, -5); !errors.Is(err, ErrInvalidSamplingFrequency) {
		t.Fatalf("err=%v want ErrInvalidSamplingFrequency", err)
	}
	if _, err := ToTimeAxis(0, 10, math.NaN()); !errors.Is(err, ErrInvalidSamplingFrequency) {
		t.Fatalf("NaN err=%v", err)
	}
}

func TestFilterAnnotationsInRange(t *testing.T) {
	got, err := FilterAnnotationsInRange([]int{5, 15, 25, 35}, 10, 30, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []float64{1.5, 2.5}) {
		t.Fatalf("got %v want [1.5 2.5]", got)
	}
	// end is exclusive
	got, _ = FilterAnnotationsInRange([]int{10, 30}, 10, 30, 10)
	if !reflect.DeepEqual(got, []float64{1}) {
		t.Fatalf("half-open range: got %v", got)
	}
	got, err = FilterAnnotationsInRange(nil, 0, 100, 250)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty annotations => %v, %v", got, err)
	}
	if _, err := FilterAnnotationsInRange([]int{1}, 0, 10, 0); !errors.Is(err, ErrZeroSamplingFrequency) {
		t.Fatalf("err=%v", err)
	}
}

func TestFilterAnnotationPoints(t *testing.T) {
	sig := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	xs, ys, err := FilterAnnotationPoints([]int{1, 3, 6, 9}, sig, 2, 9, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(xs, []float64{1.5, 3}) || !reflect.DeepEqual(ys, []float64{3, 6}) {
		t.Fatalf("xs=%v ys=%v", xs, ys)
	}
	// index past the signal is skipped rather than panicking
	xs, ys, _ = FilterAnnotationPoints([]int{4, 12}, sig, 0, 20, 1)
	if len(xs) != 1 || len(ys) != 1 || ys[0] != 4 {
		t.Fatalf("out of signal index not skipped: xs=%v ys=%v", xs, ys)
	}
}

func TestWindowLenContains(t *testing.T) {
	w := Window{Start: 40, End: 59}
	if w.Len() != 19 {
		t.Fatalf("Len=%d", w.Len())
	}
	if !w.Contains(40) || w.Contains(59) || w.Contains(39) {
		t.Fatalf("Contains is not half-open")
	}
	if (Window{Start: 5, End: 3}).Len() != 0 {
		t.Fatalf("inverted window should have zero length")
	}
}
