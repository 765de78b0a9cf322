// Package window selects the part of a sampled signal that a figure displays and maps
// sample indices onto the time axis.
//
// A signal of n samples is split into sectionCount sections of round(n/sectionCount)
// samples each. Rounding is half-to-even and the remainder is not spread over the
// sections: the last section is truncated at the end of the signal, and when the
// rounded length undershoots, the trailing samples belong to no section.
//
// The window end is start+sectionLength-1 but windows are half-open, so the last sample
// of every section is not displayed either. Sections(100, 5) leaves 19, 39, 59, 79 and 99
// uncovered. Callers depend on these boundaries so they are kept as-is.
package window

import (
	"fmt"
	"math"
)

// Window is the index range [Start, End) of a signal selected for display.
type Window struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the window.
func (w Window) Len() int {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start
}

// Contains reports whether sample index i falls inside the window.
func (w Window) Contains(i int) bool { return i >= w.Start && i < w.End }

// SelectWindow returns the window of section sectionIndex when a signal of length
// samples is divided into sectionCount sections.
//
// start = sectionIndex*sectionLength and end = min(start+sectionLength-1, length-1).
// An empty signal yields the empty window (0, 0).
func SelectWindow(length, sectionCount, sectionIndex int) (start, end int, err error) {
	if sectionCount < 1 || sectionIndex < 0 || sectionIndex >= sectionCount {
		return 0, 0, &InvalidSectionError{Index: sectionIndex, Count: sectionCount}
	}
	if length < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}
	if length == 0 {
		return 0, 0, nil
	}
	sectionLength := SectionLength(length, sectionCount)
	start = sectionIndex * sectionLength
	if start > length-1 {
		// more sections than samples: pin the trailing sections to the last sample
		start = length - 1
	}
	end = start + sectionLength - 1
	if end > length-1 {
		end = length - 1
	}
	return start, end, nil
}

// SectionLength is the rounded per-section sample count used by SelectWindow (never below 1).
func SectionLength(length, sectionCount int) int {
	if length <= 0 || sectionCount < 1 {
		return 0
	}
	n := int(math.RoundToEven(float64(length) / float64(sectionCount)))
	if n < 1 {
		n = 1
	}
	return n
}

// Select is SelectWindow returning a Window value.
func Select(length, sectionCount, sectionIndex int) (Window, error) {
	s, e, err := SelectWindow(length, sectionCount, sectionIndex)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Sections returns the windows of every section 0..sectionCount-1, in order.
func Sections(length, sectionCount int) ([]Window, error) {
	if sectionCount < 1 {
		return nil, &InvalidSectionError{Index: 0, Count: sectionCount}
	}
	out := make([]Window, 0, sectionCount)
	for i := 0; i < sectionCount; i++ {
		w, err := Select(length, sectionCount, i)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func checkSamplingFrequency(fs float64) error {
	if fs == 0 {
		return ErrZeroSamplingFrequency
	}
	if fs < 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSamplingFrequency, fs)
	}
	return nil
}

// ToTimeAxis maps every index of [start, end) to seconds (index / fs).
// The result is strictly increasing and has end-start elements (none when end <= start).
func ToTimeAxis(start, end int, fs float64) ([]float64, error) {
	if err := checkSamplingFrequency(fs); err != nil {
		return nil, err
	}
	n := end - start
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(start+i) / fs
	}
	return out, nil
}

// FilterAnnotationsInRange keeps the annotation indices inside [start, end) and converts
// them to seconds. annotations must be non-decreasing: the scan stops at the first
// index past the window.
func FilterAnnotationsInRange(annotations []int, start, end int, fs float64) ([]float64, error) {
	if err := checkSamplingFrequency(fs); err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(annotations))
	for _, a := range annotations {
		if a >= end {
			break
		}
		if a < start {
			continue
		}
		out = append(out, float64(a)/fs)
	}
	return out, nil
}

// FilterAnnotationPoints is FilterAnnotationsInRange that also returns the signal value at
// each kept annotation, for drawing markers on top of the trace. Indices outside the
// signal are skipped.
func FilterAnnotationPoints(annotations []int, signal []float64, start, end int, fs float64) (xs, ys []float64, err error) {
	if err := checkSamplingFrequency(fs); err != nil {
		return nil, nil, err
	}
	xs = make([]float64, 0, len(annotations))
	ys = make([]float64, 0, len(annotations))
	for _, a := range annotations {
		if a >= end {
			break
		}
		if a < start || a < 0 || a >= len(signal) {
			continue
		}
		xs = append(xs, float64(a)/fs)
		ys = append(ys, signal[a])
	}
	return xs, ys, nil
}
