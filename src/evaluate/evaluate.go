// Package evaluate scores detector output against reference annotations and produces the
// result rows shown in the error timeline and FHR trace tables.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"github.com/iafilius/SignalPlot/src/types"
)

var (
	ErrInvalidWindow    = errors.New("matching window must be positive")
	ErrInvalidTolerance = errors.New("tolerance must be non-negative")
	ErrInvalidFS        = errors.New("sampling frequency must be positive")
)

// BeatMatch is the outcome of MatchBeats.
type BeatMatch struct {
	Results types.TimelineResults
	// Matched holds the detected beats paired with a reference beat.
	Matched []int
	// Unmatched holds false detections and missed reference beats, sorted.
	Unmatched []int
	// ErrorsMs is the timing error (detected minus reference) of each match, in Matched order.
	ErrorsMs []float64
}

// MatchBeats pairs detected beats with reference beats lying within half of windowMs on
// either side. Both inputs must be sorted ascending. Each beat is used at most once.
func MatchBeats(detected, reference []int, fs, windowMs float64) (BeatMatch, error) {
	var out BeatMatch
	if !(fs > 0) || math.IsInf(fs, 0) {
		return out, fmt.Errorf("%w: %v", ErrInvalidFS, fs)
	}
	if !(windowMs > 0) {
		return out, fmt.Errorf("%w: %v", ErrInvalidWindow, windowMs)
	}
	tol := windowMs / 2 / 1000 * fs

	var missed, falsePos []int
	i, j := 0, 0
	for i < len(detected) && j < len(reference) {
		d, r := detected[i], reference[j]
		diff := float64(d - r)
		switch {
		case math.Abs(diff) <= tol:
			out.Matched = append(out.Matched, d)
			out.ErrorsMs = append(out.ErrorsMs, diff/fs*1000)
			i++
			j++
		case d < r:
			falsePos = append(falsePos, d)
			i++
		default:
			missed = append(missed, r)
			j++
		}
	}
	falsePos = append(falsePos, detected[i:]...)
	missed = append(missed, reference[j:]...)
	out.Unmatched = mergeSorted(falsePos, missed)

	res := types.TimelineResults{
		WindowMs: windowMs,
		Beats:    len(reference),
		Matches:  len(out.Matched),
	}
	if res.Beats > 0 {
		res.Performance = float64(res.Matches) / float64(res.Beats) * 100
	}
	res.MeanMs, res.StdDevMs, res.RMSE = moments(out.ErrorsMs)
	out.Results = res
	return out, nil
}

// CompareFHR compares two FHR traces sample by sample over their common length. Samples where
// either trace is NaN are skipped and never flagged.
func CompareFHR(detected, reference []float64, tolerance float64) (types.FHRResults, []bool, error) {
	var res types.FHRResults
	if tolerance < 0 || math.IsNaN(tolerance) {
		return res, nil, fmt.Errorf("%w: %v", ErrInvalidTolerance, tolerance)
	}
	n := len(detected)
	if len(reference) < n {
		n = len(reference)
	}
	mask := make([]bool, n)
	var sumSq float64
	valid, out := 0, 0
	for k := 0; k < n; k++ {
		d, r := detected[k], reference[k]
		if math.IsNaN(d) || math.IsNaN(r) {
			continue
		}
		e := math.Abs(d - r)
		valid++
		sumSq += e * e
		if e > res.MaxError {
			res.MaxError = e
		}
		if e > tolerance {
			mask[k] = true
			out++
		}
	}
	if valid > 0 {
		res.RMSE = math.Sqrt(sumSq / float64(valid))
		res.OutOfRangePct = float64(out) / float64(valid) * 100
	}
	return res, mask, nil
}

// moments returns mean, population standard deviation and root mean square of xs.
func moments(xs []float64) (mean, std, rms float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	var sum, sumSq float64
	for _, x := range xs {
		sum += x
		sumSq += x * x
	}
	n := float64(len(xs))
	mean = sum / n
	rms = math.Sqrt(sumSq / n)
	v := sumSq/n - mean*mean
	if v < 0 {
		v = 0
	}
	return mean, math.Sqrt(v), rms
}

func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
