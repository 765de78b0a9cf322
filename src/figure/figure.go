// Package figure maps a record and a figure mode onto the plot package, so the headless
// renderer and the interactive viewer draw exactly the same images.
package figure

import (
	"errors"
	"fmt"
	"image"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/evaluate"
	"github.com/iafilius/SignalPlot/src/logging"
	"github.com/iafilius/SignalPlot/src/plot"
	"github.com/iafilius/SignalPlot/src/record"
	"github.com/iafilius/SignalPlot/src/types"
)

const (
	ModeAnnotations = "annotations"
	ModeSignal      = "signal"
	ModeErrors      = "errors"
	ModeFHR         = "fhr"
)

// Modes lists the figure modes in menu order.
var Modes = []string{ModeAnnotations, ModeSignal, ModeErrors, ModeFHR}

var ErrUnknownMode = errors.New("unknown figure mode")

// Options selects and tunes a figure.
type Options struct {
	Mode string
	// WindowMs is the beat matching window (errors mode).
	WindowMs float64
	// Tolerance is the FHR out-of-range threshold in bpm (fhr mode).
	Tolerance         float64
	AnnotationSymbol  plot.AnnotationSymbol
	GroundTruthSymbol plot.GroundTruthSymbol
	Highlight         *plot.Highlight
}

// DefaultOptions draws annotations with a 150 ms matching window and a 5 bpm tolerance.
func DefaultOptions() Options {
	return Options{Mode: ModeAnnotations, WindowMs: 150, Tolerance: 5}
}

// Figure renders one mode for any record and section.
type Figure struct {
	opts Options
}

func New(opts Options) (*Figure, error) {
	switch opts.Mode {
	case ModeAnnotations, ModeSignal, ModeErrors, ModeFHR:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, opts.Mode)
	}
	return &Figure{opts: opts}, nil
}

func (f *Figure) Mode() string { return f.opts.Mode }

// Sectioned reports whether the mode honours section selection; the FHR trace always shows
// the whole recording.
func (f *Figure) Sectioned() bool { return f.opts.Mode != ModeFHR }

// Render draws section of rec.
func (f *Figure) Render(rec *record.Record, section plot.SectionOptions, st config.Style) (image.Image, error) {
	sig := types.Signal{Samples: rec.Signal, FS: rec.FS}
	if len(rec.Labels) > 0 {
		sig.Label = rec.Labels[0]
	}
	switch f.opts.Mode {
	case ModeAnnotations:
		return plot.SignalAnnotations(sig, plot.AnnotationOptions{
			Section:           section,
			Annotations:       rec.Annotations,
			GroundTruth:       rec.GroundTruth,
			AnnotationSymbol:  f.opts.AnnotationSymbol,
			GroundTruthSymbol: f.opts.GroundTruthSymbol,
		}, st)
	case ModeSignal:
		return plot.MultiSignal(rec.Signals, rec.FS, plot.MultiOptions{
			Section:   section,
			Labels:    rec.Labels,
			Highlight: f.opts.Highlight,
		}, st)
	case ModeErrors:
		m, err := evaluate.MatchBeats(rec.Annotations, rec.GroundTruth, rec.FS, f.opts.WindowMs)
		if err != nil {
			return nil, err
		}
		m.Results.SampleID = rec.SampleID
		logging.Infof("%s: %d/%d beats matched (%.2f%%), rmse %.2f ms", rec.SampleID, m.Results.Matches, m.Results.Beats, m.Results.Performance, m.Results.RMSE)
		return plot.ErrorTimeline(sig, m.Matched, m.Unmatched, m.Results, section, st)
	case ModeFHR:
		res, mask, err := evaluate.CompareFHR(rec.FHR, rec.ReferenceFHR, f.opts.Tolerance)
		if err != nil {
			return nil, err
		}
		if len(rec.OutOfRange) > 0 {
			mask = rec.OutOfRange
		}
		res.SampleID = rec.SampleID
		logging.Infof("%s: fhr rmse %.2f bpm, max %.2f bpm, %.2f%% out of range", rec.SampleID, res.RMSE, res.MaxError, res.OutOfRangePct)
		return plot.FHRTrace(rec.FHR, rec.ReferenceFHR, mask, rec.FHRFS, res, st)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMode, f.opts.Mode)
}
