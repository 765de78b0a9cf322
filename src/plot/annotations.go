package plot

import (
	"image"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/layout"
	"github.com/iafilius/SignalPlot/src/logging"
	"github.com/iafilius/SignalPlot/src/types"
	"github.com/iafilius/SignalPlot/src/window"
)

const (
	DefaultSignalLabel = "ECG signal"
	timeAxisLabel      = "Time (s)"
)

// SectionOptions picks the part of the signal to show: section Index of Count equal
// sections. A zero Count shows the whole signal.
type SectionOptions struct {
	Count int
	Index int
}

func (o SectionOptions) window(length int) (window.Window, error) {
	count := o.Count
	if count == 0 {
		count = 1
	}
	return window.Select(length, count, o.Index)
}

// AnnotationOptions configures SignalAnnotations.
type AnnotationOptions struct {
	Section SectionOptions
	// Annotations are detected events (sample indices, non-decreasing) drawn as markers on the trace.
	Annotations []int
	// GroundTruth are reference events drawn as vertical lines.
	GroundTruth       []int
	AnnotationSymbol  AnnotationSymbol
	GroundTruthSymbol GroundTruthSymbol
	// SignalLabel defaults to the signal's own label, then "ECG signal".
	SignalLabel string
	// YLabel defaults to "Amplitude (uV)".
	YLabel string
}

// SignalAnnotations renders one section of sig with detected annotations as markers and
// reference annotations as vertical lines, legend below the chart.
func SignalAnnotations(sig types.Signal, opts AnnotationOptions, st config.Style) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render signal annotations")
	if err := st.Validate(); err != nil {
		return nil, err
	}
	p, legend, err := signalAnnotationsPanel(sig, opts, st)
	if err != nil {
		return nil, err
	}
	w, h := panelSize(st, st.RowHeight)
	img, err := p.render(w, h, st)
	if err != nil {
		return nil, err
	}
	bg := colorOr(st.Background, drawing.ColorWhite)
	return stack(bg, img, drawLegend(w, legend, st)), nil
}

func signalAnnotationsPanel(sig types.Signal, opts AnnotationOptions, st config.Style) (*panel, []legendEntry, error) {
	win, err := opts.Section.window(sig.Len())
	if err != nil {
		return nil, nil, err
	}
	xs, err := window.ToTimeAxis(win.Start, win.End, sig.FS)
	if err != nil {
		return nil, nil, err
	}
	annSym := opts.AnnotationSymbol.Resolve()
	gtSym := opts.GroundTruthSymbol.Resolve()
	if err := validateSymbols(annSym, gtSym); err != nil {
		return nil, nil, err
	}
	ax, ay, err := window.FilterAnnotationPoints(opts.Annotations, sig.Samples, win.Start, win.End, sig.FS)
	if err != nil {
		return nil, nil, err
	}
	gx, err := window.FilterAnnotationsInRange(opts.GroundTruth, win.Start, win.End, sig.FS)
	if err != nil {
		return nil, nil, err
	}
	ys := sectionSamples(sig.Samples, win)

	label := opts.SignalLabel
	if label == "" {
		label = sig.Label
	}
	if label == "" {
		label = DefaultSignalLabel
	}
	yLabel := opts.YLabel
	if yLabel == "" {
		yLabel = "Amplitude (uV)"
	}

	p := newPanel("signal annotations")
	p.xLabel = timeAxisLabel
	p.yLabel = yLabel
	p.setXRange(timeRange(win, sig.FS))
	if lo, hi, ok := layout.MinMax(ys, ay); ok {
		p.setYRange(layout.PaddedRange(lo, hi, 0.05))
	}

	var legend []legendEntry
	annCol, _ := ParseColor(annSym.Color)
	if len(ax) > 0 {
		p.addScatter(annSym.Label, ax, ay, annCol, markerDotWidth(annSym.Marker))
		legend = append(legend, legendEntry{label: annSym.Label, color: annCol, kind: legendMarker})
	}
	if len(gx) > 0 {
		gtCol, _ := ParseColor(gtSym.Color)
		gtCol = gtCol.WithAlpha(groundTruthAlpha)
		dash, _ := ParseLineStyle(gtSym.LineStyle)
		p.addVLines(gtSym.Label, gx, gtCol, strokePx(gtSym.LineWidth, st), dash)
		legend = append(legend, legendEntry{label: gtSym.Label, color: gtCol, kind: legendLine, dash: dash})
	}
	sigCol := colorOr(st.SignalColor, drawing.ColorBlue)
	p.addLine(label, xs, ys, sigCol, strokePx(st.LineWidth, st), nil)
	if len(xs) > 0 {
		legend = append(legend, legendEntry{label: label, color: sigCol, kind: legendLine})
	}
	logging.Debugf("signal annotations: window [%d,%d) markers=%d lines=%d", win.Start, win.End, len(ax), len(gx))
	return p, legend, nil
}
