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
	matchedLabel   = "Matched beats"
	unmatchedLabel = "Unmatched beats"
)

// ErrorTimeline renders the beat-matching results table above one section of sig, with
// matched beats as green and unmatched beats as red vertical lines. The amplitude axis is
// hidden: only beat timing matters here.
func ErrorTimeline(sig types.Signal, matched, unmatched []int, res types.TimelineResults, section SectionOptions, st config.Style) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render error timeline")
	if err := st.Validate(); err != nil {
		return nil, err
	}
	p, legend, err := errorTimelinePanel(sig, matched, unmatched, section, st)
	if err != nil {
		return nil, err
	}
	w, h := panelSize(st, st.RowHeight)
	chartImg, err := p.render(w, h, st)
	if err != nil {
		return nil, err
	}
	table := drawTable(w, types.TimelineHeader, [][]string{res.TableRow()}, st)
	logging.Debugf("error timeline %s: matched=%d unmatched=%d", res.SampleID, len(matched), len(unmatched))
	bg := colorOr(st.Background, drawing.ColorWhite)
	return stack(bg, table, chartImg, drawLegend(w, legend, st)), nil
}

func errorTimelinePanel(sig types.Signal, matched, unmatched []int, section SectionOptions, st config.Style) (*panel, []legendEntry, error) {
	win, err := section.window(sig.Len())
	if err != nil {
		return nil, nil, err
	}
	xs, err := window.ToTimeAxis(win.Start, win.End, sig.FS)
	if err != nil {
		return nil, nil, err
	}
	mx, err := window.FilterAnnotationsInRange(matched, win.Start, win.End, sig.FS)
	if err != nil {
		return nil, nil, err
	}
	ux, err := window.FilterAnnotationsInRange(unmatched, win.Start, win.End, sig.FS)
	if err != nil {
		return nil, nil, err
	}
	ys := sectionSamples(sig.Samples, win)

	label := sig.Label
	if label == "" {
		label = DefaultSignalLabel
	}
	p := newPanel("error timeline")
	p.xLabel = timeAxisLabel
	p.hideY = true
	p.setXRange(timeRange(win, sig.FS))
	if lo, hi, ok := layout.MinMax(ys); ok {
		p.setYRange(layout.PaddedRange(lo, hi, 0.05))
	}

	green, _ := ParseColor("green")
	red, _ := ParseColor("red")
	var legend []legendEntry
	if len(mx) > 0 {
		p.addVLines(matchedLabel, mx, green, strokePx(1, st), nil)
		legend = append(legend, legendEntry{label: matchedLabel, color: green, kind: legendLine})
	}
	if len(ux) > 0 {
		p.addVLines(unmatchedLabel, ux, red, strokePx(1, st), nil)
		legend = append(legend, legendEntry{label: unmatchedLabel, color: red, kind: legendLine})
	}
	sigCol := colorOr(st.SignalColor, drawing.ColorBlue)
	p.addLine(label, xs, ys, sigCol, strokePx(st.LineWidth, st), nil)
	if len(xs) > 0 {
		legend = append(legend, legendEntry{label: label, color: sigCol, kind: legendLine})
	}
	return p, legend, nil
}
