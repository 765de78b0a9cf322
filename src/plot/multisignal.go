package plot

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/layout"
	"github.com/iafilius/SignalPlot/src/logging"
	"github.com/iafilius/SignalPlot/src/window"
)

// Highlight draws some rows of a MultiSignal figure differently.
type Highlight struct {
	Rows        []int
	Color       string
	LegendLabel string
	YLabel      string
}

func (h *Highlight) has(row int) bool {
	if h == nil {
		return false
	}
	for _, r := range h.Rows {
		if r == row {
			return true
		}
	}
	return false
}

// MultiOptions configures MultiSignal.
type MultiOptions struct {
	Section SectionOptions
	// SignalType is the legend label of the regular rows (default "ECG signal").
	SignalType string
	// Labels are the per-row y axis labels; missing ones default to "Signal N".
	Labels    []string
	Highlight *Highlight
	// RowHeight in inches; zero uses the style row height.
	RowHeight float64
}

// MultiSignal renders one row per signal, all showing the same section on a shared time axis.
func MultiSignal(signals [][]float64, fs float64, opts MultiOptions, st config.Style) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render multi signal")
	if err := st.Validate(); err != nil {
		return nil, err
	}
	panels, legend, err := multiSignalPanels(signals, fs, opts, st)
	if err != nil {
		return nil, err
	}
	rowHeight := opts.RowHeight
	if rowHeight == 0 {
		rowHeight = st.RowHeight
	}
	w, h := panelSize(st, rowHeight)
	bg := colorOr(st.Background, drawing.ColorWhite)
	if len(panels) == 0 {
		return blank(w, h, bg), nil
	}
	parts := make([]image.Image, 0, len(panels)+1)
	for _, p := range panels {
		img, err := p.render(w, h, st)
		if err != nil {
			return nil, err
		}
		parts = append(parts, img)
	}
	parts = append(parts, drawLegend(w, legend, st))
	logging.Debugf("multi signal: rows=%d section=%d/%d", len(panels), opts.Section.Index, opts.Section.Count)
	return stack(bg, parts...), nil
}

// multiSignalPanels builds one panel per signal sharing the x range, the last one carrying
// the time axis label.
func multiSignalPanels(signals [][]float64, fs float64, opts MultiOptions, st config.Style) ([]*panel, []legendEntry, error) {
	if opts.RowHeight < 0 || math.IsNaN(opts.RowHeight) {
		return nil, nil, fmt.Errorf("%w: row height %v", config.ErrInvalidStyle, opts.RowHeight)
	}
	signalType := opts.SignalType
	if signalType == "" {
		signalType = DefaultSignalLabel
	}
	hl := opts.Highlight
	var hlCol drawing.Color
	if hl != nil {
		c, err := ParseColor(colorName(hl.Color, "r"))
		if err != nil {
			return nil, nil, fmt.Errorf("highlight: %w", err)
		}
		hlCol = c
	}
	sigCol := colorOr(st.SignalColor, drawing.ColorBlue)
	lw := strokePx(st.LineWidth, st)

	// each row selects its own window; the x range is shared across rows
	panels := make([]*panel, 0, len(signals))
	xMin, xMax := math.Inf(1), math.Inf(-1)
	var legend []legendEntry
	regularSeen := false
	for i, sig := range signals {
		win, err := opts.Section.window(len(sig))
		if err != nil {
			return nil, nil, err
		}
		xs, err := window.ToTimeAxis(win.Start, win.End, fs)
		if err != nil {
			return nil, nil, err
		}
		ys := sectionSamples(sig, win)
		lo, hi := timeRange(win, fs)
		xMin = math.Min(xMin, lo)
		xMax = math.Max(xMax, hi)

		p := newPanel(fmt.Sprintf("signal row %d", i+1))
		p.yLabel = fmt.Sprintf("Signal %d", i+1)
		if i < len(opts.Labels) && opts.Labels[i] != "" {
			p.yLabel = opts.Labels[i]
		}
		if ymin, ymax, ok := layout.MinMax(ys); ok {
			p.setYRange(layout.PaddedRange(ymin, ymax, 0.05))
		}
		if hl.has(i) {
			if hl.YLabel != "" {
				p.yLabel = hl.YLabel
			}
			p.addLine(hl.LegendLabel, xs, ys, hlCol, lw, nil)
			legend = append(legend, legendEntry{label: hl.LegendLabel, color: hlCol, kind: legendLine})
		} else {
			p.addLine(signalType, xs, ys, sigCol, lw, nil)
			if !regularSeen {
				legend = append(legend, legendEntry{label: signalType, color: sigCol, kind: legendLine})
				regularSeen = true
			}
		}
		panels = append(panels, p)
	}

	for i, p := range panels {
		p.setXRange(xMin, xMax)
		if i == len(panels)-1 {
			p.xLabel = timeAxisLabel
		}
	}
	return panels, legend, nil
}

func colorName(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
