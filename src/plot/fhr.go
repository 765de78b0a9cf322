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
	detectedFHRLabel = "Detected FHR"
	realFHRLabel     = "Real FHR"
	outOfRangeLabel  = "Out of range"
	outOfRangeAlpha  = 26
)

// FHRTrace renders the FHR comparison table above the detected (red) and reference (blue)
// heart rate traces. Stretches where outOfRange is set are shaded between the lowest and
// highest rate of both traces. The mask is spread evenly over the trace duration, so it may
// be sampled at a different rate than the traces.
func FHRTrace(detected, reference []float64, outOfRange []bool, fs float64, res types.FHRResults, st config.Style) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render fhr trace")
	if err := st.Validate(); err != nil {
		return nil, err
	}
	p, legend, err := fhrPanel(detected, reference, outOfRange, fs, st)
	if err != nil {
		return nil, err
	}
	w, h := panelSize(st, st.RowHeight)
	chartImg, err := p.render(w, h, st)
	if err != nil {
		return nil, err
	}
	table := drawTable(w, types.FHRHeader, [][]string{res.TableRow()}, st)
	logging.Debugf("fhr trace %s: samples=%d bands=%d", res.SampleID, len(detected), len(p.bands))
	bg := colorOr(st.Background, drawing.ColorWhite)
	return stack(bg, table, chartImg, drawLegend(w, legend, st)), nil
}

func fhrPanel(detected, reference []float64, outOfRange []bool, fs float64, st config.Style) (*panel, []legendEntry, error) {
	win, err := window.Select(len(detected), 1, 0)
	if err != nil {
		return nil, nil, err
	}
	xs, err := window.ToTimeAxis(win.Start, win.End, fs)
	if err != nil {
		return nil, nil, err
	}
	det := sectionSamples(detected, win)
	ref := sectionSamples(reference, win)

	p := newPanel("fhr trace")
	p.xLabel = timeAxisLabel
	p.yLabel = "Bpm"
	xMin, xMax := timeRange(win, fs)
	p.setXRange(xMin, xMax)
	lo, hi, haveY := layout.MinMax(detected, reference)
	if haveY {
		p.setYRange(lo, hi)
	}

	red, _ := ParseColor("r")
	blue, _ := ParseColor("blue")
	band := red.WithAlpha(outOfRangeAlpha)
	var legend []legendEntry
	if haveY {
		// bands reach the top of the final (possibly padded) y range
		_, _, _, yTop := p.ranges()
		for _, b := range OutOfRangeBands(outOfRange, xMin, xMax) {
			p.addBand(outOfRangeLabel, b[0], b[1], yTop, band)
		}
	}
	lw := strokePx(st.LineWidth, st)
	if len(det) > 0 {
		p.addLine(detectedFHRLabel, xs[:len(det)], det, red, lw, nil)
		legend = append(legend, legendEntry{label: detectedFHRLabel, color: red, kind: legendLine})
	}
	if len(ref) > 0 {
		p.addLine(realFHRLabel, xs[:len(ref)], ref, blue, lw, nil)
		legend = append(legend, legendEntry{label: realFHRLabel, color: blue, kind: legendLine})
	}
	if len(p.bands) > 0 {
		legend = append(legend, legendEntry{label: outOfRangeLabel, color: band, kind: legendBand})
	}
	return p, legend, nil
}

// OutOfRangeBands converts a boolean mask, spread evenly over [x0, x1], into the x extents of
// its runs of true values. A run of one sample is widened to half a step on each side so
// isolated excursions stay visible.
func OutOfRangeBands(mask []bool, x0, x1 float64) [][2]float64 {
	n := len(mask)
	if n == 0 {
		return nil
	}
	pos := func(i int) float64 {
		if n == 1 {
			return x0
		}
		return x0 + (x1-x0)*float64(i)/float64(n-1)
	}
	half := (x1 - x0) / 2
	if n > 1 {
		half = (x1 - x0) / float64(n-1) / 2
	}
	var out [][2]float64
	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		j := i
		for j+1 < n && mask[j+1] {
			j++
		}
		a, b := pos(i), pos(j)
		if i == j {
			a, b = a-half, b+half
			if a < x0 {
				a = x0
			}
			if b > x1 {
				b = x1
			}
		}
		out = append(out, [2]float64{a, b})
		i = j
	}
	return out
}
