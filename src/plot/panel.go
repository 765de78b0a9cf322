package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/layout"
	"github.com/iafilius/SignalPlot/src/window"
)

type vline struct {
	x     float64
	name  string
	style chart.Style
}

// panel collects the series of one chart row. Vertical lines are materialised at render time
// so they always span the final y range.
type panel struct {
	name    string
	xLabel  string
	yLabel  string
	hideY   bool
	xMin    float64
	xMax    float64
	yMin    float64
	yMax    float64
	haveY   bool
	bands   []chart.Series
	vlines  []vline
	lines   []chart.Series
	markers []chart.Series
}

func newPanel(name string) *panel { return &panel{name: name} }

func (p *panel) empty() bool {
	return len(p.bands) == 0 && len(p.vlines) == 0 && len(p.lines) == 0 && len(p.markers) == 0
}

func (p *panel) setXRange(min, max float64) { p.xMin, p.xMax = min, max }

func (p *panel) setYRange(min, max float64) {
	p.yMin, p.yMax = min, max
	p.haveY = true
}

// strokePx converts a line width in points to pixels at the style DPI.
func strokePx(points float64, st config.Style) float64 {
	px := points * st.DPI / 72
	if px < 0.75 {
		px = 0.75
	}
	return px
}

func (p *panel) addLine(name string, xs, ys []float64, col drawing.Color, width float64, dash []float64) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	p.lines = append(p.lines, chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor:     col,
			StrokeWidth:     width,
			StrokeDashArray: dash,
		},
	})
}

// addScatter draws points only (no connecting line).
func (p *panel) addScatter(name string, xs, ys []float64, col drawing.Color, dotWidth float64) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	p.markers = append(p.markers, chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    dotWidth,
			DotColor:    col,
		},
	})
}

func (p *panel) addVLines(name string, xs []float64, col drawing.Color, width float64, dash []float64) {
	for _, x := range xs {
		p.vlines = append(p.vlines, vline{x: x, name: name, style: chart.Style{
			StrokeColor:     col,
			StrokeWidth:     width,
			StrokeDashArray: dash,
		}})
	}
}

// addBand shades [x0, x1] from the bottom of the plot up to yTop.
func (p *panel) addBand(name string, x0, x1, yTop float64, col drawing.Color) {
	p.bands = append(p.bands, chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x0, x1},
		YValues: []float64{yTop, yTop},
		// go-chart only fills series that also stroke
		Style: chart.Style{
			StrokeColor: col,
			StrokeWidth: 1,
			FillColor:   col,
		},
	})
}

func (p *panel) ranges() (xMin, xMax, yMin, yMax float64) {
	xMin, xMax = p.xMin, p.xMax
	if !(xMax > xMin) {
		xMin, xMax = layout.PaddedRange(xMin, xMax, 0)
	}
	yMin, yMax = 0, 1
	if p.haveY {
		yMin, yMax = p.yMin, p.yMax
		if !(yMax > yMin) {
			yMin, yMax = layout.PaddedRange(yMin, yMax, 0)
		}
	}
	return xMin, xMax, yMin, yMax
}

func ticks(min, max float64, n int) []chart.Tick {
	vs := layout.BuildAxisTicks(min, max, n)
	out := make([]chart.Tick, 0, len(vs))
	for _, v := range vs {
		out = append(out, chart.Tick{Value: v, Label: layout.FormatNumericTick(v)})
	}
	return out
}

func (p *panel) series(yMin, yMax float64) []chart.Series {
	out := make([]chart.Series, 0, len(p.bands)+len(p.vlines)+len(p.lines)+len(p.markers))
	out = append(out, p.bands...)
	for _, v := range p.vlines {
		out = append(out, chart.ContinuousSeries{
			Name:    v.name,
			XValues: []float64{v.x, v.x},
			YValues: []float64{yMin, yMax},
			Style:   v.style,
		})
	}
	out = append(out, p.lines...)
	out = append(out, p.markers...)
	return out
}

// render draws the panel with go-chart and decodes it back into an image for composition.
func (p *panel) render(w, h int, st config.Style) (image.Image, error) {
	bg := colorOr(st.Background, drawing.ColorWhite)
	if p.empty() {
		return blank(w, h, bg), nil
	}
	xMin, xMax, yMin, yMax := p.ranges()
	if math.IsNaN(xMin) || math.IsNaN(yMin) {
		return nil, fmt.Errorf("%s panel: invalid axis range", p.name)
	}
	textCol := colorOr(st.TextColor, drawing.ColorBlack)
	axisStyle := chart.Style{
		FontSize:    st.FontSize,
		FontColor:   textCol,
		StrokeColor: textCol,
		StrokeWidth: 1,
	}
	nameStyle := chart.Style{FontSize: st.FontSize, FontColor: textCol}
	xTickCount := w / 120
	if xTickCount < 4 {
		xTickCount = 4
	}
	ch := chart.Chart{
		Width:  w,
		Height: h,
		DPI:    st.DPI,
		Background: chart.Style{
			FillColor: bg,
			Padding:   chart.Box{Top: 8, Left: 12, Right: 20, Bottom: 6},
		},
		Canvas: chart.Style{FillColor: bg},
		XAxis: chart.XAxis{
			Name:      p.xLabel,
			NameStyle: nameStyle,
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:     ticks(xMin, xMax, xTickCount),
		},
		YAxis: chart.YAxis{
			Name:      p.yLabel,
			NameStyle: nameStyle,
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks:     ticks(yMin, yMax, 4),
		},
		Series: p.series(yMin, yMax),
	}
	if p.hideY {
		ch.YAxis.Style = chart.Hidden()
		ch.YAxis.NameStyle = chart.Hidden()
		ch.YAxis.Ticks = nil
	}
	if st.ShowGrid {
		grid := chart.Style{StrokeColor: colorOr(st.GridColor, drawing.ColorFromHex("dddddd")), StrokeWidth: 1}
		ch.XAxis.GridMajorStyle = grid
		ch.YAxis.GridMajorStyle = grid
	} else {
		ch.XAxis.GridMajorStyle = chart.Hidden()
		ch.XAxis.GridMinorStyle = chart.Hidden()
		ch.YAxis.GridMajorStyle = chart.Hidden()
		ch.YAxis.GridMinorStyle = chart.Hidden()
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s panel: %w", p.name, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s panel: %w", p.name, err)
	}
	return img, nil
}

func blank(w, h int, bg color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// timeRange is the x extent of a window in seconds; a window shorter than two samples gets
// one sample period of width.
func timeRange(w window.Window, fs float64) (float64, float64) {
	lo := float64(w.Start) / fs
	hi := float64(w.End) / fs
	if hi <= lo {
		hi = lo + 1/fs
	}
	return lo, hi
}

// sectionSamples slices the window out of samples, tolerating windows past the slice end.
func sectionSamples(samples []float64, w window.Window) []float64 {
	s, e := w.Start, w.End
	if e > len(samples) {
		e = len(samples)
	}
	if s > e {
		s = e
	}
	return samples[s:e]
}

// panelSize is the pixel size of one chart row for st, honouring the minimum panel height.
func panelSize(st config.Style, rowHeightInches float64) (int, int) {
	rh := int(math.Round(rowHeightInches * st.DPI))
	return layout.ComputePanelSize(st.WidthPx(), rh, st.MinPanelHeight)
}
