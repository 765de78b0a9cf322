package plot

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/layout"
)

type legendKind int

const (
	legendLine legendKind = iota
	legendMarker
	legendBand
)

type legendEntry struct {
	label string
	color drawing.Color
	kind  legendKind
	dash  []float64
}

var face = basicfont.Face7x13

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawString writes s with its baseline at y.
func drawString(dst draw.Image, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func fillRect(dst draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// stack places the images top to bottom on a background of the widest image's width.
func stack(bg color.Color, parts ...image.Image) image.Image {
	w, h := 0, 0
	for _, p := range parts {
		if p == nil {
			continue
		}
		b := p.Bounds()
		if b.Dx() > w {
			w = b.Dx()
		}
		h += b.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	y := 0
	for _, p := range parts {
		if p == nil {
			continue
		}
		b := p.Bounds()
		x := (w - b.Dx()) / 2
		draw.Draw(out, image.Rect(x, y, x+b.Dx(), y+b.Dy()), p, b.Min, draw.Over)
		y += b.Dy()
	}
	return out
}

// drawTable renders a centered cell table (header row plus data rows) w pixels wide.
func drawTable(w int, header []string, rows [][]string, st config.Style) image.Image {
	bg := colorOr(st.Background, drawing.ColorWhite)
	textCol := colorOr(st.TextColor, drawing.ColorBlack)
	lineCol := color.RGBA{R: 110, G: 110, B: 110, A: 255}
	headerBg := color.RGBA{R: 235, G: 235, B: 235, A: 255}

	nRows := 1 + len(rows)
	rh := layout.TableRowHeight
	h := nRows*rh + 2
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// table spans 90% of the figure, centered
	tw := w * 9 / 10
	x0 := (w - tw) / 2
	widths := layout.ComputeTableColumnWidths(tw, header, rows)
	fillRect(img, image.Rect(x0, 0, x0+tw, rh), headerBg)

	ascent := face.Metrics().Ascent.Ceil()
	all := append([][]string{header}, rows...)
	for r, cells := range all {
		top := r * rh
		x := x0
		for c, cw := range widths {
			text := ""
			if c < len(cells) {
				text = cells[c]
			}
			text = fitText(text, cw-6)
			tx := x + (cw-textWidth(text))/2
			ty := top + (rh+ascent)/2 - 1
			drawString(img, tx, ty, text, textCol)
			// vertical cell border
			fillRect(img, image.Rect(x, top, x+1, top+rh+1), lineCol)
			x += cw
		}
		fillRect(img, image.Rect(x-1, top, x, top+rh+1), lineCol)
		fillRect(img, image.Rect(x0, top, x0+tw, top+1), lineCol)
	}
	fillRect(img, image.Rect(x0, nRows*rh, x0+tw, nRows*rh+1), lineCol)
	return img
}

// fitText trims s with a trailing ".." until it fits maxW pixels.
func fitText(s string, maxW int) string {
	if textWidth(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && textWidth(string(r)+"..") > maxW {
		r = r[:len(r)-1]
	}
	return string(r) + ".."
}

// drawLegend lays the entries out below the chart, st.LegendColumns per row, each row centered.
// It returns nil when there is nothing to show.
func drawLegend(w int, entries []legendEntry, st config.Style) image.Image {
	entries = dedupeLegend(entries)
	if len(entries) == 0 {
		return nil
	}
	bg := colorOr(st.Background, drawing.ColorWhite)
	textCol := colorOr(st.TextColor, drawing.ColorBlack)
	cols := st.LegendColumns
	nRows := layout.LegendRows(len(entries), cols)
	rh := layout.LegendRowHeight
	h := nRows*rh + 8
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	const swatchW, gap, spacing = 24, 6, 18
	ascent := face.Metrics().Ascent.Ceil()
	for r := 0; r < nRows; r++ {
		lo := r * cols
		hi := lo + cols
		if hi > len(entries) {
			hi = len(entries)
		}
		rowEntries := entries[lo:hi]
		rowW := 0
		for i, e := range rowEntries {
			rowW += swatchW + gap + textWidth(e.label)
			if i > 0 {
				rowW += spacing
			}
		}
		x := (w - rowW) / 2
		if x < 4 {
			x = 4
		}
		cy := 4 + r*rh + rh/2
		for _, e := range rowEntries {
			drawSwatch(img, x, cy, swatchW, e)
			x += swatchW + gap
			drawString(img, x, cy+ascent/2-1, e.label, textCol)
			x += textWidth(e.label) + spacing
		}
	}
	return img
}

func drawSwatch(img draw.Image, x, cy, w int, e legendEntry) {
	switch e.kind {
	case legendMarker:
		fillCircle(img, x+w/2, cy, 4, e.color)
	case legendBand:
		fillRect(img, image.Rect(x, cy-6, x+w, cy+6), e.color)
	default:
		drawDashedHLine(img, x, x+w, cy, e.dash, e.color)
	}
}

// drawDashedHLine draws a 2px horizontal line following a go-chart dash array (nil = solid).
func drawDashedHLine(img draw.Image, x0, x1, y int, dash []float64, col color.Color) {
	if len(dash) == 0 {
		fillRect(img, image.Rect(x0, y-1, x1, y+1), col)
		return
	}
	x := x0
	for i := 0; x < x1; i++ {
		seg := int(dash[i%len(dash)] + 0.5)
		if seg < 1 {
			seg = 1
		}
		if i%2 == 0 {
			end := x + seg
			if end > x1 {
				end = x1
			}
			fillRect(img, image.Rect(x, y-1, end, y+1), col)
		}
		x += seg
	}
}

func fillCircle(img draw.Image, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				fillRect(img, image.Rect(cx+dx, cy+dy, cx+dx+1, cy+dy+1), col)
			}
		}
	}
}

// dedupeLegend drops empty labels and repeated labels, keeping the first occurrence.
func dedupeLegend(entries []legendEntry) []legendEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]legendEntry, 0, len(entries))
	for _, e := range entries {
		l := strings.TrimSpace(e.label)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, e)
	}
	return out
}
