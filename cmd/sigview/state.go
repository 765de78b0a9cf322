package main

import (
	"fmt"
	"image"
	"strconv"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/figure"
	"github.com/iafilius/SignalPlot/src/plot"
	"github.com/iafilius/SignalPlot/src/record"
)

// sectionChoices are the section counts offered in the selector.
var sectionChoices = []string{"1", "2", "3", "4", "5", "10", "20", "50"}

// viewState is the viewer model: which record, which figure, which section. It holds no UI
// objects so navigation can be tested headlessly.
type viewState struct {
	rec      *record.Record
	style    config.Style
	fig      figure.Options
	sections int
	index    int
}

func newViewState(st config.Style) *viewState {
	return &viewState{style: st, fig: figure.DefaultOptions(), sections: 1}
}

func (s *viewState) setRecord(rec *record.Record) {
	s.rec = rec
	s.index = 0
}

// setSections changes the section count, keeping the view near the same part of the signal.
func (s *viewState) setSections(n int) {
	if n < 1 {
		n = 1
	}
	if n == s.sections {
		return
	}
	s.index = s.index * n / s.sections
	if s.index >= n {
		s.index = n - 1
	}
	s.sections = n
}

func (s *viewState) setMode(mode string) { s.fig.Mode = mode }

func (s *viewState) effectiveSections() int {
	if s.fig.Mode == figure.ModeFHR {
		return 1
	}
	return s.sections
}

func (s *viewState) next() bool {
	if s.index+1 >= s.effectiveSections() {
		return false
	}
	s.index++
	return true
}

func (s *viewState) prev() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

func (s *viewState) label() string {
	n := s.effectiveSections()
	idx := s.index
	if idx >= n {
		idx = n - 1
	}
	return fmt.Sprintf("Section %d / %d", idx+1, n)
}

// render draws the current view at the given pixel width.
func (s *viewState) render(widthPx int) (image.Image, error) {
	if s.rec == nil {
		return nil, fmt.Errorf("no record loaded")
	}
	st := s.style
	if widthPx > 0 {
		st = st.WithWidth(float64(widthPx) / st.DPI)
	}
	f, err := figure.New(s.fig)
	if err != nil {
		return nil, err
	}
	n := s.effectiveSections()
	idx := s.index
	if idx >= n {
		idx = n - 1
	}
	return f.Render(s.rec, plot.SectionOptions{Count: n, Index: idx}, st)
}

func parseSections(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
