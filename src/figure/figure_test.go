package figure

import (
	"errors"
	"testing"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/plot"
	"github.com/iafilius/SignalPlot/src/record"
)

func demo(t *testing.T) *record.Record {
	t.Helper()
	rec := record.Demo()
	if err := rec.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return rec
}

func TestRenderEveryMode(t *testing.T) {
	rec := demo(t)
	st := config.DefaultStyle().WithWidth(6)
	for _, mode := range Modes {
		t.Run(mode, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = mode
			if mode == ModeSignal {
				opts.Highlight = &plot.Highlight{Rows: []int{1}, Color: "red"}
			}
			f, err := New(opts)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			img, err := f.Render(rec, plot.SectionOptions{Count: 5, Index: 4}, st)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if img.Bounds().Dx() != 600 {
				t.Fatalf("width %d", img.Bounds().Dx())
			}
		})
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	if _, err := New(Options{Mode: "pie"}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("want ErrUnknownMode, got %v", err)
	}
}

func TestSectioned(t *testing.T) {
	f, _ := New(Options{Mode: ModeFHR})
	if f.Sectioned() {
		t.Fatalf("fhr mode is not sectioned")
	}
	f, _ = New(Options{Mode: ModeErrors, WindowMs: 100})
	if !f.Sectioned() {
		t.Fatalf("errors mode is sectioned")
	}
}

func TestRenderErrorsNeedsWindow(t *testing.T) {
	f, _ := New(Options{Mode: ModeErrors})
	if _, err := f.Render(demo(t), plot.SectionOptions{}, config.DefaultStyle()); err == nil {
		t.Fatalf("expected error for zero matching window")
	}
}
