package main

import (
	"flag"
	"image"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/figure"
	"github.com/iafilius/SignalPlot/src/logging"
	"github.com/iafilius/SignalPlot/src/record"
)

type ui struct {
	window    fyne.Window
	prefs     fyne.Preferences
	state     *viewState
	img       *canvas.Image
	pos       *widget.Label
	fileLabel *widget.Label
	fs        float64
}

func main() {
	var inFlag, styleFlag, logLevel string
	var fsFlag float64
	var demo bool
	flag.StringVar(&inFlag, "in", "", "Record to open (.json or .csv)")
	flag.Float64Var(&fsFlag, "fs", 0, "Sampling frequency in Hz (required for CSV input)")
	flag.StringVar(&styleFlag, "style", "", "TOML style file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug | info | warn | error")
	flag.BoolVar(&demo, "demo", false, "Open a synthetic record")
	flag.Parse()
	logging.SetLogLevel(logLevel)

	st := config.DefaultStyle()
	if styleFlag != "" {
		var err error
		if st, err = config.Load(styleFlag); err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
	}

	a := app.NewWithID("com.signalplot.viewer")
	w := a.NewWindow("Signal Viewer")
	w.Resize(fyne.NewSize(1200, 700))

	u := &ui{
		window: w,
		prefs:  a.Preferences(),
		state:  newViewState(st),
		fs:     fsFlag,
	}
	u.state.setSections(u.prefs.IntWithFallback("sections", 1))
	u.state.setMode(u.prefs.StringWithFallback("mode", figure.ModeAnnotations))

	u.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	u.img.FillMode = canvas.ImageFillContain
	u.img.SetMinSize(fyne.NewSize(800, 300))
	u.pos = widget.NewLabel(u.state.label())
	u.fileLabel = widget.NewLabel("")

	modeSelect := widget.NewSelect(figure.Modes, func(v string) {
		u.state.setMode(v)
		u.prefs.SetString("mode", v)
		u.redraw()
	})
	modeSelect.Selected = u.state.fig.Mode

	sectionsSelect := widget.NewSelect(sectionChoices, func(v string) {
		n := parseSections(v)
		u.state.setSections(n)
		u.prefs.SetInt("sections", n)
		u.redraw()
	})
	sectionsSelect.Selected = strconv.Itoa(u.state.sections)

	prevB := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		if u.state.prev() {
			u.redraw()
		}
	})
	nextB := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		if u.state.next() {
			u.redraw()
		}
	})
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			prevB.OnTapped()
		case fyne.KeyRight:
			nextB.OnTapped()
		}
	})

	top := container.NewHBox(
		widget.NewButton("Open…", u.openFileDialog),
		widget.NewButton("Demo", func() { u.open(record.Demo(), "demo") }),
		u.fileLabel,
		widget.NewSeparator(),
		widget.NewLabel("Figure"), modeSelect,
		widget.NewLabel("Sections"), sectionsSelect,
		prevB, u.pos, nextB,
	)
	w.SetContent(container.NewBorder(top, nil, nil, nil, container.NewScroll(u.img)))

	switch {
	case demo:
		u.open(record.Demo(), "demo")
	case inFlag != "":
		u.load(inFlag)
	}
	w.ShowAndRun()
}

func (u *ui) openFileDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		u.load(rc.URI().Path())
	}, u.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".csv"}))
	d.Show()
}

func (u *ui) load(path string) {
	rec, err := record.Load(path, u.fs)
	if err != nil {
		dialog.ShowError(err, u.window)
		return
	}
	u.open(rec, path)
}

func (u *ui) open(rec *record.Record, name string) {
	if err := rec.Normalize(); err != nil {
		dialog.ShowError(err, u.window)
		return
	}
	logging.Infof("[viewer] opened %s: %d samples at %.1f Hz", name, len(rec.Signal), rec.FS)
	u.state.setRecord(rec)
	u.fileLabel.SetText(name)
	u.redraw()
}

// chartWidth follows the window width, leaving room for the scrollbar.
func (u *ui) chartWidth() int {
	if u.window == nil || u.window.Canvas() == nil {
		return 1100
	}
	w := int(u.window.Canvas().Size().Width*0.95) - 12
	if w < 600 {
		w = 600
	}
	return w
}

func (u *ui) redraw() {
	u.pos.SetText(u.state.label())
	if u.state.rec == nil {
		return
	}
	img, err := u.state.render(u.chartWidth())
	if err != nil {
		dialog.ShowError(err, u.window)
		return
	}
	u.img.Image = img
	u.img.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	u.img.Refresh()
}
