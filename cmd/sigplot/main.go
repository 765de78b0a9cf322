package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/figure"
	"github.com/iafilius/SignalPlot/src/logging"
	"github.com/iafilius/SignalPlot/src/plot"
	"github.com/iafilius/SignalPlot/src/record"
)

type options struct {
	in         string
	out        string
	mode       string
	sections   int
	section    int
	all        bool
	width      float64
	stylePath  string
	writeStyle string
	fs         float64
	windowMs   float64
	tolerance  float64
	logLevel   string
	demo       bool

	marker         string
	markerColor    string
	gtStyle        string
	gtColor        string
	highlight      string
	highlightColor string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fsFlags := flag.NewFlagSet("sigplot", flag.ContinueOnError)
	fsFlags.SetOutput(stderr)
	var o options
	fsFlags.StringVar(&o.in, "in", "", "Record to plot (.json or .csv)")
	fsFlags.StringVar(&o.out, "out", "figure.png", "Output PNG (a directory with -all)")
	fsFlags.StringVar(&o.mode, "mode", "annotations", "Figure: annotations | signal | errors | fhr")
	fsFlags.IntVar(&o.sections, "sections", 1, "Split the signal into this many sections (at least 1)")
	fsFlags.IntVar(&o.section, "section", 0, "Section to show (0-based)")
	fsFlags.BoolVar(&o.all, "all", false, "Render every section into the -out directory")
	fsFlags.Float64Var(&o.width, "width", 0, "Figure width in inches (0 keeps the style width)")
	fsFlags.StringVar(&o.stylePath, "style", "", "TOML style file")
	fsFlags.StringVar(&o.writeStyle, "write-style", "", "Write the default style as TOML to this path and exit")
	fsFlags.Float64Var(&o.fs, "fs", 0, "Sampling frequency in Hz (required for CSV input)")
	fsFlags.Float64Var(&o.windowMs, "window-ms", 150, "Beat matching window in ms (errors mode)")
	fsFlags.Float64Var(&o.tolerance, "tolerance", 5, "FHR out-of-range tolerance in bpm (fhr mode)")
	fsFlags.StringVar(&o.logLevel, "log-level", "info", "Log level: debug | info | warn | error")
	fsFlags.BoolVar(&o.demo, "demo", false, "Plot a synthetic record instead of -in")
	fsFlags.StringVar(&o.marker, "marker", "", "Annotation marker (o, ., x, ...)")
	fsFlags.StringVar(&o.markerColor, "marker-color", "", "Annotation marker color")
	fsFlags.StringVar(&o.gtStyle, "gt-style", "", "Ground truth line style: solid | dotted | dashed | dashdot")
	fsFlags.StringVar(&o.gtColor, "gt-color", "", "Ground truth line color")
	fsFlags.StringVar(&o.highlight, "highlight", "", "Comma separated rows to highlight (signal mode)")
	fsFlags.StringVar(&o.highlightColor, "highlight-color", "red", "Highlighted row color (signal mode)")
	if err := fsFlags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	logging.SetOutput(stderr)
	if !logging.SetLogLevel(o.logLevel) {
		fmt.Fprintf(stderr, "error: unknown log level %q\n", o.logLevel)
		return 2
	}
	if o.sections < 1 {
		fmt.Fprintf(stderr, "error: -sections must be at least 1, got %d\n", o.sections)
		return 2
	}
	if err := execute(o); err != nil {
		logging.Errorf("%v", err)
		return 1
	}
	return 0
}

func execute(o options) error {
	defer logging.TimeTrack(time.Now(), "sigplot")
	if o.writeStyle != "" {
		if err := config.Write(o.writeStyle, config.DefaultStyle()); err != nil {
			return err
		}
		logging.Infof("wrote default style to %s", o.writeStyle)
		return nil
	}
	st, err := loadStyle(o.stylePath, o.width)
	if err != nil {
		return err
	}
	rec, err := loadRecord(o)
	if err != nil {
		return err
	}
	fig, err := newFigure(o)
	if err != nil {
		return err
	}
	if !fig.Sectioned() && (o.sections != 1 || o.section != 0) {
		logging.Warnf("%s figure always shows the whole recording; -sections/-section ignored", fig.Mode())
	}
	if !o.all {
		img, err := fig.Render(rec, plot.SectionOptions{Count: o.sections, Index: o.section}, st)
		if err != nil {
			return err
		}
		if err := plot.SavePNG(o.out, img); err != nil {
			return err
		}
		logging.Infof("wrote %s", o.out)
		return nil
	}
	paths, err := renderAll(fig, rec, o.sections, o.out, st)
	if err != nil {
		return err
	}
	logging.Infof("wrote %d figures under %s", len(paths), o.out)
	return nil
}

func loadStyle(path string, width float64) (config.Style, error) {
	st := config.DefaultStyle()
	if path != "" {
		var err error
		if st, err = config.Load(path); err != nil {
			return config.Style{}, err
		}
		logging.Debugf("style loaded from %s", path)
	}
	if width > 0 {
		st = st.WithWidth(width)
	}
	return st, st.Validate()
}

func loadRecord(o options) (*record.Record, error) {
	if o.demo {
		rec := record.Demo()
		if err := rec.Normalize(); err != nil {
			return nil, err
		}
		return rec, nil
	}
	if o.in == "" {
		return nil, errors.New("no input: pass -in <file> or -demo")
	}
	rec, err := record.Load(o.in, o.fs)
	if err != nil {
		return nil, err
	}
	logging.Debugf("loaded %s: %d samples at %.1f Hz, %d annotations, %d ground truth", rec.SampleID, len(rec.Signal), rec.FS, len(rec.Annotations), len(rec.GroundTruth))
	return rec, nil
}

// renderAll writes one PNG per section into dir, like a headless screenshot run.
func renderAll(fig *figure.Figure, rec *record.Record, count int, dir string, st config.Style) ([]string, error) {
	if count < 1 || !fig.Sectioned() {
		count = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	id := rec.SampleID
	if id == "" {
		id = "record"
	}
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		img, err := fig.Render(rec, plot.SectionOptions{Count: count, Index: i}, st)
		if err != nil {
			return paths, fmt.Errorf("section %d: %w", i, err)
		}
		p := filepath.Join(dir, fmt.Sprintf("%s_%s_%02d.png", id, fig.Mode(), i))
		if err := plot.SavePNG(p, img); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func newFigure(o options) (*figure.Figure, error) {
	fo := figure.Options{
		Mode:              o.mode,
		WindowMs:          o.windowMs,
		Tolerance:         o.tolerance,
		AnnotationSymbol:  plot.AnnotationSymbol{Marker: o.marker, Color: o.markerColor},
		GroundTruthSymbol: plot.GroundTruthSymbol{LineStyle: o.gtStyle, Color: o.gtColor},
	}
	rows, err := parseRows(o.highlight)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		fo.Highlight = &plot.Highlight{Rows: rows, Color: o.highlightColor}
	}
	return figure.New(fo)
}

func parseRows(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var rows []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("highlight row %q: %w", part, err)
		}
		rows = append(rows, n)
	}
	return rows, nil
}
