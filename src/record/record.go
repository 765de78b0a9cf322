// Package record loads the signals, annotations and reference traces a figure is drawn from.
//
// Two on-disk formats are understood:
//   - JSON (.json): a Record object, see the field tags below.
//   - CSV (.csv): one signal per column, optional header row with the column labels.
//     Annotations cannot be expressed in CSV; the sampling frequency comes from the caller.
package record

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Record is everything one figure can draw from.
type Record struct {
	SampleID string  `json:"sample_id,omitempty"`
	FS       float64 `json:"fs"`

	Signal  []float64   `json:"signal,omitempty"`
	Signals [][]float64 `json:"signals,omitempty"`
	Labels  []string    `json:"labels,omitempty"`

	Annotations []int `json:"annotations,omitempty"`
	GroundTruth []int `json:"ground_truth,omitempty"`

	FHR          []float64 `json:"fhr,omitempty"`
	ReferenceFHR []float64 `json:"reference_fhr,omitempty"`
	// FHRFS is the FHR sampling frequency when it differs from FS (defaults to FS).
	FHRFS      float64 `json:"fhr_fs,omitempty"`
	OutOfRange []bool  `json:"out_of_range,omitempty"`
}

var (
	ErrNoSamplingFrequency = errors.New("sampling frequency missing")
	ErrUnsupportedFormat   = errors.New("unsupported record format")
)

// Load reads a record from path. fs > 0 overrides the sampling frequency stored in the file.
func Load(path string, fs float64) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rec *Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rec, err = DecodeJSON(f)
	case ".csv":
		rec, err = DecodeCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if fs > 0 {
		rec.FS = fs
	}
	if rec.SampleID == "" {
		rec.SampleID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := rec.Normalize(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return rec, nil
}

// DecodeJSON reads one JSON Record.
func DecodeJSON(r io.Reader) (*Record, error) {
	var rec Record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &rec, nil
}

// DecodeCSV reads numeric columns. A first row that does not parse as numbers is taken as
// the column labels.
func DecodeCSV(r io.Reader) (*Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	rec := &Record{}
	if len(rows) == 0 {
		return rec, nil
	}
	start := 0
	if _, err := parseRow(rows[0]); err != nil {
		rec.Labels = append([]string(nil), rows[0]...)
		start = 1
	}
	cols := len(rows[0])
	rec.Signals = make([][]float64, cols)
	for i := start; i < len(rows); i++ {
		vals, err := parseRow(rows[i])
		if err != nil {
			return nil, fmt.Errorf("decode csv line %d: %w", i+1, err)
		}
		for c := range rec.Signals {
			rec.Signals[c] = append(rec.Signals[c], vals[c])
		}
	}
	if cols > 0 {
		rec.Signal = rec.Signals[0]
	}
	return rec, nil
}

func parseRow(row []string) ([]float64, error) {
	out := make([]float64, len(row))
	for i, s := range row {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Normalize checks the sampling frequency, fills Signal/Signals from each other and sorts the
// annotation lists (rendering expects non-decreasing indices).
func (r *Record) Normalize() error {
	if r.FS <= 0 {
		return ErrNoSamplingFrequency
	}
	if r.FHRFS <= 0 {
		r.FHRFS = r.FS
	}
	if len(r.Signal) == 0 && len(r.Signals) > 0 {
		r.Signal = r.Signals[0]
	}
	if len(r.Signals) == 0 && len(r.Signal) > 0 {
		r.Signals = [][]float64{r.Signal}
	}
	if !sort.IntsAreSorted(r.Annotations) {
		r.Annotations = sortedCopy(r.Annotations)
	}
	if !sort.IntsAreSorted(r.GroundTruth) {
		r.GroundTruth = sortedCopy(r.GroundTruth)
	}
	return nil
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}

// Save writes r as indented JSON.
func (r *Record) Save(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", path, err)
	}
	return nil
}
