package types

import (
	"strconv"
)

// Signal is a sampled trace owned by the caller for the duration of a render call.
type Signal struct {
	Samples []float64
	// FS is the sampling frequency in Hz.
	FS    float64
	Label string
}

// Len is the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// TimelineResults summarises beat detection against reference annotations for one record.
type TimelineResults struct {
	SampleID    string
	WindowMs    float64 // matching tolerance window
	Beats       int     // reference beats
	Matches     int     // detected beats within WindowMs of a reference beat
	Performance float64 // Matches/Beats in percent
	RMSE        float64 // timing error of matched beats, ms
	MeanMs      float64
	StdDevMs    float64
}

// TimelineHeader is the column header of the error timeline table.
var TimelineHeader = []string{"Sample_ID", "Window size (ms)", "N° of beats", "N° of matches", "Performance (%)", "RMSE", "Mean (ms)", "Std Dev (ms)"}

// TableRow formats r in TimelineHeader order.
func (r TimelineResults) TableRow() []string {
	return []string{
		r.SampleID,
		formatFloat(r.WindowMs, 0),
		strconv.Itoa(r.Beats),
		strconv.Itoa(r.Matches),
		formatFloat(r.Performance, 2),
		formatFloat(r.RMSE, 2),
		formatFloat(r.MeanMs, 2),
		formatFloat(r.StdDevMs, 2),
	}
}

// FHRResults summarises a detected fetal heart rate trace against the reference trace.
type FHRResults struct {
	SampleID      string
	RMSE          float64 // bpm
	MaxError      float64 // bpm
	OutOfRangePct float64 // share of samples whose error exceeds the tolerance, percent
}

// FHRHeader is the column header of the FHR trace table.
var FHRHeader = []string{"Sample n°", "RMSE", "Max Error", "Out of range"}

// TableRow formats r in FHRHeader order; numbers are rounded to two decimals.
func (r FHRResults) TableRow() []string {
	return []string{
		r.SampleID,
		formatFloat(r.RMSE, 2),
		formatFloat(r.MaxError, 2),
		formatFloat(r.OutOfRangePct, 2) + "%",
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
