package record

import "math"

// ECGSim generates an ECG-like waveform (not clinical) at fs Hz: slow baseline wander plus
// gaussian P, QRS and T waves and a little deterministic noise.
type ECGSim struct {
	fs    float64
	phase float64
	hrBPM float64
	noise float64
}

// rPeakPhase is where the R wave peaks inside a cycle [0,1).
const rPeakPhase = 0.32

// NewECGSim fs=250, hrBPM typically 60-120, noise ~0.0-0.05.
func NewECGSim(fs, hrBPM, noise float64) *ECGSim {
	return &ECGSim{fs: fs, hrBPM: hrBPM, noise: noise}
}

// Next returns the next sample and whether an R peak falls on it.
func (s *ECGSim) Next() (float64, bool) {
	prev := s.phase
	s.phase += s.hrBPM / 60.0 / s.fs
	if s.phase >= 1.0 {
		s.phase -= 1.0
	}
	t := s.phase
	peak := (prev < rPeakPhase && t >= rPeakPhase) || (t < prev && (prev < rPeakPhase || t >= rPeakPhase))

	baseline := 0.05 * math.Sin(2*math.Pi*0.33*t)
	p := 0.08 * gauss(t, 0.18, 0.03)
	q := -0.12 * gauss(t, 0.30, 0.01)
	r := 1.00 * gauss(t, rPeakPhase, 0.008)
	sv := -0.25 * gauss(t, 0.35, 0.012)
	tt := 0.25 * gauss(t, 0.60, 0.06)
	n := s.noise * (2*fract(math.Sin(12345.678*t)*9876.543) - 1)

	return baseline + p + q + r + sv + tt + n, peak
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

func fract(x float64) float64 { return x - math.Floor(x) }

// SynthECG returns n samples of simulated ECG together with the R-peak sample indices.
func SynthECG(fs, hrBPM, noise float64, n int) ([]float64, []int) {
	sim := NewECGSim(fs, hrBPM, noise)
	samples := make([]float64, n)
	var peaks []int
	for i := range samples {
		v, peak := sim.Next()
		samples[i] = v
		if peak {
			peaks = append(peaks, i)
		}
	}
	return samples, peaks
}

// SynthFHR returns n samples of a slowly varying fetal heart rate trace (bpm) at fs Hz with
// one deceleration in the middle third.
func SynthFHR(fs float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / fs
		v := 140 + 6*math.Sin(2*math.Pi*t/40) + 2*math.Sin(2*math.Pi*t/7)
		if i > n/3 && i < n/2 {
			v -= 25 * math.Sin(math.Pi*float64(i-n/3)/float64(n/2-n/3))
		}
		out[i] = v
	}
	return out
}

// Demo builds a complete synthetic record: a 20 s ECG at 250 Hz with its R peaks as ground
// truth, a detector output that misses one beat and jitters the rest, and a one minute FHR
// pair at 4 Hz.
func Demo() *Record {
	const fs = 250.0
	sig, peaks := SynthECG(fs, 72, 0.02, int(20*fs))
	detected := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if i == len(peaks)/2 {
			continue
		}
		detected = append(detected, p+(i%5)-2)
	}
	ref := SynthFHR(4, 240)
	fhr := make([]float64, len(ref))
	for i, v := range ref {
		fhr[i] = v + 3*math.Sin(float64(i)/3)
		if i > 150 && i < 170 {
			fhr[i] += 12
		}
	}
	second, _ := SynthECG(fs, 130, 0.01, len(sig))
	return &Record{
		SampleID:     "demo",
		FS:           fs,
		Signal:       sig,
		Signals:      [][]float64{sig, second},
		Labels:       []string{"Maternal", "Fetal"},
		Annotations:  detected,
		GroundTruth:  peaks,
		FHR:          fhr,
		ReferenceFHR: ref,
		FHRFS:        4,
	}
}
