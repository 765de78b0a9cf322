package record

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeCSVWithHeader(t *testing.T) {
	in := "# exported\nlead1, lead2\n0.1,1\n0.2,2\n0.3,3\n"
	rec, err := DecodeCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rec.Labels) != 2 || rec.Labels[0] != "lead1" || rec.Labels[1] != "lead2" {
		t.Fatalf("labels: %v", rec.Labels)
	}
	if len(rec.Signals) != 2 || len(rec.Signals[1]) != 3 || rec.Signals[1][2] != 3 {
		t.Fatalf("signals: %v", rec.Signals)
	}
	if rec.Signal[0] != 0.1 {
		t.Fatalf("signal: %v", rec.Signal)
	}
}

func TestDecodeCSVWithoutHeader(t *testing.T) {
	rec, err := DecodeCSV(strings.NewReader("1\n2\n3\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Labels != nil {
		t.Fatalf("unexpected labels %v", rec.Labels)
	}
	if len(rec.Signal) != 3 {
		t.Fatalf("signal: %v", rec.Signal)
	}
}

func TestDecodeCSVBadValue(t *testing.T) {
	if _, err := DecodeCSV(strings.NewReader("a,b\n1,2\n3,x\n")); err == nil {
		t.Fatalf("expected error for non-numeric cell")
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	if _, err := DecodeJSON(strings.NewReader(`{"fs":250,"bogus":1}`)); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadJSONNormalizes(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rec1.json")
	body := `{"fs":250,"signal":[1,2,3,4],"annotations":[3,1],"ground_truth":[0,2]}`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	rec, err := Load(p, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.SampleID != "rec1" {
		t.Fatalf("sample id %q", rec.SampleID)
	}
	if rec.Annotations[0] != 1 || rec.Annotations[1] != 3 {
		t.Fatalf("annotations not sorted: %v", rec.Annotations)
	}
	if len(rec.Signals) != 1 || len(rec.Signals[0]) != 4 {
		t.Fatalf("signals not filled: %v", rec.Signals)
	}
	if rec.FHRFS != 250 {
		t.Fatalf("fhr fs default: %v", rec.FHRFS)
	}
}

func TestLoadCSVNeedsFS(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sig.csv")
	if err := os.WriteFile(p, []byte("1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p, 0); !errors.Is(err, ErrNoSamplingFrequency) {
		t.Fatalf("expected ErrNoSamplingFrequency, got %v", err)
	}
	rec, err := Load(p, 500)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.FS != 500 {
		t.Fatalf("fs %v", rec.FS)
	}
}

func TestLoadUnsupported(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sig.txt")
	if err := os.WriteFile(p, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p, 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "demo.json")
	want := Demo()
	if err := want.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(p, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.FS != want.FS || len(got.Signal) != len(want.Signal) || len(got.GroundTruth) != len(want.GroundTruth) {
		t.Fatalf("round trip mismatch")
	}
	if got.FHRFS != 4 {
		t.Fatalf("fhr fs %v", got.FHRFS)
	}
}

func TestSynthECGPeaks(t *testing.T) {
	const fs = 250.0
	sig, peaks := SynthECG(fs, 60, 0, int(10*fs))
	if len(sig) != 2500 {
		t.Fatalf("len %d", len(sig))
	}
	// one beat per second at 60 bpm
	if len(peaks) < 9 || len(peaks) > 10 {
		t.Fatalf("peaks %d: %v", len(peaks), peaks)
	}
	for i := 1; i < len(peaks); i++ {
		d := peaks[i] - peaks[i-1]
		if d < 248 || d > 252 {
			t.Fatalf("rr interval %d at %d", d, i)
		}
	}
	// the R wave is the largest deflection of the cycle
	p := peaks[1]
	for j := p - 50; j < p+50; j++ {
		if sig[j] > sig[p]+0.2 {
			t.Fatalf("sample %d (%v) above R peak %d (%v)", j, sig[j], p, sig[p])
		}
	}
}

func TestDemoIsConsistent(t *testing.T) {
	rec := Demo()
	if err := rec.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(rec.Annotations) != len(rec.GroundTruth)-1 {
		t.Fatalf("detected %d, truth %d", len(rec.Annotations), len(rec.GroundTruth))
	}
	if len(rec.FHR) != len(rec.ReferenceFHR) {
		t.Fatalf("fhr lengths differ")
	}
	if len(rec.Signals) != len(rec.Labels) {
		t.Fatalf("labels %d signals %d", len(rec.Labels), len(rec.Signals))
	}
}
