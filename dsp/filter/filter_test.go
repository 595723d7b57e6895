package filter

import (
	"math"
	"testing"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/core"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/signal"
)

const sampleRate = 48000.0

func TestValidate(t *testing.T) {
	valid := Spec{Family: Butterworth, Kind: Lowpass, Order: 4, Cutoff: 1000, SampleRate: sampleRate}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}

	cases := []struct {
		name string
		mod  func(*Spec)
	}{
		{"zero order", func(s *Spec) { s.Order = 0 }},
		{"negative order", func(s *Spec) { s.Order = -2 }},
		{"zero cutoff", func(s *Spec) { s.Cutoff = 0 }},
		{"cutoff at nyquist", func(s *Spec) { s.Cutoff = sampleRate / 2 }},
		{"cutoff above nyquist", func(s *Spec) { s.Cutoff = sampleRate }},
		{"zero sample rate", func(s *Spec) { s.SampleRate = 0 }},
		{"nan cutoff", func(s *Spec) { s.Cutoff = math.NaN() }},
		{"cutoff high on lowpass", func(s *Spec) { s.CutoffHigh = 2000 }},
		{"bessel order too high", func(s *Spec) { s.Family = Bessel; s.Order = 11 }},
		{"unknown family", func(s *Spec) { s.Family = Family(99) }},
		{"unknown kind", func(s *Spec) { s.Kind = Kind(99) }},
		{"bandpass without upper edge", func(s *Spec) { s.Kind = Bandpass }},
		{"bandpass descending edges", func(s *Spec) { s.Kind = Bandpass; s.Cutoff = 2000; s.CutoffHigh = 1000 }},
		{"bandpass equal edges", func(s *Spec) { s.Kind = Bandpass; s.CutoffHigh = s.Cutoff }},
		{"notch upper edge at nyquist", func(s *Spec) { s.Kind = Notch; s.CutoffHigh = sampleRate / 2 }},
	}
	for _, tt := range cases {
		s := valid
		tt.mod(&s)
		if err := s.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestDesignButterworthCutoff(t *testing.T) {
	chain, err := Design(Spec{Family: Butterworth, Kind: Lowpass, Order: 4, Cutoff: 1000, SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}
	if chain.NumSections() != 2 {
		t.Fatalf("NumSections() = %d, want 2", chain.NumSections())
	}
	if db := chain.MagnitudeDB(1000, sampleRate); math.Abs(db+3.01) > 0.1 {
		t.Fatalf("cutoff gain = %v dB, want ~-3", db)
	}
	if db := chain.MagnitudeDB(10, sampleRate); math.Abs(db) > 0.01 {
		t.Fatalf("DC gain = %v dB, want ~0", db)
	}
}

func TestDesignAllFamiliesAndKinds(t *testing.T) {
	for _, family := range []Family{Butterworth, Chebyshev, Bessel} {
		for _, kind := range []Kind{Lowpass, Highpass} {
			s := Spec{Family: family, Kind: kind, Order: 4, Cutoff: 1000, SampleRate: sampleRate}
			if _, err := Design(s); err != nil {
				t.Errorf("%s %s: Design() error = %v", family, kind, err)
			}
		}
		s := Spec{Family: family, Kind: Bandpass, Order: 2, Cutoff: 500, CutoffHigh: 2000, SampleRate: sampleRate}
		if _, err := Design(s); err != nil {
			t.Errorf("%s bandpass: Design() error = %v", family, err)
		}
	}
}

func TestDesignBandpass(t *testing.T) {
	chain, err := Design(Spec{
		Family: Butterworth, Kind: Bandpass, Order: 2,
		Cutoff: 500, CutoffHigh: 2000, SampleRate: sampleRate,
	})
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	center := chain.MagnitudeDB(1000, sampleRate)
	if center < -1.5 {
		t.Fatalf("center gain = %v dB, want near 0", center)
	}
	if db := chain.MagnitudeDB(50, sampleRate); db > -20 {
		t.Fatalf("low stopband = %v dB, want < -20", db)
	}
	if db := chain.MagnitudeDB(20000, sampleRate); db > -20 {
		t.Fatalf("high stopband = %v dB, want < -20", db)
	}
}

func TestDesignNotch(t *testing.T) {
	chain, err := Design(Spec{
		Family: Butterworth, Kind: Notch, Order: 2,
		Cutoff: 900, CutoffHigh: 1100, SampleRate: sampleRate,
	})
	if err != nil {
		t.Fatalf("Design() error = %v", err)
	}

	center := math.Sqrt(900.0 * 1100.0)
	if db := chain.MagnitudeDB(center, sampleRate); db > -40 {
		t.Fatalf("notch depth = %v dB, want deep rejection", db)
	}
	for _, f := range []float64{100, 400, 5000, 15000} {
		if db := chain.MagnitudeDB(f, sampleRate); math.Abs(db) > 0.5 {
			t.Errorf("passband gain at %v Hz = %v dB, want ~0", f, db)
		}
	}
}

func TestApplyRemovesHighTone(t *testing.T) {
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	low, err := g.Sine(100, 1, 0, 4800)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	high, err := g.Sine(8000, 1, 0, 4800)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	mixed, err := signal.Add(low, high)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	out, err := Apply(Spec{Family: Butterworth, Kind: Lowpass, Order: 6, Cutoff: 1000, SampleRate: sampleRate}, mixed)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(out) != len(mixed) {
		t.Fatalf("len = %d, want %d", len(out), len(mixed))
	}

	// Measure tone amplitudes past the transient, over a whole number of
	// periods of both tones so leakage does not bias the estimate. The
	// quadrature projection is phase-insensitive, so group delay does
	// not matter.
	if a := toneAmplitude(out[1200:4560], 100, sampleRate); a < 0.9 || a > 1.05 {
		t.Fatalf("passband tone amplitude = %v, want ~1", a)
	}
	if a := toneAmplitude(out[1200:4560], 8000, sampleRate); a > 0.01 {
		t.Fatalf("stopband tone amplitude = %v, want ~0", a)
	}
}

// toneAmplitude estimates the amplitude of a single tone by projecting the
// signal onto quadrature carriers.
func toneAmplitude(x []float64, freq, rate float64) float64 {
	var sinSum, cosSum float64
	for i, v := range x {
		phase := 2 * math.Pi * freq * float64(i) / rate
		sinSum += v * math.Sin(phase)
		cosSum += v * math.Cos(phase)
	}
	n := float64(len(x))
	return 2 / n * math.Hypot(sinSum, cosSum)
}

func TestApplyIdempotence(t *testing.T) {
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	low, _ := g.Sine(100, 1, 0, 4800)
	high, _ := g.Sine(8000, 0.5, 0, 4800)
	mixed, err := signal.Add(low, high)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	spec := Spec{Family: Butterworth, Kind: Lowpass, Order: 4, Cutoff: 1000, SampleRate: sampleRate}
	once, err := Apply(spec, mixed)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	twice, err := Apply(spec, once)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// The first pass strips the high tone. The second pass sees only
	// passband content and leaves the tone amplitudes unchanged.
	a1 := toneAmplitude(once[1200:4560], 100, sampleRate)
	a2 := toneAmplitude(twice[1200:4560], 100, sampleRate)
	if math.Abs(a2-a1) > 0.01 {
		t.Fatalf("passband amplitude changed on second pass: %v -> %v", a1, a2)
	}
	if h := toneAmplitude(twice[1200:4560], 8000, sampleRate); h > 0.005 {
		t.Fatalf("stopband amplitude after two passes = %v, want ~0", h)
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	in := []float64{1, 0.5, -0.5, -1, 0, 0.25}
	orig := append([]float64(nil), in...)

	spec := Spec{Family: Butterworth, Kind: Lowpass, Order: 2, Cutoff: 1000, SampleRate: sampleRate}
	if _, err := Apply(spec, in); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	for i := range in {
		if in[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}

	if _, err := Apply(spec, nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseFamilyAndKind(t *testing.T) {
	if f, err := ParseFamily("Butterworth"); err != nil || f != Butterworth {
		t.Fatalf("ParseFamily = %v, %v", f, err)
	}
	if f, err := ParseFamily("cheby"); err != nil || f != Chebyshev {
		t.Fatalf("ParseFamily = %v, %v", f, err)
	}
	if _, err := ParseFamily("elliptic"); err == nil {
		t.Fatal("expected error for unsupported family")
	}
	if k, err := ParseKind("bandstop"); err != nil || k != Notch {
		t.Fatalf("ParseKind = %v, %v", k, err)
	}
	if _, err := ParseKind("allpass"); err == nil {
		t.Fatal("expected error for unsupported kind")
	}
}
