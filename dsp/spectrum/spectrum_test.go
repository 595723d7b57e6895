package spectrum

import (
	"math"
	"testing"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/core"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/signal"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/window"
)

func sine(t *testing.T, freq, amp, sampleRate float64, samples int) []float64 {
	t.Helper()
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	s, err := g.Sine(freq, amp, 0, samples)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	return s
}

func TestPeakBinPowerOfTwo(t *testing.T) {
	// 128 Hz at 1024 Hz over one second lands exactly on bin 128.
	s := sine(t, 128, 1, 1024, 1024)

	sp, err := Analyze(s, Config{SampleRate: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if sp.FFTSize != 1024 {
		t.Fatalf("FFTSize = %d, want 1024", sp.FFTSize)
	}
	if got := sp.PeakBin(); got != 128 {
		t.Fatalf("PeakBin() = %d, want 128", got)
	}
	if got := sp.Resolution(); got != 1 {
		t.Fatalf("Resolution() = %v, want 1", got)
	}

	mag := sp.Magnitude()
	if math.Abs(mag[128]-1) > 1e-9 {
		t.Fatalf("peak magnitude = %v, want ~1", mag[128])
	}
}

func TestPeakBinDirectDFT(t *testing.T) {
	// fs=8000, N=8000: not a power of two, exercises the direct DFT path.
	// A 1000 Hz tone must land on bin 1000 with 1 Hz resolution.
	s := sine(t, 1000, 1, 8000, 8000)

	sp, err := Analyze(s, Config{SampleRate: 8000})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := sp.Resolution(); got != 1 {
		t.Fatalf("Resolution() = %v, want 1", got)
	}
	if got := sp.PeakBin(); got != 1000 {
		t.Fatalf("PeakBin() = %d, want 1000", got)
	}
	if got := sp.PeakFrequency(); math.Abs(got-1000) > 1 {
		t.Fatalf("PeakFrequency() = %v, want 1000 within one bin", got)
	}

	mag := sp.Magnitude()
	if math.Abs(mag[1000]-1) > 1e-6 {
		t.Fatalf("peak magnitude = %v, want ~1", mag[1000])
	}
}

func TestDirectDFTMatchesFFT(t *testing.T) {
	s := sine(t, 100, 0.8, 1024, 1024)

	in := make([]complex128, len(s))
	for i, v := range s {
		in[i] = complex(v, 0)
	}
	direct := directDFT(in, len(s))

	sp, err := Analyze(s, Config{SampleRate: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(direct) != len(sp.Bins) {
		t.Fatalf("bin count mismatch: %d != %d", len(direct), len(sp.Bins))
	}
	for i := range direct {
		dr := math.Abs(real(direct[i]) - real(sp.Bins[i]))
		di := math.Abs(imag(direct[i]) - imag(sp.Bins[i]))
		if dr > 1e-6 || di > 1e-6 {
			t.Fatalf("bin %d: direct %v, fft %v", i, direct[i], sp.Bins[i])
		}
	}
}

func TestHannWindowAmplitudeCompensation(t *testing.T) {
	s := sine(t, 64, 0.5, 1024, 1024)

	sp, err := Analyze(s, Config{SampleRate: 1024, Window: window.TypeHann})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := sp.PeakBin(); got != 64 {
		t.Fatalf("PeakBin() = %d, want 64", got)
	}
	mag := sp.Magnitude()
	if math.Abs(mag[64]-0.5) > 1e-2 {
		t.Fatalf("windowed peak magnitude = %v, want ~0.5", mag[64])
	}
}

func TestPhasePrincipalValue(t *testing.T) {
	g := signal.NewGenerator(core.WithSampleRate(1024))
	cos, err := g.Cosine(64, 1, 0, 1024)
	if err != nil {
		t.Fatalf("Cosine() error = %v", err)
	}

	sp, err := Analyze(cos, Config{SampleRate: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	phase := sp.Phase()
	if math.Abs(phase[64]) > 1e-6 {
		t.Fatalf("cosine phase at peak = %v, want ~0", phase[64])
	}

	sin := sine(t, 64, 1, 1024, 1024)
	sp2, err := Analyze(sin, Config{SampleRate: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	phase2 := sp2.Phase()
	if math.Abs(phase2[64]+math.Pi/2) > 1e-6 {
		t.Fatalf("sine phase at peak = %v, want ~-pi/2", phase2[64])
	}

	for i, p := range phase {
		if p > math.Pi || p < -math.Pi {
			t.Fatalf("phase[%d] = %v outside principal range", i, p)
		}
	}
}

func TestPowerNormalization(t *testing.T) {
	s := sine(t, 128, 1, 1024, 1024)
	sp, err := Analyze(s, Config{SampleRate: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	power := sp.Power()
	raw := sp.PowerRaw()
	for i := range power {
		want := raw[i] / float64(sp.FFTSize)
		if math.Abs(power[i]-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("power[%d] = %v, want %v", i, power[i], want)
		}
	}
}

func TestZeroPadding(t *testing.T) {
	s := sine(t, 100, 1, 1000, 900)
	sp, err := Analyze(s, Config{SampleRate: 1000, FFTSize: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if sp.FFTSize != 1024 {
		t.Fatalf("FFTSize = %d, want 1024", sp.FFTSize)
	}
	wantBin := int(math.Round(100 / sp.Resolution()))
	if got := sp.PeakBin(); got != wantBin {
		t.Fatalf("PeakBin() = %d, want %d", got, wantBin)
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	if _, err := Analyze([]float64{1}, Config{SampleRate: 1000}); err == nil {
		t.Fatal("expected error for single-sample signal")
	}
	if _, err := Analyze([]float64{1, 2, 3}, Config{SampleRate: 0}); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := Analyze([]float64{1, 2, 3, 4}, Config{SampleRate: 1000, FFTSize: 2}); err == nil {
		t.Fatal("expected error for fft size below signal length")
	}
}

func TestBinFor(t *testing.T) {
	s := sine(t, 100, 1, 1000, 1000)
	sp, err := Analyze(s, Config{SampleRate: 1000})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := sp.BinFor(100); got != 100 {
		t.Fatalf("BinFor(100) = %d, want 100", got)
	}
	if got := sp.BinFor(-5); got != 0 {
		t.Fatalf("BinFor(-5) = %d, want 0", got)
	}
	if got := sp.BinFor(1e9); got != sp.BinCount()-1 {
		t.Fatalf("BinFor(large) = %d, want %d", got, sp.BinCount()-1)
	}

	freqs := sp.Frequencies()
	if freqs[0] != 0 || freqs[100] != 100 {
		t.Fatalf("frequency axis wrong: f[0]=%v f[100]=%v", freqs[0], freqs[100])
	}
}
