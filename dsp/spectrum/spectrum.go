// Package spectrum computes one-sided discrete Fourier spectra of real
// signals and derives amplitude, power and phase views.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/core"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/window"
)

// Config holds analysis parameters.
//
// FFTSize defaults to the signal length. Power-of-two sizes run through an
// FFT plan; any other size falls back to the direct DFT definition, which is
// slower but keeps the bin grid exactly at sampleRate/N.
type Config struct {
	SampleRate float64
	Window     window.Type // zero value is rectangular (no window)
	FFTSize    int
}

// Spectrum is the one-sided spectrum of a real signal: bins 0..N/2 inclusive.
// Bins beyond N/2 of the full transform carry no extra information for real
// input (conjugate symmetry) and are not stored.
type Spectrum struct {
	Bins       []complex128
	FFTSize    int
	SampleRate float64

	// windowSum is the coefficient sum of the applied window, used to
	// normalize magnitudes back to input amplitude.
	windowSum float64
}

// Analyzer computes spectra from a fixed configuration.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze is a one-shot spectral analysis.
func Analyze(signal []float64, cfg Config) (*Spectrum, error) {
	return NewAnalyzer(cfg).Analyze(signal)
}

// Analyze windows the signal, transforms it, and returns its one-sided
// spectrum.
func (a *Analyzer) Analyze(signal []float64) (*Spectrum, error) {
	if len(signal) < 2 {
		return nil, fmt.Errorf("spectrum: signal must have at least 2 samples: %d", len(signal))
	}
	if a.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %f", a.cfg.SampleRate)
	}

	fftSize := a.cfg.FFTSize
	if fftSize <= 0 {
		fftSize = len(signal)
	}
	if fftSize < len(signal) {
		return nil, fmt.Errorf("spectrum: fft size %d smaller than signal length %d", fftSize, len(signal))
	}

	// Periodic form: an on-bin tone stays confined to the main lobe.
	coeffs := window.Generate(a.cfg.Window, len(signal), window.WithPeriodic())
	windowSum := 0.0
	in := make([]complex128, fftSize)
	for i, v := range signal {
		in[i] = complex(v*coeffs[i], 0)
		windowSum += coeffs[i]
	}

	var full []complex128
	if core.IsPowerOfTwo(fftSize) {
		plan, err := algofft.NewPlan64(fftSize)
		if err != nil {
			return nil, fmt.Errorf("spectrum: fft plan for size %d: %w", fftSize, err)
		}
		full = make([]complex128, fftSize)
		if err := plan.Forward(full, in); err != nil {
			return nil, fmt.Errorf("spectrum: fft forward: %w", err)
		}
		full = full[:fftSize/2+1]
	} else {
		full = directDFT(in, fftSize)
	}

	return &Spectrum{
		Bins:       full,
		FFTSize:    fftSize,
		SampleRate: a.cfg.SampleRate,
		windowSum:  windowSum,
	}, nil
}

// BinCount returns the number of one-sided bins (N/2 + 1).
func (s *Spectrum) BinCount() int { return len(s.Bins) }

// Resolution returns the bin spacing sampleRate/N in Hz.
func (s *Spectrum) Resolution() float64 {
	return s.SampleRate / float64(s.FFTSize)
}

// Frequencies returns the frequency axis: bin k maps to k*sampleRate/N.
func (s *Spectrum) Frequencies() []float64 {
	out := make([]float64, len(s.Bins))
	df := s.Resolution()
	for i := range out {
		out[i] = float64(i) * df
	}
	return out
}

// BinFor returns the bin index closest to the given frequency, clamped to
// the valid range.
func (s *Spectrum) BinFor(freqHz float64) int {
	bin := int(math.Round(freqHz / s.Resolution()))
	if bin < 0 {
		return 0
	}
	if bin >= len(s.Bins) {
		return len(s.Bins) - 1
	}
	return bin
}

// Magnitude returns the amplitude spectrum normalized so that a full-scale
// sinusoid of amplitude A shows a peak of ~A, compensating the analysis
// window. DC and Nyquist bins are not doubled.
func (s *Spectrum) Magnitude() []float64 {
	out := rawMagnitude(s.Bins)
	scale := 2 / s.windowSum
	for i := range out {
		if i == 0 || (s.FFTSize%2 == 0 && i == len(out)-1) {
			out[i] *= scale / 2
		} else {
			out[i] *= scale
		}
	}
	return out
}

// Power returns |X[k]|^2 / N for each one-sided bin.
func (s *Spectrum) Power() []float64 {
	out := rawPower(s.Bins)
	inv := 1 / float64(s.FFTSize)
	for i := range out {
		out[i] *= inv
	}
	return out
}

// PowerRaw returns |X[k]|^2 without normalization. Metric computations use
// this form since all metrics are power ratios.
func (s *Spectrum) PowerRaw() []float64 {
	return rawPower(s.Bins)
}

// Phase returns the principal-value phase arg(X[k]) in (-pi, pi] per bin.
func (s *Spectrum) Phase() []float64 {
	out := make([]float64, len(s.Bins))
	for i, c := range s.Bins {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// PeakBin returns the index of the largest-magnitude bin, excluding DC.
func (s *Spectrum) PeakBin() int {
	best := 1
	bestVal := -1.0
	for i := 1; i < len(s.Bins); i++ {
		m := real(s.Bins[i])*real(s.Bins[i]) + imag(s.Bins[i])*imag(s.Bins[i])
		if m > bestVal {
			bestVal = m
			best = i
		}
	}
	return best
}

// PeakFrequency returns the frequency of the largest non-DC bin in Hz.
func (s *Spectrum) PeakFrequency() float64 {
	return float64(s.PeakBin()) * s.Resolution()
}

// rawMagnitude computes |X[k]| using the SIMD magnitude kernel.
func rawMagnitude(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	out := make([]float64, len(bins))
	vecmath.Magnitude(out, re, im)
	return out
}

// rawPower computes |X[k]|^2 using the SIMD power kernel.
func rawPower(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))
	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}
	out := make([]float64, len(bins))
	vecmath.Power(out, re, im)
	return out
}
