// Package metrics computes spectral quality metrics of a sampled signal:
// SNR, THD, SINAD, SFDR and ENOB, all derived from a one-sided power
// spectrum around a single fundamental tone.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/spectrum"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/window"
)

const (
	defaultMaxHarmonics = 10
	harmonicCaptureBins = 1
	enobPerBitDB        = 6.02
	enobOffsetDB        = 1.76
)

// ErrNoFundamental reports that the spectrum carries no usable tone.
var ErrNoFundamental = errors.New("metrics: no fundamental component found")

// Config holds analysis parameters.
//
// FundamentalFreq pins the fundamental to a known frequency; zero lets the
// analysis pick the strongest non-DC bin. CaptureBins widens the band
// attributed to the fundamental on each side; zero derives it from the
// analysis window's main lobe. The zero Window value selects Hann, which
// keeps leakage out of the noise estimate for non-coherent tones.
type Config struct {
	SampleRate      float64
	FFTSize         int
	FundamentalFreq float64
	CaptureBins     int
	MaxHarmonics    int
	Window          window.Type
}

// Result holds the measured metrics. SNR, THD, SINAD and SFDR are in dB,
// ENOB in bits. THD is negative for distortion below the fundamental.
// Power fields are raw spectral sums, useful for diagnostics.
type Result struct {
	FundamentalFreq float64
	FundamentalBin  int

	SignalPower   float64
	NoisePower    float64
	HarmonicPower float64
	HarmonicFreqs []float64

	SNR   float64
	THD   float64
	SINAD float64
	SFDR  float64
	ENOB  float64
}

// Calculator performs metric analysis with a fixed configuration.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator, applying config defaults.
func NewCalculator(cfg Config) *Calculator {
	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}
	if cfg.Window == window.TypeRectangular {
		cfg.Window = window.TypeHann
	}
	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = window.CaptureBins(cfg.Window)
	}
	return &Calculator{cfg: cfg}
}

// AnalyzeSignal is a one-shot analysis of a time-domain signal.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	return NewCalculator(cfg).AnalyzeSignal(signal)
}

// AnalyzeSignal windows and transforms the signal, then measures the
// metrics on its power spectrum.
func (c *Calculator) AnalyzeSignal(signal []float64) (Result, error) {
	if len(signal) < 4 {
		return Result{}, fmt.Errorf("metrics: signal must have at least 4 samples: %d", len(signal))
	}

	sp, err := spectrum.Analyze(signal, spectrum.Config{
		SampleRate: c.cfg.SampleRate,
		Window:     c.cfg.Window,
		FFTSize:    c.cfg.FFTSize,
	})
	if err != nil {
		return Result{}, err
	}

	return c.FromSpectrum(sp)
}

// FromSpectrum measures the metrics on an already computed spectrum.
func (c *Calculator) FromSpectrum(sp *spectrum.Spectrum) (Result, error) {
	power := sp.PowerRaw()
	maxBin := len(power) - 1
	if maxBin < 2 {
		return Result{}, fmt.Errorf("metrics: spectrum too short: %d bins", len(power))
	}

	capture := c.cfg.CaptureBins

	// Leakage from any DC offset spreads over the window main lobe, so
	// the guard band below mirrors the fundamental capture width.
	dcGuard := capture

	fundBin, err := c.findFundamental(sp, power, dcGuard+1, maxBin)
	if err != nil {
		return Result{}, err
	}

	signalPower, fundPeak := bandPower(power, fundBin, capture)
	if signalPower <= 0 {
		return Result{}, ErrNoFundamental
	}

	// Harmonics sit at integer multiples of the fundamental bin. A
	// narrower capture suffices: distortion products are coherent with
	// the fundamental, so their leakage is equally narrow.
	harmonicPower := 0.0
	var harmonicFreqs []float64
	inHarmonic := make(map[int]bool)
	for k := 2; k <= c.cfg.MaxHarmonics+1; k++ {
		bin := k * fundBin
		if bin > maxBin {
			break
		}
		p, _ := bandPower(power, bin, harmonicCaptureBins)
		harmonicPower += p
		harmonicFreqs = append(harmonicFreqs, float64(bin)*sp.Resolution())
		for b := bin - harmonicCaptureBins; b <= bin+harmonicCaptureBins; b++ {
			inHarmonic[b] = true
		}
	}

	noisePower := 0.0
	spurPeak := 0.0
	for i := dcGuard + 1; i <= maxBin; i++ {
		if i >= fundBin-capture && i <= fundBin+capture {
			continue
		}
		if p := power[i]; p > spurPeak {
			spurPeak = p
		}
		if !inHarmonic[i] {
			noisePower += power[i]
		}
	}

	res := Result{
		FundamentalFreq: float64(fundBin) * sp.Resolution(),
		FundamentalBin:  fundBin,
		SignalPower:     signalPower,
		NoisePower:      noisePower,
		HarmonicPower:   harmonicPower,
		HarmonicFreqs:   harmonicFreqs,
	}

	res.SNR = powerRatioDB(signalPower, noisePower)
	res.THD = -powerRatioDB(signalPower, harmonicPower)
	res.SINAD = powerRatioDB(signalPower, noisePower+harmonicPower)
	res.SFDR = powerRatioDB(fundPeak, spurPeak)
	res.ENOB = (res.SINAD - enobOffsetDB) / enobPerBitDB

	return res, nil
}

// findFundamental locates the fundamental bin: pinned by configuration or
// the strongest bin outside the DC guard.
func (c *Calculator) findFundamental(sp *spectrum.Spectrum, power []float64, lowBin, maxBin int) (int, error) {
	if c.cfg.FundamentalFreq > 0 {
		// Deliberately not BinFor, which clamps out-of-range frequencies.
		bin := int(math.Round(c.cfg.FundamentalFreq / sp.Resolution()))
		if bin < lowBin || bin > maxBin {
			return 0, fmt.Errorf("metrics: fundamental %g Hz outside measurable range", c.cfg.FundamentalFreq)
		}
		return bin, nil
	}

	best := -1
	bestVal := 0.0
	for i := lowBin; i <= maxBin; i++ {
		if power[i] > bestVal {
			bestVal = power[i]
			best = i
		}
	}
	if best < 0 {
		return 0, ErrNoFundamental
	}
	return best, nil
}

// bandPower sums power in [bin-capture, bin+capture] clamped to the valid
// range, and returns the peak single-bin power in that band.
func bandPower(power []float64, bin, capture int) (sum, peak float64) {
	lo := bin - capture
	if lo < 0 {
		lo = 0
	}
	hi := bin + capture
	if hi > len(power)-1 {
		hi = len(power) - 1
	}
	for i := lo; i <= hi; i++ {
		sum += power[i]
		if power[i] > peak {
			peak = power[i]
		}
	}
	return sum, peak
}

// powerRatioDB returns 10*log10(num/den), +Inf for a zero denominator.
func powerRatioDB(num, den float64) float64 {
	if den <= 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(num/den)
}
