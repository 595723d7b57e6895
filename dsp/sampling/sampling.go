// Package sampling evaluates Nyquist criteria and aliasing for chosen sample
// rates, and reconstructs an approximate continuous signal from samples.
package sampling

import (
	"fmt"
	"math"
)

// Analysis describes how a continuous-model frequency behaves when sampled
// at a given rate.
type Analysis struct {
	Frequency      float64 // input frequency in Hz
	SampleRate     float64 // chosen sample rate in Hz
	Nyquist        float64 // sampleRate / 2
	Aliased        bool    // true when Frequency > Nyquist
	AliasFrequency float64 // apparent frequency after sampling, in [0, Nyquist]
}

// Nyquist returns the Nyquist frequency sampleRate/2.
func Nyquist(sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("sampling: sample rate must be > 0 and finite: %f", sampleRate)
	}
	return sampleRate / 2, nil
}

// Alias returns the apparent frequency of freqHz after sampling at
// sampleRate: |f - round(f/fs)*fs|, which folds any input into [0, fs/2].
// Frequencies at or below Nyquist are returned unchanged.
func Alias(freqHz, sampleRate float64) (float64, error) {
	if _, err := Nyquist(sampleRate); err != nil {
		return 0, err
	}
	if math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return 0, fmt.Errorf("sampling: frequency must be finite: %f", freqHz)
	}

	f := math.Abs(freqHz)
	return math.Abs(f - math.Round(f/sampleRate)*sampleRate), nil
}

// Evaluate reports whether sampling freqHz at sampleRate aliases, and the
// apparent frequency either way.
func Evaluate(freqHz, sampleRate float64) (Analysis, error) {
	nyq, err := Nyquist(sampleRate)
	if err != nil {
		return Analysis{}, err
	}
	alias, err := Alias(freqHz, sampleRate)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Frequency:      freqHz,
		SampleRate:     sampleRate,
		Nyquist:        nyq,
		Aliased:        math.Abs(freqHz) > nyq,
		AliasFrequency: alias,
	}, nil
}
