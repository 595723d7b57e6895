// Package quantize models ideal uniform quantization of a sampled signal
// at a given bit depth, the resulting quantization error, and its effect
// on signal-to-noise ratio.
package quantize

import (
	"fmt"
	"math"
)

// Quantization SNR improves by ~6.02 dB per bit for a full-scale sine,
// plus a fixed 1.76 dB offset.
const (
	snrPerBitDB = 6.02
	snrOffsetDB = 1.76
	maxBitDepth = 30
	defaultVref = 1.0
)

// Config describes the quantizer: the number of bits and the full-scale
// reference voltage. Input outside [-ReferenceVoltage, +ReferenceVoltage]
// clips. A zero ReferenceVoltage selects full scale of 1.
type Config struct {
	BitDepth         int
	ReferenceVoltage float64
}

func (c Config) validate() (Config, error) {
	if c.BitDepth < 1 || c.BitDepth > maxBitDepth {
		return c, fmt.Errorf("quantize: bit depth must be in [1, %d]: %d", maxBitDepth, c.BitDepth)
	}
	if c.ReferenceVoltage == 0 {
		c.ReferenceVoltage = defaultVref
	}
	if c.ReferenceVoltage < 0 || math.IsNaN(c.ReferenceVoltage) || math.IsInf(c.ReferenceVoltage, 0) {
		return c, fmt.Errorf("quantize: reference voltage must be > 0 and finite: %f", c.ReferenceVoltage)
	}
	return c, nil
}

// Levels returns the number of quantization levels 2^BitDepth.
func (c Config) Levels() int {
	return 1 << uint(c.BitDepth)
}

// LSB returns the quantization step: the full range 2*ReferenceVoltage
// divided by the number of levels.
func (c Config) LSB() float64 {
	vref := c.ReferenceVoltage
	if vref == 0 {
		vref = defaultVref
	}
	return 2 * vref / float64(c.Levels())
}

// Quantize clips the signal to the reference range and rounds each sample
// to the nearest quantization level. It returns the quantized signal and
// the error signal (original minus quantized), both newly allocated.
//
// For in-range samples the error magnitude never exceeds LSB/2.
func Quantize(signal []float64, cfg Config) (quantized, errSignal []float64, err error) {
	cfg, err = cfg.validate()
	if err != nil {
		return nil, nil, err
	}
	if len(signal) == 0 {
		return nil, nil, fmt.Errorf("quantize: signal must not be empty")
	}

	lsb := cfg.LSB()
	vref := cfg.ReferenceVoltage
	// The top code is one LSB below +vref: 2^bits levels span [-vref, +vref).
	top := vref - lsb

	quantized = make([]float64, len(signal))
	errSignal = make([]float64, len(signal))
	for i, x := range signal {
		clipped := x
		if clipped > vref {
			clipped = vref
		} else if clipped < -vref {
			clipped = -vref
		}

		q := math.Round(clipped/lsb) * lsb
		if q > top {
			q = top
		}

		quantized[i] = q
		errSignal[i] = x - q
	}

	return quantized, errSignal, nil
}

// TheoreticalSNR returns the ideal quantization SNR for a full-scale
// sinusoid: 6.02*bits + 1.76 dB.
func TheoreticalSNR(bits int) (float64, error) {
	if bits < 1 || bits > maxBitDepth {
		return 0, fmt.Errorf("quantize: bit depth must be in [1, %d]: %d", maxBitDepth, bits)
	}
	return snrPerBitDB*float64(bits) + snrOffsetDB, nil
}

// MeasuredSNR computes the ratio of signal power to quantization error
// power in dB. A zero-error signal returns +Inf.
func MeasuredSNR(original, quantized []float64) (float64, error) {
	if len(original) == 0 {
		return 0, fmt.Errorf("quantize: signal must not be empty")
	}
	if len(original) != len(quantized) {
		return 0, fmt.Errorf("quantize: length mismatch: %d != %d", len(original), len(quantized))
	}

	var signalPower, noisePower float64
	for i, x := range original {
		e := x - quantized[i]
		signalPower += x * x
		noisePower += e * e
	}
	if signalPower == 0 {
		return 0, fmt.Errorf("quantize: signal power is zero")
	}
	if noisePower == 0 {
		return math.Inf(1), nil
	}

	return 10 * math.Log10(signalPower/noisePower), nil
}

// AutoScale quantizes with a midrise characteristic scaled to the signal's
// own peak, the way an ADC driven at full scale behaves: the peak maps to
// the top code 2^(bits-1)-1.
func AutoScale(signal []float64, bits int) ([]float64, error) {
	if bits < 2 || bits > maxBitDepth {
		return nil, fmt.Errorf("quantize: bit depth must be in [2, %d]: %d", maxBitDepth, bits)
	}
	if len(signal) == 0 {
		return nil, fmt.Errorf("quantize: signal must not be empty")
	}

	peak := 0.0
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return nil, fmt.Errorf("quantize: signal power is zero")
	}

	scale := float64(int(1)<<uint(bits-1)) - 1
	out := make([]float64, len(signal))
	for i, x := range signal {
		out[i] = math.Round(x/peak*scale) / scale * peak
	}

	return out, nil
}
