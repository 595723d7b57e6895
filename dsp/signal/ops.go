package signal

import (
	"fmt"
	"math"
)

// Normalize scales data to the target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// Clip limits each sample to [lo, hi] and returns a new slice.
func Clip(data []float64, lo, hi float64) ([]float64, error) {
	if lo > hi {
		return nil, fmt.Errorf("signal: clip bounds inverted: %f > %f", lo, hi)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: clip input must not be empty")
	}

	out := make([]float64, len(data))
	for i, v := range data {
		switch {
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out, nil
}

// RemoveDC subtracts the mean value and returns a new slice.
func RemoveDC(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: remove-dc input must not be empty")
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out, nil
}

// Add sums two or more equal-length signals into a new slice.
func Add(signals ...[]float64) ([]float64, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("signal: add requires at least one input")
	}
	n := len(signals[0])
	if n == 0 {
		return nil, fmt.Errorf("signal: add inputs must not be empty")
	}
	for i, s := range signals {
		if len(s) != n {
			return nil, fmt.Errorf("signal: add length mismatch at input %d: %d != %d", i, len(s), n)
		}
	}

	out := make([]float64, n)
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out, nil
}

// Scale multiplies each sample by factor and returns a new slice.
func Scale(data []float64, factor float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v * factor
	}
	return out
}
