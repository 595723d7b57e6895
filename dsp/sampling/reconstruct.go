package sampling

import (
	"fmt"
	"math"
)

// Method selects the reconstruction interpolation polynomial.
//
// Reconstruction here is illustrative: a band-limited sinc reconstruction is
// the theoretical ideal, but the tutorials demonstrate the practical
// polynomial approximations instead.
type Method int

const (
	// MethodLinear connects neighboring samples with straight lines.
	MethodLinear Method = iota
	// MethodCubic uses 4-point Hermite interpolation.
	MethodCubic
)

// String returns the lowercase method name.
func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodCubic:
		return "cubic"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Reconstruct resamples the input onto a denser time grid, approximating the
// underlying continuous signal. The output covers the same duration at
// targetRate samples per second.
func Reconstruct(samples []float64, sampleRate, targetRate float64, method Method) ([]float64, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("sampling: reconstruction needs at least 2 samples: %d", len(samples))
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sampling: sample rate must be > 0 and finite: %f", sampleRate)
	}
	if targetRate <= 0 || math.IsNaN(targetRate) || math.IsInf(targetRate, 0) {
		return nil, fmt.Errorf("sampling: target rate must be > 0 and finite: %f", targetRate)
	}
	if method != MethodLinear && method != MethodCubic {
		return nil, fmt.Errorf("sampling: unknown reconstruction method: %d", method)
	}

	duration := float64(len(samples)) / sampleRate
	outLen := int(math.Round(duration * targetRate))
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) / targetRate * sampleRate
		idx := int(math.Floor(pos))
		frac := pos - float64(idx)

		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}

		switch method {
		case MethodCubic:
			xm1 := samples[clampIndex(idx-1, len(samples))]
			x0 := samples[idx]
			x1 := samples[idx+1]
			x2 := samples[clampIndex(idx+2, len(samples))]
			out[i] = hermite4(frac, xm1, x0, x1, x2)
		default:
			out[i] = samples[idx] + frac*(samples[idx+1]-samples[idx])
		}
	}

	return out, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// hermite4 computes cubic 4-point interpolation from x0 to x1 using
// neighbor points xm1 and x2, at fraction t in [0, 1].
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
