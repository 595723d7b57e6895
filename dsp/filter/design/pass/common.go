// Package pass designs classical lowpass and highpass cascades as
// second-order section chains.
package pass

import (
	"math"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/biquad"
)

// bilinearK computes the bilinear transform frequency warping factor
// tan(pi*freq/sampleRate). Returns (0, false) if parameters are invalid.
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2 // default Q
	}

	return 1 / (2 * s)
}

// firstOrderLP designs a first-order lowpass section from the unit
// Butterworth pole, used to close odd-order cascades.
func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return realPoleLP(k, 1)
}

// firstOrderHP designs a first-order highpass section from the unit
// Butterworth pole, used to close odd-order cascades.
func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	return realPoleHP(k, 1)
}

// polePairLP maps an analog conjugate pole pair to a lowpass biquad via
// the bilinear transform. sigma and omega are the pole's real and
// imaginary magnitudes (positive) on the normalized prototype axis, wc the
// pre-warped cutoff. DC gain is normalized to unity.
func polePairLP(wc, sigma, omega float64) biquad.Coefficients {
	a := sigma * wc
	b := omega * wc
	p2 := a*a + b*b

	a0 := 1 + 2*a + p2
	return biquad.Coefficients{
		B0: p2 / a0,
		B1: 2 * p2 / a0,
		B2: p2 / a0,
		A1: (-2 + 2*p2) / a0,
		A2: (1 - 2*a + p2) / a0,
	}
}

// realPoleLP maps a real analog pole to a first-order lowpass section with
// unity DC gain.
func realPoleLP(wc, sigma float64) biquad.Coefficients {
	sp := sigma * wc
	norm := 1 / (1 + sp)

	return biquad.Coefficients{
		B0: sp * norm,
		B1: sp * norm,
		A1: (sp - 1) * norm,
	}
}

// polePairHP maps an analog conjugate pole pair to a highpass biquad via
// the lowpass-to-highpass transformation s -> wc/s. Nyquist gain is
// normalized to unity.
func polePairHP(wc, sigma, omega float64) biquad.Coefficients {
	p2 := sigma*sigma + omega*omega
	wc2 := wc * wc

	a0 := wc2 + 2*sigma*wc + p2
	return biquad.Coefficients{
		B0: p2 / a0,
		B1: -2 * p2 / a0,
		B2: p2 / a0,
		A1: (2*wc2 - 2*p2) / a0,
		A2: (wc2 - 2*sigma*wc + p2) / a0,
	}
}

// realPoleHP maps a real analog pole to a first-order highpass section
// with unity Nyquist gain.
func realPoleHP(wc, sigma float64) biquad.Coefficients {
	norm := 1 / (wc + sigma)

	return biquad.Coefficients{
		B0: sigma * norm,
		B1: -sigma * norm,
		A1: (wc - sigma) * norm,
	}
}

// scaleForward multiplies the feedforward coefficients by g, applying an
// overall gain to the section.
func scaleForward(c biquad.Coefficients, g float64) biquad.Coefficients {
	c.B0 *= g
	c.B1 *= g
	c.B2 *= g
	return c
}

// cheby1PoleFactors returns sinh(mu) and cosh(mu) for mu = asinh(1/eps)/order,
// where eps = sqrt(10^(rippleDB/10) - 1) is the ripple factor. The analog
// prototype poles lie at -sinh(mu)*sin(theta) +/- j*cosh(mu)*cos(theta).
func cheby1PoleFactors(order int, rippleDB float64) (float64, float64) {
	eps := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	mu := math.Asinh(1/eps) / float64(order)

	return math.Sinh(mu), math.Cosh(mu)
}
