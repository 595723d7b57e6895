package pass

import (
	"math"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/biquad"
)

// Chebyshev1LP designs a lowpass Chebyshev Type I cascade with rippleDB of
// equiripple in the passband and a steeper rolloff than Butterworth of the
// same order. Non-positive ripple selects 1 dB. Returns nil for invalid
// parameters.
//
// The gain at the cutoff is -rippleDB. Even orders have a ripple trough at
// DC, so the DC gain also sits rippleDB below unity; odd orders have unity
// DC gain.
func Chebyshev1LP(freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	wc, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}
	if rippleDB <= 0 {
		rippleDB = 1
	}
	sinhMu, coshMu := cheby1PoleFactors(order, rippleDB)

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := 0; i < order/2; i++ {
		theta := float64(2*i+1) * math.Pi / (2 * float64(order))
		sections = append(sections, polePairLP(wc, sinhMu*math.Sin(theta), coshMu*math.Cos(theta)))
	}
	if order%2 != 0 {
		// The real pole sits at -sinh(mu) on the prototype axis.
		sections = append(sections, realPoleLP(wc, sinhMu))
	} else {
		sections[0] = scaleForward(sections[0], math.Pow(10, -rippleDB/20))
	}
	return sections
}

// Chebyshev1HP designs a highpass Chebyshev Type I cascade with rippleDB
// of equiripple in the passband. Non-positive ripple selects 1 dB. Returns
// nil for invalid parameters.
//
// The gain at the cutoff is -rippleDB. Even orders have a ripple trough at
// Nyquist; odd orders have unity Nyquist gain.
func Chebyshev1HP(freq float64, order int, rippleDB, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	wc, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}
	if rippleDB <= 0 {
		rippleDB = 1
	}
	sinhMu, coshMu := cheby1PoleFactors(order, rippleDB)

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := 0; i < order/2; i++ {
		theta := float64(2*i+1) * math.Pi / (2 * float64(order))
		sections = append(sections, polePairHP(wc, sinhMu*math.Sin(theta), coshMu*math.Cos(theta)))
	}
	if order%2 != 0 {
		sections = append(sections, realPoleHP(wc, sinhMu))
	} else {
		sections[0] = scaleForward(sections[0], math.Pow(10, -rippleDB/20))
	}
	return sections
}
