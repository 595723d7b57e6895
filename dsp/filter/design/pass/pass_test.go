package pass

import (
	"math"
	"testing"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/biquad"
)

const sampleRate = 48000.0

func magDB(t *testing.T, coeffs []biquad.Coefficients, freq float64) float64 {
	t.Helper()
	if coeffs == nil {
		t.Fatal("design returned nil")
	}
	return biquad.NewChain(coeffs).MagnitudeDB(freq, sampleRate)
}

func TestButterworthLPCutoff(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 6, 8} {
		coeffs := ButterworthLP(1000, order, sampleRate)
		if want := (order + 1) / 2; len(coeffs) != want {
			t.Fatalf("order %d: %d sections, want %d", order, len(coeffs), want)
		}

		if db := magDB(t, coeffs, 10); math.Abs(db) > 0.01 {
			t.Errorf("order %d: DC gain = %v dB, want ~0", order, db)
		}
		if db := magDB(t, coeffs, 1000); math.Abs(db+3.01) > 0.1 {
			t.Errorf("order %d: cutoff gain = %v dB, want ~-3", order, db)
		}
	}
}

func TestButterworthLPRolloff(t *testing.T) {
	// One octave above cutoff a Butterworth attenuates ~6 dB per
	// order; allow slack for bilinear warping.
	for _, order := range []int{2, 4, 8} {
		coeffs := ButterworthLP(1000, order, sampleRate)
		db := magDB(t, coeffs, 2000)
		want := -6.02 * float64(order)
		if db > want+3 {
			t.Errorf("order %d: octave-up gain = %v dB, want <= %v", order, db, want+3)
		}
	}
}

func TestButterworthHPCutoff(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4} {
		coeffs := ButterworthHP(1000, order, sampleRate)

		if db := magDB(t, coeffs, 20000); math.Abs(db) > 0.1 {
			t.Errorf("order %d: passband gain = %v dB, want ~0", order, db)
		}
		if db := magDB(t, coeffs, 1000); math.Abs(db+3.01) > 0.1 {
			t.Errorf("order %d: cutoff gain = %v dB, want ~-3", order, db)
		}
		if db := magDB(t, coeffs, 100); db > -15*float64(order)+5 {
			t.Errorf("order %d: stopband gain = %v dB, too shallow", order, db)
		}
	}
}

func TestChebyshev1LPRippleAndRolloff(t *testing.T) {
	coeffs := Chebyshev1LP(1000, 4, 1, sampleRate)

	// At the passband edge the response is rippleDB down.
	if db := magDB(t, coeffs, 1000); db > -0.4 || db < -1.6 {
		t.Fatalf("cutoff gain = %v dB, want ~-1 (ripple)", db)
	}

	// Passband stays within the ripple band.
	for _, f := range []float64{50, 200, 500, 800} {
		if db := magDB(t, coeffs, f); db > 0.1 || db < -1.3 {
			t.Errorf("passband gain at %v Hz = %v dB, outside ripple band", f, db)
		}
	}

	// Steeper than the same-order Butterworth one octave up.
	butter := biquad.NewChain(ButterworthLP(1000, 4, sampleRate)).MagnitudeDB(2000, sampleRate)
	if cheby := magDB(t, coeffs, 2000); cheby >= butter {
		t.Fatalf("chebyshev %v dB not steeper than butterworth %v dB", cheby, butter)
	}
	if db := magDB(t, coeffs, 2000); db > -30 {
		t.Fatalf("octave-up gain = %v dB, want < -30", db)
	}
}

func TestChebyshev1HPResponse(t *testing.T) {
	coeffs := Chebyshev1HP(1000, 4, 1, sampleRate)

	if db := magDB(t, coeffs, 1000); db > -0.4 || db < -1.6 {
		t.Fatalf("cutoff gain = %v dB, want ~-1 (ripple)", db)
	}
	if db := magDB(t, coeffs, 500); db > -30 {
		t.Fatalf("octave-down gain = %v dB, want < -30", db)
	}
	for _, f := range []float64{2000, 8000, 20000} {
		if db := magDB(t, coeffs, f); db > 0.1 || db < -1.3 {
			t.Errorf("passband gain at %v Hz = %v dB, outside ripple band", f, db)
		}
	}
}

func TestChebyshev1DCGain(t *testing.T) {
	// Even orders put a ripple trough at DC, rippleDB below unity; odd
	// orders pass DC at full gain. Either way the deep passband must not
	// attenuate beyond the ripple band.
	for _, order := range []int{2, 4, 6} {
		coeffs := Chebyshev1LP(1000, order, 1, sampleRate)
		if db := magDB(t, coeffs, 1); math.Abs(db+1) > 0.1 {
			t.Errorf("order %d: DC gain = %v dB, want ~-1", order, db)
		}
	}
	for _, order := range []int{1, 3, 5} {
		coeffs := Chebyshev1LP(1000, order, 1, sampleRate)
		if db := magDB(t, coeffs, 1); math.Abs(db) > 0.1 {
			t.Errorf("order %d: DC gain = %v dB, want ~0", order, db)
		}
	}
}

func TestChebyshev1LPPassesLowFrequencies(t *testing.T) {
	// A lowpass must pass its deep passband near unity; a cascade with
	// flipped denominator signs collapses to a flat ~-100 dB attenuator.
	coeffs := Chebyshev1LP(1000, 4, 1, sampleRate)
	if db := magDB(t, coeffs, 100); db < -1.3 || db > 0.1 {
		t.Fatalf("gain at 100 Hz = %v dB, want within the ripple band", db)
	}
}

func TestChebyshev1DefaultRipple(t *testing.T) {
	// Non-positive ripple falls back to 1 dB.
	a := Chebyshev1LP(1000, 4, 0, sampleRate)
	b := Chebyshev1LP(1000, 4, 1, sampleRate)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("section %d: zero-ripple design %+v != 1 dB design %+v", i, a[i], b[i])
		}
	}
}

func TestBesselLPResponse(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 5, 10} {
		coeffs := BesselLP(1000, order, sampleRate)
		if want := (order + 1) / 2; len(coeffs) != want {
			t.Fatalf("order %d: %d sections, want %d", order, len(coeffs), want)
		}

		if db := magDB(t, coeffs, 10); math.Abs(db) > 0.01 {
			t.Errorf("order %d: DC gain = %v dB, want ~0", order, db)
		}
		// Poles are -3 dB normalized.
		if db := magDB(t, coeffs, 1000); math.Abs(db+3.01) > 0.35 {
			t.Errorf("order %d: cutoff gain = %v dB, want ~-3", order, db)
		}
	}
}

func TestBesselShallowerThanButterworth(t *testing.T) {
	bessel := magDB(t, BesselLP(1000, 4, sampleRate), 2000)
	butter := magDB(t, ButterworthLP(1000, 4, sampleRate), 2000)
	if bessel <= butter {
		t.Fatalf("bessel %v dB not shallower than butterworth %v dB at one octave", bessel, butter)
	}
}

func TestBesselHPResponse(t *testing.T) {
	coeffs := BesselHP(1000, 4, sampleRate)

	if db := magDB(t, coeffs, 20000); math.Abs(db) > 0.2 {
		t.Fatalf("passband gain = %v dB, want ~0", db)
	}
	if db := magDB(t, coeffs, 100); db > -30 {
		t.Fatalf("stopband gain = %v dB, want < -30", db)
	}
}

func TestInvalidDesignsReturnNil(t *testing.T) {
	if got := ButterworthLP(1000, 0, sampleRate); got != nil {
		t.Error("order 0 should return nil")
	}
	if got := BesselLP(1000, MaxBesselOrder+1, sampleRate); got != nil {
		t.Error("order above table should return nil")
	}
	if got := Chebyshev1LP(0, 4, 1, sampleRate); got != nil {
		t.Error("zero cutoff should return nil")
	}
	if got := Chebyshev1HP(sampleRate/2, 4, 1, sampleRate); got != nil {
		t.Error("cutoff at nyquist should return nil")
	}
	if got := BesselHP(1000, 2, 0); got != nil {
		t.Error("zero sample rate should return nil")
	}
}
