// Package filter designs and applies IIR filters described by a declarative
// specification: pick a family (Butterworth, Chebyshev, Bessel), a response
// kind (lowpass, highpass, bandpass, notch), an order and cutoffs, and get
// back a ready-to-run second-order section cascade.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/biquad"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/design"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/design/pass"
)

// Family selects the approximation used for the filter prototype.
type Family int

const (
	// Butterworth has a maximally flat passband and -3 dB at the cutoff.
	Butterworth Family = iota
	// Chebyshev (Type I) trades passband ripple for a steeper rolloff.
	Chebyshev
	// Bessel has maximally flat group delay, preserving waveform shape.
	Bessel
)

// String returns the lowercase family name.
func (f Family) String() string {
	switch f {
	case Butterworth:
		return "butterworth"
	case Chebyshev:
		return "chebyshev"
	case Bessel:
		return "bessel"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily converts a family name to its Family value.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(s) {
	case "butterworth", "butter":
		return Butterworth, nil
	case "chebyshev", "cheby", "chebyshev1":
		return Chebyshev, nil
	case "bessel":
		return Bessel, nil
	default:
		return 0, fmt.Errorf("filter: unknown family: %q", s)
	}
}

// Kind selects the frequency response shape.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
	Notch
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Notch:
		return "notch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a kind name to its Kind value.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "lowpass", "lp":
		return Lowpass, nil
	case "highpass", "hp":
		return Highpass, nil
	case "bandpass", "bp":
		return Bandpass, nil
	case "notch", "bandstop":
		return Notch, nil
	default:
		return 0, fmt.Errorf("filter: unknown kind: %q", s)
	}
}

// Spec describes a filter to design.
//
// Lowpass and highpass use Cutoff alone. Bandpass and notch use Cutoff and
// CutoffHigh as the lower and upper band edges, which must be strictly
// ascending. RippleDB only affects the Chebyshev family; zero selects the
// 1 dB default.
type Spec struct {
	Family     Family
	Kind       Kind
	Order      int
	Cutoff     float64 // Hz; lower band edge for bandpass/notch
	CutoffHigh float64 // Hz; upper band edge, bandpass/notch only
	RippleDB   float64 // Chebyshev passband ripple
	SampleRate float64 // Hz
}

// Validate checks the spec without designing it.
func (s Spec) Validate() error {
	if s.Order < 1 {
		return fmt.Errorf("filter: order must be >= 1: %d", s.Order)
	}
	if s.Family == Bessel && s.Order > pass.MaxBesselOrder {
		return fmt.Errorf("filter: bessel order must be <= %d: %d", pass.MaxBesselOrder, s.Order)
	}
	if s.Family != Butterworth && s.Family != Chebyshev && s.Family != Bessel {
		return fmt.Errorf("filter: unknown family: %d", s.Family)
	}
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("filter: sample rate must be > 0 and finite: %f", s.SampleRate)
	}

	nyquist := s.SampleRate / 2
	if s.Cutoff <= 0 || s.Cutoff >= nyquist || math.IsNaN(s.Cutoff) {
		return fmt.Errorf("filter: cutoff must be in (0, %g): %f", nyquist, s.Cutoff)
	}

	switch s.Kind {
	case Lowpass, Highpass:
		if s.CutoffHigh != 0 {
			return fmt.Errorf("filter: cutoff high is only valid for bandpass and notch: %f", s.CutoffHigh)
		}
	case Bandpass, Notch:
		if s.CutoffHigh <= 0 || s.CutoffHigh >= nyquist || math.IsNaN(s.CutoffHigh) {
			return fmt.Errorf("filter: cutoff high must be in (0, %g): %f", nyquist, s.CutoffHigh)
		}
		if s.Cutoff >= s.CutoffHigh {
			return fmt.Errorf("filter: cutoffs must be ascending: %f >= %f", s.Cutoff, s.CutoffHigh)
		}
	default:
		return fmt.Errorf("filter: unknown kind: %d", s.Kind)
	}

	return nil
}

// Design validates the spec and builds the section cascade.
//
// Bandpass cascades a highpass at the lower edge with a lowpass at the
// upper edge, each of the spec's order. Notch cascades second-order notch
// sections centered at the geometric mean of the edges, one section per
// two orders (rounded up), regardless of family.
func Design(s Spec) (*biquad.Chain, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var coeffs []biquad.Coefficients
	switch s.Kind {
	case Lowpass:
		coeffs = designPass(s.Family, s.Cutoff, s.Order, s.RippleDB, s.SampleRate, false)
	case Highpass:
		coeffs = designPass(s.Family, s.Cutoff, s.Order, s.RippleDB, s.SampleRate, true)
	case Bandpass:
		hp := designPass(s.Family, s.Cutoff, s.Order, s.RippleDB, s.SampleRate, true)
		lp := designPass(s.Family, s.CutoffHigh, s.Order, s.RippleDB, s.SampleRate, false)
		coeffs = append(hp, lp...)
	case Notch:
		coeffs = designNotch(s)
	}

	if len(coeffs) == 0 {
		return nil, fmt.Errorf("filter: design failed for %s %s order %d", s.Family, s.Kind, s.Order)
	}

	return biquad.NewChain(coeffs), nil
}

func designPass(family Family, freq float64, order int, rippleDB, sampleRate float64, highpass bool) []biquad.Coefficients {
	switch family {
	case Chebyshev:
		if highpass {
			return pass.Chebyshev1HP(freq, order, rippleDB, sampleRate)
		}
		return pass.Chebyshev1LP(freq, order, rippleDB, sampleRate)
	case Bessel:
		if highpass {
			return pass.BesselHP(freq, order, sampleRate)
		}
		return pass.BesselLP(freq, order, sampleRate)
	default:
		if highpass {
			return pass.ButterworthHP(freq, order, sampleRate)
		}
		return pass.ButterworthLP(freq, order, sampleRate)
	}
}

// designNotch builds repeated RBJ notch sections. The center sits at the
// geometric mean of the band edges and Q is center/bandwidth, so the band
// edges land near -3 dB for a single section.
func designNotch(s Spec) []biquad.Coefficients {
	center := math.Sqrt(s.Cutoff * s.CutoffHigh)
	q := center / (s.CutoffHigh - s.Cutoff)

	n := (s.Order + 1) / 2
	coeffs := make([]biquad.Coefficients, 0, n)
	for i := 0; i < n; i++ {
		coeffs = append(coeffs, design.Notch(center, q, s.SampleRate))
	}
	return coeffs
}

// Apply designs the filter and runs the input through it once, returning a
// new slice. The input is not modified.
func Apply(s Spec, in []float64) ([]float64, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("filter: input must not be empty")
	}

	chain, err := Design(s)
	if err != nil {
		return nil, err
	}

	out := append([]float64(nil), in...)
	chain.ProcessBlock(out)
	return out, nil
}
