package spectrum

import "math"

// directDFT evaluates the one-sided DFT X[k] = sum x[n]*e^(-j*2*pi*k*n/N)
// for k = 0..N/2 by the definition. Each bin advances a unit phasor by
// complex multiplication instead of calling sincos per sample.
//
// This is the fallback for transform sizes that are not a power of two.
// O(N^2) but exact on the sampleRate/N bin grid, which matters for the
// tutorials where N is chosen to give round frequency resolution.
func directDFT(in []complex128, fftSize int) []complex128 {
	half := fftSize/2 + 1
	out := make([]complex128, half)

	for k := 0; k < half; k++ {
		angle := -2 * math.Pi * float64(k) / float64(fftSize)
		sin, cos := math.Sincos(angle)
		w := complex(cos, sin)

		var acc complex128
		phasor := complex(1, 0)
		for n := 0; n < fftSize; n++ {
			acc += in[n] * phasor
			phasor *= w
		}
		out[k] = acc
	}

	return out
}
