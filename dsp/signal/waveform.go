package signal

import "fmt"

// Waveform identifies a generator waveform kind.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveCosine
	WaveSquare
	WaveTriangle
	WaveSawtooth
	WaveWhiteNoise
)

// String returns the lowercase waveform name.
func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveCosine:
		return "cosine"
	case WaveSquare:
		return "square"
	case WaveTriangle:
		return "triangle"
	case WaveSawtooth:
		return "sawtooth"
	case WaveWhiteNoise:
		return "white-noise"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// ParseWaveform maps a name to a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "sine":
		return WaveSine, nil
	case "cosine":
		return WaveCosine, nil
	case "square":
		return WaveSquare, nil
	case "triangle":
		return WaveTriangle, nil
	case "sawtooth":
		return WaveSawtooth, nil
	case "white-noise", "noise":
		return WaveWhiteNoise, nil
	default:
		return 0, fmt.Errorf("signal: unknown waveform: %q", name)
	}
}

// Generate dispatches to the waveform-specific generator method.
// freqHz and phase are ignored for white noise.
func (g *Generator) Generate(w Waveform, freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	switch w {
	case WaveSine:
		return g.Sine(freqHz, amplitude, phase, samples)
	case WaveCosine:
		return g.Cosine(freqHz, amplitude, phase, samples)
	case WaveSquare:
		return g.Square(freqHz, amplitude, phase, samples)
	case WaveTriangle:
		return g.Triangle(freqHz, amplitude, phase, samples)
	case WaveSawtooth:
		return g.Sawtooth(freqHz, amplitude, phase, samples)
	case WaveWhiteNoise:
		return g.WhiteNoise(amplitude, samples)
	default:
		return nil, fmt.Errorf("signal: unknown waveform: %d", w)
	}
}

// GenerateDuration generates length = round(duration*sampleRate) samples of
// the given waveform.
func (g *Generator) GenerateDuration(w Waveform, freqHz, amplitude, phase, duration float64) ([]float64, error) {
	samples, err := g.SamplesForDuration(duration)
	if err != nil {
		return nil, err
	}
	return g.Generate(w, freqHz, amplitude, phase, samples)
}
