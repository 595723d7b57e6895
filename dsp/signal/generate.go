// Package signal generates sampled test waveforms from semantic parameters.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
//
// Randomness (noise generators) is instance-scoped and seeded, so two
// generators with the same seed produce identical output.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with
// signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SampleRate returns the configured sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.cfg.SampleRate
}

// Seed returns the current noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// SamplesForDuration converts a duration in seconds to a sample count,
// length = round(duration * sampleRate).
func (g *Generator) SamplesForDuration(duration float64) (int, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, fmt.Errorf("signal: duration must be > 0 and finite: %f", duration)
	}
	if g.cfg.SampleRate <= 0 {
		return 0, fmt.Errorf("signal: sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	return int(math.Round(duration * g.cfg.SampleRate)), nil
}

func (g *Generator) validate(freqHz, amplitude, phase float64, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("signal: samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("signal: sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if amplitude < 0 || math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return fmt.Errorf("signal: amplitude must be >= 0 and finite: %f", amplitude)
	}
	if math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return fmt.Errorf("signal: frequency must be finite: %f", freqHz)
	}
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return fmt.Errorf("signal: phase must be finite: %f", phase)
	}
	return nil
}

// Sine generates A*sin(2*pi*f*t + phase).
func (g *Generator) Sine(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if err := g.validate(freqHz, amplitude, phase, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out, nil
}

// Cosine generates A*cos(2*pi*f*t + phase), i.e. a sine advanced by pi/2.
func (g *Generator) Cosine(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	return g.Sine(freqHz, amplitude, phase+math.Pi/2, samples)
}

// Square generates a bipolar square wave switching between +A and -A.
// The output is +A wherever the corresponding sine is non-negative.
func (g *Generator) Square(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if err := g.validate(freqHz, amplitude, phase, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		if math.Sin(step*float64(i)+phase) >= 0 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out, nil
}

// Triangle generates a triangle wave rising from -A to +A over the first
// half period and falling back over the second.
func (g *Generator) Triangle(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if err := g.validate(freqHz, amplitude, phase, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		p := periodFraction(freqHz, phase, g.cfg.SampleRate, i)
		if p < 0.5 {
			out[i] = amplitude * (4*p - 1)
		} else {
			out[i] = amplitude * (3 - 4*p)
		}
	}
	return out, nil
}

// Sawtooth generates a sawtooth wave rising linearly from -A to +A over each
// period, then dropping back.
func (g *Generator) Sawtooth(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if err := g.validate(freqHz, amplitude, phase, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		p := periodFraction(freqHz, phase, g.cfg.SampleRate, i)
		out[i] = amplitude * (2*p - 1)
	}
	return out, nil
}

// periodFraction returns the position within the waveform period in [0, 1).
func periodFraction(freqHz, phase, sampleRate float64, index int) float64 {
	p := freqHz*float64(index)/sampleRate + phase/(2*math.Pi)
	p -= math.Floor(p)
	return p
}

// WhiteNoise generates deterministic uniform white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: samples must be > 0: %d", samples)
	}
	if amplitude < 0 || math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return nil, fmt.Errorf("signal: amplitude must be >= 0 and finite: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// GaussianNoise generates deterministic zero-mean Gaussian noise with the
// given standard deviation.
func (g *Generator) GaussianNoise(stddev float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: samples must be > 0: %d", samples)
	}
	if stddev < 0 || math.IsNaN(stddev) || math.IsInf(stddev, 0) {
		return nil, fmt.Errorf("signal: stddev must be >= 0 and finite: %f", stddev)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = rng.NormFloat64() * stddev
	}
	return out, nil
}

// Partial describes one harmonic component of a multitone signal.
type Partial struct {
	Harmonic  int     // multiple of the fundamental frequency, >= 2
	Amplitude float64 // linear amplitude of the partial
}

// Multitone generates a fundamental sine plus the given harmonic partials.
// This models a distorted source for ADC characterization.
func (g *Generator) Multitone(freqHz, amplitude, phase float64, partials []Partial, samples int) ([]float64, error) {
	out, err := g.Sine(freqHz, amplitude, phase, samples)
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		if p.Harmonic < 2 {
			return nil, fmt.Errorf("signal: partial harmonic must be >= 2: %d", p.Harmonic)
		}
		step := 2 * math.Pi * freqHz * float64(p.Harmonic) / g.cfg.SampleRate
		for i := range out {
			out[i] += p.Amplitude * math.Sin(step*float64(i)+phase)
		}
	}
	return out, nil
}
