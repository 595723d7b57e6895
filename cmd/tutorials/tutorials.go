package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/UmarlyPoeta/signal-analysis-study/dsp/core"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/filter/biquad"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/quantize"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/sampling"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/signal"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/spectrum"
	"github.com/UmarlyPoeta/signal-analysis-study/dsp/window"
	"github.com/UmarlyPoeta/signal-analysis-study/internal/plot"
	"github.com/UmarlyPoeta/signal-analysis-study/measure/adc"
	"github.com/UmarlyPoeta/signal-analysis-study/measure/metrics"
)

// savePNG renders series into OutDir/name.
func savePNG(rc *Context, name string, series [][]float64, stems bool) error {
	path := filepath.Join(rc.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if stems {
		err = plot.Stem(f, series, plot.Config{})
	} else {
		err = plot.Line(f, series, plot.Config{})
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.Out, "wrote %s\n", path)
	return f.Close()
}

func newTable(rc *Context) *tabwriter.Writer {
	return tabwriter.NewWriter(rc.Out, 0, 0, 2, ' ', 0)
}

func rms(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(data)))
}

// SignalsCmd generates one period of each basic waveform and tabulates
// amplitude statistics.
type SignalsCmd struct{}

func (c *SignalsCmd) Run(rc *Context) error {
	const (
		sampleRate = 1000.0
		freq       = 5.0
		samples    = 200 // one 5 Hz period at 1 kHz
	)
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))

	waveforms := []signal.Waveform{
		signal.WaveSine, signal.WaveSquare, signal.WaveTriangle, signal.WaveSawtooth,
	}

	tw := newTable(rc)
	fmt.Fprintln(tw, "waveform\tmin\tmax\trms")
	series := make([][]float64, 0, len(waveforms))
	for _, w := range waveforms {
		s, err := g.Generate(w, freq, 1, 0, samples)
		if err != nil {
			return err
		}
		series = append(series, s)

		lo, hi := s[0], s[0]
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\n", w, lo, hi, rms(s))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return savePNG(rc, "tutorial_01_signals.png", series, false)
}

// FourierCmd builds a two-tone signal and locates its components in the
// magnitude spectrum.
type FourierCmd struct{}

func (c *FourierCmd) Run(rc *Context) error {
	const (
		sampleRate = 8000.0
		samples    = 8000 // 1 Hz bins
	)
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))

	a, err := g.Sine(1000, 1, 0, samples)
	if err != nil {
		return err
	}
	b, err := g.Sine(2500, 0.5, 0, samples)
	if err != nil {
		return err
	}
	mixed, err := signal.Add(a, b)
	if err != nil {
		return err
	}

	sp, err := spectrum.Analyze(mixed, spectrum.Config{
		SampleRate: sampleRate,
		Window:     window.TypeHann,
	})
	if err != nil {
		return err
	}

	mag := sp.Magnitude()
	fmt.Fprintf(rc.Out, "fft size %d, resolution %.2f Hz, %d one-sided bins\n",
		sp.FFTSize, sp.Resolution(), sp.BinCount())

	tw := newTable(rc)
	fmt.Fprintln(tw, "frequency\tbin\tmagnitude")
	for bin := 1; bin < len(mag)-1; bin++ {
		if mag[bin] > 0.1 && mag[bin] >= mag[bin-1] && mag[bin] >= mag[bin+1] {
			fmt.Fprintf(tw, "%.0f Hz\t%d\t%.3f\n", float64(bin)*sp.Resolution(), bin, mag[bin])
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return savePNG(rc, "tutorial_02_fourier.png", [][]float64{mag[:3000]}, true)
}

// SamplingCmd tabulates aliasing behavior at a fixed sample rate and
// compares reconstruction interpolators.
type SamplingCmd struct{}

func (c *SamplingCmd) Run(rc *Context) error {
	const sampleRate = 8000.0

	tw := newTable(rc)
	fmt.Fprintln(tw, "frequency\tnyquist\taliased\tappears as")
	for _, f := range []float64{1000, 3000, 5000, 6000, 9000} {
		a, err := sampling.Evaluate(f, sampleRate)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%.0f Hz\t%.0f Hz\t%v\t%.0f Hz\n", a.Frequency, a.Nyquist, a.Aliased, a.AliasFrequency)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Reconstruction: a 3 Hz sine sampled coarsely at 20 Hz, rebuilt on a
	// dense grid with both interpolators against the dense reference.
	const coarseRate, denseRate = 20.0, 1000.0
	g := signal.NewGenerator(core.WithSampleRate(coarseRate))
	coarse, err := g.Sine(3, 1, 0, 20)
	if err != nil {
		return err
	}
	gd := signal.NewGenerator(core.WithSampleRate(denseRate))
	reference, err := gd.Sine(3, 1, 0, 1000)
	if err != nil {
		return err
	}

	series := [][]float64{reference}
	for _, m := range []sampling.Method{sampling.MethodLinear, sampling.MethodCubic} {
		rebuilt, err := sampling.Reconstruct(coarse, coarseRate, denseRate, m)
		if err != nil {
			return err
		}
		series = append(series, rebuilt)

		worst := 0.0
		for i := 0; i < len(rebuilt)-int(denseRate/coarseRate); i++ {
			worst = math.Max(worst, math.Abs(rebuilt[i]-reference[i]))
		}
		fmt.Fprintf(rc.Out, "%s reconstruction: max error %.4f\n", m, worst)
	}

	return savePNG(rc, "tutorial_03_sampling.png", series, false)
}

// FilteringCmd compares the filter families and shows a lowpass cleaning
// a noisy two-tone signal.
type FilteringCmd struct{}

func (c *FilteringCmd) Run(rc *Context) error {
	const (
		sampleRate = 8000.0
		cutoff     = 1000.0
		order      = 4
	)

	tw := newTable(rc)
	fmt.Fprintln(tw, "frequency\tbutterworth\tchebyshev\tbessel")
	chains := make(map[filter.Family]*biquad.Chain)
	for _, fam := range []filter.Family{filter.Butterworth, filter.Chebyshev, filter.Bessel} {
		chain, err := filter.Design(filter.Spec{
			Family: fam, Kind: filter.Lowpass, Order: order,
			Cutoff: cutoff, SampleRate: sampleRate,
		})
		if err != nil {
			return err
		}
		chains[fam] = chain
	}
	for _, f := range []float64{250, 500, 1000, 2000, 3900} {
		fmt.Fprintf(tw, "%.0f Hz\t%.2f dB\t%.2f dB\t%.2f dB\n",
			f,
			chains[filter.Butterworth].MagnitudeDB(f, sampleRate),
			chains[filter.Chebyshev].MagnitudeDB(f, sampleRate),
			chains[filter.Bessel].MagnitudeDB(f, sampleRate))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	low, err := g.Sine(100, 1, 0, 800)
	if err != nil {
		return err
	}
	high, err := g.Sine(3000, 0.5, 0, 800)
	if err != nil {
		return err
	}
	mixed, err := signal.Add(low, high)
	if err != nil {
		return err
	}
	filtered, err := filter.Apply(filter.Spec{
		Family: filter.Butterworth, Kind: filter.Lowpass, Order: order,
		Cutoff: cutoff, SampleRate: sampleRate,
	}, mixed)
	if err != nil {
		return err
	}

	return savePNG(rc, "tutorial_04_filtering.png", [][]float64{mixed, filtered}, false)
}

// QuantizationCmd quantizes a sine at decreasing bit depths and compares
// measured SNR against the 6.02 dB per bit rule.
type QuantizationCmd struct{}

func (c *QuantizationCmd) Run(rc *Context) error {
	const (
		sampleRate = 8000.0
		samples    = 8000
	)
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	s, err := g.Sine(440, 0.9, 0, samples)
	if err != nil {
		return err
	}

	tw := newTable(rc)
	fmt.Fprintln(tw, "bits\tlsb\ttheoretical snr\tmeasured snr")
	var coarse []float64
	for _, bits := range []int{3, 4, 6, 8, 10, 12} {
		cfg := quantize.Config{BitDepth: bits, ReferenceVoltage: 1}
		q, _, err := quantize.Quantize(s, cfg)
		if err != nil {
			return err
		}
		if bits == 3 {
			coarse = q
		}

		theory, err := quantize.TheoreticalSNR(bits)
		if err != nil {
			return err
		}
		measured, err := quantize.MeasuredSNR(s, q)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%.6f\t%.2f dB\t%.2f dB\n", bits, cfg.LSB(), theory, measured)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return savePNG(rc, "tutorial_05_quantization.png",
		[][]float64{s[:200], coarse[:200]}, false)
}

// MetricsCmd measures a distorted, noisy tone.
type MetricsCmd struct{}

func (c *MetricsCmd) Run(rc *Context) error {
	const (
		sampleRate = 8192.0
		samples    = 8192
	)
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(sampleRate)},
		signal.WithSeed(rc.Seed),
	)
	tone, err := g.Multitone(1000, 1, 0, []signal.Partial{
		{Harmonic: 2, Amplitude: 0.05},
		{Harmonic: 3, Amplitude: 0.02},
	}, samples)
	if err != nil {
		return err
	}
	noise, err := g.GaussianNoise(0.001, samples)
	if err != nil {
		return err
	}
	noisy, err := signal.Add(tone, noise)
	if err != nil {
		return err
	}

	res, err := metrics.AnalyzeSignal(noisy, metrics.Config{SampleRate: sampleRate})
	if err != nil {
		return err
	}

	tw := newTable(rc)
	fmt.Fprintf(tw, "fundamental\t%.0f Hz (bin %d)\n", res.FundamentalFreq, res.FundamentalBin)
	fmt.Fprintf(tw, "snr\t%.2f dB\n", res.SNR)
	fmt.Fprintf(tw, "thd\t%.2f dB\n", res.THD)
	fmt.Fprintf(tw, "sinad\t%.2f dB\n", res.SINAD)
	fmt.Fprintf(tw, "sfdr\t%.2f dB\n", res.SFDR)
	fmt.Fprintf(tw, "enob\t%.2f bits\n", res.ENOB)
	if err := tw.Flush(); err != nil {
		return err
	}

	// Power spectrum in dB with a floor so the log view stays finite.
	sp, err := spectrum.Analyze(noisy, spectrum.Config{SampleRate: sampleRate, Window: window.TypeHann})
	if err != nil {
		return err
	}
	power := sp.Power()
	db := make([]float64, len(power))
	for i, p := range power {
		db[i] = math.Max(core.LinearPowerToDB(p), -140)
	}

	return savePNG(rc, "tutorial_06_metrics.png", [][]float64{db}, false)
}

// AdcSweepCmd runs the automated ADC characterization and exports CSV.
type AdcSweepCmd struct{}

func (c *AdcSweepCmd) Run(rc *Context) error {
	rows, err := adc.Run(adc.SweepConfig{Seed: rc.Seed})
	if err != nil {
		return err
	}

	tw := newTable(rc)
	fmt.Fprintln(tw, "bits\tnoise\tamplitude\tsnr\tenob\tthd")
	enob := make([]float64, 0, len(rows))
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.4f\t%.2f\t%.2f dB\t%.2f bits\t%.2f dB\n",
			r.Bits, r.NoiseStd, r.Amplitude, r.SNR, r.ENOB, r.THD)
		enob = append(enob, r.ENOB)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	path := filepath.Join(rc.OutDir, "adc_test_results.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := adc.WriteCSV(f, rows); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(rc.Out, "wrote %s\n", path)

	return savePNG(rc, "tutorial_07_adc_sweep.png", [][]float64{enob}, false)
}
