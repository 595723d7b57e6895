// Command tutorials walks through the digital signal processing basics:
// waveform generation, Fourier analysis, sampling and aliasing, IIR
// filtering, quantization and signal quality metrics. Each subcommand
// prints a numeric summary and saves a PNG figure; the ADC sweep also
// writes its results as CSV.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the command tree. Every tutorial runs without arguments.
type CLI struct {
	OutDir string `help:"Directory for generated figures and CSV files." default:"." type:"path"`
	Seed   int64  `help:"Random seed for the noise generators." default:"1"`

	Signals      SignalsCmd      `cmd:"" help:"Generate and compare the basic waveforms."`
	Fourier      FourierCmd      `cmd:"" help:"Decompose a composite signal with the FFT."`
	Sampling     SamplingCmd     `cmd:"" help:"Demonstrate Nyquist, aliasing and reconstruction."`
	Filtering    FilteringCmd    `cmd:"" help:"Design IIR filters and inspect their responses."`
	Quantization QuantizationCmd `cmd:"" help:"Quantize a signal at several bit depths."`
	Metrics      MetricsCmd      `cmd:"" help:"Measure SNR, THD, SINAD, SFDR and ENOB."`
	AdcSweep     AdcSweepCmd     `cmd:"" name:"adc-sweep" help:"Characterize an ADC across bit depths."`
}

// Context carries the global flags and the summary destination into the
// subcommands.
type Context struct {
	OutDir string
	Seed   int64
	Out    io.Writer
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tutorials"),
		kong.Description("Digital signal processing tutorials."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&Context{OutDir: cli.OutDir, Seed: cli.Seed, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
