// Package response measures the steady-state behavior of an audio processor:
// linear magnitude gain and polarity at a single probe frequency.
//
// Measurement is an offline verification tool, not part of the real-time
// path, so it is free to allocate. The probe sine lands exactly on an FFT
// bin, which avoids spectral leakage without windowing.
package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-proc/dsp/proc"
)

const (
	defaultSampleRate = 48000.0
	defaultFFTSize    = 4096
	defaultAmplitude  = 0.5
)

// Config holds measurement parameters. Zero values are replaced by defaults.
type Config struct {
	SampleRate float64 // probe sample rate in Hz
	FFTSize    int     // analysis length in samples, power of two
	ProbeBin   int     // probe frequency = ProbeBin * SampleRate / FFTSize
	Amplitude  float64 // probe peak amplitude
}

// Result holds a single-frequency response measurement.
type Result struct {
	ProbeFreq     float64 // probe frequency in Hz
	MagnitudeGain float64 // linear |output| / |input| ratio at the probe bin
	GainDB        float64 // 20*log10(MagnitudeGain); -Inf for silent output
	Inverted      bool    // output is phase-inverted relative to the input
}

// Measure drives a bin-exact sine probe through p and compares the input and
// output spectra at the probe bin.
func Measure(p proc.AudioProcessor, cfg Config) (Result, error) {
	if p == nil {
		return Result{}, fmt.Errorf("response: processor must not be nil")
	}

	cfg = normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return Result{}, err
	}

	n := cfg.FFTSize
	step := 2 * math.Pi * float64(cfg.ProbeBin) / float64(n)

	input := make([]float32, n)
	for i := range input {
		input[i] = float32(cfg.Amplitude * math.Sin(step*float64(i)))
	}

	output := make([]float32, n)
	p.Process(input, output)

	inSpec, err := forward(input, n)
	if err != nil {
		return Result{}, err
	}
	outSpec, err := forward(output, n)
	if err != nil {
		return Result{}, err
	}

	inPower := binPower(inSpec)
	outPower := binPower(outSpec)

	k := cfg.ProbeBin
	if inPower[k] == 0 {
		return Result{}, fmt.Errorf("response: probe bin %d carries no input energy", k)
	}

	cross := outSpec[k] * complex(real(inSpec[k]), -imag(inSpec[k]))

	gain := math.Sqrt(outPower[k] / inPower[k])

	return Result{
		ProbeFreq:     float64(k) * cfg.SampleRate / float64(n),
		MagnitudeGain: gain,
		GainDB:        20 * math.Log10(gain),
		Inverted:      real(cross) < 0,
	}, nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}
	if cfg.ProbeBin <= 0 {
		cfg.ProbeBin = cfg.FFTSize / 32
		if cfg.ProbeBin < 1 {
			cfg.ProbeBin = 1
		}
	}
	if cfg.Amplitude <= 0 {
		cfg.Amplitude = defaultAmplitude
	}
	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.FFTSize < 16 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return fmt.Errorf("response: FFT size must be a power of two >= 16: %d", cfg.FFTSize)
	}
	if cfg.ProbeBin >= cfg.FFTSize/2 {
		return fmt.Errorf("response: probe bin %d out of range for FFT size %d", cfg.ProbeBin, cfg.FFTSize)
	}
	if math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("response: sample rate must be finite: %f", cfg.SampleRate)
	}
	return nil
}

// forward transforms a real float32 block into its complex spectrum.
func forward(block []float32, n int) ([]complex128, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range block {
		in[i] = complex(float64(v), 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT: %w", err)
	}
	return out, nil
}

// binPower computes |X[k]|^2 per bin for the non-negative frequencies.
func binPower(spec []complex128) []float64 {
	bins := len(spec)/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(spec[i])
		im[i] = imag(spec[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)
	return power
}
