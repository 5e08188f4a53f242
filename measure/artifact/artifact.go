package artifact

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lofi/dsp/core"
)

const (
	defaultFFTSize = 2048
	minFFTSize     = 16
	maxFFTSize     = 1 << 18
	powerFloor     = 1e-20
)

var errEmptySignal = errors.New("artifact: empty signal")

// Config holds analysis parameters.
type Config struct {
	// SampleRate in Hz. Defaults to 48000.
	SampleRate float64
	// FFTSize is the analysis frame length, a power of two in [16, 262144].
	// Defaults to 2048, reduced to fit short signals.
	FFTSize int
	// Latency is the processing delay in samples: wet[i+Latency] is
	// compared with dry[i].
	Latency int
}

// Spectrum summarizes a Welch-averaged power spectrum.
type Spectrum struct {
	// Power holds the averaged squared magnitude of bins [0..FFTSize/2].
	Power []float64
	// CentroidHz is the power-weighted mean frequency.
	CentroidHz float64
	// Flatness is the geometric over the arithmetic mean power, in [0, 1].
	Flatness float64
}

// Report holds the comparison of a dry and a processed signal.
type Report struct {
	Samples  int
	FFTSize  int
	DryPeak  float64
	WetPeak  float64
	DryRMS   float64
	WetRMS   float64
	ErrorRMS float64
	// SNR_dB is the dry power over the residual error power.
	SNR_dB float64
	Dry    Spectrum
	Wet    Spectrum
}

// Analyze compares dry with wet. Both must have the same length, longer
// than cfg.Latency.
func Analyze(dry, wet []float64, cfg Config) (Report, error) {
	if len(dry) == 0 {
		return Report{}, errEmptySignal
	}
	if len(dry) != len(wet) {
		return Report{}, fmt.Errorf("artifact: length mismatch: dry %d, wet %d", len(dry), len(wet))
	}
	if cfg.Latency < 0 || cfg.Latency >= len(dry) {
		return Report{}, fmt.Errorf("artifact: latency must be in [0, %d): %d", len(dry), cfg.Latency)
	}

	cfg, err := normalizeConfig(cfg, len(dry)-cfg.Latency)
	if err != nil {
		return Report{}, err
	}

	aligned := len(dry) - cfg.Latency
	d := dry[:aligned]
	w := wet[cfg.Latency:]

	r := Report{
		Samples: aligned,
		FFTSize: cfg.FFTSize,
		DryPeak: peak(d),
		WetPeak: peak(w),
		DryRMS:  rms(d),
		WetRMS:  rms(w),
	}

	residual := make([]float64, aligned)
	for i := range residual {
		residual[i] = w[i] - d[i]
	}
	r.ErrorRMS = rms(residual)
	r.SNR_dB = snrDB(r.DryRMS, r.ErrorRMS)

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return Report{}, fmt.Errorf("artifact: fft plan: %w", err)
	}

	a := newAnalyzer(plan, cfg)

	if r.Dry, err = a.spectrum(d); err != nil {
		return Report{}, err
	}
	if r.Wet, err = a.spectrum(w); err != nil {
		return Report{}, err
	}

	return r, nil
}

func normalizeConfig(cfg Config, available int) (Config, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 48000
	}
	if !core.IsFinite(cfg.SampleRate) || cfg.SampleRate < 0 {
		return cfg, fmt.Errorf("artifact: sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
		for cfg.FFTSize > available && cfg.FFTSize > minFFTSize {
			cfg.FFTSize /= 2
		}
	}
	if cfg.FFTSize < minFFTSize || cfg.FFTSize > maxFFTSize || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return cfg, fmt.Errorf("artifact: fft size must be a power of two in [%d, %d]: %d",
			minFFTSize, maxFFTSize, cfg.FFTSize)
	}

	return cfg, nil
}

// snrDB is +Inf for an identical pair and -Inf for a silent dry signal.
func snrDB(signal, noise float64) float64 {
	switch {
	case noise == 0:
		return math.Inf(1)
	case signal == 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(signal*signal) - core.LinearPowerToDB(noise*noise)
}

func peak(x []float64) float64 {
	p := 0.0
	for _, v := range x {
		p = math.Max(p, math.Abs(v))
	}
	return p
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sq := make([]float64, len(x))
	vecmath.MulBlock(sq, x, x)

	sum := 0.0
	for _, v := range sq {
		sum += v
	}
	return math.Sqrt(sum / float64(len(x)))
}
