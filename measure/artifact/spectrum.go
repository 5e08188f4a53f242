package artifact

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// analyzer holds the scratch buffers for Welch averaging with 50% overlap.
type analyzer struct {
	plan   *algofft.Plan[complex128]
	cfg    Config
	window []float64
	frame  []float64
	in     []complex128
	out    []complex128
	re     []float64
	im     []float64
	power  []float64
}

func newAnalyzer(plan *algofft.Plan[complex128], cfg Config) *analyzer {
	n := cfg.FFTSize
	bins := n/2 + 1

	return &analyzer{
		plan:   plan,
		cfg:    cfg,
		window: hann(n),
		frame:  make([]float64, n),
		in:     make([]complex128, n),
		out:    make([]complex128, n),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
		power:  make([]float64, bins),
	}
}

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

func (a *analyzer) spectrum(x []float64) (Spectrum, error) {
	n := a.cfg.FFTSize
	bins := n/2 + 1
	hop := n / 2

	acc := make([]float64, bins)
	frames := 0

	for start := 0; ; start += hop {
		// Signals shorter than one frame are zero-padded.
		for i := range a.frame {
			a.frame[i] = 0
		}
		copied := copy(a.frame, x[min(start, len(x)):])
		if copied == 0 && frames > 0 {
			break
		}

		vecmath.MulBlockInPlace(a.frame, a.window)
		for i, v := range a.frame {
			a.in[i] = complex(v, 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return Spectrum{}, fmt.Errorf("artifact: fft: %w", err)
		}

		for k := range bins {
			a.re[k] = real(a.out[k])
			a.im[k] = imag(a.out[k])
		}
		vecmath.Power(a.power, a.re, a.im)

		for k, p := range a.power {
			acc[k] += p
		}
		frames++

		if start+n >= len(x) {
			break
		}
	}

	for k := range acc {
		acc[k] /= float64(frames)
	}

	return Spectrum{
		Power:      acc,
		CentroidHz: centroid(acc, a.cfg.SampleRate/float64(n)),
		Flatness:   flatness(acc),
	}, nil
}

func centroid(power []float64, binHz float64) float64 {
	num, den := 0.0, 0.0
	for k, p := range power {
		num += float64(k) * binHz * p
		den += p
	}
	if den <= powerFloor {
		return 0
	}
	return num / den
}

// flatness skips the DC bin.
func flatness(power []float64) float64 {
	if len(power) < 2 {
		return 0
	}

	logSum, sum := 0.0, 0.0
	for _, p := range power[1:] {
		p = math.Max(p, powerFloor)
		logSum += math.Log(p)
		sum += p
	}

	n := float64(len(power) - 1)
	mean := sum / n
	if mean <= powerFloor {
		return 0
	}
	return math.Exp(logSum/n) / mean
}
