package artifact

import (
	"math"
	"math/rand"
	"testing"
)

func sineAtBin(n, bin, fftSize int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(fftSize))
	}
	return out
}

func TestAnalyzeValidation(t *testing.T) {
	sig := make([]float64, 64)

	tests := []struct {
		name string
		dry  []float64
		wet  []float64
		cfg  Config
	}{
		{name: "empty", dry: nil, wet: nil},
		{name: "length mismatch", dry: sig, wet: sig[:32]},
		{name: "negative latency", dry: sig, wet: sig, cfg: Config{Latency: -1}},
		{name: "latency too large", dry: sig, wet: sig, cfg: Config{Latency: 64}},
		{name: "fft not power of two", dry: sig, wet: sig, cfg: Config{FFTSize: 100}},
		{name: "fft too small", dry: sig, wet: sig, cfg: Config{FFTSize: 8}},
		{name: "negative sample rate", dry: sig, wet: sig, cfg: Config{SampleRate: -1}},
		{name: "nan sample rate", dry: sig, wet: sig, cfg: Config{SampleRate: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(tt.dry, tt.wet, tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAnalyzeDefaultFFTSizeFitsSignal(t *testing.T) {
	sig := make([]float64, 100)

	r, err := Analyze(sig, sig, Config{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.FFTSize != 64 {
		t.Fatalf("FFTSize = %d, want 64", r.FFTSize)
	}
	if len(r.Dry.Power) != 33 {
		t.Fatalf("len(Power) = %d, want 33", len(r.Dry.Power))
	}
}

func TestAnalyzeIdenticalSignals(t *testing.T) {
	sig := sineAtBin(4096, 32, 1024, 0.5)

	r, err := Analyze(sig, sig, Config{FFTSize: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.ErrorRMS != 0 {
		t.Fatalf("ErrorRMS = %g, want 0", r.ErrorRMS)
	}
	if !math.IsInf(r.SNR_dB, 1) {
		t.Fatalf("SNR_dB = %g, want +Inf", r.SNR_dB)
	}
	if math.Abs(r.DryPeak-0.5) > 1e-9 || r.DryPeak != r.WetPeak {
		t.Fatalf("peaks = %g/%g, want 0.5", r.DryPeak, r.WetPeak)
	}
	if math.Abs(r.DryRMS-0.5/math.Sqrt2) > 1e-9 {
		t.Fatalf("DryRMS = %g, want %g", r.DryRMS, 0.5/math.Sqrt2)
	}
}

func TestAnalyzeLatencyAlignment(t *testing.T) {
	const latency = 3

	dry := sineAtBin(2048, 17, 512, 0.8)
	wet := make([]float64, len(dry))
	copy(wet[latency:], dry)

	r, err := Analyze(dry, wet, Config{Latency: latency})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Samples != len(dry)-latency {
		t.Fatalf("Samples = %d, want %d", r.Samples, len(dry)-latency)
	}
	if r.ErrorRMS != 0 {
		t.Fatalf("ErrorRMS = %g, want 0", r.ErrorRMS)
	}

	unaligned, err := Analyze(dry, wet, Config{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if unaligned.ErrorRMS < 0.1 {
		t.Fatalf("unaligned ErrorRMS = %g, want a large residual", unaligned.ErrorRMS)
	}
}

func TestAnalyzeGainChangeSNR(t *testing.T) {
	dry := sineAtBin(4096, 40, 1024, 1)
	wet := make([]float64, len(dry))
	for i, v := range dry {
		wet[i] = 0.9 * v
	}

	r, err := Analyze(dry, wet, Config{FFTSize: 1024})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := 20 * math.Log10(1/0.1)
	if math.Abs(r.SNR_dB-want) > 1e-6 {
		t.Fatalf("SNR_dB = %f, want %f", r.SNR_dB, want)
	}
}

func TestSpectrumCentroidOfBinCenteredSine(t *testing.T) {
	const (
		sampleRate = 48000.0
		fftSize    = 1024
		bin        = 64
	)

	sig := sineAtBin(8192, bin, fftSize, 1)

	r, err := Analyze(sig, sig, Config{SampleRate: sampleRate, FFTSize: fftSize})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := bin * sampleRate / fftSize
	if math.Abs(r.Dry.CentroidHz-want) > 1 {
		t.Fatalf("CentroidHz = %f, want %f", r.Dry.CentroidHz, want)
	}
	if r.Dry.Flatness > 0.1 {
		t.Fatalf("Flatness = %f, want tonal (< 0.1)", r.Dry.Flatness)
	}
}

func TestSpectrumFlatnessOfNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	sig := make([]float64, 16384)
	for i := range sig {
		sig[i] = rng.Float64()*2 - 1
	}

	r, err := Analyze(sig, sig, Config{FFTSize: 256})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Wet.Flatness < 0.8 || r.Wet.Flatness > 1 {
		t.Fatalf("Flatness = %f, want close to 1", r.Wet.Flatness)
	}
}

func TestSpectrumOfSilence(t *testing.T) {
	sig := make([]float64, 512)

	r, err := Analyze(sig, sig, Config{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Dry.CentroidHz != 0 || r.Dry.Flatness != 0 {
		t.Fatalf("silence spectrum = %+v, want zero centroid and flatness", r.Dry)
	}
}

func TestSpectrumShortSignalIsZeroPadded(t *testing.T) {
	sig := sineAtBin(40, 4, 64, 1)

	r, err := Analyze(sig, sig, Config{FFTSize: 64})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Dry.CentroidHz <= 0 {
		t.Fatalf("CentroidHz = %f, want > 0", r.Dry.CentroidHz)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	dry := sineAtBin(48000, 64, 2048, 0.5)
	wet := make([]float64, len(dry))
	for i, v := range dry {
		wet[i] = math.Round(v*16) / 16
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Analyze(dry, wet, Config{}); err != nil {
			b.Fatal(err)
		}
	}
}
