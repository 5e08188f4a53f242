// Command lofirender runs a lo-fi variant over a test signal or an MP3
// file offline and prints how the output differs from the input.
//
// Usage:
//
//	lofirender [flags] [file.mp3]
//
// Without a file argument a generated test signal is processed.
//
// Examples:
//
//	lofirender -variant linear -tolerance 0.05
//	lofirender -variant dust-ring -amount 40 -curve 0.3 -invert song.mp3
//	lofirender -variant dust-lookahead -tone sweep -sweep-amount -o out.f32
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/algo-lofi/dsp/effects/lofi"
	"github.com/cwbudde/algo-lofi/internal/source"
)

func main() {
	variantName := flag.String("variant", "linear", "variant: "+variantList())
	amount := flag.Float64("amount", 0, "lookahead depth or maximum displacement in samples")
	tolerance := flag.Float64("tolerance", 0, "linear interpolator deviation tolerance [0, 1]")
	curve := flag.Float64("curve", 0, "dust curve exponent")
	dither := flag.Bool("dither", false, "fractional-carry dithering of the amount (linear)")
	invert := flag.Bool("invert", false, "invert the remapped offset (dust-ring)")
	sweepAmount := flag.Bool("sweep-amount", false, "automate amount from 0 to its maximum across the signal")
	block := flag.Int("block", 512, "processing block size in frames")
	channels := flag.Int("channels", 2, "channel count (1 or 2)")
	toneName := flag.String("tone", "sine", "generated signal: sine, noise or sweep")
	freq := flag.Float64("freq", 440, "test tone frequency (sweep start) in Hz")
	level := flag.Float64("level", 0.5, "test tone amplitude [0, 1]")
	seconds := flag.Float64("seconds", 2, "test tone duration in seconds")
	sampleRate := flag.Int("sr", 48000, "test tone sample rate in Hz")
	fftSize := flag.Int("fft", 0, "analysis FFT size (0 = automatic)")
	out := flag.String("o", "", "write processed audio as raw interleaved float32 LE")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lofirender [flags] [file.mp3]\n\n")
		fmt.Fprintf(os.Stderr, "Processes a test signal or MP3 file with a lo-fi variant and\n")
		fmt.Fprintf(os.Stderr, "prints level, error and spectral changes per channel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lofirender -variant linear -tolerance 0.05\n")
		fmt.Fprintf(os.Stderr, "  lofirender -variant dust-ring -amount 40 -curve 0.3 -invert song.mp3\n")
		fmt.Fprintf(os.Stderr, "  lofirender -variant dust-lookahead -tone sweep -sweep-amount -o out.f32\n")
	}
	flag.Parse()

	variant, err := lofi.ParseVariant(*variantName)
	if err != nil {
		log.Fatalf("lofirender: %v", err)
	}

	// Only flags given on the command line override the variant defaults.
	overrides := map[string]float64{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "amount":
			overrides[lofi.ParamAmount] = *amount
		case "tolerance":
			overrides[lofi.ParamTolerance] = *tolerance
		case "curve":
			overrides[lofi.ParamCurve] = *curve
		case "dither":
			overrides[lofi.ParamDither] = boolValue(*dither)
		case "invert":
			overrides[lofi.ParamInvert] = boolValue(*invert)
		}
	})

	controls, err := resolveControls(variant, overrides, log.Printf)
	if err != nil {
		log.Fatalf("lofirender: %v", err)
	}

	var dry source.Signal
	if path := flag.Arg(0); path != "" {
		dry, err = source.OpenMP3(path, *channels)
		if err != nil {
			log.Fatalf("lofirender: %v", err)
		}
		log.Printf("decoded %s: %d frames at %d Hz", path, dry.Frames(), dry.SampleRate)
	} else {
		tone, perr := source.ParseTone(*toneName)
		if perr != nil {
			log.Fatalf("lofirender: %v", perr)
		}
		dry, err = source.Generate(source.ToneConfig{
			Tone:       tone,
			FreqHz:     *freq,
			Amplitude:  *level,
			SampleRate: *sampleRate,
			Frames:     int(*seconds * float64(*sampleRate)),
			Channels:   *channels,
			Seed:       1,
		})
		if err != nil {
			log.Fatalf("lofirender: %v", err)
		}
	}

	res, err := render(dry, renderConfig{
		variant:     variant,
		controls:    controls,
		blockSize:   *block,
		sweepAmount: *sweepAmount,
	})
	if err != nil {
		log.Fatalf("lofirender: %v", err)
	}

	rows, err := analyze(dry, res, *fftSize)
	if err != nil {
		log.Fatalf("lofirender: %v", err)
	}

	printHeader(os.Stdout, variant, controls, res)
	if err := printReport(os.Stdout, rows); err != nil {
		log.Fatalf("lofirender: %v", err)
	}

	if *out != "" {
		if err := writeOutput(*out, res.wet); err != nil {
			log.Fatalf("lofirender: %v", err)
		}
		log.Printf("wrote %s (%d frames, %d channels, float32 LE)", *out, res.wet.Frames(), len(res.wet.Channels))
	}
}

func variantList() string {
	names := make([]string, 0, len(lofi.Variants()))
	for _, v := range lofi.Variants() {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func writeOutput(path string, s source.Signal) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := source.WriteRaw(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
