// Command lofiplay plays a test tone or an MP3 file through a lo-fi
// variant in real time, with a terminal panel for live parameter changes.
//
// Usage:
//
//	lofiplay [flags] [file.mp3]
//
// Examples:
//
//	lofiplay -variant linear song.mp3
//	lofiplay -variant dust-ring -tone noise
//	lofiplay -variant dust-lookahead -block 256 -tone sweep
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/effects/lofi"
	"github.com/cwbudde/algo-lofi/internal/source"
)

func main() {
	variantName := flag.String("variant", "linear", "variant: "+variantList())
	block := flag.Int("block", 512, "processing block size in frames")
	channels := flag.Int("channels", 2, "channel count (1 or 2)")
	toneName := flag.String("tone", "sine", "generated signal: sine, noise or sweep")
	freq := flag.Float64("freq", 220, "test tone frequency (sweep start) in Hz")
	level := flag.Float64("level", 0.3, "test tone amplitude [0, 1]")
	seconds := flag.Float64("seconds", 4, "test tone loop length in seconds")
	sampleRate := flag.Int("sr", 48000, "test tone sample rate in Hz")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lofiplay [flags] [file.mp3]\n\n")
		fmt.Fprintf(os.Stderr, "Loops a test signal or MP3 file through a lo-fi variant.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lofiplay -variant linear song.mp3\n")
		fmt.Fprintf(os.Stderr, "  lofiplay -variant dust-ring -tone noise\n")
	}
	flag.Parse()

	variant, err := lofi.ParseVariant(*variantName)
	if err != nil {
		log.Fatalf("lofiplay: %v", err)
	}

	var signal source.Signal
	title := variant.Name()
	if path := flag.Arg(0); path != "" {
		signal, err = source.OpenMP3(path, *channels)
		title += " - " + path
	} else {
		var tone source.Tone
		tone, err = source.ParseTone(*toneName)
		if err == nil {
			signal, err = source.Generate(source.ToneConfig{
				Tone:       tone,
				FreqHz:     *freq,
				Amplitude:  *level,
				SampleRate: *sampleRate,
				Frames:     int(*seconds * float64(*sampleRate)),
				Channels:   *channels,
				Seed:       1,
			})
		}
		title += " - " + *toneName
	}
	if err != nil {
		log.Fatalf("lofiplay: %v", err)
	}

	params, err := lofi.NewParamSet(variant)
	if err != nil {
		log.Fatalf("lofiplay: %v", err)
	}

	if *block < 1 {
		log.Fatalf("lofiplay: block size must be >= 1: %d", *block)
	}
	layout := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(signal.SampleRate)),
		core.WithMaxBlockSize(*block),
		core.WithChannels(len(signal.Channels)),
	)

	proc, err := newProcessor(variant, signal, params, layout)
	if err != nil {
		log.Fatalf("lofiplay: %v", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(layout.SampleRate),
		ChannelCount: layout.Channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		log.Fatalf("lofiplay: audio output: %v", err)
	}
	<-ready

	out := ctx.NewPlayer(proc)
	out.Play()
	log.Printf("playing %.0f Hz, %d channels, %d-frame blocks, latency %d samples",
		layout.SampleRate, layout.Channels, layout.MaxBlockSize, proc.engine.Latency())

	_, runErr := tea.NewProgram(newModel(title, params, proc), tea.WithAltScreen()).Run()

	if err := out.Close(); err != nil {
		log.Printf("lofiplay: close output: %v", err)
	}
	if runErr != nil {
		log.Fatalf("lofiplay: %v", runErr)
	}
}

func variantList() string {
	names := make([]string, 0, len(lofi.Variants()))
	for _, v := range lofi.Variants() {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}
