package main

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/effects/lofi"
	"github.com/cwbudde/algo-lofi/internal/source"
)

type renderConfig struct {
	variant     lofi.Variant
	controls    lofi.Controls
	blockSize   int
	sweepAmount bool
}

type renderResult struct {
	wet     source.Signal
	latency int
	blocks  int
}

// resolveControls applies overrides to the variant's parameter set.
// Overrides for parameters the variant lacks are reported and skipped;
// stored values are constrained to the parameter ranges.
func resolveControls(v lofi.Variant, overrides map[string]float64, logf func(string, ...any)) (lofi.Controls, error) {
	set, err := lofi.NewParamSet(v)
	if err != nil {
		return lofi.Controls{}, err
	}

	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if !v.Supports(id) {
			logf("%s has no %s parameter, ignoring", v, id)
			continue
		}
		want := overrides[id]
		got, err := set.Store(id, want)
		if err != nil {
			return lofi.Controls{}, err
		}
		if got != want {
			logf("%s %s constrained to %s", v, id, set.Lookup(id).Format(got))
		}
	}

	return lofi.ControlsFrom(v, set), nil
}

// render processes a copy of dry in blocks of cfg.blockSize frames.
func render(dry source.Signal, cfg renderConfig) (renderResult, error) {
	if cfg.blockSize < 1 {
		return renderResult{}, fmt.Errorf("block size must be >= 1: %d", cfg.blockSize)
	}

	layout := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(dry.SampleRate)),
		core.WithMaxBlockSize(cfg.blockSize),
		core.WithChannels(len(dry.Channels)),
	)

	engine, err := lofi.NewEngine(cfg.variant,
		lofi.WithProcessorConfig(layout),
		lofi.WithControls(cfg.controls),
	)
	if err != nil {
		return renderResult{}, err
	}

	wet := dry.Clone()
	frames := wet.Frames()

	var auto lofi.Automation
	if cfg.sweepAmount {
		auto = amountSweep(cfg.controls, float64(cfg.variant.AmountMax()), frames)
	}

	block := make([][]float32, len(wet.Channels))
	blocks := 0
	for start := 0; start < frames; start += layout.MaxBlockSize {
		end := min(start+layout.MaxBlockSize, frames)
		for c, ch := range wet.Channels {
			block[c] = ch[start:end]
		}
		if auto != nil {
			engine.ProcessAutomated(block, auto)
		} else {
			engine.Process(block)
		}
		blocks++
	}

	return renderResult{wet: wet, latency: engine.Latency(), blocks: blocks}, nil
}

// amountSweep ramps Amount linearly from 0 to maxAmount over frames.
func amountSweep(base lofi.Controls, maxAmount float64, frames int) lofi.Automation {
	frame := 0
	span := float64(max(frames-1, 1))
	return lofi.AutomationFunc(func() lofi.Controls {
		c := base
		c.Amount = maxAmount * float64(frame) / span
		frame++
		return c
	})
}
