package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/effects/lofi"
	"github.com/cwbudde/algo-lofi/dsp/param"
	"github.com/cwbudde/algo-lofi/internal/source"
)

// processor is the io.Reader the audio output pulls from. It loops the
// source, runs it through the engine and writes interleaved float32 LE.
// Read runs on the audio goroutine only; the UI talks to it through
// the parameter set and the atomic flags.
type processor struct {
	variant lofi.Variant
	engine  *lofi.Engine
	params  *param.Set
	signal  source.Signal
	pos     int

	scratch [][]float32
	block   [][]float32
	inter   []float32

	bypass    atomic.Bool
	resetReq  atomic.Bool
	peak      atomic.Uint32
	frames    atomic.Int64
	clamped   atomic.Int64
	lastClamp lofi.Controls
}

func newProcessor(v lofi.Variant, signal source.Signal, params *param.Set, layout core.ProcessorConfig) (*processor, error) {
	if layout.Channels != len(signal.Channels) {
		return nil, fmt.Errorf("lofiplay: layout has %d channels, source has %d", layout.Channels, len(signal.Channels))
	}

	engine, err := lofi.NewEngine(v,
		lofi.WithProcessorConfig(layout),
		lofi.WithControls(lofi.ControlsFrom(v, params)),
	)
	if err != nil {
		return nil, err
	}

	maxBlock := engine.MaxBlockSize()

	p := &processor{
		variant: v,
		engine:  engine,
		params:  params,
		signal:  signal,
		scratch: make([][]float32, len(signal.Channels)),
		block:   make([][]float32, len(signal.Channels)),
		inter:   make([]float32, maxBlock*len(signal.Channels)),
	}
	for c := range p.scratch {
		p.scratch[c] = make([]float32, maxBlock)
	}
	return p, nil
}

// Read fills p with whole frames.
func (p *processor) Read(b []byte) (int, error) {
	channels := len(p.scratch)
	frameBytes := 4 * channels
	frames := len(b) / frameBytes
	maxBlock := p.engine.MaxBlockSize()

	if p.resetReq.Swap(false) {
		p.engine.Reset()
	}

	peak := float32(0)
	for done := 0; done < frames; {
		n := min(maxBlock, frames-done)
		p.fill(n)

		if !p.bypass.Load() {
			p.applyControls()
			p.engine.Process(p.block)
		}

		p.inter = core.EnsureLen(p.inter, n*channels)
		core.Interleave(p.inter, p.block)
		out := b[done*frameBytes:]
		for i, v := range p.inter {
			if a := float32(math.Abs(float64(v))); a > peak {
				peak = a
			}
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
		}
		done += n
	}

	p.peak.Store(math.Float32bits(peak))
	p.frames.Add(int64(frames))
	return frames * frameBytes, nil
}

// applyControls hands the current parameter values to the engine. Values
// the engine had to clamp are counted so the UI can show the mismatch.
// Controls only change between blocks.
func (p *processor) applyControls() {
	want := lofi.ControlsFrom(p.variant, p.params)
	got := p.engine.ApplyControls(want)
	if got != want && want != p.lastClamp {
		p.clamped.Add(1)
		p.lastClamp = want
	}
}

// Clamped returns how many distinct parameter states the engine had to
// clamp into range.
func (p *processor) Clamped() int64 { return p.clamped.Load() }

// fill copies the next n looped source frames into the block views.
func (p *processor) fill(n int) {
	total := p.signal.Frames()
	for c := range p.scratch {
		p.block[c] = p.scratch[c][:n]
	}

	if total == 0 {
		for c := range p.block {
			clear(p.block[c])
		}
		return
	}

	for i := 0; i < n; {
		k := 0
		for c := range p.block {
			k = core.CopyInto(p.block[c][i:], p.signal.Channels[c][p.pos:total])
		}
		i += k
		p.pos = (p.pos + k) % total
	}
}

// Peak returns the absolute peak of the last buffer handed to the output.
func (p *processor) Peak() float32 {
	return math.Float32frombits(p.peak.Load())
}

// Position returns the playback position within the source in seconds.
func (p *processor) Position() float64 {
	total := p.signal.Frames()
	if total == 0 || p.signal.SampleRate == 0 {
		return 0
	}
	return float64(p.frames.Load()%int64(total)) / float64(p.signal.SampleRate)
}

// SetBypass routes the source to the output unprocessed.
func (p *processor) SetBypass(on bool) { p.bypass.Store(on) }

// Bypassed reports whether processing is bypassed.
func (p *processor) Bypassed() bool { return p.bypass.Load() }

// RequestReset clears the engine state before the next buffer.
func (p *processor) RequestReset() { p.resetReq.Store(true) }
