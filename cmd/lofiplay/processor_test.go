package main

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/effects/lofi"
	"github.com/cwbudde/algo-lofi/dsp/param"
	"github.com/cwbudde/algo-lofi/internal/source"
)

func newTestProcessor(t *testing.T, v lofi.Variant, channels [][]float32, maxBlock int) *processor {
	t.Helper()
	params, err := lofi.NewParamSet(v)
	if err != nil {
		t.Fatalf("NewParamSet() error = %v", err)
	}
	layout := core.ApplyProcessorOptions(
		core.WithMaxBlockSize(maxBlock),
		core.WithChannels(len(channels)),
	)
	p, err := newProcessor(v, source.Signal{SampleRate: 48000, Channels: channels}, params, layout)
	if err != nil {
		t.Fatalf("newProcessor() error = %v", err)
	}
	return p
}

func decodeFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func TestProcessorBypassLoopsSource(t *testing.T) {
	src := []float32{0.1, -0.2, 0.3, -0.4, 0.9, 0, 0.5, -0.5, 0.25, 0.75}
	p := newTestProcessor(t, lofi.VariantLinearInterpolator, [][]float32{src}, 8)
	p.SetBypass(true)

	buf := make([]byte, 25*4)
	n, err := p.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read() = %d, want %d", n, len(buf))
	}

	for i, v := range decodeFloats(buf) {
		if v != src[i%len(src)] {
			t.Fatalf("sample %d = %f, want %f", i, v, src[i%len(src)])
		}
	}
	if p.Peak() != 0.9 {
		t.Fatalf("Peak() = %f, want 0.9", p.Peak())
	}
	if got := p.Position(); math.Abs(got-5.0/48000) > 1e-12 {
		t.Fatalf("Position() = %g", got)
	}
}

func TestProcessorReadsWholeFrames(t *testing.T) {
	p := newTestProcessor(t, lofi.VariantDustRing, [][]float32{{0.5, 0.5}, {0.5, 0.5}}, 4)

	n, err := p.Read(make([]byte, 8*3+5))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 24 {
		t.Fatalf("Read() = %d, want 24", n)
	}
}

func TestProcessorAppliesParameters(t *testing.T) {
	p := newTestProcessor(t, lofi.VariantDustRing, [][]float32{{0.1, 0.2, 0.3}}, 16)

	if _, err := p.params.Store(lofi.ParamAmount, 5); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if _, err := p.params.Store(lofi.ParamInvert, 1); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if _, err := p.Read(make([]byte, 64)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if p.engine.Amount() != 5 || !p.engine.Invert() {
		t.Fatalf("engine controls = %+v", p.engine.Controls())
	}

	p.SetBypass(true)
	if _, err := p.params.Store(lofi.ParamAmount, 9); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if _, err := p.Read(make([]byte, 64)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if p.engine.Amount() != 5 {
		t.Fatalf("bypassed engine amount = %g, want 5", p.engine.Amount())
	}
}

func TestProcessorMatchesEngine(t *testing.T) {
	src := make([]float32, 200)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.05))
	}
	p := newTestProcessor(t, lofi.VariantLinearInterpolator, [][]float32{src}, 32)

	buf := make([]byte, len(src)*4)
	if _, err := p.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	ref, err := lofi.NewEngine(lofi.VariantLinearInterpolator, lofi.WithChannels(1), lofi.WithMaxBlockSize(32))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	want := append([]float32(nil), src...)
	ref.Process([][]float32{want})

	for i, v := range decodeFloats(buf) {
		if v != want[i] {
			t.Fatalf("sample %d = %f, want %f", i, v, want[i])
		}
	}
}

func TestProcessorReset(t *testing.T) {
	p := newTestProcessor(t, lofi.VariantDustLookahead, [][]float32{{0.5, -0.5, 0.25}}, 4)

	if _, err := p.Read(make([]byte, 64)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	p.RequestReset()
	if _, err := p.Read(make([]byte, 16)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if p.resetReq.Load() {
		t.Fatal("reset request not consumed")
	}
}

func TestProcessorEmptySignalIsSilent(t *testing.T) {
	p := newTestProcessor(t, lofi.VariantLinearInterpolator, [][]float32{{}}, 8)

	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = 0xff
	}
	if _, err := p.Read(buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	for i, v := range decodeFloats(buf) {
		if v != 0 {
			t.Fatalf("sample %d = %f, want 0", i, v)
		}
	}
	if p.Position() != 0 {
		t.Fatalf("Position() = %g", p.Position())
	}
}

func TestNewProcessorRejectsLayoutMismatch(t *testing.T) {
	params, err := lofi.NewParamSet(lofi.VariantDustRing)
	if err != nil {
		t.Fatalf("NewParamSet() error = %v", err)
	}
	stereo := core.ApplyProcessorOptions(core.WithChannels(2))
	mono := source.Signal{SampleRate: 48000, Channels: [][]float32{{0.1}}}
	if _, err := newProcessor(lofi.VariantDustRing, mono, params, stereo); err == nil {
		t.Fatal("expected error")
	}
}

func TestProcessorLookaheadDelayAcrossPulls(t *testing.T) {
	src := make([]float32, 40)
	for i := range src {
		src[i] = float32(i+1) / 64
	}
	p := newTestProcessor(t, lofi.VariantDustLookahead, [][]float32{src}, 8)
	if _, err := p.params.Store(lofi.ParamAmount, 0); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	// Pulls of 13 frames split into 8+5 frame engine blocks.
	var got []float32
	for range 3 {
		buf := make([]byte, 13*4)
		if _, err := p.Read(buf); err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got = append(got, decodeFloats(buf)...)
	}

	latency := p.engine.Latency()
	for i, v := range got {
		want := src[i]
		if i >= latency {
			want = src[i-latency]
		}
		if v != want {
			t.Fatalf("sample %d = %f, want %f (latency %d)", i, v, want, latency)
		}
	}
}

func TestProcessorCountsClampedControls(t *testing.T) {
	p := newTestProcessor(t, lofi.VariantDustRing, [][]float32{{0.1, 0.2, 0.3}}, 8)

	wide, err := param.NewSet(param.Int(lofi.ParamAmount, "Amount", 0, 1000, 500))
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}
	p.params = wide

	read := func() {
		t.Helper()
		if _, err := p.Read(make([]byte, 64)); err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}

	read()
	read()
	if p.Clamped() != 1 {
		t.Fatalf("Clamped() = %d, want 1", p.Clamped())
	}
	if p.engine.Amount() != 100 {
		t.Fatalf("engine amount = %g, want 100", p.engine.Amount())
	}

	if _, err := wide.Store(lofi.ParamAmount, 600); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	read()
	if p.Clamped() != 2 {
		t.Fatalf("Clamped() = %d, want 2", p.Clamped())
	}

	if _, err := wide.Store(lofi.ParamAmount, 50); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	read()
	if p.Clamped() != 2 || p.engine.Amount() != 50 {
		t.Fatalf("Clamped() = %d amount = %g, want 2 and 50", p.Clamped(), p.engine.Amount())
	}
}
