// Package source provides the audio inputs and outputs shared by the
// command-line hosts: MP3 decoding, generated test signals and raw
// float32 output.
package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-lofi/dsp/core"
)

// Signal is planar float32 audio.
type Signal struct {
	SampleRate int
	Channels   [][]float32
}

// Frames returns the number of complete frames across all channels.
func (s Signal) Frames() int {
	return core.BlockLen(s.Channels)
}

// Clone returns a deep copy.
func (s Signal) Clone() Signal {
	out := Signal{SampleRate: s.SampleRate, Channels: make([][]float32, len(s.Channels))}
	for c, ch := range s.Channels {
		out.Channels[c] = append([]float32(nil), ch...)
	}
	return out
}

// Mix returns channel c widened to float64, or the average of all channels
// when c is negative.
func (s Signal) Mix(c int) []float64 {
	frames := s.Frames()
	out := make([]float64, frames)
	if c >= 0 {
		core.ToFloat64(out, s.Channels[c][:frames])
		return out
	}
	if len(s.Channels) == 0 {
		return out
	}
	scale := 1 / float64(len(s.Channels))
	for _, ch := range s.Channels {
		for i := range out {
			out[i] += float64(ch[i]) * scale
		}
	}
	return out
}

// DecodeMP3 decodes an entire MP3 stream. go-mp3 always yields 16-bit
// stereo, so the result has two channels. channels == 1 folds them to mono.
func DecodeMP3(r io.Reader, channels int) (Signal, error) {
	if channels != 1 && channels != 2 {
		return Signal{}, fmt.Errorf("source: channels must be 1 or 2: %d", channels)
	}

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Signal{}, fmt.Errorf("source: mp3 decoder: %w", err)
	}

	var pcm []byte
	buf := make([]byte, 8192)
	for {
		n, readErr := dec.Read(buf)
		pcm = append(pcm, buf[:n]...)
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return Signal{}, fmt.Errorf("source: mp3 decode: %w", readErr)
		}
	}

	return fromPCM16(pcm, dec.SampleRate(), channels), nil
}

// fromPCM16 converts interleaved 16-bit stereo little endian bytes.
func fromPCM16(pcm []byte, sampleRate, channels int) Signal {
	frames := len(pcm) / 4
	inter := make([]float32, frames*2)
	for i := range inter {
		inter[i] = float32(int16(binary.LittleEndian.Uint16(pcm[i*2:]))) / 32768
	}

	stereo := [][]float32{make([]float32, frames), make([]float32, frames)}
	core.Deinterleave(stereo, inter)

	if channels == 2 {
		return Signal{SampleRate: sampleRate, Channels: stereo}
	}

	l, r := stereo[0], stereo[1]
	for f := range l {
		l[f] = 0.5 * (l[f] + r[f])
	}
	return Signal{SampleRate: sampleRate, Channels: [][]float32{l}}
}

// OpenMP3 decodes the MP3 file at path.
func OpenMP3(path string, channels int) (Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Signal{}, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	return DecodeMP3(f, channels)
}

// Tone names a generated test signal.
type Tone int

const (
	ToneSine Tone = iota
	ToneNoise
	ToneSweep
)

var toneNames = [...]string{"sine", "noise", "sweep"}

func (t Tone) String() string {
	if t < 0 || int(t) >= len(toneNames) {
		return fmt.Sprintf("Tone(%d)", int(t))
	}
	return toneNames[t]
}

// ParseTone accepts "sine", "noise" or "sweep".
func ParseTone(s string) (Tone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range toneNames {
		if s == name {
			return Tone(i), nil
		}
	}
	return 0, fmt.Errorf("source: unknown tone %q", s)
}

// ToneConfig describes a generated signal. Sweeps run exponentially from
// FreqHz to SampleRate/2.2 over the whole duration.
type ToneConfig struct {
	Tone       Tone
	FreqHz     float64
	Amplitude  float64
	SampleRate int
	Frames     int
	Channels   int
	Seed       int64
}

// Generate renders a deterministic test signal. Every channel carries
// the same content except for noise, which is seeded per channel.
func Generate(cfg ToneConfig) (Signal, error) {
	switch {
	case cfg.SampleRate <= 0:
		return Signal{}, fmt.Errorf("source: sample rate must be > 0: %d", cfg.SampleRate)
	case cfg.Frames < 0:
		return Signal{}, fmt.Errorf("source: frames must be >= 0: %d", cfg.Frames)
	case cfg.Channels != 1 && cfg.Channels != 2:
		return Signal{}, fmt.Errorf("source: channels must be 1 or 2: %d", cfg.Channels)
	case !(cfg.Amplitude >= 0 && cfg.Amplitude <= 1):
		return Signal{}, fmt.Errorf("source: amplitude must be in [0, 1]: %f", cfg.Amplitude)
	case cfg.Tone != ToneNoise && !(cfg.FreqHz > 0 && cfg.FreqHz < float64(cfg.SampleRate)/2):
		return Signal{}, fmt.Errorf("source: frequency must be in (0, %d): %f", cfg.SampleRate/2, cfg.FreqHz)
	}

	out := Signal{SampleRate: cfg.SampleRate, Channels: make([][]float32, cfg.Channels)}
	for c := range out.Channels {
		ch := make([]float32, cfg.Frames)
		switch cfg.Tone {
		case ToneSine:
			step := 2 * math.Pi * cfg.FreqHz / float64(cfg.SampleRate)
			for i := range ch {
				ch[i] = float32(cfg.Amplitude * math.Sin(step*float64(i)))
			}
		case ToneNoise:
			rng := rand.New(rand.NewSource(cfg.Seed + int64(c)))
			for i := range ch {
				ch[i] = float32(cfg.Amplitude * (rng.Float64()*2 - 1))
			}
		case ToneSweep:
			sweep(ch, cfg)
		default:
			return Signal{}, fmt.Errorf("source: unknown tone %v", cfg.Tone)
		}
		out.Channels[c] = ch
	}
	return out, nil
}

func sweep(dst []float32, cfg ToneConfig) {
	sr := float64(cfg.SampleRate)
	f0 := cfg.FreqHz
	f1 := math.Max(sr/2.2, f0)
	duration := float64(len(dst)) / sr
	if duration == 0 {
		return
	}

	k := math.Log(f1 / f0)
	for i := range dst {
		t := float64(i) / sr
		var phase float64
		if k == 0 {
			phase = 2 * math.Pi * f0 * t
		} else {
			phase = 2 * math.Pi * f0 * duration / k * (math.Exp(t/duration*k) - 1)
		}
		dst[i] = float32(cfg.Amplitude * math.Sin(phase))
	}
}

// WriteRaw writes s as interleaved float32 little endian frames.
func WriteRaw(w io.Writer, s Signal) error {
	if len(s.Channels) == 0 {
		return nil
	}
	frames := s.Frames()
	inter := make([]float32, frames*len(s.Channels))
	core.Interleave(inter, s.Channels)

	if err := binary.Write(w, binary.LittleEndian, inter); err != nil {
		return fmt.Errorf("source: write raw: %w", err)
	}
	return nil
}
