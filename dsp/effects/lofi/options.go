package lofi

import (
	"fmt"

	"github.com/cwbudde/algo-lofi/dsp/core"
)

const (
	defaultChannels     = 2
	defaultMaxBlockSize = 1024
	maxChannels         = 2
	maxBlockSizeLimit   = 1 << 16
)

// Option mutates engine construction parameters.
type Option func(*config) error

type config struct {
	channels     int
	maxBlockSize int
	maxAmount    int // 0 selects the variant maximum
	controls     *Controls
}

func defaultConfig() config {
	return config{
		channels:     defaultChannels,
		maxBlockSize: defaultMaxBlockSize,
	}
}

// WithChannels sets the channel count: 1 (mono) or 2 (stereo).
// Channel state is allocated eagerly for this many channels.
func WithChannels(channels int) Option {
	return func(cfg *config) error {
		if channels < 1 || channels > maxChannels {
			return fmt.Errorf("lofi channels must be in [1, %d]: %d", maxChannels, channels)
		}
		cfg.channels = channels
		return nil
	}
}

// WithMaxBlockSize sets the largest block the host will deliver.
// Range: [1, 65536].
func WithMaxBlockSize(size int) Option {
	return func(cfg *config) error {
		if size < 1 || size > maxBlockSizeLimit {
			return fmt.Errorf("lofi max block size must be in [1, %d]: %d", maxBlockSizeLimit, size)
		}
		cfg.maxBlockSize = size
		return nil
	}
}

// WithProcessorConfig takes the channel count and block size from a
// negotiated host layout.
func WithProcessorConfig(pc core.ProcessorConfig) Option {
	return func(cfg *config) error {
		if err := WithChannels(pc.Channels)(cfg); err != nil {
			return err
		}
		return WithMaxBlockSize(pc.MaxBlockSize)(cfg)
	}
}

// WithMaxAmount bounds the history depth. The history holds maxAmount+1
// samples, which is also the warm-up length of the ring-based variants.
// It must not exceed the variant's amount range; that is checked by NewEngine.
func WithMaxAmount(maxAmount int) Option {
	return func(cfg *config) error {
		if maxAmount < 1 {
			return fmt.Errorf("lofi max amount must be >= 1: %d", maxAmount)
		}
		cfg.maxAmount = maxAmount
		return nil
	}
}

// WithControls sets the initial controls. They are validated against the
// variant by NewEngine.
func WithControls(c Controls) Option {
	return func(cfg *config) error {
		cfg.controls = &c
		return nil
	}
}
