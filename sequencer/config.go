package sequencer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hoprnet/session-core/frame"
	"github.com/hoprnet/session-core/metrics"
)

// DefaultGapTimeout is how long the Sequencer waits for a specific missing
// id before declaring it discarded and advancing past it.
const DefaultGapTimeout = 2 * time.Second

// DefaultFlushAt is the pending-queue size at which the Sequencer stops
// waiting out GapTimeout and eagerly declares gaps to bound memory use under
// sustained reordering. Zero disables eager flushing.
const DefaultFlushAt = 64

// DefaultStartID is the first id the Sequencer expects. Frame ids start at
// 1; 0 is reserved and never assigned (see frame.FrameID).
const DefaultStartID = frame.FrameID(1)

// ErrInvalidConfig is returned by New when the supplied Config fails
// validation.
var ErrInvalidConfig = errors.New("sequencer: invalid configuration")

// Config holds Sequencer configuration.
type Config struct {
	// GapTimeout is how long to wait for the next expected id before
	// declaring it discarded. Default: DefaultGapTimeout.
	GapTimeout time.Duration

	// FlushAt eagerly declares gaps once this many items are queued behind
	// one, instead of waiting the full GapTimeout. Zero disables this and
	// relies solely on GapTimeout. Default: DefaultFlushAt.
	FlushAt int

	// StartID is the first id the Sequencer expects; any id below it is
	// treated as stale. Default: DefaultStartID.
	StartID frame.FrameID

	// Logger receives structured progress/anomaly logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics receives instrument counters for emitted/discarded/stale
	// items. Default: metrics.NewNoopProvider().
	Metrics metrics.Provider
}

func defaultConfig() Config {
	return Config{
		GapTimeout: DefaultGapTimeout,
		FlushAt:    DefaultFlushAt,
		StartID:    DefaultStartID,
		Logger:     slog.Default(),
		Metrics:    metrics.NewNoopProvider(),
	}
}

func validateConfig(cfg *Config) error {
	if cfg.GapTimeout <= 0 {
		return errors.New("sequencer: GapTimeout must be positive")
	}
	if cfg.FlushAt < 0 {
		return errors.New("sequencer: FlushAt must not be negative")
	}
	if cfg.StartID == 0 {
		cfg.StartID = DefaultStartID
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}
	return nil
}
