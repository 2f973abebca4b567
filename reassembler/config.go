package reassembler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hoprnet/session-core/metrics"
)

// DefaultMaxAge is the builder time-to-live used when Config.MaxAge is left
// at its zero value. Carried over from the default the original HOPR session
// layer derives from the mixnet's own per-hop latency budget (see
// SPEC_FULL.md §4).
const DefaultMaxAge = 5 * time.Second

// defaultExpireInterval is how often the Reassembler's run loop checks
// builders for age-out. This ticker is the only age-out check (Close flushes
// every builder regardless of age); consumer pulls do not trigger one. A
// ticker keeps memory bounded even when the consumer pulls infrequently.
const defaultExpireInterval = 250 * time.Millisecond

// defaultSegmentBufferSize seeds the pool of reusable segment-data buffers.
const defaultSegmentBufferSize = 2048

// ErrInvalidConfig is returned by New when the supplied Config fails
// validation.
var ErrInvalidConfig = errors.New("reassembler: invalid configuration")

// Config holds Reassembler configuration.
type Config struct {
	// MaxAge is the builder time-to-live since its last received segment.
	// Default: DefaultMaxAge.
	MaxAge time.Duration

	// ExpireInterval is how often the run loop checks for age-out
	// independent of consumer pulls. Default: 250ms.
	ExpireInterval time.Duration

	// Logger receives structured progress/anomaly logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics receives instrument counters for completed/discarded frames and
	// duplicate segments. Default: metrics.NewNoopProvider().
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for Config.
func defaultConfig() Config {
	return Config{
		MaxAge:         DefaultMaxAge,
		ExpireInterval: defaultExpireInterval,
		Logger:         slog.Default(),
		Metrics:        metrics.NewNoopProvider(),
	}
}

// validateConfig performs lightweight invariant checks.
func validateConfig(cfg *Config) error {
	if cfg.MaxAge <= 0 {
		return errors.New("reassembler: MaxAge must be positive")
	}
	if cfg.ExpireInterval <= 0 {
		return errors.New("reassembler: ExpireInterval must be positive")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}
	return nil
}
