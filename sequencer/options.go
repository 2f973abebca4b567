package sequencer

import (
	"log/slog"
	"time"

	"github.com/hoprnet/session-core/frame"
	"github.com/hoprnet/session-core/metrics"
)

// Option configures a Sequencer at construction time.
type Option func(*Config)

// WithGapTimeout overrides how long the Sequencer waits for a missing id
// before declaring it discarded.
func WithGapTimeout(d time.Duration) Option {
	return func(c *Config) { c.GapTimeout = d }
}

// WithFlushAt overrides the eager-flush queue-depth threshold. Zero disables
// eager flushing.
func WithFlushAt(n int) Option {
	return func(c *Config) { c.FlushAt = n }
}

// WithStartID overrides the first id the Sequencer expects. Zero is ignored
// since frame ids never use it; the default (DefaultStartID) applies instead.
func WithStartID(id frame.FrameID) Option {
	return func(c *Config) {
		if id != 0 {
			c.StartID = id
		}
	}
}

// WithLogger overrides the structured logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithMetrics overrides the metrics provider. A nil provider is ignored.
func WithMetrics(p metrics.Provider) Option {
	return func(c *Config) {
		if p != nil {
			c.Metrics = p
		}
	}
}
