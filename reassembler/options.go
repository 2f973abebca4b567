package reassembler

import (
	"log/slog"
	"time"

	"github.com/hoprnet/session-core/metrics"
)

// Option configures a Reassembler at construction time.
type Option func(*Config)

// WithMaxAge overrides the builder time-to-live.
func WithMaxAge(d time.Duration) Option {
	return func(c *Config) { c.MaxAge = d }
}

// WithExpireInterval overrides how often the run loop sweeps for age-out
// independent of consumer pulls.
func WithExpireInterval(d time.Duration) Option {
	return func(c *Config) { c.ExpireInterval = d }
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
