package session

import (
	"log/slog"
	"sync"

	"github.com/hoprnet/session-core/reassembler"
	"github.com/hoprnet/session-core/sequencer"
)

// Output is delivered by a Reconstructor. Exactly one of Frame or Err is
// set: Err is non-nil (and satisfies AsDiscarded) when the sequencer skipped
// a frame_id: on gap timeout, on reaching its FlushAt threshold, or at
// Close. Discards from reassembly age-out are not forwarded; such a frame_id
// is reported only through the sequencer's own gap handling.
type Output struct {
	Frame Frame
	Err   error
}

// reconstructorConfig holds Reconstructor-level configuration. The two
// composed stages are configured through their own Option types, passed in
// via WithReassemblerOptions/WithSequencerOptions.
type reconstructorConfig struct {
	logger          *slog.Logger
	outBufferSize   int
	reassemblerOpts []reassembler.Option
	sequencerOpts   []sequencer.Option
}

func defaultReconstructorConfig() reconstructorConfig {
	return reconstructorConfig{
		logger:        slog.Default(),
		outBufferSize: 64,
	}
}

// ReconstructorOption configures a Reconstructor at construction time.
type ReconstructorOption func(*reconstructorConfig)

// WithReconstructorLogger overrides the logger used for composition-level
// events (forwarding, shutdown). A nil logger is ignored.
func WithReconstructorLogger(l *slog.Logger) ReconstructorOption {
	return func(c *reconstructorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReassemblerOptions passes options through to the underlying
// reassembler.Reassembler.
func WithReassemblerOptions(opts ...reassembler.Option) ReconstructorOption {
	return func(c *reconstructorConfig) { c.reassemblerOpts = append(c.reassemblerOpts, opts...) }
}

// WithSequencerOptions passes options through to the underlying
// sequencer.Sequencer.
func WithSequencerOptions(opts ...sequencer.Option) ReconstructorOption {
	return func(c *reconstructorConfig) { c.sequencerOpts = append(c.sequencerOpts, opts...) }
}

// WithOutputBufferSize overrides the buffer depth of the Reconstructor's
// output channel.
func WithOutputBufferSize(n int) ReconstructorOption {
	return func(c *reconstructorConfig) {
		if n >= 0 {
			c.outBufferSize = n
		}
	}
}

// Reconstructor composes a Reassembler and a Sequencer into the full
// segments-to-ordered-frames pipeline.
type Reconstructor struct {
	reassembler *reassembler.Reassembler
	sequencer   *sequencer.Sequencer[Frame]

	out chan Output

	reassemblerFwdWG sync.WaitGroup
	sequencerRelayWG sync.WaitGroup

	lifecycle *lifecycleCoordinator
}

// NewReconstructor constructs and wires a Reassembler and Sequencer pair.
func NewReconstructor(opts ...ReconstructorOption) (*Reconstructor, error) {
	cfg := defaultReconstructorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ra, err := reassembler.New(cfg.reassemblerOpts...)
	if err != nil {
		return nil, err
	}
	seq, err := sequencer.New[Frame](cfg.sequencerOpts...)
	if err != nil {
		ra.Close()
		return nil, err
	}

	rc := &Reconstructor{
		reassembler: ra,
		sequencer:   seq,
		out:         make(chan Output, cfg.outBufferSize),
	}

	fwd := newForwarder(ra.Frames(), seq.Send, cfg.logger)
	rc.reassemblerFwdWG.Add(1)
	go func() {
		defer rc.reassemblerFwdWG.Done()
		fwd.run()
	}()

	rc.sequencerRelayWG.Add(1)
	go func() {
		defer rc.sequencerRelayWG.Done()
		for res := range seq.Output() {
			if res.Err != nil {
				cfg.logger.Warn("frame discarded by sequencer", "error", res.Err)
				rc.out <- Output{Err: res.Err}
				continue
			}
			rc.out <- Output{Frame: res.Item}
		}
	}()

	rc.lifecycle = newLifecycleCoordinator(
		ra.Close,
		&rc.reassemblerFwdWG,
		seq.Close,
		&rc.sequencerRelayWG,
		func() { close(rc.out) },
	)

	return rc, nil
}

// Send offers a segment to the reassembler.
func (rc *Reconstructor) Send(s Segment) error {
	return rc.reassembler.Send(s)
}

// Output returns the channel of ordered frames and discard notices. It is
// closed once Close has fully drained both stages.
func (rc *Reconstructor) Output() <-chan Output {
	return rc.out
}

// Stats reports counters from both composed stages.
type Stats struct {
	Reassembler reassembler.Stats
	Sequencer   sequencer.Stats
}

// Stats returns a snapshot of both stages' counters.
func (rc *Reconstructor) Stats() Stats {
	return Stats{
		Reassembler: rc.reassembler.Stats(),
		Sequencer:   rc.sequencer.Stats(),
	}
}

// Close shuts the pipeline down in order: the reassembler first, then the
// sequencer. Before Output closes, every completed frame already in flight
// is delivered and every missing frame_id below the highest completed one is
// reported discarded. An incomplete frame whose frame_id is above every
// completed one is dropped without a discard notice.
func (rc *Reconstructor) Close() {
	rc.lifecycle.Close()
}
