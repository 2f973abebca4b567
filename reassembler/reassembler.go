package reassembler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoprnet/session-core/frame"
	"github.com/hoprnet/session-core/internal/bufpool"
)

// Result is delivered on the Frames channel. Exactly one of Frame or Err is
// set: Err is non-nil (and satisfies frame.AsDiscarded) when a frame_id aged
// out before every segment arrived.
type Result struct {
	Frame frame.Frame
	Err   error
}

// Stats is a point-in-time snapshot of Reassembler counters.
type Stats struct {
	FramesCompleted   int64
	FramesDiscarded   int64
	DuplicateSegments int64
	PendingBuilders   int64
}

// Reassembler groups Segments into Frames over an unordered, lossy,
// duplicating channel.
type Reassembler struct {
	cfg Config

	ingress chan frame.Segment
	out     chan Result
	closeCh chan struct{}
	done    chan struct{}

	closeOnce sync.Once

	segPool *bufpool.Pool

	framesCompleted   atomic.Int64
	framesDiscarded   atomic.Int64
	duplicateSegments atomic.Int64
	pendingBuilders   atomic.Int64
}

// New constructs a Reassembler and starts its run loop. The returned
// Reassembler must eventually be Closed to release its goroutine.
func New(opts ...Option) (*Reassembler, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	r := &Reassembler{
		cfg:     cfg,
		ingress: make(chan frame.Segment),
		out:     make(chan Result, 64),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
		segPool: bufpool.New(defaultSegmentBufferSize),
	}
	go r.run()
	return r, nil
}

// Send offers a segment to the Reassembler, blocking until the run loop
// accepts it or the Reassembler is closed.
func (r *Reassembler) Send(s frame.Segment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	select {
	case <-r.closeCh:
		return frame.ErrReassemblerClosed
	default:
	}
	select {
	case r.ingress <- s:
		return nil
	case <-r.closeCh:
		return frame.ErrReassemblerClosed
	}
}

// Frames returns the channel of completed and discarded frames. It is closed
// once Close has been called and every in-flight builder has been flushed.
func (r *Reassembler) Frames() <-chan Result {
	return r.out
}

// Close stops accepting new segments, flushes every pending builder as
// discarded, and blocks until the run loop has exited and Frames is closed.
func (r *Reassembler) Close() {
	r.closeOnce.Do(func() { close(r.closeCh) })
	<-r.done
}

// Stats returns a snapshot of the Reassembler's counters.
func (r *Reassembler) Stats() Stats {
	return Stats{
		FramesCompleted:   r.framesCompleted.Load(),
		FramesDiscarded:   r.framesDiscarded.Load(),
		DuplicateSegments: r.duplicateSegments.Load(),
		PendingBuilders:   r.pendingBuilders.Load(),
	}
}

func (r *Reassembler) run() {
	defer close(r.done)

	builders := make(map[frame.FrameID]*frameBuilder)
	ticker := time.NewTicker(r.cfg.ExpireInterval)
	defer ticker.Stop()

	ingress := r.ingress
	closeCh := r.closeCh
	closed := false

	for {
		if closed && len(builders) == 0 {
			close(r.out)
			return
		}

		select {
		case s := <-ingress:
			r.ingest(builders, s)
		case now := <-ticker.C:
			r.expire(builders, now)
		case <-closeCh:
			closed = true
			closeCh = nil
			ingress = nil
			r.expireAll(builders)
		}
	}
}

func (r *Reassembler) ingest(builders map[frame.FrameID]*frameBuilder, s frame.Segment) {
	now := time.Now()

	b, ok := builders[s.FrameID]
	if !ok {
		s = r.copyIntoPool(s)
		builders[s.FrameID] = newFrameBuilder(s, now)
		r.pendingBuilders.Add(1)
		r.cfg.Metrics.UpDownCounter("reassembler_pending_builders").Add(1)
		return
	}

	if s.SeqLen != b.seqLen {
		r.cfg.Logger.Warn("segment rejected: seq_len mismatch",
			"frame_id", s.FrameID, "seq_idx", s.SeqIdx, "seq_len", s.SeqLen, "want_seq_len", b.seqLen)
		return
	}

	if b.has(s.SeqIdx) {
		b.touch(now)
		r.duplicateSegments.Add(1)
		r.cfg.Metrics.Counter("reassembler_duplicate_segments").Add(1)
		return
	}

	s = r.copyIntoPool(s)
	b.put(s, now)

	if b.complete() {
		delete(builders, s.FrameID)
		r.pendingBuilders.Add(-1)
		r.cfg.Metrics.UpDownCounter("reassembler_pending_builders").Add(-1)

		fr := b.build(r.segPool)
		r.framesCompleted.Add(1)
		r.cfg.Metrics.Counter("reassembler_frames_completed").Add(1)
		r.cfg.Logger.Debug("frame completed", "frame_id", fr.FrameID, "bytes", len(fr.Data))
		r.emit(Result{Frame: fr})
	}
}

func (r *Reassembler) expire(builders map[frame.FrameID]*frameBuilder, now time.Time) {
	for id, b := range builders {
		if !b.expired(now, r.cfg.MaxAge) {
			continue
		}
		delete(builders, id)
		b.release(r.segPool)
		r.pendingBuilders.Add(-1)
		r.cfg.Metrics.UpDownCounter("reassembler_pending_builders").Add(-1)

		r.framesDiscarded.Add(1)
		r.cfg.Metrics.Counter("reassembler_frames_discarded").Add(1)
		r.cfg.Logger.Warn("frame discarded: age bound elapsed", "frame_id", id, "remaining", b.remaining())
		r.emit(Result{Err: frame.NewDiscardedError(id)})
	}
}

func (r *Reassembler) expireAll(builders map[frame.FrameID]*frameBuilder) {
	for id, b := range builders {
		delete(builders, id)
		b.release(r.segPool)
		r.pendingBuilders.Add(-1)
		r.cfg.Metrics.UpDownCounter("reassembler_pending_builders").Add(-1)

		r.framesDiscarded.Add(1)
		r.cfg.Metrics.Counter("reassembler_frames_discarded").Add(1)
		r.cfg.Logger.Warn("frame discarded: reassembler closing", "frame_id", id)
		r.emit(Result{Err: frame.NewDiscardedError(id)})
	}
}

// emit is a blocking send: the run loop is the only writer to out, and out
// stays open until every flushed builder has been delivered.
func (r *Reassembler) emit(res Result) {
	r.out <- res
}

func (r *Reassembler) copyIntoPool(s frame.Segment) frame.Segment {
	buf := r.segPool.Get()
	buf = append(buf, s.Data...)
	s.Data = buf
	return s
}
