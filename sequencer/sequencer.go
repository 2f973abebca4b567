package sequencer

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoprnet/session-core/frame"
)

// Item is anything the Sequencer can order: it must expose the monotonically
// assigned id it is keyed by. frame.Frame satisfies Item.
type Item interface {
	ID() frame.FrameID
}

// Output is delivered on the Sequencer's Output channel. Exactly one of Item
// or Err is set: Err is non-nil (and satisfies frame.AsDiscarded) when an id
// was skipped: it did not arrive within GapTimeout, the FlushAt threshold was
// reached while it was missing, or Close caught up past it.
type Output[T Item] struct {
	Item T
	Err  error
}

// Stats is a point-in-time snapshot of Sequencer counters.
type Stats struct {
	Emitted   int64
	Discarded int64
	Stale     int64
}

// Sequencer orders items by id over an unordered, lossy, duplicating
// channel, reporting ids that never arrive in time as discarded.
type Sequencer[T Item] struct {
	cfg Config

	ingress chan T
	out     chan Output[T]
	closeCh chan struct{}
	done    chan struct{}

	closeOnce sync.Once

	emitted   atomic.Int64
	discarded atomic.Int64
	stale     atomic.Int64
}

// New constructs a Sequencer and starts its run loop. The returned Sequencer
// must eventually be Closed to release its goroutine.
func New[T Item](opts ...Option) (*Sequencer[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	s := &Sequencer[T]{
		cfg:     cfg,
		ingress: make(chan T),
		out:     make(chan Output[T], 64),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Send offers an item to the Sequencer, blocking until the run loop accepts
// it or the Sequencer is closed.
func (s *Sequencer[T]) Send(item T) error {
	select {
	case <-s.closeCh:
		return frame.ErrSequencerClosed
	default:
	}
	select {
	case s.ingress <- item:
		return nil
	case <-s.closeCh:
		return frame.ErrSequencerClosed
	}
}

// Output returns the channel of ordered items and discard notices. It is
// closed once Close has been called and every pending item has been
// resolved.
func (s *Sequencer[T]) Output() <-chan Output[T] {
	return s.out
}

// Close stops accepting new items, catches up through every pending item
// (emitting or discarding as needed), and blocks until the run loop has
// exited and Output is closed.
func (s *Sequencer[T]) Close() {
	s.closeOnce.Do(func() { close(s.closeCh) })
	<-s.done
}

// Stats returns a snapshot of the Sequencer's counters.
func (s *Sequencer[T]) Stats() Stats {
	return Stats{
		Emitted:   s.emitted.Load(),
		Discarded: s.discarded.Load(),
		Stale:     s.stale.Load(),
	}
}

// sequencerState is the run loop's private, single-goroutine-owned state.
type sequencerState[T Item] struct {
	pending itemHeap[T]
	queued  map[frame.FrameID]bool
	next    frame.FrameID
}

func newSequencerState[T Item](startID frame.FrameID) *sequencerState[T] {
	return &sequencerState[T]{queued: make(map[frame.FrameID]bool), next: startID}
}

func (s *Sequencer[T]) run() {
	defer close(s.done)

	st := newSequencerState[T](s.cfg.StartID)
	heap.Init(&st.pending)

	var timer *time.Timer
	var timerC <-chan time.Time

	arm := func() {
		if timer == nil {
			timer = time.NewTimer(s.cfg.GapTimeout)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.cfg.GapTimeout)
		}
		timerC = timer.C
	}
	disarm := func() {
		if timer != nil && timerC != nil {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timerC = nil
	}
	rearmIfNeeded := func() {
		if st.pending.Len() == 0 {
			disarm()
			return
		}
		top := st.pending[0]
		if top.ID() == st.next {
			disarm()
			return
		}
		if timerC == nil {
			arm()
		}
	}

	ingress := s.ingress
	closeCh := s.closeCh
	closed := false

	for {
		if closed && st.pending.Len() == 0 {
			close(s.out)
			return
		}

		select {
		case item := <-ingress:
			s.accept(st, item)
		case <-timerC:
			timerC = nil
			s.declareGap(st)
		case <-closeCh:
			closed = true
			closeCh = nil
			ingress = nil
			s.catchUp(st)
		}

		s.drainReady(st)
		rearmIfNeeded()
	}
}

func (s *Sequencer[T]) accept(st *sequencerState[T], item T) {
	id := item.ID()

	if id < st.next {
		s.stale.Add(1)
		s.cfg.Metrics.Counter("sequencer_stale_items").Add(1)
		s.cfg.Logger.Debug("stale item dropped", "id", id, "next", st.next)
		return
	}
	if st.queued[id] {
		s.stale.Add(1)
		s.cfg.Metrics.Counter("sequencer_duplicate_items").Add(1)
		s.cfg.Logger.Debug("duplicate item dropped", "id", id)
		return
	}

	st.queued[id] = true
	heap.Push(&st.pending, item)
	s.cfg.Metrics.UpDownCounter("sequencer_pending").Add(1)

	if s.cfg.FlushAt > 0 {
		for st.pending.Len() >= s.cfg.FlushAt {
			top := st.pending[0]
			if top.ID() == st.next {
				break
			}
			s.declareGap(st)
		}
	}
}

// drainReady emits every item currently at the head of the heap whose id
// matches next, advancing next by one per emission.
func (s *Sequencer[T]) drainReady(st *sequencerState[T]) {
	for st.pending.Len() > 0 {
		top := st.pending[0]
		if top.ID() != st.next {
			return
		}
		popped := heap.Pop(&st.pending).(T)
		delete(st.queued, popped.ID())
		s.cfg.Metrics.UpDownCounter("sequencer_pending").Add(-1)

		st.next++
		s.emitted.Add(1)
		s.cfg.Metrics.Counter("sequencer_items_emitted").Add(1)
		s.emit(Output[T]{Item: popped})
	}
}

// declareGap skips the current next id, reporting it discarded. Called when
// GapTimeout elapses, eagerly once FlushAt is reached, and by catchUp.
func (s *Sequencer[T]) declareGap(st *sequencerState[T]) {
	if st.pending.Len() == 0 {
		return
	}
	id := st.next
	st.next++
	s.discarded.Add(1)
	s.cfg.Metrics.Counter("sequencer_items_discarded").Add(1)
	s.cfg.Logger.Warn("id discarded: gap timed out", "id", id)
	s.emit(Output[T]{Err: frame.NewDiscardedError(id)})
}

// catchUp runs at shutdown: since no further items can arrive, every
// remaining gap is declared immediately rather than waiting out GapTimeout.
func (s *Sequencer[T]) catchUp(st *sequencerState[T]) {
	for st.pending.Len() > 0 {
		top := st.pending[0]
		if top.ID() != st.next {
			s.declareGap(st)
			continue
		}
		s.drainReady(st)
	}
}

// emit is a blocking send: the run loop is the only writer to out, and out
// stays open until every pending item has been resolved.
func (s *Sequencer[T]) emit(o Output[T]) {
	s.out <- o
}
