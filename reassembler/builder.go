package reassembler

import (
	"time"

	"github.com/hoprnet/session-core/frame"
	"github.com/hoprnet/session-core/internal/bufpool"
)

// frameBuilder accumulates the segments belonging to a single frame_id until
// either every index 0..seq_len-1 is present or the builder ages out.
type frameBuilder struct {
	frameID  frame.FrameID
	seqLen   frame.SeqNum
	segments map[frame.SeqNum]frame.Segment
	lastRecv time.Time
}

func newFrameBuilder(s frame.Segment, now time.Time) *frameBuilder {
	b := &frameBuilder{
		frameID:  s.FrameID,
		seqLen:   s.SeqLen,
		segments: make(map[frame.SeqNum]frame.Segment, s.SeqLen),
		lastRecv: now,
	}
	b.segments[s.SeqIdx] = s
	return b
}

func (b *frameBuilder) has(idx frame.SeqNum) bool {
	_, ok := b.segments[idx]
	return ok
}

// put inserts s, overwriting any prior entry at the same index, and refreshes
// last_recv. Callers must have already ruled out duplicates and seq_len
// mismatches.
func (b *frameBuilder) put(s frame.Segment, now time.Time) {
	b.segments[s.SeqIdx] = s
	b.lastRecv = now
}

func (b *frameBuilder) touch(now time.Time) {
	b.lastRecv = now
}

func (b *frameBuilder) remaining() int {
	return int(b.seqLen) - len(b.segments)
}

func (b *frameBuilder) complete() bool {
	return b.remaining() <= 0
}

func (b *frameBuilder) expired(now time.Time, maxAge time.Duration) bool {
	return now.Sub(b.lastRecv) >= maxAge
}

// build orders the collected segments by seq_idx, concatenates their payload
// into a freshly allocated buffer, and returns the individual segment buffers
// to pool now that their bytes have been copied out.
func (b *frameBuilder) build(pool *bufpool.Pool) frame.Frame {
	ordered := make([]frame.Segment, b.seqLen)
	total := 0
	for idx, s := range b.segments {
		ordered[idx] = s
		total += len(s.Data)
	}

	data := make([]byte, 0, total)
	for _, s := range ordered {
		data = append(data, s.Data...)
		pool.Put(s.Data)
	}
	return frame.Frame{FrameID: b.frameID, Data: data}
}

// release returns every segment's pooled data buffer without assembling a
// frame, used when a builder is discarded (age-out or shutdown flush).
func (b *frameBuilder) release(pool *bufpool.Pool) {
	for _, s := range b.segments {
		pool.Put(s.Data)
	}
}
