package reassembler

import (
	"testing"
	"time"

	"github.com/hoprnet/session-core/frame"
	"github.com/hoprnet/session-core/internal/bufpool"
)

func TestFrameBuilderCompleteAndBuild(t *testing.T) {
	now := time.Now()
	b := newFrameBuilder(frame.Segment{FrameID: 1, SeqIdx: 0, SeqLen: 2, Data: []byte("ab")}, now)
	if b.complete() {
		t.Fatal("builder should not be complete with 1 of 2 segments")
	}

	b.put(frame.Segment{FrameID: 1, SeqIdx: 1, SeqLen: 2, Data: []byte("cd")}, now)
	if !b.complete() {
		t.Fatal("builder should be complete with both segments present")
	}

	pool := bufpool.New(16)
	fr := b.build(pool)
	if string(fr.Data) != "abcd" {
		t.Fatalf("expected assembled data 'abcd', got %q", fr.Data)
	}
	if fr.FrameID != 1 {
		t.Fatalf("expected frame id 1, got %d", fr.FrameID)
	}
}

func TestFrameBuilderExpiry(t *testing.T) {
	now := time.Now()
	b := newFrameBuilder(frame.Segment{FrameID: 1, SeqIdx: 0, SeqLen: 2, Data: []byte("a")}, now)

	if b.expired(now.Add(time.Millisecond), 10*time.Millisecond) {
		t.Fatal("builder should not be expired before MaxAge elapses")
	}
	if !b.expired(now.Add(20*time.Millisecond), 10*time.Millisecond) {
		t.Fatal("builder should be expired after MaxAge elapses")
	}

	b.touch(now.Add(15 * time.Millisecond))
	if b.expired(now.Add(20*time.Millisecond), 10*time.Millisecond) {
		t.Fatal("touch should refresh last_recv and postpone expiry")
	}
}

func TestFrameBuilderHasAndRelease(t *testing.T) {
	b := newFrameBuilder(frame.Segment{FrameID: 1, SeqIdx: 0, SeqLen: 2, Data: []byte("a")}, time.Now())
	if !b.has(0) {
		t.Fatal("expected has(0) to be true")
	}
	if b.has(1) {
		t.Fatal("expected has(1) to be false")
	}

	pool := bufpool.New(16)
	b.release(pool) // must not panic
}
