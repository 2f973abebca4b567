package session

import (
	"testing"
	"time"

	"github.com/hoprnet/session-core/reassembler"
	"github.com/hoprnet/session-core/sequencer"
)

func segmentsFor(t *testing.T, id FrameID, data []byte, mtu int) []Segment {
	t.Helper()
	f := Frame{FrameID: id, Data: data}
	segs, err := f.Segment(mtu)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	return segs
}

func TestReconstructorEndToEndInOrder(t *testing.T) {
	rc, err := NewReconstructor()
	if err != nil {
		t.Fatalf("NewReconstructor: %v", err)
	}
	defer rc.Close()

	frames := [][]byte{
		[]byte("the quick brown fox"),
		[]byte("jumps over the lazy dog"),
		[]byte("0123456789"),
	}

	// Build all segments across all three frames, then send them in reverse:
	// frame 3's segments arrive before frame 2's and frame 1's, and each
	// frame's own segments arrive tail-first, exercising reassembly and
	// sequencing out-of-order at the same time.
	var allSegs []Segment
	for i, data := range frames {
		allSegs = append(allSegs, segmentsFor(t, FrameID(i+1), data, 6)...)
	}
	for i := len(allSegs) - 1; i >= 0; i-- {
		if err := rc.Send(allSegs[i]); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	for i, want := range frames {
		select {
		case out := <-rc.Output():
			if out.Err != nil {
				t.Fatalf("frame %d: unexpected error %v", i, out.Err)
			}
			if out.Frame.FrameID != FrameID(i+1) {
				t.Fatalf("expected frame_id %d, got %d", i+1, out.Frame.FrameID)
			}
			if string(out.Frame.Data) != string(want) {
				t.Fatalf("frame %d: data mismatch, got %q want %q", i, out.Frame.Data, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}
}

// TestReconstructorDiscardsIncompleteFrame exercises the full composition
// path: the reassembler gives up on frame 1 (never forwarded — it's logged
// and dropped, not sent onward), but frame 2 completes and reaches the
// sequencer, which independently notices the gap at 1 once its own
// GapTimeout elapses and reports the discard itself, in order, ahead of
// frame 2.
func TestReconstructorDiscardsIncompleteFrame(t *testing.T) {
	rc, err := NewReconstructor(
		WithReassemblerOptions(
			reassembler.WithMaxAge(20*time.Millisecond),
			reassembler.WithExpireInterval(5*time.Millisecond),
		),
		WithSequencerOptions(sequencer.WithGapTimeout(50*time.Millisecond)),
	)
	if err != nil {
		t.Fatalf("NewReconstructor: %v", err)
	}
	defer rc.Close()

	incomplete := segmentsFor(t, 1, make([]byte, 20), 5)
	for _, s := range incomplete[:len(incomplete)-1] {
		if err := rc.Send(s); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	for _, s := range segmentsFor(t, 2, []byte("second frame"), 5) {
		if err := rc.Send(s); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	select {
	case out := <-rc.Output():
		id, ok := AsDiscarded(out.Err)
		if !ok || id != 1 {
			t.Fatalf("expected discard for frame 1, got %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for discard")
	}

	select {
	case out := <-rc.Output():
		if out.Err != nil {
			t.Fatalf("unexpected error: %v", out.Err)
		}
		if out.Frame.FrameID != 2 {
			t.Fatalf("expected frame 2, got %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame 2")
	}
}

func TestReconstructorStats(t *testing.T) {
	rc, err := NewReconstructor()
	if err != nil {
		t.Fatalf("NewReconstructor: %v", err)
	}
	defer rc.Close()

	segs := segmentsFor(t, 1, []byte("abcdef"), 2)
	for _, s := range segs {
		if err := rc.Send(s); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	select {
	case out := <-rc.Output():
		if out.Err != nil {
			t.Fatalf("unexpected error: %v", out.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}

	stats := rc.Stats()
	if stats.Reassembler.FramesCompleted != 1 {
		t.Fatalf("expected 1 completed frame in reassembler stats, got %d", stats.Reassembler.FramesCompleted)
	}
	if stats.Sequencer.Emitted != 1 {
		t.Fatalf("expected 1 emitted item in sequencer stats, got %d", stats.Sequencer.Emitted)
	}
}
