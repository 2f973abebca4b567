package sequencer

import (
	"container/heap"
	"testing"

	"github.com/hoprnet/session-core/frame"
)

func TestItemHeapOrdersByID(t *testing.T) {
	h := &itemHeap[testItem]{}
	heap.Init(h)

	for _, id := range []frame.FrameID{5, 1, 3, 0, 4} {
		heap.Push(h, testItem{id: id})
	}

	var got []frame.FrameID
	for h.Len() > 0 {
		got = append(got, heap.Pop(h).(testItem).ID())
	}

	want := []frame.FrameID{0, 1, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
