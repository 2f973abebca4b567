package sequencer

// itemHeap is a container/heap.Interface over items ordered by ID(), used as
// the Sequencer's pending-reorder queue.
type itemHeap[T Item] []T

func (h itemHeap[T]) Len() int { return len(h) }

func (h itemHeap[T]) Less(i, j int) bool { return h[i].ID() < h[j].ID() }

func (h itemHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap[T]) Push(x any) {
	*h = append(*h, x.(T))
}

func (h *itemHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
