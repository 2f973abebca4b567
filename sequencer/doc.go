// Package sequencer orders items by a monotonically assigned id over an
// unordered, lossy, duplicating channel.
//
// A Sequencer is a single run-loop goroutine fed by Send and drained by
// Output. Items are held in a min-heap keyed by id until the one the
// Sequencer is currently waiting for (next) arrives; it is then emitted,
// along with any contiguous run immediately following it. If next never
// arrives within GapTimeout, or the heap reaches FlushAt items while next is
// still missing, the Sequencer gives up on it, reports it discarded, and
// advances past it. Closing catches up through every pending item
// immediately instead of waiting out GapTimeout.
package sequencer
