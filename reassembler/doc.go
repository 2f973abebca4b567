// Package reassembler groups incoming Segments into complete Frames.
//
// A Reassembler is a single run-loop goroutine fed by Send and drained by
// Frames. Builders age out lazily: the run loop re-checks every builder
// against Config.MaxAge on its own ticker and also whenever the ticker fires,
// so an idle Reassembler never needs a caller to poll it just to free
// memory. Closing flushes every pending builder as a discarded frame_id
// before Frames is closed.
package reassembler
