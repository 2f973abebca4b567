// Package session implements the reliable-delivery framing overlay used by
// the HOPR session transport on top of an underlying channel that may
// reorder, drop, or duplicate the datagrams it carries.
//
// The core is a two-stage pipeline:
//
//	segments -> reassembler.Reassembler -> (frames, out of order) ->
//	sequencer.Sequencer -> frames (in order) | discard(frame_id)
//
// The reassembler groups segments sharing a frame_id into a complete frame,
// discarding any frame_id whose segments don't all arrive within its age
// bound. The sequencer then re-orders frames by frame_id, discarding any
// frame_id that doesn't arrive within its own gap timeout. Reconstructor
// composes the two stages into a single Send/Output/Close interface; see
// reconstructor.go.
//
// Package frame holds the wire-level types (Segment, Frame, FrameID) shared
// by both stages and is re-exported here via type aliases so most callers
// never need to import it directly.
package session
