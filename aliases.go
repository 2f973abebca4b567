package session

import "github.com/hoprnet/session-core/frame"

// Re-exports of the frame package's wire-level vocabulary, so callers of
// session rarely need to import frame directly. reassembler and sequencer
// depend only on frame, never on session, to avoid an import cycle; session
// composes them and republishes their shared types here.
type (
	FrameID = frame.FrameID
	SeqNum  = frame.SeqNum
	Segment = frame.Segment
	Frame   = frame.Frame
)

// Sentinel errors, re-exported from frame.
var (
	ErrInvalidSegment     = frame.ErrInvalidSegment
	ErrPayloadSizeExceeded = frame.ErrPayloadSizeExceeded
	ErrReassemblerClosed  = frame.ErrReassemblerClosed
	ErrSequencerClosed    = frame.ErrSequencerClosed
	ErrSeqLenMismatch     = frame.ErrSeqLenMismatch
)

// Wire codec, re-exported from frame.
var (
	EncodeSegment = frame.EncodeSegment
	DecodeSegment = frame.DecodeSegment
)

// AsDiscarded extracts the frame_id from a discarded-frame error produced by
// either stage of the pipeline.
func AsDiscarded(err error) (FrameID, bool) {
	return frame.AsDiscarded(err)
}

// SeqNumWireBits is the width of seq_idx/seq_len on the wire.
const SeqNumWireBits = frame.SeqNumWireBits
