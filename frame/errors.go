package frame

import (
	"errors"
	"fmt"
)

// Namespace prefixes every sentinel error in this module, mirroring the
// teacher package's convention of a package-qualified error namespace.
const Namespace = "session"

var (
	// ErrInvalidSegment is returned when a Segment or Frame fails validation
	// (see Segment.Validate, Frame.Segment).
	ErrInvalidSegment = errors.New(Namespace + ": invalid segment")

	// ErrPayloadSizeExceeded is returned by Frame.Segment when the frame
	// would require more segments than SeqNum can address.
	ErrPayloadSizeExceeded = errors.New(Namespace + ": payload requires more segments than seq_len can address")

	// ErrReassemblerClosed is returned by Reassembler.Send once the
	// reassembler has been closed; further segments are rejected.
	ErrReassemblerClosed = errors.New(Namespace + ": reassembler closed")

	// ErrSequencerClosed is returned by Sequencer.Send once the sequencer has
	// been closed; further items are rejected.
	ErrSequencerClosed = errors.New(Namespace + ": sequencer closed")

	// ErrSeqLenMismatch names the condition of a segment whose seq_len
	// disagrees with the seq_len already established for its frame id. The
	// Reassembler logs and drops such a segment at ingress rather than
	// corrupting the builder; Reassembler.Send does not return this error
	// (see SPEC_FULL.md §4).
	ErrSeqLenMismatch = errors.New(Namespace + ": segment seq_len does not match frame's established seq_len")
)

// DiscardedError reports that a specific frame id will never be delivered.
// It is the FrameDiscarded(id) of spec §7: surfaced in-band on a stream,
// non-terminal, and carries exactly one FrameID for correlation — the same
// role TaskMetaError plays for task failures in the teacher package.
type DiscardedError struct {
	id FrameID
}

// NewDiscardedError constructs a DiscardedError for the given frame id.
func NewDiscardedError(id FrameID) *DiscardedError { return &DiscardedError{id: id} }

func (e *DiscardedError) Error() string {
	return fmt.Sprintf("%s: frame %d discarded", Namespace, e.id)
}

// FrameID returns the id of the frame that was discarded.
func (e *DiscardedError) FrameID() FrameID { return e.id }

// AsDiscarded extracts the FrameID from err if it is, or wraps, a
// *DiscardedError. Mirrors ExtractTaskID/ExtractTaskIndex from the teacher
// package's error_tagging.go.
func AsDiscarded(err error) (FrameID, bool) {
	var de *DiscardedError
	if errors.As(err, &de) {
		return de.id, true
	}
	return 0, false
}
