package frame

import "fmt"

// FrameID identifies a frame. Frames are numbered contiguously starting at 1;
// a gap in the id sequence indicates loss. 0 is reserved and never assigned.
type FrameID uint32

// SeqNum is a segment's index within its frame, or the total segment count of
// that frame. The wire form is fixed at 16 bits (SeqNumWireBits); segmentation
// that would require more segments than SeqNum can address fails with
// ErrPayloadSizeExceeded.
type SeqNum uint16

// SeqNumWireBits is the width, in bits, of a SeqNum on the wire. Kept as an
// explicit constant (rather than inferred from the Go type) so a narrower
// future wire revision is a one-constant change.
const SeqNumWireBits = 16

// maxSeqNum is the largest seq_len a Frame can be segmented into.
const maxSeqNum = SeqNum(^SeqNum(0))

// Segment is a wire-level fragment of a Frame.
//
// Invariants: SeqLen >= 1, SeqIdx < SeqLen, Data is non-empty, and every
// segment received for a given FrameID carries the same SeqLen. Segments are
// totally ordered by (FrameID, SeqIdx); see Less.
type Segment struct {
	FrameID FrameID
	SeqIdx  SeqNum
	SeqLen  SeqNum
	Data    []byte
}

// Validate reports whether s satisfies the Segment invariants from spec §3.
func (s Segment) Validate() error {
	if s.FrameID == 0 {
		return fmt.Errorf("%w: frame id 0 is reserved", ErrInvalidSegment)
	}
	if s.SeqLen < 1 {
		return fmt.Errorf("%w: seq_len must be >= 1", ErrInvalidSegment)
	}
	if s.SeqIdx >= s.SeqLen {
		return fmt.Errorf("%w: seq_idx %d out of range for seq_len %d", ErrInvalidSegment, s.SeqIdx, s.SeqLen)
	}
	if len(s.Data) == 0 {
		return fmt.Errorf("%w: data must be non-empty", ErrInvalidSegment)
	}
	return nil
}

// Less orders segments by (FrameID, SeqIdx), the total ordering required by
// spec §3 wherever segments are stored in sorted containers.
func (s Segment) Less(other Segment) bool {
	if s.FrameID != other.FrameID {
		return s.FrameID < other.FrameID
	}
	return s.SeqIdx < other.SeqIdx
}

// Frame is an application-level unit of data, delivered atomically or reported
// as discarded. Equality is structural.
type Frame struct {
	FrameID FrameID
	Data    []byte
}

// ID satisfies sequencer.Item, letting Frame flow through the Sequencer keyed
// by its FrameID.
func (f Frame) ID() FrameID { return f.FrameID }

// Segment splits f.Data into an ordered sequence of Segments, each carrying at
// most mtu bytes of payload. Segmentation of an empty frame is disallowed: a
// Frame always carries at least one byte of application data. Segmentation is
// deterministic; concatenating the Data of the returned segments in SeqIdx
// order reconstructs f.Data byte-for-byte (the round-trip law of spec §8.1).
func (f Frame) Segment(mtu int) ([]Segment, error) {
	if mtu <= 0 {
		return nil, fmt.Errorf("%w: mtu must be positive", ErrInvalidSegment)
	}
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: cannot segment an empty frame", ErrInvalidSegment)
	}

	n := (len(f.Data) + mtu - 1) / mtu
	if n > int(maxSeqNum) {
		return nil, fmt.Errorf("%w: frame of %d bytes needs %d segments at mtu=%d, exceeds %d-bit seq_len",
			ErrPayloadSizeExceeded, len(f.Data), n, mtu, SeqNumWireBits)
	}

	segs := make([]Segment, 0, n)
	seqLen := SeqNum(n)
	for i := 0; i < n; i++ {
		start := i * mtu
		end := start + mtu
		if end > len(f.Data) {
			end = len(f.Data)
		}
		segs = append(segs, Segment{
			FrameID: f.FrameID,
			SeqIdx:  SeqNum(i),
			SeqLen:  seqLen,
			Data:    f.Data[start:end],
		})
	}
	return segs, nil
}

// AssembleFrame concatenates the Data of segs, in the order given, into a
// Frame. Callers are expected to pass segs already ordered by SeqIdx,
// complete (len(segs) == segs[0].SeqLen) and sharing one FrameID;
// AssembleFrame neither sorts nor re-validates them.
func AssembleFrame(id FrameID, segs []Segment) Frame {
	total := 0
	for _, s := range segs {
		total += len(s.Data)
	}
	data := make([]byte, 0, total)
	for _, s := range segs {
		data = append(data, s.Data...)
	}
	return Frame{FrameID: id, Data: data}
}
