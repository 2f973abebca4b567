package frame

import (
	"encoding/binary"
	"fmt"
	"io"
)

// segmentHeaderSize is the fixed on-wire size, in bytes, of a Segment header:
// FrameID (32 bits) + SeqIdx (SeqNumWireBits) + SeqLen (SeqNumWireBits).
const segmentHeaderSize = 4 + 2 + 2

// EncodeSegment writes s to w in the bit-exact wire form required by spec §6:
// frame_id (32 bits, big-endian), seq_idx (16 bits, big-endian), seq_len (16
// bits, big-endian), followed by the raw data bytes. Grounded on the
// fixed-width framing style of nishisan-dev-n-backup's protocol reader/writer
// (io.ReadFull / encoding/binary.Read/Write over plain io.Reader/io.Writer,
// no intermediate buffering library).
func EncodeSegment(w io.Writer, s Segment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var hdr [segmentHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(s.FrameID))
	binary.BigEndian.PutUint16(hdr[4:6], uint16(s.SeqIdx))
	binary.BigEndian.PutUint16(hdr[6:8], uint16(s.SeqLen))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing segment header: %w", err)
	}
	if _, err := w.Write(s.Data); err != nil {
		return fmt.Errorf("writing segment data: %w", err)
	}
	return nil
}

// DecodeSegment reads one Segment from r. dataLen is the number of payload
// bytes to read after the fixed header; on a datagram transport this is
// simply the remaining length of the received datagram (the wire form has no
// explicit length field of its own, matching spec §6's "length derived from
// transport").
func DecodeSegment(r io.Reader, dataLen int) (Segment, error) {
	if dataLen <= 0 {
		return Segment{}, fmt.Errorf("%w: data must be non-empty", ErrInvalidSegment)
	}

	var hdr [segmentHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Segment{}, fmt.Errorf("reading segment header: %w", err)
	}

	s := Segment{
		FrameID: FrameID(binary.BigEndian.Uint32(hdr[0:4])),
		SeqIdx:  SeqNum(binary.BigEndian.Uint16(hdr[4:6])),
		SeqLen:  SeqNum(binary.BigEndian.Uint16(hdr[6:8])),
		Data:    make([]byte, dataLen),
	}
	if _, err := io.ReadFull(r, s.Data); err != nil {
		return Segment{}, fmt.Errorf("reading segment data: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}
