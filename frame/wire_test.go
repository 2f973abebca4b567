package frame

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeSegmentRoundTrip(t *testing.T) {
	s := Segment{FrameID: 7, SeqIdx: 3, SeqLen: 5, Data: []byte("payload")}

	var buf bytes.Buffer
	if err := EncodeSegment(&buf, s); err != nil {
		t.Fatalf("EncodeSegment: %v", err)
	}

	got, err := DecodeSegment(&buf, len(s.Data))
	if err != nil {
		t.Fatalf("DecodeSegment: %v", err)
	}
	if got.FrameID != s.FrameID || got.SeqIdx != s.SeqIdx || got.SeqLen != s.SeqLen {
		t.Fatalf("header mismatch: got %+v want %+v", got, s)
	}
	if !bytes.Equal(got.Data, s.Data) {
		t.Fatalf("data mismatch: got %q want %q", got.Data, s.Data)
	}
}

func TestEncodeSegmentBigEndianLayout(t *testing.T) {
	s := Segment{FrameID: 0x01020304, SeqIdx: 0x0506, SeqLen: 0x0708, Data: []byte("x")}
	var buf bytes.Buffer
	if err := EncodeSegment(&buf, s); err != nil {
		t.Fatalf("EncodeSegment: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 'x'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("wire bytes mismatch: got %x want %x", buf.Bytes(), want)
	}
}

func TestEncodeSegmentRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeSegment(&buf, Segment{FrameID: 1, SeqIdx: 0, SeqLen: 1, Data: nil})
	if err == nil {
		t.Fatal("expected error encoding a segment with empty data")
	}
}

func TestDecodeSegmentRejectsTruncated(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x00, 0x00})
	if _, err := DecodeSegment(buf, 5); err == nil {
		t.Fatal("expected error decoding a truncated header")
	}
}
