package session

import (
	"log/slog"

	"github.com/hoprnet/session-core/reassembler"
)

// forwarder drains the reassembler's output and hands completed frames to
// the sequencer for ordering. A frame the reassembler gave up on (age-out)
// is logged and dropped here, not forwarded: the sequencer independently
// watches for the same id via its own GapTimeout/catch-up path and will
// emit the discard itself, in its proper place in the ordered stream. A
// second, unsynchronized writer onto the Reconstructor's output would race
// with the sequencer's relay goroutine and could deliver the discard out of
// order relative to surrounding frames.
type forwarder struct {
	in     <-chan reassembler.Result
	toSeq  func(Frame) error
	logger *slog.Logger
}

func newForwarder(in <-chan reassembler.Result, toSeq func(Frame) error, logger *slog.Logger) *forwarder {
	return &forwarder{in: in, toSeq: toSeq, logger: logger}
}

func (f *forwarder) run() {
	for res := range f.in {
		if res.Err != nil {
			f.logger.Warn("frame discarded by reassembler; sequencer will report it", "error", res.Err)
			continue
		}
		if err := f.toSeq(res.Frame); err != nil {
			f.logger.Debug("sequencer no longer accepting frames, dropping", "frame_id", res.Frame.FrameID)
			return
		}
	}
}
