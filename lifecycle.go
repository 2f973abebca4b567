package session

import (
	"sync"
)

// lifecycleCoordinator encapsulates the shutdown sequence for a
// Reconstructor. It is a wiring helper: it doesn't own the reassembler or
// sequencer, it orchestrates closing them and waiting for the forwarding
// goroutines in a deterministic order so no frame is lost mid-shutdown.
//
// Close() is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator struct {
	closeReassembler func()
	reassemblerFwdWG *sync.WaitGroup
	closeSequencer   func()
	sequencerRelayWG *sync.WaitGroup
	closeOut         func()

	once sync.Once
}

func newLifecycleCoordinator(
	closeReassembler func(),
	reassemblerFwdWG *sync.WaitGroup,
	closeSequencer func(),
	sequencerRelayWG *sync.WaitGroup,
	closeOut func(),
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		closeReassembler: closeReassembler,
		reassemblerFwdWG: reassemblerFwdWG,
		closeSequencer:   closeSequencer,
		sequencerRelayWG: sequencerRelayWG,
		closeOut:         closeOut,
	}
}

// Close executes the shutdown sequence exactly once:
//  1. close the reassembler, flushing its pending builders as discarded
//  2. wait for the reassembler-to-sequencer forwarder to drain and exit
//  3. close the sequencer, flushing its pending frames
//  4. wait for the sequencer-output relay to drain and exit
//  5. close the Reconstructor's own output channel
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		if lc.closeReassembler != nil {
			lc.closeReassembler()
		}
		if lc.reassemblerFwdWG != nil {
			lc.reassemblerFwdWG.Wait()
		}
		if lc.closeSequencer != nil {
			lc.closeSequencer()
		}
		if lc.sequencerRelayWG != nil {
			lc.sequencerRelayWG.Wait()
		}
		if lc.closeOut != nil {
			lc.closeOut()
		}
	})
}
