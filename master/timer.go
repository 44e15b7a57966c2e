package master

import (
	"sync"
	"time"

	"github.com/ramv33/prp/supervision"
)

// supervisionTimer drives the periodic supervision frame; the node table
// pruner runs separately under RunPruner. It never holds the master's lock while calling back into
// Send, per the timer-reentrancy rule in spec.md §9.
type supervisionTimer struct {
	m *Master

	mu    sync.Mutex
	stop  chan struct{}
	armed bool
}

func newSupervisionTimer(m *Master) *supervisionTimer {
	return &supervisionTimer{m: m}
}

// Arm starts the ticker if not already running. Idempotent.
func (t *supervisionTimer) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.armed {
		return
	}
	t.armed = true
	t.stop = make(chan struct{})
	stop := t.stop
	go t.run(stop)
}

// Disarm stops the ticker if running. Idempotent; it blocks until the
// running goroutine has finished any in-flight tick and taken the stop
// signal, so teardown never races an in-flight tick.
func (t *supervisionTimer) Disarm() {
	t.mu.Lock()
	if !t.armed {
		t.mu.Unlock()
		return
	}
	t.armed = false
	stop := t.stop
	t.mu.Unlock()
	// An unbuffered send completes only once run is back at its select,
	// i.e. after any in-flight tick has finished; run then returns.
	stop <- struct{}{}
}

func (t *supervisionTimer) run(stop chan struct{}) {
	ticker := time.NewTicker(t.m.cfg.LifeCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.m.sendSupervision()
		}
	}
}

// sendSupervision builds one supervision frame with a fresh, independent
// supervision sequence number and submits it through the ordinary TX
// engine, so it is duplicated across both ports with RCTs like any other
// DANP frame.
func (m *Master) sendSupervision() {
	seq := m.nextSupSeq()
	body := supervision.Build(supervision.Frame{
		SupSeqnr: seq,
		TLV1Type: supervision.TLVDupDiscard,
		MAC:      m.MAC,
	})

	pad := supervision.PadTo70
	frame := make([]byte, 0, ethHeaderLen+pad)
	frame = append(frame, m.cfg.SupervisionMulticast[:]...)
	frame = append(frame, m.MAC[:]...)
	frame = append(frame, byte(supervision.EtherType>>8), byte(supervision.EtherType))
	frame = append(frame, body...)
	if n := ethHeaderLen + pad - len(frame); n > 0 {
		frame = append(frame, make([]byte, n)...)
	}

	if err := m.Send(frame); err != nil {
		m.log.WithError(err).Warn("supervision send failed")
	}
}

// RunPruner runs the node table pruner on interval until stop is closed,
// removing entries silent for longer than NodeForgetTime on both LANs.
func (m *Master) RunPruner(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.table.Lock()
			removed := m.table.Prune(time.Now())
			m.table.Unlock()
			if removed > 0 {
				m.log.WithField("removed", removed).Debug("pruned stale node entries")
			}
		}
	}
}
