// Package master implements the PRP master device: the logical interface
// that owns two lower ports, duplicates outbound frames across them with a
// Redundancy Control Trailer, and discards duplicates on the way back up.
package master

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramv33/prp/nodetable"
)

// OperState is the master's aggregated operational state, recomputed on
// every lower-port event per spec.md §4.8.
type OperState int

const (
	OperDown OperState = iota
	OperLowerLayerDown
	OperUp
)

func (s OperState) String() string {
	switch s {
	case OperUp:
		return "up"
	case OperLowerLayerDown:
		return "lowerlayerdown"
	default:
		return "down"
	}
}

// Master is a PRP logical interface bound to exactly two lower ports.
type Master struct {
	MAC [6]byte

	registry Registry
	stats    Stats
	cfg      Config
	log      *logrus.Entry

	mu        sync.Mutex
	ports     [2]*Port
	adminUp   bool
	operState OperState
	mtu       int

	table *nodetable.Table

	dataSeq uint32
	supSeq  uint32

	upstream func(payload []byte)

	timer *supervisionTimer
}

// New constructs an unattached Master. Call Attach twice (once per LAN)
// before bringing it administratively up.
func New(mac [6]byte, registry Registry, stats Stats, cfg Config) *Master {
	m := &Master{
		MAC:      mac,
		registry: registry,
		stats:    stats,
		cfg:      cfg,
		log:      logrus.WithField("component", "prp.master"),
		table:    nodetable.New(cfg.EntryForgetTime, cfg.NodeForgetTime, cfg.NodeRebootInterval),
	}
	m.timer = newSupervisionTimer(m)
	return m
}

// Table exposes the master's node table for diagnostics and the pruner.
func (m *Master) Table() *nodetable.Table {
	return m.table
}

// MTU returns the master's currently configured MTU.
func (m *Master) MTU() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mtu
}

// SetMTU sets the master's MTU. It fails with ErrCodeMTUTooLarge if mtu
// exceeds min(port MTUs) - rct.Len, per the MTU-BOUND invariant.
func (m *Master) SetMTU(mtu int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	max := m.maxMTULocked()
	if mtu > max {
		return &ConfigError{Code: ErrCodeMTUTooLarge, Err: errMTUExceeds(mtu, max)}
	}
	m.mtu = mtu
	return nil
}

func (m *Master) maxMTULocked() int {
	const rctLen = 6
	max := -1
	for _, p := range m.ports {
		if p == nil {
			continue
		}
		pm := p.Lower.MTU()
		if max == -1 || pm < max {
			max = pm
		}
	}
	if max == -1 {
		return 0
	}
	return max - rctLen
}

// SetAdminUp sets the master's administrative state and recomputes
// operstate, arming or disarming the supervision timer accordingly.
func (m *Master) SetAdminUp(up bool) {
	m.mu.Lock()
	m.adminUp = up
	m.mu.Unlock()
	m.recomputeOperstate()
}

// OperState returns the master's current aggregated operational state.
func (m *Master) OperState() OperState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operState
}

// recomputeOperstate derives operstate from admin state and port states:
// UP iff admin-up and at least one port is up; LOWERLAYERDOWN iff admin-up
// and both ports are down; DOWN otherwise. The supervision timer is
// armed/disarmed to match.
func (m *Master) recomputeOperstate() {
	m.mu.Lock()
	var up int
	for _, p := range m.ports {
		if p != nil && p.Up() {
			up++
		}
	}

	var next OperState
	switch {
	case m.adminUp && up > 0:
		next = OperUp
	case m.adminUp:
		next = OperLowerLayerDown
	default:
		next = OperDown
	}
	changed := next != m.operState
	m.operState = next
	m.mu.Unlock()

	if !changed {
		return
	}
	m.log.WithField("operstate", next).Info("operstate transition")
	if next == OperUp {
		m.timer.Arm()
	} else {
		m.timer.Disarm()
	}
}

// nextDataSeq returns the next 16-bit data sequence number, wrapping
// naturally modulo 2^16.
func (m *Master) nextDataSeq() uint16 {
	return fetchAddSeq(&m.dataSeq)
}

// nextSupSeq returns the next 16-bit supervision sequence number,
// independent of the data counter.
func (m *Master) nextSupSeq() uint16 {
	return fetchAddSeq(&m.supSeq)
}

func now() time.Time {
	return time.Now()
}
