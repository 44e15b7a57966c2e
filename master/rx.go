package master

import (
	"time"

	"github.com/ramv33/prp/nodetable"
	"github.com/ramv33/prp/rct"
	"github.com/ramv33/prp/supervision"
	"github.com/ramv33/prp/window"
)

const ethHeaderLen = rct.EtherHeaderLen

// handleReceive implements the RX engine (spec.md §4.6): learn the sender,
// validate the RCT, dispatch supervision frames, apply duplicate discard,
// and deliver the survivor upstream. now is threaded through explicitly so
// the hot path stays pure and testable; only the real RX hook supplies
// wall-clock time.
func (m *Master) handleReceive(frame []byte, lan rct.LANID, now time.Time) {
	if len(frame) < ethHeaderLen {
		m.stats.Drop("short-frame")
		return
	}

	var src [6]byte
	copy(src[:], frame[6:12])

	m.table.Lock()
	entry := m.table.GetOrCreate(src, nodetable.LAN(lan.Index()), now)
	entry.LastSeen[lan.Index()] = now

	r, err := rct.Parse(frame)
	if err != nil {
		// Non-PRP: treat the sender as SAN on this LAN and deliver
		// upstream with only the Ethernet header stripped.
		m.table.MarkSAN(entry, nodetable.LAN(lan.Index()))
		m.table.Unlock()
		m.stats.RX(lan)
		m.deliverUpstream(frame[ethHeaderLen:])
		return
	}

	wrongLAN := r.LAN != lan
	if wrongLAN {
		m.stats.WrongLAN(lan)
	}
	badLSDU := int(r.LSDUSize) != len(frame)-ethHeaderLen
	if badLSDU {
		m.stats.BadLSDU()
	}
	if wrongLAN || badLSDU {
		// Treat as non-PRP: the trailer cannot be trusted, so nothing
		// is trimmed beyond the Ethernet header.
		m.table.MarkSAN(entry, nodetable.LAN(lan.Index()))
		m.table.Unlock()
		m.stats.RX(lan)
		m.deliverUpstream(frame[ethHeaderLen:])
		return
	}

	if m.isSupervision(frame) {
		m.handleSupervision(entry, frame, lan)
		m.table.Unlock()
		m.stats.RX(lan)
		return
	}

	// A tagged, non-supervision frame implies the sender behaves as a
	// DANP even before its first supervision frame arrives; allocate
	// the window lazily here rather than only on supervision upgrade.
	if entry.Window == nil {
		entry.Window = window.New(m.cfg.EntryForgetTime, m.cfg.NodeRebootInterval)
	}
	duplicate := entry.Window.Accept(r.SeqNr, now) == window.Duplicate
	m.table.Unlock()
	m.stats.RX(lan)

	if duplicate {
		m.stats.Duplicate()
		return
	}
	m.deliverUpstream(frame[ethHeaderLen : len(frame)-rct.Len])
}

// isSupervision reports whether frame is addressed to the configured
// supervision multicast with the PRP EtherType.
func (m *Master) isSupervision(frame []byte) bool {
	if len(frame) < ethHeaderLen {
		return false
	}
	var dst [6]byte
	copy(dst[:], frame[0:6])
	if dst != m.cfg.SupervisionMulticast {
		return false
	}
	etherType := uint16(frame[12])<<8 | uint16(frame[13])
	return etherType == supervision.EtherType
}

// handleSupervision parses the supervision body, re-keys entry.mac to the
// TLV1-carried address (which may differ from the outer source after a
// RedBox translation), upgrades the peer to DANP, and records its
// supervision sequence number. Caller holds the table write lock.
func (m *Master) handleSupervision(entry *nodetable.Entry, frame []byte, lan rct.LANID) {
	body := frame[ethHeaderLen : len(frame)-rct.Len]
	sup, err := supervision.Parse(body)
	if err != nil {
		m.log.WithError(err).Debug("malformed supervision frame")
		return
	}
	entry.MAC = sup.MAC
	m.table.UpgradeToDANP(entry)
	entry.SupSeqnrLast = sup.SupSeqnr
}

// deliverUpstream hands payload to the registered upper-layer consumer.
// Supervision frames never reach here; they are consumed in place.
func (m *Master) deliverUpstream(payload []byte) {
	m.mu.Lock()
	fn := m.upstream
	m.mu.Unlock()
	if fn == nil {
		return
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	fn(cp)
}

// SetUpstream registers the callback invoked with each frame's payload
// (Ethernet header and RCT already stripped) once accepted for delivery.
func (m *Master) SetUpstream(fn func(payload []byte)) {
	m.mu.Lock()
	m.upstream = fn
	m.mu.Unlock()
}
