package master

import (
	"github.com/ramv33/prp/rct"
)

// minPayload is the minimum frame size (excluding RCT) a DANP pads to
// before tagging, so the wire frame never drops below Ethernet's minimum
// after the trailer is appended.
const minPayload = 60

// Send transmits frame (starting at the Ethernet header, destination MAC
// at frame[0:6]) according to the TX engine procedure in spec.md §4.5:
// a confirmed SAN gets a single untagged copy on its known port; anyone
// else gets an RCT-tagged copy duplicated across both up ports.
func (m *Master) Send(frame []byte) error {
	var dst [6]byte
	copy(dst[:], frame[0:6])

	m.table.RLock()
	entry := m.table.Lookup(dst)
	m.table.RUnlock()

	if entry != nil && entry.IsConfirmedSAN() {
		lan := rct.LANA
		if entry.SanB {
			lan = rct.LANB
		}
		return m.sendSAN(frame, lan)
	}

	return m.sendDANP(frame)
}

// sendSAN transmits frame unmodified on the single port serving lan, with
// the outer source MAC forced to the master's address. No RCT is
// appended and the data sequence counter is not advanced.
func (m *Master) sendSAN(frame []byte, lan rct.LANID) error {
	m.mu.Lock()
	p := m.ports[lan.Index()]
	m.mu.Unlock()
	if p == nil || !p.Up() {
		return nil
	}

	out := make([]byte, len(frame))
	copy(out, frame)
	copy(out[6:12], m.MAC[:])

	if err := p.Lower.Send(out); err != nil {
		m.stats.Drop("tx-error")
		m.log.WithError(err).Warn("send failed on SAN port")
		return nil
	}
	m.stats.TX(lan)
	return nil
}

// sendDANP pads frame as needed, allocates one data sequence number, and
// hands a tagged clone to each up port. A port that is down is skipped
// silently; a single port's transmit error never aborts the other.
func (m *Master) sendDANP(frame []byte) error {
	payload := make([]byte, len(frame))
	copy(payload, frame)
	if len(payload) < minPayload {
		padded := make([]byte, minPayload)
		copy(padded, payload)
		payload = padded
	}
	copy(payload[6:12], m.MAC[:])

	seq := m.nextDataSeq()

	m.mu.Lock()
	ports := m.ports
	m.mu.Unlock()

	for _, p := range ports {
		if p == nil || !p.Up() {
			continue
		}
		out := make([]byte, len(payload), len(payload)+rct.Len)
		copy(out, payload)
		r := rct.RCT{SeqNr: seq, LAN: p.LAN, LSDUSize: rct.LSDUSize(len(payload) + rct.Len)}
		out = r.Append(out)

		if err := p.Lower.Send(out); err != nil {
			m.stats.Drop("tx-error")
			m.log.WithError(err).WithField("lan", p.LAN).Warn("send failed")
			continue
		}
		m.stats.TX(p.LAN)
	}
	return nil
}
