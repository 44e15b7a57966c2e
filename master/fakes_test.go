package master

import (
	"fmt"
	"sync"

	"github.com/ramv33/prp/rct"
)

// fakePort is an in-memory LowerPort: Send appends the frame to Sent and
// fails if Err is set; Up returns the current UpState.
type fakePort struct {
	mu      sync.Mutex
	Sent    [][]byte
	Err     error
	UpState bool
	mtu     int
}

func newFakePort(mtu int) *fakePort {
	return &fakePort{UpState: true, mtu: mtu}
}

func (p *fakePort) Send(frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	p.Sent = append(p.Sent, cp)
	return nil
}

func (p *fakePort) MTU() int { return p.mtu }
func (p *fakePort) Up() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.UpState
}

func (p *fakePort) sentFrames() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.Sent))
	copy(out, p.Sent)
	return out
}

// fakeRegistry is an in-memory Registry backed by a fixed ifindex->port
// map, with no masters/slaves/VLANs pre-registered.
type fakeRegistry struct {
	ports map[int]*fakePort
	hooks map[int]RXHook
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{ports: map[int]*fakePort{}, hooks: map[int]RXHook{}}
}

func (r *fakeRegistry) add(ifindex int, p *fakePort) {
	r.ports[ifindex] = p
}

func (r *fakeRegistry) Lookup(ifindex int) (LowerPort, error) {
	p, ok := r.ports[ifindex]
	if !ok {
		return nil, fmt.Errorf("no such ifindex %d", ifindex)
	}
	return p, nil
}

func (r *fakeRegistry) IsMaster(ifindex int) bool { return false }
func (r *fakeRegistry) IsSlave(ifindex int) bool  { return false }
func (r *fakeRegistry) IsVLAN(ifindex int) bool   { return false }
func (r *fakeRegistry) DisableLRO(ifindex int) error { return nil }

func (r *fakeRegistry) LinkUpper(ifindex, masterIfindex int) error { return nil }
func (r *fakeRegistry) UnlinkUpper(ifindex int) error              { return nil }

func (r *fakeRegistry) InstallRXHook(ifindex int, hook RXHook) error {
	r.hooks[ifindex] = hook
	return nil
}

func (r *fakeRegistry) RemoveRXHook(ifindex int) error {
	delete(r.hooks, ifindex)
	return nil
}

func (r *fakeRegistry) deliver(ifindex int, frame []byte, lan rct.LANID) {
	r.hooks[ifindex](frame, lan)
}

// fakeStats records counter bumps for assertions.
type fakeStats struct {
	mu        sync.Mutex
	rx, tx    map[rct.LANID]int
	drops     map[string]int
	wrongLAN  map[rct.LANID]int
	badLSDU   int
	duplicate int
}

func newFakeStats() *fakeStats {
	return &fakeStats{
		rx:       map[rct.LANID]int{},
		tx:       map[rct.LANID]int{},
		drops:    map[string]int{},
		wrongLAN: map[rct.LANID]int{},
	}
}

func (s *fakeStats) RX(lan rct.LANID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rx[lan]++
}
func (s *fakeStats) TX(lan rct.LANID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tx[lan]++
}
func (s *fakeStats) Drop(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drops[reason]++
}
func (s *fakeStats) WrongLAN(lan rct.LANID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrongLAN[lan]++
}
func (s *fakeStats) BadLSDU() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badLSDU++
}
func (s *fakeStats) Duplicate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duplicate++
}

// newTestMaster builds a Master with both ports attached over a fake
// registry, ready for TX/RX exercising in tests.
func newTestMaster(t interface{ Fatalf(string, ...interface{}) }) (*Master, *fakeRegistry, *fakePort, *fakePort) {
	reg := newFakeRegistry()
	pa := newFakePort(1500)
	pb := newFakePort(1500)
	reg.add(1, pa)
	reg.add(2, pb)

	m := New([6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, reg, newFakeStats(), DefaultConfig())
	if err := m.Attach(1, rct.LANA, 0); err != nil {
		t.Fatalf("Attach LANA: %v", err)
	}
	if err := m.Attach(2, rct.LANB, 0); err != nil {
		t.Fatalf("Attach LANB: %v", err)
	}
	return m, reg, pa, pb
}
