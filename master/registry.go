package master

import "github.com/ramv33/prp/rct"

// LowerPort is one of the two physical devices a master transmits and
// receives on. Implementations (pcapport, and in-memory fakes for tests)
// must not block the RX/TX hot path.
type LowerPort interface {
	// Send transmits frame as-is; the caller has already padded and
	// tagged it as needed.
	Send(frame []byte) error
	// MTU returns the device's current MTU.
	MTU() int
	// Up reports whether the device is operationally up (carrier
	// present and administratively enabled).
	Up() bool
}

// RXHook is installed on a lower device and invoked once per received
// frame, passing the LAN the frame arrived on.
type RXHook func(frame []byte, lan rct.LANID)

// Registry abstracts the host's device graph: looking up candidate slave
// devices, classifying them, and installing/removing the RX hook and
// upper/lower linkage a PRP master needs. Tests supply an in-memory fake;
// hostlink supplies a vishvananda/netlink-backed implementation.
type Registry interface {
	// Lookup resolves ifindex to a LowerPort, or an error if it does
	// not exist.
	Lookup(ifindex int) (LowerPort, error)
	// IsMaster reports whether ifindex is itself a PRP master.
	IsMaster(ifindex int) bool
	// IsSlave reports whether ifindex is already bound as a PRP slave.
	IsSlave(ifindex int) bool
	// IsVLAN reports whether ifindex is a VLAN device.
	IsVLAN(ifindex int) bool
	// DisableLRO disables Large-Receive-Offload on ifindex, so
	// coalescing cannot corrupt per-frame RCTs.
	DisableLRO(ifindex int) error
	// LinkUpper links ifindex as a subordinate of masterIfindex in the
	// host's device graph.
	LinkUpper(ifindex, masterIfindex int) error
	// UnlinkUpper reverses LinkUpper.
	UnlinkUpper(ifindex int) error
	// InstallRXHook installs hook as ifindex's receive callback.
	InstallRXHook(ifindex int, hook RXHook) error
	// RemoveRXHook uninstalls the receive callback installed for
	// ifindex.
	RemoveRXHook(ifindex int) error
}

// Stats receives per-master counter updates. The Prometheus-backed
// implementation lives in package stats; tests may supply a no-op or a
// recording fake.
type Stats interface {
	RX(lan rct.LANID)
	TX(lan rct.LANID)
	Drop(reason string)
	WrongLAN(lan rct.LANID)
	BadLSDU()
	Duplicate()
}

// Port is the master's record of one bound lower device. The master owns
// both Port records exclusively for its lifetime; a Port never holds a
// pointer back to its master, per the back-reference design in spec.md §9
// — the RX hook's bound closure supplies the master instead.
type Port struct {
	Ifindex int
	LAN     rct.LANID
	Lower   LowerPort
}

// Up reports whether the port's underlying device is operationally up.
func (p *Port) Up() bool {
	return p.Lower != nil && p.Lower.Up()
}
