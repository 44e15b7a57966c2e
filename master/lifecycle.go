package master

import (
	"fmt"

	"github.com/ramv33/prp/rct"
)

// Attach validates and binds ifindex as the master's port for lan. It
// rejects a candidate that is itself a PRP master, already a PRP slave, or
// a VLAN device — the same ordering prp_slave_ok applies — installs the RX
// hook, disables LRO, and links the device as the master's subordinate.
// Any failure after validation rolls back every partial step.
func (m *Master) Attach(ifindex int, lan rct.LANID, masterIfindex int) error {
	if m.registry.IsMaster(ifindex) {
		return &ConfigError{Code: ErrCodeSlaveIsMaster, Err: fmt.Errorf("ifindex %d", ifindex)}
	}
	if m.registry.IsSlave(ifindex) {
		return &ConfigError{Code: ErrCodeSlaveIsSlave, Err: fmt.Errorf("ifindex %d", ifindex)}
	}
	if m.registry.IsVLAN(ifindex) {
		return &ConfigError{Code: ErrCodeSlaveIsVLAN, Err: fmt.Errorf("ifindex %d", ifindex)}
	}

	lower, err := m.registry.Lookup(ifindex)
	if err != nil {
		return &ConfigError{Code: ErrCodeSlaveNotExist, Err: err}
	}

	if err := m.registry.DisableLRO(ifindex); err != nil {
		return &ConfigError{Code: ErrCodeLinkFailure, Err: err}
	}

	hook := func(frame []byte, hookLAN rct.LANID) {
		m.handleReceive(frame, hookLAN, now())
	}
	if err := m.registry.InstallRXHook(ifindex, hook); err != nil {
		return &ConfigError{Code: ErrCodeLinkFailure, Err: err}
	}

	if err := m.registry.LinkUpper(ifindex, masterIfindex); err != nil {
		m.registry.RemoveRXHook(ifindex)
		return &ConfigError{Code: ErrCodeLinkFailure, Err: err}
	}

	m.mu.Lock()
	m.ports[lan.Index()] = &Port{Ifindex: ifindex, LAN: lan, Lower: lower}
	m.mu.Unlock()

	m.recomputeOperstate()
	return nil
}

// Detach uninstalls the RX hook and device-graph linkage for the port
// bound to lan, if any.
func (m *Master) Detach(lan rct.LANID) error {
	m.mu.Lock()
	p := m.ports[lan.Index()]
	m.ports[lan.Index()] = nil
	m.mu.Unlock()

	if p == nil {
		return nil
	}

	m.registry.RemoveRXHook(p.Ifindex)
	err := m.registry.UnlinkUpper(p.Ifindex)
	m.recomputeOperstate()
	return err
}

// Teardown disarms the supervision timer, detaches both ports, and prunes
// the node table. It is the Go-native equivalent of unregistering the
// master device.
func (m *Master) Teardown() {
	m.timer.Disarm()
	m.Detach(rct.LANA)
	m.Detach(rct.LANB)
	m.table.Lock()
	m.table.Prune(now().Add(m.cfg.NodeForgetTime * 2))
	m.table.Unlock()
}
