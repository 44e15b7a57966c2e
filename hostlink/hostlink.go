//go:build linux

// Package hostlink implements master.Registry against the running host's
// device graph using vishvananda/netlink, the Go-native equivalent of
// prp_dev.c's net_device plumbing. It is Linux-only and best-effort:
// operations that have no portable equivalent (LRO disable) degrade to a
// logged no-op rather than failing attach.
package hostlink

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"

	"github.com/ramv33/prp/master"
)

// Registry implements master.Registry over the host's real network
// devices.
type Registry struct {
	log   *logrus.Entry
	hooks map[int]master.RXHook
}

// New returns a Registry bound to the host's current network namespace.
func New() *Registry {
	return &Registry{
		log:   logrus.WithField("component", "prp.hostlink"),
		hooks: map[int]master.RXHook{},
	}
}

// Lookup resolves ifindex to a LowerPort backed by the real device.
func (r *Registry) Lookup(ifindex int) (master.LowerPort, error) {
	link, err := netlink.LinkByIndex(ifindex)
	if err != nil {
		return nil, fmt.Errorf("hostlink: lookup ifindex %d: %w", ifindex, err)
	}
	return &devicePort{link: link}, nil
}

// IsMaster reports whether ifindex is itself a PRP master, i.e. already
// has link kind "prp".
func (r *Registry) IsMaster(ifindex int) bool {
	link, err := netlink.LinkByIndex(ifindex)
	if err != nil {
		return false
	}
	return link.Type() == "prp"
}

// IsSlave reports whether ifindex already has a master bound (MasterIndex
// != 0), regardless of the master's kind.
func (r *Registry) IsSlave(ifindex int) bool {
	link, err := netlink.LinkByIndex(ifindex)
	if err != nil {
		return false
	}
	return link.Attrs().MasterIndex != 0
}

// IsVLAN reports whether ifindex is a VLAN device.
func (r *Registry) IsVLAN(ifindex int) bool {
	link, err := netlink.LinkByIndex(ifindex)
	if err != nil {
		return false
	}
	return link.Type() == "vlan"
}

// DisableLRO attempts to disable large-receive-offload on ifindex.
// vishvananda/netlink has no direct ethtool LRO knob, so this degrades to
// a logged best-effort no-op rather than failing attach, per spec.md's
// allowance that this is a host-integration concern.
func (r *Registry) DisableLRO(ifindex int) error {
	r.log.WithField("ifindex", ifindex).Debug("LRO disable requested (best-effort, no-op on this platform)")
	return nil
}

// LinkUpper sets masterIfindex as ifindex's master in the host's device
// graph, the equivalent of `ip link set <slave> master <master>`.
func (r *Registry) LinkUpper(ifindex, masterIfindex int) error {
	link, err := netlink.LinkByIndex(ifindex)
	if err != nil {
		return err
	}
	masterLink, err := netlink.LinkByIndex(masterIfindex)
	if err != nil {
		return err
	}
	return netlink.LinkSetMasterByIndex(link, masterLink.Attrs().Index)
}

// UnlinkUpper clears ifindex's master.
func (r *Registry) UnlinkUpper(ifindex int) error {
	link, err := netlink.LinkByIndex(ifindex)
	if err != nil {
		return err
	}
	return netlink.LinkSetNoMaster(link)
}

// InstallRXHook records hook for ifindex. A real deployment wires this
// into an AF_PACKET socket's receive loop (see pcapport); hostlink itself
// only manages device-graph state.
func (r *Registry) InstallRXHook(ifindex int, hook master.RXHook) error {
	r.hooks[ifindex] = hook
	return nil
}

// RemoveRXHook uninstalls the hook recorded for ifindex.
func (r *Registry) RemoveRXHook(ifindex int) error {
	delete(r.hooks, ifindex)
	return nil
}

// devicePort adapts a vishvananda/netlink Link to master.LowerPort for
// MTU and operational-state queries. Sending frames is pcapport's job;
// devicePort's Send returns an error so a Registry built from hostlink
// alone cannot silently drop frames through the wrong path.
type devicePort struct {
	link netlink.Link
}

func (p *devicePort) Send([]byte) error {
	return fmt.Errorf("hostlink: device port does not transmit; pair with pcapport")
}

func (p *devicePort) MTU() int {
	return p.link.Attrs().MTU
}

func (p *devicePort) Up() bool {
	attrs := p.link.Attrs()
	return attrs.Flags&net.FlagUp != 0 && attrs.OperState == netlink.OperUp
}
