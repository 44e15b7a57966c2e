//go:build linux

// Package pcapport implements master.LowerPort over a real Ethernet NIC
// using gopacket/pcap, the Go-native stand-in for the kernel's net_device
// send/receive path spec.md treats as an external collaborator.
package pcapport

import (
	"fmt"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
	"github.com/sirupsen/logrus"

	"github.com/ramv33/prp/rct"
)

// snaplen is large enough to capture a full tagged Ethernet II frame
// (1500 MTU + header + RCT) without truncation.
const snaplen = 1600

// Port is a master.LowerPort backed by a live pcap handle on one NIC.
type Port struct {
	device string
	handle *pcap.Handle
	mtu    int
	up     atomic.Bool
	log    *logrus.Entry
}

// Open opens device for live capture and transmission. mtu is the
// device's current MTU, supplied by the caller (gopacket/pcap has no MTU
// query of its own).
func Open(device string, mtu int) (*Port, error) {
	handle, err := pcap.OpenLive(device, snaplen, true, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("pcapport: open %s: %w", device, err)
	}
	p := &Port{
		device: device,
		handle: handle,
		mtu:    mtu,
		log:    logrus.WithField("component", "prp.pcapport").WithField("device", device),
	}
	p.up.Store(true)
	return p, nil
}

// Close releases the underlying pcap handle.
func (p *Port) Close() {
	p.handle.Close()
}

// Send writes frame to the wire as-is.
func (p *Port) Send(frame []byte) error {
	if err := p.handle.WritePacketData(frame); err != nil {
		return fmt.Errorf("pcapport: send on %s: %w", p.device, err)
	}
	return nil
}

// MTU returns the device's configured MTU.
func (p *Port) MTU() int {
	return p.mtu
}

// Up reports whether the port is currently considered operationally up.
// SetUp lets a caller update this from the real device state.
func (p *Port) Up() bool {
	return p.up.Load()
}

// SetUp updates the port's operational state.
func (p *Port) SetUp(up bool) {
	p.up.Store(up)
}

// Serve reads packets from the handle in a loop, invoking hook with each
// frame tagged as arriving on lan, until the handle is closed. It blocks
// and is intended to run in its own goroutine.
func (p *Port) Serve(lan rct.LANID, hook func(frame []byte, lan rct.LANID)) error {
	src := gopacket.NewPacketSource(p.handle, p.handle.LinkType())
	for packet := range src.Packets() {
		data := packet.Data()
		cp := make([]byte, len(data))
		copy(cp, data)
		hook(cp, lan)
	}
	return nil
}
