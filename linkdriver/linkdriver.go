// Package linkdriver implements the rtnetlink LinkDriver binding for a PRP
// master: the "prp" link kind, carrying the two slave ifindices and the
// optional supervision multicast address as rtnetlink attributes, the
// Go-native equivalent of prp_netlink.c's rtnl_link_ops.
package linkdriver

import (
	"fmt"

	"github.com/jsimonetti/rtnetlink"
	"github.com/mdlayher/netlink"
)

// Kind is the link kind string this driver registers under, analogous to
// "bond" or "vlan".
const Kind = "prp"

// IFLA_PRP_* are this module's private rtnetlink attribute numbers, nested
// under IFLA_INFO_DATA for links of Kind. They have no counterpart in the
// mainline kernel's uapi headers; a real deployment would need a matching
// kernel-side attribute policy.
const (
	IFLA_PRP_SLAVE1 = iota + 1
	IFLA_PRP_SLAVE2
	IFLA_PRP_SUPADDR
)

// PRP implements rtnetlink.LinkDriver for PRP master devices.
type PRP struct {
	// Slave1 and Slave2 are the ifindices of the two lower devices.
	Slave1, Slave2 uint32
	// SupervisionAddr is the configured supervision multicast address,
	// 6 octets, or zero-length to mean "use the default".
	SupervisionAddr []byte
}

var _ rtnetlink.LinkDriver = &PRP{}

// New returns a fresh, zero-valued PRP link driver, as rtnetlink requires
// for decoding a received link attribute set.
func (p *PRP) New() rtnetlink.LinkDriver {
	return &PRP{}
}

// Encode writes the driver's fields as rtnetlink attributes.
func (p *PRP) Encode(ae *netlink.AttributeEncoder) error {
	if p.Slave1 != 0 {
		ae.Uint32(IFLA_PRP_SLAVE1, p.Slave1)
	}
	if p.Slave2 != 0 {
		ae.Uint32(IFLA_PRP_SLAVE2, p.Slave2)
	}
	if len(p.SupervisionAddr) > 0 {
		if len(p.SupervisionAddr) != 6 {
			return fmt.Errorf("linkdriver: supervision address must be 6 octets, got %d", len(p.SupervisionAddr))
		}
		ae.Bytes(IFLA_PRP_SUPADDR, p.SupervisionAddr)
	}
	return nil
}

// Decode reads rtnetlink attributes into the driver's fields.
func (p *PRP) Decode(ad *netlink.AttributeDecoder) error {
	for ad.Next() {
		switch ad.Type() {
		case IFLA_PRP_SLAVE1:
			p.Slave1 = ad.Uint32()
		case IFLA_PRP_SLAVE2:
			p.Slave2 = ad.Uint32()
		case IFLA_PRP_SUPADDR:
			p.SupervisionAddr = ad.Bytes()
		}
	}
	return nil
}

// Kind identifies this driver's link kind to rtnetlink.
func (*PRP) Kind() string {
	return Kind
}
