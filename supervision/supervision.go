// Package supervision implements the PRP supervision frame codec: the tag
// and TLV chain DANPs exchange to announce themselves and classify peers
// as doubly-attached.
package supervision

import (
	"encoding/binary"
	"errors"
)

// EtherType is the supervision frame's EtherType, identical to the RCT
// suffix.
const EtherType = 0x88FB

// TagLen is the size in octets of the tag that opens a supervision body.
const TagLen = 4

// TLVHeaderLen is the size in octets of a TLV's type+length header.
const TLVHeaderLen = 2

// MACLen is the size in octets of a hardware address carried in a TLV
// payload.
const MACLen = 6

// PadTo70 and PadTo74 are the lengths a supervision body (the Ethernet
// payload, before the RCT is appended) is padded to for untagged and
// 802.1Q-tagged frames respectively.
const (
	PadTo70 = 70
	PadTo74 = 74
)

// TLVType identifies the kind of TLV in the chain.
type TLVType uint8

const (
	// TLVEnd terminates the TLV chain (TLV0).
	TLVEnd TLVType = 0
	// TLVDupDiscard and TLVDupAccept are the two TLV1 modes a peer may
	// advertise. Both are parsed; this module treats them identically,
	// per the protocol's own allowance that dup-accept is legacy-only.
	TLVDupDiscard TLVType = 20
	TLVDupAccept  TLVType = 21
	// TLVRedBoxMAC carries an optional RedBox's MAC address (TLV2).
	TLVRedBoxMAC TLVType = 30
)

// Frame is the decoded form of a supervision frame body, starting after
// the Ethernet header.
type Frame struct {
	Version   uint16 // low 12 bits of the tag's first word
	SupSeqnr  uint16
	TLV1Type  TLVType
	MAC       [MACLen]byte
	RedBoxMAC [MACLen]byte
	HasRedBox bool
}

var (
	// ErrTruncated indicates the body is shorter than the minimum valid
	// supervision frame.
	ErrTruncated = errors.New("supervision: frame truncated")
	// ErrBadTLV1 indicates TLV1 is missing, has the wrong type, or the
	// wrong length.
	ErrBadTLV1 = errors.New("supervision: invalid or missing TLV1")
	// ErrBadTLV2 indicates an optional TLV2 has the wrong length.
	ErrBadTLV2 = errors.New("supervision: invalid TLV2")
	// ErrNoTerminator indicates the TLV chain was not closed by TLV0.
	ErrNoTerminator = errors.New("supervision: missing TLV0 terminator")
)

// Build encodes f as a supervision frame body (tag through TLV0,
// unpadded). path is fixed at 0 and version at 1, matching the default a
// conforming sender uses.
func Build(f Frame) []byte {
	tlv1Type := f.TLV1Type
	if tlv1Type == 0 {
		tlv1Type = TLVDupDiscard
	}

	size := TagLen + TLVHeaderLen + MACLen + TLVHeaderLen
	if f.HasRedBox {
		size += TLVHeaderLen + MACLen
	}
	b := make([]byte, 0, size)

	var tag [TagLen]byte
	const version = 1
	binary.BigEndian.PutUint16(tag[0:2], version&0x0FFF) // path=0 in top 4 bits
	binary.BigEndian.PutUint16(tag[2:4], f.SupSeqnr)
	b = append(b, tag[:]...)

	b = append(b, byte(tlv1Type), MACLen)
	b = append(b, f.MAC[:]...)

	if f.HasRedBox {
		b = append(b, byte(TLVRedBoxMAC), MACLen)
		b = append(b, f.RedBoxMAC[:]...)
	}

	b = append(b, byte(TLVEnd), 0)
	return b
}

// Parse decodes a supervision frame body from b (starting just after the
// Ethernet header). It accepts exactly TLV1 (mandatory), an optional
// TLV2, terminated by TLV0; any other ordering or length is rejected.
func Parse(b []byte) (Frame, error) {
	var f Frame

	if len(b) < TagLen+TLVHeaderLen+MACLen+TLVHeaderLen {
		return Frame{}, ErrTruncated
	}

	word0 := binary.BigEndian.Uint16(b[0:2])
	f.Version = word0 & 0x0FFF
	f.SupSeqnr = binary.BigEndian.Uint16(b[2:4])
	b = b[TagLen:]

	tlvType := TLVType(b[0])
	tlvLen := b[1]
	if (tlvType != TLVDupDiscard && tlvType != TLVDupAccept) || tlvLen != MACLen {
		return Frame{}, ErrBadTLV1
	}
	f.TLV1Type = tlvType
	copy(f.MAC[:], b[TLVHeaderLen:TLVHeaderLen+MACLen])
	b = b[TLVHeaderLen+MACLen:]

	if len(b) < TLVHeaderLen {
		return Frame{}, ErrNoTerminator
	}
	next := TLVType(b[0])
	nextLen := b[1]

	if next == TLVRedBoxMAC {
		if nextLen != MACLen || len(b) < TLVHeaderLen+MACLen+TLVHeaderLen {
			return Frame{}, ErrBadTLV2
		}
		copy(f.RedBoxMAC[:], b[TLVHeaderLen:TLVHeaderLen+MACLen])
		f.HasRedBox = true
		b = b[TLVHeaderLen+MACLen:]
		next = TLVType(b[0])
		nextLen = b[1]
	}

	if next != TLVEnd || nextLen != 0 {
		return Frame{}, ErrNoTerminator
	}

	return f, nil
}
