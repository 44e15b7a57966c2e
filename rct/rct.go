// Package rct implements the PRP Redundancy Control Trailer: the 6-octet
// trailer IEC 62439-3 appends to every tagged data or supervision frame.
package rct

import (
	"encoding/binary"
	"fmt"
)

// Len is the size in octets of an RCT.
const Len = 6

// Suffix is the fixed value that marks the final 16 bits of a valid RCT.
const Suffix = 0x88FB

// EtherHeaderLen is the length of an untagged Ethernet II header
// (destination + source + EtherType), used to derive LSDU size.
const EtherHeaderLen = 14

// LANID identifies which of the two parallel LANs a port or RCT belongs to.
type LANID uint8

// The two LAN identifiers a DANP's ports may carry.
const (
	LANA LANID = 0xA
	LANB LANID = 0xB
)

// Index returns 0 for LANA and 1 for LANB, for indexing a 2-element array.
func (l LANID) Index() int {
	return int(l & 1)
}

func (l LANID) String() string {
	switch l {
	case LANA:
		return "A"
	case LANB:
		return "B"
	default:
		return fmt.Sprintf("LANID(%#x)", uint8(l))
	}
}

// RCT is the decoded form of a Redundancy Control Trailer.
type RCT struct {
	SeqNr    uint16
	LAN      LANID
	LSDUSize uint16 // 12 bits; length from start of payload through end of RCT
}

// Append encodes r and appends it to the end of frame, returning the
// extended slice. Callers must ensure frame has at least Len octets of
// spare tail capacity, or a fresh backing array is allocated.
func (r RCT) Append(frame []byte) []byte {
	var b [Len]byte
	binary.BigEndian.PutUint16(b[0:2], r.SeqNr)
	lanLsdu := (uint16(r.LAN&0xF) << 12) | (r.LSDUSize & 0x0FFF)
	binary.BigEndian.PutUint16(b[2:4], lanLsdu)
	binary.BigEndian.PutUint16(b[4:6], Suffix)
	return append(frame, b[:]...)
}

// Parse reads an RCT from the trailing 6 octets of frame. It returns
// ErrNoRCT if the frame is too short or the suffix does not match
// Suffix — the caller's signal to treat the frame as non-PRP rather than
// an error.
func Parse(frame []byte) (RCT, error) {
	if len(frame) < Len {
		return RCT{}, ErrNoRCT
	}
	b := frame[len(frame)-Len:]
	suffix := binary.BigEndian.Uint16(b[4:6])
	if suffix != Suffix {
		return RCT{}, ErrNoRCT
	}
	seq := binary.BigEndian.Uint16(b[0:2])
	lanLsdu := binary.BigEndian.Uint16(b[2:4])
	return RCT{
		SeqNr:    seq,
		LAN:      LANID(lanLsdu >> 12),
		LSDUSize: lanLsdu & 0x0FFF,
	}, nil
}

// ErrNoRCT indicates the trailing 6 octets of a frame are not a valid RCT
// (wrong suffix, or the frame is shorter than Len).
var ErrNoRCT = fmt.Errorf("rct: suffix mismatch or frame too short")

// LSDUSize computes the LSDU size IEC 62439-3 expects for a tagged frame
// of frameLen octets (the full wire frame, RCT included, FCS excluded).
func LSDUSize(frameLen int) uint16 {
	return uint16(frameLen-EtherHeaderLen) & 0x0FFF
}
