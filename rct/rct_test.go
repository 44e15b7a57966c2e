package rct

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		r    RCT
	}{
		{"lan-a", RCT{SeqNr: 0, LAN: LANA, LSDUSize: 100}},
		{"lan-b", RCT{SeqNr: 7, LAN: LANB, LSDUSize: 1500}},
		{"wrap-high", RCT{SeqNr: 0xFFFE, LAN: LANA, LSDUSize: 46}},
		{"max-lsdu", RCT{SeqNr: 1, LAN: LANB, LSDUSize: 0x0FFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := tt.r.Append(make([]byte, 0, Len))
			if len(frame) != Len {
				t.Fatalf("Append: got %d octets, want %d", len(frame), Len)
			}

			got, err := Parse(frame)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tt.r, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejectsBadSuffix(t *testing.T) {
	frame := []byte{0, 1, 0xA0, 0x00, 0x12, 0x34}
	if _, err := Parse(frame); err != ErrNoRCT {
		t.Fatalf("Parse: got err %v, want ErrNoRCT", err)
	}
}

func TestParseRejectsShortFrame(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err != ErrNoRCT {
		t.Fatalf("Parse: got err %v, want ErrNoRCT", err)
	}
}

// RCT-SIZE: for every tagged frame placed on the wire, lsdu_size must equal
// frame_len_without_fcs - eth_header_len.
func TestLSDUSizeMatchesWireLength(t *testing.T) {
	const payload = 100
	frameLen := EtherHeaderLen + payload + Len
	got := LSDUSize(frameLen)
	want := uint16(payload + Len)
	if got != want {
		t.Fatalf("LSDUSize(%d) = %d, want %d", frameLen, got, want)
	}
}

func TestLANIDIndex(t *testing.T) {
	if LANA.Index() != 0 {
		t.Errorf("LANA.Index() = %d, want 0", LANA.Index())
	}
	if LANB.Index() != 1 {
		t.Errorf("LANB.Index() = %d, want 1", LANB.Index())
	}
}
