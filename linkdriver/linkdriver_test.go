package linkdriver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/netlink"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := &PRP{
		Slave1:          3,
		Slave2:          4,
		SupervisionAddr: []byte{0x01, 0x15, 0x4E, 0x00, 0x01, 0x00},
	}

	ae := netlink.NewAttributeEncoder()
	if err := want.Encode(ae); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("ae.Encode: %v", err)
	}

	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		t.Fatalf("NewAttributeDecoder: %v", err)
	}
	got := &PRP{}
	if err := got.Decode(ad); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRejectsShortSupervisionAddr(t *testing.T) {
	p := &PRP{SupervisionAddr: []byte{1, 2, 3}}
	ae := netlink.NewAttributeEncoder()
	if err := p.Encode(ae); err == nil {
		t.Fatalf("Encode: want error for short supervision address")
	}
}

func TestKind(t *testing.T) {
	if (&PRP{}).Kind() != Kind {
		t.Errorf("Kind() = %q, want %q", (&PRP{}).Kind(), Kind)
	}
}
