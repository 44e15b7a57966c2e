//go:build linux

package netlinkprobe

import (
	"testing"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/genetlink/genltest"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

func TestHasFamilyMock(t *testing.T) {
	c := genltest.Dial(func(greq genetlink.Message, nreq netlink.Message) ([]genetlink.Message, error) {
		if nreq.Header.Type != unix.GENL_ID_CTRL || greq.Header.Command != unix.CTRL_CMD_GETFAMILY {
			t.Fatalf("unexpected request: header %+v, command %d", nreq.Header, greq.Header.Command)
		}
		return familyMessages([]string{"nlctrl", "acpi_event"}), nil
	})

	client := newClient(c)
	defer client.Close()

	ok, err := client.HasFamily("acpi_event")
	if err != nil {
		t.Fatalf("HasFamily: %v", err)
	}
	if !ok {
		t.Fatalf("HasFamily(acpi_event) = false, want true")
	}

	ok, err = client.HasFamily("does-not-exist")
	if err != nil {
		t.Fatalf("HasFamily: %v", err)
	}
	if ok {
		t.Fatalf("HasFamily(does-not-exist) = true, want false")
	}
}

func familyMessages(families []string) []genetlink.Message {
	msgs := make([]genetlink.Message, 0, len(families))

	var id uint16
	for _, f := range families {
		msgs = append(msgs, genetlink.Message{
			Data: mustMarshalAttributes([]netlink.Attribute{
				{
					Type: unix.CTRL_ATTR_FAMILY_ID,
					Data: nlenc.Uint16Bytes(id),
				},
				{
					Type: unix.CTRL_ATTR_FAMILY_NAME,
					Data: nlenc.Bytes(f),
				},
			}),
		})
		id++
	}

	return msgs
}

func mustMarshalAttributes(attrs []netlink.Attribute) []byte {
	b, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		panic(err)
	}
	return b
}
