// Package netlinkprobe is a thin generic-netlink diagnostic client,
// adapted from the Open vSwitch generic-netlink client's Dial/ListFamilies
// pattern. prpctl uses it to report which netlink families are available
// on the host before attempting to create a PRP master; PRP itself has no
// generic-netlink family of its own.
package netlinkprobe

import (
	"github.com/mdlayher/genetlink"
)

// conn is the subset of *genetlink.Conn this package depends on, so tests
// can substitute genltest.Dial's mock connection.
type conn interface {
	Close() error
	ListFamilies() ([]genetlink.Family, error)
}

// Client is a minimal generic netlink connection used only to enumerate
// families for diagnostics.
type Client struct {
	c conn
}

// Dial opens a generic netlink connection.
func Dial() (*Client, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, err
	}
	return &Client{c: c}, nil
}

// newClient wraps an already-established connection, letting tests supply
// a genltest mock in place of a real netlink socket.
func newClient(c conn) *Client {
	return &Client{c: c}
}

// Close closes the underlying generic netlink connection.
func (c *Client) Close() error {
	return c.c.Close()
}

// FamilyNames returns the names of every generic netlink family currently
// registered on the host, sorted as the kernel returned them.
func (c *Client) FamilyNames() ([]string, error) {
	families, err := c.c.ListFamilies()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.Name)
	}
	return names, nil
}

// HasFamily reports whether name is among the host's registered generic
// netlink families.
func (c *Client) HasFamily(name string) (bool, error) {
	names, err := c.FamilyNames()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}
