// Command prpctl creates a PRP master device from the command line and
// lists the host's generic netlink families, wiring together the master,
// hostlink (on Linux), stats, and netlinkprobe packages.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/ramv33/prp/master"
	"github.com/ramv33/prp/netlinkprobe"
	"github.com/ramv33/prp/rct"
	"github.com/ramv33/prp/stats"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: prpctl <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  create   bring up a PRP master bound to two lower devices\n")
	fmt.Fprintf(os.Stderr, "  diag     list the host's generic netlink families\n\n")
	pflag.PrintDefaults()
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	os.Args = os.Args[1:]

	var err error
	switch cmd {
	case "create":
		err = runCreate()
	case "diag":
		err = runDiag()
	case "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "prpctl: unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "prpctl: %v\n", err)
		os.Exit(1)
	}
}

func runCreate() error {
	fs := pflag.NewFlagSet("create", pflag.ExitOnError)
	macStr := fs.StringP("mac", "m", "", "master MAC address, e.g. 02:00:00:00:00:01 (required)")
	slave1 := fs.IntP("slave1", "1", 0, "ifindex of the LAN A lower device (required)")
	slave2 := fs.IntP("slave2", "2", 0, "ifindex of the LAN B lower device (required)")
	masterIfindex := fs.IntP("ifindex", "i", 0, "ifindex of the master device itself (required)")
	name := fs.StringP("name", "n", "prp0", "label used for the Prometheus metrics registered by this master")
	if err := fs.Parse(os.Args); err != nil {
		return err
	}

	if *macStr == "" || *slave1 == 0 || *slave2 == 0 || *masterIfindex == 0 {
		fs.Usage()
		return fmt.Errorf("create: --mac, --slave1, --slave2, and --ifindex are all required")
	}

	mac, err := net.ParseMAC(*macStr)
	if err != nil || len(mac) != 6 {
		return fmt.Errorf("create: invalid MAC %q: %w", *macStr, err)
	}
	var macArr [6]byte
	copy(macArr[:], mac)

	registry := newHostRegistry()
	collector := stats.New(prometheus.DefaultRegisterer, *name)

	m := master.New(macArr, registry, collector, master.DefaultConfig())
	if err := m.Attach(*slave1, rct.LANA, *masterIfindex); err != nil {
		return fmt.Errorf("create: attach LAN A: %w", err)
	}
	if err := m.Attach(*slave2, rct.LANB, *masterIfindex); err != nil {
		return fmt.Errorf("create: attach LAN B: %w", err)
	}
	m.SetAdminUp(true)

	fmt.Printf("prp master %s up: mtu=%d operstate=%s\n", *macStr, m.MTU(), m.OperState())
	return nil
}

func runDiag() error {
	c, err := netlinkprobe.Dial()
	if err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	defer c.Close()

	names, err := c.FamilyNames()
	if err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
