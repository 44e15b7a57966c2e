//go:build !linux

package main

import (
	"fmt"

	"github.com/ramv33/prp/master"
)

// unsupportedRegistry rejects every operation; prpctl's create command
// only has a real device graph to bind to on Linux.
type unsupportedRegistry struct{}

func newHostRegistry() master.Registry {
	return unsupportedRegistry{}
}

func (unsupportedRegistry) Lookup(ifindex int) (master.LowerPort, error) {
	return nil, fmt.Errorf("prpctl: device attach is only supported on linux")
}
func (unsupportedRegistry) IsMaster(int) bool           { return false }
func (unsupportedRegistry) IsSlave(int) bool            { return false }
func (unsupportedRegistry) IsVLAN(int) bool             { return false }
func (unsupportedRegistry) DisableLRO(int) error        { return fmt.Errorf("prpctl: unsupported on this platform") }
func (unsupportedRegistry) LinkUpper(int, int) error    { return fmt.Errorf("prpctl: unsupported on this platform") }
func (unsupportedRegistry) UnlinkUpper(int) error       { return fmt.Errorf("prpctl: unsupported on this platform") }
func (unsupportedRegistry) InstallRXHook(int, master.RXHook) error {
	return fmt.Errorf("prpctl: unsupported on this platform")
}
func (unsupportedRegistry) RemoveRXHook(int) error { return fmt.Errorf("prpctl: unsupported on this platform") }
