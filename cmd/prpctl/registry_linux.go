//go:build linux

package main

import (
	"github.com/ramv33/prp/hostlink"
	"github.com/ramv33/prp/master"
)

func newHostRegistry() master.Registry {
	return hostlink.New()
}
