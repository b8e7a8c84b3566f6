//go:build !linux

package link

import (
	"context"
	"fmt"
	"runtime"
)

// NetlinkSetter is only functional on Linux.
type NetlinkSetter struct {
	Interface string
}

// NewNetlinkSetter creates a NetlinkSetter for iface.
func NewNetlinkSetter(iface string) *NetlinkSetter {
	return &NetlinkSetter{Interface: iface}
}

// Set always fails outside Linux.
func (s *NetlinkSetter) Set(_ context.Context, _ Direction) error {
	return fmt.Errorf("link: netlink driver is not supported on %s", runtime.GOOS)
}
