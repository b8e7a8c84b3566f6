//go:build linux

package link

import (
	"context"
	"fmt"

	"github.com/vishvananda/netlink"
)

// NetlinkSetter toggles an interface through the rtnetlink API instead of
// an external command. It needs CAP_NET_ADMIN.
type NetlinkSetter struct {
	Interface string
}

// NewNetlinkSetter creates a NetlinkSetter for iface.
func NewNetlinkSetter(iface string) *NetlinkSetter {
	return &NetlinkSetter{Interface: iface}
}

// Set looks the link up by name and changes its admin state.
func (s *NetlinkSetter) Set(_ context.Context, dir Direction) error {
	l, err := netlink.LinkByName(s.Interface)
	if err != nil {
		return fmt.Errorf("link: netlink lookup %s: %w", s.Interface, err)
	}
	if dir == Up {
		err = netlink.LinkSetUp(l)
	} else {
		err = netlink.LinkSetDown(l)
	}
	if err != nil {
		return fmt.Errorf("link: netlink set %s %s: %w", s.Interface, dir, err)
	}
	return nil
}
