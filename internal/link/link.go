// Package link sets a network interface administratively up or down.
package link

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// Direction is the desired administrative state of an interface.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down" in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	}
	return "", fmt.Errorf("link: invalid direction %q (want up or down)", s)
}

// Setter changes the state of a single interface.
// *CommandSetter and *NetlinkSetter satisfy this interface.
type Setter interface {
	Set(ctx context.Context, dir Direction) error
}

// Driver names accepted by New.
const (
	DriverIfconfig = "ifconfig"
	DriverIP       = "ip"
	DriverNetlink  = "netlink"
)

// Drivers lists every supported driver name.
var Drivers = []string{DriverIfconfig, DriverIP, DriverNetlink}

// New returns the Setter for the named driver.
func New(driver, iface string, opts ...Option) (Setter, error) {
	if iface == "" {
		return nil, fmt.Errorf("link: interface name must not be empty")
	}
	switch driver {
	case DriverIfconfig, "":
		return NewCommandSetter(iface, IfconfigArgs, opts...), nil
	case DriverIP:
		return NewCommandSetter(iface, IPLinkArgs, opts...), nil
	case DriverNetlink:
		return NewNetlinkSetter(iface), nil
	}
	return nil, fmt.Errorf("link: unknown driver %q (want one of %s)", driver, strings.Join(Drivers, ", "))
}

// State reports whether the named interface is currently up.
func State(name string) (Direction, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return "", fmt.Errorf("link: lookup %s: %w", name, err)
	}
	if iface.Flags&net.FlagUp != 0 {
		return Up, nil
	}
	return Down, nil
}
