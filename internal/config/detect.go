package config

import (
	"net"
	"runtime"
	"sort"
	"strings"
)

// DetectInterface picks the interface flap init should suggest: the first
// up, non-loopback interface with a hardware address, preferring wired
// names ("en", "eth") over everything else. Falls back to the default
// interface when nothing qualifies. Errors listing interfaces are ignored.
func DetectInterface() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Defaults().Link.Interface
	}
	return pickInterface(ifaces)
}

func pickInterface(ifaces []net.Interface) string {
	var candidates []net.Interface
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		candidates = append(candidates, iface)
	}
	if len(candidates) == 0 {
		return Defaults().Link.Interface
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return interfaceRank(candidates[i].Name) < interfaceRank(candidates[j].Name)
	})
	return candidates[0].Name
}

// interfaceRank orders interface names; lower is preferred.
func interfaceRank(name string) int {
	switch {
	case runtime.GOOS == "darwin" && name == "en0":
		return 0
	case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
		return 1
	case strings.HasPrefix(name, "wl"):
		return 2
	}
	return 3
}
