package profile

import (
	"fmt"
	"net/netip"

	"powderteam/oaiprofile/internal/rspec"
)

// LinkRole classifies a link for address planning.
type LinkRole string

const (
	// LinkCore joins the core-network host and the gNodeB host.
	LinkCore LinkRole = "core"

	// LinkRadio joins a compute host to its SDR. Every radio link is an
	// isolated segment, so each reuses the same subnet.
	LinkRadio LinkRole = "radio"
)

// AddressPlan maps each link role to its /24 subnet.
var AddressPlan = map[LinkRole]netip.Prefix{
	LinkCore:  netip.MustParsePrefix("192.168.1.0/24"),
	LinkRadio: netip.MustParsePrefix("192.168.40.0/24"),
}

// Host addresses within each planned subnet.
var (
	CNCoreAddr    = netip.MustParseAddr("192.168.1.1")
	NodeBCoreAddr = netip.MustParseAddr("192.168.1.2")

	// HostRadioAddr is the compute side of every radio link; the SDR keeps
	// its factory address on the same segment.
	HostRadioAddr = netip.MustParseAddr("192.168.40.1")
)

// address returns the assignment of host in the subnet planned for role.
func address(role LinkRole, host netip.Addr) (rspec.IPv4Address, error) {
	prefix, ok := AddressPlan[role]
	if !ok {
		return rspec.IPv4Address{}, fmt.Errorf("profile: no subnet planned for %s links", role)
	}
	a, err := rspec.NewIPv4Address(host, prefix)
	if err != nil {
		return rspec.IPv4Address{}, fmt.Errorf("profile: %s link: %w", role, err)
	}
	return a, nil
}
