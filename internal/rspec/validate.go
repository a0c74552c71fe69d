package rspec

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of the request:
//   - every link has exactly two interfaces
//   - every address has a valid netmask
//   - addressed endpoints of a link share one subnet
//
// Unique client ids and one link per interface are enforced while building.
// All violations are reported together.
func (r *Request) Validate() error {
	var errs []error

	for _, n := range r.Nodes() {
		if n.SliverType == "" {
			errs = append(errs, fmt.Errorf("node %q: missing sliver type", n.ClientID))
		}
		for _, iface := range n.Interfaces() {
			for _, a := range iface.Addresses() {
				if _, err := a.Prefix(); err != nil {
					errs = append(errs, fmt.Errorf("interface %q: %w", iface.ClientID, err))
				}
			}
		}
	}

	for _, l := range r.Links() {
		ends := l.Interfaces()
		if len(ends) != 2 {
			errs = append(errs, fmt.Errorf("link %q: has %d interfaces, want 2", l.ClientID, len(ends)))
			continue
		}
		if err := sameSubnet(l.ClientID, ends[0].Addresses(), ends[1].Addresses()); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("rspec: %w: %w", ErrInvalidTopology, errors.Join(errs...))
}

// sameSubnet checks that when both endpoints of a link carry addresses, at
// least one pair of them lies in a common subnet.
func sameSubnet(linkID string, a, b []IPv4Address) error {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	for _, x := range a {
		px, err := x.Prefix()
		if err != nil {
			continue
		}
		for _, y := range b {
			py, err := y.Prefix()
			if err != nil {
				continue
			}
			if px == py {
				if x.Address == y.Address {
					return fmt.Errorf("link %q: both endpoints use %s", linkID, x.Address)
				}
				return nil
			}
		}
	}
	return fmt.Errorf("link %q: endpoints are not on a common subnet", linkID)
}
