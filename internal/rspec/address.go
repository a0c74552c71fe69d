package rspec

import (
	"fmt"
	"net"
	"net/netip"
)

// IPv4Address is a static address assignment on an interface.
type IPv4Address struct {
	Address string `json:"address" yaml:"address"`
	Netmask string `json:"netmask" yaml:"netmask"`
}

// NewIPv4Address returns the assignment of host within prefix. It fails when
// host is not an IPv4 address inside prefix.
func NewIPv4Address(host netip.Addr, prefix netip.Prefix) (IPv4Address, error) {
	if !host.Is4() || !prefix.Addr().Is4() {
		return IPv4Address{}, fmt.Errorf("rspec: %w: %s in %s", ErrInvalidAddress, host, prefix)
	}
	if !prefix.Masked().Contains(host) {
		return IPv4Address{}, fmt.Errorf("rspec: %w: %s is outside %s", ErrInvalidAddress, host, prefix.Masked())
	}
	mask := net.CIDRMask(prefix.Bits(), 32)
	return IPv4Address{
		Address: host.String(),
		Netmask: net.IP(mask).String(),
	}, nil
}

// Prefix returns the subnet the address belongs to.
func (a IPv4Address) Prefix() (netip.Prefix, error) {
	addr, err := netip.ParseAddr(a.Address)
	if err != nil || !addr.Is4() {
		return netip.Prefix{}, fmt.Errorf("rspec: %w: address %q", ErrInvalidAddress, a.Address)
	}
	bits, err := maskBits(a.Netmask)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, bits).Masked(), nil
}

// Addr returns the parsed host address.
func (a IPv4Address) Addr() (netip.Addr, error) {
	addr, err := netip.ParseAddr(a.Address)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("rspec: %w: address %q", ErrInvalidAddress, a.Address)
	}
	return addr, nil
}

func maskBits(netmask string) (int, error) {
	m, err := netip.ParseAddr(netmask)
	if err != nil || !m.Is4() {
		return 0, fmt.Errorf("rspec: %w: netmask %q", ErrInvalidAddress, netmask)
	}
	b := m.As4()
	ones, bits := net.IPMask(b[:]).Size()
	if bits == 0 {
		return 0, fmt.Errorf("rspec: %w: netmask %q is not contiguous", ErrInvalidAddress, netmask)
	}
	return ones, nil
}

// Contains reports whether the address lies within prefix.
func (a IPv4Address) Contains(prefix netip.Prefix) bool {
	addr, err := a.Addr()
	if err != nil {
		return false
	}
	return prefix.Masked().Contains(addr)
}
