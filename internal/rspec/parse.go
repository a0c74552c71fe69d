package rspec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Document is a request document read back from XML.
type Document struct {
	raw xmlRSpec
}

// Parse decodes an XML request document.
func Parse(data []byte) (*Document, error) {
	var raw xmlRSpec
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("rspec: parse request: %w", err)
	}
	return &Document{raw: raw}, nil
}

// Type returns the rspec type attribute ("request" for request documents).
func (d *Document) Type() string { return d.raw.Type }

// NodeIDs returns the client ids of all nodes in document order.
func (d *Document) NodeIDs() []string {
	ids := make([]string, len(d.raw.Nodes))
	for i, n := range d.raw.Nodes {
		ids[i] = n.ClientID
	}
	return ids
}

// Services returns the startup commands of the node with the given client
// id, in document order.
func (d *Document) Services(nodeID string) []Execute {
	for _, n := range d.raw.Nodes {
		if n.ClientID != nodeID || n.Services == nil {
			continue
		}
		out := make([]Execute, len(n.Services.Execute))
		for i, e := range n.Services.Execute {
			out[i] = Execute{Shell: e.Shell, Command: e.Command}
		}
		return out
	}
	return nil
}

// HasTour reports whether the document carries tour text.
func (d *Document) HasTour() bool {
	return d.raw.Tour != nil && d.raw.Tour.Description != nil
}

// Summary counts the elements of the document.
type Summary struct {
	Nodes      int `json:"nodes"`
	Interfaces int `json:"interfaces"`
	Links      int `json:"links"`
	Services   int `json:"services"`
}

// Summary returns element counts for reporting.
func (d *Document) Summary() Summary {
	s := Summary{Nodes: len(d.raw.Nodes), Links: len(d.raw.Links)}
	for _, n := range d.raw.Nodes {
		s.Interfaces += len(n.Interfaces)
		if n.Services != nil {
			s.Services += len(n.Services.Execute)
		}
	}
	return s
}

// Check verifies the invariants of a request document:
//   - the document type is "request"
//   - client ids are unique across nodes, interfaces and links
//   - every link references exactly two existing interfaces
//   - no interface is referenced by more than one link
//   - every address parses and lies in the same subnet as its link peer
//
// All violations are reported together.
func (d *Document) Check() error {
	var errs []error

	if d.raw.Type != DocumentTypeRequest {
		errs = append(errs, fmt.Errorf("rspec type is %q, want %q", d.raw.Type, DocumentTypeRequest))
	}

	seen := map[string]string{}
	claim := func(kind, id string) {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s with empty client_id", kind))
			return
		}
		if prev, ok := seen[id]; ok {
			errs = append(errs, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateID, id, prev, kind))
			return
		}
		seen[id] = kind
	}

	addresses := map[string][]IPv4Address{}
	for _, n := range d.raw.Nodes {
		claim("node", n.ClientID)
		for _, iface := range n.Interfaces {
			claim("interface", iface.ClientID)
			for _, ip := range iface.IPs {
				a := IPv4Address{Address: ip.Address, Netmask: ip.Netmask}
				if _, err := a.Prefix(); err != nil {
					errs = append(errs, fmt.Errorf("interface %q: %w", iface.ClientID, err))
					continue
				}
				addresses[iface.ClientID] = append(addresses[iface.ClientID], a)
			}
		}
	}

	linked := map[string]string{}
	for _, l := range d.raw.Links {
		claim("link", l.ClientID)
		if len(l.InterfaceRefs) != 2 {
			errs = append(errs, fmt.Errorf("link %q: has %d interfaces, want 2", l.ClientID, len(l.InterfaceRefs)))
		}
		for _, ref := range l.InterfaceRefs {
			if seen[ref.ClientID] != "interface" {
				errs = append(errs, fmt.Errorf("link %q: unknown interface %q", l.ClientID, ref.ClientID))
				continue
			}
			if other, ok := linked[ref.ClientID]; ok {
				errs = append(errs, fmt.Errorf("%w: %q is on %q and %q", ErrInterfaceLinked, ref.ClientID, other, l.ClientID))
				continue
			}
			linked[ref.ClientID] = l.ClientID
		}
		if len(l.InterfaceRefs) == 2 {
			a, b := l.InterfaceRefs[0].ClientID, l.InterfaceRefs[1].ClientID
			if err := sameSubnet(l.ClientID, addresses[a], addresses[b]); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("rspec: %w: %w", ErrInvalidTopology, errors.Join(errs...))
}
