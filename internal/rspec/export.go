package rspec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Topology is a flat, serialization-friendly view of a request, used for
// the JSON and YAML exports.
type Topology struct {
	Nodes []NodeSpec `json:"nodes" yaml:"nodes"`
	Links []LinkSpec `json:"links" yaml:"links"`
	Tour  *TourSpec  `json:"tour,omitempty" yaml:"tour,omitempty"`
}

// NodeSpec describes one node of the topology.
type NodeSpec struct {
	ClientID           string          `json:"client_id" yaml:"client_id"`
	SliverType         string          `json:"sliver_type" yaml:"sliver_type"`
	HardwareType       string          `json:"hardware_type,omitempty" yaml:"hardware_type,omitempty"`
	DiskImage          string          `json:"disk_image,omitempty" yaml:"disk_image,omitempty"`
	ComponentManagerID string          `json:"component_manager_id,omitempty" yaml:"component_manager_id,omitempty"`
	ComponentID        string          `json:"component_id,omitempty" yaml:"component_id,omitempty"`
	Interfaces         []InterfaceSpec `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Services           []Execute       `json:"services,omitempty" yaml:"services,omitempty"`
}

// InterfaceSpec describes one interface and its addresses.
type InterfaceSpec struct {
	ClientID  string        `json:"client_id" yaml:"client_id"`
	Addresses []IPv4Address `json:"addresses,omitempty" yaml:"addresses,omitempty"`
}

// LinkSpec describes one link.
type LinkSpec struct {
	ClientID   string   `json:"client_id" yaml:"client_id"`
	Bandwidth  int64    `json:"bandwidth_kbps,omitempty" yaml:"bandwidth_kbps,omitempty"`
	Interfaces []string `json:"interfaces" yaml:"interfaces"`
}

// TourSpec carries the tour text.
type TourSpec struct {
	Description  string `json:"description" yaml:"description"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// Export validates and freezes the request and returns its topology view.
func (r *Request) Export() (*Topology, error) {
	r.freeze()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	t := &Topology{}
	for _, n := range r.Nodes() {
		spec := NodeSpec{
			ClientID:           n.ClientID,
			SliverType:         n.SliverType,
			HardwareType:       n.HardwareType,
			DiskImage:          n.DiskImage,
			ComponentManagerID: n.ComponentManagerID,
			ComponentID:        n.ComponentID,
			Services:           n.Services(),
		}
		for _, iface := range n.interfaces {
			spec.Interfaces = append(spec.Interfaces, InterfaceSpec{
				ClientID:  iface.ClientID,
				Addresses: iface.Addresses(),
			})
		}
		t.Nodes = append(t.Nodes, spec)
	}
	for _, l := range r.Links() {
		spec := LinkSpec{ClientID: l.ClientID, Bandwidth: l.Bandwidth}
		for _, iface := range l.interfaces {
			spec.Interfaces = append(spec.Interfaces, iface.ClientID)
		}
		t.Links = append(t.Links, spec)
	}
	if tour := r.Tour(); tour != nil {
		t.Tour = &TourSpec{Description: tour.Description, Instructions: tour.Instructions}
	}
	return t, nil
}

// EncodeJSON returns the indented JSON export of the request.
func (r *Request) EncodeJSON() ([]byte, error) {
	t, err := r.Export()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rspec: encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML returns the YAML export of the request.
func (r *Request) EncodeYAML() ([]byte, error) {
	t, err := r.Export()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("rspec: encode yaml: %w", err)
	}
	return data, nil
}
