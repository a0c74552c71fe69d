// Package rspec models a testbed resource request and serializes it to the
// GENI RSpec v3 request format.
//
// A Request is write-once: nodes, interfaces, links and services are added
// while the topology is built, and the request freezes as soon as it is
// serialized or exported. Any later mutation returns ErrFrozen.
package rspec

import (
	"fmt"
	"sync"
)

// Request is a topology request document under construction.
//
// mu guards the request and everything hanging off it: nodes, interfaces
// and links take it for each mutation together with the frozen check.
// Serialization reads the fields directly once frozen.
type Request struct {
	mu     sync.Mutex
	frozen bool

	nodes []*Node
	links []*Link
	tour  *Tour

	// ids tracks every client id (nodes, interfaces and links share one
	// namespace in the request document).
	ids map[string]struct{}
}

// NewRequest returns an empty request.
func NewRequest() *Request {
	return &Request{ids: map[string]struct{}{}}
}

// RawPC adds a bare-metal node with the given client id.
func (r *Request) RawPC(clientID string) (*Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claimLocked(clientID); err != nil {
		return nil, err
	}
	n := &Node{
		req:        r,
		ClientID:   clientID,
		SliverType: SliverRawPC,
		Exclusive:  true,
	}
	r.nodes = append(r.nodes, n)
	return n, nil
}

// Link adds a link with the given client id.
func (r *Request) Link(clientID string) (*Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claimLocked(clientID); err != nil {
		return nil, err
	}
	l := &Link{req: r, ClientID: clientID}
	r.links = append(r.links, l)
	return l, nil
}

// AddTour attaches the tour. A request carries at most one tour.
func (r *Request) AddTour(t Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrFrozen
	}
	if r.tour != nil {
		return ErrTourAttached
	}
	r.tour = &t
	return nil
}

// Nodes returns the nodes in the order they were added.
func (r *Request) Nodes() []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Node(nil), r.nodes...)
}

// Links returns the links in the order they were added.
func (r *Request) Links() []*Link {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Link(nil), r.links...)
}

// Node returns the node with the given client id, or nil.
func (r *Request) Node(clientID string) *Node {
	for _, n := range r.Nodes() {
		if n.ClientID == clientID {
			return n
		}
	}
	return nil
}

// Tour returns the attached tour, or nil.
func (r *Request) Tour() *Tour {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tour
}

// Frozen reports whether serialization has started.
func (r *Request) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frozen
}

func (r *Request) freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Request) claimLocked(clientID string) error {
	if r.frozen {
		return ErrFrozen
	}
	if clientID == "" {
		return fmt.Errorf("rspec: client id must not be empty")
	}
	if _, taken := r.ids[clientID]; taken {
		return fmt.Errorf("rspec: %w: %q", ErrDuplicateID, clientID)
	}
	r.ids[clientID] = struct{}{}
	return nil
}
