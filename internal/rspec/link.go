package rspec

import "fmt"

// Link connects two interfaces, possibly on different nodes.
type Link struct {
	req *Request

	ClientID string

	// Bandwidth is the link capacity in kbps. Zero leaves it unspecified.
	Bandwidth int64

	interfaces []*Interface
}

// AddInterface joins an interface to the link. An interface may join at
// most one link.
func (l *Link) AddInterface(i *Interface) error {
	if i == nil {
		return fmt.Errorf("rspec: link %q: nil interface", l.ClientID)
	}
	if i.node.req != l.req {
		return fmt.Errorf("rspec: link %q: interface %q belongs to another request", l.ClientID, i.ClientID)
	}

	l.req.mu.Lock()
	defer l.req.mu.Unlock()
	if l.req.frozen {
		return ErrFrozen
	}
	if i.link != nil {
		return fmt.Errorf("rspec: %w: %q is on %q", ErrInterfaceLinked, i.ClientID, i.link.ClientID)
	}
	i.link = l
	l.interfaces = append(l.interfaces, i)
	return nil
}

// Interfaces returns the link's endpoints in the order added.
func (l *Link) Interfaces() []*Interface {
	l.req.mu.Lock()
	defer l.req.mu.Unlock()
	return append([]*Interface(nil), l.interfaces...)
}
