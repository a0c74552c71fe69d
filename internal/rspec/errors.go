package rspec

import "errors"

var (
	// ErrFrozen indicates an attempt to change a request after serialization
	// has started.
	ErrFrozen = errors.New("request is frozen")

	// ErrInterfaceLinked indicates an interface was added to a second link.
	ErrInterfaceLinked = errors.New("interface already belongs to a link")

	// ErrDuplicateID indicates a client id is used by more than one element.
	ErrDuplicateID = errors.New("duplicate client id")

	// ErrTourAttached indicates a second tour was added to a request.
	ErrTourAttached = errors.New("tour already attached")

	// ErrInvalidAddress indicates a malformed IPv4 address or netmask.
	ErrInvalidAddress = errors.New("invalid IPv4 address")

	// ErrInvalidTopology is wrapped by every validation failure.
	ErrInvalidTopology = errors.New("invalid topology")
)
