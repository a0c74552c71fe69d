package rspec

import "fmt"

// SliverRawPC is the sliver type of a bare-metal node.
const SliverRawPC = "raw-pc"

// ShellBash is the default shell for startup commands.
const ShellBash = "bash"

// Node is a compute or radio resource in the request.
type Node struct {
	req *Request

	ClientID           string
	SliverType         string
	Exclusive          bool
	HardwareType       string
	DiskImage          string
	ComponentManagerID string

	// ComponentID pins the node to a specific physical unit.
	ComponentID string

	interfaces []*Interface
	services   []Execute
}

// Execute is a startup command run by the orchestrator once the node boots.
type Execute struct {
	Shell   string `json:"shell" yaml:"shell"`
	Command string `json:"command" yaml:"command"`
}

// Interface is a network interface on a node.
type Interface struct {
	node *Node
	link *Link

	ClientID  string
	addresses []IPv4Address
}

// AddInterface adds a network interface to the node.
func (n *Node) AddInterface(clientID string) (*Interface, error) {
	n.req.mu.Lock()
	defer n.req.mu.Unlock()

	if err := n.req.claimLocked(clientID); err != nil {
		return nil, err
	}
	iface := &Interface{node: n, ClientID: clientID}
	n.interfaces = append(n.interfaces, iface)
	return iface, nil
}

// AddService appends a startup command. Commands run in the order added.
func (n *Node) AddService(e Execute) error {
	if e.Command == "" {
		return fmt.Errorf("rspec: node %q: empty startup command", n.ClientID)
	}
	if e.Shell == "" {
		e.Shell = ShellBash
	}

	n.req.mu.Lock()
	defer n.req.mu.Unlock()
	if n.req.frozen {
		return ErrFrozen
	}
	n.services = append(n.services, e)
	return nil
}

// Interfaces returns the node's interfaces in the order added.
func (n *Node) Interfaces() []*Interface {
	n.req.mu.Lock()
	defer n.req.mu.Unlock()
	return append([]*Interface(nil), n.interfaces...)
}

// Services returns the node's startup commands in the order added.
func (n *Node) Services() []Execute {
	n.req.mu.Lock()
	defer n.req.mu.Unlock()
	return append([]Execute(nil), n.services...)
}

// AddAddress assigns a static IPv4 address to the interface.
func (i *Interface) AddAddress(a IPv4Address) error {
	if _, err := a.Prefix(); err != nil {
		return fmt.Errorf("rspec: interface %q: %w", i.ClientID, err)
	}

	req := i.node.req
	req.mu.Lock()
	defer req.mu.Unlock()
	if req.frozen {
		return ErrFrozen
	}
	i.addresses = append(i.addresses, a)
	return nil
}

// Addresses returns the interface's static addresses.
func (i *Interface) Addresses() []IPv4Address {
	i.node.req.mu.Lock()
	defer i.node.req.mu.Unlock()
	return append([]IPv4Address(nil), i.addresses...)
}

// Node returns the node the interface belongs to.
func (i *Interface) Node() *Node { return i.node }

// Link returns the link the interface joins, or nil.
func (i *Interface) Link() *Link {
	i.node.req.mu.Lock()
	defer i.node.req.mu.Unlock()
	return i.link
}
