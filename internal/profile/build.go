// Package profile builds the OAI 5G request for a POWDER paired radio
// workbench: one core-network host, a gNodeB host and a UE host, each
// compute host wired to its SDR on the selected bench.
package profile

import (
	"fmt"
	"net/netip"

	"powderteam/oaiprofile/internal/rspec"
	"powderteam/oaiprofile/internal/tour"
)

// Role is the function a node plays in the 5G deployment.
type Role string

const (
	RoleCN    Role = "cn"
	RoleNodeB Role = "nodeb"
	RoleUE    Role = "ue"
)

// Client ids of the nodes in the request.
const (
	NodeCN      = "cn5g-docker-host"
	NodeGNB     = "gnb-comp"
	NodeGNBSDR  = "gnb-sdr"
	NodeUE      = "nrue-comp"
	NodeUESDR   = "nrue-sdr"
	LinkCN      = "cn-link"
	LinkGNBSDR  = "nodeb-sdr-link"
	LinkUESDR   = "ue-sdr-link"
	IfaceCN     = "cn-if"
	IfaceGNBCN  = "nodeb-cn-if"
	IfaceGNBSDR = "nodeb-usrp-if"
	IfaceSDRGNB = "nodeb-sdr-if"
	IfaceUESDR  = "ue-usrp-if"
	IfaceSDRUE  = "ue-sdr-if"
)

// NodeRoles lists every node of the request with its descriptive role.
var NodeRoles = []struct {
	ClientID string
	Role     string
}{
	{NodeCN, "core-network host"},
	{NodeGNB, "radio-unit host"},
	{NodeGNBSDR, "radio-unit SDR"},
	{NodeUE, "user-equipment host"},
	{NodeUESDR, "user-equipment SDR"},
}

// DeployCommand returns the startup command that deploys OAI at version for
// role. The version is double-quoted for the shell.
func DeployCommand(version string, role Role) string {
	return fmt.Sprintf(`%s "%s" %s`, DeployScript, version, role)
}

// Build constructs the complete request for p, tour included.
func Build(p Params) (*rspec.Request, error) {
	b := &builder{req: rspec.NewRequest(), p: p}

	b.coreNetwork()
	b.gNodeB()
	b.userEquipment()
	if b.err != nil {
		return nil, b.err
	}

	if err := b.req.AddTour(tour.New()); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return b.req, nil
}

// builder threads the first error through the straight-line construction
// so each step reads as a declaration.
type builder struct {
	req *rspec.Request
	p   Params
	err error

	cnLink *rspec.Link
}

func (b *builder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = fmt.Errorf("profile: %w", err)
	}
}

func (b *builder) computeNode(clientID, hwType, image string) *rspec.Node {
	if b.err != nil {
		return nil
	}
	n, err := b.req.RawPC(clientID)
	if err != nil {
		b.fail(err)
		return nil
	}
	n.ComponentManagerID = ComponentManagerID
	n.HardwareType = hwType
	n.DiskImage = image
	return n
}

func (b *builder) sdrNode(clientID, componentID string) *rspec.Node {
	if b.err != nil {
		return nil
	}
	n, err := b.req.RawPC(clientID)
	if err != nil {
		b.fail(err)
		return nil
	}
	n.ComponentManagerID = ComponentManagerID
	n.ComponentID = componentID
	return n
}

func (b *builder) iface(n *rspec.Node, clientID string, role LinkRole, host netip.Addr) *rspec.Interface {
	if b.err != nil {
		return nil
	}
	i, err := n.AddInterface(clientID)
	if err != nil {
		b.fail(err)
		return nil
	}
	if host.IsValid() {
		a, err := address(role, host)
		if err != nil {
			b.fail(err)
			return nil
		}
		b.fail(i.AddAddress(a))
	}
	return i
}

func (b *builder) link(clientID string, ifaces ...*rspec.Interface) *rspec.Link {
	if b.err != nil {
		return nil
	}
	l, err := b.req.Link(clientID)
	if err != nil {
		b.fail(err)
		return nil
	}
	l.Bandwidth = LinkBandwidth
	for _, i := range ifaces {
		b.fail(l.AddInterface(i))
	}
	return l
}

func (b *builder) services(n *rspec.Node, commands ...string) {
	if b.err != nil {
		return
	}
	for _, c := range commands {
		b.fail(n.AddService(rspec.Execute{Shell: rspec.ShellBash, Command: c}))
	}
}

func (b *builder) coreNetwork() {
	cn := b.computeNode(NodeCN, b.p.CNNodeType, UbuntuImage)
	cnIf := b.iface(cn, IfaceCN, LinkCore, CNCoreAddr)
	b.cnLink = b.link(LinkCN, cnIf)
	b.services(cn, DeployCommand(b.p.CNHash, RoleCN))
}

func (b *builder) gNodeB() {
	gnb := b.computeNode(NodeGNB, b.p.SDRNodeType, b.p.SDRImage)
	cnIf := b.iface(gnb, IfaceGNBCN, LinkCore, NodeBCoreAddr)
	if b.err == nil {
		b.fail(b.cnLink.AddInterface(cnIf))
	}
	usrpIf := b.iface(gnb, IfaceGNBSDR, LinkRadio, HostRadioAddr)
	b.services(gnb,
		DeployCommand(b.p.RANHash, RoleNodeB),
		TuneCPUScript,
		TuneSDRIfaceScript,
	)

	sdr := b.sdrNode(NodeGNBSDR, b.p.Bench.GNBRadio)
	sdrIf := b.iface(sdr, IfaceSDRGNB, LinkRadio, netip.Addr{})
	b.link(LinkGNBSDR, usrpIf, sdrIf)
}

func (b *builder) userEquipment() {
	ue := b.computeNode(NodeUE, b.p.SDRNodeType, b.p.SDRImage)
	usrpIf := b.iface(ue, IfaceUESDR, LinkRadio, HostRadioAddr)
	b.services(ue,
		DeployCommand(b.p.RANHash, RoleUE),
		TuneCPUScript,
		TuneSDRIfaceScript,
	)

	sdr := b.sdrNode(NodeUESDR, b.p.Bench.UERadio)
	sdrIf := b.iface(sdr, IfaceSDRUE, LinkRadio, netip.Addr{})
	b.link(LinkUESDR, usrpIf, sdrIf)
}
