package rspec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// XML namespaces of the request document.
const (
	NamespaceRSpec  = "http://www.geni.net/resources/rspec/3"
	NamespaceClient = "http://www.protogeni.net/resources/rspec/ext/client/1"
	NamespaceEmulab = "http://www.protogeni.net/resources/rspec/ext/emulab/1"
	NamespaceTour   = "http://www.protogeni.net/resources/rspec/ext/apt-tour/1"
	NamespaceXSI    = "http://www.w3.org/2001/XMLSchema-instance"

	schemaLocation = NamespaceRSpec + " " + NamespaceRSpec + "/request.xsd"
)

// DocumentTypeRequest is the rspec type attribute of a request document.
const DocumentTypeRequest = "request"

type xmlRSpec struct {
	XMLName xml.Name   `xml:"rspec"`
	Xmlns   string     `xml:"xmlns,attr,omitempty"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Type    string     `xml:"type,attr"`
	Nodes   []xmlNode  `xml:"node"`
	Links   []xmlLink  `xml:"link"`
	Tour    *xmlTour   `xml:"rspec_tour"`
}

type xmlNode struct {
	ClientID           string         `xml:"client_id,attr"`
	Exclusive          bool           `xml:"exclusive,attr"`
	ComponentManagerID string         `xml:"component_manager_id,attr,omitempty"`
	ComponentID        string         `xml:"component_id,attr,omitempty"`
	SliverType         xmlSliverType  `xml:"sliver_type"`
	HardwareType       *xmlNamed      `xml:"hardware_type"`
	Services           *xmlServices   `xml:"services"`
	Interfaces         []xmlInterface `xml:"interface"`
}

type xmlSliverType struct {
	Name      string    `xml:"name,attr"`
	DiskImage *xmlNamed `xml:"disk_image"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

type xmlServices struct {
	Execute []xmlExecute `xml:"execute"`
}

type xmlExecute struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type xmlInterface struct {
	ClientID string  `xml:"client_id,attr"`
	IPs      []xmlIP `xml:"ip"`
}

type xmlIP struct {
	Address string `xml:"address,attr"`
	Netmask string `xml:"netmask,attr"`
	Type    string `xml:"type,attr"`
}

type xmlLink struct {
	ClientID      string            `xml:"client_id,attr"`
	InterfaceRefs []xmlInterfaceRef `xml:"interface_ref"`
	Properties    []xmlProperty     `xml:"property"`
}

type xmlInterfaceRef struct {
	ClientID string `xml:"client_id,attr"`
}

type xmlProperty struct {
	SourceID string `xml:"source_id,attr"`
	DestID   string `xml:"dest_id,attr"`
	Capacity int64  `xml:"capacity,attr,omitempty"`
}

type xmlTour struct {
	XMLName      xml.Name `xml:"http://www.protogeni.net/resources/rspec/ext/apt-tour/1 rspec_tour"`
	Description  *xmlText `xml:"description"`
	Instructions *xmlText `xml:"instructions"`
}

type xmlText struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// Marshal validates the request, freezes it, and returns the indented XML
// request document including the XML header.
func (r *Request) Marshal() ([]byte, error) {
	r.freeze()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r.document()); err != nil {
		return nil, fmt.Errorf("rspec: encode request: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rspec: encode request: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteTo writes the XML request document to w.
func (r *Request) WriteTo(w io.Writer) (int64, error) {
	data, err := r.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (r *Request) document() xmlRSpec {
	doc := xmlRSpec{
		Xmlns: NamespaceRSpec,
		Attrs: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:client"}, Value: NamespaceClient},
			{Name: xml.Name{Local: "xmlns:emulab"}, Value: NamespaceEmulab},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: NamespaceXSI},
			{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: schemaLocation},
		},
		Type: DocumentTypeRequest,
	}

	for _, n := range r.Nodes() {
		doc.Nodes = append(doc.Nodes, encodeNode(n))
	}
	for _, l := range r.Links() {
		doc.Links = append(doc.Links, encodeLink(l))
	}
	if t := r.Tour(); t != nil {
		doc.Tour = &xmlTour{
			Description:  &xmlText{Type: string(textType(t.DescriptionType)), Text: t.Description},
			Instructions: &xmlText{Type: string(textType(t.InstructionsType)), Text: t.Instructions},
		}
	}
	return doc
}

func encodeNode(n *Node) xmlNode {
	x := xmlNode{
		ClientID:           n.ClientID,
		Exclusive:          n.Exclusive,
		ComponentManagerID: n.ComponentManagerID,
		ComponentID:        n.ComponentID,
		SliverType:         xmlSliverType{Name: n.SliverType},
	}
	if n.DiskImage != "" {
		x.SliverType.DiskImage = &xmlNamed{Name: n.DiskImage}
	}
	if n.HardwareType != "" {
		x.HardwareType = &xmlNamed{Name: n.HardwareType}
	}
	if len(n.services) > 0 {
		x.Services = &xmlServices{}
		for _, s := range n.services {
			x.Services.Execute = append(x.Services.Execute, xmlExecute{Shell: s.Shell, Command: s.Command})
		}
	}
	for _, iface := range n.interfaces {
		xi := xmlInterface{ClientID: iface.ClientID}
		for _, a := range iface.addresses {
			xi.IPs = append(xi.IPs, xmlIP{Address: a.Address, Netmask: a.Netmask, Type: "ipv4"})
		}
		x.Interfaces = append(x.Interfaces, xi)
	}
	return x
}

// encodeLink emits one interface_ref per endpoint and, when a bandwidth is
// set, one property per direction.
func encodeLink(l *Link) xmlLink {
	x := xmlLink{ClientID: l.ClientID}
	for _, iface := range l.interfaces {
		x.InterfaceRefs = append(x.InterfaceRefs, xmlInterfaceRef{ClientID: iface.ClientID})
	}
	if l.Bandwidth > 0 {
		for _, src := range l.interfaces {
			for _, dst := range l.interfaces {
				if src == dst {
					continue
				}
				x.Properties = append(x.Properties, xmlProperty{
					SourceID: src.ClientID,
					DestID:   dst.ClientID,
					Capacity: l.Bandwidth,
				})
			}
		}
	}
	return x
}

func textType(t TextType) TextType {
	if t == "" {
		return TextMarkdown
	}
	return t
}
