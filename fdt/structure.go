package fdt

import (
	"fmt"
	"strings"
)

// Structure block tokens.
const (
	tokenBeginNode = 1
	tokenEndNode   = 2
	tokenProp      = 3
	tokenNop       = 4
	tokenEnd       = 9
)

// Property is the raw value of a devicetree node property.
type Property []byte

// IsEmpty reports whether the property carries no value.
func (p Property) IsEmpty() bool { return len(p) == 0 }

// Uint32 decodes the value as a single big-endian u32.
func (p Property) Uint32() (uint32, error) {
	if len(p) != 4 {
		return 0, fmt.Errorf("%w: %d bytes as u32", ErrConversion, len(p))
	}
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3]), nil
}

// Uint64 decodes the value as a single big-endian u64.
func (p Property) Uint64() (uint64, error) {
	if len(p) != 8 {
		return 0, fmt.Errorf("%w: %d bytes as u64", ErrConversion, len(p))
	}
	var v uint64
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// Text decodes the value as a nul-terminated string.
func (p Property) Text() (string, error) {
	if len(p) == 0 || p[len(p)-1] != 0 {
		return "", ErrConversion
	}
	return string(p[:len(p)-1]), nil
}

// TextList decodes the value as a nul-terminated string list.
func (p Property) TextList() ([]string, error) {
	if len(p) == 0 || p[len(p)-1] != 0 {
		return nil, ErrConversion
	}
	return strings.Split(string(p[:len(p)-1]), "\x00"), nil
}

// Node is a node of the devicetree.
type Node struct {
	path       string
	children   map[string]*Node
	properties map[string]Property
}

// Path returns the absolute path of the node.
func (n *Node) Path() string { return n.path }

// Children returns the node's children keyed by name.
func (n *Node) Children() map[string]*Node { return n.children }

// Properties returns the node's properties keyed by name.
func (n *Node) Properties() map[string]Property { return n.properties }

// Property returns the named property. It returns ErrNotFound if the node
// does not carry it.
func (n *Node) Property(name string) (Property, error) {
	p, ok := n.properties[name]
	if !ok {
		return nil, fmt.Errorf("%w: property %q of %s", ErrNotFound, name, n.path)
	}
	return p, nil
}

// parseStructure decodes the structure block into a node tree.
func parseStructure(blob []byte, h Header) (*Node, error) {
	end := int(h.OffDTStruct) + int(h.SizeDTStruct)
	if end > len(blob) {
		return nil, ErrTruncated
	}

	r := &reader{data: blob, off: int(h.OffDTStruct)}

	// The structure block must open with the root's BeginNode.
	token, err := r.u32()
	if err != nil {
		return nil, err
	}
	if token != tokenBeginNode {
		return nil, ErrMalformedStructure
	}

	name, node, err := parseNode("", r, h)
	if err != nil {
		return nil, err
	}

	// ...and close with an End token.
	token, err = r.u32()
	if err != nil {
		return nil, err
	}
	if token != tokenEnd {
		return nil, ErrMalformedStructure
	}

	// The walked size must match the one declared in the header.
	if r.off-int(h.OffDTStruct) != int(h.SizeDTStruct) {
		return nil, ErrMalformedStructure
	}

	// The root node's name is the empty string.
	if name != "" {
		return nil, ErrMalformedStructure
	}

	return node, nil
}

// parseNode decodes one node, recursing into children. It returns the
// node's own name alongside the node; the caller keys its child map with
// it.
func parseNode(parentPath string, r *reader, h Header) (string, *Node, error) {
	name, err := r.cstr()
	if err != nil {
		return "", nil, err
	}
	r.align4()

	node := &Node{
		path:       strings.TrimSuffix(parentPath, "/") + "/" + name,
		children:   make(map[string]*Node),
		properties: make(map[string]Property),
	}

	for {
		token, err := r.u32()
		if err != nil {
			return "", nil, err
		}

		switch token {
		case tokenBeginNode:
			childName, child, err := parseNode(node.path, r, h)
			if err != nil {
				return "", nil, err
			}
			node.children[childName] = child
		case tokenEndNode:
			return name, node, nil
		case tokenProp:
			propName, prop, err := parseProperty(r, h)
			if err != nil {
				return "", nil, err
			}
			node.properties[propName] = prop
		case tokenNop:
		case tokenEnd:
			return "", nil, ErrMalformedStructure
		default:
			return "", nil, fmt.Errorf("%w: %#x", ErrUnknownToken, token)
		}
	}
}

// parseProperty decodes one property: length, name offset into the
// strings block, then the value itself.
func parseProperty(r *reader, h Header) (string, Property, error) {
	length, err := r.u32()
	if err != nil {
		return "", nil, err
	}
	nameOff, err := r.u32()
	if err != nil {
		return "", nil, err
	}

	stringsStart := int(h.OffDTStrings)
	stringsEnd := stringsStart + int(h.SizeDTStrings)
	name, err := cstrAt(r.data, stringsStart+int(nameOff), stringsEnd)
	if err != nil {
		return "", nil, err
	}

	raw, err := r.bytes(int(length))
	if err != nil {
		return "", nil, err
	}
	value := append(Property(nil), raw...)
	r.align4()

	return name, value, nil
}
