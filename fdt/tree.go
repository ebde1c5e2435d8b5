package fdt

import (
	"fmt"
	"strings"
)

// Tree is a parsed devicetree blob.
type Tree struct {
	header Header
	memRsv []RsvRegion
	root   *Node
}

// Parse decodes a DTB blob into a Tree.
func Parse(blob []byte) (*Tree, error) {
	header, err := ParseHeader(blob)
	if err != nil {
		return nil, err
	}

	memRsv, err := parseMemRsvBlock(blob, header)
	if err != nil {
		return nil, err
	}

	root, err := parseStructure(blob, header)
	if err != nil {
		return nil, err
	}

	return &Tree{header: header, memRsv: memRsv, root: root}, nil
}

// Header returns the blob's header.
func (t *Tree) Header() Header { return t.header }

// TotalSize returns the size in bytes of the whole blob as declared by
// the header.
func (t *Tree) TotalSize() uint32 { return t.header.TotalSize }

// MemRsvRegions returns the entries of the memory reservation block.
func (t *Tree) MemRsvRegions() []RsvRegion { return t.memRsv }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Find returns the node at an absolute path. A component may omit the
// unit address when the full path stays unambiguous: "/memory" finds
// "/memory@0" as long as no sibling shares the base name.
func (t *Tree) Find(path string) (*Node, error) {
	rest, ok := strings.CutPrefix(path, "/")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedPath, path)
	}

	node := t.root
	if rest == "" {
		return node, nil
	}

	for _, name := range strings.Split(rest, "/") {
		if child, ok := node.children[name]; ok {
			node = child
			continue
		}

		// Retry the component against base names with the unit address
		// stripped.
		var matches []*Node
		for childName, child := range node.children {
			if base, _, found := strings.Cut(childName, "@"); found && base == name {
				matches = append(matches, child)
			}
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
		case 1:
			node = matches[0]
		default:
			return nil, fmt.Errorf("%w: %q", ErrAmbiguousPath, path)
		}
	}

	return node, nil
}
