// Package fdt parses flattened devicetree (DTB) blobs.
//
// # Overview
//
// A flattened devicetree is the binary hardware description a DTSpec boot
// program hands to the kernel. This parser covers the three pieces the
// memory allocator's bootstrap consumes, plus enough of the structure
// block to navigate the tree:
//
//   - Header: magic, version and the offsets/sizes of the other blocks.
//   - Memory reservation block: (address, size) pairs the kernel must
//     never hand out, terminated by a zero entry.
//   - Structure block: the node tree itself, with properties decodable as
//     u32, u64, string or string list.
//
// All multi-byte fields are big-endian per DTSpec. Only format version 17
// blobs that declare backwards compatibility with version 16 are accepted.
//
// # Usage
//
//	tree, err := fdt.Parse(blob)
//	if err != nil { ... }
//	for _, rsv := range tree.MemRsvRegions() { ... }
//	node, err := tree.Find("/memory")
//
// Find resolves paths the way devicetree tooling does: a component may
// omit the unit address ("/memory" for "/memory@0") as long as the match
// is unambiguous.
package fdt
