// Package boot assembles the physical memory map an allocator starts
// from: usable memory as reported by the firmware, minus the regions the
// kernel must never hand out.
package boot

import (
	"fmt"

	"github.com/memkit/memkit/fdt"
	"github.com/memkit/memkit/firmware"
	"github.com/memkit/memkit/mem"
)

// MemoryMap is the bootstrap input of an allocator: regions that may be
// handed out and regions that must be carved back out of them.
type MemoryMap struct {
	// Usable is the memory assigned to the ARM cores.
	Usable []mem.Region

	// Reserved holds the kernel image and boot stack footprint, the
	// devicetree blob's own footprint and the entries of the blob's
	// memory reservation block.
	Reserved []mem.Region
}

// DiscoverMemoryMap queries the firmware for ARM memory and parses the
// devicetree blob for the regions to reserve. blobBase is the physical
// address the blob is loaded at; image is the footprint of the kernel
// image and its boot stack.
func DiscoverMemoryMap(client *firmware.Client, blob []byte, blobBase uint64, image mem.Region) (MemoryMap, error) {
	armBase, armSize, err := client.ARMMemory()
	if err != nil {
		return MemoryMap{}, fmt.Errorf("boot: arm memory: %w", err)
	}

	tree, err := fdt.Parse(blob)
	if err != nil {
		return MemoryMap{}, fmt.Errorf("boot: devicetree: %w", err)
	}

	m := MemoryMap{
		Usable: []mem.Region{
			{Base: uint64(armBase), Size: uint64(armSize)},
		},
		Reserved: []mem.Region{
			image,
			{Base: blobBase, Size: uint64(tree.TotalSize())},
		},
	}
	for _, rsv := range tree.MemRsvRegions() {
		m.Reserved = append(m.Reserved, mem.Region{Base: rsv.Address, Size: rsv.Size})
	}

	return m, nil
}

// Bootstrap discovers the memory map and initializes the allocator with
// it.
func Bootstrap(a *mem.Allocator, client *firmware.Client, blob []byte, blobBase uint64, image mem.Region) error {
	m, err := DiscoverMemoryMap(client, blob, blobBase, image)
	if err != nil {
		return err
	}
	if err := a.Init(m.Usable, m.Reserved); err != nil {
		return fmt.Errorf("boot: init allocator: %w", err)
	}
	return nil
}
