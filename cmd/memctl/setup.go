package main

import (
	"fmt"
	"os"

	"github.com/memkit/memkit/boot"
	"github.com/memkit/memkit/fdt"
	"github.com/memkit/memkit/firmware"
	"github.com/memkit/memkit/mem"
)

var (
	blobBase  uint64
	imageBase uint64
	imageSize uint64
)

// defaultARMMemSize is the ARM memory size reported by the simulated
// firmware when the DTB has no usable /memory node: 948 MiB, the split
// of a Raspberry Pi 3 with 76 MiB assigned to the VideoCore.
const defaultARMMemSize = 0x3b400000

func init() {
	rootCmd.PersistentFlags().Uint64Var(&blobBase, "dtb-base", 0x100000, "Physical load address of the DTB")
	rootCmd.PersistentFlags().Uint64Var(&imageBase, "image-base", 0x80000, "Physical load address of the kernel image")
	rootCmd.PersistentFlags().Uint64Var(&imageSize, "image-size", 0x400000, "Footprint of the kernel image and boot stack")
}

// bootAllocator reads a DTB, simulates the firmware from the blob's
// /memory node and initializes an allocator from the discovered map.
func bootAllocator(path string) (*mem.Allocator, boot.MemoryMap, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, boot.MemoryMap{}, fmt.Errorf("read dtb: %w", err)
	}

	tree, err := fdt.Parse(blob)
	if err != nil {
		return nil, boot.MemoryMap{}, fmt.Errorf("parse dtb: %w", err)
	}

	sim := &firmware.SimTransport{ARMSize: defaultARMMemSize}
	if base, size, ok := memoryFromTree(tree); ok {
		sim.ARMBase, sim.ARMSize = base, size
		printVerbose("ARM memory from /memory node: base=%#x size=%#x\n", base, size)
	} else {
		printVerbose("no usable /memory node, assuming size=%#x\n", uint32(defaultARMMemSize))
	}

	client := firmware.NewClient(sim)
	image := mem.Region{Base: imageBase, Size: imageSize}
	m, err := boot.DiscoverMemoryMap(client, blob, blobBase, image)
	if err != nil {
		return nil, boot.MemoryMap{}, err
	}

	a := mem.NewAllocator()
	if err := a.Init(m.Usable, m.Reserved); err != nil {
		return nil, boot.MemoryMap{}, fmt.Errorf("init allocator: %w", err)
	}
	return a, m, nil
}

// memoryFromTree decodes the (base, size) cell pair of the /memory node's
// reg property, assuming one address cell and one size cell.
func memoryFromTree(tree *fdt.Tree) (base, size uint32, ok bool) {
	node, err := tree.Find("/memory")
	if err != nil {
		return 0, 0, false
	}
	prop, err := node.Property("reg")
	if err != nil {
		return 0, 0, false
	}
	pair, err := prop.Uint64()
	if err != nil {
		return 0, 0, false
	}
	return uint32(pair >> 32), uint32(pair), true
}
