package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memkit/memkit/boot"
	"github.com/memkit/memkit/fdt"
	"github.com/memkit/memkit/firmware"
	"github.com/memkit/memkit/mem"
)

// Simulated board layout: where the blob and the kernel image sit in the
// physical address space.
const (
	dtbBase   = 0x100000
	imageBase = 0x80000
	imageSize = 0x400000

	// ARM memory size assumed when the blob has no usable /memory node:
	// the split of a Raspberry Pi 3 with 76 MiB taken by the VideoCore.
	defaultARMMemSize = 0x3b400000
)

type allocation struct {
	addr  uint64
	size  uint64
	align uint64
}

// Model is the main application model
type Model struct {
	dtbPath string
	blob    []byte

	alloc  *mem.Allocator
	memMap boot.MemoryMap
	live   []allocation

	viewport viewport.Model
	keys     KeyMap

	width  int
	height int
	ready  bool

	showHelp  bool
	status    string
	statusErr bool

	rng *rand.Rand
}

// NewModel boots an allocator from the blob at path and wraps it in a
// TUI model.
func NewModel(path string) (Model, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("read dtb: %w", err)
	}

	m := Model{
		dtbPath: path,
		blob:    blob,
		keys:    DefaultKeyMap(),
		rng:     rand.New(rand.NewSource(1)),
		status:  "booted",
	}
	if err := m.boot(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// boot initializes a fresh allocator from the blob.
func (m *Model) boot() error {
	tree, err := fdt.Parse(m.blob)
	if err != nil {
		return fmt.Errorf("parse dtb: %w", err)
	}

	sim := &firmware.SimTransport{ARMSize: defaultARMMemSize}
	if base, size, ok := memoryFromTree(tree); ok {
		sim.ARMBase, sim.ARMSize = base, size
	}

	client := firmware.NewClient(sim)
	image := mem.Region{Base: imageBase, Size: imageSize}
	memMap, err := boot.DiscoverMemoryMap(client, m.blob, dtbBase, image)
	if err != nil {
		return err
	}

	alloc := mem.NewAllocator()
	if err := alloc.Init(memMap.Usable, memMap.Reserved); err != nil {
		return fmt.Errorf("init allocator: %w", err)
	}

	m.alloc = alloc
	m.memMap = memMap
	m.live = nil
	return nil
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

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}
