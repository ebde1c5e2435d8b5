package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// writeTestDTB writes a minimal blob with a /memory node describing 16 MiB
// of ARM memory.
func writeTestDTB(t *testing.T) string {
	t.Helper()

	var structure bytes.Buffer
	putU32 := func(v uint32) { binary.Write(&structure, binary.BigEndian, v) }
	putStr := func(s string) {
		structure.WriteString(s)
		structure.WriteByte(0)
		for structure.Len()%4 != 0 {
			structure.WriteByte(0)
		}
	}

	strBlock := []byte("reg\x00")

	putU32(1) // BeginNode
	putStr("")
	putU32(1) // BeginNode
	putStr("memory@0")
	putU32(3) // Prop
	putU32(8)
	putU32(0) // name offset of "reg"
	putU32(0)
	putU32(1 << 24) // 16 MiB
	putU32(2)       // EndNode
	putU32(2)       // EndNode
	putU32(9)       // End

	offMemRsv := uint32(40)
	offStruct := offMemRsv + 16
	offStrings := offStruct + uint32(structure.Len())
	total := offStrings + uint32(len(strBlock))

	var blob bytes.Buffer
	for _, v := range []uint32{
		0xd00dfeed, total, offStruct, offStrings, offMemRsv,
		17, 16, 0, uint32(len(strBlock)), uint32(structure.Len()),
	} {
		binary.Write(&blob, binary.BigEndian, v)
	}
	binary.Write(&blob, binary.BigEndian, [2]uint64{})
	blob.Write(structure.Bytes())
	blob.Write(strBlock)

	path := filepath.Join(t.TempDir(), "test.dtb")
	if err := os.WriteFile(path, blob.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelAllocFree(t *testing.T) {
	m, err := NewModel(writeTestDTB(t))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if !m.ready {
		t.Fatal("model not ready after resize")
	}

	initial, err := m.alloc.FreeRanges()
	if err != nil {
		t.Fatalf("FreeRanges: %v", err)
	}

	next, _ = m.Update(keyMsg("1"))
	m = next.(Model)
	if len(m.live) != 1 {
		t.Fatalf("expected 1 live allocation, got %d", len(m.live))
	}
	if m.statusErr {
		t.Fatalf("alloc failed: %s", m.status)
	}

	next, _ = m.Update(keyMsg("d"))
	m = next.(Model)
	if len(m.live) != 0 {
		t.Fatalf("expected 0 live allocations, got %d", len(m.live))
	}

	final, err := m.alloc.FreeRanges()
	if err != nil {
		t.Fatalf("FreeRanges: %v", err)
	}
	if len(final) != len(initial) {
		t.Fatalf("free list not restored: %v vs %v", final, initial)
	}
	for i := range final {
		if final[i] != initial[i] {
			t.Fatalf("free list not restored at %d: %v vs %v", i, final[i], initial[i])
		}
	}

	if m.View() == "" {
		t.Fatal("empty view")
	}
}

func TestModelReset(t *testing.T) {
	m, err := NewModel(writeTestDTB(t))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	next, _ = m.Update(keyMsg("a"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("r"))
	m = next.(Model)

	if len(m.live) != 0 {
		t.Fatalf("expected no live allocations after reset, got %d", len(m.live))
	}
}
