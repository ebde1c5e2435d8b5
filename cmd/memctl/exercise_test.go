package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeTestDTB writes a minimal blob with a /memory node describing 16 MiB
// of ARM memory and one reservation entry.
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

	// Strings block holds the single property name.
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
	offStruct := offMemRsv + 2*16
	offStrings := offStruct + uint32(structure.Len())
	total := offStrings + uint32(len(strBlock))

	var blob bytes.Buffer
	for _, v := range []uint32{
		0xd00dfeed, total, offStruct, offStrings, offMemRsv,
		17, 16, 0, uint32(len(strBlock)), uint32(structure.Len()),
	} {
		binary.Write(&blob, binary.BigEndian, v)
	}
	binary.Write(&blob, binary.BigEndian, [2]uint64{0xe00000, 0x100000})
	binary.Write(&blob, binary.BigEndian, [2]uint64{})
	blob.Write(structure.Bytes())
	blob.Write(strBlock)

	path := filepath.Join(t.TempDir(), "test.dtb")
	if err := os.WriteFile(path, blob.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBootAllocator(t *testing.T) {
	path := writeTestDTB(t)

	a, m, err := bootAllocator(path)
	if err != nil {
		t.Fatalf("bootAllocator: %v", err)
	}

	if len(m.Usable) != 1 || m.Usable[0].Size != 1<<24 {
		t.Fatalf("unexpected usable map: %+v", m.Usable)
	}
	// Image, DTB footprint and one reservation entry.
	if len(m.Reserved) != 3 {
		t.Fatalf("expected 3 reserved regions, got %+v", m.Reserved)
	}

	free, err := a.FreeMemorySize()
	if err != nil {
		t.Fatalf("FreeMemorySize: %v", err)
	}
	if free == 0 || free >= 1<<24 {
		t.Fatalf("free size out of range: %#x", free)
	}
}

func TestRunExercise(t *testing.T) {
	path := writeTestDTB(t)

	quiet = true
	t.Cleanup(func() { quiet = false })

	exerciseOps = 500
	exerciseSeed = 7
	exerciseMaxSize = 4096

	if err := runExercise(path); err != nil {
		t.Fatalf("runExercise: %v", err)
	}
}

func TestRunStatsAndRanges(t *testing.T) {
	path := writeTestDTB(t)

	quiet = true
	t.Cleanup(func() { quiet = false })

	if err := runStats(path); err != nil {
		t.Fatalf("runStats: %v", err)
	}
	if err := runRanges(path); err != nil {
		t.Fatalf("runRanges: %v", err)
	}
}
