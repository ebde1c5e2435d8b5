package mem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memkit/memkit/rangeset"
)

// resetGlobal replaces the process-wide allocator so each test observes
// the uninitialized lifecycle state.
func resetGlobal(t *testing.T) {
	t.Helper()
	global = Allocator{}
	t.Cleanup(func() { global = Allocator{} })
}

func TestGlobalLifecycle(t *testing.T) {
	resetGlobal(t)

	_, err := TryAlloc(32, 8)
	require.ErrorIs(t, err, ErrUninitialized)

	require.NoError(t, Init([]Region{{Base: 0, Size: 0x10000}}, []Region{{Base: 0, Size: 0x1000}}))

	size, err := FreeMemorySize()
	require.NoError(t, err)
	require.Equal(t, uint64(0xf000), size)

	addr := Alloc(64, 8)
	require.GreaterOrEqual(t, addr, uint64(0x1000))
	Dealloc(addr, 64, 8)

	got, err := FreeRanges()
	require.NoError(t, err)
	require.Equal(t, []rangeset.Range{rangeset.MustRange(0x1000, 0xffff)}, got)
}

func TestGlobalHookPanicsOnError(t *testing.T) {
	resetGlobal(t)

	// Uninitialized: the hook has no way to report the error.
	require.Panics(t, func() { Alloc(32, 8) })

	require.NoError(t, Init([]Region{{Base: 0x1000, Size: 0x100}}, nil))

	// Exhaustion is fatal too.
	require.Panics(t, func() { Alloc(0x10000, 8) })
	require.Panics(t, func() { Dealloc(NullAddr, 32, 8) })
}

func TestGlobalZeroSizeAlloc(t *testing.T) {
	resetGlobal(t)

	// Legal no-op even before Init.
	require.Equal(t, NullAddr, Alloc(0, 8))
}
