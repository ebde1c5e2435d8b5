package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	a, err := New(0x80000, 1<<16)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, uint64(0x80000), a.Base())
	require.Equal(t, uint64(1<<16), a.Size())

	buf, err := a.Slice(0x80000, 64)
	require.NoError(t, err)
	require.Len(t, buf, 64)

	// Writes through one view are visible through another.
	buf[0] = 0xaa
	again, err := a.Slice(0x80000, 1)
	require.NoError(t, err)
	require.Equal(t, byte(0xaa), again[0])

	// Last byte of the window.
	_, err = a.Slice(0x80000+(1<<16)-1, 1)
	require.NoError(t, err)
}

func TestArenaSliceOutOfBounds(t *testing.T) {
	a, err := New(0x1000, 0x100)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Slice(0xfff, 1)
	require.Error(t, err)

	_, err = a.Slice(0x1000, 0x101)
	require.Error(t, err)

	_, err = a.Slice(0x10ff, 2)
	require.Error(t, err)
}

func TestArenaInvalidSize(t *testing.T) {
	_, err := New(0, 0)
	require.Error(t, err)
}

func TestArenaCloseTwice(t *testing.T) {
	a, err := New(0, 0x1000)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
