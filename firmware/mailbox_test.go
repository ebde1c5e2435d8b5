package firmware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestARMMemory(t *testing.T) {
	client := NewClient(&SimTransport{ARMBase: 0, ARMSize: 0x3b400000})

	base, size, err := client.ARMMemory()
	require.NoError(t, err)
	require.Equal(t, uint32(0), base)
	require.Equal(t, uint32(0x3b400000), size)
}

func TestVCMemory(t *testing.T) {
	client := NewClient(&SimTransport{VCBase: 0x3b400000, VCSize: 0x4c00000})

	base, size, err := client.VCMemory()
	require.NoError(t, err)
	require.Equal(t, uint32(0x3b400000), base)
	require.Equal(t, uint32(0x4c00000), size)
}

func TestProcessMultipleTags(t *testing.T) {
	client := NewClient(&SimTransport{
		ARMBase: 0, ARMSize: 0x3b400000,
		VCBase: 0x3b400000, VCSize: 0x4c00000,
	})

	words, err := client.Process([]uint32{
		TagGetARMMemory, 8, 0, 0, 0,
		TagGetVCMemory, 8, 0, 0, 0,
	})
	require.NoError(t, err)

	require.Equal(t, uint32(RequestOK), words[1])
	require.Equal(t, uint32(RequestOK|8), words[4])
	require.Equal(t, uint32(0x3b400000), words[6])
	require.Equal(t, uint32(RequestOK|8), words[9])
	require.Equal(t, uint32(0x3b400000), words[10])
	require.Equal(t, uint32(0x4c00000), words[11])
}

func TestProcessRequestTooBig(t *testing.T) {
	client := NewClient(&SimTransport{})

	// One tag word over the limit: no room left for the end tag.
	_, err := client.Process(make([]uint32, BufferWords-2))
	require.ErrorIs(t, err, ErrRequestTooBig)

	_, err = client.Process(make([]uint32, BufferWords-3))
	require.NoError(t, err)
}

func TestProcessDenied(t *testing.T) {
	client := NewClient(&SimTransport{Deny: true})

	_, _, err := client.ARMMemory()
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestProcessTransportError(t *testing.T) {
	boom := errors.New("channel stuck")
	client := NewClient(&SimTransport{Err: boom})

	_, _, err := client.ARMMemory()
	require.ErrorIs(t, err, boom)
}
