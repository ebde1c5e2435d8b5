package fdt

import "fmt"

const (
	// Magic is the value of the first header field of every DTB.
	Magic = 0xd00dfeed

	// SupportedVersion is the only devicetree format version this parser
	// accepts.
	SupportedVersion = 17

	// RequiredLastCompVersion is the backwards-compatibility version a
	// DTSpec-compliant boot program must declare.
	RequiredLastCompVersion = 16

	// headerSize is the size in bytes of the FDT header: ten big-endian
	// u32 fields.
	headerSize = 40
)

// Header is the fixed-size header at the start of a DTB.
type Header struct {
	// TotalSize is the size in bytes of the entire devicetree blob,
	// including all blocks and padding. The bootstrap uses it to reserve
	// the blob's own footprint.
	TotalSize uint32

	// OffDTStruct is the byte offset of the structure block.
	OffDTStruct uint32

	// OffDTStrings is the byte offset of the strings block.
	OffDTStrings uint32

	// OffMemRsvMap is the byte offset of the memory reservation block.
	OffMemRsvMap uint32

	// Version is the devicetree data structure version.
	Version uint32

	// LastCompVersion is the lowest version this blob is backwards
	// compatible with.
	LastCompVersion uint32

	// BootCPUIDPhys is the physical ID of the system's boot CPU.
	BootCPUIDPhys uint32

	// SizeDTStrings is the length in bytes of the strings block.
	SizeDTStrings uint32

	// SizeDTStruct is the length in bytes of the structure block.
	SizeDTStruct uint32
}

// ParseHeader decodes and validates the FDT header at the start of blob.
func ParseHeader(blob []byte) (Header, error) {
	if len(blob) < headerSize {
		return Header{}, ErrTruncated
	}

	r := &reader{data: blob}

	magic, _ := r.u32()
	if magic != Magic {
		return Header{}, ErrInvalidMagic
	}

	var h Header
	h.TotalSize, _ = r.u32()
	h.OffDTStruct, _ = r.u32()
	h.OffDTStrings, _ = r.u32()
	h.OffMemRsvMap, _ = r.u32()
	h.Version, _ = r.u32()
	h.LastCompVersion, _ = r.u32()
	h.BootCPUIDPhys, _ = r.u32()
	h.SizeDTStrings, _ = r.u32()
	h.SizeDTStruct, _ = r.u32()

	if h.LastCompVersion != RequiredLastCompVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidLastCompVersion, h.LastCompVersion)
	}
	if h.Version != SupportedVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if int(h.TotalSize) > len(blob) || h.TotalSize < headerSize {
		return Header{}, ErrTruncated
	}

	return h, nil
}
