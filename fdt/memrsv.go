package fdt

// MaxRsvRegions is the capacity of the fixed-size buffer holding memory
// reservation entries. Blobs declaring more entries are rejected.
const MaxRsvRegions = 32

// RsvRegion is one entry of the memory reservation block: a physical
// region the kernel must never hand out.
type RsvRegion struct {
	// Address is the base physical address of the reserved region.
	Address uint64

	// Size is the size in bytes of the reserved region.
	Size uint64
}

// parseMemRsvBlock decodes the memory reservation block: (address, size)
// u64 pairs terminated by a zero entry.
func parseMemRsvBlock(blob []byte, h Header) ([]RsvRegion, error) {
	r := &reader{data: blob, off: int(h.OffMemRsvMap)}

	var regions []RsvRegion
	for {
		if len(regions) >= MaxRsvRegions {
			return nil, ErrFullRsvRegions
		}

		address, err := r.u64()
		if err != nil {
			return nil, err
		}
		size, err := r.u64()
		if err != nil {
			return nil, err
		}

		if address == 0 && size == 0 {
			return regions, nil
		}
		regions = append(regions, RsvRegion{Address: address, Size: size})
	}
}
