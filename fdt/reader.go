package fdt

import (
	"bytes"
	"encoding/binary"
)

// reader is a bounds-checked cursor over a DTB blob. All reads are
// big-endian per DTSpec. Decoding stays allocation-light: strings are the
// only values copied out of the blob.
type reader struct {
	data []byte
	off  int
}

func (r *reader) u32() (uint32, error) {
	if r.off+4 > len(r.data) {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint32(r.data[r.off : r.off+4])
	r.off += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.off+8 > len(r.data) {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint64(r.data[r.off : r.off+8])
	r.off += 8
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, ErrTruncated
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// cstr reads a nul-terminated string and advances past the terminator.
func (r *reader) cstr() (string, error) {
	idx := bytes.IndexByte(r.data[r.off:], 0)
	if idx < 0 {
		return "", ErrTruncated
	}
	s := string(r.data[r.off : r.off+idx])
	r.off += idx + 1
	return s, nil
}

// align4 advances the cursor to the next 4-byte boundary. Token and
// property positions in the structure block are 4-byte aligned.
func (r *reader) align4() {
	r.off = (r.off + 3) &^ 3
}

// cstrAt reads a nul-terminated string from data starting at off, bounded
// by limit (exclusive).
func cstrAt(data []byte, off, limit int) (string, error) {
	if off < 0 || off >= limit || limit > len(data) {
		return "", ErrMalformedStructure
	}
	idx := bytes.IndexByte(data[off:limit], 0)
	if idx < 0 {
		return "", ErrMalformedStructure
	}
	return string(data[off : off+idx]), nil
}
