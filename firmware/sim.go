package firmware

// responseError is the code the firmware writes when it could not parse
// the request buffer.
const responseError = 0x8000_0001

// SimTransport answers property requests in memory. It implements the
// memory tags so allocator bootstrap can run on a host; unknown tags are
// left untouched, like real firmware ignoring tags it does not know.
//
// The zero value describes a board with no memory; populate the fields
// with the split to simulate.
type SimTransport struct {
	// ARMBase and ARMSize describe the memory assigned to the ARM cores.
	ARMBase uint32
	ARMSize uint32

	// VCBase and VCSize describe the memory assigned to the VideoCore.
	VCBase uint32
	VCSize uint32

	// Err, when set, makes Process fail before touching the buffer. It
	// simulates a broken register channel.
	Err error

	// Deny, when set, makes the firmware reject the request as a whole.
	Deny bool
}

var _ Transport = (*SimTransport)(nil)

// Process rewrites the buffer in place the way the firmware would.
func (s *SimTransport) Process(words []uint32) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Deny {
		words[1] = responseError
		return nil
	}

	for i := 2; i < len(words) && words[i] != 0; {
		tag := words[i]
		valueLen := words[i+1]
		valueWords := (int(valueLen) + 3) / 4

		switch tag {
		case TagGetARMMemory:
			words[i+3] = s.ARMBase
			words[i+4] = s.ARMSize
			words[i+2] = RequestOK | 8
		case TagGetVCMemory:
			words[i+3] = s.VCBase
			words[i+4] = s.VCSize
			words[i+2] = RequestOK | 8
		}

		i += 3 + valueWords
	}

	words[1] = RequestOK
	return nil
}
