package firmware

const (
	// BufferWords is the size of the mailbox buffer in 32-bit words.
	BufferWords = 8192

	// RequestOK is the response code the firmware writes into the buffer
	// when the request was processed successfully.
	RequestOK = 0x8000_0000

	// TagGetARMMemory asks for the base and size of the memory assigned
	// to the ARM cores.
	TagGetARMMemory = 0x10005

	// TagGetVCMemory asks for the base and size of the memory assigned
	// to the VideoCore.
	TagGetVCMemory = 0x10006
)

// Transport carries a property buffer to the firmware and back. Process
// hands over the full buffer and blocks until the firmware has rewritten
// it in place with the response.
type Transport interface {
	Process(words []uint32) error
}

// Client builds property requests and decodes their responses.
type Client struct {
	transport Transport
}

// NewClient returns a Client speaking through the given transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// ARMMemory returns the base and size in bytes of the memory assigned to
// the ARM cores.
func (c *Client) ARMMemory() (base, size uint32, err error) {
	return c.memoryTag(TagGetARMMemory)
}

// VCMemory returns the base and size in bytes of the memory assigned to
// the VideoCore.
func (c *Client) VCMemory() (base, size uint32, err error) {
	return c.memoryTag(TagGetVCMemory)
}

func (c *Client) memoryTag(tag uint32) (base, size uint32, err error) {
	words, err := c.Process([]uint32{
		tag,
		8, // value buffer length
		0, // bit 31 is 0 for requests
		0, // placeholder for base address
		0, // placeholder for size in bytes
	})
	if err != nil {
		return 0, 0, err
	}
	return words[5], words[6], nil
}

// Process issues a request with the provided concatenated tags and
// returns the full response buffer. Word 2 onwards holds the tags with
// their value buffers filled in.
func (c *Client) Process(tags []uint32) ([]uint32, error) {
	// The buffer must also hold the two header words and the end tag.
	if len(tags) > BufferWords-3 {
		return nil, ErrRequestTooBig
	}

	words := make([]uint32, BufferWords)
	words[0] = BufferWords * 4
	words[1] = 0
	copy(words[2:], tags)
	words[2+len(tags)] = 0

	if err := c.transport.Process(words); err != nil {
		return nil, err
	}

	if words[1] != RequestOK {
		return nil, ErrRequestFailed
	}
	return words, nil
}
