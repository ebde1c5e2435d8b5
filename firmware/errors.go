package firmware

import "errors"

var (
	// ErrRequestTooBig is returned when a request does not fit in the
	// mailbox buffer alongside the header and the end tag.
	ErrRequestTooBig = errors.New("firmware: request is too big")

	// ErrRequestFailed is returned when the firmware could not process a
	// request.
	ErrRequestFailed = errors.New("firmware: request could not be processed")
)
