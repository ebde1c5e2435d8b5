// Package firmware implements the client side of the VideoCore property
// mailbox protocol.
//
// # Overview
//
// The boot firmware of Raspberry Pi boards answers property requests over
// a shared buffer of 32-bit words: the buffer size in bytes, a request
// code, a sequence of tags and a zero end tag. Each tag carries an
// identifier, the length of its value buffer and a request/response code
// followed by the value words. On success the firmware rewrites the
// request code to RequestOK and fills the value buffers in place.
//
// Client builds and decodes such buffers. The register channel that
// carries the buffer to the firmware is abstracted behind the Transport
// interface; SimTransport answers requests in memory so the protocol can
// run on a host.
package firmware
