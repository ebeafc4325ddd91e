// Package chunked implements chunked transfer coding: a tolerant decoder
// for bodies delimited upstream and a minimal encoder for re-emission.
package chunked

import (
	"strconv"

	"github.com/indigo-web/chunkedbody"
)

var finalizer = []byte("0\r\n\r\n")

// Decode undoes chunked transfer coding, best-effort: chunk payloads are
// concatenated in order until the terminal zero-length chunk. A malformed
// length line, a missing chunk boundary or plain truncation stops decoding
// with whatever was accumulated so far; garbled framing degrades to a
// shorter body, never to a failure. Trailer lines after the terminal chunk
// and any bytes past it are dropped.
func Decode(body []byte) []byte {
	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
	var decoded []byte

	for len(body) > 0 {
		chunk, extra, err := parser.Parse(body, true)
		decoded = append(decoded, chunk...)
		if err != nil {
			// io.EOF: the terminal chunk was consumed. Anything else is
			// malformed framing; either way the accumulated payload is the
			// result.
			break
		}

		body = extra
	}

	return decoded
}

// Encode applies chunked transfer coding in its minimal valid form: the
// whole payload as one chunk, then the terminal zero-length chunk. An
// empty payload encodes to the terminal chunk alone.
func Encode(body []byte) []byte {
	return Append(nil, body)
}

// Append appends the chunked form of body to dst and returns the extended
// buffer.
func Append(dst, body []byte) []byte {
	if len(body) > 0 {
		dst = strconv.AppendUint(dst, uint64(len(body)), 16)
		dst = append(dst, '\r', '\n')
		dst = append(dst, body...)
		dst = append(dst, '\r', '\n')
	}

	return append(dst, finalizer...)
}
