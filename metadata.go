package httpwire

import (
	"bytes"
	"errors"

	"github.com/indigo-web/httpwire/message"
)

// ErrInvariant reports an inconsistency between the framing decision and
// the buffered bytes, such as a negative consumed count. It indicates a
// bug in the engine, never malformed input: malformed input degrades, it
// does not error.
var ErrInvariant = errors.New("framing invariant violated")

// FramingMode is the rule deciding where the current message ends.
type FramingMode uint8

const (
	// FramingUnknown means no rule is derived yet; the next arrival probes.
	FramingUnknown FramingMode = iota
	// FramingContentLength ends the body after a declared byte count.
	FramingContentLength
	// FramingChunked ends the body at the terminal chunk sequence.
	FramingChunked
	// FramingUntilDoubleCRLF ends the message at the header terminator.
	FramingUntilDoubleCRLF
	// FramingUpgrade ends the message at the first header terminator;
	// everything past it belongs to the protocol switched to.
	FramingUpgrade
	// FramingUntilClose defers the end to the transport close signal.
	FramingUntilClose
)

func (m FramingMode) String() string {
	switch m {
	case FramingUnknown:
		return "unknown"
	case FramingContentLength:
		return "content-length"
	case FramingChunked:
		return "chunked"
	case FramingUntilDoubleCRLF:
		return "until-double-crlf"
	case FramingUpgrade:
		return "upgrade"
	case FramingUntilClose:
		return "until-close"
	default:
		return "invalid"
	}
}

// Metadata is the framing state of one stream direction. It lives for one
// message cycle: once a message completes, everything except Closed resets
// so a keep-alive stream frames the next message independently.
type Metadata struct {
	Mode FramingMode
	// Length is the declared body byte count, meaningful in
	// FramingContentLength mode only.
	Length int
	// HeaderLen spans the header section including the blank line. Zero
	// while the header terminator hasn't been seen.
	HeaderLen int
	// Probing is set while the terminal condition itself is still
	// undetermined; the rules are re-derived on every arrival.
	Probing bool
	// Closed records that the transport reported end of stream. It is a
	// stream-level fact and survives message cycles.
	Closed bool
}

func (m *Metadata) reset() {
	m.Mode = FramingUnknown
	m.Length = 0
	m.HeaderLen = 0
	m.Probing = false
}

// Result is what a feed yields: a completed message plus the number of
// buffered bytes it consumed, or neither while more bytes are needed.
type Result struct {
	Msg      message.Message
	Consumed int
}

var (
	headerEnd = []byte("\r\n\r\n")
	chunkEnd  = []byte("0\r\n\r\n")
)

// done evaluates the completeness predicate: a pure function of the
// metadata and the buffered bytes, free of captured state.
func done(meta *Metadata, buf []byte) bool {
	switch meta.Mode {
	case FramingContentLength:
		if meta.Probing {
			// the header section itself is not fully received
			return false
		}

		return len(buf)-meta.HeaderLen >= meta.Length
	case FramingChunked:
		return bytes.HasSuffix(buf, chunkEnd)
	case FramingUntilDoubleCRLF:
		return bytes.HasSuffix(buf, headerEnd)
	case FramingUpgrade:
		return bytes.Contains(buf, headerEnd)
	case FramingUntilClose:
		return meta.Closed
	default:
		return false
	}
}
