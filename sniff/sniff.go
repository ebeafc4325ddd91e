// Package sniff decides what a byte span in front of the assembler is:
// an HTTP/1.x request, an HTTP/1.x response, or something to pass
// through untouched.
package sniff

import (
	"bytes"
	"regexp"

	"github.com/indigo-web/httpwire/message"
	"golang.org/x/net/http2"
)

var (
	requestLine  = regexp.MustCompile(`^(?:OPTIONS|GET|HEAD|POST|PUT|DELETE|TRACE|CONNECT) (?:.+?) HTTP/\d\.\d$`)
	responseLine = regexp.MustCompile(`^HTTP/\d\.\d \d\d\d .*$`)
)

var crlf = []byte("\r\n")

// Classify inspects the first line of span. The line must be complete:
// a span with no CRLF at all is opaque no matter how promising its
// prefix looks; a half-received start-line is indistinguishable from
// arbitrary text.
func Classify(span []byte) message.Kind {
	boundary := bytes.Index(span, crlf)
	if boundary < 0 {
		return message.KindOpaque
	}

	line := span[:boundary]
	switch {
	case requestLine.Match(line):
		return message.KindRequest
	case responseLine.Match(line):
		return message.KindResponse
	default:
		return message.KindOpaque
	}
}

// DetectHTTP2 reports whether span is a sequence of complete HTTP/2
// frames. Every frame must carry a known type, a length that fits the
// remaining bytes and a zero reserved bit, and the last frame must end
// exactly at the end of the span. A single torn or unknown frame
// disqualifies the whole span.
func DetectHTTP2(span []byte) bool {
	if len(span) < 9 {
		return false
	}

	for len(span) > 0 {
		if len(span) < 9 {
			return false
		}

		if http2.FrameType(span[3]) > http2.FrameContinuation {
			return false
		}

		payload := int(span[0])<<16 | int(span[1])<<8 | int(span[2])
		if payload+9 > len(span) {
			return false
		}

		stream := uint32(span[5])<<24 | uint32(span[6])<<16 | uint32(span[7])<<8 | uint32(span[8])
		if stream>>31 != 0 {
			return false
		}

		span = span[payload+9:]
	}

	return true
}
