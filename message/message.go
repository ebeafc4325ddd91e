// Package message holds the structured models a byte stream is parsed
// into: requests, responses and opaque pass-through spans.
package message

// Kind discriminates the message models.
type Kind uint8

const (
	KindOpaque Kind = iota
	KindRequest
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "opaque"
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Message is implemented by every model the engine can emit.
type Message interface {
	Kind() Kind
}

// Opaque wraps bytes that don't parse as HTTP/1.x and travel to the
// consumer unmodified. HTTP2 is set when the span was recognized as a
// clean run of successor-protocol frames and belongs to an HTTP/2
// handler instead.
type Opaque struct {
	Data  []byte
	HTTP2 bool
}

func (*Opaque) Kind() Kind {
	return KindOpaque
}
