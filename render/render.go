// Package render turns structured messages back into wire bytes,
// re-applying the body codings the parsing side removed.
package render

import (
	"iter"
	"slices"

	"github.com/indigo-web/httpwire/chunked"
	"github.com/indigo-web/httpwire/codec"
	"github.com/indigo-web/httpwire/message"
)

var colonsp = []byte(": ")

// fielded is the part of Request and Response the renderer cares about.
type fielded interface {
	Headers() iter.Seq2[string, string]
	Raw() []byte
	Body() []byte
	Encodings() []string
}

type Renderer struct {
	codecs     *codec.Manager
	autoCoding bool
	buff       []byte
}

func New(codecs *codec.Manager, autoCoding bool) *Renderer {
	if codecs == nil {
		codecs = codec.Default(nil)
	}

	return &Renderer{
		codecs:     codecs,
		autoCoding: autoCoding,
	}
}

// Render serializes msg. Messages with an intact raw cache reproduce
// their header span byte-for-byte; anything else is rebuilt from fields
// in canonical order. The returned slice is valid until the next Render
// call.
func (r *Renderer) Render(msg message.Message) []byte {
	r.buff = r.buff[:0]

	switch m := msg.(type) {
	case *message.Opaque:
		return m.Data
	case *message.Request:
		r.head(m, m.Method, m.Path, m.Proto)
		r.body(m)
	case *message.Response:
		r.head(m, m.Proto, m.Code, m.Status)
		r.body(m)
	default:
		panic("BUG: unknown message model")
	}

	return r.buff
}

func (r *Renderer) head(m fielded, first, second, third string) {
	if raw := m.Raw(); raw != nil {
		r.buff = append(r.buff, raw...)
		return
	}

	if len(first) > 0 {
		r.buff = append(r.buff, first...)
		r.sp()
	}

	if len(second) > 0 {
		r.buff = append(r.buff, second...)
		r.sp()
	}

	if len(third) > 0 {
		r.buff = append(r.buff, third...)
		r.crlf()
	}

	for name, value := range m.Headers() {
		r.header(name, value)
	}

	// an empty message stays empty, everything else gets the blank line
	if len(r.buff) > 0 {
		r.crlf()
	}
}

func (r *Renderer) body(m fielded) {
	body := m.Body()

	if !r.autoCoding {
		r.buff = append(r.buff, body...)
		return
	}

	encodings := m.Encodings()

	if token, found := r.codecs.Pick(encodings); found {
		body = r.codecs.Encode(token, body)
	}

	if slices.Contains(encodings, "chunked") {
		r.buff = chunked.Append(r.buff, body)
		return
	}

	r.buff = append(r.buff, body...)
}

func (r *Renderer) header(name, value string) {
	r.buff = append(r.buff, name...)
	r.buff = append(r.buff, colonsp...)
	r.buff = append(r.buff, value...)
	r.crlf()
}

func (r *Renderer) sp() {
	r.buff = append(r.buff, ' ')
}

func (r *Renderer) crlf() {
	r.buff = append(r.buff, '\r', '\n')
}
