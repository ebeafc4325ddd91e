// Package dump emits one-line JSON records of assembled messages, meant
// for traffic inspection tooling that wants structure without the wire
// bytes themselves.
package dump

import (
	"io"
	"iter"

	json "github.com/json-iterator/go"

	"github.com/indigo-web/httpwire/message"
)

// Record is the flattened view of one assembled message.
type Record struct {
	Kind     string   `json:"kind"`
	Method   string   `json:"method,omitempty"`
	Path     string   `json:"path,omitempty"`
	Proto    string   `json:"proto,omitempty"`
	Code     string   `json:"code,omitempty"`
	Status   string   `json:"status,omitempty"`
	Headers  []Header `json:"headers,omitempty"`
	BodySize int      `json:"body_size"`
	Codings  []string `json:"codings,omitempty"`
	HTTP2    bool     `json:"http2,omitempty"`
}

// Header keeps the pair form so repeated names and their order survive
// the trip through JSON.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Dumper struct {
	w io.Writer
}

func NewDumper(w io.Writer) *Dumper {
	return &Dumper{w: w}
}

// Dump writes msg to the underlying writer as one newline-terminated
// JSON record.
func (d *Dumper) Dump(msg message.Message) error {
	stream := json.ConfigDefault.BorrowStream(d.w)
	stream.WriteVal(Flatten(msg))
	stream.WriteRaw("\n")
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return err
}

// Flatten builds the record without writing it anywhere.
func Flatten(msg message.Message) Record {
	record := Record{Kind: msg.Kind().String()}

	switch m := msg.(type) {
	case *message.Request:
		record.Method, record.Path, record.Proto = m.Method, m.Path, m.Proto
		record.Headers = headersOf(m.Headers())
		record.BodySize = len(m.Body())
		record.Codings = m.Encodings()
	case *message.Response:
		record.Proto, record.Code, record.Status = m.Proto, m.Code, m.Status
		record.Headers = headersOf(m.Headers())
		record.BodySize = len(m.Body())
		record.Codings = m.Encodings()
	case *message.Opaque:
		record.BodySize = len(m.Data)
		record.HTTP2 = m.HTTP2
	}

	return record
}

func headersOf(seq iter.Seq2[string, string]) []Header {
	var headers []Header
	for name, value := range seq {
		headers = append(headers, Header{Name: name, Value: value})
	}

	return headers
}
