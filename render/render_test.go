package render

import (
	"testing"

	"github.com/indigo-web/httpwire/chunked"
	"github.com/indigo-web/httpwire/codec"
	"github.com/indigo-web/httpwire/message"
	"github.com/stretchr/testify/require"
)

func TestRenderRaw(t *testing.T) {
	r := New(nil, true)

	t.Run("parsed request reproduces its bytes", func(t *testing.T) {
		wire := []byte("POST /submit HTTP/1.1\r\nHost: example.com\r\nContent-Length: 5\r\n\r\nhello")
		req, err := message.ParseRequest(wire)
		require.NoError(t, err)
		require.Equal(t, wire, r.Render(req))
	})

	t.Run("parsed response reproduces its bytes", func(t *testing.T) {
		wire := []byte("HTTP/1.1 204 No Content\r\nserver:  nginx \r\nX-Weird:v\r\n\r\n")
		resp, err := message.ParseResponse(wire)
		require.NoError(t, err)
		require.Equal(t, wire, r.Render(resp))
	})

	t.Run("mutation forces a canonical rebuild", func(t *testing.T) {
		wire := []byte("GET / HTTP/1.1\r\nhost: example.com\r\n\r\n")
		req, err := message.ParseRequest(wire)
		require.NoError(t, err)

		req.SetHeader("X-Extra", "1")
		require.Equal(t,
			"GET / HTTP/1.1\r\nHost: example.com\r\nX-Extra: 1\r\n\r\n",
			string(r.Render(req)))
	})
}

func TestRenderCanonical(t *testing.T) {
	r := New(nil, true)

	build := func(headers ...[2]string) *message.Request {
		req := message.NewRequest()
		req.Method, req.Path, req.Proto = "GET", "/", "HTTP/1.1"
		for _, h := range headers {
			req.SetHeader(h[0], h[1])
		}

		return req
	}

	t.Run("known slots in catalog order, unknown after", func(t *testing.T) {
		req := build(
			[2]string{"X-Second", "2"},
			[2]string{"host", "example.com"},
			[2]string{"X-First", "1"},
			[2]string{"accept", "*/*"},
		)

		require.Equal(t,
			"GET / HTTP/1.1\r\nAccept: */*\r\nHost: example.com\r\nX-Second: 2\r\nX-First: 1\r\n\r\n",
			string(r.Render(req)))
	})

	t.Run("start line only", func(t *testing.T) {
		require.Equal(t, "GET / HTTP/1.1\r\n\r\n", string(r.Render(build())))
	})

	t.Run("empty start line fields are skipped", func(t *testing.T) {
		req := message.NewRequest()
		req.Method, req.Proto = "GET", "HTTP/1.1"
		require.Equal(t, "GET HTTP/1.1\r\n\r\n", string(r.Render(req)))
	})

	t.Run("empty message stays empty", func(t *testing.T) {
		require.Empty(t, r.Render(message.NewRequest()))
	})

	t.Run("response start line", func(t *testing.T) {
		resp := message.NewResponse()
		resp.Proto, resp.Code, resp.Status = "HTTP/1.1", "404", "Not Found"
		resp.SetHeader("Server", "httpwire")
		require.Equal(t,
			"HTTP/1.1 404 Not Found\r\nServer: httpwire\r\n\r\n",
			string(r.Render(resp)))
	})
}

func TestRenderBody(t *testing.T) {
	head := "PUT /u HTTP/1.1\r\n"

	build := func(te string, body []byte) *message.Request {
		req := message.NewRequest()
		req.Method, req.Path, req.Proto = "PUT", "/u", "HTTP/1.1"
		if te != "" {
			req.SetHeader("Transfer-Encoding", te)
		}
		req.SetBody(body)

		return req
	}

	t.Run("plain body travels verbatim", func(t *testing.T) {
		r := New(nil, true)
		rendered := r.Render(build("", []byte("hello")))
		require.Equal(t, head+"\r\nhello", string(rendered))
	})

	t.Run("chunking is re-applied", func(t *testing.T) {
		r := New(nil, true)
		rendered := r.Render(build("chunked", []byte("hello")))
		require.Equal(t,
			head+"Transfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n",
			string(rendered))
	})

	t.Run("compression is re-applied", func(t *testing.T) {
		r := New(nil, true)
		rendered := r.Render(build("gzip", []byte("payload")))

		wireHead := head + "Transfer-Encoding: gzip\r\n\r\n"
		require.Equal(t, wireHead, string(rendered[:len(wireHead)]))

		decoded, err := codec.NewGZIP().Decode(rendered[len(wireHead):])
		require.NoError(t, err)
		require.Equal(t, "payload", string(decoded))
	})

	t.Run("compress before chunking", func(t *testing.T) {
		r := New(nil, true)
		rendered := r.Render(build("gzip, chunked", []byte("payload")))

		wireHead := head + "Transfer-Encoding: gzip, chunked\r\n\r\n"
		require.Equal(t, wireHead, string(rendered[:len(wireHead)]))

		unchunked := chunked.Decode(rendered[len(wireHead):])
		decoded, err := codec.NewGZIP().Decode(unchunked)
		require.NoError(t, err)
		require.Equal(t, "payload", string(decoded))
	})

	t.Run("auto coding off leaves the body alone", func(t *testing.T) {
		r := New(nil, false)
		rendered := r.Render(build("chunked", []byte("hello")))
		require.Equal(t, head+"Transfer-Encoding: chunked\r\n\r\nhello", string(rendered))
	})
}

func TestRenderOpaque(t *testing.T) {
	r := New(nil, true)
	data := []byte{0x16, 0x03, 0x01, 0x00, 0x2e}
	require.Equal(t, data, r.Render(&message.Opaque{Data: data}))
}

func TestRenderReuse(t *testing.T) {
	r := New(nil, true)

	first := message.NewRequest()
	first.Method, first.Path, first.Proto = "GET", "/very/long/path/to/fill/the/buffer", "HTTP/1.1"
	r.Render(first)

	second := message.NewRequest()
	second.Method, second.Path, second.Proto = "GET", "/b", "HTTP/1.1"
	require.Equal(t, "GET /b HTTP/1.1\r\n\r\n", string(r.Render(second)))
}
