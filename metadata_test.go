package httpwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDone(t *testing.T) {
	for _, tc := range []struct {
		name string
		meta Metadata
		buf  string
		want bool
	}{
		{
			name: "unknown never completes",
			meta: Metadata{Mode: FramingUnknown},
			buf:  "GET / HTTP/1.1\r\n\r\n",
			want: false,
		},
		{
			name: "content length short",
			meta: Metadata{Mode: FramingContentLength, HeaderLen: 10, Length: 5},
			buf:  "0123456789ab",
			want: false,
		},
		{
			name: "content length exact",
			meta: Metadata{Mode: FramingContentLength, HeaderLen: 10, Length: 5},
			buf:  "0123456789abcde",
			want: true,
		},
		{
			name: "content length overshoot",
			meta: Metadata{Mode: FramingContentLength, HeaderLen: 10, Length: 5},
			buf:  "0123456789abcdef",
			want: true,
		},
		{
			name: "content length zero",
			meta: Metadata{Mode: FramingContentLength, HeaderLen: 12, Length: 0},
			buf:  "0123456789\r\n",
			want: true,
		},
		{
			name: "content length still probing",
			meta: Metadata{Mode: FramingContentLength, Length: 5, Probing: true},
			buf:  "a very long buffer without any header terminator",
			want: false,
		},
		{
			name: "chunked without terminal chunk",
			meta: Metadata{Mode: FramingChunked},
			buf:  "5\r\nhello\r\n",
			want: false,
		},
		{
			name: "chunked with terminal chunk",
			meta: Metadata{Mode: FramingChunked},
			buf:  "5\r\nhello\r\n0\r\n\r\n",
			want: true,
		},
		{
			name: "double crlf at the end",
			meta: Metadata{Mode: FramingUntilDoubleCRLF},
			buf:  "GET / HTTP/1.1\r\nHost: x\r\n\r\n",
			want: true,
		},
		{
			name: "double crlf in the middle does not count",
			meta: Metadata{Mode: FramingUntilDoubleCRLF},
			buf:  "GET / HTTP/1.1\r\n\r\ntrailing",
			want: false,
		},
		{
			name: "upgrade terminator anywhere",
			meta: Metadata{Mode: FramingUpgrade},
			buf:  "HTTP/1.1 101 S\r\n\r\nBINARY",
			want: true,
		},
		{
			name: "upgrade terminator at offset zero",
			meta: Metadata{Mode: FramingUpgrade},
			buf:  "\r\n\r\nBINARY",
			want: true,
		},
		{
			name: "upgrade without terminator",
			meta: Metadata{Mode: FramingUpgrade},
			buf:  "HTTP/1.1 101 S\r\nUpgrade: websocket\r\n",
			want: false,
		},
		{
			name: "until close still open",
			meta: Metadata{Mode: FramingUntilClose},
			buf:  "HTTP/1.0 200 OK\r\n\r\nbody",
			want: false,
		},
		{
			name: "until close closed",
			meta: Metadata{Mode: FramingUntilClose, Closed: true},
			buf:  "HTTP/1.0 200 OK\r\n\r\nbody",
			want: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, done(&tc.meta, []byte(tc.buf)))
		})
	}
}

func TestMetadataReset(t *testing.T) {
	meta := Metadata{
		Mode:      FramingContentLength,
		Length:    42,
		HeaderLen: 17,
		Probing:   true,
		Closed:    true,
	}
	meta.reset()

	require.Equal(t, FramingUnknown, meta.Mode)
	require.Zero(t, meta.Length)
	require.Zero(t, meta.HeaderLen)
	require.False(t, meta.Probing)
	require.True(t, meta.Closed, "close outlives the message cycle")
}

func TestFramingModeString(t *testing.T) {
	for mode, repr := range map[FramingMode]string{
		FramingUnknown:         "unknown",
		FramingContentLength:   "content-length",
		FramingChunked:         "chunked",
		FramingUntilDoubleCRLF: "until-double-crlf",
		FramingUpgrade:         "upgrade",
		FramingUntilClose:      "until-close",
		FramingMode(250):       "invalid",
	} {
		require.Equal(t, repr, mode.String())
	}
}
