package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// deflate is the zlib-wrapped deflate stream, the way RFC 9110 defines
// the token. Bare deflate streams some non-conformant peers emit will
// fail to decode and pass through unchanged.
type deflateCodec struct {
	writer *zlib.Writer
}

func NewDeflate() Codec {
	return &deflateCodec{writer: zlib.NewWriter(nil)}
}

func (d *deflateCodec) Token() string {
	return "deflate"
}

func (d *deflateCodec) Encode(input []byte) ([]byte, error) {
	var buff bytes.Buffer
	d.writer.Reset(&buff)

	if _, err := d.writer.Write(input); err != nil {
		return nil, err
	}
	if err := d.writer.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func (d *deflateCodec) Decode(input []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
