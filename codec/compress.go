package codec

import (
	"bytes"
	"compress/lzw"
	"io"
)

// compress is the LZW coding. Encoded as a raw LSB-first stream with
// 8-bit literals; the ancient .Z container is not produced.
type compressCodec struct{}

func NewCompress() Codec {
	return compressCodec{}
}

func (compressCodec) Token() string {
	return "compress"
}

func (compressCodec) Encode(input []byte) ([]byte, error) {
	var buff bytes.Buffer
	writer := lzw.NewWriter(&buff, lzw.LSB, 8)

	if _, err := writer.Write(input); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func (compressCodec) Decode(input []byte) ([]byte, error) {
	reader := lzw.NewReader(bytes.NewReader(input), lzw.LSB, 8)
	defer reader.Close()

	return io.ReadAll(reader)
}
