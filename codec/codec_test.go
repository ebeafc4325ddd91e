package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func cycle(source string, codec Codec) ([]byte, error) {
	encoded, err := codec.Encode([]byte(source))
	if err != nil {
		return nil, err
	}

	return codec.Decode(encoded)
}

func TestCodecs(t *testing.T) {
	for _, codec := range All() {
		t.Run(codec.Token(), func(t *testing.T) {
			source := "Hello, world! The quick brown fox jumps over the lazy dog."

			result, err := cycle(source, codec)
			require.NoError(t, err)
			require.Equal(t, source, string(result))
		})

		t.Run(codec.Token()+" reused", func(t *testing.T) {
			for _, source := range []string{"first payload", "second payload", ""} {
				result, err := cycle(source, codec)
				require.NoError(t, err)
				require.Equal(t, source, string(result))
			}
		})

		t.Run(codec.Token()+" large body", func(t *testing.T) {
			source := strings.Repeat("compressible content ", 4096)

			encoded, err := codec.Encode([]byte(source))
			require.NoError(t, err)
			require.Less(t, len(encoded), len(source))

			decoded, err := codec.Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, source, string(decoded))
		})
	}
}

func TestPick(t *testing.T) {
	m := Default(nil)

	t.Run("priority order, not token order", func(t *testing.T) {
		token, found := m.Pick([]string{"chunked", "zstd", "gzip"})
		require.True(t, found)
		require.Equal(t, "gzip", token)

		token, found = m.Pick([]string{"br", "deflate"})
		require.True(t, found)
		require.Equal(t, "deflate", token)
	})

	t.Run("unregistered tokens still match", func(t *testing.T) {
		empty := NewManager(nil)
		token, found := empty.Pick([]string{"zstd"})
		require.True(t, found)
		require.Equal(t, "zstd", token)
	})

	t.Run("nothing known", func(t *testing.T) {
		_, found := m.Pick([]string{"chunked", "identity", "x-weird"})
		require.False(t, found)
	})
}

func TestFailOpen(t *testing.T) {
	observed := func(codecs ...Codec) (*Manager, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.InfoLevel)
		return NewManager(zap.New(core), codecs...), logs
	}

	t.Run("unavailable backend returns input with a diagnostic", func(t *testing.T) {
		m, logs := observed()
		body := []byte("still encoded")

		require.Equal(t, body, m.Decode("gzip", body))
		require.Equal(t, 1, logs.Len())

		entry := logs.All()[0]
		require.Equal(t, zapcore.InfoLevel, entry.Level)
		require.Equal(t, "gzip", entry.ContextMap()["coding"])
	})

	t.Run("decode failure returns input with a diagnostic", func(t *testing.T) {
		m, logs := observed(All()...)
		body := []byte("definitely not a gzip stream")

		require.Equal(t, body, m.Decode("gzip", body))
		require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("truncated stream returns input", func(t *testing.T) {
		m, _ := observed(All()...)

		full, err := NewZSTD().Encode([]byte("some payload to truncate"))
		require.NoError(t, err)

		truncated := full[:len(full)/2]
		require.Equal(t, truncated, m.Decode("zstd", truncated))
	})

	t.Run("successful decode is silent", func(t *testing.T) {
		m, logs := observed(All()...)

		encoded, err := NewGZIP().Encode([]byte("payload"))
		require.NoError(t, err)
		require.Equal(t, "payload", string(m.Decode("gzip", encoded)))
		require.Equal(t, 0, logs.Len())
	})
}
