package config

type (
	Body struct {
		// AutoCoding controls whether bodies are transparently de-chunked and
		// decompressed on the way in and re-encoded on the way out. When disabled,
		// bodies pass through verbatim in both directions.
		AutoCoding bool
	}

	Stream struct {
		// BufferPrealloc is the initial capacity of the per-stream accumulation
		// buffer. The buffer grows past it as needed; it is never a limit.
		BufferPrealloc int
	}
)

// Config holds settings shared by the assembler and the renderer.
//
// Always modify defaults (returned via Default()) instead of initializing the
// config manually.
type Config struct {
	Body   Body
	Stream Stream
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Body: Body{
			AutoCoding: true,
		},
		Stream: Stream{
			BufferPrealloc: 2 * 1024, // ordinary header sections fit with room to spare
		},
	}
}
