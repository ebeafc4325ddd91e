package codec

import (
	"slices"

	"go.uber.org/zap"
)

// Manager routes bodies through the coding backends it holds. It fails
// open: when a backend is unavailable or chokes on the data, the body
// passes through unchanged with a diagnostic.
type Manager struct {
	codecs map[string]Codec
	log    *zap.Logger
}

// NewManager returns a manager over the given codecs. A nil logger mutes
// diagnostics. Registering no codecs at all is valid: every coding is then
// reported unavailable.
func NewManager(log *zap.Logger, codecs ...Codec) *Manager {
	if log == nil {
		log = zap.NewNop()
	}

	m := &Manager{
		codecs: make(map[string]Codec, len(codecs)),
		log:    log,
	}
	for _, c := range codecs {
		m.codecs[c.Token()] = c
	}

	return m
}

// Default returns a manager with every implemented codec registered.
func Default(log *zap.Logger) *Manager {
	return NewManager(log, All()...)
}

// Pick returns the first token of the priority order present among the
// given tokens, registered or not.
func (m *Manager) Pick(tokens []string) (string, bool) {
	for _, known := range Tokens {
		if slices.Contains(tokens, known) {
			return known, true
		}
	}

	return "", false
}

// Decode undoes the named coding on the body, or returns it untouched
// when it can't.
func (m *Manager) Decode(token string, body []byte) []byte {
	codec, found := m.codecs[token]
	if !found {
		m.log.Info("coding backend unavailable, skipping decode",
			zap.String("coding", token))
		return body
	}

	decoded, err := codec.Decode(body)
	if err != nil {
		m.log.Warn("failed to decode body, leaving it as-is",
			zap.String("coding", token), zap.Error(err))
		return body
	}

	return decoded
}

// Encode applies the named coding to the body, or returns it untouched
// when it can't.
func (m *Manager) Encode(token string, body []byte) []byte {
	codec, found := m.codecs[token]
	if !found {
		m.log.Info("coding backend unavailable, skipping encode",
			zap.String("coding", token))
		return body
	}

	encoded, err := codec.Encode(body)
	if err != nil {
		m.log.Warn("failed to encode body, leaving it as-is",
			zap.String("coding", token), zap.Error(err))
		return body
	}

	return encoded
}
