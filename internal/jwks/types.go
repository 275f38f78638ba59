package jwks

import "encoding/json"

// Key is a single JSON Web Key kept exactly as it was received.
type Key = json.RawMessage

// Keyset is an ordered list of keys. Remote keys always precede local ones.
type Keyset []Key

// Envelope is the wire representation served to relying parties.
type Envelope struct {
	Keys Keyset `json:"keys"`
}

// NewEnvelope wraps keys, normalising nil to an empty list so that the
// envelope encodes as {"keys":[]}.
func NewEnvelope(keys Keyset) Envelope {
	if keys == nil {
		keys = Keyset{}
	}
	return Envelope{Keys: keys}
}
