// Package json provides a JSON serializer for textcodec.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/textcodec"
)

// jsonSerializer implements textcodec.Serializer for JSON.
type jsonSerializer struct {
	strict bool
}

// New returns a JSON serializer.
func New() textcodec.Serializer {
	return &jsonSerializer{}
}

// NewStrict returns a JSON serializer that rejects object keys with no
// matching struct field.
func NewStrict() textcodec.Serializer {
	return &jsonSerializer{strict: true}
}

// ContentType returns the MIME type for JSON.
func (s *jsonSerializer) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (s *jsonSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (s *jsonSerializer) Unmarshal(data []byte, v any) error {
	if !s.strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
