// Package msgpack provides a MessagePack serializer for textcodec.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/textcodec"
)

// msgpackSerializer implements textcodec.Serializer for MessagePack.
type msgpackSerializer struct {
	strict bool
}

// New returns a MessagePack serializer.
func New() textcodec.Serializer {
	return &msgpackSerializer{}
}

// NewStrict returns a MessagePack serializer that rejects map keys with no
// matching struct field.
func NewStrict() textcodec.Serializer {
	return &msgpackSerializer{strict: true}
}

// ContentType returns the MIME type for MessagePack.
func (s *msgpackSerializer) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (s *msgpackSerializer) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (s *msgpackSerializer) Unmarshal(data []byte, v any) error {
	if !s.strict {
		return msgpack.Unmarshal(data, v)
	}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields(true)
	return dec.Decode(v)
}
