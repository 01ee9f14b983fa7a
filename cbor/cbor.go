// Package cbor provides a CBOR serializer for textcodec.
//
// Output uses RFC 8949 core deterministic encoding, so equal configs always
// serialize to equal bytes.
package cbor

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/textcodec"
)

// cborSerializer implements textcodec.Serializer for CBOR.
type cborSerializer struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New returns a CBOR serializer.
func New() textcodec.Serializer {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		panic(err)
	}
	return &cborSerializer{enc: em, dec: dm}
}

// ContentType returns the MIME type for CBOR.
func (s *cborSerializer) ContentType() string {
	return "application/cbor"
}

// Marshal encodes v as CBOR.
func (s *cborSerializer) Marshal(v any) ([]byte, error) {
	return s.enc.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (s *cborSerializer) Unmarshal(data []byte, v any) error {
	return s.dec.Unmarshal(data, v)
}
