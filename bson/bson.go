// Package bson provides a BSON serializer for textcodec.
package bson

import (
	"github.com/zoobzio/textcodec"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonSerializer implements textcodec.Serializer for BSON.
type bsonSerializer struct{}

// New returns a BSON serializer.
func New() textcodec.Serializer {
	return &bsonSerializer{}
}

// ContentType returns the MIME type for BSON.
func (s *bsonSerializer) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (s *bsonSerializer) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. The document is validated in full
// first, so truncated or corrupt input fails before any field is set.
func (s *bsonSerializer) Unmarshal(data []byte, v any) error {
	if err := bson.Raw(data).Validate(); err != nil {
		return err
	}
	return bson.Unmarshal(data, v)
}
