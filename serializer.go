package textcodec

// Serializer provides content-type aware marshaling.
// Implementations live in the json, xml, yaml, msgpack, bson and cbor
// sub-packages.
type Serializer interface {
	// ContentType returns the MIME type for this serializer (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
