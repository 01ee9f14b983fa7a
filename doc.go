// Package textcodec provides a reversible character-substitution codec.
//
// A Codec replaces selected characters with an escape character followed by
// a substitute character, and reverses the substitution on decode.
//
// # Basic Usage
//
//	c := textcodec.New(textcodec.NewTable(
//	    textcodec.Pair{Original: ' ', Substitute: '1'},
//	), textcodec.WithEscape(','))
//
//	c.Encode("a b")  // "a,1b"
//	c.Decode("a,1b") // "a b"
//
// # Decoding Rules
//
// Decode never fails. Input that Encode could not have produced is handled
// as follows:
//
//   - An escape character followed by a character that is not a known
//     substitute is emitted as is, together with that character:
//     "a,b" decodes to "a,b".
//   - A trailing escape character is dropped: "a," decodes to "a".
//
// Characters equal to the escape character are not escaped by Encode unless
// the table maps them, so text that already contains the escape character
// may not round-trip.
//
// # Tables
//
// Table keeps substitutions in insertion order. When two originals share a
// substitute, the later one wins on decode. TableFromMap sorts keys so map
// input is deterministic too.
//
// # Absent Input
//
// Encode and Decode accept any string. EncodeBytes and DecodeBytes treat a
// nil slice as absent and return ErrInvalidInput; an empty slice is valid.
//
// # Struct Fields
//
// Processor escapes tagged fields of a struct and serializes the result:
//
//	type Message struct {
//	    ID      string `json:"id"`
//	    Subject string `json:"subject" escape:"true"`
//	}
//
//	func (m Message) Clone() Message { return m }
//
//	proc, _ := textcodec.NewProcessor[Message](c, json.New())
//	data, _ := proc.Marshal(ctx, &msg)   // Subject escaped
//	msg2, _ := proc.Unmarshal(ctx, data) // Subject restored
//
// # Serializer Providers
//
// The following Serializer implementations are available as sub-packages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//   - cbor - CBOR encoding (application/cbor)
//
// Any provider can also carry a Config, the document form of a Codec:
//
//	c, err := textcodec.LoadConfig(yaml.New(), data)
package textcodec
