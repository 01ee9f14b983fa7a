package textcodec

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
)

// DefaultEscape is the escape character used when WithEscape is not given.
const DefaultEscape = ','

// Option configures a Codec.
type Option func(*options)

type options struct {
	escape rune
}

// WithEscape sets the escape character.
func WithEscape(r rune) Option {
	return func(o *options) {
		o.escape = r
	}
}

// Codec escapes and unescapes characters according to a substitution table.
//
// Both lookup maps are built once in New and never written afterwards, so a
// Codec is safe for concurrent use without locking.
type Codec struct {
	escape      rune
	table       *Table
	encode      map[rune]rune
	decode      map[rune]rune
	fingerprint string
}

// New builds a Codec from table. A nil table is valid: Encode becomes the
// identity and Decode still strips escape characters per its recovery rules.
//
// New performs no validation. Tables whose originals or substitutes collide
// with the escape character are accepted as given.
func New(table *Table, opts ...Option) *Codec {
	o := options{escape: DefaultEscape}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Codec{
		escape: o.escape,
		table:  table.Clone(),
		encode: table.encodeMap(),
		decode: table.decodeMap(),
	}
	c.fingerprint = fingerprint(c.escape, c.table)

	emitCodecCreated(context.Background(), c.escape, c.table.Len())
	return c
}

// Escape returns the escape character.
func (c *Codec) Escape() rune {
	return c.escape
}

// Table returns a copy of the substitution table.
func (c *Codec) Table() *Table {
	return c.table.Clone()
}

// Fingerprint identifies the codec configuration. Codecs with the same
// escape character and the same pairs in the same order share a fingerprint.
func (c *Codec) Fingerprint() string {
	return c.fingerprint
}

// Encode replaces every mapped character with the escape character followed
// by its substitute. Unmapped characters, including a bare escape character,
// are copied through.
//
// A string cannot be absent; use EncodeBytes when a nil input must be
// rejected with ErrInvalidInput.
func (c *Codec) Encode(text string) string {
	if text == "" {
		return ""
	}
	return string(c.appendEncoded(make([]byte, 0, len(text)+len(text)/4), []byte(text)))
}

// Decode reverses Encode.
//
// An escape character followed by an unknown substitute is emitted together
// with that character. A trailing escape character is dropped.
//
// Use DecodeBytes when a nil input must be rejected with ErrInvalidInput.
func (c *Codec) Decode(text string) string {
	if text == "" {
		return ""
	}
	return string(c.appendDecoded(make([]byte, 0, len(text)), []byte(text)))
}

// EncodeBytes is Encode for UTF-8 byte slices. A nil slice is rejected with
// ErrInvalidInput; an empty slice encodes to an empty slice.
func (c *Codec) EncodeBytes(src []byte) ([]byte, error) {
	if src == nil {
		return nil, newInputError("encode")
	}
	return c.appendEncoded(make([]byte, 0, len(src)+len(src)/4), src), nil
}

// DecodeBytes is Decode for UTF-8 byte slices. A nil slice is rejected with
// ErrInvalidInput; an empty slice decodes to an empty slice.
func (c *Codec) DecodeBytes(src []byte) ([]byte, error) {
	if src == nil {
		return nil, newInputError("decode")
	}
	return c.appendDecoded(make([]byte, 0, len(src)), src), nil
}

// appendEncoded appends the encoding of src to dst.
// Invalid UTF-8 bytes are copied through untouched.
func (c *Codec) appendEncoded(dst, src []byte) []byte {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		raw := src[i : i+size]
		i += size

		if validRune(r, size) {
			if sub, ok := c.encode[r]; ok {
				dst = utf8.AppendRune(dst, c.escape)
				dst = utf8.AppendRune(dst, sub)
				continue
			}
		}
		dst = append(dst, raw...)
	}
	return dst
}

// appendDecoded appends the decoding of src to dst.
func (c *Codec) appendDecoded(dst, src []byte) []byte {
	escaped := false
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		raw := src[i : i+size]
		i += size
		valid := validRune(r, size)

		if escaped {
			escaped = false
			if valid {
				if orig, ok := c.decode[r]; ok {
					dst = utf8.AppendRune(dst, orig)
					continue
				}
			}
			dst = utf8.AppendRune(dst, c.escape)
			dst = append(dst, raw...)
			continue
		}

		if valid && r == c.escape {
			escaped = true
			continue
		}
		dst = append(dst, raw...)
	}
	// A dangling escape at end of input is dropped.
	return dst
}

// validRune reports whether DecodeRune produced a real rune rather than the
// replacement for an invalid byte.
func validRune(r rune, size int) bool {
	return r != utf8.RuneError || size > 1
}

// fingerprint hashes the escape character and pairs in order.
// Runes are written as fixed-width values so invalid runes (surrogates,
// values above utf8.MaxRune) stay distinct.
func fingerprint(escape rune, t *Table) string {
	buf := make([]byte, 0, 4*(1+2*t.Len()))
	buf = binary.BigEndian.AppendUint32(buf, uint32(escape))
	for _, p := range t.Pairs() {
		buf = binary.BigEndian.AppendUint32(buf, uint32(p.Original))
		buf = binary.BigEndian.AppendUint32(buf, uint32(p.Substitute))
	}
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
