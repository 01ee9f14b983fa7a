// Package xml provides a XML serializer for textcodec.
//
// XML 1.0 cannot carry most control characters (NUL, U+0001 to U+0008, and
// so on). encoding/xml silently writes U+FFFD in their place, so Marshal
// rejects a textcodec.Config that uses one with ErrUnencodable instead.
package xml

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/zoobzio/textcodec"
)

// ErrUnencodable is returned by Marshal for a Config holding a character
// outside the XML 1.0 Char range.
var ErrUnencodable = errors.New("xml: character not representable")

// xmlSerializer implements textcodec.Serializer for XML.
type xmlSerializer struct{}

// New returns a XML serializer.
func New() textcodec.Serializer {
	return &xmlSerializer{}
}

// ContentType returns the MIME type for XML.
func (s *xmlSerializer) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (s *xmlSerializer) Marshal(v any) ([]byte, error) {
	if err := checkConfig(v); err != nil {
		return nil, err
	}
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (s *xmlSerializer) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

func checkConfig(v any) error {
	var cfg *textcodec.Config
	switch c := v.(type) {
	case textcodec.Config:
		cfg = &c
	case *textcodec.Config:
		cfg = c
	default:
		return nil
	}
	if cfg == nil {
		return nil
	}

	if err := checkChars("escape", cfg.Escape); err != nil {
		return err
	}
	for i, sub := range cfg.Substitutions {
		if err := checkChars(fmt.Sprintf("substitutions[%d].from", i), sub.From); err != nil {
			return err
		}
		if err := checkChars(fmt.Sprintf("substitutions[%d].to", i), sub.To); err != nil {
			return err
		}
	}
	return nil
}

func checkChars(field, s string) error {
	for _, r := range s {
		if !isChar(r) {
			return fmt.Errorf("%w: %s=%q", ErrUnencodable, field, r)
		}
	}
	return nil
}

// isChar reports whether r matches the XML 1.0 Char production.
func isChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
