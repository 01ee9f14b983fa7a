// Package yaml provides a YAML serializer for textcodec.
//
// Scalars containing line breaks are written double-quoted. yaml.v3 would
// otherwise pick a block scalar, and a value that is only "\n" reads back
// as "".
package yaml

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zoobzio/textcodec"
	"gopkg.in/yaml.v3"
)

// yamlSerializer implements textcodec.Serializer for YAML.
type yamlSerializer struct {
	strict bool
}

// New returns a YAML serializer.
func New() textcodec.Serializer {
	return &yamlSerializer{}
}

// NewStrict returns a YAML serializer that rejects mapping keys with no
// matching struct field. Useful with textcodec.LoadConfig to catch typos
// such as "substitution:".
func NewStrict() textcodec.Serializer {
	return &yamlSerializer{strict: true}
}

// ContentType returns the MIME type for YAML.
func (s *yamlSerializer) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (s *yamlSerializer) Marshal(v any) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	quoteLineBreaks(&node)
	return yaml.Marshal(&node)
}

// Unmarshal decodes YAML data into v.
func (s *yamlSerializer) Unmarshal(data []byte, v any) error {
	if !s.strict {
		return yaml.Unmarshal(data, v)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// quoteLineBreaks forces double quotes on scalars that contain \n or \r.
func quoteLineBreaks(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && strings.ContainsAny(n.Value, "\r\n") {
		n.Style = yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		quoteLineBreaks(c)
	}
}
