package textcodec

import (
	"fmt"
	"unicode/utf8"
)

// Substitution is the document form of a Pair. Both sides must be exactly
// one character.
type Substitution struct {
	From string `json:"from" yaml:"from" msgpack:"from" bson:"from" cbor:"from" xml:"from,attr"`
	To   string `json:"to" yaml:"to" msgpack:"to" bson:"to" cbor:"to" xml:"to,attr"`
}

// Config describes a Codec in a form any Serializer can carry.
// An empty Escape selects DefaultEscape. Substitution order is significant:
// it decides which original wins when two share a substitute.
type Config struct {
	Escape        string         `json:"escape,omitempty" yaml:"escape,omitempty" msgpack:"escape,omitempty" bson:"escape,omitempty" cbor:"escape,omitempty" xml:"escape,attr,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty" yaml:"substitutions,omitempty" msgpack:"substitutions,omitempty" bson:"substitutions,omitempty" cbor:"substitutions,omitempty" xml:"substitution"`
}

// Build validates the config and returns the Codec it describes.
func (cfg Config) Build() (*Codec, error) {
	escape := rune(DefaultEscape)
	if cfg.Escape != "" {
		r, err := singleRune("escape", cfg.Escape)
		if err != nil {
			return nil, err
		}
		escape = r
	}

	table := NewTable()
	for i, s := range cfg.Substitutions {
		from, err := singleRune(fmt.Sprintf("substitutions[%d].from", i), s.From)
		if err != nil {
			return nil, err
		}
		to, err := singleRune(fmt.Sprintf("substitutions[%d].to", i), s.To)
		if err != nil {
			return nil, err
		}
		table.Set(from, to)
	}

	return New(table, WithEscape(escape)), nil
}

// ConfigOf returns the document form of c.
func ConfigOf(c *Codec) Config {
	pairs := c.table.Pairs()
	cfg := Config{Escape: string(c.escape)}
	if len(pairs) > 0 {
		cfg.Substitutions = make([]Substitution, 0, len(pairs))
	}
	for _, p := range pairs {
		cfg.Substitutions = append(cfg.Substitutions, Substitution{
			From: string(p.Original),
			To:   string(p.Substitute),
		})
	}
	return cfg
}

// LoadConfig decodes a Config from data with s and builds it.
func LoadConfig(s Serializer, data []byte) (*Codec, error) {
	if data == nil {
		return nil, newInputError("load config")
	}
	var cfg Config
	if err := s.Unmarshal(data, &cfg); err != nil {
		return nil, newSerializerError(ErrUnmarshal, err)
	}
	return cfg.Build()
}

// singleRune returns the only rune in v.
func singleRune(field, v string) (rune, error) {
	r, size := utf8.DecodeRuneInString(v)
	if size == 0 || size != len(v) || !validRune(r, size) {
		return 0, newConfigError(ErrInvalidConfig, field, v)
	}
	return r, nil
}
