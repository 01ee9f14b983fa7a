// Package testing provides test utilities for textcodec.
package testing

import (
	"strings"
	"testing"

	"github.com/zoobzio/textcodec"
)

// SpaceTable returns the reference table: space is substituted by '1'.
func SpaceTable() *textcodec.Table {
	return textcodec.NewTable(textcodec.Pair{Original: ' ', Substitute: '1'})
}

// TestCodec returns a codec over SpaceTable with ',' as escape.
func TestCodec(tb testing.TB) *textcodec.Codec {
	tb.Helper()
	return textcodec.New(SpaceTable(), textcodec.WithEscape(','))
}

// RepeatedInput returns n 'a' runes, then n spaces, then n 'b' runes.
func RepeatedInput(n int) string {
	var b strings.Builder
	b.Grow(3 * n)
	b.WriteString(strings.Repeat("a", n))
	b.WriteString(strings.Repeat(" ", n))
	b.WriteString(strings.Repeat("b", n))
	return b.String()
}

// Message is a test type with escaped fields of every supported kind.
type Message struct {
	ID      string            `json:"id" yaml:"id" msgpack:"id" bson:"id" cbor:"id"`
	Subject string            `json:"subject" yaml:"subject" msgpack:"subject" bson:"subject" cbor:"subject" escape:"true"`
	Body    []byte            `json:"body" yaml:"body" msgpack:"body" bson:"body" cbor:"body" escape:"true"`
	Tags    []string          `json:"tags" yaml:"tags" msgpack:"tags" bson:"tags" cbor:"tags" escape:"true"`
	Headers map[string]string `json:"headers" yaml:"headers" msgpack:"headers" bson:"headers" cbor:"headers" escape:"true"`
	Raw     string            `json:"raw" yaml:"raw" msgpack:"raw" bson:"raw" cbor:"raw"`
}

// Clone implements Cloner[Message].
func (m Message) Clone() Message {
	out := m
	if m.Body != nil {
		out.Body = append([]byte(nil), m.Body...)
	}
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	if m.Headers != nil {
		out.Headers = make(map[string]string, len(m.Headers))
		for k, v := range m.Headers {
			out.Headers[k] = v
		}
	}
	return out
}

// SampleMessage returns a Message whose escaped fields all contain spaces.
func SampleMessage() *Message {
	return &Message{
		ID:      "msg 1",
		Subject: "hello world",
		Body:    []byte("a b c"),
		Tags:    []string{"red fox", "blue"},
		Headers: map[string]string{"x-trace": "t 1"},
		Raw:     "left as is",
	}
}
