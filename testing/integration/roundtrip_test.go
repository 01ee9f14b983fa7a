package integration

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/zoobzio/textcodec"
	"github.com/zoobzio/textcodec/bson"
	"github.com/zoobzio/textcodec/cbor"
	"github.com/zoobzio/textcodec/json"
	"github.com/zoobzio/textcodec/msgpack"
	codectest "github.com/zoobzio/textcodec/testing"
	"github.com/zoobzio/textcodec/xml"
	"github.com/zoobzio/textcodec/yaml"
)

func TestProcessor_MarshalUnmarshal_JSON(t *testing.T) {
	testMarshalUnmarshal(t, json.New())
}

func TestProcessor_MarshalUnmarshal_YAML(t *testing.T) {
	testMarshalUnmarshal(t, yaml.New())
}

func TestProcessor_MarshalUnmarshal_MessagePack(t *testing.T) {
	testMarshalUnmarshal(t, msgpack.New())
}

func TestProcessor_MarshalUnmarshal_BSON(t *testing.T) {
	testMarshalUnmarshal(t, bson.New())
}

func TestProcessor_MarshalUnmarshal_CBOR(t *testing.T) {
	testMarshalUnmarshal(t, cbor.New())
}

func testMarshalUnmarshal(t *testing.T, s textcodec.Serializer) {
	t.Helper()

	proc, err := textcodec.NewProcessor[codectest.Message](codectest.TestCodec(t), s)
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}

	original := codectest.SampleMessage()

	data, err := proc.Marshal(context.Background(), original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !bytes.Contains(data, []byte("hello,1world")) {
		t.Errorf("%s payload should carry escaped subject", s.ContentType())
	}
	if original.Subject != "hello world" {
		t.Error("Marshal should not mutate the original")
	}

	restored, err := proc.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", restored, original)
	}
}

// XMLMessage for XML-specific tests; encoding/xml cannot carry maps.
type XMLMessage struct {
	ID      string   `xml:"id"`
	Subject string   `xml:"subject" escape:"true"`
	Tags    []string `xml:"tag" escape:"true"`
}

func (m XMLMessage) Clone() XMLMessage {
	out := m
	out.Tags = append([]string(nil), m.Tags...)
	return out
}

func TestProcessor_MarshalUnmarshal_XML(t *testing.T) {
	proc, err := textcodec.NewProcessor[XMLMessage](codectest.TestCodec(t), xml.New())
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}

	original := &XMLMessage{ID: "1", Subject: "hello world", Tags: []string{"a b", "c"}}

	data, err := proc.Marshal(context.Background(), original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !bytes.Contains(data, []byte("<subject>hello,1world</subject>")) {
		t.Errorf("payload = %s, want escaped subject", data)
	}

	restored, err := proc.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(restored, original) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", restored, original)
	}
}

func TestConfig_AcrossSerializers(t *testing.T) {
	serializers := []textcodec.Serializer{
		json.New(), xml.New(), yaml.New(), msgpack.New(), bson.New(), cbor.New(),
	}
	codecs := map[string]*textcodec.Codec{
		"space": codectest.TestCodec(t),
		"line breaks": textcodec.New(textcodec.NewTable(
			textcodec.Pair{Original: '\n', Substitute: 'n'},
			textcodec.Pair{Original: '\r', Substitute: 'r'},
		)),
		"line break substitutes": textcodec.New(textcodec.NewTable(
			textcodec.Pair{Original: 'n', Substitute: '\n'},
			textcodec.Pair{Original: 'r', Substitute: '\r'},
		)),
		"line break escape": textcodec.New(textcodec.NewTable(
			textcodec.Pair{Original: ' ', Substitute: '1'},
		), textcodec.WithEscape('\n')),
	}

	for _, s := range serializers {
		for name, original := range codecs {
			t.Run(s.ContentType()+"/"+name, func(t *testing.T) {
				data, err := s.Marshal(textcodec.ConfigOf(original))
				if err != nil {
					t.Fatalf("Marshal error: %v", err)
				}
				restored, err := textcodec.LoadConfig(s, data)
				if err != nil {
					t.Fatalf("LoadConfig error: %v", err)
				}
				if restored.Fingerprint() != original.Fingerprint() {
					t.Errorf("Fingerprint() = %s, want %s", restored.Fingerprint(), original.Fingerprint())
				}
				in := "a b\r\nc"
				if got := restored.Decode(restored.Encode(in)); got != in {
					t.Errorf("Decode(Encode(%q)) = %q", in, got)
				}
			})
		}
	}
}
