package cbor

import (
	"errors"
	"testing"

	"github.com/zoobzio/textcodec"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Error("New() should return non-nil serializer")
	}
}

func TestContentType(t *testing.T) {
	s := New()
	if s.ContentType() != "application/cbor" {
		t.Errorf("ContentType() = %q, want %q", s.ContentType(), "application/cbor")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s := New()
	original := textcodec.New(textcodec.NewTable(
		textcodec.Pair{Original: ' ', Substitute: '1'},
		textcodec.Pair{Original: '\n', Substitute: 'n'},
	), textcodec.WithEscape(','))

	data, err := s.Marshal(textcodec.ConfigOf(original))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	restored, err := textcodec.LoadConfig(s, data)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if restored.Fingerprint() != original.Fingerprint() {
		t.Errorf("Fingerprint() = %s, want %s", restored.Fingerprint(), original.Fingerprint())
	}
	if got := restored.Encode("a b\nc"); got != "a,1b,nc" {
		t.Errorf("Encode() = %q, want %q", got, "a,1b,nc")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := textcodec.LoadConfig(New(), []byte{0xff})
	if err == nil {
		t.Fatal("LoadConfig(invalid) should return error")
	}
	if !errors.Is(err, textcodec.ErrUnmarshal) {
		t.Errorf("LoadConfig(invalid) error = %v, want ErrUnmarshal", err)
	}
}
