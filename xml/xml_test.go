package xml

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
	if s.ContentType() != "application/xml" {
		t.Errorf("ContentType() = %q, want %q", s.ContentType(), "application/xml")
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
	_, err := textcodec.LoadConfig(New(), []byte("invalid xml"))
	if err == nil {
		t.Fatal("LoadConfig(invalid) should return error")
	}
	if !errors.Is(err, textcodec.ErrUnmarshal) {
		t.Errorf("LoadConfig(invalid) error = %v, want ErrUnmarshal", err)
	}
}

func TestMarshal_UnencodableConfig(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		cfg  textcodec.Config
	}{
		{"nul original", textcodec.Config{Escape: ",", Substitutions: []textcodec.Substitution{{From: "\x00", To: "0"}}}},
		{"control substitute", textcodec.Config{Escape: ",", Substitutions: []textcodec.Substitution{{From: " ", To: "\x01"}}}},
		{"control escape", textcodec.Config{Escape: "\x1b"}},
		{"noncharacter", textcodec.Config{Escape: ",", Substitutions: []textcodec.Substitution{{From: "\uFFFE", To: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Marshal(tt.cfg); !errors.Is(err, ErrUnencodable) {
				t.Errorf("Marshal() error = %v, want ErrUnencodable", err)
			}
			if _, err := s.Marshal(&tt.cfg); !errors.Is(err, ErrUnencodable) {
				t.Errorf("Marshal(&cfg) error = %v, want ErrUnencodable", err)
			}
		})
	}
}

func TestConfigRoundTrip_WhitespaceControls(t *testing.T) {
	s := New()
	original := textcodec.New(textcodec.NewTable(
		textcodec.Pair{Original: '\t', Substitute: 't'},
		textcodec.Pair{Original: '\n', Substitute: 'n'},
		textcodec.Pair{Original: '\r', Substitute: 'r'},
	))

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
}
