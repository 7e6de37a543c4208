package location

import (
	"errors"
	"testing"
)

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", ""},
		{"NG", "NG"},
		{"ng", "NG"},
		{"Nigeria", "NG"},
		{"nigeria", "NG"},
		{"United Kingdom", "GB"},
		{"uk", "GB"},
		{"usa", "US"},
		{"South Korea", "KR"},
		{" JP ", "JP"},
	}

	for _, tc := range tests {
		got, err := ResolveCountry(tc.token)
		if err != nil {
			t.Fatalf("ResolveCountry(%q) unexpected error: %v", tc.token, err)
		}
		if got != tc.want {
			t.Errorf("ResolveCountry(%q) = %q, want %q", tc.token, got, tc.want)
		}
	}
}

func TestResolveCountryUnknown(t *testing.T) {
	for _, token := range []string{"Atlantis", "ZZ", "northern hemisphere"} {
		_, err := ResolveCountry(token)
		if !errors.Is(err, ErrUnknownCountry) {
			t.Errorf("ResolveCountry(%q) error = %v, want ErrUnknownCountry", token, err)
		}
	}
}
