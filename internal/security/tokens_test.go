package security_test

import (
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GravityPDF/gravity-pdf-images/internal/security"
)

func TestGenerateAPIToken_Length(t *testing.T) {
	token, err := security.GenerateAPIToken()
	if err != nil {
		t.Fatalf("GenerateAPIToken failed: %v", err)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not valid base64: %v", err)
	}
	if len(decoded) != security.TokenLength {
		t.Fatalf("expected token length %d bytes, got %d", security.TokenLength, len(decoded))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("token is not URL-safe: %s", token)
	}
}

func TestGenerateAPIToken_Uniqueness(t *testing.T) {
	tokens := make(map[string]bool)
	for i := 0; i < 500; i++ {
		token, err := security.GenerateAPIToken()
		if err != nil {
			t.Fatalf("GenerateAPIToken failed on iteration %d: %v", i, err)
		}
		if tokens[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		tokens[token] = true
	}
}

func TestTokensEqual(t *testing.T) {
	if !security.TokensEqual("abc", "abc") {
		t.Fatal("expected identical tokens to match")
	}
	if security.TokensEqual("abc", "abd") {
		t.Fatal("expected different tokens not to match")
	}
	if security.TokensEqual("", "") {
		t.Fatal("empty tokens must never match")
	}
}

func TestRequestToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"bearer", "Authorization", "Bearer secret", "secret"},
		{"bearer lowercase", "Authorization", "bearer secret", "secret"},
		{"basic ignored", "Authorization", "Basic dXNlcjpwYXNz", ""},
		{"api token header", "X-API-Token", " secret ", "secret"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/queue", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if got := security.RequestToken(req); got != tt.want {
				t.Fatalf("RequestToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
