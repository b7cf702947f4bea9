package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCredentials_Header(t *testing.T) {
	creds := &Credentials{APIKey: "test-key"}

	h := creds.Header()
	if got := h.Get(HeaderName); got != "test-key" {
		t.Errorf("%s = %q, want %q", HeaderName, got, "test-key")
	}
	if len(h) != 1 {
		t.Errorf("len(header) = %d, want 1", len(h))
	}
}

func TestCredentials_EmptyKey(t *testing.T) {
	var nilCreds *Credentials
	if h := nilCreds.Header(); len(h) != 0 {
		t.Errorf("nil credentials header = %v, want empty", h)
	}

	if h := (&Credentials{}).Header(); len(h) != 0 {
		t.Errorf("empty key header = %v, want empty", h)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Run("inline key wins", func(t *testing.T) {
		creds, err := LoadCredentials("inline", "/nonexistent/key")
		if err != nil {
			t.Fatalf("LoadCredentials failed: %v", err)
		}
		if creds.APIKey != "inline" {
			t.Errorf("APIKey = %q, want %q", creds.APIKey, "inline")
		}
	})

	t.Run("key file", func(t *testing.T) {
		path := writeTempFile(t, "  file-key  \nsecond line ignored\n")

		creds, err := LoadCredentials("", path)
		if err != nil {
			t.Fatalf("LoadCredentials failed: %v", err)
		}
		if creds.APIKey != "file-key" {
			t.Errorf("APIKey = %q, want %q", creds.APIKey, "file-key")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := LoadCredentials("", "")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "required") {
			t.Errorf("error = %v, want mention of required", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCredentials("", filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, "\n\n")
		_, err := LoadCredentials("", path)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("error = %v, want mention of empty", err)
		}
	})
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.key")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
