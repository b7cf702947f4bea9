// Package auth provides Boundless API authentication using a static API key.
package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "Boundless-API-Key"

// Credentials holds the API key attached to every request.
type Credentials struct {
	APIKey string
}

// LoadCredentials returns credentials from an inline key or, if apiKey is
// empty, from the first line of keyPath.
func LoadCredentials(apiKey, keyPath string) (*Credentials, error) {
	if apiKey != "" {
		return &Credentials{APIKey: apiKey}, nil
	}
	if keyPath == "" {
		return nil, fmt.Errorf("API key or key file is required")
	}

	key, err := LoadKeyFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("load key file: %w", err)
	}

	return &Credentials{APIKey: key}, nil
}

// LoadKeyFile reads an API key from a file, ignoring surrounding whitespace.
func LoadKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}

	key, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("key file %s is empty", path)
	}

	return key, nil
}

// Header returns the headers to attach to a request. An empty key yields an
// empty header set.
func (c *Credentials) Header() http.Header {
	h := http.Header{}
	if c != nil && c.APIKey != "" {
		h.Set(HeaderName, c.APIKey)
	}
	return h
}
