// Package discover resolves the Council backend's address. The mobile
// client found its backend via development-server metadata on the LAN;
// this package reproduces that: an explicit flag wins, then the
// environment, then a metadata file the dev server writes, then the
// configured fallback.
package discover

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Metadata is the dev-server file naming the backend host. Port
// defaults to 8000 when absent; Scheme to http.
type Metadata struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Scheme string `json:"scheme,omitempty"`
}

// BaseURL renders the metadata as a client base URL.
func (m Metadata) BaseURL() (string, error) {
	if m.Host == "" {
		return "", fmt.Errorf("metadata has no host")
	}
	scheme := m.Scheme
	if scheme == "" {
		scheme = "http"
	}
	port := m.Port
	if port == 0 {
		port = 8000
	}
	return scheme + "://" + net.JoinHostPort(m.Host, strconv.Itoa(port)), nil
}

// ReadMetadata parses the metadata JSON at path.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse server metadata: %w", err)
	}
	return &m, nil
}

// Resolve picks the backend base URL. Precedence: explicit flag value,
// COUNCIL_SERVER env, dev-server metadata file, configured fallback.
// The source of the winning value is returned for logging.
func Resolve(flagValue, metadataPath, fallback string) (url, source string) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return strings.TrimRight(v, "/"), "flag"
	}
	if v := os.Getenv("COUNCIL_SERVER"); v != "" {
		return strings.TrimRight(v, "/"), "env"
	}
	if metadataPath != "" {
		if m, err := ReadMetadata(metadataPath); err == nil {
			if u, err := m.BaseURL(); err == nil {
				return u, "metadata"
			}
		}
	}
	return strings.TrimRight(fallback, "/"), "config"
}
