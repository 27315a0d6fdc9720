package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CredentialFileName is the legacy credential file written by pre-1.0 builds
// next to the session snapshot.
const CredentialFileName = "credentials.json"

// CredentialStore memoizes the legacy credential lookup. The file is read at
// most once per process; the result, including a negative one, is cached
// behind the mutex. Construct one and share it by reference with whatever
// component needs the fallback.
type CredentialStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	token  string
	ok     bool
}

type legacyCredentials struct {
	Token string `json:"token"`
}

// NewCredentialStore creates a store reading from the given file path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// DefaultCredentialPath returns the legacy credential file location under
// the data directory.
func DefaultCredentialPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CredentialFileName), nil
}

// Token returns the legacy token if one exists. Missing, unreadable or
// malformed files all read as "no token".
func (c *CredentialStore) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		c.token, c.ok = c.read()
		c.loaded = true
	}
	return c.token, c.ok
}

func (c *CredentialStore) read() (string, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", false
	}
	var creds legacyCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", false
	}
	token := strings.TrimSpace(creds.Token)
	if token == "" {
		return "", false
	}
	return token, true
}

// Reset clears the memoized value so tests can exercise the load path again.
func (c *CredentialStore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.token = ""
	c.ok = false
}
