package token

import (
	"bytes"
	"fmt"
	"os"
)

// Provider supplies the opaque IPC auth token. The client treats the
// token as a byte blob; how it is minted and rotated belongs to the
// deployment, not to this subsystem.
type Provider interface {
	// Load returns the current token. A missing or empty token is an
	// error; the client stays unauthorized in that case.
	Load() ([]byte, error)
}

// FileProvider reads the token from a file on disk.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a Provider backed by the given file path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Load reads the token file, trimming surrounding whitespace.
func (p *FileProvider) Load() ([]byte, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", p.Path, err)
	}

	token := bytes.TrimSpace(data)
	if len(token) == 0 {
		return nil, fmt.Errorf("token file %s is empty", p.Path)
	}
	return token, nil
}
