package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bodycomp-sync/internal/ports/fitness"
)

// FileStore implementa fitness.TokenStore sobre un único archivo en disco.
// Sin locking: el proceso es el único dueño del archivo (dispositivo
// single-user); un login concurrente podría pisar el token y no pasa nada,
// el siguiente submit re-loguea.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("tokenstore: empty path")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fitness.ErrNoToken
		}
		return nil, fmt.Errorf("tokenstore: read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return nil, fitness.ErrNoToken
	}
	return raw, nil
}

func (s *FileStore) Save(_ context.Context, raw []byte) error {
	if len(raw) == 0 {
		return errors.New("tokenstore: refusing to save empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: mkdir: %w", err)
	}
	// 0600: el token equivale a la sesión de la cuenta.
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", s.path, err)
	}
	return nil
}
