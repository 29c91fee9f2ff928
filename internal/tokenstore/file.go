package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists tokens as a user-only readable JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created lazily.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(tokens)
}

func (s *FileStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.read()
	if err != nil {
		return err
	}
	tokens.Access = access
	return s.write(tokens)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: clear %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) read() (Tokens, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Tokens{}, nil
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("tokenstore: read %s: %w", s.path, err)
	}

	var tokens Tokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("tokenstore: decode %s: %w", s.path, err)
	}
	return tokens, nil
}

// write replaces the file atomically so a crash never leaves half a token.
func (s *FileStore) write(tokens Tokens) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("tokenstore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("tokenstore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("tokenstore: rename: %w", err)
	}
	return nil
}
