package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/domain/repository"
)

// FileThemeStore keeps the theme in a small JSON document,
// {"dashboard-theme":"dark"}, so it survives restarts.
type FileThemeStore struct {
	path string
	mu   sync.Mutex
}

// NewFileThemeStore creates a file-backed theme store.
func NewFileThemeStore(path string) repository.ThemeStore {
	return &FileThemeStore{path: path}
}

func (s *FileThemeStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", repository.ErrThemeNotFound
		}
		return "", fmt.Errorf("read theme file: %w", err)
	}

	doc := map[string]string{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", fmt.Errorf("parse theme file: %w", err)
	}
	v, ok := doc[models.ThemeStorageKey]
	if !ok {
		return "", repository.ErrThemeNotFound
	}
	return v, nil
}

// Save writes through a temp file and rename so a crash never leaves a
// half-written document.
func (s *FileThemeStore) Save(_ context.Context, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create theme dir: %w", err)
		}
	}

	b, err := json.Marshal(map[string]string{models.ThemeStorageKey: string(theme)})
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".theme-*.json")
	if err != nil {
		return fmt.Errorf("create temp theme file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write theme file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close theme file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace theme file: %w", err)
	}
	return nil
}
