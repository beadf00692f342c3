package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes attachments below Root. They are served by the HTTP
// layer under URLPrefix.
type LocalStore struct {
	Root      string
	URLPrefix string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root, URLPrefix: "/uploads"}
}

func (s *LocalStore) Put(_ context.Context, folder, name string, body io.Reader, _ int64, _ string) (string, error) {
	rel := path.Join(folder, name)
	dst := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + rel, nil
}
