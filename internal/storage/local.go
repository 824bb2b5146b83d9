package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files under Root on the local filesystem.
type Local struct {
	Root string
}

func NewLocal(root string) *Local {
	return &Local{Root: root}
}

// EnsureRoot creates Root if needed. Concurrent callers all succeed.
func (l *Local) EnsureRoot() error {
	if err := os.MkdirAll(l.Root, 0o755); err != nil {
		return fmt.Errorf("create storage root: %w", err)
	}
	return nil
}

func (l *Local) Save(ctx context.Context, name string, r io.Reader) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}
	if err := l.EnsureRoot(); err != nil {
		return err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", name, ErrExists)
		}
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, withContext(ctx, r)); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (l *Local) Remove(_ context.Context, name string) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// path keeps every object directly under Root.
func (l *Local) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(l.Root, name), nil
}
