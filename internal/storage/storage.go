// Package storage holds the backends uploaded files are written to.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrExists is returned when an object with the same name is already stored.
var ErrExists = errors.New("object already exists")

// Storage persists named byte streams. Implementations must be safe for
// concurrent use.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Remove(ctx context.Context, name string) error
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

// withContext stops a copy as soon as ctx is done.
func withContext(ctx context.Context, r io.Reader) io.Reader {
	return &contextReader{ctx: ctx, r: r}
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ContentType guesses the MIME type of a stored object from its name.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
