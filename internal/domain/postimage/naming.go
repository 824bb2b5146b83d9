package postimage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// AllowedExtensions are compared against the lowercased declared extension.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png"}

// Extension returns the declared file extension with its original case and
// whether it is on the allow-list.
func Extension(declared string) (string, bool) {
	ext := filepath.Ext(declared)
	return ext, lo.Contains(AllowedExtensions, strings.ToLower(ext))
}

// NewFileName builds the stored name: a fresh token followed by the declared
// extension. The caller's name is never used beyond its extension.
func NewFileName(declared string, newID func() string) (string, error) {
	ext, ok := Extension(declared)
	if !ok {
		return "", ErrUnsupportedFileType
	}
	return newID() + ext, nil
}

func newUUID() string {
	return uuid.New().String()
}
