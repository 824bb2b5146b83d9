package postimage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		declared string
		wantExt  string
		wantOK   bool
	}{
		{"photo.jpg", ".jpg", true},
		{"photo.JPEG", ".JPEG", true},
		{"photo.PNG", ".PNG", true},
		{"archive.tar.png", ".png", true},
		{`C:\Users\me\photo.Jpg`, ".Jpg", true},
		{"photo.gif", ".gif", false},
		{"photo.png.exe", ".exe", false},
		{"photo.jpgx", ".jpgx", false},
		{"photo", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			ext, ok := Extension(tt.declared)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNewFileNameKeepsExtensionCase(t *testing.T) {
	name, err := NewFileName("../../etc/photo.PNG", func() string { return "token" })
	require.NoError(t, err)
	assert.Equal(t, "token.PNG", name)
}

func TestNewFileNameRejectsUnsupported(t *testing.T) {
	_, err := NewFileName("notes.txt", func() string { return "token" })
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestNewFileNameIsUniqueAndShort(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		name, err := NewFileName("a.jpeg", newUUID)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".jpeg"))
		assert.LessOrEqual(t, len(name), 100)
		_, dup := seen[name]
		require.False(t, dup, "duplicate name %s", name)
		seen[name] = struct{}{}
	}
}
