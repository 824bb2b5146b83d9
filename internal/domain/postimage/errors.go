package postimage

import "errors"

var (
	ErrMissingFile         = errors.New("file is missing")
	ErrEmptyFile           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFileType = errors.New("file type is not allowed")

	ErrStorageWrite      = errors.New("storage write failed")
	ErrPersistenceCommit = errors.New("persistence commit failed")

	ErrNotFound = errors.New("post image not found")
)

// IsClientError reports whether err was caused by the uploaded payload itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrUnsupportedFileType)
}
