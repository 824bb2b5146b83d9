package post

import "errors"

var (
	ErrNotFound   = errors.New("post not found")
	ErrValidation = errors.New("validation error")
)
