package thumbnail

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format (only JPEG and PNG accepted)")
	ErrEmptyUpload       = errors.New("empty image upload")
	ErrInvalidName       = errors.New("invalid thumbnail name")
)
