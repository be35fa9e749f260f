package imagemeta

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrMalformed         = errors.New("malformed image metadata")
	ErrSegmentTooLarge   = errors.New("metadata segment too large")
)
