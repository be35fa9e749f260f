package imagemeta

import "bytes"

// Format is an image container format recognised by its magic bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
	jpegSOI      = []byte{0xFF, 0xD8}
)

// Detect identifies the container format of data. File extensions are not
// consulted.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return FormatPNG
	case bytes.HasPrefix(data, jpegSOI):
		return FormatJPEG
	default:
		return FormatUnknown
	}
}
