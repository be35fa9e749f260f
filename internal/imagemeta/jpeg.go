package imagemeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	markerSOS  = 0xDA
	markerEOI  = 0xD9
	markerAPP0 = 0xE0
	markerAPP1 = 0xE1
)

type jpegSegment struct {
	marker byte
	raw    []byte
}

func (s jpegSegment) isExif() bool {
	return s.marker == markerAPP1 && len(s.raw) >= 4+len(exifHeader) &&
		bytes.Equal(s.raw[4:4+len(exifHeader)], exifHeader)
}

// splitJPEG returns the header segments up to the first scan. Everything from
// SOS on is returned untouched as tail.
func splitJPEG(b []byte) (segs []jpegSegment, tail []byte, err error) {
	if !bytes.HasPrefix(b, jpegSOI) {
		return nil, nil, ErrUnsupportedFormat
	}
	pos := 2
	for pos < len(b) {
		if b[pos] != 0xFF {
			return nil, nil, fmt.Errorf("%w: expected jpeg marker at %d", ErrMalformed, pos)
		}
		start := pos
		for pos < len(b) && b[pos] == 0xFF {
			pos++
		}
		if pos >= len(b) {
			break
		}
		m := b[pos]
		pos++
		switch {
		case m == markerSOS || m == markerEOI:
			return segs, b[start:], nil
		case m == 0x01 || (m >= 0xD0 && m <= 0xD7):
			segs = append(segs, jpegSegment{marker: m, raw: b[start:pos]})
			continue
		}
		if pos+2 > len(b) {
			return nil, nil, fmt.Errorf("%w: truncated jpeg segment", ErrMalformed)
		}
		n := int(binary.BigEndian.Uint16(b[pos:]))
		if n < 2 || pos+n > len(b) {
			return nil, nil, fmt.Errorf("%w: jpeg segment length %d out of range", ErrMalformed, n)
		}
		pos += n
		segs = append(segs, jpegSegment{marker: m, raw: b[start:pos]})
	}
	return segs, nil, nil
}

func readJPEGExif(b []byte) (*exifData, error) {
	segs, _, err := splitJPEG(b)
	if err != nil {
		return nil, err
	}
	for _, s := range segs {
		if s.isExif() {
			return decodeExif(s.raw[4+len(exifHeader):])
		}
	}
	return nil, nil
}

// rewriteJPEGExif passes the decoded EXIF block (or a fresh one) to edit and
// writes the result back. The segment is replaced in place, or inserted after
// SOI and any leading APP0 segments. An EXIF block left empty is dropped.
func rewriteJPEGExif(b []byte, edit func(*exifData)) ([]byte, error) {
	segs, tail, err := splitJPEG(b)
	if err != nil {
		return nil, err
	}

	idx := -1
	x := newExifData()
	for i, s := range segs {
		if s.isExif() {
			idx = i
			if x, err = decodeExif(s.raw[4+len(exifHeader):]); err != nil {
				return nil, err
			}
			break
		}
	}
	edit(x)

	var seg []byte
	if tiff := x.encode(); tiff != nil {
		if len(tiff) > maxExifPayload {
			return nil, ErrSegmentTooLarge
		}
		seg = make([]byte, 4, 4+len(exifHeader)+len(tiff))
		seg[0], seg[1] = 0xFF, markerAPP1
		binary.BigEndian.PutUint16(seg[2:], uint16(2+len(exifHeader)+len(tiff)))
		seg = append(seg, exifHeader...)
		seg = append(seg, tiff...)
	}

	insertAt := idx
	if idx < 0 {
		insertAt = 0
		for insertAt < len(segs) && segs[insertAt].marker == markerAPP0 {
			insertAt++
		}
	}

	out := bytes.NewBuffer(make([]byte, 0, len(b)+len(seg)))
	out.Write(jpegSOI)
	for i, s := range segs {
		if i == insertAt && seg != nil {
			out.Write(seg)
		}
		if i == idx {
			continue
		}
		out.Write(s.raw)
	}
	if insertAt == len(segs) && seg != nil {
		out.Write(seg)
	}
	out.Write(tail)
	return out.Bytes(), nil
}
