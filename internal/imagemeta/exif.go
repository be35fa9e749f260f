package imagemeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"
	"unicode/utf16"
)

const (
	tagExifIFD     uint16 = 0x8769
	tagGPSIFD      uint16 = 0x8825
	tagInteropIFD  uint16 = 0xA005
	tagThumbOffset uint16 = 0x0201
	tagThumbLength uint16 = 0x0202
	tagUserComment uint16 = 0x9286

	typeLong      uint16 = 4
	typeUndefined uint16 = 7
)

var (
	exifHeader     = []byte("Exif\x00\x00")
	charCodeASCII  = []byte("ASCII\x00\x00\x00")
	charCodeUTF16  = []byte("UNICODE\x00")
	charCodeUndef  = make([]byte, 8)
	typeSizes      = map[uint16]int{1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1, 7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8}
	maxIFDEntries  = 1024
	maxExifPayload = 0xFFFF - 2 - len(exifHeader)
)

// byteOrder reads and appends TIFF integers in one endianness.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
}

// exifData is the decoded content of an EXIF APP1 segment. Values are kept
// in the byte order of the source so they can be written back verbatim.
type exifData struct {
	order     byteOrder
	ifd0      []ifdEntry
	exif      []ifdEntry
	gps       []ifdEntry
	interop   []ifdEntry
	ifd1      []ifdEntry
	thumbnail []byte
}

func newExifData() *exifData {
	return &exifData{order: binary.BigEndian}
}

func (x *exifData) empty() bool {
	return len(withoutTags(x.ifd0, tagExifIFD, tagGPSIFD)) == 0 &&
		len(withoutTags(x.exif, tagInteropIFD)) == 0 &&
		len(x.gps) == 0 && len(x.interop) == 0 && len(x.ifd1) == 0
}

type tiffReader struct {
	b       []byte
	order   byteOrder
	visited map[uint32]bool
}

func decodeExif(tiff []byte) (*exifData, error) {
	if len(tiff) < 8 {
		return nil, fmt.Errorf("%w: short tiff header", ErrMalformed)
	}
	r := tiffReader{b: tiff, visited: map[uint32]bool{}}
	switch string(tiff[:2]) {
	case "II":
		r.order = binary.LittleEndian
	case "MM":
		r.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: bad tiff byte order", ErrMalformed)
	}
	if r.order.Uint16(tiff[2:]) != 42 {
		return nil, fmt.Errorf("%w: bad tiff magic", ErrMalformed)
	}

	x := &exifData{order: r.order}
	var (
		next uint32
		err  error
	)
	if x.ifd0, next, err = r.ifd(r.order.Uint32(tiff[4:])); err != nil {
		return nil, err
	}
	if off, ok := r.pointer(x.ifd0, tagExifIFD); ok {
		if x.exif, _, err = r.ifd(off); err != nil {
			return nil, err
		}
		if off, ok := r.pointer(x.exif, tagInteropIFD); ok {
			if x.interop, _, err = r.ifd(off); err != nil {
				return nil, err
			}
		}
	}
	if off, ok := r.pointer(x.ifd0, tagGPSIFD); ok {
		if x.gps, _, err = r.ifd(off); err != nil {
			return nil, err
		}
	}
	if next != 0 {
		if x.ifd1, _, err = r.ifd(next); err != nil {
			return nil, err
		}
		off, okOff := r.pointer(x.ifd1, tagThumbOffset)
		n, okLen := r.pointer(x.ifd1, tagThumbLength)
		if okOff && okLen && uint64(off)+uint64(n) <= uint64(len(tiff)) {
			x.thumbnail = bytes.Clone(tiff[off : off+n])
		}
		x.ifd1 = withoutTags(x.ifd1, tagThumbOffset, tagThumbLength)
	}
	return x, nil
}

func (r *tiffReader) ifd(off uint32) ([]ifdEntry, uint32, error) {
	if off == 0 {
		return nil, 0, nil
	}
	if r.visited[off] {
		return nil, 0, fmt.Errorf("%w: ifd loop at %d", ErrMalformed, off)
	}
	r.visited[off] = true
	if uint64(off)+2 > uint64(len(r.b)) {
		return nil, 0, fmt.Errorf("%w: ifd offset %d out of range", ErrMalformed, off)
	}
	n := int(r.order.Uint16(r.b[off:]))
	if n > maxIFDEntries {
		return nil, 0, fmt.Errorf("%w: %d ifd entries", ErrMalformed, n)
	}
	start := int(off) + 2
	if start+12*n+4 > len(r.b) {
		return nil, 0, fmt.Errorf("%w: truncated ifd at %d", ErrMalformed, off)
	}

	entries := make([]ifdEntry, 0, n)
	for i := range n {
		e := r.b[start+12*i : start+12*i+12]
		ent := ifdEntry{
			tag:   r.order.Uint16(e[0:]),
			typ:   r.order.Uint16(e[2:]),
			count: r.order.Uint32(e[4:]),
		}
		sz, known := typeSizes[ent.typ]
		if !known {
			continue
		}
		size := uint64(sz) * uint64(ent.count)
		if size <= 4 {
			ent.value = bytes.Clone(e[8 : 8+size])
		} else {
			valOff := uint64(r.order.Uint32(e[8:]))
			if valOff+size > uint64(len(r.b)) {
				continue
			}
			ent.value = bytes.Clone(r.b[valOff : valOff+size])
		}
		entries = append(entries, ent)
	}
	return entries, r.order.Uint32(r.b[start+12*n:]), nil
}

func (r *tiffReader) pointer(entries []ifdEntry, tag uint16) (uint32, bool) {
	i := slices.IndexFunc(entries, func(e ifdEntry) bool { return e.tag == tag })
	if i < 0 || entries[i].typ != typeLong || len(entries[i].value) != 4 {
		return 0, false
	}
	return r.order.Uint32(entries[i].value), true
}

func withoutTags(entries []ifdEntry, tags ...uint16) []ifdEntry {
	return slices.DeleteFunc(slices.Clone(entries), func(e ifdEntry) bool {
		return slices.Contains(tags, e.tag)
	})
}

func (x *exifData) long(tag uint16, v uint32) ifdEntry {
	return ifdEntry{tag: tag, typ: typeLong, count: 1, value: x.order.AppendUint32(nil, v)}
}

func ifdSize(entries []ifdEntry) int {
	n := 2 + 12*len(entries) + 4
	for _, e := range entries {
		if len(e.value) > 4 {
			n += len(e.value) + len(e.value)%2
		}
	}
	return n
}

// encode lays the directories out one after another: IFD0, Exif, GPS,
// Interop, IFD1, thumbnail. It returns nil when nothing is left to store.
func (x *exifData) encode() []byte {
	if x.empty() {
		return nil
	}
	ifd0 := withoutTags(x.ifd0, tagExifIFD, tagGPSIFD)
	exif := withoutTags(x.exif, tagInteropIFD)
	gps := slices.Clone(x.gps)
	interop := slices.Clone(x.interop)
	ifd1 := withoutTags(x.ifd1, tagThumbOffset, tagThumbLength)

	if len(interop) > 0 {
		exif = append(exif, x.long(tagInteropIFD, 0))
	}
	if len(exif) > 0 {
		ifd0 = append(ifd0, x.long(tagExifIFD, 0))
	}
	if len(gps) > 0 {
		ifd0 = append(ifd0, x.long(tagGPSIFD, 0))
	}
	if len(ifd1) > 0 && len(x.thumbnail) > 0 {
		ifd1 = append(ifd1, x.long(tagThumbOffset, 0), x.long(tagThumbLength, uint32(len(x.thumbnail))))
	}

	dirs := [][]ifdEntry{ifd0, exif, gps, interop, ifd1}
	offsets := make([]uint32, len(dirs))
	pos := uint32(8)
	for i, d := range dirs {
		if i > 0 && len(d) == 0 {
			continue
		}
		offsets[i] = pos
		pos += uint32(ifdSize(d))
	}
	thumbOff := pos

	set := func(entries []ifdEntry, tag uint16, v uint32) {
		for i := range entries {
			if entries[i].tag == tag {
				entries[i].value = x.order.AppendUint32(nil, v)
			}
		}
	}
	set(ifd0, tagExifIFD, offsets[1])
	set(ifd0, tagGPSIFD, offsets[2])
	set(exif, tagInteropIFD, offsets[3])
	set(ifd1, tagThumbOffset, thumbOff)

	out := make([]byte, 8, pos+uint32(len(x.thumbnail)))
	if x.order == binary.LittleEndian {
		copy(out, "II")
	} else {
		copy(out, "MM")
	}
	x.order.PutUint16(out[2:], 42)
	x.order.PutUint32(out[4:], 8)

	for i, d := range dirs {
		if i > 0 && len(d) == 0 {
			continue
		}
		var next uint32
		if i == 0 && len(ifd1) > 0 {
			next = offsets[4]
		}
		out = x.appendIFD(out, d, next)
	}
	if len(ifd1) > 0 {
		out = append(out, x.thumbnail...)
	}
	return out
}

func (x *exifData) appendIFD(out []byte, entries []ifdEntry, next uint32) []byte {
	slices.SortStableFunc(entries, func(a, b ifdEntry) int { return int(a.tag) - int(b.tag) })
	base := uint32(len(out))
	dataPos := base + uint32(2+12*len(entries)+4)

	out = x.order.AppendUint16(out, uint16(len(entries)))
	var data []byte
	for _, e := range entries {
		out = x.order.AppendUint16(out, e.tag)
		out = x.order.AppendUint16(out, e.typ)
		out = x.order.AppendUint32(out, e.count)
		if len(e.value) <= 4 {
			var inline [4]byte
			copy(inline[:], e.value)
			out = append(out, inline[:]...)
			continue
		}
		out = x.order.AppendUint32(out, dataPos+uint32(len(data)))
		data = append(data, e.value...)
		if len(e.value)%2 == 1 {
			data = append(data, 0)
		}
	}
	out = x.order.AppendUint32(out, next)
	return append(out, data...)
}

// userComment decodes the UserComment field of the Exif directory.
func (x *exifData) userComment() (string, bool) {
	i := slices.IndexFunc(x.exif, func(e ifdEntry) bool { return e.tag == tagUserComment })
	if i < 0 {
		return "", false
	}
	v := x.exif[i].value
	if len(v) < 8 {
		return string(bytes.TrimRight(v, "\x00 ")), true
	}
	code, body := v[:8], v[8:]
	switch {
	case bytes.Equal(code, charCodeASCII), bytes.Equal(code, charCodeUndef):
		return string(bytes.TrimRight(body, "\x00 ")), true
	case bytes.Equal(code, charCodeUTF16):
		u := make([]uint16, len(body)/2)
		for j := range u {
			u[j] = x.order.Uint16(body[2*j:])
		}
		return string(bytes.TrimRight([]byte(string(utf16.Decode(u))), "\x00 ")), true
	default:
		return string(v), true
	}
}

func (x *exifData) setUserComment(s string) {
	x.exif = withoutTags(x.exif, tagUserComment)
	value := append(bytes.Clone(charCodeASCII), s...)
	x.exif = append(x.exif, ifdEntry{
		tag:   tagUserComment,
		typ:   typeUndefined,
		count: uint32(len(value)),
		value: value,
	})
}

func (x *exifData) removeUserComment() {
	x.exif = withoutTags(x.exif, tagUserComment)
}
