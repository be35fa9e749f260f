package imagemeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"slices"
	"sort"
)

// pngChunk keeps the raw bytes of a chunk (length, type, data, crc) so that
// untouched chunks are written back unchanged.
type pngChunk struct {
	typ string
	raw []byte
}

func (c pngChunk) data() []byte {
	return c.raw[8 : len(c.raw)-4]
}

// splitPNG splits a PNG stream into chunks. Bytes after IEND are returned
// as trailer.
func splitPNG(b []byte) (chunks []pngChunk, trailer []byte, err error) {
	if !bytes.HasPrefix(b, pngSignature) {
		return nil, nil, ErrUnsupportedFormat
	}
	pos := len(pngSignature)
	for {
		if len(b)-pos < 12 {
			return nil, nil, fmt.Errorf("%w: truncated png chunk at %d", ErrMalformed, pos)
		}
		n := int(binary.BigEndian.Uint32(b[pos:]))
		end := pos + 12 + n
		if n < 0 || end > len(b) || end < pos {
			return nil, nil, fmt.Errorf("%w: png chunk length %d out of range", ErrMalformed, n)
		}
		c := pngChunk{typ: string(b[pos+4 : pos+8]), raw: b[pos:end]}
		chunks = append(chunks, c)
		pos = end
		if c.typ == "IEND" {
			return chunks, b[pos:], nil
		}
	}
}

// textKeyword returns the keyword of a tEXt, zTXt or iTXt chunk.
func textKeyword(c pngChunk) (string, bool) {
	switch c.typ {
	case "tEXt", "zTXt", "iTXt":
	default:
		return "", false
	}
	k, _, ok := bytes.Cut(c.data(), []byte{0})
	if !ok {
		return "", false
	}
	return string(k), true
}

// textValue decodes the value of a tEXt chunk, or of an uncompressed iTXt
// chunk. Compressed text is reported as absent.
func textValue(c pngChunk) (string, bool) {
	_, rest, ok := bytes.Cut(c.data(), []byte{0})
	if !ok {
		return "", false
	}
	switch c.typ {
	case "tEXt":
		return latin1ToString(rest), true
	case "iTXt":
		// compression flag, compression method, language\0, translated keyword\0, text
		if len(rest) < 2 || rest[0] != 0 {
			return "", false
		}
		rest = rest[2:]
		for range 2 {
			_, after, ok := bytes.Cut(rest, []byte{0})
			if !ok {
				return "", false
			}
			rest = after
		}
		return string(rest), true
	default:
		return "", false
	}
}

func latin1ToString(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// readPNGText returns the values of the requested text keywords. The first
// chunk carrying a keyword wins.
func readPNGText(b []byte, keys ...string) (map[string]string, error) {
	chunks, _, err := splitPNG(b)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, c := range chunks {
		k, ok := textKeyword(c)
		if !ok || !slices.Contains(keys, k) {
			continue
		}
		if _, seen := out[k]; seen {
			continue
		}
		if v, ok := textValue(c); ok {
			out[k] = v
		}
	}
	return out, nil
}

func newTextChunk(key, value string) pngChunk {
	data := make([]byte, 0, len(key)+1+len(value))
	data = append(data, key...)
	data = append(data, 0)
	data = append(data, value...)

	raw := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(raw, uint32(len(data)))
	copy(raw[4:], "tEXt")
	raw = append(raw, data...)
	raw = binary.BigEndian.AppendUint32(raw, crc32.ChecksumIEEE(raw[4:]))
	return pngChunk{typ: "tEXt", raw: raw}
}

// rewritePNGText removes every text chunk whose keyword is in drop or set,
// then inserts one tEXt chunk per entry of set just before IEND. All other
// chunks are kept unchanged and in order.
func rewritePNGText(b []byte, set map[string]string, drop []string) ([]byte, error) {
	chunks, trailer, err := splitPNG(b)
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(make([]byte, 0, len(b)+256))
	out.Write(pngSignature)

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, c := range chunks {
		if k, ok := textKeyword(c); ok {
			if _, replaced := set[k]; replaced || slices.Contains(drop, k) {
				continue
			}
		}
		if c.typ == "IEND" {
			for _, k := range keys {
				out.Write(newTextChunk(k, set[k]).raw)
			}
		}
		out.Write(c.raw)
	}
	out.Write(trailer)
	return out.Bytes(), nil
}
