// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package imagemeta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/simcop2387/usgromana/models"
)

const (
	pngKeyNSFW  = "usgromana_nsfw"
	pngKeyScore = "usgromana_nsfw_score"
	pngKeyLabel = "usgromana_nsfw_label"

	commentPrefix = "USGROMANA_NSFW:"
)

var pngKeys = []string{pngKeyNSFW, pngKeyScore, pngKeyLabel}

type commentTag struct {
	IsNSFW bool    `json:"is_nsfw"`
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
}

// Decode extracts the safety tag from an encoded image. A missing or
// unparsable tag is reported as absent without error.
func Decode(data []byte) (models.SafetyTag, bool, error) {
	switch Detect(data) {
	case FormatPNG:
		return decodePNG(data)
	case FormatJPEG:
		return decodeJPEG(data)
	default:
		return models.SafetyTag{}, false, ErrUnsupportedFormat
	}
}

func decodePNG(data []byte) (models.SafetyTag, bool, error) {
	text, err := readPNGText(data, pngKeys...)
	if err != nil {
		return models.SafetyTag{}, false, err
	}
	rawNSFW, ok1 := text[pngKeyNSFW]
	rawScore, ok2 := text[pngKeyScore]
	label, ok3 := text[pngKeyLabel]
	if !ok1 || !ok2 || !ok3 {
		return models.SafetyTag{}, false, nil
	}
	isNSFW, err := strconv.ParseBool(rawNSFW)
	if err != nil {
		return models.SafetyTag{}, false, nil
	}
	score, err := strconv.ParseFloat(rawScore, 64)
	if err != nil {
		return models.SafetyTag{}, false, nil
	}
	return models.SafetyTag{IsNSFW: isNSFW, Score: score, Label: label}, true, nil
}

func decodeJPEG(data []byte) (models.SafetyTag, bool, error) {
	x, err := readJPEGExif(data)
	if err != nil || x == nil {
		return models.SafetyTag{}, false, err
	}
	comment, ok := x.userComment()
	if !ok {
		return models.SafetyTag{}, false, nil
	}
	payload, ok := strings.CutPrefix(comment, commentPrefix)
	if !ok {
		return models.SafetyTag{}, false, nil
	}
	var ct commentTag
	if err = json.Unmarshal([]byte(payload), &ct); err != nil {
		return models.SafetyTag{}, false, nil
	}
	return models.SafetyTag(ct), true, nil
}

// Encode returns data with tag stored in it, replacing any previous tag.
func Encode(data []byte, tag models.SafetyTag) ([]byte, error) {
	switch Detect(data) {
	case FormatPNG:
		return rewritePNGText(data, map[string]string{
			pngKeyNSFW:  strconv.FormatBool(tag.IsNSFW),
			pngKeyScore: strconv.FormatFloat(tag.Score, 'g', -1, 64),
			pngKeyLabel: tag.Label,
		}, nil)
	case FormatJPEG:
		payload, err := json.Marshal(commentTag(tag))
		if err != nil {
			return nil, fmt.Errorf("encode tag: %w", err)
		}
		return rewriteJPEGExif(data, func(x *exifData) {
			x.setUserComment(commentPrefix + string(payload))
		})
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Strip removes the safety tag from data. The boolean reports whether a tag
// was present. A JPEG UserComment not written by Encode is left alone.
func Strip(data []byte) ([]byte, bool, error) {
	_, present, err := Decode(data)
	if err != nil || !present {
		return data, false, err
	}
	switch Detect(data) {
	case FormatPNG:
		out, err := rewritePNGText(data, nil, pngKeys)
		return out, err == nil, err
	default:
		out, err := rewriteJPEGExif(data, func(x *exifData) { x.removeUserComment() })
		return out, err == nil, err
	}
}

// ReadTag reads the safety tag stored in the image at path.
func ReadTag(path string) (models.SafetyTag, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.SafetyTag{}, false, err
	}
	return Decode(data)
}

// WriteTag stores tag in the image at path, rewriting the file atomically.
func WriteTag(path string, tag models.SafetyTag) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := Encode(data, tag)
	if err != nil {
		return err
	}
	return replaceFile(path, out)
}

// ClearTag removes the safety tag from the image at path. The file is left
// untouched when it carries no tag.
func ClearTag(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, removed, err := Strip(data)
	if err != nil || !removed {
		return false, err
	}
	if err = replaceFile(path, out); err != nil {
		return false, err
	}
	return true, nil
}

// IsSupportedPath reports whether path has an extension of a format that
// can carry a tag.
func IsSupportedPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func replaceFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
