package queue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const filenamePrefixKey = "filename_prefix"

// ScopeOutputPaths rewrites every "filename_prefix" string found anywhere in
// prompt to "<owner>/<prefix>", so that outputs land in the owner's folder.
// Prefixes already scoped to owner are left alone.
func ScopeOutputPaths(prompt json.RawMessage, owner string) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(prompt))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrompt, err)
	}
	switch doc.(type) {
	case map[string]any, []any:
	default:
		return nil, ErrInvalidPrompt
	}

	scopePrefixes(doc, owner+"/")
	return json.Marshal(doc)
}

func scopePrefixes(v any, prefix string) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if s, ok := val.(string); ok && k == filenamePrefixKey {
				if !strings.HasPrefix(s, prefix) {
					t[k] = prefix + s
				}
				continue
			}
			scopePrefixes(val, prefix)
		}
	case []any:
		for _, val := range t {
			scopePrefixes(val, prefix)
		}
	}
}
