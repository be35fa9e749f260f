// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package models

import (
	"bytes"
	"encoding/json"
	"slices"
)

// QueueEntry is a job as submitted to the execution engine. Its shape is the
// one the engine expects; ownership is tracked alongside it by the queue and
// is not part of the entry.
type QueueEntry struct {
	Number           float64         `json:"number"`
	PromptID         string          `json:"prompt_id"`
	Prompt           json.RawMessage `json:"prompt"`
	ExtraData        map[string]any  `json:"extra_data,omitempty"`
	OutputsToExecute []string        `json:"outputs_to_execute,omitempty"`
}

// Clone returns a deep copy of the entry so callers cannot reach queue
// internals through it.
func (e QueueEntry) Clone() QueueEntry {
	c := e
	c.Prompt = bytes.Clone(e.Prompt)
	c.OutputsToExecute = slices.Clone(e.OutputsToExecute)
	if e.ExtraData != nil {
		c.ExtraData = cloneValue(e.ExtraData).(map[string]any)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = cloneValue(val)
		}
		return s
	case json.RawMessage:
		return bytes.Clone(t)
	default:
		return v
	}
}

// Task is a dequeued entry handed to a worker. Owner is the identity the
// entry was submitted under and must be carried through execution.
type Task struct {
	ID    int64
	Owner string
	Entry QueueEntry
}

// HistoryStatus is the completion status of an executed job.
type HistoryStatus struct {
	StatusStr string `json:"status_str"`
	Completed bool   `json:"completed"`
	Messages  []any  `json:"messages"`
}

// HistoryResult is what a worker reports back for a finished task.
type HistoryResult struct {
	Outputs map[string]any `json:"outputs"`
	Status  HistoryStatus  `json:"status"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// HistoryRecord is an archived job.
type HistoryRecord struct {
	PromptID string         `json:"prompt_id"`
	Owner    string         `json:"user_id"`
	Prompt   QueueEntry     `json:"prompt"`
	Outputs  map[string]any `json:"outputs"`
	Status   HistoryStatus  `json:"status"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// Clone returns a deep copy of the record.
func (r HistoryRecord) Clone() HistoryRecord {
	c := r
	c.Prompt = r.Prompt.Clone()
	if r.Outputs != nil {
		c.Outputs = cloneValue(r.Outputs).(map[string]any)
	}
	if r.Meta != nil {
		c.Meta = cloneValue(r.Meta).(map[string]any)
	}
	c.Status.Messages = cloneValue(r.Status.Messages).([]any)
	return c
}

// HistoryQuery selects a window of the caller's history. A negative Offset
// means "the last MaxItems records"; MaxItems <= 0 means no limit.
type HistoryQuery struct {
	PromptID string
	MaxItems int
	Offset   int
}

// HistoryPage is an ordered window of history records. It encodes as a JSON
// object keyed by prompt id, keeping the record order.
type HistoryPage []HistoryRecord

func (p HistoryPage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.PromptID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
