// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package models

// LabelNSFW is the classifier label that marks content as unsafe.
const LabelNSFW = "nsfw"

// LabelManual is the label recorded for reviewer overrides.
const LabelManual = "manual"

// SafetyTag is a classification result persisted inside a content file.
type SafetyTag struct {
	IsNSFW bool    `json:"is_nsfw"`
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
}

// Classification is the raw output of the content classifier.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
