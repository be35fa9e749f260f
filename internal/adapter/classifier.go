package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// HTTPClassifier posts content files to an image-classification endpoint
// and reports the most likely label.
//
// The endpoint receives the file as the multipart field "file" and answers
// with a list of {"label","score"} pairs, optionally nested one level deep.
type HTTPClassifier struct {
	client *utils.HTTPClient
	url    string

	logger *logger.Logger
}

// NewHTTPClassifier returns a classifier for cfg.ClassifierURL.
func NewHTTPClassifier(cfg config.Safety, logger *logger.Logger) (*HTTPClassifier, error) {
	url, err := normalizeBaseURL(cfg.ClassifierURL)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier address: %w", err)
	}
	return &HTTPClassifier{
		client: utils.NewHTTPClient("", cfg.ClassifierTimeout),
		url:    url,
		logger: logger,
	}, nil
}

// Classify uploads the file at path and returns the highest-scoring label.
func (c *HTTPClassifier) Classify(ctx context.Context, path string) (models.Classification, error) {
	if _, err := os.Stat(path); err != nil {
		return models.Classification{}, fmt.Errorf("classify: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetFile("file", path).
		Post(c.url)
	if err != nil {
		return models.Classification{}, mapTransportError("classify "+filepath.Base(path), err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Classification{}, err
	}

	best, err := parseClassification(resp.Body())
	if err != nil {
		return models.Classification{}, err
	}

	c.logger.Debug().
		Str("file", filepath.Base(path)).
		Str("label", best.Label).
		Float64("score", best.Score).
		Msg("content classified")
	return best, nil
}

func parseClassification(body []byte) (models.Classification, error) {
	body = bytes.TrimSpace(body)

	var flat []models.Classification
	if err := json.Unmarshal(body, &flat); err != nil {
		var nested [][]models.Classification
		if nestedErr := json.Unmarshal(body, &nested); nestedErr != nil {
			var single models.Classification
			if singleErr := json.Unmarshal(body, &single); singleErr != nil || single.Label == "" {
				return models.Classification{}, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
			}
			return single, nil
		}
		for _, n := range nested {
			flat = append(flat, n...)
		}
	}

	if len(flat) == 0 {
		return models.Classification{}, ErrNoClassification
	}

	best := flat[0]
	for _, c := range flat[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, nil
}
