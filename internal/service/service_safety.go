// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/simcop2387/usgromana/internal/adapter"
	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/imagemeta"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/models"
)

// safetyService caches classification results inside the content files
// themselves and memoizes the per-user enforcement decision in memory.
type safetyService struct {
	users store.UserRepository

	// memo maps a lowercased username to its enforcement decision. A
	// lookup only fills it when gen is unchanged since the lookup began.
	memoMu sync.Mutex
	memo   *lru.Cache[string, bool]
	gen    uint64

	classifier func() (Classifier, error)
	flight     singleflight.Group

	// locks serialize tag writes per file path.
	locks []sync.Mutex

	threshold float64
	outputDir string

	logger *logger.Logger
}

// NewSafetyService builds the safety service. factory is invoked at most
// once, on the first classification.
func NewSafetyService(users store.UserRepository, factory ClassifierFactory, cfg config.Safety, outputDir string, logger *logger.Logger) (SafetyService, error) {
	memo, err := lru.New[string, bool](max(cfg.EnforcementCacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("create enforcement memo: %w", err)
	}
	if factory == nil {
		factory = func() (Classifier, error) { return nil, nil }
	}
	s := &safetyService{
		users:      users,
		memo:       memo,
		classifier: sync.OnceValues(factory),
		locks:      make([]sync.Mutex, max(cfg.LockStripes, 1)),
		threshold:  cfg.Threshold,
		outputDir:  outputDir,
		logger:     logger,
	}
	if users != nil {
		users.OnReload(s.purge)
	}
	return s, nil
}

// IsEnforcedFor returns true for the guest identity unconditionally. Named
// users follow their stored preference; unknown users and lookup failures
// are enforced.
func (s *safetyService) IsEnforcedFor(ctx context.Context, username string) bool {
	if models.IsGuestName(username) {
		return true
	}

	key := strings.ToLower(username)
	s.memoMu.Lock()
	if enforced, ok := s.memo.Get(key); ok {
		s.memoMu.Unlock()
		return enforced
	}
	gen := s.gen
	s.memoMu.Unlock()

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContext(ctx).Err(err).Str("user", username).Msg("enforcement lookup failed, enforcing")
		}
		return true
	}

	enforced := user.SafetyCheckEnabled()
	s.memoMu.Lock()
	if s.gen == gen {
		s.memo.Add(key, enforced)
	}
	s.memoMu.Unlock()
	return enforced
}

func (s *safetyService) Invalidate(username string) {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()

	s.gen++
	s.memo.Remove(strings.ToLower(username))
}

// purge drops every memoized decision.
func (s *safetyService) purge() {
	s.memoMu.Lock()
	defer s.memoMu.Unlock()

	s.gen++
	s.memo.Purge()
	s.logger.Debug().Msg("enforcement memo purged")
}

// ShouldHide reports whether the file at path must be hidden from username.
// A stored tag is trusted as is. Untagged files are classified once and the
// result is stored in the file. Classification failures never hide content.
func (s *safetyService) ShouldHide(ctx context.Context, path, username string) bool {
	if !s.IsEnforcedFor(ctx, username) {
		return false
	}
	log := logger.FromContext(ctx)

	if tag, ok := s.Tag(ctx, path); ok {
		return tag.IsNSFW
	}

	v, err, _ := s.flight.Do(path, func() (any, error) {
		if tag, ok := s.Tag(ctx, path); ok {
			return tag, nil
		}
		return s.classify(ctx, path)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoClassifier):
			log.Debug().Str("path", path).Msg("no classifier configured, not hiding")
		case errors.Is(err, adapter.ErrUnavailable):
			log.Warn().Err(err).Str("path", path).Msg("classifier unavailable, not hiding")
		default:
			log.Error().Err(err).Str("path", path).Msg("classification failed, not hiding")
		}
		return false
	}

	tag := v.(models.SafetyTag)
	if tag.IsNSFW {
		log.Info().Str("user", username).Str("path", path).Float64("score", tag.Score).Msg("content hidden")
	}
	return tag.IsNSFW
}

func (s *safetyService) classify(ctx context.Context, path string) (models.SafetyTag, error) {
	clf, err := s.classifier()
	if err != nil {
		return models.SafetyTag{}, fmt.Errorf("build classifier: %w", err)
	}
	if clf == nil {
		return models.SafetyTag{}, ErrNoClassifier
	}

	c, err := clf.Classify(ctx, path)
	if err != nil {
		return models.SafetyTag{}, err
	}
	tag := models.SafetyTag{
		IsNSFW: strings.EqualFold(c.Label, models.LabelNSFW) && c.Score > s.threshold,
		Score:  c.Score,
		Label:  c.Label,
	}

	if err = s.SetTag(ctx, path, tag); err != nil && !errors.Is(err, imagemeta.ErrUnsupportedFormat) {
		logger.FromContext(ctx).Warn().Err(err).Str("path", path).Msg("failed to persist safety tag")
	}
	return tag, nil
}

// Tag returns the tag stored in path. Unreadable files and unsupported
// formats have no tag.
func (s *safetyService) Tag(ctx context.Context, path string) (models.SafetyTag, bool) {
	tag, ok, err := imagemeta.ReadTag(path)
	if err != nil {
		if !errors.Is(err, imagemeta.ErrUnsupportedFormat) && !errors.Is(err, fs.ErrNotExist) {
			logger.FromContext(ctx).Debug().Err(err).Str("path", path).Msg("safety tag unreadable")
		}
		return models.SafetyTag{}, false
	}
	return tag, ok
}

func (s *safetyService) lockFor(path string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(filepath.Clean(path)))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

func (s *safetyService) SetTag(ctx context.Context, path string, tag models.SafetyTag) error {
	mu := s.lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	if err := imagemeta.WriteTag(path, tag); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug().Str("path", path).Bool("is_nsfw", tag.IsNSFW).Str("label", tag.Label).Msg("safety tag stored")
	return nil
}

func (s *safetyService) ClearTag(ctx context.Context, path string) (bool, error) {
	mu := s.lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	return imagemeta.ClearTag(path)
}

// ClearAllTags removes the tag from every supported image below the output
// directory and returns how many files carried one. Files that cannot be
// rewritten are skipped.
func (s *safetyService) ClearAllTags(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	cleared := 0
	err := filepath.WalkDir(s.outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.outputDir {
				return fs.SkipAll
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() || !imagemeta.IsSupportedPath(path) {
			return nil
		}
		removed, err := s.ClearTag(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to clear safety tag")
			return nil
		}
		if removed {
			cleared++
		}
		return nil
	})
	if err != nil {
		return cleared, err
	}
	log.Info().Int("cleared", cleared).Msg("safety tags cleared")
	return cleared, nil
}

// ManualTag builds the tag recorded by a reviewer override. Score defaults
// to 1 and label to "manual".
func ManualTag(isNSFW bool, score *float64, label string) models.SafetyTag {
	tag := models.SafetyTag{IsNSFW: isNSFW, Score: 1, Label: models.LabelManual}
	if score != nil {
		tag.Score = *score
	}
	if label != "" {
		tag.Label = label
	}
	return tag
}
