package service

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/models"
)

const (
	statusFileLimit = 200
	listFileLimit   = 1000
)

type userEnvService struct {
	users store.UserRepository
	env   store.UserEnvStorage

	logger *logger.Logger
}

func NewUserEnvService(users store.UserRepository, env store.UserEnvStorage, logger *logger.Logger) UserEnvService {
	return &userEnvService{users: users, env: env, logger: logger}
}

func (s *userEnvService) Status(ctx context.Context, username string) (models.UserEnvStatus, error) {
	if err := s.mustExist(ctx, username); err != nil {
		return models.UserEnvStatus{}, err
	}
	root, err := s.env.Root(username)
	if err != nil {
		return models.UserEnvStatus{}, err
	}

	status := models.UserEnvStatus{Username: username, Root: root, Files: []string{}}
	if _, err = os.Stat(root); err == nil {
		status.Exists = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return models.UserEnvStatus{}, err
	}

	if status.Exists {
		if status.Files, status.FileCount, err = s.env.ListFiles(ctx, username, statusFileLimit); err != nil {
			return models.UserEnvStatus{}, err
		}
	}

	gallery, err := s.env.GalleryRoot(ctx)
	if err != nil {
		return models.UserEnvStatus{}, err
	}
	status.IsGalleryRoot = gallery != "" && gallery == username
	return status, nil
}

func (s *userEnvService) List(ctx context.Context, username string) ([]string, error) {
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	files, _, err := s.env.ListFiles(ctx, username, listFileLimit)
	return files, err
}

func (s *userEnvService) Purge(ctx context.Context, username string) error {
	if err := s.mustExist(ctx, username); err != nil {
		return err
	}
	if err := s.env.Purge(ctx, username); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("user", username).Msg("user environment purged")
	return nil
}

func (s *userEnvService) SetGalleryRoot(ctx context.Context, username string, enable bool) error {
	if err := s.mustExist(ctx, username); err != nil {
		return err
	}
	if err := s.env.SetGalleryRoot(ctx, username, enable); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("user", username).Bool("enable", enable).Msg("gallery root changed")
	return nil
}

func (s *userEnvService) mustExist(ctx context.Context, username string) error {
	_, err := s.users.FindByUsername(ctx, username)
	return err
}
