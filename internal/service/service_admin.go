package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/internal/validators"
	"github.com/simcop2387/usgromana/models"
)

// adminService backs the administration API.
type adminService struct {
	users     store.UserRepository
	groups    store.GroupRepository
	ipLists   store.IPListRepository
	safety    SafetyService
	validator validators.Validator

	logger *logger.Logger
}

func NewAdminService(storages *store.Storages, safety SafetyService, logger *logger.Logger) AdminService {
	return &adminService{
		users:     storages.UserRepository,
		groups:    storages.GroupRepository,
		ipLists:   storages.IPListRepository,
		safety:    safety,
		validator: validators.NewAccountValidator(),
		logger:    logger,
	}
}

func (s *adminService) Groups(ctx context.Context) (models.GroupTable, error) {
	return s.groups.All(ctx)
}

func (s *adminService) ReplaceGroups(ctx context.Context, table models.GroupTable) (models.GroupTable, error) {
	merged, err := s.groups.Replace(ctx, table)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Int("roles", len(merged)).Msg("group table replaced")
	return merged, nil
}

func (s *adminService) Users(ctx context.Context) ([]models.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return views, nil
}

// UpdateUser replaces the groups and/or safety preference of username. The
// admin flag follows membership of the admin group.
func (s *adminService) UpdateUser(ctx context.Context, username string, req models.UpdateUserRequest) (models.UserView, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.UserView{}, err
	}

	var groups []string
	if req.Groups != nil {
		table, err := s.groups.All(ctx)
		if err != nil {
			return models.UserView{}, err
		}
		for _, g := range req.Groups {
			g = strings.ToLower(strings.TrimSpace(g))
			if _, ok := table[g]; !ok {
				return models.UserView{}, fmt.Errorf("%w: %q", ErrUnknownGroup, g)
			}
			groups = append(groups, g)
		}
	}

	updated, err := s.users.Update(ctx, username, func(u *models.User) error {
		if req.Groups != nil {
			u.Groups = groups
			u.IsAdmin = u.HasGroup(models.RoleAdmin)
		}
		if req.SafetyCheck != nil {
			v := *req.SafetyCheck
			u.SafetyCheck = &v
		}
		return nil
	})
	if err != nil {
		return models.UserView{}, err
	}
	s.safety.Invalidate(username)

	logger.FromContext(ctx).Info().
		Str("user", updated.Username).
		Strs("groups", updated.Groups).
		Bool("sfw_check", updated.SafetyCheckEnabled()).
		Msg("user updated")
	return updated.View(), nil
}

func (s *adminService) DeleteUser(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	s.safety.Invalidate(username)
	logger.FromContext(ctx).Info().Str("user", username).Msg("user deleted")
	return nil
}

func (s *adminService) IPLists(ctx context.Context) (models.IPLists, error) {
	return s.ipLists.Lists(ctx)
}

func (s *adminService) ReplaceIPLists(ctx context.Context, lists models.IPLists) (models.IPLists, error) {
	if err := s.ipLists.Replace(ctx, lists); err != nil {
		return models.IPLists{}, err
	}
	logger.FromContext(ctx).Info().
		Int("whitelist", len(lists.Whitelist)).
		Int("blacklist", len(lists.Blacklist)).
		Msg("ip lists replaced")
	return s.ipLists.Lists(ctx)
}

func (s *adminService) SetOwnSafety(ctx context.Context, identity models.Identity, enabled bool) (models.UserView, error) {
	if identity.IsGuest() || !identity.Authenticated {
		return models.UserView{}, ErrGuestNotAllowed
	}
	return s.UpdateUser(ctx, identity.Username, models.UpdateUserRequest{SafetyCheck: &enabled})
}
