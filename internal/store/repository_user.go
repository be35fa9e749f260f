// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

// userRepository keeps user records in a JSON file of the form
// {"<id>": {"username", "password", "admin", "groups", "sfw_check"}}.
//
// The file is re-read on every call and reparsed only when its sha256
// changes, so edits made by hand or by another process are picked up.
type userRepository struct {
	mu     sync.Mutex
	file   watchedFile
	users  map[string]models.User
	logger *logger.Logger

	onReload []func()
}

// NewUserRepository returns a [UserRepository] backed by path.
func NewUserRepository(path string, logger *logger.Logger) UserRepository {
	logger.Debug().Str("path", path).Msg("creating user repository")
	return &userRepository{
		file:   watchedFile{path: path},
		users:  map[string]models.User{},
		logger: logger,
	}
}

// refresh reloads the records if the file changed. Must be called with mu held.
func (r *userRepository) refresh() error {
	data, changed, err := r.file.read()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	users := map[string]models.User{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &users); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCorruptFile, r.file.path, err)
		}
	}

	backfilled := false
	for id, u := range users {
		u.ID = id
		if len(u.Groups) == 0 {
			u.Groups = defaultGroupsFor(u)
			backfilled = true
		}
		users[id] = u
	}

	r.users = users
	r.file.markSeen(data)
	r.logger.Info().Int("users", len(users)).Msg("users file reloaded")
	for _, fn := range r.onReload {
		fn()
	}

	if backfilled {
		return r.save()
	}
	return nil
}

func (r *userRepository) OnReload(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onReload = append(r.onReload, fn)
}

// save writes the records back. Must be called with mu held.
func (r *userRepository) save() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	return r.file.write(data)
}

func defaultGroupsFor(u models.User) []string {
	switch {
	case u.IsGuest():
		return []string{models.RoleGuest}
	case u.IsAdmin:
		return []string{models.RoleAdmin}
	default:
		return []string{models.RoleUser}
	}
}

func (r *userRepository) findLocked(username string) (models.User, bool) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return models.User{}, false
}

func (r *userRepository) adminCountLocked() int {
	n := 0
	for _, u := range r.users {
		if u.Admin() && !u.IsGuest() {
			n++
		}
	}
	return n
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	slices.SortFunc(out, func(a, b models.User) int {
		return cmp.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
	})
	return out, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return models.User{}, err
	}

	u, ok := r.findLocked(username)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return models.User{}, err
	}

	u, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u.Clone(), nil
}

// Create assigns a new ID. The first non-guest user always becomes admin.
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return models.User{}, err
	}

	if _, exists := r.findLocked(user.Username); exists {
		return models.User{}, ErrUsernameTaken
	}

	user = user.Clone()
	user.ID = utils.GenerateID()
	if !user.IsGuest() && r.adminCountLocked() == 0 {
		user.IsAdmin = true
		user.Groups = []string{models.RoleAdmin}
		log.Info().Str("user", user.Username).Msg("bootstrap admin created")
	}
	if len(user.Groups) == 0 {
		user.Groups = defaultGroupsFor(user)
	}

	r.users[user.ID] = user
	if err := r.save(); err != nil {
		delete(r.users, user.ID)
		return models.User{}, err
	}

	return user.Clone(), nil
}

// Update refuses to demote the last admin. Username and ID are immutable.
func (r *userRepository) Update(ctx context.Context, username string, fn func(*models.User) error) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return models.User{}, err
	}

	current, ok := r.findLocked(username)
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	updated := current.Clone()
	if err := fn(&updated); err != nil {
		return models.User{}, err
	}
	updated.ID = current.ID
	updated.Username = current.Username

	if current.Admin() && !updated.Admin() && r.adminCountLocked() <= 1 {
		return models.User{}, ErrLastAdmin
	}

	r.users[current.ID] = updated
	if err := r.save(); err != nil {
		r.users[current.ID] = current
		return models.User{}, err
	}
	return updated.Clone(), nil
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if models.IsGuestName(username) {
		return ErrReservedUser
	}

	if err := r.refresh(); err != nil {
		return err
	}

	u, ok := r.findLocked(username)
	if !ok {
		return ErrUserNotFound
	}
	if u.Admin() && r.adminCountLocked() <= 1 {
		return ErrLastAdmin
	}

	delete(r.users, u.ID)
	if err := r.save(); err != nil {
		r.users[u.ID] = u
		return err
	}
	return nil
}
