package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/models"
)

// groupRepository keeps the group permission table in a JSON file
// {"<role>": {"<permission>": bool}}. Every load merges the built-in
// defaults in additively and writes the file back when that added keys.
type groupRepository struct {
	mu       sync.Mutex
	file     watchedFile
	table    models.GroupTable
	defaults models.GroupTable
	logger   *logger.Logger
}

// NewGroupRepository returns a [GroupRepository] backed by path and seeded
// from [models.DefaultGroups].
func NewGroupRepository(path string, logger *logger.Logger) GroupRepository {
	logger.Debug().Str("path", path).Msg("creating group repository")
	return &groupRepository{
		file:     watchedFile{path: path},
		table:    models.GroupTable{},
		defaults: models.DefaultGroups(),
		logger:   logger,
	}
}

func (r *groupRepository) refresh() error {
	data, changed, err := r.file.read()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	table := models.GroupTable{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCorruptFile, r.file.path, err)
		}
	}
	table = normalizeRoles(table)

	r.file.markSeen(data)
	merged := table.MergeDefaults(r.defaults)
	r.table = table
	r.logger.Info().Int("groups", len(table)).Bool("backfilled", merged).Msg("groups file reloaded")

	if merged || data == nil {
		return r.save()
	}
	return nil
}

func (r *groupRepository) save() error {
	data, err := json.MarshalIndent(r.table, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	return r.file.write(data)
}

func normalizeRoles(table models.GroupTable) models.GroupTable {
	out := make(models.GroupTable, len(table))
	for role, perms := range table {
		if perms == nil {
			perms = models.Permissions{}
		}
		out[strings.ToLower(strings.TrimSpace(role))] = perms
	}
	return out
}

func (r *groupRepository) All(ctx context.Context) (models.GroupTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return nil, err
	}
	return r.table.Clone(), nil
}

func (r *groupRepository) Get(ctx context.Context, role string) (models.Permissions, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return nil, false, err
	}
	perms, ok := r.table[strings.ToLower(role)]
	if !ok {
		return nil, false, nil
	}
	return perms.Clone(), true, nil
}

// Replace stores table as the new configuration. Defaults are merged in
// afterwards so a replacement can never drop a built-in role or key.
func (r *groupRepository) Replace(ctx context.Context, table models.GroupTable) (models.GroupTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return nil, err
	}

	next := normalizeRoles(table.Clone())
	next.MergeDefaults(r.defaults)

	prev := r.table
	r.table = next
	if err := r.save(); err != nil {
		r.table = prev
		return nil, err
	}
	return next.Clone(), nil
}
