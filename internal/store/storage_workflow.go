package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/models"
)

const (
	workflowsDir = "workflows"
	workflowExt  = ".json"
)

// workflowStorage keeps private workflows in <user root>/workflows and reads
// shared ones from globalDirs, in order.
type workflowStorage struct {
	env        UserEnvStorage
	globalDirs []string
	logger     *logger.Logger
}

func NewWorkflowStorage(env UserEnvStorage, globalDirs []string, logger *logger.Logger) WorkflowStorage {
	return &workflowStorage{env: env, globalDirs: globalDirs, logger: logger}
}

func (s *workflowStorage) userDir(username string) (string, error) {
	root, err := s.env.Root(username)
	if err != nil {
		return "", err
	}
	return ResolveWithinRoot(root, workflowsDir)
}

func (s *workflowStorage) List(ctx context.Context, username string, includePrivate bool) ([]models.WorkflowFile, error) {
	files := map[string]models.WorkflowFile{}
	for _, dir := range s.globalDirs {
		if err := collectWorkflows(ctx, dir, true, files); err != nil {
			return nil, err
		}
	}

	if includePrivate {
		dir, err := s.userDir(username)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
		if err := collectWorkflows(ctx, dir, false, files); err != nil {
			return nil, err
		}
	}

	out := make([]models.WorkflowFile, 0, len(files))
	for _, f := range files {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b models.WorkflowFile) int { return cmp.Compare(a.Path, b.Path) })
	return out, nil
}

func collectWorkflows(ctx context.Context, dir string, global bool, into map[string]models.WorkflowFile) error {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == dir {
				return fs.SkipAll
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), workflowExt) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		f := workflowInfo(filepath.ToSlash(rel), info, global)
		into[f.Path] = f
		return nil
	})
	if err != nil {
		return fmt.Errorf("list workflows in %s: %w", dir, err)
	}
	return nil
}

func workflowInfo(rel string, info fs.FileInfo, global bool) models.WorkflowFile {
	subfolder, name := path.Split(rel)
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		ext = "json"
	}

	f := models.WorkflowFile{
		Name:      name,
		Filename:  name,
		File:      rel,
		ID:        rel,
		Path:      rel,
		Subfolder: strings.TrimSuffix(subfolder, "/"),
		Ext:       ext,
		Extension: ext,
		Type:      "file",
		Format:    "json",
		Writable:  !global,
		Global:    global,
	}
	modified := time.Now()
	if info != nil {
		modified = info.ModTime()
		f.Size = info.Size()
	}
	f.Modified = float64(modified.UnixMilli()) / 1000
	f.Created = f.Modified

	data := f
	f.Data = &data
	return f
}

func (s *workflowStorage) Save(ctx context.Context, username, name string, data []byte) (models.WorkflowFile, error) {
	dir, err := s.userDir(username)
	if err != nil {
		return models.WorkflowFile{}, err
	}
	p, err := ResolveWithinRoot(dir, name)
	if err != nil {
		return models.WorkflowFile{}, err
	}
	if err = writeFileAtomic(p, data, 0o644); err != nil {
		return models.WorkflowFile{}, err
	}

	info, err := os.Stat(p)
	if err != nil {
		return models.WorkflowFile{}, err
	}
	logger.FromContext(ctx).Info().Str("user", username).Str("workflow", name).Msg("workflow saved")
	return workflowInfo(name, info, false), nil
}

func (s *workflowStorage) Open(ctx context.Context, username, name string) (string, error) {
	dir, err := s.userDir(username)
	if err != nil {
		return "", err
	}
	if p, ok := existingFile(dir, name); ok {
		return p, nil
	}
	for _, global := range s.globalDirs {
		if p, ok := existingFile(global, name); ok {
			return p, nil
		}
	}
	return "", ErrWorkflowNotFound
}

func (s *workflowStorage) Delete(ctx context.Context, username, name string, allowGlobal bool) error {
	log := logger.FromContext(ctx)

	dir, err := s.userDir(username)
	if err != nil {
		return err
	}
	if p, ok := existingFile(dir, name); ok {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		log.Info().Str("user", username).Str("workflow", name).Msg("workflow deleted")
		return nil
	}

	for _, global := range s.globalDirs {
		p, ok := existingFile(global, name)
		if !ok {
			continue
		}
		if !allowGlobal {
			return ErrGlobalWorkflow
		}
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		log.Warn().Str("user", username).Str("workflow", name).Str("dir", global).Msg("global workflow deleted")
		return nil
	}
	return ErrWorkflowNotFound
}

// existingFile resolves name under root and reports whether it is a regular
// file. Names escaping root never match.
func existingFile(root, name string) (string, bool) {
	p, err := ResolveWithinRoot(root, name)
	if err != nil {
		return "", false
	}
	st, err := os.Stat(p)
	if err != nil || !st.Mode().IsRegular() {
		return "", false
	}
	return p, true
}
