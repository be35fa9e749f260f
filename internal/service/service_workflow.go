package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/models"
)

const defaultWorkflowName = "untitled.json"

type workflowService struct {
	storage store.WorkflowStorage

	logger *logger.Logger
}

func NewWorkflowService(storage store.WorkflowStorage, logger *logger.Logger) WorkflowService {
	return &workflowService{storage: storage, logger: logger}
}

// workflowOwner is the folder owner for identity. Unauthenticated callers
// share the guest folder.
func workflowOwner(identity models.Identity) string {
	if identity.Authenticated && identity.Username != "" {
		return identity.Username
	}
	return models.GuestUsername
}

// sanitizeWorkflowName normalizes separators and forces the .json
// extension. Absolute names and any ".." are rejected.
func sanitizeWorkflowName(name string) (string, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if clean == "" || strings.Contains(clean, "..") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidWorkflowName, name)
	}
	if !strings.HasSuffix(strings.ToLower(clean), ".json") {
		clean += ".json"
	}
	return clean, nil
}

func (s *workflowService) List(ctx context.Context, identity models.Identity) ([]models.WorkflowFile, error) {
	owner := workflowOwner(identity)
	return s.storage.List(ctx, owner, !models.IsGuestName(owner))
}

func (s *workflowService) Save(ctx context.Context, identity models.Identity, name string, body []byte) (models.WorkflowFile, error) {
	if !identity.Allowed(models.PermModifyWorkflows) {
		return models.WorkflowFile{}, ErrWorkflowDenied
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil || doc == nil {
		return models.WorkflowFile{}, ErrInvalidWorkflow
	}

	if name == "" {
		name, _ = doc["name"].(string)
	}
	if name == "" {
		name = defaultWorkflowName
	}
	clean, err := sanitizeWorkflowName(name)
	if err != nil {
		return models.WorkflowFile{}, err
	}

	for _, k := range models.WorkflowListingKeys {
		delete(doc, k)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return models.WorkflowFile{}, fmt.Errorf("encode workflow: %w", err)
	}
	return s.storage.Save(ctx, workflowOwner(identity), clean, data)
}

func (s *workflowService) Open(ctx context.Context, identity models.Identity, name string) (string, error) {
	clean, err := sanitizeWorkflowName(name)
	if err != nil {
		return "", store.ErrWorkflowNotFound
	}
	return s.storage.Open(ctx, workflowOwner(identity), clean)
}

// Delete removes a private workflow of the caller. Admins may also delete
// global workflows; for everyone else they are read-only.
func (s *workflowService) Delete(ctx context.Context, identity models.Identity, name string) error {
	if !identity.Allowed(models.PermModifyWorkflows) {
		return ErrWorkflowDenied
	}
	clean, err := sanitizeWorkflowName(name)
	if err != nil {
		return err
	}

	err = s.storage.Delete(ctx, workflowOwner(identity), clean, identity.IsAdmin)
	if errors.Is(err, store.ErrGlobalWorkflow) {
		logger.FromContext(ctx).Warn().
			Str("user", identity.Username).
			Str("workflow", clean).
			Msg("non-admin tried to delete a global workflow")
	}
	return err
}
