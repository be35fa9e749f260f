package store

import (
	"context"

	"github.com/simcop2387/usgromana/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the authoritative store of user records.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	// Create stores a new user and returns it with its assigned ID.
	Create(ctx context.Context, user models.User) (models.User, error)
	// Update applies fn to a copy of the record and persists the result.
	Update(ctx context.Context, username string, fn func(*models.User) error) (models.User, error)
	Delete(ctx context.Context, username string) error
	// OnReload registers fn to run whenever records are reparsed after the
	// backing file changed outside this repository.
	OnReload(fn func())
}

// GroupRepository stores the role -> permissions table.
type GroupRepository interface {
	All(ctx context.Context) (models.GroupTable, error)
	Get(ctx context.Context, role string) (models.Permissions, bool, error)
	Replace(ctx context.Context, table models.GroupTable) (models.GroupTable, error)
}

// IPListRepository stores the address allow and deny lists.
type IPListRepository interface {
	Lists(ctx context.Context) (models.IPLists, error)
	Replace(ctx context.Context, lists models.IPLists) error
	AddToBlacklist(ctx context.Context, ip string) error
}

// UserEnvStorage manages the per-user private storage roots.
type UserEnvStorage interface {
	Root(username string) (string, error)
	ListFiles(ctx context.Context, username string, limit int) (files []string, total int, err error)
	Purge(ctx context.Context, username string) error
	GalleryRoot(ctx context.Context) (string, error)
	SetGalleryRoot(ctx context.Context, username string, enable bool) error
}

// WorkflowStorage keeps workflow documents in a private folder per user on
// top of the shared global folders. Names are slash-separated paths
// relative to a workflow folder.
type WorkflowStorage interface {
	// List merges the global workflows with the private ones of username,
	// private entries replacing global entries of the same name.
	List(ctx context.Context, username string, includePrivate bool) ([]models.WorkflowFile, error)
	Save(ctx context.Context, username, name string, data []byte) (models.WorkflowFile, error)
	// Open returns the file path of name, private folder first.
	Open(ctx context.Context, username, name string) (string, error)
	// Delete removes name from the private folder, or from a global folder
	// when allowGlobal is set.
	Delete(ctx context.Context, username, name string, allowGlobal bool) error
}
