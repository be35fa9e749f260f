package service

import (
	"context"
	"time"

	"github.com/simcop2387/usgromana/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock github.com/simcop2387/usgromana/internal/service TokenService,Classifier

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(subjectID, username string, ttl time.Duration) (models.Token, error)
	// Verify returns ErrTokenExpired, ErrTokenSignature or ErrTokenMalformed
	// on failure.
	Verify(token string) (models.Claims, error)
	DefaultTTL() time.Duration
}

// PermissionService resolves identities and evaluates the request policy.
type PermissionService interface {
	// Resolve never fails: anything that cannot be resolved is anonymous.
	Resolve(ctx context.Context, token string) models.Identity
	IdentityFor(ctx context.Context, claims models.Claims) (models.Identity, error)
	IdentityByID(ctx context.Context, userID string) models.Identity
	// CheckRequest returns nil when identity may access path with method.
	CheckRequest(identity models.Identity, method, path string) *models.Denial
	IsPublicPath(path string) bool
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)
	GenerateToken(ctx context.Context, req models.GenerateTokenRequest) (models.Token, error)
	EnsureGuest(ctx context.Context) error
}

type AdminService interface {
	Groups(ctx context.Context) (models.GroupTable, error)
	ReplaceGroups(ctx context.Context, table models.GroupTable) (models.GroupTable, error)
	Users(ctx context.Context) ([]models.UserView, error)
	UpdateUser(ctx context.Context, username string, req models.UpdateUserRequest) (models.UserView, error)
	DeleteUser(ctx context.Context, username string) error
	IPLists(ctx context.Context) (models.IPLists, error)
	ReplaceIPLists(ctx context.Context, lists models.IPLists) (models.IPLists, error)
	SetOwnSafety(ctx context.Context, identity models.Identity, enabled bool) (models.UserView, error)
}

type UserEnvService interface {
	Status(ctx context.Context, username string) (models.UserEnvStatus, error)
	List(ctx context.Context, username string) ([]string, error)
	Purge(ctx context.Context, username string) error
	SetGalleryRoot(ctx context.Context, username string, enable bool) error
}

// WorkflowService serves the workflow documents of the caller: private ones
// first, then the shared global ones.
type WorkflowService interface {
	List(ctx context.Context, identity models.Identity) ([]models.WorkflowFile, error)
	// Save stores body under name in the caller's private folder. An empty
	// name falls back to the document's "name" field.
	Save(ctx context.Context, identity models.Identity, name string, body []byte) (models.WorkflowFile, error)
	Open(ctx context.Context, identity models.Identity, name string) (string, error)
	Delete(ctx context.Context, identity models.Identity, name string) error
}

// IPFilterService decides which client addresses may reach the server.
type IPFilterService interface {
	Allowed(ctx context.Context, ip string) bool
	Whitelisted(ctx context.Context, ip string) bool
}

// LockoutService throttles repeated failed logins per client address.
type LockoutService interface {
	// Locked returns the remaining lockout of ip, if any.
	Locked(ip string) (time.Duration, bool)
	// Fail records a failed attempt and returns the lockout it triggered.
	Fail(ctx context.Context, ip string) time.Duration
	Succeed(ip string)
}

// SafetyService decides whether content is hidden from a user and manages
// the classification tags persisted inside content files.
type SafetyService interface {
	IsEnforcedFor(ctx context.Context, username string) bool
	ShouldHide(ctx context.Context, path, username string) bool
	Tag(ctx context.Context, path string) (models.SafetyTag, bool)
	SetTag(ctx context.Context, path string, tag models.SafetyTag) error
	ClearTag(ctx context.Context, path string) (bool, error)
	ClearAllTags(ctx context.Context) (int, error)
	// Invalidate drops the memoized enforcement decision of username.
	Invalidate(username string)
}

// Classifier labels a content file.
type Classifier interface {
	Classify(ctx context.Context, path string) (models.Classification, error)
}

// ClassifierFactory builds the classifier on first use. A nil classifier
// with a nil error means classification is not configured.
type ClassifierFactory func() (Classifier, error)

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
