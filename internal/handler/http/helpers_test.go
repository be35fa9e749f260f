package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/service"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/require"
)

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

// asCaller returns r carrying identity and a nop logger.
func asCaller(r *http.Request, identity models.Identity) *http.Request {
	r = injectNopLogger(r)
	return r.WithContext(utils.WithIdentity(r.Context(), identity))
}

func newTestHandler(services *service.Services) *Handler {
	return NewHandler(services, nil, nil, config.StructuredConfig{}, logger.Nop())
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

var nextOK = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func adminIdentity() models.Identity {
	return models.Identity{
		UserID: "u-admin", Username: "root", Role: models.RoleAdmin,
		Groups: []string{models.RoleAdmin}, Permissions: models.Permissions{},
		IsAdmin: true, Authenticated: true,
	}
}

func userIdentity(name string) models.Identity {
	return models.Identity{
		UserID: "u-" + name, Username: name, Role: models.RoleUser,
		Groups: []string{models.RoleUser}, Permissions: models.Permissions{},
		Authenticated: true,
	}
}

// ─────────────────────────────────────────────
// fake services
// ─────────────────────────────────────────────

type fakePermissionService struct {
	public      bool
	resolved    models.Identity
	identity    models.Identity
	identityErr error
	denial      *models.Denial
}

func (f *fakePermissionService) Resolve(context.Context, string) models.Identity {
	return f.resolved
}

func (f *fakePermissionService) IdentityFor(context.Context, models.Claims) (models.Identity, error) {
	return f.identity, f.identityErr
}

func (f *fakePermissionService) IdentityByID(context.Context, string) models.Identity {
	return f.identity
}

func (f *fakePermissionService) CheckRequest(models.Identity, string, string) *models.Denial {
	return f.denial
}

func (f *fakePermissionService) IsPublicPath(string) bool {
	return f.public
}

type fakeIPFilterService struct {
	blocked map[string]bool
}

func (f *fakeIPFilterService) Allowed(_ context.Context, ip string) bool {
	return !f.blocked[ip]
}

func (f *fakeIPFilterService) Whitelisted(context.Context, string) bool {
	return false
}

type fakeLockoutService struct {
	mu        sync.Mutex
	remaining time.Duration
	fails     int
	successes int
}

func (f *fakeLockoutService) Locked(string) (time.Duration, bool) {
	return f.remaining, f.remaining > 0
}

func (f *fakeLockoutService) Fail(context.Context, string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails++
	return 0
}

func (f *fakeLockoutService) Succeed(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes++
}

type fakeAuthService struct {
	token models.Token
	user  models.User
	err   error
}

func (f *fakeAuthService) Register(context.Context, models.RegisterRequest) (models.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) Login(context.Context, models.LoginRequest) (models.Token, error) {
	return f.token, f.err
}

func (f *fakeAuthService) GenerateToken(context.Context, models.GenerateTokenRequest) (models.Token, error) {
	return f.token, f.err
}

func (f *fakeAuthService) EnsureGuest(context.Context) error {
	return f.err
}

// fakeAdminService implements the calls the tests make; anything else
// panics through the nil embedded interface.
type fakeAdminService struct {
	service.AdminService
	users     []models.UserView
	deleted   []string
	deleteErr error
}

func (f *fakeAdminService) Users(context.Context) ([]models.UserView, error) {
	return f.users, nil
}

func (f *fakeAdminService) DeleteUser(_ context.Context, username string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, username)
	return nil
}

type fakeUserEnvService struct {
	service.UserEnvService
	purged []string
}

func (f *fakeUserEnvService) Status(_ context.Context, username string) (models.UserEnvStatus, error) {
	return models.UserEnvStatus{Username: username, Exists: true}, nil
}

func (f *fakeUserEnvService) List(context.Context, string) ([]string, error) {
	return []string{"a.png"}, nil
}

func (f *fakeUserEnvService) Purge(_ context.Context, username string) error {
	f.purged = append(f.purged, username)
	return nil
}

type fakeSafetyService struct {
	service.SafetyService
	hide    bool
	tagged  map[string]models.SafetyTag
	cleared int
}

func (f *fakeSafetyService) ShouldHide(context.Context, string, string) bool {
	return f.hide
}

func (f *fakeSafetyService) SetTag(_ context.Context, path string, tag models.SafetyTag) error {
	if f.tagged == nil {
		f.tagged = map[string]models.SafetyTag{}
	}
	f.tagged[path] = tag
	return nil
}

func (f *fakeSafetyService) ClearAllTags(context.Context) (int, error) {
	return f.cleared, nil
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}
