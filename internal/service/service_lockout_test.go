package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/mock"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIPFilterService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		lists     models.IPLists
		listErr   error
		ip        string
		allowed   bool
		whitelist bool
	}{
		{name: "empty lists", ip: "203.0.113.5", allowed: true},
		{name: "blacklisted", lists: models.IPLists{Blacklist: []string{"203.0.113.5"}}, ip: "203.0.113.5"},
		{name: "mapped v4 blacklisted", lists: models.IPLists{Blacklist: []string{"203.0.113.5"}}, ip: "::ffff:203.0.113.5"},
		{name: "whitelist only", lists: models.IPLists{Whitelist: []string{"10.0.0.1"}}, ip: "10.0.0.2"},
		{name: "whitelisted", lists: models.IPLists{Whitelist: []string{"10.0.0.1"}, Blacklist: []string{"10.0.0.1"}}, ip: "10.0.0.1", allowed: true, whitelist: true},
		{name: "unreadable lists", listErr: errors.New("permission denied"), ip: "10.0.0.1", allowed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockIPListRepository(ctrl)
			repo.EXPECT().Lists(gomock.Any()).Return(tt.lists, tt.listErr).AnyTimes()

			f := NewIPFilterService(repo, logger.Nop())
			assert.Equal(t, tt.allowed, f.Allowed(ctx, tt.ip))
			assert.Equal(t, tt.whitelist, f.Whitelisted(ctx, tt.ip))
		})
	}
}

type lockoutFixture struct {
	svc   *lockoutService
	repo  *mock.MockIPListRepository
	clock time.Time
}

func newLockoutFixture(t *testing.T, blacklistAfter int, whitelist ...string) *lockoutFixture {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockIPListRepository(ctrl)
	repo.EXPECT().Lists(gomock.Any()).Return(models.IPLists{Whitelist: whitelist}, nil).AnyTimes()

	f := &lockoutFixture{repo: repo, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewLockoutService(NewIPFilterService(repo, logger.Nop()), repo, config.Security{BlacklistAfterAttempts: blacklistAfter}, logger.Nop())
	f.svc = svc.(*lockoutService)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func TestLockoutService_Schedule(t *testing.T) {
	f := newLockoutFixture(t, 0)
	ctx := context.Background()
	ip := "198.51.100.1"

	want := []time.Duration{0, 0, 60 * time.Second, 60 * time.Second, 60 * time.Second,
		90 * time.Second, 90 * time.Second, 90 * time.Second, 300 * time.Second, 300 * time.Second}
	for i, w := range want {
		assert.Equal(t, w, f.svc.Fail(ctx, ip), "failure %d", i+1)
	}

	remaining, locked := f.svc.Locked(ip)
	require.True(t, locked)
	assert.Equal(t, 300*time.Second, remaining)

	f.clock = f.clock.Add(299 * time.Second)
	remaining, locked = f.svc.Locked(ip)
	require.True(t, locked)
	assert.Equal(t, time.Second, remaining)

	f.clock = f.clock.Add(time.Second)
	_, locked = f.svc.Locked(ip)
	assert.False(t, locked)

	_, locked = f.svc.Locked("198.51.100.2")
	assert.False(t, locked)
}

func TestLockoutService_SucceedResets(t *testing.T) {
	f := newLockoutFixture(t, 0)
	ctx := context.Background()
	ip := "198.51.100.1"

	for range 3 {
		f.svc.Fail(ctx, ip)
	}
	_, locked := f.svc.Locked(ip)
	require.True(t, locked)

	f.svc.Succeed(ip)
	_, locked = f.svc.Locked(ip)
	assert.False(t, locked)
	assert.Zero(t, f.svc.Fail(ctx, ip))
}

func TestLockoutService_Whitelisted(t *testing.T) {
	f := newLockoutFixture(t, 1, "10.0.0.9")
	ctx := context.Background()

	for range 10 {
		assert.Zero(t, f.svc.Fail(ctx, "10.0.0.9"))
	}
	_, locked := f.svc.Locked("10.0.0.9")
	assert.False(t, locked)
}

func TestLockoutService_Blacklists(t *testing.T) {
	f := newLockoutFixture(t, 3)
	ctx := context.Background()
	ip := "198.51.100.7"

	f.repo.EXPECT().AddToBlacklist(gomock.Any(), ip).Return(nil).Times(2)

	for range 4 {
		f.svc.Fail(ctx, ip)
	}
}

func TestLockoutService_BlacklistFailureIsLogged(t *testing.T) {
	f := newLockoutFixture(t, 1)
	f.repo.EXPECT().AddToBlacklist(gomock.Any(), "198.51.100.8").Return(errors.New("read-only"))

	assert.Zero(t, f.svc.Fail(context.Background(), "198.51.100.8"))
}
