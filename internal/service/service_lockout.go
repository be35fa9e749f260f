package service

import (
	"context"
	"sync"
	"time"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
)

// lockoutStep imposes timeout once an address reaches attempts failures.
type lockoutStep struct {
	attempts int
	timeout  time.Duration
}

// lockoutSchedule is ordered by descending attempts.
var lockoutSchedule = []lockoutStep{
	{attempts: 9, timeout: 300 * time.Second},
	{attempts: 6, timeout: 90 * time.Second},
	{attempts: 3, timeout: 60 * time.Second},
}

type lockoutState struct {
	failures int
	until    time.Time
}

// lockoutService keeps failure counters in memory; they reset on restart.
type lockoutService struct {
	mu    sync.Mutex
	state map[string]*lockoutState

	ipFilter       IPFilterService
	ipLists        store.IPListRepository
	blacklistAfter int
	now            func() time.Time

	logger *logger.Logger
}

func NewLockoutService(ipFilter IPFilterService, ipLists store.IPListRepository, cfg config.Security, logger *logger.Logger) LockoutService {
	return &lockoutService{
		state:          make(map[string]*lockoutState),
		ipFilter:       ipFilter,
		ipLists:        ipLists,
		blacklistAfter: cfg.BlacklistAfterAttempts,
		now:            time.Now,
		logger:         logger,
	}
}

func (l *lockoutService) Locked(ip string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.state[ip]
	if !ok {
		return 0, false
	}
	remaining := st.until.Sub(l.now())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

func (l *lockoutService) Fail(ctx context.Context, ip string) time.Duration {
	log := logger.FromContext(ctx)

	if l.ipFilter.Whitelisted(ctx, ip) {
		return 0
	}

	l.mu.Lock()
	st, ok := l.state[ip]
	if !ok {
		st = &lockoutState{}
		l.state[ip] = st
	}
	st.failures++
	failures := st.failures

	var timeout time.Duration
	for _, step := range lockoutSchedule {
		if failures >= step.attempts {
			timeout = step.timeout
			break
		}
	}
	if timeout > 0 {
		st.until = l.now().Add(timeout)
	}
	l.mu.Unlock()

	if timeout > 0 {
		log.Warn().Str("ip", ip).Int("failures", failures).Dur("timeout", timeout).Msg("address locked out")
	}
	if l.blacklistAfter > 0 && failures >= l.blacklistAfter {
		if err := l.ipLists.AddToBlacklist(ctx, ip); err != nil {
			log.Err(err).Str("ip", ip).Msg("failed to blacklist address")
		} else {
			log.Warn().Str("ip", ip).Int("failures", failures).Msg("address blacklisted")
		}
	}
	return timeout
}

func (l *lockoutService) Succeed(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.state, ip)
}
