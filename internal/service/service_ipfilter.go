package service

import (
	"context"
	"net/netip"
	"slices"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
)

type ipFilterService struct {
	lists store.IPListRepository

	logger *logger.Logger
}

func NewIPFilterService(lists store.IPListRepository, logger *logger.Logger) IPFilterService {
	return &ipFilterService{lists: lists, logger: logger}
}

func normalizeIP(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ip
	}
	return addr.Unmap().String()
}

// Allowed applies the lists: a non-empty whitelist admits only its
// addresses, otherwise blacklisted addresses are refused. Unreadable lists
// admit everyone.
func (f *ipFilterService) Allowed(ctx context.Context, ip string) bool {
	lists, err := f.lists.Lists(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("ip lists unavailable, filter disabled")
		return true
	}
	ip = normalizeIP(ip)
	if len(lists.Whitelist) > 0 {
		return slices.Contains(lists.Whitelist, ip)
	}
	return !slices.Contains(lists.Blacklist, ip)
}

func (f *ipFilterService) Whitelisted(ctx context.Context, ip string) bool {
	lists, err := f.lists.Lists(ctx)
	if err != nil {
		return false
	}
	return slices.Contains(lists.Whitelist, normalizeIP(ip))
}
