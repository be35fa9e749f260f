package store

import (
	"bufio"
	"bytes"
	"context"
	"net/netip"
	"slices"
	"strings"
	"sync"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/models"
)

// ipListRepository keeps the allow and deny lists as plain-text files, one
// address per line. Blank lines and lines starting with '#' are ignored.
type ipListRepository struct {
	mu        sync.Mutex
	whitelist watchedFile
	blacklist watchedFile
	lists     models.IPLists
	logger    *logger.Logger
}

// NewIPListRepository returns an [IPListRepository] backed by the two files.
func NewIPListRepository(whitelistPath, blacklistPath string, logger *logger.Logger) IPListRepository {
	return &ipListRepository{
		whitelist: watchedFile{path: whitelistPath},
		blacklist: watchedFile{path: blacklistPath},
		lists:     models.IPLists{Whitelist: []string{}, Blacklist: []string{}},
		logger:    logger,
	}
}

func (r *ipListRepository) refresh() error {
	if err := r.refreshOne(&r.whitelist, &r.lists.Whitelist); err != nil {
		return err
	}
	return r.refreshOne(&r.blacklist, &r.lists.Blacklist)
}

func (r *ipListRepository) refreshOne(f *watchedFile, dst *[]string) error {
	if f.path == "" {
		return nil
	}
	data, changed, err := f.read()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	*dst = r.parse(data)
	f.markSeen(data)
	return nil
}

func (r *ipListRepository) parse(data []byte) []string {
	out := []string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addr, err := netip.ParseAddr(line)
		if err != nil {
			r.logger.Warn().Str("line", line).Msg("skipping invalid address in ip list")
			continue
		}
		if s := addr.Unmap().String(); !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func format(addrs []string) []byte {
	var b bytes.Buffer
	for _, a := range addrs {
		b.WriteString(a)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func (r *ipListRepository) Lists(ctx context.Context) (models.IPLists, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return models.IPLists{}, err
	}
	return models.IPLists{
		Whitelist: slices.Clone(r.lists.Whitelist),
		Blacklist: slices.Clone(r.lists.Blacklist),
	}, nil
}

// Replace overwrites both lists. Invalid addresses are dropped.
func (r *ipListRepository) Replace(ctx context.Context, lists models.IPLists) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	white := r.parse([]byte(strings.Join(lists.Whitelist, "\n")))
	black := r.parse([]byte(strings.Join(lists.Blacklist, "\n")))

	if err := r.whitelist.write(format(white)); err != nil {
		return err
	}
	if err := r.blacklist.write(format(black)); err != nil {
		return err
	}
	r.lists = models.IPLists{Whitelist: white, Blacklist: black}
	return nil
}

func (r *ipListRepository) AddToBlacklist(ctx context.Context, ip string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return err
	}
	parsed := r.parse([]byte(ip))
	if len(parsed) == 0 || slices.Contains(r.lists.Blacklist, parsed[0]) {
		return nil
	}

	next := append(slices.Clone(r.lists.Blacklist), parsed[0])
	if err := r.blacklist.write(format(next)); err != nil {
		return err
	}
	r.lists.Blacklist = next
	return nil
}
