// Package browse holds the listing view's state machines: incremental
// pagination over the user directory and debounced remote search. All state
// lives in controller structs and every transition goes through their
// methods, which must be called from the UI goroutine. Fetches run in
// background goroutines and marshal their completions back through an
// injected post hook.
package browse

import (
	"context"
	"log/slog"

	"github.com/avaldes/hubview/models"
)

// UserSource is the slice of the GitHub API the listing view consumes.
type UserSource interface {
	ListUsers(ctx context.Context, page, perPage int) ([]models.User, error)
	SearchUsers(ctx context.Context, query string, perPage int) ([]models.User, error)
}

// Pager owns the accumulated listing: the growing, de-duplicated sequence of
// users loaded page by page. Page 1 replaces the listing (initial load and
// retry), later pages append after dropping IDs already present, and an
// empty page marks the listing exhausted.
type Pager struct {
	source   UserSource
	post     func(func())
	onUpdate func()
	log      *slog.Logger
	perPage  int

	ctx    context.Context
	cancel context.CancelFunc

	users        []models.User
	seen         map[int64]bool
	page         int // last successfully loaded page
	inflightPage int // 0 when no load is in flight
	exhausted    bool
	errMsg       string
	gen          int // bumped per issued load; stale completions are dropped
}

// NewPager creates a pagination controller. post marshals a function onto
// the UI goroutine; onUpdate is invoked there after every state change.
func NewPager(source UserSource, perPage int, post func(func()), onUpdate func(), log *slog.Logger) *Pager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pager{
		source:   source,
		post:     post,
		onUpdate: onUpdate,
		log:      log,
		perPage:  perPage,
		ctx:      ctx,
		cancel:   cancel,
		seen:     make(map[int64]bool),
	}
}

// Start issues the initial page-1 load.
func (p *Pager) Start() {
	p.loadPage(1)
}

// Retry clears the error state and reissues page 1. Pagination restarts
// from the beginning rather than resuming the failed page; that is the
// documented behavior, not an accident of this implementation.
func (p *Pager) Retry() {
	p.errMsg = ""
	p.loadPage(1)
}

// MaybeLoadNext is the end-of-list trigger. The view calls it with the
// index of the item that just became visible; when that item is the last
// accumulated one and no load is in flight, the listing is not exhausted,
// and no error is pending, the next page is requested. Earlier indexes are
// stale trigger firings and are ignored.
func (p *Pager) MaybeLoadNext(visibleIndex int) {
	if len(p.users) == 0 || visibleIndex < len(p.users)-1 {
		return
	}
	if p.exhausted || p.inflightPage != 0 || p.errMsg != "" {
		return
	}
	p.loadPage(p.page + 1)
}

func (p *Pager) loadPage(n int) {
	if p.inflightPage != 0 {
		return
	}
	p.inflightPage = n
	p.gen++
	gen := p.gen
	p.onUpdate()

	go func() {
		users, err := p.source.ListUsers(p.ctx, n, p.perPage)
		p.post(func() {
			p.finishLoad(gen, n, users, err)
		})
	}()
}

func (p *Pager) finishLoad(gen, n int, result []models.User, err error) {
	if gen != p.gen {
		// A newer load or a Close superseded this one.
		return
	}
	p.inflightPage = 0

	if err != nil {
		p.log.Warn("page load failed", slog.Int("page", n), slog.Any("error", err))
		p.errMsg = err.Error()
		p.onUpdate()
		return
	}
	if len(result) == 0 {
		p.exhausted = true
		p.onUpdate()
		return
	}

	if n == 1 {
		p.users = nil
		p.seen = make(map[int64]bool)
	}
	for _, u := range result {
		if p.seen[u.ID] {
			continue
		}
		p.seen[u.ID] = true
		p.users = append(p.users, u)
	}
	p.page = n
	p.log.Debug("page loaded", slog.Int("page", n), slog.Int("total", len(p.users)))
	p.onUpdate()
}

// Users returns the accumulated listing.
func (p *Pager) Users() []models.User { return p.users }

// Loading reports whether the initial page-1 load is outstanding.
func (p *Pager) Loading() bool { return p.inflightPage == 1 }

// LoadingMore reports whether a page beyond the first is outstanding.
func (p *Pager) LoadingMore() bool { return p.inflightPage > 1 }

// Exhausted reports whether the source has signaled that no further pages
// exist.
func (p *Pager) Exhausted() bool { return p.exhausted }

// Err returns the pending error message, or "" when none.
func (p *Pager) Err() string { return p.errMsg }

// Page returns the last successfully loaded page number.
func (p *Pager) Page() int { return p.page }

// Close cancels any in-flight load and invalidates pending completions.
func (p *Pager) Close() {
	p.gen++
	p.cancel()
}
