package browse

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/avaldes/hubview/clock"
	"github.com/avaldes/hubview/models"
)

// Search owns search mode: it debounces query edits, issues at most one
// request per pause in typing, and swaps the displayed list to the search
// results without touching the accumulated listing underneath. Results are
// replaced wholesale per completed search, never merged.
type Search struct {
	source   UserSource
	post     func(func())
	onUpdate func()
	clk      clock.Clock
	debounce time.Duration
	perPage  int
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	query   string
	active  bool // a search has succeeded and its results are the display source
	results []models.User
	errMsg  string
	timer   *clock.Timer
	seq     int // last issued request; older completions are dropped
}

// NewSearch creates a search controller. post and onUpdate follow the same
// contract as NewPager.
func NewSearch(source UserSource, perPage int, debounce time.Duration, clk clock.Clock, post func(func()), onUpdate func(), log *slog.Logger) *Search {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Search{
		source:   source,
		post:     post,
		onUpdate: onUpdate,
		clk:      clk,
		debounce: debounce,
		perPage:  perPage,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetQuery handles a query edit. A whitespace-only query leaves search mode
// immediately without issuing a request; anything else (re)starts the
// debounce timer, so a burst of edits issues a single request carrying the
// final value.
func (s *Search) SetQuery(q string) {
	s.stopTimer()

	if strings.TrimSpace(q) == "" {
		s.Clear()
		return
	}

	s.query = q
	s.timer = s.clk.AfterFunc(s.debounce, func() {
		s.post(func() {
			s.fire(q)
		})
	})
}

// Clear leaves search mode: pending timer cancelled, results dropped, error
// cleared, accumulated listing restored as the display source.
func (s *Search) Clear() {
	s.stopTimer()
	s.seq++ // invalidate any in-flight request
	s.query = ""
	s.active = false
	s.results = nil
	s.errMsg = ""
	s.onUpdate()
}

func (s *Search) fire(q string) {
	if s.query != q {
		// The query changed after this timer was armed; the newer timer
		// owns the request.
		return
	}
	s.seq++
	seq := s.seq

	go func() {
		items, err := s.source.SearchUsers(s.ctx, q, s.perPage)
		s.post(func() {
			s.finish(seq, items, err)
		})
	}()
}

func (s *Search) finish(seq int, items []models.User, err error) {
	if seq != s.seq {
		// Superseded by a newer request or by Clear.
		return
	}

	if err != nil {
		s.log.Warn("search failed", slog.Any("error", err))
		// Keep the last good results visible rather than blanking the
		// screen; the listing comes back only when the query empties.
		s.errMsg = err.Error()
		s.onUpdate()
		return
	}

	s.results = items
	s.active = true
	s.errMsg = ""
	s.onUpdate()
}

func (s *Search) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Active reports whether search results are the display source.
func (s *Search) Active() bool { return s.active }

// Results returns the current search result set. May be empty even when
// Active, meaning a completed search matched nothing.
func (s *Search) Results() []models.User { return s.results }

// Query returns the current query text.
func (s *Search) Query() string { return s.query }

// Err returns the pending error message, or "" when none.
func (s *Search) Err() string { return s.errMsg }

// Close cancels the debounce timer and any in-flight request.
func (s *Search) Close() {
	s.stopTimer()
	s.seq++
	s.cancel()
}
