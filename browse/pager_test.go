package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaldes/hubview/models"
)

// fakeSource is a scripted UserSource. Page results and errors are set up
// front; calls are recorded for assertions.
type fakeSource struct {
	mu        sync.Mutex
	pages     map[int][]models.User
	pageErrs  map[int]error
	listCalls []int

	searchFn    func(query string) ([]models.User, error)
	searchCalls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:    make(map[int][]models.User),
		pageErrs: make(map[int]error),
	}
}

func (f *fakeSource) ListUsers(_ context.Context, page, _ int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, page)
	if err := f.pageErrs[page]; err != nil {
		return nil, err
	}
	return f.pages[page], nil
}

func (f *fakeSource) SearchUsers(_ context.Context, query string, _ int) ([]models.User, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	fn := f.searchFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(query)
}

func (f *fakeSource) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.listCalls...)
}

func (f *fakeSource) searched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchCalls...)
}

// uiPump queues posted completions and runs them one at a time, standing in
// for the tview update queue.
type uiPump struct {
	ch chan func()
}

func newPump() *uiPump {
	return &uiPump{ch: make(chan func(), 16)}
}

func (p *uiPump) post(f func()) { p.ch <- f }

// step runs the next queued completion.
func (p *uiPump) step(t *testing.T) {
	t.Helper()
	select {
	case f := <-p.ch:
		f()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a queued completion")
	}
}

// idle asserts that no completion is pending.
func (p *uiPump) idle(t *testing.T) {
	t.Helper()
	select {
	case <-p.ch:
		t.Fatal("unexpected queued completion")
	case <-time.After(50 * time.Millisecond):
	}
}

func userRange(from, to int64) []models.User {
	var users []models.User
	for id := from; id <= to; id++ {
		users = append(users, models.User{ID: id, Login: fmt.Sprintf("user%d", id)})
	}
	return users
}

func ids(users []models.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func newTestPager(src *fakeSource, pump *uiPump) *Pager {
	return NewPager(src, 30, pump.post, func() {}, nil)
}

func TestPagerInitialLoadReplacesListing(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	assert.True(t, p.Loading())
	pump.step(t)

	assert.False(t, p.Loading())
	assert.Equal(t, 1, p.Page())
	assert.Len(t, p.Users(), 30)
	assert.Empty(t, p.Err())
}

func TestPagerOverlappingPagesAreDeduplicated(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	src.pages[2] = userRange(25, 54)
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	pump.step(t)

	// Last item became visible.
	p.MaybeLoadNext(len(p.Users()) - 1)
	assert.True(t, p.LoadingMore())
	pump.step(t)

	require.Len(t, p.Users(), 54)
	seen := make(map[int64]bool)
	for i, id := range ids(p.Users()) {
		assert.Equal(t, int64(i+1), id, "listing must stay in fetch order")
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestPagerEmptyPageMarksExhausted(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	pump.step(t)

	p.MaybeLoadNext(29) // page 2 is empty
	pump.step(t)
	assert.True(t, p.Exhausted())
	assert.Equal(t, 1, p.Page())

	// No page 3 (or any further page) request may ever be issued.
	p.MaybeLoadNext(29)
	p.MaybeLoadNext(29)
	pump.idle(t)
	assert.Equal(t, []int{1, 2}, src.calls())
}

func TestPagerFailureKeepsStateAndRetryRestartsFromPageOne(t *testing.T) {
	src := newFakeSource()
	src.pageErrs[1] = errors.New("connection refused")
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	pump.step(t)

	assert.Equal(t, "connection refused", p.Err())
	assert.Empty(t, p.Users())
	assert.False(t, p.Exhausted())

	// While the error is pending the trigger must stay quiet.
	p.MaybeLoadNext(0)
	pump.idle(t)

	delete(src.pageErrs, 1)
	src.pages[1] = userRange(1, 30)
	p.Retry()
	assert.Empty(t, p.Err())
	pump.step(t)

	assert.Equal(t, []int{1, 1}, src.calls())
	assert.Len(t, p.Users(), 30)
}

func TestPagerLaterPageFailureLeavesListingIntact(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	src.pageErrs[2] = errors.New("bad gateway")
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	pump.step(t)
	p.MaybeLoadNext(29)
	pump.step(t)

	assert.Equal(t, "bad gateway", p.Err())
	assert.Len(t, p.Users(), 30, "failed page must not mutate the listing")
	assert.Equal(t, 1, p.Page())
	assert.False(t, p.Exhausted())
}

func TestPagerSingleLoadInFlight(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	src.pages[2] = userRange(31, 60)
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	pump.step(t)

	// Re-armed trigger firing repeatedly before the load completes must
	// not issue a second request.
	p.MaybeLoadNext(29)
	p.MaybeLoadNext(29)
	p.MaybeLoadNext(29)
	pump.step(t)
	pump.idle(t)

	assert.Equal(t, []int{1, 2}, src.calls())
	assert.Len(t, p.Users(), 60)
}

func TestPagerIgnoresStaleTriggerIndexes(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	pump.step(t)

	// Only the final item arms the next load.
	p.MaybeLoadNext(0)
	p.MaybeLoadNext(15)
	pump.idle(t)
	assert.Equal(t, []int{1}, src.calls())
}

func TestPagerDropsCompletionsAfterClose(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = userRange(1, 30)
	pump := newPump()
	p := newTestPager(src, pump)

	p.Start()
	p.Close()
	pump.step(t)

	assert.Empty(t, p.Users(), "completion issued before Close must not apply")
}
