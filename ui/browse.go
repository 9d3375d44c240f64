package ui

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/avaldes/hubview/browse"
	"github.com/avaldes/hubview/clock"
	"github.com/avaldes/hubview/config"
	"github.com/avaldes/hubview/github"
	"github.com/avaldes/hubview/models"
)

// Browser is the listing view: a search field above the user directory,
// loading further pages as the selection reaches the bottom of the list.
type Browser struct {
	app    *tview.Application
	client *github.Client
	cfg    config.Config
	log    *slog.Logger

	pager  *browse.Pager
	search *browse.Search

	pages       *tview.Pages
	list        *tview.List
	searchInput *tview.InputField
	bottomBar   *tview.TextView
	usersPanel  *tview.Flex

	visible    []models.User // display source of the last render
	rebuilding bool          // suppress list callbacks while re-filling it
	shownErr   string        // load error already presented as a modal
}

// NewBrowser wires the listing view and its two controllers.
func NewBrowser(app *tview.Application, client *github.Client, cfg config.Config, log *slog.Logger) *Browser {
	b := &Browser{
		app:    app,
		client: client,
		cfg:    cfg,
		log:    log,
	}

	post := func(f func()) { app.QueueUpdateDraw(f) }
	b.pager = browse.NewPager(client, cfg.PageSize, post, b.render, log)
	b.search = browse.NewSearch(client, cfg.PageSize, cfg.Debounce, clock.Real(), post, b.render, log)

	b.list = tview.NewList().ShowSecondaryText(false)
	b.list.SetChangedFunc(func(index int, _, _ string, _ rune) {
		if b.rebuilding {
			return
		}
		if !b.searching() {
			b.pager.MaybeLoadNext(index)
		}
		b.updateBottomBar()
	})
	b.list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index < 0 || index >= len(b.visible) {
			return
		}
		b.openDetail(b.visible[index])
	})
	b.list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			b.app.SetFocus(b.searchInput)
			b.updateBottomBar()
			return nil
		case tcell.KeyEscape:
			b.app.Stop()
			return nil
		case tcell.KeyRune:
			// Typing anywhere starts a search, like the input had focus.
			b.app.SetFocus(b.searchInput)
			b.searchInput.SetText(b.searchInput.GetText() + string(event.Rune()))
			b.updateBottomBar()
			return nil
		}
		return event
	})

	b.searchInput = tview.NewInputField().SetLabel("Search: ")
	b.searchInput.SetChangedFunc(func(text string) {
		b.search.SetQuery(text)
	})
	b.searchInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyDown, tcell.KeyTab:
			b.app.SetFocus(b.list)
			b.updateBottomBar()
			return nil
		case tcell.KeyEscape:
			// SetText runs the changed handler, which clears search mode.
			b.searchInput.SetText("")
			b.app.SetFocus(b.list)
			b.updateBottomBar()
			return nil
		}
		return event
	})

	b.bottomBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	return b
}

// Root builds the view hierarchy and returns the application root.
func (b *Browser) Root() tview.Primitive {
	b.usersPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.searchInput, 1, 0, false).
		AddItem(b.list, 0, 1, true)
	b.usersPanel.SetBorder(true).SetTitle(" Users (loading…) ")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.usersPanel, 0, 1, true).
		AddItem(b.bottomBar, 1, 0, false)

	b.updateBottomBar()
	b.pages = tview.NewPages().AddPage(pageBrowse, layout, true, true)
	return b.pages
}

// Start issues the initial page load.
func (b *Browser) Start() {
	b.pager.Start()
}

// Close tears down both controllers.
func (b *Browser) Close() {
	b.pager.Close()
	b.search.Close()
}

// searching reports whether the display source is (or is about to be) the
// search result set rather than the accumulated listing.
func (b *Browser) searching() bool {
	return b.search.Active() || b.search.Query() != ""
}

// render rebuilds the list from the current display source. It runs on the
// UI goroutine, either directly from an input handler or via QueueUpdateDraw.
func (b *Browser) render() {
	var users []models.User
	if b.search.Active() {
		users = b.search.Results()
	} else {
		users = b.pager.Users()
	}
	b.visible = users

	b.rebuilding = true
	current := b.list.GetCurrentItem()
	b.list.Clear()
	for _, u := range users {
		b.list.AddItem(u.Login, "", 0, nil)
	}
	if len(users) > 0 {
		if current >= len(users) {
			current = len(users) - 1
		}
		if current < 0 {
			current = 0
		}
		b.list.SetCurrentItem(current)
	}
	b.rebuilding = false

	b.usersPanel.SetTitle(b.panelTitle(len(users)))
	b.updateBottomBar()

	if msg := b.pager.Err(); msg != "" && msg != b.shownErr {
		b.shownErr = msg
		b.showLoadError(msg)
	}
}

func (b *Browser) panelTitle(count int) string {
	if b.search.Active() {
		if count == 0 {
			return fmt.Sprintf(" No users match %q ", b.search.Query())
		}
		return fmt.Sprintf(" Results for %q (%d) ", b.search.Query(), count)
	}
	switch {
	case b.pager.Loading():
		return " Users (loading…) "
	case b.pager.LoadingMore():
		return fmt.Sprintf(" Users (%d, loading more…) ", count)
	case b.pager.Exhausted():
		return fmt.Sprintf(" Users (%d, end of directory) ", count)
	default:
		return fmt.Sprintf(" Users (%d) ", count)
	}
}

func (b *Browser) updateBottomBar() {
	var text string
	if b.app.GetFocus() == b.searchInput {
		text = "⏎/↓: to list | Esc: clear search"
	} else {
		text = "↑/↓: move | ⏎: open profile | type to search | Esc: quit"
	}
	if msg := b.search.Err(); msg != "" {
		text = "[red]search failed: " + tview.Escape(msg) + "[-]"
	}
	b.bottomBar.SetText(text)
}

func (b *Browser) showLoadError(msg string) {
	modal := errorModal("Could not load users:\n\n"+msg, []string{"Retry", "Quit"}, func(label string) {
		b.pages.RemovePage(pageError)
		if label == "Retry" {
			b.shownErr = ""
			b.pager.Retry()
			return
		}
		b.app.Stop()
	})
	b.pages.AddPage(pageError, modal, true, true)
}

func (b *Browser) openDetail(u models.User) {
	detail := NewDetail(b.app, b.client, b.cfg.RepoLimit, b.log, func() {
		b.pages.RemovePage(pageDetail)
		b.app.SetFocus(b.list)
		b.updateBottomBar()
	})
	b.pages.AddPage(pageDetail, detail.Root(u.Login), true, true)
	detail.Load()
}
