package ui

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/avaldes/hubview/github"
	"github.com/avaldes/hubview/models"
)

// Detail renders one user's profile and repositories. It is stateless
// across navigations: both payloads are fetched fresh per visit and
// discarded when the view closes. Fetch failures render inline in the
// affected pane; there is no retry here.
type Detail struct {
	app       *tview.Application
	client    *github.Client
	repoLimit int
	log       *slog.Logger
	onClose   func()

	login   string
	profile *models.Profile
	repos   []models.Repository

	profileView *tview.TextView
	repoTable   *tview.Table
	bottomBar   *tview.TextView
}

// NewDetail creates a detail view. onClose is invoked when the user
// navigates back.
func NewDetail(app *tview.Application, client *github.Client, repoLimit int, log *slog.Logger, onClose func()) *Detail {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Detail{
		app:       app,
		client:    client,
		repoLimit: repoLimit,
		log:       log,
		onClose:   onClose,
	}
}

// Root builds the detail layout for login.
func (d *Detail) Root(login string) tview.Primitive {
	d.login = login

	d.profileView = tview.NewTextView().
		SetDynamicColors(true).
		SetText("Loading profile…")
	d.profileView.SetBorder(true).SetTitle(" " + login + " ")

	d.repoTable = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	d.repoTable.SetBorder(true).SetTitle(" Repositories ")
	d.repoTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			d.onClose()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				d.onClose()
				return nil
			case 'c':
				d.copyProfileURL()
				return nil
			case 'r':
				d.copyRepoURL()
				return nil
			}
		}
		return event
	})

	d.bottomBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	d.bottomBar.SetText(d.hints())

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.profileView, 9, 0, false).
		AddItem(d.repoTable, 0, 1, true).
		AddItem(d.bottomBar, 1, 0, false)
}

// Load fires the two independent fetches: profile and repository list.
func (d *Detail) Load() {
	go func() {
		profile, err := d.client.GetUser(context.Background(), d.login)
		d.app.QueueUpdateDraw(func() {
			if err != nil {
				d.log.Warn("profile fetch failed", slog.String("login", d.login), slog.Any("error", err))
				d.profileView.SetText("[red]" + tview.Escape(err.Error()) + "[-]")
				return
			}
			d.profile = profile
			d.profileView.SetText(formatProfile(profile))
		})
	}()

	go func() {
		repos, err := d.client.ListRepositories(context.Background(), d.login, d.repoLimit)
		d.app.QueueUpdateDraw(func() {
			if err != nil {
				d.log.Warn("repository fetch failed", slog.String("login", d.login), slog.Any("error", err))
				d.renderRepoMessage("[red]" + tview.Escape(err.Error()) + "[-]")
				return
			}
			d.repos = repos
			d.renderRepos()
		})
	}()
}

func (d *Detail) renderRepos() {
	if len(d.repos) == 0 {
		d.renderRepoMessage("No repositories")
		return
	}

	d.repoTable.Clear()
	headers := []string{"Name", "Stars", "Forks", "Language", "Updated", "Description"}
	for col, h := range headers {
		d.repoTable.SetCell(0, col, tview.NewTableCell("[::b]"+h).
			SetSelectable(false))
	}

	now := time.Now()
	for row, r := range d.repos {
		d.repoTable.SetCell(row+1, 0, tview.NewTableCell(repoName(r)))
		d.repoTable.SetCell(row+1, 1, tview.NewTableCell(strconv.Itoa(r.Stars)))
		d.repoTable.SetCell(row+1, 2, tview.NewTableCell(strconv.Itoa(r.Forks)))
		d.repoTable.SetCell(row+1, 3, tview.NewTableCell(tview.Escape(r.Language)))
		d.repoTable.SetCell(row+1, 4, tview.NewTableCell(relativeTime(r.UpdatedAt, now)))
		d.repoTable.SetCell(row+1, 5, tview.NewTableCell(tview.Escape(r.Description)).
			SetExpansion(1))
	}
	d.repoTable.Select(1, 0)
}

// renderRepoMessage fills the table with a single informational row.
func (d *Detail) renderRepoMessage(msg string) {
	d.repoTable.Clear()
	d.repoTable.SetCell(0, 0, tview.NewTableCell(msg).SetSelectable(false))
}

func (d *Detail) copyProfileURL() {
	if d.profile == nil || d.profile.HTMLURL == "" {
		return
	}
	if err := clipboard.WriteAll(d.profile.HTMLURL); err != nil {
		d.bottomBar.SetText("[red]clipboard: " + tview.Escape(err.Error()) + "[-]")
		return
	}
	d.bottomBar.SetText("Copied " + tview.Escape(d.profile.HTMLURL))
}

func (d *Detail) copyRepoURL() {
	row, _ := d.repoTable.GetSelection()
	i := row - 1 // header row
	if i < 0 || i >= len(d.repos) {
		return
	}
	if err := clipboard.WriteAll(d.repos[i].HTMLURL); err != nil {
		d.bottomBar.SetText("[red]clipboard: " + tview.Escape(err.Error()) + "[-]")
		return
	}
	d.bottomBar.SetText("Copied " + tview.Escape(d.repos[i].HTMLURL))
}

func (d *Detail) hints() string {
	return "Esc/q: back | c: copy profile URL | r: copy repo URL"
}
