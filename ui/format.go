package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/avaldes/hubview/models"
)

// formatProfile renders the profile pane text.
func formatProfile(p *models.Profile) string {
	var b strings.Builder

	name := p.Name
	if name == "" {
		name = p.Login
	}
	fmt.Fprintf(&b, "[::b]%s[::-]  [gray](%s)[-]\n", tview.Escape(name), tview.Escape(p.Login))
	if p.Bio != "" {
		fmt.Fprintf(&b, "%s\n", tview.Escape(p.Bio))
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", tview.Escape(p.Location))
	}
	fmt.Fprintf(&b, "\nFollowers %d | Following %d | Repos %d | Gists %d\n",
		p.Followers, p.Following, p.PublicRepos, p.PublicGists)
	fmt.Fprintf(&b, "[blue]%s[-]", tview.Escape(p.HTMLURL))
	return b.String()
}

// repoName renders a repository's name cell, tagging private repositories.
func repoName(r models.Repository) string {
	if r.Private {
		return r.Name + " [yellow](private)[-]"
	}
	return r.Name
}

// relativeTime renders t against now in the compact style of the
// repository table ("5m ago", "3d ago", "2y ago").
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
