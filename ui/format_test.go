package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avaldes/hubview/models"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero value", time.Time{}, ""},
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-72 * time.Hour), "3d ago"},
		{"months ago", now.Add(-100 * 24 * time.Hour), "3mo ago"},
		{"years ago", now.Add(-800 * 24 * time.Hour), "2y ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(tt.t, now))
		})
	}
}

func TestFormatProfileFallsBackToLogin(t *testing.T) {
	p := &models.Profile{
		User: models.User{Login: "octocat", HTMLURL: "https://github.com/octocat"},
	}
	text := formatProfile(p)
	assert.Contains(t, text, "octocat")
	assert.Contains(t, text, "https://github.com/octocat")
}

func TestFormatProfileIncludesOptionalFields(t *testing.T) {
	p := &models.Profile{
		User:      models.User{Login: "octocat"},
		Name:      "The Octocat",
		Bio:       "likes tentacles",
		Location:  "San Francisco",
		Followers: 9000,
	}
	text := formatProfile(p)
	assert.Contains(t, text, "The Octocat")
	assert.Contains(t, text, "likes tentacles")
	assert.Contains(t, text, "San Francisco")
	assert.Contains(t, text, "Followers 9000")
}

func TestRepoNameTagsPrivate(t *testing.T) {
	assert.Equal(t, "dotfiles", repoName(models.Repository{Name: "dotfiles"}))
	assert.Contains(t, repoName(models.Repository{Name: "secrets", Private: true}), "(private)")
}
