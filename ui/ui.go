// Package ui renders the listing and detail views with tview.
package ui

import "github.com/rivo/tview"

// Page names on the root Pages primitive.
const (
	pageBrowse = "browse"
	pageDetail = "detail"
	pageError  = "error"
)

// errorModal builds the standard error modal with the given buttons.
func errorModal(text string, buttons []string, done func(label string)) *tview.Modal {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(buttons)
	modal.SetDoneFunc(func(_ int, label string) {
		done(label)
	})
	return modal
}
