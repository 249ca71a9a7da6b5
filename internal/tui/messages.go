package tui

import (
	"github.com/MKhiriev/go-progress-tracker/models"
)

// NavigateTo switches the RootModel to another page.
type NavigateTo struct {
	Page string
}

// AuthResult is produced by the login and register forms.
type AuthResult struct {
	Session models.Session
	Err     error
}

type progressLoadedMsg struct {
	items []models.Progress
	err   error
}

type progressSavedMsg struct {
	progress models.Progress
	err      error
}

type progressDeletedMsg struct {
	platform string
	err      error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
