package tui

import (
	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

// NavigateTo asks [RootModel] to switch pages. Payload, when set, is
// delivered to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult finishes the login and register pages.
type LoginResult struct {
	Err     error
	Session models.OwnerSession
}

// sessionStepMsg carries the result of one [service.ShareSession] call.
type sessionStepMsg struct {
	state service.SessionState
	err   error
}

type settingsLoadedMsg struct {
	settings models.ProfileSettings
	err      error
}

// policyResultMsg reports the confirmation or rejection of one setting.
type policyResultMsg struct {
	setting string
	err     error
}

type sosDoneMsg struct {
	access models.EmergencyAccess
	err    error
}

type copiedMsg struct {
	url string
	err error
}

type clearStatusMsg struct{}
