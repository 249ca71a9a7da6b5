// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-progress-tracker/internal/adapter"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/internal/validators"
)

const (
	msgServerUnavailable = "No network connection or the server is unavailable"
	msgSomethingWrong    = "Something went wrong, please try again"
)

// localMessages are shown for errors raised before any request is sent.
var localMessages = []error{
	validators.ErrMissingRegistrationFields,
	validators.ErrMissingLoginFields,
	validators.ErrUsernameTooShort,
	validators.ErrInvalidEmail,
	validators.ErrPasswordTooShort,
	validators.ErrUsernameTooLong,
	validators.ErrEmailTooLong,
	validators.ErrPasswordTooLong,
	validators.ErrMissingProgressFields,
	validators.ErrNegativeProblems,
	validators.ErrSolvedExceedsTotal,
	validators.ErrPlatformTooLong,
	validators.ErrTooManyProblems,
	service.ErrNotLoggedIn,
}

// humanizeError turns a client service error into the banner text. Apart
// from an expired session, the server's own message wins when there is one.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, service.ErrSessionExpired) {
		return service.ErrSessionExpired.Error()
	}

	if msg := adapter.ServerMessage(err); msg != "" {
		return msg
	}

	if errors.Is(err, adapter.ErrServerUnavailable) {
		return msgServerUnavailable
	}

	for _, known := range localMessages {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return msgSomethingWrong
}
