// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-progress-tracker/internal/adapter"
	"github.com/MKhiriev/go-progress-tracker/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The adapter error stays in the chain so the server's
// message can still be shown with [adapter.ServerMessage].
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := adapter.ServerMessage(err)

	var target error
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidCredentials:
			target = ErrInvalidCredentials
		case app.MsgUserAlreadyExists:
			target = ErrDuplicateIdentity
		case app.MsgMissingRegistrationFields, app.MsgMissingLoginFields, app.MsgMissingProgressFields:
			target = ErrMissingField
		default:
			target = ErrInvalidInput
		}
	case errors.Is(err, adapter.ErrUnauthorized):
		target = ErrTokenIsExpiredOrInvalid
	case errors.Is(err, adapter.ErrNotFound):
		target = ErrNotFound
	default:
		return err
	}

	return fmt.Errorf("%w: %w", target, err)
}
