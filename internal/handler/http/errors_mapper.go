package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/service"
	"github.com/MKhiriev/go-progress-tracker/internal/store"
	"github.com/MKhiriev/go-progress-tracker/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrMissingField:            http.StatusBadRequest,
	service.ErrInvalidInput:            http.StatusBadRequest,
	service.ErrDuplicateIdentity:       http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusBadRequest,
	service.ErrNotFound:                http.StatusNotFound,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNoUserIDInContext:       http.StatusUnauthorized,

	store.ErrUserAlreadyExists:  http.StatusBadRequest,
	store.ErrProgressConstraint: http.StatusBadRequest,
	store.ErrProgressNotFound:   http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

// errorMessages is checked in order; the first match wins. Validator errors
// come first because they are the most specific reason a request failed.
var errorMessages = []struct {
	err     error
	message string
}{
	{validators.ErrMissingRegistrationFields, app.MsgMissingRegistrationFields},
	{validators.ErrMissingLoginFields, app.MsgMissingLoginFields},
	{validators.ErrUsernameTooShort, app.MsgUsernameTooShort},
	{validators.ErrInvalidEmail, app.MsgInvalidEmail},
	{validators.ErrPasswordTooShort, app.MsgPasswordTooShort},
	{validators.ErrUsernameTooLong, app.MsgUsernameTooLong},
	{validators.ErrEmailTooLong, app.MsgEmailTooLong},
	{validators.ErrPasswordTooLong, app.MsgPasswordTooLong},
	{validators.ErrMissingProgressFields, app.MsgMissingProgressFields},
	{validators.ErrNegativeProblems, app.MsgNegativeProblems},
	{validators.ErrSolvedExceedsTotal, app.MsgSolvedExceedsTotal},
	{validators.ErrPlatformTooLong, app.MsgPlatformTooLong},
	{validators.ErrTooManyProblems, app.MsgTooManyProblems},

	{service.ErrDuplicateIdentity, app.MsgUserAlreadyExists},
	{service.ErrInvalidCredentials, app.MsgInvalidCredentials},
	{service.ErrNotFound, app.MsgProgressNotFound},
	{service.ErrTokenIsExpiredOrInvalid, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrNoUserIDInContext, app.MsgNoToken},
	{store.ErrProgressConstraint, app.MsgSolvedExceedsTotal},
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// messageFromError returns the client-facing message for err. Errors with
// no public wording get fallback, so internal details never leak.
func messageFromError(err error, fallback string) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}

	return fallback
}
