package validators

import (
	"errors"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingProgressFields = errors.New(app.MsgMissingProgressFields)
	ErrNegativeProblems      = errors.New(app.MsgNegativeProblems)
	ErrSolvedExceedsTotal    = errors.New(app.MsgSolvedExceedsTotal)
	ErrPlatformTooLong       = errors.New(app.MsgPlatformTooLong)
	ErrTooManyProblems       = errors.New(app.MsgTooManyProblems)

	ErrMissingRegistrationFields = errors.New(app.MsgMissingRegistrationFields)
	ErrMissingLoginFields        = errors.New(app.MsgMissingLoginFields)
	ErrUsernameTooShort          = errors.New(app.MsgUsernameTooShort)
	ErrInvalidEmail              = errors.New(app.MsgInvalidEmail)
	ErrPasswordTooShort          = errors.New(app.MsgPasswordTooShort)
	ErrUsernameTooLong           = errors.New(app.MsgUsernameTooLong)
	ErrEmailTooLong              = errors.New(app.MsgEmailTooLong)
	ErrPasswordTooLong           = errors.New(app.MsgPasswordTooLong)
)

// IsMissingField reports whether err means a required value was absent
// rather than present but malformed.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingProgressFields) ||
		errors.Is(err, ErrMissingRegistrationFields) ||
		errors.Is(err, ErrMissingLoginFields)
}
