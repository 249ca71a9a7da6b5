package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-progress-tracker/models"
)

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(ctx context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if username == "" {
				return ErrMissingRegistrationFields
			}
		case FieldEmail:
			if email == "" {
				return ErrMissingRegistrationFields
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrMissingRegistrationFields
			}
		default:
			return ErrUnknownField
		}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			switch n := utf8.RuneCountInString(username); {
			case n < MinUsernameLength:
				return ErrUsernameTooShort
			case n > MaxUsernameLength:
				return ErrUsernameTooLong
			}
		case FieldEmail:
			if !strings.Contains(email, "@") {
				return ErrInvalidEmail
			}
			if utf8.RuneCountInString(strings.ToLower(email)) > MaxEmailLength {
				return ErrEmailTooLong
			}
		case FieldPassword:
			if utf8.RuneCountInString(request.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
			if len(request.Password) > MaxPasswordBytes {
				return ErrPasswordTooLong
			}
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(ctx context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(request.Email) == "" {
				return ErrMissingLoginFields
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrMissingLoginFields
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
