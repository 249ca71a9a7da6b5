package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-progress-tracker/models"
)

type ProgressValidator struct {
}

func NewProgressValidator() Validator {
	return &ProgressValidator{}
}

func (v *ProgressValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UpsertProgressRequest:
		return v.validateUpsertRequest(ctx, value, fields...)
	case *models.UpsertProgressRequest:
		return v.validateUpsertRequest(ctx, *value, fields...)

	case models.Progress:
		return v.validateProgress(ctx, value, fields...)
	case *models.Progress:
		return v.validateProgress(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateUpsertRequest checks presence first so that a request missing any
// field is reported as such even when another field is also malformed.
func (v *ProgressValidator) validateUpsertRequest(ctx context.Context, request models.UpsertProgressRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPlatform, FieldProblemsSolved, FieldTotalProblems, FieldSolvedWithinTotal}
	}

	platform := strings.TrimSpace(request.Platform)
	solved, total := request.ProblemsSolved, request.TotalProblems

	for _, f := range fields {
		switch {
		case f == FieldPlatform && platform == "",
			f == FieldProblemsSolved && solved == nil,
			f == FieldTotalProblems && total == nil:
			return ErrMissingProgressFields
		}
	}

	for _, f := range fields {
		switch f {
		case FieldPlatform:
			if utf8.RuneCountInString(platform) > MaxPlatformLength {
				return ErrPlatformTooLong
			}
		case FieldProblemsSolved:
			if err := checkProblems(*solved); err != nil {
				return err
			}
		case FieldTotalProblems:
			if err := checkProblems(*total); err != nil {
				return err
			}
		case FieldSolvedWithinTotal:
			if solved != nil && total != nil && *solved > *total {
				return ErrSolvedExceedsTotal
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProgressValidator) validateProgress(ctx context.Context, progress models.Progress, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPlatform, FieldProblemsSolved, FieldTotalProblems, FieldSolvedWithinTotal}
	}

	for _, f := range fields {
		switch f {
		case FieldPlatform:
			platform := strings.TrimSpace(progress.Platform)
			if platform == "" {
				return ErrMissingProgressFields
			}
			if utf8.RuneCountInString(platform) > MaxPlatformLength {
				return ErrPlatformTooLong
			}
		case FieldProblemsSolved:
			if err := checkProblems(progress.ProblemsSolved); err != nil {
				return err
			}
		case FieldTotalProblems:
			if err := checkProblems(progress.TotalProblems); err != nil {
				return err
			}
		case FieldSolvedWithinTotal:
			if progress.ProblemsSolved > progress.TotalProblems {
				return ErrSolvedExceedsTotal
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func checkProblems(n int) error {
	switch {
	case n < 0:
		return ErrNegativeProblems
	case n > MaxProblems:
		return ErrTooManyProblems
	}
	return nil
}
