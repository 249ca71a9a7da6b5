package service

import (
	"context"

	"github.com/MKhiriev/go-progress-tracker/internal/validators"
	"github.com/MKhiriev/go-progress-tracker/models"
)

type ProgressValidationService struct {
	inner     ProgressService
	validator validators.Validator
}

func NewProgressValidationService() ProgressServiceWrapper {
	return &ProgressValidationService{
		validator: validators.NewProgressValidator(),
	}
}

// Upsert rejects the request before storage is touched when the platform is
// blank, a count is missing or negative, or solved exceeds total.
func (v *ProgressValidationService) Upsert(ctx context.Context, userID string, request models.UpsertProgressRequest) (models.Progress, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Progress{}, classifyValidationError(err)
	}

	return v.inner.Upsert(ctx, userID, request)
}

func (v *ProgressValidationService) List(ctx context.Context, userID string) ([]models.Progress, error) {
	return v.inner.List(ctx, userID)
}

func (v *ProgressValidationService) Delete(ctx context.Context, userID, progressID string) error {
	return v.inner.Delete(ctx, userID, progressID)
}

func (v *ProgressValidationService) Wrap(wrapped ProgressService) ProgressService {
	v.inner = wrapped
	return v
}
