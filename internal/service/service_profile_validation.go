package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-health-share/internal/validators"
	"github.com/MKhiriev/go-health-share/models"
)

// ProfileServiceWrapper decorates a ProfileService with additional behavior.
type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService
}

// ProfileValidationService validates updates before they reach the wrapped
// [ProfileService].
type ProfileValidationService struct {
	inner     ProfileService
	validator validators.Validator
}

func NewProfileValidationService() ProfileServiceWrapper {
	return &ProfileValidationService{
		validator: validators.NewProfileValidator(),
	}
}

func (v *ProfileValidationService) GetProfile(ctx context.Context, userID int64) (models.ProfileSettings, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *ProfileValidationService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.ProfileSettings, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.ProfileSettings{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProfile(ctx, userID, update)
}

func (v *ProfileValidationService) TriggerSOS(ctx context.Context, userID int64) (models.EmergencyAccess, error) {
	return v.inner.TriggerSOS(ctx, userID)
}

func (v *ProfileValidationService) Wrap(wrapped ProfileService) ProfileService {
	v.inner = wrapped
	return v
}
