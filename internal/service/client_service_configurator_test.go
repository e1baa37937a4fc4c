package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/mock"
	"github.com/MKhiriev/go-health-share/internal/validators"
	"github.com/MKhiriev/go-health-share/models"
)

func ownerSettings() models.ProfileSettings {
	return models.ProfileSettings{
		Username:        "jane-doe",
		IsPublicProfile: true,
		ShareLinkSettings: models.ShareLinkSettings{
			AccessType:  models.AccessPassword,
			HasPassword: true,
		},
		PublicFields: models.FieldSet{models.FieldFullName, models.FieldBloodType},
		EmergencyMode: models.EmergencyPolicy{
			Enabled:        true,
			CriticalFields: models.DefaultCriticalFields,
		},
	}
}

func newTestConfigurator(t *testing.T) (*profileConfigurator, *mock.MockOwnerAdapter) {
	t.Helper()

	ctrl := gomock.NewController(t)
	owner := mock.NewMockOwnerAdapter(ctrl)
	c := NewProfileConfigurator(owner, logger.Nop()).(*profileConfigurator)
	c.now = func() time.Time { return testNow }

	owner.EXPECT().GetProfile(gomock.Any()).Return(ownerSettings(), nil)
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	return c, owner
}

// echo returns the settings the server would store for an accepted update.
func echo(t *testing.T, mutate func(*models.ProfileSettings)) func(context.Context, models.ProfileUpdate) (models.ProfileSettings, error) {
	return func(context.Context, models.ProfileUpdate) (models.ProfileSettings, error) {
		s := ownerSettings()
		mutate(&s)
		return s, nil
	}
}

func snapshot(t *testing.T, c *profileConfigurator) models.ProfileSettings {
	t.Helper()
	s, err := c.Snapshot()
	require.NoError(t, err)
	return s
}

func TestProfileConfigurator_NotLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := NewProfileConfigurator(mock.NewMockOwnerAdapter(ctrl), logger.Nop())

	_, err := c.Snapshot()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, c.SetPublic(context.Background(), false), ErrNotLoaded)
}

func TestProfileConfigurator_RejectionIsLogged(t *testing.T) {
	c, owner := newTestConfigurator(t)
	var buf bytes.Buffer
	c.logger = logger.New(&buf, "test")

	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).
		Return(models.ProfileSettings{}, rejected(http.StatusBadRequest, adapter.ErrBadRequest, "nope"))

	require.Error(t, c.SetPublic(context.Background(), false))
	assert.Contains(t, buf.String(), "profile update rejected")
}

func TestProfileConfigurator_SetPublicOffPreservesPolicy(t *testing.T) {
	c, owner := newTestConfigurator(t)

	owner.EXPECT().UpdateProfile(gomock.Any(), models.ProfileUpdate{IsPublicProfile: ptr(false)}).
		DoAndReturn(echo(t, func(s *models.ProfileSettings) { s.IsPublicProfile = false }))

	require.NoError(t, c.SetPublic(context.Background(), false))

	s := snapshot(t, c)
	assert.False(t, s.IsPublicProfile)
	assert.Equal(t, models.AccessPassword, s.ShareLinkSettings.AccessType)
	assert.Equal(t, models.FieldSet{models.FieldFullName, models.FieldBloodType}, s.PublicFields)
}

func TestProfileConfigurator_FieldToggleRollback(t *testing.T) {
	c, owner := newTestConfigurator(t)

	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.ProfileUpdate) (models.ProfileSettings, error) {
			require.NotNil(t, u.PublicFields)
			assert.True(t, u.PublicFields.Has(models.FieldAllergies))
			return models.ProfileSettings{}, rejected(http.StatusBadRequest, adapter.ErrBadRequest, "Could not update settings")
		})

	err := c.TogglePublicField(context.Background(), models.FieldAllergies)

	var updateErr *PolicyUpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, SettingPublicField(models.FieldAllergies), updateErr.Field)
	assert.Equal(t, "Could not update settings", DisplayMessage(err, ""))

	s := snapshot(t, c)
	assert.False(t, s.PublicFields.Has(models.FieldAllergies))
	assert.Equal(t, models.FieldSet{models.FieldFullName, models.FieldBloodType}, s.PublicFields)
}

func TestProfileConfigurator_FieldToggleConfirmed(t *testing.T) {
	c, owner := newTestConfigurator(t)

	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(echo(t, func(s *models.ProfileSettings) { s.PublicFields = models.FieldSet{models.FieldFullName} }))

	require.NoError(t, c.TogglePublicField(context.Background(), models.FieldBloodType))
	assert.Equal(t, models.FieldSet{models.FieldFullName}, snapshot(t, c).PublicFields)
}

func TestProfileConfigurator_OneUpdatePerFieldInFlight(t *testing.T) {
	c, owner := newTestConfigurator(t)

	started := make(chan struct{})
	release := make(chan struct{})
	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.ProfileUpdate) (models.ProfileSettings, error) {
			close(started)
			<-release
			s := ownerSettings()
			s.PublicFields = s.PublicFields.With(models.FieldGender)
			return s, nil
		})

	done := make(chan error, 1)
	go func() { done <- c.TogglePublicField(context.Background(), models.FieldGender) }()

	<-started
	assert.True(t, snapshot(t, c).PublicFields.Has(models.FieldGender))
	assert.ErrorIs(t, c.TogglePublicField(context.Background(), models.FieldGender), ErrUpdateInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, snapshot(t, c).PublicFields.Has(models.FieldGender))
}

func TestProfileConfigurator_ListTogglesAreSerialized(t *testing.T) {
	c, owner := newTestConfigurator(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var stored models.FieldSet

	gomock.InOrder(
		owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.ProfileUpdate) (models.ProfileSettings, error) {
				require.NotNil(t, u.PublicFields)
				assert.False(t, u.PublicFields.Has(models.FieldBloodType))
				close(started)
				<-release
				return models.ProfileSettings{}, rejected(http.StatusBadRequest, adapter.ErrBadRequest, "Could not update settings")
			}),
		owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.ProfileUpdate) (models.ProfileSettings, error) {
				require.NotNil(t, u.PublicFields)
				stored = *u.PublicFields
				s := ownerSettings()
				s.PublicFields = stored
				return s, nil
			}),
	)

	done := make(chan error, 1)
	go func() { done <- c.TogglePublicField(context.Background(), models.FieldBloodType) }()
	<-started

	// a second toggle of the same list must not carry the unconfirmed one
	assert.ErrorIs(t, c.TogglePublicField(context.Background(), models.FieldAllergies), ErrUpdateInFlight)
	assert.False(t, snapshot(t, c).PublicFields.Has(models.FieldAllergies))

	close(release)
	var updateErr *PolicyUpdateError
	require.ErrorAs(t, <-done, &updateErr)
	assert.Equal(t, SettingPublicField(models.FieldBloodType), updateErr.Field)

	require.NoError(t, c.TogglePublicField(context.Background(), models.FieldAllergies))

	assert.Equal(t, models.FieldSet{models.FieldFullName, models.FieldBloodType, models.FieldAllergies}, stored)
	assert.Equal(t, stored, snapshot(t, c).PublicFields, "view must match what the server stored")
}

func TestProfileConfigurator_DifferentListsDoNotBlock(t *testing.T) {
	c, owner := newTestConfigurator(t)

	started := make(chan struct{})
	release := make(chan struct{})
	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.ProfileUpdate) (models.ProfileSettings, error) {
			if u.PublicFields != nil {
				close(started)
				<-release
			}
			return ownerSettings(), nil
		}).Times(2)

	done := make(chan error, 1)
	go func() { done <- c.TogglePublicField(context.Background(), models.FieldGender) }()
	<-started

	assert.NoError(t, c.ToggleCriticalField(context.Background(), models.FieldGender))

	close(release)
	require.NoError(t, <-done)
}

func TestSettingGroup(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: SettingPublicField(models.FieldAllergies), want: GroupPublicFields},
		{key: SettingCriticalField(models.FieldBloodType), want: GroupCriticalFields},
		{key: SettingPublic, want: SettingPublic},
		{key: SettingCriticalOnly, want: SettingCriticalOnly},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, SettingGroup(tt.key))
		})
	}
}

func TestProfileConfigurator_SetAccessTypeKeepsPassword(t *testing.T) {
	c, owner := newTestConfigurator(t)

	otp := models.AccessOTP
	owner.EXPECT().UpdateProfile(gomock.Any(), models.ProfileUpdate{
		ShareLinkSettings: &models.ShareLinkSettingsPatch{AccessType: &otp},
	}).DoAndReturn(echo(t, func(s *models.ProfileSettings) { s.ShareLinkSettings.AccessType = otp }))

	require.NoError(t, c.SetAccessType(context.Background(), models.AccessOTP))

	s := snapshot(t, c)
	assert.Equal(t, models.AccessOTP, s.ShareLinkSettings.AccessType)
	assert.True(t, s.ShareLinkSettings.HasPassword)

	assert.ErrorIs(t, c.SetAccessType(context.Background(), "magic"), validators.ErrInvalidAccessType)
}

func TestProfileConfigurator_SetPassword(t *testing.T) {
	c, owner := newTestConfigurator(t)

	assert.ErrorIs(t, c.SetPassword(context.Background(), "abcd", "abce"), ErrPasswordMismatch)

	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.ProfileUpdate) (models.ProfileSettings, error) {
			assert.Equal(t, "", *u.ShareLinkSettings.Password)
			return models.ProfileSettings{}, rejected(http.StatusInternalServerError, adapter.ErrInternalServerError, "")
		})

	err := c.SetPassword(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, snapshot(t, c).ShareLinkSettings.HasPassword)
}

func TestProfileConfigurator_SetExpiry(t *testing.T) {
	c, owner := newTestConfigurator(t)

	want := testNow.AddDate(0, 0, 30)
	owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.ProfileUpdate) (models.ProfileSettings, error) {
			require.True(t, u.ShareLinkSettings.ExpiresAtSet)
			require.NotNil(t, u.ShareLinkSettings.ExpiresAt)
			assert.True(t, want.Equal(*u.ShareLinkSettings.ExpiresAt))
			s := ownerSettings()
			s.ShareLinkSettings.ExpiresAt = u.ShareLinkSettings.ExpiresAt
			return s, nil
		})

	require.NoError(t, c.SetExpiry(context.Background(), Expiry30Days))
	require.NotNil(t, snapshot(t, c).ShareLinkSettings.ExpiresAt)

	assert.ErrorIs(t, c.SetExpiry(context.Background(), "1y"), ErrUnknownPreset)
}

func TestExpiryPreset_Deadline(t *testing.T) {
	d, err := ExpiryNever.Deadline(testNow)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = Expiry7Days.Deadline(testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, 7), *d)
}

func TestProfileConfigurator_Emergency(t *testing.T) {
	c, owner := newTestConfigurator(t)
	ctx := context.Background()

	gomock.InOrder(
		owner.EXPECT().UpdateProfile(gomock.Any(), models.ProfileUpdate{
			EmergencyMode: &models.EmergencyPolicyPatch{Enabled: ptr(false)},
		}).DoAndReturn(echo(t, func(s *models.ProfileSettings) { s.EmergencyMode.Enabled = false })),
		owner.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).
			Return(models.ProfileSettings{}, rejected(http.StatusBadRequest, adapter.ErrBadRequest, "")),
	)

	require.NoError(t, c.SetEmergencyEnabled(ctx, false))
	assert.False(t, snapshot(t, c).EmergencyMode.Enabled)

	err := c.ToggleCriticalField(ctx, models.FieldBloodType)
	assert.ErrorIs(t, err, ErrCredentialRejected)
	assert.True(t, snapshot(t, c).EmergencyMode.CriticalFields.Has(models.FieldBloodType))
}

func TestProfileConfigurator_TriggerSOS(t *testing.T) {
	c, owner := newTestConfigurator(t)

	owner.EXPECT().TriggerSOS(gomock.Any()).Return(models.EmergencyAccess{Token: "sos"}, nil)

	access, err := c.TriggerSOS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sos", access.Token)
}
