package service

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-health-share/internal/adapter"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/validators"
	"github.com/MKhiriev/go-health-share/models"
)

// ExpiryPreset is one of the link lifetimes offered to the owner.
type ExpiryPreset string

const (
	ExpiryNever  ExpiryPreset = "never"
	Expiry7Days  ExpiryPreset = "7d"
	Expiry30Days ExpiryPreset = "30d"
	Expiry90Days ExpiryPreset = "90d"
)

// ExpiryPresets lists the presets in display order.
var ExpiryPresets = []ExpiryPreset{ExpiryNever, Expiry7Days, Expiry30Days, Expiry90Days}

// Deadline returns the expiry the preset stands for, or nil for never.
func (p ExpiryPreset) Deadline(now time.Time) (*time.Time, error) {
	var days int
	switch p {
	case ExpiryNever:
		return nil, nil
	case Expiry7Days:
		days = 7
	case Expiry30Days:
		days = 30
	case Expiry90Days:
		days = 90
	default:
		return nil, ErrUnknownPreset
	}
	t := now.AddDate(0, 0, days).UTC()
	return &t, nil
}

// Setting keys used by the in-flight guard and by [PolicyUpdateError].
const (
	SettingPublic           = "isPublicProfile"
	SettingAccessType       = "accessType"
	SettingPassword         = "password"
	SettingExpiry           = "expiresAt"
	SettingEmergencyEnabled = "emergencyMode.enabled"
	SettingCriticalOnly     = "emergencyMode.showCriticalOnly"
)

// In-flight groups of the list settings. Toggles of one list are sent as a
// whole list, so only one of them may be pending at a time.
const (
	GroupPublicFields   = "publicFields"
	GroupCriticalFields = "emergencyMode.criticalFields"
)

// SettingGroup returns the in-flight group of a setting key: the list group
// for field toggles, the key itself otherwise.
func SettingGroup(key string) string {
	for _, group := range []string{GroupPublicFields, GroupCriticalFields} {
		if strings.HasPrefix(key, group+".") {
			return group
		}
	}
	return key
}

// SettingPublicField is the key of one public field toggle.
func SettingPublicField(f models.FieldName) string {
	return GroupPublicFields + "." + string(f)
}

// SettingCriticalField is the key of one critical field toggle.
func SettingCriticalField(f models.FieldName) string {
	return GroupCriticalFields + "." + string(f)
}

type profileConfigurator struct {
	adapter adapter.OwnerAdapter
	view    settingsView
	now     func() time.Time
	logger  *logger.Logger
}

// NewProfileConfigurator constructs a [ProfileConfigurator]. The owner must
// be logged in on ownerAdapter.
func NewProfileConfigurator(ownerAdapter adapter.OwnerAdapter, logger *logger.Logger) ProfileConfigurator {
	return &profileConfigurator{
		adapter: ownerAdapter,
		view:    settingsView{inFlight: make(map[string]struct{})},
		now:     time.Now,
		logger:  logger,
	}
}

func (c *profileConfigurator) Load(ctx context.Context) (models.ProfileSettings, error) {
	settings, err := c.adapter.GetProfile(ctx)
	if err != nil {
		return models.ProfileSettings{}, mapAdapterError(err)
	}

	c.view.mu.Lock()
	defer c.view.mu.Unlock()
	c.view.settings = settings
	c.view.loaded = true

	return cloneSettings(settings), nil
}

func (c *profileConfigurator) Snapshot() (models.ProfileSettings, error) {
	c.view.mu.Lock()
	defer c.view.mu.Unlock()

	if !c.view.loaded {
		return models.ProfileSettings{}, ErrNotLoaded
	}
	return cloneSettings(c.view.settings), nil
}

func (c *profileConfigurator) send(ctx context.Context, update models.ProfileUpdate) (models.ProfileSettings, error) {
	settings, err := c.adapter.UpdateProfile(ctx, update)
	if err != nil {
		logger.FromContextOr(ctx, c.logger).Info().Err(err).Msg("profile update rejected")
		return models.ProfileSettings{}, mapAdapterError(err)
	}
	return settings, nil
}

func (c *profileConfigurator) SetPublic(ctx context.Context, public bool) error {
	return applyOptimistic(ctx, &c.view, setting[bool]{
		key: SettingPublic,
		get: func(s *models.ProfileSettings) bool { return s.IsPublicProfile },
		set: func(s *models.ProfileSettings, v bool) { s.IsPublicProfile = v },
	}, public, func(models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{IsPublicProfile: &public}
	}, c.send)
}

func (c *profileConfigurator) SetAccessType(ctx context.Context, accessType models.AccessType) error {
	if !accessType.Valid() {
		return validators.ErrInvalidAccessType
	}

	return applyOptimistic(ctx, &c.view, setting[models.AccessType]{
		key: SettingAccessType,
		get: func(s *models.ProfileSettings) models.AccessType { return s.ShareLinkSettings.AccessType },
		set: func(s *models.ProfileSettings, v models.AccessType) { s.ShareLinkSettings.AccessType = v },
	}, accessType, func(models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{ShareLinkSettings: &models.ShareLinkSettingsPatch{AccessType: &accessType}}
	}, c.send)
}

func (c *profileConfigurator) SetPassword(ctx context.Context, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}

	return applyOptimistic(ctx, &c.view, setting[bool]{
		key: SettingPassword,
		get: func(s *models.ProfileSettings) bool { return s.ShareLinkSettings.HasPassword },
		set: func(s *models.ProfileSettings, v bool) { s.ShareLinkSettings.HasPassword = v },
	}, password != "", func(models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{ShareLinkSettings: &models.ShareLinkSettingsPatch{Password: &password}}
	}, c.send)
}

func (c *profileConfigurator) SetExpiry(ctx context.Context, preset ExpiryPreset) error {
	deadline, err := preset.Deadline(c.now())
	if err != nil {
		return err
	}

	return applyOptimistic(ctx, &c.view, setting[*time.Time]{
		key: SettingExpiry,
		get: func(s *models.ProfileSettings) *time.Time { return s.ShareLinkSettings.ExpiresAt },
		set: func(s *models.ProfileSettings, v *time.Time) { s.ShareLinkSettings.ExpiresAt = v },
	}, deadline, func(models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{ShareLinkSettings: &models.ShareLinkSettingsPatch{
			ExpiresAt:    deadline,
			ExpiresAtSet: true,
		}}
	}, c.send)
}

// TogglePublicField flips the membership of field. The update carries the
// whole set, as the backend replaces the list; toggles of the same list are
// therefore serialized and the confirmed list is adopted as a whole.
func (c *profileConfigurator) TogglePublicField(ctx context.Context, field models.FieldName) error {
	if !field.Valid() {
		return validators.ErrInvalidFieldName
	}

	s := memberSetting(SettingPublicField(field), GroupPublicFields, field, func(p *models.ProfileSettings) *models.FieldSet { return &p.PublicFields })
	return c.toggle(ctx, s, func(p models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{PublicFields: &p.PublicFields}
	})
}

func (c *profileConfigurator) ToggleCriticalField(ctx context.Context, field models.FieldName) error {
	if !field.Valid() {
		return validators.ErrInvalidFieldName
	}

	s := memberSetting(SettingCriticalField(field), GroupCriticalFields, field, func(p *models.ProfileSettings) *models.FieldSet { return &p.EmergencyMode.CriticalFields })
	return c.toggle(ctx, s, func(p models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{EmergencyMode: &models.EmergencyPolicyPatch{CriticalFields: &p.EmergencyMode.CriticalFields}}
	})
}

func (c *profileConfigurator) toggle(ctx context.Context, s setting[bool], build func(models.ProfileSettings) models.ProfileUpdate) error {
	current, err := c.Snapshot()
	if err != nil {
		return err
	}
	return applyOptimistic(ctx, &c.view, s, !s.get(&current), build, c.send)
}

func memberSetting(key, group string, field models.FieldName, fieldsOf func(*models.ProfileSettings) *models.FieldSet) setting[bool] {
	return setting[bool]{
		key:   key,
		group: group,
		get:   func(s *models.ProfileSettings) bool { return fieldsOf(s).Has(field) },
		set: func(s *models.ProfileSettings, member bool) {
			fields := fieldsOf(s)
			if member {
				*fields = fields.With(field)
			} else {
				*fields = fields.Without(field)
			}
		},
		adopt: func(view, confirmed *models.ProfileSettings) {
			*fieldsOf(view) = cloneFields(*fieldsOf(confirmed))
		},
	}
}

func (c *profileConfigurator) SetEmergencyEnabled(ctx context.Context, enabled bool) error {
	return applyOptimistic(ctx, &c.view, setting[bool]{
		key: SettingEmergencyEnabled,
		get: func(s *models.ProfileSettings) bool { return s.EmergencyMode.Enabled },
		set: func(s *models.ProfileSettings, v bool) { s.EmergencyMode.Enabled = v },
	}, enabled, func(models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{EmergencyMode: &models.EmergencyPolicyPatch{Enabled: &enabled}}
	}, c.send)
}

func (c *profileConfigurator) SetShowCriticalOnly(ctx context.Context, criticalOnly bool) error {
	return applyOptimistic(ctx, &c.view, setting[bool]{
		key: SettingCriticalOnly,
		get: func(s *models.ProfileSettings) bool { return s.EmergencyMode.ShowCriticalOnly },
		set: func(s *models.ProfileSettings, v bool) { s.EmergencyMode.ShowCriticalOnly = v },
	}, criticalOnly, func(models.ProfileSettings) models.ProfileUpdate {
		return models.ProfileUpdate{EmergencyMode: &models.EmergencyPolicyPatch{ShowCriticalOnly: &criticalOnly}}
	}, c.send)
}

func (c *profileConfigurator) TriggerSOS(ctx context.Context) (models.EmergencyAccess, error) {
	access, err := c.adapter.TriggerSOS(ctx)
	if err != nil {
		return models.EmergencyAccess{}, mapAdapterError(err)
	}
	return access, nil
}
