package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-health-share/models"
)

// PolicyUpdateError reports a rejected owner update. The setting named by
// Field has been reverted to its previous value.
type PolicyUpdateError struct {
	Field string
	Err   error
}

func (e *PolicyUpdateError) Error() string {
	return fmt.Sprintf("update of %s rejected: %v", e.Field, e.Err)
}

func (e *PolicyUpdateError) Unwrap() error {
	return e.Err
}

// settingsView is the optimistic local copy of the owner's settings with a
// per-setting in-flight guard.
type settingsView struct {
	mu       sync.Mutex
	settings models.ProfileSettings
	loaded   bool
	inFlight map[string]struct{}
}

// setting reads and writes one value of the settings. key identifies it in
// errors. group, when set, replaces key in the in-flight guard: settings
// sent as one list share a group so their requests never overlap.
type setting[T any] struct {
	key   string
	group string
	get   func(*models.ProfileSettings) T
	set   func(*models.ProfileSettings, T)

	// adopt copies the confirmed state into the view. It defaults to
	// copying this setting only.
	adopt func(view, confirmed *models.ProfileSettings)
}

func (s setting[T]) guard() string {
	if s.group != "" {
		return s.group
	}
	return s.key
}

// applyOptimistic writes value into the view, sends the update built from
// the optimistic settings and waits for the answer. On rejection the
// previous value is restored; on success the confirmed value of this
// setting is adopted and the rest of the view is left alone, because other
// settings may have their own updates in flight.
func applyOptimistic[T any](
	ctx context.Context,
	v *settingsView,
	s setting[T],
	value T,
	build func(models.ProfileSettings) models.ProfileUpdate,
	send func(context.Context, models.ProfileUpdate) (models.ProfileSettings, error),
) error {
	v.mu.Lock()
	if !v.loaded {
		v.mu.Unlock()
		return ErrNotLoaded
	}
	if _, busy := v.inFlight[s.guard()]; busy {
		v.mu.Unlock()
		return ErrUpdateInFlight
	}
	previous := s.get(&v.settings)
	s.set(&v.settings, value)
	update := build(cloneSettings(v.settings))
	v.inFlight[s.guard()] = struct{}{}
	v.mu.Unlock()

	confirmed, err := send(ctx, update)

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.inFlight, s.guard())

	if err != nil {
		s.set(&v.settings, previous)
		return &PolicyUpdateError{Field: s.key, Err: err}
	}
	if s.adopt != nil {
		s.adopt(&v.settings, &confirmed)
	} else {
		s.set(&v.settings, s.get(&confirmed))
	}
	return nil
}

func cloneSettings(s models.ProfileSettings) models.ProfileSettings {
	s.PublicFields = cloneFields(s.PublicFields)
	s.EmergencyMode.CriticalFields = cloneFields(s.EmergencyMode.CriticalFields)
	if s.ShareLinkSettings.ExpiresAt != nil {
		t := *s.ShareLinkSettings.ExpiresAt
		s.ShareLinkSettings.ExpiresAt = &t
	}
	return s
}

func cloneFields(f models.FieldSet) models.FieldSet {
	if f == nil {
		return nil
	}
	return append(models.FieldSet{}, f...)
}
