package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

const statusTimeout = 3 * time.Second

var accessTypeCycle = []models.AccessType{models.AccessPublic, models.AccessPassword, models.AccessOTP}

// settingsRow is one line of the privacy settings list.
type settingsRow struct {
	setting string
	label   string
	value   func(models.ProfileSettings) string

	// activate starts the change the row stands for. It returns nil when
	// the row opened a local editor instead.
	activate func(m *SettingsModel) tea.Cmd
}

// SettingsModel is the owner privacy screen. Changes go through the
// [service.ProfileConfigurator]: the list renders its snapshot, so an
// optimistic change shows up at once and a rejected one flips back.
type SettingsModel struct {
	ctx      context.Context
	services *service.ClientServices
	owner    models.OwnerSession

	settings models.ProfileSettings
	loaded   bool
	rows     []settingsRow
	idx      int
	pending  map[string]bool

	spinner   spinner.Model
	expiryIdx int

	editingPassword bool
	passwordForm    form

	showLink   bool
	qr         string
	confirmSOS bool
	sos        *models.EmergencyAccess
	loadErr    string

	status string
	errMsg string

	logout bool
}

func NewSettingsModel(ctx context.Context, services *service.ClientServices, owner models.OwnerSession) *SettingsModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := &SettingsModel{
		ctx:      ctx,
		services: services,
		owner:    owner,
		pending:  make(map[string]bool),
		spinner:  sp,
		passwordForm: newForm(
			newInput("new share password (empty clears)", 256, true),
			newInput("repeat password", 256, true),
		),
	}
	m.rows = buildSettingsRows()
	return m
}

func buildSettingsRows() []settingsRow {
	rows := []settingsRow{
		{
			setting: service.SettingPublic,
			label:   "Public profile",
			value:   func(s models.ProfileSettings) string { return checkbox(s.IsPublicProfile) },
			activate: func(m *SettingsModel) tea.Cmd {
				public := !m.settings.IsPublicProfile
				return m.apply(service.SettingPublic, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.SetPublic(ctx, public)
				})
			},
		},
		{
			setting: service.SettingAccessType,
			label:   "Access",
			value:   func(s models.ProfileSettings) string { return accessTypeLabel(s.ShareLinkSettings.AccessType) },
			activate: func(m *SettingsModel) tea.Cmd {
				next := nextAccessType(m.settings.ShareLinkSettings.AccessType)
				return m.apply(service.SettingAccessType, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.SetAccessType(ctx, next)
				})
			},
		},
		{
			setting: service.SettingPassword,
			label:   "Share password",
			value: func(s models.ProfileSettings) string {
				if s.ShareLinkSettings.HasPassword {
					return "set"
				}
				return "not set"
			},
			activate: func(m *SettingsModel) tea.Cmd {
				m.editingPassword = true
				m.passwordForm.reset()
				return nil
			},
		},
		{
			setting: service.SettingExpiry,
			label:   "Link expires",
			value: func(s models.ProfileSettings) string {
				if s.ShareLinkSettings.ExpiresAt == nil {
					return "never"
				}
				return s.ShareLinkSettings.ExpiresAt.Local().Format("2006-01-02 15:04")
			},
			activate: func(m *SettingsModel) tea.Cmd {
				m.expiryIdx = (m.expiryIdx + 1) % len(service.ExpiryPresets)
				preset := service.ExpiryPresets[m.expiryIdx]
				return m.apply(service.SettingExpiry, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.SetExpiry(ctx, preset)
				})
			},
		},
	}

	for _, f := range models.AllFields {
		field := f
		setting := service.SettingPublicField(field)
		rows = append(rows, settingsRow{
			setting: setting,
			label:   "Share " + strings.ToLower(service.FieldLabel(field)),
			value:   func(s models.ProfileSettings) string { return checkbox(s.PublicFields.Has(field)) },
			activate: func(m *SettingsModel) tea.Cmd {
				return m.apply(setting, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.TogglePublicField(ctx, field)
				})
			},
		})
	}

	rows = append(rows,
		settingsRow{
			setting: service.SettingEmergencyEnabled,
			label:   "Emergency mode",
			value:   func(s models.ProfileSettings) string { return checkbox(s.EmergencyMode.Enabled) },
			activate: func(m *SettingsModel) tea.Cmd {
				enabled := !m.settings.EmergencyMode.Enabled
				return m.apply(service.SettingEmergencyEnabled, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.SetEmergencyEnabled(ctx, enabled)
				})
			},
		},
		settingsRow{
			setting: service.SettingCriticalOnly,
			label:   "Emergency shows critical only",
			value:   func(s models.ProfileSettings) string { return checkbox(s.EmergencyMode.ShowCriticalOnly) },
			activate: func(m *SettingsModel) tea.Cmd {
				only := !m.settings.EmergencyMode.ShowCriticalOnly
				return m.apply(service.SettingCriticalOnly, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.SetShowCriticalOnly(ctx, only)
				})
			},
		},
	)

	for _, f := range models.AllFields {
		field := f
		setting := service.SettingCriticalField(field)
		rows = append(rows, settingsRow{
			setting: setting,
			label:   "Critical " + strings.ToLower(service.FieldLabel(field)),
			value:   func(s models.ProfileSettings) string { return checkbox(s.EmergencyMode.CriticalFields.Has(field)) },
			activate: func(m *SettingsModel) tea.Cmd {
				return m.apply(setting, func(ctx context.Context, c service.ProfileConfigurator) error {
					return c.ToggleCriticalField(ctx, field)
				})
			},
		})
	}

	return rows
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.err != nil {
			m.loadErr = humanizeError(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.loaded = true
		m.settings = msg.settings
		m.expiryIdx = 0
		return m, nil

	case policyResultMsg:
		delete(m.pending, msg.setting)
		m.refresh()
		if msg.err != nil {
			m.errMsg = m.rejectionText(msg.err)
			return m, nil
		}
		return m, m.flash("Saved")

	case sosDoneMsg:
		delete(m.pending, "sos")
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.sos = &msg.access
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, m.flash("Copied " + msg.url)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		m.refresh()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editingPassword {
		return m, m.passwordForm.update(msg)
	}
	return m, nil
}

func (m *SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.interrupt) {
		return m, tea.Quit
	}

	if m.loadErr != "" {
		switch {
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.retry):
			m.loadErr = ""
			return m, m.cmdLoad()
		case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirmSOS {
		m.confirmSOS = false
		if key.Matches(msg, keys.yes) {
			m.pending["sos"] = true
			return m, tea.Batch(m.spinner.Tick, m.cmdSOS())
		}
		return m, nil
	}

	if m.editingPassword {
		return m.handlePasswordKey(msg)
	}

	m.errMsg = ""

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.rows)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.toggle):
		if !m.loaded {
			return m, nil
		}
		return m, m.rows[m.idx].activate(m)
	case key.Matches(msg, keys.link):
		m.toggleLink()
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy()
	case key.Matches(msg, keys.sos):
		m.confirmSOS = true
	case key.Matches(msg, keys.reload):
		return m, m.cmdLoad()
	case key.Matches(msg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(msg, keys.quit), key.Matches(msg, keys.esc):
		if m.showLink {
			m.showLink = false
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *SettingsModel) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.editingPassword = false
		m.passwordForm.reset()
		return m, nil
	case key.Matches(msg, keys.tab):
		m.passwordForm.next()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.passwordForm.prev()
		return m, nil
	case key.Matches(msg, keys.enter):
		password, confirm := m.passwordForm.value(0), m.passwordForm.value(1)
		if password != confirm {
			m.errMsg = "Passwords do not match"
			return m, nil
		}
		m.editingPassword = false
		m.passwordForm.reset()
		return m, m.apply(service.SettingPassword, func(ctx context.Context, c service.ProfileConfigurator) error {
			return c.SetPassword(ctx, password, confirm)
		})
	}
	return m, m.passwordForm.update(msg)
}

// apply starts one configurator call and keeps the spinner running while
// it is pending.
func (m *SettingsModel) apply(setting string, call func(context.Context, service.ProfileConfigurator) error) tea.Cmd {
	if m.groupPending(setting) {
		m.errMsg = humanizeError(service.ErrUpdateInFlight)
		return nil
	}
	m.pending[setting] = true

	ctx := m.ctx
	configurator := m.services.Configurator
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return policyResultMsg{setting: setting, err: call(ctx, configurator)}
	})
}

// groupPending reports whether setting or another setting sent in the same
// list has an update pending.
func (m *SettingsModel) groupPending(setting string) bool {
	group := service.SettingGroup(setting)
	for pending := range m.pending {
		if service.SettingGroup(pending) == group {
			return true
		}
	}
	return false
}

func (m *SettingsModel) refresh() {
	if s, err := m.services.Configurator.Snapshot(); err == nil {
		m.settings = s
	}
}

func (m *SettingsModel) rejectionText(err error) string {
	var rejected *service.PolicyUpdateError
	if errors.As(err, &rejected) {
		return fmt.Sprintf("%s was not saved: %s", m.labelOf(rejected.Field), humanizeError(rejected.Err))
	}
	return humanizeError(err)
}

func (m *SettingsModel) labelOf(setting string) string {
	for _, r := range m.rows {
		if r.setting == setting {
			return r.label
		}
	}
	return setting
}

func (m *SettingsModel) username() string {
	if m.settings.Username != "" {
		return m.settings.Username
	}
	return m.owner.Username
}

func (m *SettingsModel) toggleLink() {
	m.showLink = !m.showLink
	if !m.showLink {
		return
	}
	qr, err := m.services.ShareLinks.ShareQR(m.username())
	if err != nil {
		m.errMsg = humanizeError(err)
		m.qr = ""
		return
	}
	m.qr = qr
}

func (m *SettingsModel) flash(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *SettingsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	configurator := m.services.Configurator
	return func() tea.Msg {
		s, err := configurator.Load(ctx)
		return settingsLoadedMsg{settings: s, err: err}
	}
}

func (m *SettingsModel) cmdSOS() tea.Cmd {
	ctx := m.ctx
	configurator := m.services.Configurator
	return func() tea.Msg {
		access, err := configurator.TriggerSOS(ctx)
		return sosDoneMsg{access: access, err: err}
	}
}

func (m *SettingsModel) cmdCopy() tea.Cmd {
	links := m.services.ShareLinks
	username := m.username()
	return func() tea.Msg {
		url, err := links.CopyShareLink(username)
		return copiedMsg{url: url, err: err}
	}
}

func (m *SettingsModel) View() string {
	title := "PRIVACY SETTINGS · " + m.username()

	switch {
	case m.loadErr != "":
		return errorOverlayModel{message: m.loadErr, hint: "enter retry    esc quit"}.View()
	case !m.loaded:
		return renderPage(title, "Loading settings...", "q: quit")
	case m.confirmSOS:
		return confirmModel{message: "Trigger SOS and issue an emergency link?"}.View()
	case m.editingPassword:
		return renderPage(title, m.viewPasswordEditor(), "tab: next field │ enter: save │ esc: cancel")
	case m.showLink:
		return renderPage("SHARE LINK", m.viewLink(), "c: copy │ esc: back")
	}

	var b strings.Builder
	width := 0
	for _, r := range m.rows {
		width = max(width, len(r.label))
	}
	for i, r := range m.rows {
		line := fmt.Sprintf("%-*s │ %s", width, r.label, r.value(m.settings))
		if m.pending[r.setting] {
			line += " " + m.spinner.View()
		}
		if i == m.idx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.sos != nil {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render("SOS active until " + m.sos.ExpiresAt.Local().Format("15:04")))
		b.WriteString("\n")
		b.WriteString(m.services.ShareLinks.EmergencyURL(m.username(), m.sos.Token))
		b.WriteString("\n")
	}

	writeNotice(&b, m.status)
	writeError(&b, m.errMsg)

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"↑/↓: move │ enter/space: change │ s: share link │ c: copy │ !: SOS │ L: log out │ q: quit")
}

func (m *SettingsModel) viewPasswordEditor() string {
	var b strings.Builder
	b.WriteString("Password │ [" + m.passwordForm.inputs[0].View() + "]\n")
	b.WriteString("Repeat   │ [" + m.passwordForm.inputs[1].View() + "]\n")
	writeError(&b, m.errMsg)
	return strings.TrimRight(b.String(), "\n")
}

func (m *SettingsModel) viewLink() string {
	var b strings.Builder
	b.WriteString(m.services.ShareLinks.ShareURL(m.username()))
	b.WriteString("\n\n")
	if !m.settings.IsPublicProfile {
		b.WriteString(noticeStyle.Render("The profile is private; visitors will see \"not shared\"."))
		b.WriteString("\n\n")
	}
	b.WriteString(m.qr)
	writeNotice(&b, m.status)
	writeError(&b, m.errMsg)
	return strings.TrimRight(b.String(), "\n")
}

func accessTypeLabel(a models.AccessType) string {
	switch a {
	case models.AccessPassword:
		return "password"
	case models.AccessOTP:
		return "one-time code"
	case models.AccessPublic:
		return "anyone with the link"
	}
	return string(a)
}

func nextAccessType(a models.AccessType) models.AccessType {
	for i, t := range accessTypeCycle {
		if t == a {
			return accessTypeCycle[(i+1)%len(accessTypeCycle)]
		}
	}
	return accessTypeCycle[0]
}
