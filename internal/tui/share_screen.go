package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

// ShareModel is the visitor screen of one shared profile. Every state change
// comes from the [service.ShareSession]; the model only renders the latest
// [service.SessionState] and turns keys into session calls.
type ShareModel struct {
	ctx     context.Context
	session *service.ShareSession
	state   service.SessionState

	spinner  spinner.Model
	password textinput.Model
	email    textinput.Model
	code     textinput.Model

	errMsg string
}

func NewShareModel(ctx context.Context, session *service.ShareSession) *ShareModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ShareModel{
		ctx:      ctx,
		session:  session,
		state:    service.SessionState{Phase: service.PhaseLoading, Busy: true},
		spinner:  sp,
		password: newInput("share password", 256, true),
		email:    newInput("your email (optional)", 254, false),
		code:     newInput("6-digit code", 12, false),
	}
}

func (m *ShareModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdOpen())
}

func (m *ShareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionStepMsg:
		return m, m.applyStep(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateFocused(msg)
}

func (m *ShareModel) applyStep(msg sessionStepMsg) tea.Cmd {
	if errors.Is(msg.err, service.ErrStaleResult) || errors.Is(msg.err, service.ErrRequestInFlight) {
		return nil
	}

	prev := m.state
	m.state = msg.state
	m.errMsg = ""

	switch {
	case msg.err == nil:
	case errors.Is(msg.err, service.ErrEmptyCredential):
		m.errMsg = "Please enter a value"
	case errors.Is(msg.err, service.ErrCredentialRejected):
		if m.state.Challenge == models.AccessPassword {
			m.password.SetValue("")
		}
	case errors.Is(msg.err, service.ErrOTPExpired), errors.Is(msg.err, service.ErrOTPCooldown),
		errors.Is(msg.err, service.ErrOTPDeliveryFailed):
		// the session notice explains it
	case m.state.Phase == service.PhaseFailed:
	default:
		m.errMsg = humanizeError(msg.err)
	}

	if prev.Phase != m.state.Phase || prev.OTPStep != m.state.OTPStep {
		m.focusForState()
	}
	return nil
}

func (m *ShareModel) focusForState() {
	m.password.Blur()
	m.email.Blur()
	m.code.Blur()

	if m.state.Phase != service.PhaseChallenging {
		return
	}
	switch m.state.Challenge {
	case models.AccessPassword:
		m.password.Focus()
	case models.AccessOTP:
		if m.state.OTPStep == service.OTPIdle {
			m.email.Focus()
		} else {
			m.code.Focus()
		}
	}
}

func (m *ShareModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc, keys.interrupt) {
		m.session.Close()
		return m, tea.Quit
	}

	switch m.state.Phase {
	case service.PhaseLoading:
		return m, nil

	case service.PhaseViewing:
		switch {
		case key.Matches(msg, keys.quit):
			m.session.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.retry):
			// refresh keeps the grant
			m.state.Busy = true
			return m, tea.Batch(m.spinner.Tick, m.cmdOpen())
		}
		return m, nil

	case service.PhaseFailed:
		switch {
		case key.Matches(msg, keys.quit):
			m.session.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.retry) && m.state.Failure.Retryable():
			m.state = service.SessionState{Phase: service.PhaseLoading, Busy: true}
			m.password.SetValue("")
			m.code.SetValue("")
			return m, tea.Batch(m.spinner.Tick, m.cmdRetry())
		}
		return m, nil
	}

	if m.state.Busy {
		return m, nil
	}

	switch m.state.Challenge {
	case models.AccessPassword:
		if key.Matches(msg, keys.enter) {
			password := m.password.Value()
			return m, m.submit(func(ctx context.Context) (service.SessionState, error) {
				return m.session.SubmitPassword(ctx, password)
			})
		}

	case models.AccessOTP:
		switch {
		case key.Matches(msg, keys.resend) && m.state.OTPStep != service.OTPIdle:
			return m, m.submit(m.session.ResendOTP)
		case key.Matches(msg, keys.enter):
			switch m.state.OTPStep {
			case service.OTPIdle:
				email := strings.TrimSpace(m.email.Value())
				return m, m.submit(func(ctx context.Context) (service.SessionState, error) {
					return m.session.RequestOTP(ctx, email)
				})
			case service.OTPRequested:
				code := m.code.Value()
				return m, m.submit(func(ctx context.Context) (service.SessionState, error) {
					return m.session.SubmitOTP(ctx, code)
				})
			case service.OTPExpired:
				return m, m.submit(m.session.ResendOTP)
			}
		}
	}

	return m, m.updateFocused(msg)
}

func (m *ShareModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.password.Focused():
		m.password, cmd = m.password.Update(msg)
	case m.email.Focused():
		m.email, cmd = m.email.Update(msg)
	case m.code.Focused():
		m.code, cmd = m.code.Update(msg)
	}
	return cmd
}

// submit marks the screen busy and runs call in the background.
func (m *ShareModel) submit(call func(context.Context) (service.SessionState, error)) tea.Cmd {
	m.state.Busy = true
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.run(call))
}

func (m *ShareModel) run(call func(context.Context) (service.SessionState, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		state, err := call(ctx)
		return sessionStepMsg{state: state, err: err}
	}
}

func (m *ShareModel) cmdOpen() tea.Cmd {
	return m.run(m.session.Open)
}

func (m *ShareModel) cmdRetry() tea.Cmd {
	return m.run(m.session.Retry)
}

func (m *ShareModel) View() string {
	title := "SHARED PROFILE · " + m.session.Handle()

	switch m.state.Phase {
	case service.PhaseLoading:
		return renderPage(title, m.spinner.View()+" Opening profile...", "esc: quit")
	case service.PhaseViewing:
		return renderPage(title, renderProjection(service.Project(m.state.Profile)), "r: refresh │ q: quit")
	case service.PhaseFailed:
		if m.state.Failure.Retryable() {
			return renderPage(title, m.viewFailure(), "r: retry │ q: quit")
		}
		return renderPage(title, m.viewFailure(), "q: quit")
	}

	if m.state.Challenge == models.AccessOTP {
		return renderPage(title, m.viewOTP(), m.otpHotKeys())
	}
	return renderPage(title, m.viewPassword(), "enter: unlock │ esc: quit")
}

func (m *ShareModel) viewPassword() string {
	var b strings.Builder
	b.WriteString("This profile is protected by a password.\n\n")
	b.WriteString("Password │ [" + m.password.View() + "]\n")
	m.writeStatus(&b)
	return strings.TrimRight(b.String(), "\n")
}

func (m *ShareModel) viewOTP() string {
	var b strings.Builder
	b.WriteString("This profile is protected by a one-time code.\n\n")

	switch m.state.OTPStep {
	case service.OTPIdle:
		b.WriteString("Press enter to send a code to the owner's contact.\n\n")
		b.WriteString("Email │ [" + m.email.View() + "]\n")
	case service.OTPRequested, service.OTPVerified:
		b.WriteString("Code  │ [" + m.code.View() + "]\n")
	case service.OTPExpired:
		b.WriteString("The code has expired. Press enter to get a new one.\n")
	}
	m.writeStatus(&b)
	return strings.TrimRight(b.String(), "\n")
}

func (m *ShareModel) otpHotKeys() string {
	switch m.state.OTPStep {
	case service.OTPIdle:
		return "enter: send code │ esc: quit"
	case service.OTPExpired:
		return "enter: resend code │ esc: quit"
	}
	return "enter: verify │ ctrl+r: resend │ esc: quit"
}

func (m *ShareModel) viewFailure() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render(m.state.Notice))
	b.WriteString("\n")
	if m.state.Failure.Retryable() {
		b.WriteString("\nCheck your connection and press r to try again.")
	}
	return b.String()
}

func (m *ShareModel) writeStatus(b *strings.Builder) {
	if m.state.Busy {
		b.WriteString("\n" + m.spinner.View() + " Please wait...\n")
	}
	writeNotice(b, m.state.Notice)
	writeError(b, m.errMsg)
}

// renderProjection prints the lines of a projected profile. Absent fields
// are never shown.
func renderProjection(p service.Projection) string {
	var b strings.Builder

	if p.EmergencyBanner {
		b.WriteString(bannerStyle.Render(p.BannerText))
		b.WriteString("\n\n")
	}
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n\n")

	if p.Empty {
		b.WriteString(helpStyle.Render("The owner has not shared any details."))
		return b.String()
	}

	width := 0
	for _, line := range p.Lines {
		width = max(width, len(line.Label))
	}
	for _, line := range p.Lines {
		b.WriteString(labelStyle.Render(line.Label + strings.Repeat(" ", width-len(line.Label))))
		b.WriteString(" │ ")
		b.WriteString(fitText(line.Value, 60))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
