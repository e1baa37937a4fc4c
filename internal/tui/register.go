package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

// RegisterModel is the owner registration screen. The username becomes
// the share handle. A successful registration logs the owner in.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       form
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			newInput("username (share handle)", 32, false),
			newInput("email", 254, false),
			newInput("password", 256, true),
			newInput("repeat password", 256, true),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.form.reset()
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.form.next()
			return m, nil
		case "shift+tab":
			m.form.prev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			username := strings.TrimSpace(m.form.value(0))
			email := strings.TrimSpace(m.form.value(1))
			pass := m.form.value(2)
			repeat := m.form.value(3)

			if username == "" || email == "" || pass == "" {
				m.errMsg = "All fields are required"
				return m, nil
			}
			if pass != repeat {
				m.errMsg = "Passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(models.RegisterRequest{Username: username, Email: email, Password: pass})
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field            │ Value\n")
	b.WriteString("─────────────────┼────────────────────────────────────\n")
	b.WriteString("Username         │ [" + m.form.inputs[0].View() + "]\n")
	b.WriteString("Email            │ [" + m.form.inputs[1].View() + "]\n")
	b.WriteString("Password         │ [" + m.form.inputs[2].View() + "]\n")
	b.WriteString("Repeat password  │ [" + m.form.inputs[3].View() + "]\n")

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}
	writeError(&b, m.errMsg)

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		session, err := auth.Register(ctx, req)
		return LoginResult{Err: err, Session: session}
	}
}
