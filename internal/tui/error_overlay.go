package tui

type errorOverlayModel struct {
	message string
	hint    string
}

func (m errorOverlayModel) View() string {
	hint := m.hint
	if hint == "" {
		hint = "enter / esc close"
	}
	content := errorStyle.Render("Error") + "\n\n" + m.message + "\n\n" + hint
	return overlayBoxStyle.Render(content)
}
