package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	toggle  key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	logout  key.Binding
	retry   key.Binding
	resend  key.Binding
	link    key.Binding
	copy    key.Binding
	sos     key.Binding
	reload  key.Binding
	yes     key.Binding
	no      key.Binding

	interrupt key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	toggle:  key.NewBinding(key.WithKeys(" ", "enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("q")),
	logout:  key.NewBinding(key.WithKeys("L")),
	retry:   key.NewBinding(key.WithKeys("r")),
	resend:  key.NewBinding(key.WithKeys("ctrl+r")),
	link:    key.NewBinding(key.WithKeys("s")),
	copy:    key.NewBinding(key.WithKeys("c")),
	sos:     key.NewBinding(key.WithKeys("!")),
	reload:  key.NewBinding(key.WithKeys("ctrl+l")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n", "esc")),

	interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
}
