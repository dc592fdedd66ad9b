package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Fuel      key.Binding
	Body      key.Binding
	Make      key.Binding
	Metric    key.Binding
	Chart     key.Binding
	Scale     key.Binding
	Early     key.Binding
	FromLeft  key.Binding
	FromRight key.Binding
	ToLeft    key.Binding
	ToRight   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Fuel:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fuel")),
		Body:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "body type")),
		Make:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "make")),
		Metric:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "metric")),
		Chart:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart type")),
		Scale:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scale mode")),
		Early:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "early years")),
		FromLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "window start ←")),
		FromRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "window start →")),
		ToLeft:    key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "window end ←")),
		ToRight:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "window end →")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fuel, k.Body, k.Make, k.Metric, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fuel, k.Body, k.Make, k.Metric},
		{k.Chart, k.Scale, k.Early},
		{k.FromLeft, k.FromRight, k.ToLeft, k.ToRight},
		{k.Help, k.Quit},
	}
}
