package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Arminmsc/uk-vehicle-dashboard/engine"
)

// ============================================================================
// DASHBOARD — Interactive terminal view over the aggregated dataset
// ============================================================================
// The model owns the current Selection; every key press that changes it
// re-runs engine.DeriveView against the immutable dataset and re-renders.
// The dataset itself is never mutated after load.
// ============================================================================

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")).Padding(0, 1)
	selectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cardLabel     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardValue     = lipgloss.NewStyle().Bold(true)
	sparkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	insightStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250"))
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	ds   *engine.Dataset
	sel  engine.Selection
	vm   engine.ViewModel
	keys keyMap
	help help.Model

	width int
}

// New creates a dashboard model over an aggregated dataset.
func New(ds *engine.Dataset, sel engine.Selection) Model {
	m := Model{
		ds:   ds,
		sel:  sel,
		keys: defaultKeyMap(),
		help: help.New(),
	}
	m.refresh()
	return m
}

// refresh re-derives the view and adopts the normalized selection.
func (m *Model) refresh() {
	m.vm = engine.DeriveView(m.ds, m.sel)
	m.sel = m.vm.Selection
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Fuel):
			m.sel.Fuel = cycle(m.fuelOptions(), m.sel.Fuel)
		case key.Matches(msg, m.keys.Body):
			m.sel.Body = cycle(m.bodyOptions(), m.sel.Body)
		case key.Matches(msg, m.keys.Make):
			m.sel.Make = cycle(append([]string{engine.KeyAll}, m.vm.Makes...), m.sel.Make)
		case key.Matches(msg, m.keys.Metric):
			m.sel.Metric = (m.sel.Metric + 1) % 3
		case key.Matches(msg, m.keys.Chart):
			if m.sel.Chart == engine.ChartLine {
				m.sel.Chart = engine.ChartBar
			} else {
				m.sel.Chart = engine.ChartLine
			}
		case key.Matches(msg, m.keys.Scale):
			if m.sel.Scale == engine.ScaleCombined {
				m.sel.Scale = engine.ScaleSplit
			} else {
				m.sel.Scale = engine.ScaleCombined
			}
		case key.Matches(msg, m.keys.Early):
			m.sel.IncludeEarly = !m.sel.IncludeEarly
		case key.Matches(msg, m.keys.FromLeft):
			m.sel = m.sel.WithFrom(m.sel.From - 1)
		case key.Matches(msg, m.keys.FromRight):
			m.sel = m.sel.WithFrom(m.sel.From + 1)
		case key.Matches(msg, m.keys.ToLeft):
			m.sel = m.sel.WithTo(m.sel.To - 1)
		case key.Matches(msg, m.keys.ToRight):
			m.sel = m.sel.WithTo(m.sel.To + 1)
		}
		m.refresh()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UK Vehicle Registrations"))
	b.WriteString("\n\n")
	b.WriteString(m.selectorLine())
	b.WriteString("\n\n")
	b.WriteString(m.kpiCards())
	b.WriteString("\n")
	b.WriteString(m.chartArea())
	b.WriteString("\n")
	b.WriteString(insightStyle.Render(m.vm.Insight))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) selectorLine() string {
	sel := m.sel
	early := "off"
	if sel.IncludeEarly {
		early = "on"
	}
	window := "-"
	if len(m.vm.Quarters) > 0 {
		window = fmt.Sprintf("%s – %s", m.vm.Quarters[0], m.vm.Quarters[len(m.vm.Quarters)-1])
	}
	parts := []string{
		item("fuel", sel.Fuel),
		item("body", sel.Body),
		item("make", sel.Make),
		item("metric", sel.Metric.String()),
		item("chart", fmt.Sprintf("%s/%s", sel.Chart, sel.Scale)),
		item("window", window),
		item("early", early),
	}
	return selectorStyle.Render(strings.Join(parts, "  "))
}

func item(label, value string) string {
	return label + ":" + activeStyle.Render(value)
}

func (m Model) kpiCards() string {
	d := m.vm.Display
	cards := []string{
		card("Latest", d.Latest),
		card("QoQ", d.QoQ),
		card("SORN share", d.SornShare),
		card("Net change", d.Net),
		card("Market share", d.MarketShare),
		card("EV share", d.EVShare),
		card("3-year", d.ThreeYear),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(label, value string) string {
	return cardStyle.Render(cardLabel.Render(label) + "\n" + cardValue.Render(value))
}

func (m Model) chartArea() string {
	values := make([]float64, len(m.vm.Series))
	for i, p := range m.vm.Series {
		values[i] = m.sel.Metric.Of(p)
	}
	width := m.width - 4
	if width <= 0 {
		width = 80
	}
	return sparkStyle.Render(sparkline(values, width))
}

func (m Model) fuelOptions() []string {
	opts := []string{engine.KeyAll}
	for _, label := range m.vm.FuelLabels {
		opts = append(opts, strings.ToUpper(label))
	}
	return opts
}

func (m Model) bodyOptions() []string {
	opts := []string{engine.KeyAll}
	for _, label := range m.vm.BodyLabels {
		opts = append(opts, strings.ToUpper(label))
	}
	return opts
}

// cycle returns the option after current, wrapping; unknown current yields
// the first option.
func cycle(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Run starts the dashboard program and blocks until quit.
func Run(ds *engine.Dataset, sel engine.Selection) error {
	p := tea.NewProgram(New(ds, sel), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
