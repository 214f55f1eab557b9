package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	providergen "github.com/wippyai/provider-gen"
	"github.com/wippyai/provider-gen/transform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateList browserState = iota
	stateFilter
	stateDetail
)

type browserModel struct {
	analysis *providergen.Analysis
	filter   textinput.Model
	visible  []*transform.LatticeMethod
	selected int
	state    browserState
}

func newBrowserModel(a *providergen.Analysis) *browserModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "wire name, interface or function"
	ti.Width = 40
	m := &browserModel{analysis: a, filter: ti, state: stateList}
	m.applyFilter()
	return m
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

// applyFilter keeps methods whose wire name, interface or function name
// contains the filter text, case-insensitively.
func (m *browserModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, lm := range m.analysis.Plan.Methods {
		if q == "" ||
			strings.Contains(strings.ToLower(lm.WireName), q) ||
			strings.Contains(strings.ToLower(lm.Interface), q) ||
			strings.Contains(strings.ToLower(lm.FuncName), q) {
			m.visible = append(m.visible, lm)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateFilter {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			m.filter.Blur()
			m.state = stateList
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateList && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateList && m.selected < len(m.visible)-1 {
			m.selected++
		}

	case "/":
		if m.state == stateList {
			m.state = stateFilter
			return m, m.filter.Focus()
		}

	case "enter":
		switch m.state {
		case stateList:
			if len(m.visible) > 0 {
				m.state = stateDetail
			}
		case stateDetail:
			m.state = stateList
		}

	case "esc":
		if m.state == stateDetail {
			m.state = stateList
		}
	}
	return m, nil
}

func (m *browserModel) View() string {
	var b strings.Builder
	res := m.analysis.Result

	b.WriteString(titleStyle.Render("Lattice Methods"))
	fmt.Fprintf(&b, " %s  %s/%s\n\n", m.analysis.Invocation.Target, res.Namespace, res.Package)

	switch m.state {
	case stateList, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(errorStyle.Render("no matching methods"))
			b.WriteString("\n")
		}
		for i, lm := range m.visible {
			line := m.formatMethod(lm)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + lm.WireName))
				b.WriteString(" " + lm.Path())
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("type to filter • enter/esc done"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • q quit"))
		}

	case stateDetail:
		lm := m.visible[m.selected]
		fmt.Fprintf(&b, "%s  %s\n\n", funcStyle.Render(lm.WireName), lm.Path())
		fmt.Fprintf(&b, "trait    %s\n", lm.TraitName)
		fmt.Fprintf(&b, "record   %s\n", lm.RecordName)
		for _, f := range lm.Fields {
			fmt.Fprintf(&b, "  %-16s %s", f.Name, typeStyle.Render(f.Type.String()))
			if f.Original.String() != f.Type.String() {
				fmt.Fprintf(&b, "  (from %s, %s)", f.Original, f.Shape)
			}
			b.WriteString("\n")
		}
		if lm.Return != nil {
			fmt.Fprintf(&b, "returns  %s\n", typeStyle.Render(lm.Return.String()))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}
	return b.String()
}

func (m *browserModel) formatMethod(lm *transform.LatticeMethod) string {
	return funcStyle.Render(lm.WireName) + " " + lm.Path()
}

func runBrowser(a *providergen.Analysis) error {
	p := tea.NewProgram(newBrowserModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
