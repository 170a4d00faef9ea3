// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package browse is an interactive viewer for one table.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/txtctl/internal/output"
)

const (
	defaultHeight = 20
	keyWidth      = 32
	valueWidth    = 64
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	frameStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder())
)

// Model is the bubbletea model of the viewer.
type Model struct {
	title     string
	nullText  string
	rows      []output.Row
	visible   []output.Row
	table     table.Model
	filtering bool
	filter    string
	status    string
}

// New returns a viewer over rows. Rows are shown in the order given.
func New(title string, rows []output.Row) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "KEY", Width: keyWidth},
			{Title: "VALUE", Width: valueWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(defaultHeight),
	)

	m := Model{title: title, nullText: "-", rows: rows, table: t}
	m.apply()
	return m
}

// Filter is the current key prefix filter.
func (m Model) Filter() string { return m.filter }

// Status is the text shown under the table.
func (m Model) Status() string { return m.status }

// Visible returns the rows passing the filter.
func (m Model) Visible() []output.Row { return m.visible }

// Selected returns the row under the cursor.
func (m Model) Selected() (output.Row, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return output.Row{}, false
	}
	return m.visible[c], true
}

// apply rebuilds the visible rows from the filter.
func (m *Model) apply() {
	m.visible = m.visible[:0:0]
	cells := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		if !strings.HasPrefix(r.Key, m.filter) {
			continue
		}
		m.visible = append(m.visible, r)
		v := r.Value
		if r.Null {
			v = m.nullText
		}
		cells = append(cells, table.Row{r.Key, v})
	}
	m.table.SetRows(cells)
	m.table.SetCursor(0)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 6; h > 0 { //nolint:mnd
			m.table.SetHeight(h)
		}
		if w := msg.Width - keyWidth - 6; w > 10 { //nolint:mnd
			m.table.SetColumns([]table.Column{
				{Title: "KEY", Width: keyWidth},
				{Title: "VALUE", Width: w},
			})
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg), nil
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.filtering = true
			m.status = ""
			return m, nil
		case "esc":
			m.filter = ""
			m.status = ""
			m.apply()
			return m, nil
		case "enter":
			if r, ok := m.Selected(); ok {
				if r.Null {
					m.status = fmt.Sprintf("%s is null", r.Key)
				} else {
					m.status = fmt.Sprintf("%s = %s", r.Key, r.Value)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
	default:
		return m
	}
	m.apply()
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(fmt.Sprintf("  %d/%d keys\n", len(m.visible), len(m.rows)))
	b.WriteString(frameStyle.Render(m.table.View()))
	b.WriteString("\n")

	switch {
	case m.filtering:
		b.WriteString("/" + m.filter + "█")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	case m.filter != "":
		b.WriteString(helpStyle.Render("filter: " + m.filter + " (esc to clear)"))
	default:
		b.WriteString(helpStyle.Render("↑/k ↓/j move • / filter • enter show • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// Run shows the viewer until the user quits or ctx is done.
func Run(ctx context.Context, title string, rows []output.Row) error {
	_, err := tea.NewProgram(New(title, rows), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("browse failed: %w", err)
	}
	return nil
}
