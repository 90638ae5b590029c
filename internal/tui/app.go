// Package tui provides the interactive Bubble Tea schedule browser for amort.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/amort/internal/cli"
	"github.com/theirongolddev/amort/internal/schedule"
	"github.com/theirongolddev/amort/internal/tui/components"
	"github.com/theirongolddev/amort/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140

	// Lines used by everything except the table body.
	chromeHeight = 14
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first month")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last month")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// App is the root Bubble Tea model.
type App struct {
	title   string
	layout  string
	entries []schedule.Entry
	summary schedule.Summary

	table table.Model
	help  help.Model
	keys  keyMap

	width  int
	height int
}

// NewApp creates the schedule browser for entries.
func NewApp(title string, entries []schedule.Entry, dateLayout string) App {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row(cli.ScheduleRow(e, dateLayout)))
	}

	tbl := table.New(
		table.WithColumns(scheduleColumns(rows)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(tableStyles())

	return App{
		title:   title,
		layout:  dateLayout,
		entries: entries,
		summary: schedule.Summarize(entries),
		table:   tbl,
		help:    help.New(),
		keys:    keys,
	}
}

func scheduleColumns(rows []table.Row) []table.Column {
	cols := make([]table.Column, len(cli.ScheduleHeaders))
	for i, h := range cli.ScheduleHeaders {
		w := lipgloss.Width(h)
		for _, r := range rows {
			if cw := lipgloss.Width(r[i]); cw > w {
				w = cw
			}
		}
		cols[i] = table.Column{Title: h, Width: w + 2}
	}
	return cols
}

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.BorderAccent).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.Selected).
		Bold(true)
	return s
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.table.SetHeight(max(a.height-chromeHeight, 3))
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case key.Matches(msg, a.keys.Top):
			a.table.GotoTop()
			return a, nil
		case key.Matches(msg, a.keys.Bottom):
			a.table.GotoBottom()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// selected returns the entry under the table cursor.
func (a App) selected() (schedule.Entry, bool) {
	i := a.table.Cursor()
	if i < 0 || i >= len(a.entries) {
		return schedule.Entry{}, false
	}
	return a.entries[i], true
}

// repaid is the share of the starting principal paid down before e.
func (a App) repaid(e schedule.Entry) float64 {
	principal := a.summary.Principal.Float64()
	if principal <= 0 {
		return 0
	}
	return 1 - e.Amount.Float64()/principal
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  amort needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if len(a.entries) == 0 {
		return "\n  No months to show.\n\n" + a.help.View(a.keys)
	}

	t := theme.Active
	w := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(a.title))
	b.WriteString("\n\n")
	b.WriteString(components.MetricCardRow(a.metrics(), w))
	b.WriteString("\n")
	b.WriteString(a.table.View())
	b.WriteString("\n\n")

	if e, ok := a.selected(); ok {
		barW := w - 30
		if barW > 60 {
			barW = 60
		}
		label := cli.FormatMonth(e.Month, a.layout)
		b.WriteString(" " + components.PayoffBar(label, a.repaid(e), 20, barW))
	}
	b.WriteString("\n\n")

	if a.help.ShowAll {
		b.WriteString(a.help.View(a.keys))
	} else {
		pos := fmt.Sprintf("%s/%s", cli.FormatNumber(int64(a.table.Cursor()+1)), cli.FormatNumber(int64(len(a.entries))))
		b.WriteString(components.RenderStatusBar(w, a.help.ShortHelpView(a.keys.ShortHelp()), pos))
	}

	return b.String()
}

func (a App) metrics() []components.Metric {
	s := a.summary

	t := theme.Active
	status, statusColor := "not paid off", t.Warn
	if s.PaidOff {
		status, statusColor = "paid off", t.Paid
	}

	share := ""
	if s.TotalPaid.Sign() > 0 {
		share = cli.FormatPercent(s.TotalInterest.Float64()/s.TotalPaid.Float64()) + " of payments"
	}

	return []components.Metric{
		{Label: "Principal", Value: s.Principal.String(), Note: "from " + cli.FormatMonth(s.FirstMonth, a.layout)},
		{Label: "Term", Value: cli.FormatTerm(s.Months), Note: status, NoteColor: statusColor},
		{Label: "Total Interest", Value: s.TotalInterest.String(), Note: share, ValueColor: t.Interest},
		{Label: "Final Payment", Value: s.FinalPayment.String(), Note: cli.FormatMonth(s.LastMonth, a.layout)},
	}
}
