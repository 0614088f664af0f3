// Package runsview browses the run history in a Bubble Tea program, locally
// or over SSH.
package runsview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"magearena/internal/storage"
)

const maxRuns = 100

// Source is the part of the run store the browser reads.
type Source interface {
	RecentRuns(limit int) ([]storage.Run, error)
	BestRuns(limit int) ([]storage.Run, error)
}

// Tab selects how runs are ordered.
type Tab int

const (
	TabRecent Tab = iota
	TabBest
)

func (t Tab) String() string {
	if t == TabBest {
		return "Best"
	}
	return "Recent"
}

// KeyMap defines the key bindings for the browser.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Switch}, {k.Reload, k.Quit}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "recent/best"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the Bubble Tea model for the run browser.
type Model struct {
	src      Source
	tab      Tab
	runs     []storage.Run
	err      error
	table    table.Model
	help     help.Model
	keys     KeyMap
	width    int
	height   int
	quitting bool
}

// New creates a browser showing the most recent runs.
func New(src Source, width, height int) Model {
	m := Model{
		src:    src,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Date", Width: 16},
		{Title: "Outcome", Width: 10},
		{Title: "Phase", Width: 5},
		{Title: "Kills", Width: 6},
		{Title: "Spells", Width: 9},
		{Title: "Health", Width: 6},
		{Title: "Time", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current tab from the source into the table.
func (m *Model) load() {
	if m.src == nil {
		m.runs, m.err = nil, nil
	} else if m.tab == TabBest {
		m.runs, m.err = m.src.BestRuns(maxRuns)
	} else {
		m.runs, m.err = m.src.RecentRuns(maxRuns)
	}
	m.table.SetRows(Rows(m.runs))
	m.table.GotoTop()
}

// Rows formats runs as table rows, ranked in the order given.
func Rows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.StartedAt.Local().Format("Jan 02 15:04"),
			r.Outcome,
			fmt.Sprintf("%d", r.Phase),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%d", r.SpellsCast),
			fmt.Sprintf("%d", r.Health),
			r.Duration().Round(time.Second).String(),
		}
	}
	return rows
}

// Tab returns the tab on screen.
func (m Model) Tab() Tab { return m.tab }

// Runs returns the runs on screen.
func (m Model) Runs() []storage.Run { return m.runs }

// Err returns the last load error.
func (m Model) Err() error { return m.err }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.tab == TabRecent {
				m.tab = TabBest
			} else {
				m.tab = TabRecent
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(Rows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("MAGE ARENA - RUNS"))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabRecent, TabBest} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString("Error: " + m.err.Error())
	case len(m.runs) == 0:
		b.WriteString("No runs recorded yet.")
	default:
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Run starts the browser on the local terminal.
func Run(src Source) error {
	p := tea.NewProgram(New(src, 80, 24), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
