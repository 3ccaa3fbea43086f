// Package tui is the Bubble Tea client for a game session.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/models"
)

// RefreshInterval is how often the view re-reads the session
const RefreshInterval = 100 * time.Millisecond

type pane int

const (
	paneBuildings pane = iota
	paneTechnologies
)

type refreshMsg time.Time

type chronicleMsg string

// Model renders a session and turns key presses into session actions. The
// session is ticked elsewhere; the model only reads snapshots.
type Model struct {
	session *game.Session
	printer *message.Printer

	snap      game.Snapshot
	pane      pane
	cursor    int
	resource  int
	status    string
	narrating bool
	quitting  bool
}

// New creates a model for the session
func New(session *game.Session, locale string) Model {
	return Model{
		session: session,
		printer: i18n.Printer(locale),
		snap:    session.Snapshot(),
	}
}

func refresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.snap = m.session.Snapshot()
		m.clampCursor()
		return m, refresh()

	case chronicleMsg:
		m.narrating = false
		m.status = string(msg)
		m.snap = m.session.Snapshot()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	resources := models.AllResourceTypes()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.pane == paneBuildings {
			m.pane = paneTechnologies
		} else {
			m.pane = paneBuildings
		}
		m.cursor = 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		m.cursor++
		m.clampCursor()

	case "left", "h":
		m.resource = (m.resource + len(resources) - 1) % len(resources)

	case "right", "l":
		m.resource = (m.resource + 1) % len(resources)

	case "c":
		m.setResult(m.session.Collect(resources[m.resource]), "")

	case "b", "enter":
		m.activate()

	case "u":
		if m.pane == paneBuildings && m.cursor < len(m.snap.Buildings) {
			b := m.snap.Buildings[m.cursor]
			m.setResult(m.session.Upgrade(b.ID), b.Name)
		}

	case "n":
		if m.narrating {
			return m, nil
		}
		m.narrating = true
		session := m.session
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), game.DefaultNarrationTimeout)
			defer cancel()
			return chronicleMsg(session.Chronicle(ctx))
		}
	}

	m.snap = m.session.Snapshot()
	m.clampCursor()
	return m, nil
}

// activate purchases the selected building or researches the selected
// technology
func (m *Model) activate() {
	switch m.pane {
	case paneBuildings:
		if m.cursor < len(m.snap.Buildings) {
			b := m.snap.Buildings[m.cursor]
			m.setResult(m.session.Purchase(b.ID), b.Name)
		}
	case paneTechnologies:
		if m.cursor < len(m.snap.Technologies) {
			t := m.snap.Technologies[m.cursor]
			m.setResult(m.session.Research(t.ID), t.Name)
		}
	}
}

func (m *Model) setResult(err error, name string) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, game.ErrInsufficientResources):
		m.status = name + ": " + err.Error()
	default:
		m.status = err.Error()
	}
}

func (m *Model) clampCursor() {
	n := len(m.snap.Buildings)
	if m.pane == paneTechnologies {
		n = len(m.snap.Technologies)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Run starts the program on the terminal and blocks until the player quits
func Run(session *game.Session, locale string) error {
	_, err := tea.NewProgram(New(session, locale), tea.WithAltScreen()).Run()
	return err
}
