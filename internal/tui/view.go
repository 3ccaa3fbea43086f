package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/ascension/internal/i18n"
	"github.com/napolitain/ascension/internal/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	eraStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	activeStyle   = panelStyle.BorderForeground(lipgloss.Color("214"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	eventStyles   = map[models.EventKind]lipgloss.Style{
		models.EventInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		models.EventSuccess: okStyle,
		models.EventWarning: warnStyle,
		models.EventEra:     eraStyle,
	}
)

const shownEvents = 6

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Industrial Ascension"),
		"  ",
		eraStyle.Render(m.snap.EraName),
		dimStyle.Render(fmt.Sprintf("  ×%s", m.printer.Sprintf("%d", int(m.snap.ClickPower)))),
	)

	left := m.buildingsPanel()
	right := m.technologiesPanel()
	if m.pane == paneBuildings {
		left = activeStyle.Render(left)
		right = panelStyle.Render(right)
	} else {
		left = panelStyle.Render(left)
		right = activeStyle.Render(right)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		panelStyle.Render(m.resourcesPanel()),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		panelStyle.Render(m.eventsPanel()),
	)

	if m.status != "" {
		body += "\n" + warnStyle.Render(m.status)
	}
	if m.narrating {
		body += "\n" + dimStyle.Render("…")
	}
	body += "\n" + dimStyle.Render("←/→ resource · c collect · tab switch · ↑/↓ select · b buy/research · u upgrade · n chronicle · q quit")
	return body
}

func (m Model) resourcesPanel() string {
	var lines []string
	for i, r := range m.snap.Resources {
		if r.Amount < 1 && r.PerSecond == 0 && i != m.resource {
			continue
		}
		info := m.session.Catalog().Resource(r.Type)
		line := fmt.Sprintf("%s %-11s %s  %s",
			info.Icon, i18n.ResourceName(m.printer, info),
			m.printer.Sprintf("%d", int(math.Floor(r.Amount))),
			dimStyle.Render(m.printer.Sprintf("+%.1f/s", r.PerSecond)),
		)
		if i == m.resource {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) costs(c models.Costs, afford bool) string {
	var parts []string
	c.Each(func(rt models.ResourceType, amount int) {
		parts = append(parts, m.session.Catalog().Resource(rt).Icon+m.printer.Sprintf("%d", amount))
	})
	text := strings.Join(parts, " ")
	if afford {
		return okStyle.Render(text)
	}
	return warnStyle.Render(text)
}

func (m Model) buildingsPanel() string {
	lines := []string{titleStyle.Render("Buildings")}
	for i, b := range m.snap.Buildings {
		name := fmt.Sprintf("%s %s x%d L%d", b.Icon, b.Name, b.Count, b.Level)
		if m.pane == paneBuildings && i == m.cursor {
			name = selectedStyle.Render(name)
		}
		line := name + "  " + m.costs(b.PurchaseCost, b.CanPurchase)
		if b.Count > 0 && b.EraRequired == m.snap.Era {
			line += dimStyle.Render("  ⇧ ") + m.costs(b.UpgradeCost, b.CanUpgrade)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) technologiesPanel() string {
	lines := []string{titleStyle.Render("Research")}
	if len(m.snap.Technologies) == 0 {
		lines = append(lines, dimStyle.Render("-"))
	}
	for i, t := range m.snap.Technologies {
		name := t.Name
		if m.pane == paneTechnologies && i == m.cursor {
			name = selectedStyle.Render(name)
		}
		lines = append(lines, name+"  "+m.costs(t.Cost, t.CanResearch))
	}
	return strings.Join(lines, "\n")
}

func (m Model) eventsPanel() string {
	events := m.snap.Events
	if len(events) > shownEvents {
		events = events[len(events)-shownEvents:]
	}
	if len(events) == 0 {
		return dimStyle.Render("-")
	}
	var lines []string
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		style, ok := eventStyles[e.Kind]
		if !ok {
			style = dimStyle
		}
		lines = append(lines, dimStyle.Render(e.Timestamp.Format("15:04:05"))+" "+style.Render(e.Message))
	}
	return strings.Join(lines, "\n")
}
