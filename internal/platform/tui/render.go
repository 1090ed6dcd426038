package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-solitaire/internal/klondike"
)

// cellWidth is the rendered width of one card slot including its gap.
const cellWidth = 6

// minTableWidth fits the seven tableau columns.
const minTableWidth = cellWidth * klondike.TableauCount

var (
	cellStyle     = lipgloss.NewStyle().Width(cellWidth)
	redStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	blackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	hiddenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	heldStyle     = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	victoryStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	tableauLabels = [klondike.TableauCount]string{"1", "2", "3", "4", "5", "6", "7"}
)

// renderTable draws the header, both card rows and the status line.
func renderTable(m GameModel) string {
	var b strings.Builder
	g := m.game

	header := fmt.Sprintf("Score %d   Moves %d   Deal #%d", g.Score(), g.Moves(), g.Seed())
	if m.cfg.Display.ShowTimer {
		header += "   Time " + formatClock(g.ElapsedSeconds())
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	// Top row: stock, waste, gap, foundations.
	var top []string
	top = append(top, m.renderSlot(slotStock, m.stockLabel()))
	top = append(top, m.renderSlot(slotWaste, m.topLabel(g.Waste())))
	top = append(top, cellStyle.Render(""))
	for i := range klondike.FoundationCount {
		top = append(top, m.renderSlot(slotFoundation+i, m.topLabel(g.Foundation(i))))
	}
	b.WriteString(strings.Join(top, ""))
	b.WriteString("\n\n")

	// Tableau column headers then rows.
	var labels []string
	for i := range klondike.TableauCount {
		style := emptyStyle
		if m.cursor == slotTableau+i {
			style = headerStyle
		}
		labels = append(labels, cellStyle.Render(style.Render(tableauLabels[i])))
	}
	b.WriteString(strings.Join(labels, ""))
	b.WriteString("\n")

	depth := 1
	for i := range klondike.TableauCount {
		depth = max(depth, g.Tableau(i).Len())
	}
	for row := range depth {
		var cells []string
		for i := range klondike.TableauCount {
			cells = append(cells, m.renderTableauCell(i, row))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, ""), " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.prompting:
		b.WriteString(m.prompt.View())
	case g.Won():
		b.WriteString(victoryStyle.Render(m.status))
	default:
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

// renderSlot renders one top-row pile with the cursor and held markers.
func (m GameModel) renderSlot(slot int, label string) string {
	p := m.pileAt(slot)
	if m.held != nil && m.held.Pile() == p && p.Last() == m.held {
		label = heldStyle.Render(label)
	} else if m.cursor == slot {
		label = cursorStyle.Render(label)
	}
	return cellStyle.Render(label)
}

// renderTableauCell renders the card at row of tableau pile i, or padding.
func (m GameModel) renderTableauCell(i, row int) string {
	p := m.game.Tableau(i)
	slot := slotTableau + i

	if p.Len() == 0 {
		if row == 0 {
			label := emptyStyle.Render("[  ]")
			if m.cursor == slot {
				label = cursorStyle.Render("[  ]")
			}
			return cellStyle.Render(label)
		}
		return cellStyle.Render("")
	}

	c := p.CardAt(row)
	if c == nil {
		return cellStyle.Render("")
	}

	label := m.cardLabel(c)
	switch {
	case m.held != nil && m.held.Pile() == p && row >= p.IndexOf(m.held):
		label = heldStyle.Render(label)
	case m.cursor == slot && row == p.Len()-1-m.depth:
		label = cursorStyle.Render(label)
	}
	return cellStyle.Render(label)
}

// stockLabel shows the remaining stock size, or a recycle mark once empty.
func (m GameModel) stockLabel() string {
	n := m.game.Stock().Len()
	switch {
	case n > 0:
		return hiddenStyle.Render(fmt.Sprintf("#%02d", n))
	case m.game.Waste().Len() > 0:
		return emptyStyle.Render("(o)")
	default:
		return emptyStyle.Render("[  ]")
	}
}

// topLabel renders the top card of p, or an empty marker.
func (m GameModel) topLabel(p *klondike.Pile) string {
	c := p.Last()
	if c == nil {
		return emptyStyle.Render("[  ]")
	}
	return m.cardLabel(c)
}

// cardLabel renders one card, with suit colors when enabled.
func (m GameModel) cardLabel(c *klondike.Card) string {
	if !c.FaceUp() {
		return hiddenStyle.Render("##")
	}
	if !m.cfg.Display.ColorSuits {
		return c.String()
	}
	if c.Color() == klondike.Red {
		return redStyle.Render(c.String())
	}
	return blackStyle.Render(c.String())
}

// formatClock renders seconds as m:ss, or h:mm:ss past an hour.
func formatClock(secs int) string {
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
