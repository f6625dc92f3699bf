package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"roadmap-cli/internal/model"
)

// weekItem wraps a week for the bubbles list.
type weekItem struct {
	week model.Week
	// current marks the unit the stats derivation considers "up next".
	current bool
}

func (it weekItem) FilterValue() string {
	return it.week.Concept + " " + it.week.Practice + " " + strings.Join(it.week.Tags, " ")
}

type weekCardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style

	titleStyle lipgloss.Style
	doneStyle  lipgloss.Style
	metaStyle  lipgloss.Style
}

func newWeekCardDelegate() weekCardDelegate {
	base := lipgloss.NewStyle().
		Width(0). // Set per-render.
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorText)

	selected := base.BorderForeground(colorSelectedBorder)

	return weekCardDelegate{
		normalCard:   base,
		selectedCard: selected,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorText),
		doneStyle:    lipgloss.NewStyle().Bold(true).Foreground(colorDone),
		metaStyle:    lipgloss.NewStyle().Foreground(colorCardMeta),
	}
}

func (d weekCardDelegate) Height() int  { return 5 } // 3 inner lines + border top/bottom
func (d weekCardDelegate) Spacing() int { return 1 }
func (d weekCardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d weekCardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(weekItem)
	if !ok {
		return
	}
	totalW := m.Width()
	if totalW < 12 {
		return
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}
	frameW := card.GetHorizontalFrameSize()
	innerW := totalW - frameW
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW)

	lines := []string{
		d.titleLine(it, innerW),
		d.metaStyle.Render(truncateToWidth(practiceLine(it.week), innerW)),
		d.metaStyle.Render(truncateToWidth(statusLine(it.week), innerW)),
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], innerW)
	}
	fmt.Fprint(w, card.Render(strings.Join(lines, "\n")))
}

func (d weekCardDelegate) titleLine(it weekItem, width int) string {
	mark := "○"
	st := d.titleStyle
	if it.week.Completed {
		mark = "✓"
		st = d.doneStyle
	}
	title := fmt.Sprintf("%s Week %d · %s", mark, it.week.Week, it.week.Concept)
	if it.current {
		title += "  ← current"
	}
	return st.Render(truncateToWidth(title, width))
}

func practiceLine(w model.Week) string {
	p := strings.TrimSpace(w.Practice)
	if p == "" {
		return "(no practice task)"
	}
	return p
}

func statusLine(w model.Week) string {
	parts := []string{
		fmt.Sprintf("%.0f/%.0fh", w.HoursCompleted, w.HoursExpected),
		string(w.Priority),
	}
	if w.Category != "" {
		parts = append(parts, w.Category)
	}
	if len(w.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(w.Tags, " #"))
	}
	if w.StartDate != "" {
		parts = append(parts, "starts "+w.StartDate)
	}
	return strings.Join(parts, "  |  ")
}

func truncateToWidth(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}
