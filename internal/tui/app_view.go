package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/progress"
)

const (
	headerLines = 4 // title, progress, filter bar, blank
	footerLines = 3 // status, quote, help
)

func (m *appModel) listHeight() int {
	h := m.height - headerLines - footerLines
	if h < 3 {
		h = 3
	}
	return h
}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "Loading…"
	}

	var body string
	switch m.view {
	case viewDetail:
		body = m.viewDetail()
	default:
		body = m.weeksList.View()
	}

	screen := strings.Join([]string{
		m.viewHeader(),
		body,
		m.viewFooter(),
	}, "\n")

	if m.confirmDelete {
		modal := renderConfirmModal(
			m.width,
			"Delete week",
			fmt.Sprintf("Delete week %d? This cannot be undone.", m.confirmWeek),
			"Delete",
			"Cancel",
			m.confirmFocus,
		)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return screen
}

func (m appModel) viewHeader() string {
	st := progress.Compute(m.db.Weeks)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("ML Roadmap")
	counts := styleMuted().Render(fmt.Sprintf(
		"  %d/%d weeks · %.0f/%.0fh · %d/%d projects",
		st.Completed, st.Total, st.CompletedHours, st.TotalHours, st.ProjectsDone, st.Projects,
	))

	barW := m.width - 24
	if barW > 40 {
		barW = 40
	}
	bar := progressBar(st.CompletionRate, barW)
	pct := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(" %d%%", st.CompletionRate))
	cur := ""
	if st.Current != nil {
		cur = styleMuted().Render(fmt.Sprintf("   up next: week %d · %s", st.Current.Week, st.Current.Concept))
	}

	return strings.Join([]string{
		truncateToWidth(title+counts, m.width),
		truncateToWidth(bar+pct+cur, m.width),
		truncateToWidth(m.viewFilterBar(), m.width),
		"",
	}, "\n")
}

func (m appModel) viewFilterBar() string {
	chip := func(label, value string, active bool) string {
		s := label + ":" + value
		if active {
			return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(s)
		}
		return styleMuted().Render(s)
	}

	parts := []string{
		chip("category", m.category(), m.category() != progress.FilterAll),
		chip("status", m.status.label(), m.status != statusAll),
	}
	if m.searching {
		parts = append(parts, m.searchInput.View())
	} else if q := m.searchInput.Value(); q != "" {
		parts = append(parts, chip("search", q, true))
	}
	parts = append(parts, styleMuted().Render(fmt.Sprintf("%d shown", len(m.weeksList.Items()))))
	return strings.Join(parts, "   ")
}

func (m appModel) viewFooter() string {
	status := m.statusMsg
	switch {
	case m.syncing:
		status = "syncing…"
	case status == "":
		if t, ok := m.store.LastSync(); ok {
			status = "last sync " + t.Local().Format("2006-01-02 15:04")
		} else if m.cfg.Sync.Configured() {
			status = "never synced"
		} else {
			status = "cloud sync off"
		}
	}

	help := "enter: open   space: toggle done   /: search   c: category   s: status   r: reset   d: delete   S: sync   q: quit"
	if m.view == viewDetail {
		help = "esc: back   space: toggle done   q: back"
	}

	return strings.Join([]string{
		truncateToWidth(styleMuted().Render(status), m.width),
		truncateToWidth(styleMuted().Italic(true).Render("“"+m.quote+"”"), m.width),
		truncateToWidth(styleMuted().Render(help), m.width),
	}, "\n")
}

func (m appModel) viewDetail() string {
	w, ok := progress.Find(m.db.Weeks, m.detailWeek)
	if !ok {
		return styleMuted().Render("week no longer exists")
	}

	titleSt := lipgloss.NewStyle().Bold(true).Foreground(colorText)
	if w.Completed {
		titleSt = titleSt.Foreground(colorDone)
	}
	label := styleMuted()

	lines := []string{
		titleSt.Render(fmt.Sprintf("Week %d · %s", w.Week, w.Concept)),
		"",
		label.Render("practice   ") + w.Practice,
		label.Render("hours      ") + fmt.Sprintf("%.0f of %.0f", w.HoursCompleted, w.HoursExpected),
		label.Render("priority   ") + lipgloss.NewStyle().Foreground(priorityColor(string(w.Priority))).Render(string(w.Priority)),
	}
	if w.Category != "" {
		lines = append(lines, label.Render("category   ")+w.Category)
	}
	if w.StartDate != "" {
		lines = append(lines, label.Render("starts     ")+w.StartDate)
	}
	if len(w.Tags) > 0 {
		lines = append(lines, label.Render("tags       ")+"#"+strings.Join(w.Tags, " #"))
	}
	if w.Completed {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDone).Render("✓ completed"))
	}

	if len(w.Resources) > 0 {
		lines = append(lines, "", label.Render("resources"))
		for _, r := range w.Resources {
			lines = append(lines, resourceLine(r, m.width-2))
		}
	}

	if notes := strings.TrimSpace(w.Notes); notes != "" {
		lines = append(lines, "", label.Render("notes"), renderMarkdown(notes, m.width-2))
	}

	out := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Padding(0, 1).MaxHeight(m.listHeight()).Render(out)
}

func resourceLine(r model.Resource, width int) string {
	line := fmt.Sprintf("  • %s (%s)  %s", r.Title, r.Type, r.URL)
	return truncateToWidth(line, width)
}

// progressBar renders pct (0..100) as a fixed-width block bar.
func progressBar(pct, width int) string {
	if width < 4 {
		width = 4
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := width * pct / 100
	full := lipgloss.NewStyle().Foreground(colorDone).Render(strings.Repeat("█", filled))
	rest := styleMuted().Render(strings.Repeat("░", width-filled))
	return full + rest
}
