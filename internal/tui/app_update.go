package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"roadmap-cli/internal/gist"
	"roadmap-cli/internal/model"
	"roadmap-cli/internal/progress"
	roadsync "roadmap-cli/internal/sync"
)

type syncDoneMsg struct {
	res roadsync.ReconcileResult
}

// autoSyncMsg is injected from outside the program by the auto-sync timer.
type autoSyncMsg struct {
	res gist.Result
}

type clearStatusMsg struct{}

func (m appModel) Init() tea.Cmd {
	return nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.weeksList.SetSize(msg.Width, m.listHeight())
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if msg.res.Outcome == roadsync.OutcomePulledRemote {
			m.db.Weeks = msg.res.Weeks
			if err := m.store.Save(m.db); err != nil {
				m.statusMsg = "sync: " + err.Error()
				return m, clearStatusAfter(5 * time.Second)
			}
			m.refreshItems()
		}
		m.statusMsg = "sync: " + msg.res.Message
		return m, clearStatusAfter(5 * time.Second)

	case autoSyncMsg:
		if msg.res.Success {
			m.statusMsg = "auto-sync: uploaded"
		} else {
			m.statusMsg = "auto-sync: " + msg.res.Message
		}
		return m, clearStatusAfter(5 * time.Second)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.weeksList, cmd = m.weeksList.Update(msg)
	return m, cmd
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		return m.updateConfirmKey(msg)
	}
	if m.searching {
		return m.updateSearchKey(msg)
	}
	if m.view == viewDetail {
		return m.updateDetailKey(msg)
	}
	return m.updateListKey(msg)
}

func (m appModel) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case "y":
		return m.applyDelete()
	case "n", "esc", "ctrl+g":
		m.confirmDelete = false
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.applyDelete()
		}
		m.confirmDelete = false
	}
	return m, nil
}

func (m appModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.refreshItems()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refreshItems()
	return m, cmd
}

func (m appModel) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.view = viewList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case " ", "x":
		return m.toggleSelected()
	}
	return m, nil
}

func (m appModel) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, nil
	case "c":
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		m.refreshItems()
		return m, nil
	case "s":
		m.status = (m.status + 1) % 3
		m.refreshItems()
		return m, nil
	case "r":
		m.resetFilters()
		return m, nil
	case "enter":
		if w, ok := m.selectedWeek(); ok {
			m.detailWeek = w.Week
			m.view = viewDetail
		}
		return m, nil
	case " ", "x":
		return m.toggleSelected()
	case "d":
		if w, ok := m.selectedWeek(); ok {
			m.confirmDelete = true
			m.confirmFocus = confirmFocusCancel
			m.confirmWeek = w.Week
		}
		return m, nil
	case "S":
		return m.startSync()
	}

	var cmd tea.Cmd
	m.weeksList, cmd = m.weeksList.Update(msg)
	return m, cmd
}

func (m appModel) toggleSelected() (tea.Model, tea.Cmd) {
	n := m.detailWeek
	if m.view == viewList {
		w, ok := m.selectedWeek()
		if !ok {
			return m, nil
		}
		n = w.Week
	}
	cur, ok := progress.Find(m.db.Weeks, n)
	if !ok {
		return m, nil
	}

	flip := !cur.Completed
	w, err := progress.Update(m.db.Weeks, n, progress.Patch{Completed: &flip})
	if err != nil {
		m.statusMsg = err.Error()
		return m, clearStatusAfter(5 * time.Second)
	}
	if err := m.store.Save(m.db); err != nil {
		m.statusMsg = err.Error()
		return m, clearStatusAfter(5 * time.Second)
	}
	typ := "week.complete"
	if !flip {
		typ = "week.reopen"
	}
	_ = m.store.AppendEvent(eventActor, typ, fmt.Sprintf("week-%d", n), w)
	m.refreshItems()
	return m, nil
}

func (m appModel) applyDelete() (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	weeks, err := progress.Delete(m.db.Weeks, m.confirmWeek)
	if err != nil {
		m.statusMsg = err.Error()
		return m, clearStatusAfter(5 * time.Second)
	}
	m.db.Weeks = weeks
	if err := m.store.Save(m.db); err != nil {
		m.statusMsg = err.Error()
		return m, clearStatusAfter(5 * time.Second)
	}
	_ = m.store.AppendEvent(eventActor, "week.delete", fmt.Sprintf("week-%d", m.confirmWeek), nil)
	m.refreshItems()
	m.statusMsg = fmt.Sprintf("deleted week %d", m.confirmWeek)
	return m, clearStatusAfter(3 * time.Second)
}

func (m appModel) startSync() (tea.Model, tea.Cmd) {
	if !m.cfg.Sync.Configured() {
		m.statusMsg = "cloud sync not configured (run: roadmap config set --token <token>)"
		return m, clearStatusAfter(5 * time.Second)
	}
	if m.syncing {
		return m, nil
	}
	m.syncing = true

	orch := m.orch
	weeks := append([]model.Week(nil), m.db.Weeks...)
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return syncDoneMsg{res: orch.Reconcile(ctx, weeks)}
	}
}
