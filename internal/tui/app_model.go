package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/progress"
	"roadmap-cli/internal/store"
	roadsync "roadmap-cli/internal/sync"
)

// eventActor labels audit-log entries written from the dashboard.
const eventActor = "tui"

type view int

const (
	viewList view = iota
	viewDetail
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// statusFilter cycles all -> todo -> done.
type statusFilter int

const (
	statusAll statusFilter = iota
	statusTodo
	statusDone
)

func (f statusFilter) label() string {
	switch f {
	case statusTodo:
		return "todo"
	case statusDone:
		return "done"
	default:
		return "all"
	}
}

func (f statusFilter) completed() *bool {
	switch f {
	case statusTodo:
		v := false
		return &v
	case statusDone:
		v := true
		return &v
	default:
		return nil
	}
}

type appModel struct {
	store store.Store
	db    *store.DB
	cfg   *store.GlobalConfig
	orch  *roadsync.Orchestrator

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view       view
	weeksList  list.Model
	detailWeek int

	// Filters are session state only; they are never persisted.
	status      statusFilter
	categories  []string // "all" first, then the distinct categories
	categoryIdx int
	searchInput textinput.Model
	searching   bool

	confirmDelete bool
	confirmFocus  confirmModalFocus
	confirmWeek   int

	syncing   bool
	statusMsg string
	quote     string
}

func newAppModel(s store.Store, db *store.DB, cfg *store.GlobalConfig, orch *roadsync.Orchestrator) appModel {
	si := textinput.New()
	si.Placeholder = "search concept, practice, notes, tags"
	si.Prompt = "/ "
	si.CharLimit = 120

	l := list.New(nil, newWeekCardDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false) // search is handled by our own input
	l.DisableQuitKeybindings()

	m := appModel{
		store:       s,
		db:          db,
		cfg:         cfg,
		orch:        orch,
		weeksList:   l,
		categories:  append([]string{progress.FilterAll}, progress.Categories(db.Weeks)...),
		searchInput: si,
		quote:       dailyQuote(time.Now()),
	}
	m.refreshItems()
	return m
}

func (m *appModel) category() string {
	if m.categoryIdx < 0 || m.categoryIdx >= len(m.categories) {
		return progress.FilterAll
	}
	return m.categories[m.categoryIdx]
}

func (m *appModel) filterOptions() model.FilterOptions {
	return model.FilterOptions{
		Category:  m.category(),
		Priority:  progress.FilterAll,
		Completed: m.status.completed(),
		Search:    m.searchInput.Value(),
	}
}

// refreshItems re-derives the visible cards from the full collection. The
// "current" marker always reflects the whole roadmap, not the filtered view.
func (m *appModel) refreshItems() {
	current := progress.CurrentWeek(m.db.Weeks)
	visible := progress.Apply(m.db.Weeks, m.filterOptions())

	items := make([]list.Item, 0, len(visible))
	for _, w := range visible {
		items = append(items, weekItem{
			week:    w,
			current: current != nil && current.Week == w.Week,
		})
	}
	m.weeksList.SetItems(items)
	if m.weeksList.Index() >= len(items) && len(items) > 0 {
		m.weeksList.Select(len(items) - 1)
	}
}

func (m *appModel) selectedWeek() (model.Week, bool) {
	it, ok := m.weeksList.SelectedItem().(weekItem)
	if !ok {
		return model.Week{}, false
	}
	return it.week, true
}

func (m *appModel) resetFilters() {
	m.status = statusAll
	m.categoryIdx = 0
	m.searchInput.SetValue("")
	m.refreshItems()
}
