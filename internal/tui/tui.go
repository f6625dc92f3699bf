package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"roadmap-cli/internal/gist"
	"roadmap-cli/internal/store"
	roadsync "roadmap-cli/internal/sync"
)

// Run starts the interactive dashboard. If auto-sync is enabled in the
// config, a background timer uploads the persisted snapshot while the
// dashboard is open; it is torn down when Run returns.
func Run(s store.Store, db *store.DB, cfg *store.GlobalConfig) error {
	applyColorProfilePreference()
	applyThemePreference()

	orch := roadsync.New(gist.New(cfg.Sync, gist.Options{}), s)
	defer orch.Close()

	m := newAppModel(s, db, cfg, orch)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.Sync.AutoSync && cfg.Sync.Configured() {
		interval := time.Duration(cfg.Sync.SyncInterval) * time.Minute
		orch.StartAutoSync(interval, func(res gist.Result) {
			p.Send(autoSyncMsg{res: res})
		})
	}

	_, err := p.Run()
	return err
}
