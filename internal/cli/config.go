package cli

import (
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Sync configuration",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

// redacted replaces a secret with a short marker for display.
func redacted(s string) string {
	if s == "" {
		return ""
	}
	return "(set)"
}

func newConfigShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the sync configuration (token redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"gistId":       cfg.Sync.GistID,
					"accessToken":  redacted(cfg.Sync.AccessToken),
					"autoSync":     cfg.Sync.AutoSync,
					"syncInterval": cfg.Sync.SyncInterval,
				},
			})
		},
	}
	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	var (
		gistID   string
		token    string
		autoSync bool
		interval int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set sync configuration fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("gist-id") {
				cfg.Sync.GistID = gistID
			}
			if cmd.Flags().Changed("token") {
				cfg.Sync.AccessToken = token
			}
			if cmd.Flags().Changed("auto-sync") {
				cfg.Sync.AutoSync = autoSync
			}
			if cmd.Flags().Changed("interval") {
				cfg.Sync.SyncInterval = interval
			}
			if cfg.Sync.SyncInterval <= 0 {
				cfg.Sync.SyncInterval = store.DefaultSyncInterval
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"gistId":       cfg.Sync.GistID,
					"accessToken":  redacted(cfg.Sync.AccessToken),
					"autoSync":     cfg.Sync.AutoSync,
					"syncInterval": cfg.Sync.SyncInterval,
				},
			})
		},
	}

	cmd.Flags().StringVar(&gistID, "gist-id", "", "Gist id of the cloud document")
	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (gist scope)")
	cmd.Flags().BoolVar(&autoSync, "auto-sync", false, "Enable periodic auto-sync in the TUI")
	cmd.Flags().IntVar(&interval, "interval", store.DefaultSyncInterval, "Auto-sync interval in minutes")
	return cmd
}
