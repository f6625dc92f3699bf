package cli

import (
	"context"
	"errors"
	"time"

	"roadmap-cli/internal/gist"
	"roadmap-cli/internal/store"
	syncpkg "roadmap-cli/internal/sync"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Cloud backup helpers (GitHub gist)",
	}

	cmd.AddCommand(newSyncNowCmd(app))
	cmd.AddCommand(newSyncUpCmd(app))
	cmd.AddCommand(newSyncDownCmd(app))
	cmd.AddCommand(newSyncStatusCmd(app))
	cmd.AddCommand(newSyncDiscoverCmd(app))
	return cmd
}

func newOrchestrator(app *App) (*syncpkg.Orchestrator, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	client := gist.New(cfg.Sync, gist.Options{})
	return syncpkg.New(client, s), s, nil
}

func syncCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), time.Minute)
}

func newSyncNowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Reconcile local and cloud data (remote wins on any difference)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			o, _, err := newOrchestrator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer o.Close()

			ctx, cancel := syncCtx(cmd)
			defer cancel()

			res := o.Reconcile(ctx, db.Weeks)
			if res.Outcome == syncpkg.OutcomePulledRemote {
				db.Weeks = res.Weeks
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent(eventActor, "roadmap.pull", "roadmap", map[string]any{"weeks": len(res.Weeks)})
			}
			if res.Outcome == syncpkg.OutcomeFailed {
				return writeErr(cmd, errors.New(res.Message))
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	return cmd
}

func newSyncUpCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Upload local progress to the cloud document",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			o, _, err := newOrchestrator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer o.Close()

			ctx, cancel := syncCtx(cmd)
			defer cancel()

			res := o.Upload(ctx, db.Weeks)
			if !res.Success {
				return writeErr(cmd, errors.New(res.Message))
			}
			_ = s.AppendEvent(eventActor, "roadmap.push", "roadmap", map[string]any{"weeks": len(db.Weeks)})
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	return cmd
}

func newSyncDownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Replace local progress with the cloud document",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			o, _, err := newOrchestrator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer o.Close()

			ctx, cancel := syncCtx(cmd)
			defer cancel()

			res := o.Download(ctx)
			if !res.Success {
				return writeErr(cmd, errors.New(res.Message))
			}
			db.Weeks = res.Weeks
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "roadmap.pull", "roadmap", map[string]any{"weeks": len(res.Weeks)})
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"weeks": len(res.Weeks), "message": res.Message},
			})
		},
	}
	return cmd
}

func newSyncStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and last successful sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}

			data := map[string]any{
				"configured":   cfg.Sync.Configured(),
				"gistId":       cfg.Sync.GistID,
				"autoSync":     cfg.Sync.AutoSync,
				"syncInterval": cfg.Sync.SyncInterval,
			}
			if t, ok := s.LastSync(); ok {
				data["lastSync"] = t.Format(time.RFC3339)
			}

			hints := []string{}
			if !cfg.Sync.Configured() {
				hints = append(hints, "roadmap config set --token <github-token>")
			} else if cfg.Sync.GistID == "" {
				hints = append(hints, "roadmap sync discover")
			}
			return writeOut(cmd, app, map[string]any{"data": data, "_hints": hints})
		},
	}
	return cmd
}

func newSyncDiscoverCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find a previously created cloud backup and adopt its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			client := gist.New(cfg.Sync, gist.Options{})

			ctx, cancel := syncCtx(cmd)
			defer cancel()

			id := client.Discover(ctx)
			if id == "" {
				return writeErr(cmd, errNotFound("cloud backup", gist.DefaultDescription))
			}
			cfg.Sync.GistID = id
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"gistId": id}})
		},
	}
	return cmd
}
