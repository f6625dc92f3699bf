package cli

import (
	"fmt"
	"os"
	"strings"

	"roadmap-cli/internal/format"
	"roadmap-cli/internal/store"
	"roadmap-cli/internal/tui"

	"github.com/spf13/cobra"
)

// eventActor labels audit-log entries written by scriptable commands.
const eventActor = "cli"

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "roadmap",
		Short:        "Learning-roadmap tracker (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  roadmap

  # Scriptable commands
  roadmap weeks list --status todo
  roadmap weeks complete 3 --hours 10
  roadmap stats

  # Cloud backup (GitHub gist)
  roadmap config set --token <token>
  roadmap sync now

  # Direct week lookup (shortcut for: roadmap weeks show 7)
  roadmap week-7
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("ROADMAP_DIR", ""), "Path to data dir (advanced: overrides the default ~/.roadmap; mainly for fixtures/tests)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newWeeksCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newSyncCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newUnlockCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	return tui.Run(s, db, cfg)
}

func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	app.Dir = dir

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
