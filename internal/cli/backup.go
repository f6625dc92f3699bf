package cli

import (
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full roadmap to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Export(out, db.Weeks); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"file": out, "weeks": len(db.Weeks)},
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "roadmap-backup.json", "Output file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the roadmap with a JSON backup file",
		Long:  "Replaces the local roadmap wholesale. The file must be a JSON array of weeks; any other shape is rejected and nothing changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks, err := store.Import(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			db.Weeks = weeks
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "roadmap.import", "roadmap", map[string]any{"file": in, "weeks": len(weeks)})
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"file": in, "weeks": len(weeks)},
			})
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Backup file to import")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all progress and re-seed the bundled curriculum (requires --yes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errConfirmRequired("reset all progress"))
			}
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			if err := s.Reset(); err != nil {
				return writeErr(cmd, err)
			}
			db, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "roadmap.reset", "roadmap", nil)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"weeks": len(db.Weeks)},
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm reset")
	return cmd
}
