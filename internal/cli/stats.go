package cli

import (
	"roadmap-cli/internal/progress"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var phases bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show roadmap progress stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			out := map[string]any{"data": progress.Compute(db.Weeks)}
			if phases {
				out["phases"] = progress.Phases(db.Weeks)
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().BoolVar(&phases, "phases", false, "Include the per-phase breakdown")
	return cmd
}
