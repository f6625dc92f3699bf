package cli

import (
	"errors"
	"strconv"
	"strings"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/progress"

	"github.com/spf13/cobra"
)

func newWeeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Week commands",
	}
	cmd.AddCommand(newWeeksListCmd(app))
	cmd.AddCommand(newWeeksShowCmd(app))
	cmd.AddCommand(newWeeksAddCmd(app))
	cmd.AddCommand(newWeeksUpdateCmd(app))
	cmd.AddCommand(newWeeksCompleteCmd(app))
	cmd.AddCommand(newWeeksDeleteCmd(app))
	return cmd
}

// parseStatusFlag maps --status to the nullable completion filter.
func parseStatusFlag(status string) (*bool, error) {
	switch status {
	case "", "all":
		return nil, nil
	case "done", "completed":
		v := true
		return &v, nil
	case "todo", "in-progress":
		v := false
		return &v, nil
	default:
		return nil, errors.New("invalid --status (want all|done|todo)")
	}
}

func newWeeksListCmd(app *App) *cobra.Command {
	var (
		category string
		priority string
		status   string
		search   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List weeks (filtered, paginated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			completed, err := parseStatusFlag(status)
			if err != nil {
				return writeErr(cmd, err)
			}

			filtered := progress.Apply(db.Weeks, model.FilterOptions{
				Category:  category,
				Priority:  priority,
				Completed: completed,
				Search:    search,
			})
			pg := progress.Paginate(filtered, pageSize, page)

			return writeOut(cmd, app, map[string]any{
				"data": pg.Weeks,
				"meta": map[string]any{
					"page":      pg.Number,
					"pageCount": pg.PageCount,
					"total":     pg.Total,
				},
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "Category filter (all disables)")
	cmd.Flags().StringVar(&priority, "priority", "all", "Priority filter (high|medium|low, all disables)")
	cmd.Flags().StringVar(&status, "status", "all", "Completion filter (all|done|todo)")
	cmd.Flags().StringVar(&search, "search", "", "Search concept, practice, notes and tags")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", progress.DefaultPageSize, "Weeks per page")
	return cmd
}

func parseWeekArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a week number argument")
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || n < 1 {
		return 0, errors.New("invalid week number")
	}
	return n, nil
}

func newWeeksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <week>",
		Short: "Show one week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := parseWeekArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			w, ok := progress.Find(db.Weeks, n)
			if !ok {
				return writeErr(cmd, errNotFound("week", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}
	return cmd
}

func newWeeksAddCmd(app *App) *cobra.Command {
	var (
		concept   string
		practice  string
		startDate string
		hours     float64
		priority  string
		category  string
		notes     string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a week at the end of the roadmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			w := model.Week{
				StartDate:     startDate,
				Concept:       strings.TrimSpace(concept),
				Practice:      strings.TrimSpace(practice),
				HoursExpected: hours,
				Priority:      model.Priority(priority),
				Category:      category,
				Notes:         notes,
				Tags:          tags,
			}
			db.Weeks, w = progress.Add(db.Weeks, w)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "week.create", weekEntityID(w.Week), w)
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}

	cmd.Flags().StringVar(&concept, "concept", "", "Concept to study")
	cmd.Flags().StringVar(&practice, "practice", "", "Practice task")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 10, "Expected hours")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (high|medium|low)")
	cmd.Flags().StringVar(&category, "category", "", "Category tag (\"project\" marks a milestone)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags")
	_ = cmd.MarkFlagRequired("concept")
	return cmd
}

func newWeeksUpdateCmd(app *App) *cobra.Command {
	var (
		concept        string
		practice       string
		startDate      string
		hoursExpected  float64
		hoursCompleted float64
		completed      bool
		notes          string
		priority       string
		category       string
		tags           []string
	)

	cmd := &cobra.Command{
		Use:   "update <week>",
		Short: "Update fields of a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := parseWeekArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Only flags the user set become part of the patch.
			var p progress.Patch
			if cmd.Flags().Changed("concept") {
				p.Concept = &concept
			}
			if cmd.Flags().Changed("practice") {
				p.Practice = &practice
			}
			if cmd.Flags().Changed("start-date") {
				p.StartDate = &startDate
			}
			if cmd.Flags().Changed("hours-expected") {
				p.HoursExpected = &hoursExpected
			}
			if cmd.Flags().Changed("hours") {
				p.HoursCompleted = &hoursCompleted
			}
			if cmd.Flags().Changed("completed") {
				p.Completed = &completed
			}
			if cmd.Flags().Changed("notes") {
				p.Notes = &notes
			}
			if cmd.Flags().Changed("priority") {
				pr := model.Priority(priority)
				p.Priority = &pr
			}
			if cmd.Flags().Changed("category") {
				p.Category = &category
			}
			if cmd.Flags().Changed("tags") {
				p.Tags = &tags
			}

			w, err := progress.Update(db.Weeks, n, p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "week.update", weekEntityID(n), w)
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}

	cmd.Flags().StringVar(&concept, "concept", "", "Concept to study")
	cmd.Flags().StringVar(&practice, "practice", "", "Practice task")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hoursExpected, "hours-expected", 0, "Expected hours")
	cmd.Flags().Float64Var(&hoursCompleted, "hours", 0, "Completed hours")
	cmd.Flags().BoolVar(&completed, "completed", false, "Completion state")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high|medium|low)")
	cmd.Flags().StringVar(&category, "category", "", "Category tag")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags")
	return cmd
}

func newWeeksCompleteCmd(app *App) *cobra.Command {
	var hours float64

	cmd := &cobra.Command{
		Use:   "complete <week>",
		Short: "Mark a week completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := parseWeekArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}

			done := true
			p := progress.Patch{Completed: &done}
			if cmd.Flags().Changed("hours") {
				p.HoursCompleted = &hours
			}
			w, err := progress.Update(db.Weeks, n, p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "week.complete", weekEntityID(n), w)
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Completed hours to record alongside")
	return cmd
}

func newWeeksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <week>",
		Short: "Delete a week (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errConfirmRequired("delete a week"))
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := parseWeekArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}

			weeks, err := progress.Delete(db.Weeks, n)
			if err != nil {
				return writeErr(cmd, err)
			}
			db.Weeks = weeks
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(eventActor, "week.delete", weekEntityID(n), nil)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": n}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func weekEntityID(n int) string {
	return "week-" + strconv.Itoa(n)
}
