package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"momentum/internal/bootstrap"
	goaldto "momentum/internal/modules/goal/dto"
	progressdto "momentum/internal/modules/progress/dto"
	sessiondto "momentum/internal/modules/session/dto"
	"momentum/internal/platform/clock"
	"momentum/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "momentum",
		Short:         "Log activity sessions and track period goals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $MOMENTUM_DATA_DIR or ~/.momentum)")

	root.AddCommand(newDashboardCmd(&dataDir))
	root.AddCommand(newLogCmd(&dataDir))
	root.AddCommand(newSessionsCmd(&dataDir))
	root.AddCommand(newGoalsCmd(&dataDir))
	root.AddCommand(newSeriesCmd(&dataDir))
	root.AddCommand(newCatalogCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp opens the application for one command and closes it afterwards.
func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func parseAsOf(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, err := clock.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of: %w", err)
	}
	return t, nil
}

func newDashboardCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"tui"},
		Short:   "Run the terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataDir, bootstrap.RunDashboard)
		},
	}
}

func newLogCmd(dataDir *string) *cobra.Command {
	var date, group, name, notes string
	var keywords []string
	var duration float64

	cmd := &cobra.Command{
		Use:   "log --group <group> --name <activity>",
		Short: "Log a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(group) == "" || strings.TrimSpace(name) == "" {
				return fmt.Errorf("--group and --name are required")
			}
			if date == "" {
				date = clock.FormatDate(clock.Today(clock.SystemClock{}))
			}
			in := sessiondto.LogSessionInput{Date: date, Group: group, Name: name, Keywords: keywords, Notes: notes}
			if cmd.Flags().Changed("duration") {
				in.Duration = &duration
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Log(context.Background(), in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session logged: id=%d date=%s %s/%s\n", out.ID, date, group, name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&group, "group", "", "activity group")
	cmd.Flags().StringVar(&name, "name", "", "activity name")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "keyword (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.Flags().Float64Var(&duration, "duration", 0, "duration in hours")
	return cmd
}

func newSessionsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List logged sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					dur := ""
					if s.Duration != nil {
						dur = fmt.Sprintf("%.2fh", *s.Duration)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
						s.ID, clock.FormatDate(s.Date), s.Group, s.Name, strings.Join(s.Keywords, ","), dur, s.Notes)
				}
				return nil
			})
		},
	}
}

func newGoalsCmd(dataDir *string) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Period goal commands"}

	var period, listAsOf string
	list := &cobra.Command{
		Use:   "list",
		Short: "List goals with their evaluation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf, err := parseAsOf(listAsOf)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.List(context.Background(), period, asOf)
				if err != nil {
					return err
				}
				printEvaluations(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	list.Flags().StringVar(&period, "period", "", "past|active|future (default all)")
	list.Flags().StringVar(&listAsOf, "as-of", "", "reference date YYYY-MM-DD (default today)")

	var evalAsOf string
	evaluate := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate every goal in store order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf, err := parseAsOf(evalAsOf)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.Evaluate(context.Background(), asOf)
				if err != nil {
					return err
				}
				printEvaluations(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	evaluate.Flags().StringVar(&evalAsOf, "as-of", "", "reference date YYYY-MM-DD (default today)")

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace stored goals with a goal CSV (sqlite store)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.Import(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d goals\n", out.Count)
				return nil
			})
		},
	}

	goals.AddCommand(list, evaluate, importCmd)
	return goals
}

func printEvaluations(w io.Writer, evals []goaldto.EvaluationOutput) {
	if len(evals) == 0 {
		_, _ = fmt.Fprintln(w, "no goals")
		return
	}
	for _, e := range evals {
		g := e.Goal
		if e.Err != nil {
			_, _ = fmt.Fprintf(w, "%d\t%s\terror: %v\n", g.ID, g.Label, e.Err)
			continue
		}
		state := "open"
		if e.Satisfied {
			state = "satisfied"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s..%s\t%s%d\t%d/%d\t%.0f%%\t%s\n",
			g.ID, g.Label, clock.FormatDate(g.Start), clock.FormatDate(g.End), g.Identifier, g.Level,
			e.MatchedCount, g.Quantity, e.Fraction*100, state)
	}
}

func newSeriesCmd(dataDir *string) *cobra.Command {
	series := &cobra.Command{Use: "series", Short: "Cumulative daily series"}

	var selectors []string
	var from, to string
	var asJSON bool
	addFlags := func(c *cobra.Command) {
		c.Flags().StringSliceVar(&selectors, "select", bootstrap.DefaultSelection, "categories, e.g. Total0,Exercise1,Climbing2")
		c.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD (default report start)")
		c.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD (default today)")
		c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	}

	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "Cumulative session counts with target pace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Sessions(context.Background(), selectors, from, to)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), struct {
						Days []string `json:"days"`
						progressdto.SessionSeriesOutput
					}{formatDays(out.Days), out})
				}
				w := cmd.OutOrStdout()
				for _, tr := range out.Traces {
					last := 0
					if n := len(tr.Counts); n > 0 {
						last = tr.Counts[n-1]
					}
					line := fmt.Sprintf("%s\t%d", tr.Selector, last)
					if n := len(tr.Target); n > 0 {
						line += fmt.Sprintf("\ttarget %.1f", tr.Target[n-1])
					}
					_, _ = fmt.Fprintln(w, line)
				}
				return nil
			})
		},
	}
	addFlags(sessions)

	goals := &cobra.Command{
		Use:   "goals",
		Short: "Cumulative goal counts by end date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Goals(context.Background(), selectors, from, to)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), struct {
						Days []string `json:"days"`
						progressdto.GoalSeriesOutput
					}{formatDays(out.Days), out})
				}
				w := cmd.OutOrStdout()
				for _, tr := range out.Traces {
					n := len(tr.Total)
					if n == 0 {
						_, _ = fmt.Fprintf(w, "%s\tno days\n", tr.Selector)
						continue
					}
					_, _ = fmt.Fprintf(w, "%s\ttotal %d\tsatisfied %d\tnot satisfied %d\t%.0f%%\n",
						tr.Selector, tr.Total[n-1], tr.Satisfied[n-1], tr.NotSatisfied[n-1], tr.Fraction[n-1]*100)
				}
				if len(out.Skipped) > 0 {
					_, _ = fmt.Fprintf(w, "skipped goals: %v\n", out.Skipped)
				}
				return nil
			})
		},
	}
	addFlags(goals)

	series.AddCommand(sessions, goals)
	return series
}

func newCatalogCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show activity groups, activities and selectors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				for _, g := range app.Catalog.Groups {
					_, _ = fmt.Fprintf(w, "%s (%s)\n", g.ID, g.Label)
					for _, a := range g.Activities {
						line := "  " + a.Name
						if len(a.Highlights) > 0 {
							line += "\t" + strings.Join(a.Highlights, ", ")
						}
						_, _ = fmt.Fprintln(w, line)
					}
				}
				_, _ = fmt.Fprintln(w, "selectors:")
				for _, opt := range app.Options() {
					_, _ = fmt.Fprintf(w, "  %s\t%s\n", opt.Selector, opt.Label)
				}
				return nil
			})
		},
	}
}

func formatDays(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = clock.FormatDate(d)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
