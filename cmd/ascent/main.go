package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ascent/internal/bootstrap"
	"ascent/internal/platform/calendar"
	"ascent/internal/platform/config"
	"ascent/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	vaultPath string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "ascent",
		Short:         "Climbing logbook: daily sends, grade rings, sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.vaultPath, "vault", ".", "Obsidian vault path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newRingCmd(flags))
	root.AddCommand(newWeekCmd(flags))
	root.AddCommand(newMonthCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	root.AddCommand(newExportCmd(flags))
	return root
}

// withApp loads config, builds the app with logs on stderr and closes it
// after fn returns.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(*bootstrap.App) error) error {
	cfg, err := config.Load(flags.vaultPath)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cmd.Context(), cfg, newLogger(cmd.ErrOrStderr(), cfg, flags))
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newLogger(w io.Writer, cfg config.Config, flags *rootFlags) *slog.Logger {
	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	return logging.New(w, level)
}

// resolveDate accepts YYYY-MM-DD, "today", "yesterday" or nothing (today).
func resolveDate(raw string) (string, error) {
	today := calendar.Of(time.Now())
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return string(today), nil
	case "yesterday":
		return string(today.AddDays(-1)), nil
	}
	d, err := calendar.Parse(raw)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func warn(cmd *cobra.Command, warning string) {
	if warning != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the ascent terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.vaultPath)
			if err != nil {
				return err
			}
			// The alt screen owns the terminal, so logs go to a file.
			if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}
			logFile, err := os.OpenFile(filepath.Join(cfg.StateDir, "ascent.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer func() { _ = logFile.Close() }()

			app, err := bootstrap.New(cmd.Context(), cfg, newLogger(logFile, cfg, flags))
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newLogCmd(flags *rootFlags) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Record and inspect sends"}

	var date, discipline string
	var delta int
	add := &cobra.Command{
		Use:   "add <grade>",
		Short: "Add sends at a grade (negative --delta removes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDate(date)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.LedgerCLI.Log(cmd.Context(), day, discipline, args[0], delta)
				if err != nil {
					return err
				}
				switch {
				case out.Deleted:
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s cleared\n", day, discipline, args[0])
				case out.Entry.ID == "":
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to remove")
				default:
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s x%d id=%s\n", out.Entry.Date, out.Entry.Discipline, out.Entry.Grade, out.Entry.Count, out.Entry.ID)
				}
				warn(cmd, out.Warning)
				return nil
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "day to log (YYYY-MM-DD, today, yesterday)")
	add.Flags().StringVar(&discipline, "discipline", "boulder", "boulder|rope")
	add.Flags().IntVar(&delta, "delta", 1, "sends to add")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a log row by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.LedgerCLI.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.Removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no row %s\n", args[0])
				}
				warn(cmd, out.Warning)
				return nil
			})
		},
	}

	var resetDate, resetDiscipline string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear a day (both disciplines unless --discipline)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := resolveDate(resetDate)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.LedgerCLI.ResetDay(cmd.Context(), day, resetDiscipline)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d rows from %s\n", out.Removed, day)
				warn(cmd, out.Warning)
				return nil
			})
		},
	}
	reset.Flags().StringVar(&resetDate, "date", "", "day to clear")
	reset.Flags().StringVar(&resetDiscipline, "discipline", "", "boulder|rope (default both)")

	var showDate, showDiscipline string
	show := &cobra.Command{
		Use:   "show",
		Short: "List a day's rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := resolveDate(showDate)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				rows, err := app.LedgerCLI.ListDay(cmd.Context(), day, showDiscipline)
				if err != nil {
					return err
				}
				total, err := app.LedgerCLI.DayTotal(cmd.Context(), day, showDiscipline)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no sends on %s\n", day)
					return nil
				}
				for _, r := range rows {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", r.ID, r.Discipline, r.Grade, r.Count)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %d\n", total.Total)
				return nil
			})
		},
	}
	show.Flags().StringVar(&showDate, "date", "", "day to show")
	show.Flags().StringVar(&showDiscipline, "discipline", "", "boulder|rope (default both)")

	logCmd.AddCommand(add, rm, reset, show)
	return logCmd
}

func newRingCmd(flags *rootFlags) *cobra.Command {
	ring := &cobra.Command{Use: "ring", Short: "Grade rings and goal progress"}

	var date, discipline string
	day := &cobra.Command{
		Use:   "day",
		Short: "Print the arcs of a day's grade ring",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := resolveDate(date)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.RingCLI.DayRing(cmd.Context(), d, discipline)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s total=%d\n", out.Date, out.Total)
				for _, a := range out.Arcs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-6s x%-3d start=%6.1f sweep=%6.1f %s\n", a.Grade, a.Count, a.StartDegrees, a.SweepDegrees, a.ColorHex)
				}
				return nil
			})
		},
	}
	day.Flags().StringVar(&date, "date", "", "day")
	day.Flags().StringVar(&discipline, "discipline", "", "boulder|rope (default both)")

	var goalDate, goalDiscipline string
	var goalValue int
	goal := &cobra.Command{
		Use:   "goal",
		Short: "Print goal ring progress for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := resolveDate(goalDate)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.RingCLI.Goal(cmd.Context(), d, goalDiscipline, goalValue)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.0f/%.0f loops=%d progress=%.2f sweep=%.1f\n", out.Value, out.Goal, out.FullLoops, out.ProgressFraction, out.SweepDegrees)
				return nil
			})
		},
	}
	goal.Flags().StringVar(&goalDate, "date", "", "day")
	goal.Flags().StringVar(&goalDiscipline, "discipline", "", "boulder|rope (default both)")
	goal.Flags().IntVar(&goalValue, "goal", 0, "goal override (0 uses config)")

	var dualDate string
	dual := &cobra.Command{
		Use:   "dual",
		Short: "Print boulder and rope goal rings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := resolveDate(dualDate)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.RingCLI.Dual(cmd.Context(), d)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "boulder %.0f/%.0f loops=%d\n", out.Boulder.Value, out.Boulder.Goal, out.Boulder.FullLoops)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rope    %.0f/%.0f loops=%d\n", out.Rope.Value, out.Rope.Goal, out.Rope.FullLoops)
				return nil
			})
		},
	}
	dual.Flags().StringVar(&dualDate, "date", "", "day")

	var from, to, pyramidDiscipline string
	pyramid := &cobra.Command{
		Use:   "pyramid",
		Short: "Print the grade pyramid over a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			end, err := resolveDate(to)
			if err != nil {
				return err
			}
			start := end
			if from != "" {
				if start, err = resolveDate(from); err != nil {
					return err
				}
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				levels, err := app.RingCLI.Pyramid(cmd.Context(), start, end, pyramidDiscipline)
				if err != nil {
					return err
				}
				if len(levels) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sends")
					return nil
				}
				for _, l := range levels {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s %d\n", l.Grade, strings.Repeat("#", l.Count), l.Count)
				}
				return nil
			})
		},
	}
	pyramid.Flags().StringVar(&from, "from", "", "first day (default --to)")
	pyramid.Flags().StringVar(&to, "to", "", "last day (default today)")
	pyramid.Flags().StringVar(&pyramidDiscipline, "discipline", "", "boulder|rope (default both)")

	ring.AddCommand(day, goal, dual, pyramid)
	return ring
}

func newWeekCmd(flags *rootFlags) *cobra.Command {
	var date, discipline string
	week := &cobra.Command{
		Use:   "week",
		Short: "Counts per day for the week containing --date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := resolveDate(date)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				start := calendar.WeekStart(calendar.Date(d), app.Config.WeekStartsOn)
				out, err := app.RollupCLI.Week(cmd.Context(), string(start), discipline)
				if err != nil {
					return err
				}
				for _, day := range out.Days {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", calendar.Date(day.Date).Time().Format("Mon"), day.Date, day.Count)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %d\n", out.Total)
				return nil
			})
		},
	}
	week.Flags().StringVar(&date, "date", "", "any day of the week")
	week.Flags().StringVar(&discipline, "discipline", "", "boulder|rope (default both)")
	return week
}

func newMonthCmd(flags *rootFlags) *cobra.Command {
	var date, discipline string
	month := &cobra.Command{
		Use:   "month",
		Short: "Plan completion and sends for every day of a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := resolveDate(date)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				cells, err := app.RollupCLI.MonthCells(cmd.Context(), d, discipline)
				if err != nil {
					return err
				}
				for _, c := range cells {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s plan=%3.0f%% sends=%d/%.0f\n", c.Date, c.PlanPercent, c.LogCount, c.Log.Goal)
				}
				return nil
			})
		},
	}
	month.Flags().StringVar(&date, "date", "", "any day of the month")
	month.Flags().StringVar(&discipline, "discipline", "", "boulder|rope (default both)")
	return month
}

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Gym session lifecycle"}

	session.AddCommand(&cobra.Command{
		Use:   "start [gym]",
		Short: "Start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if out.Finished != nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "previous session finished: %s\n", out.Finished.DurationLabel)
				}
				if out.DiscardedElapsed != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "previous session discarded after %s\n", out.DiscardedElapsed)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started at=%s gym=%q\n", out.StartedAt.Format(time.RFC3339), out.GymName)
				warn(cmd, out.Warning)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.End(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s duration=%s note=%s\n", out.Entry.ID, out.Entry.DurationLabel, out.NotePath)
				warn(cmd, out.Warning)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Show the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.GetActive(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gym=%q since=%s elapsed=%s\n", out.GymName, out.StartedAt.Format(time.RFC3339), out.Elapsed)
				return nil
			})
		},
	})

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List finished sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				entries, err := app.SessionCLI.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", e.ID, e.Date, e.DurationLabel, e.GymName)
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "entries to show (0 for all)")
	session.AddCommand(list)
	return session
}

func newReindexCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite logs table from the logbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.LedgerCLI.Reindex(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d rows\n", out.Rows)
				return nil
			})
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Write summaries into the vault"}

	var date string
	week := &cobra.Command{
		Use:   "week",
		Short: "Write the week table into Climbing.md",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := resolveDate(date)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				start := calendar.WeekStart(calendar.Date(d), app.Config.WeekStartsOn)
				out, err := app.RollupCLI.ExportWeek(cmd.Context(), string(start))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "week of %s written to %s\n", out.WeekStart, out.Path)
				return nil
			})
		},
	}
	week.Flags().StringVar(&date, "date", "", "any day of the week")
	export.AddCommand(week)
	return export
}
