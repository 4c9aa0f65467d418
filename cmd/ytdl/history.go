package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
	"github.com/yourusername/ytdl-go/pkg/logger"
)

func (c *cli) historyCommand() *cobra.Command {
	var (
		limit     int
		status    string
		showStats bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !domain.ValidateRunStatus(domain.RunStatus(status)) {
				return fmt.Errorf("invalid status filter: %q", status)
			}

			config, log, err := c.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			repo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
			if err != nil {
				return err
			}
			defer repo.Close()

			runs, err := repo.FindRecent(domain.RunFilter{Status: domain.RunStatus(status), Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tURL\tFILE\tDIRECTORY\tCREATED\tDURATION")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(r.ID),
					r.Status,
					infrastructure.TruncateString(r.URL, 40),
					r.FileName,
					r.Directory,
					r.CreatedAt.Format(time.DateTime),
					runDuration(r))
			}
			w.Flush()

			if showStats {
				stats, err := repo.GetStats()
				if err != nil {
					return fmt.Errorf("failed to read stats: %w", err)
				}
				fmt.Fprintln(c.stdout)
				fmt.Fprintln(c.stdout, "Download Statistics:")
				fmt.Fprintf(c.stdout, "  Total:     %d\n", stats.Total)
				fmt.Fprintf(c.stdout, "  Running:   %d\n", stats.Running)
				fmt.Fprintf(c.stdout, "  Completed: %d\n", stats.Completed)
				fmt.Fprintf(c.stdout, "  Failed:    %d\n", stats.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (running, completed, failed)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Show totals by status")
	return cmd
}

func (c *cli) logsCommand() *cobra.Command {
	var (
		date  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "logs [run-id]",
		Short: "View yt-dlp output recorded in the process log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, log, err := c.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			day := time.Now()
			if date != "" {
				day, err = time.ParseInLocation("20060102", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYYMMDD: %w", date, err)
				}
			}

			reader := logger.NewLogReader(config.Download.LogsDir)

			if len(args) == 0 {
				lines, err := reader.ReadLines(day, limit)
				if err != nil {
					return fmt.Errorf("failed to read log: %w", err)
				}
				for _, line := range lines {
					fmt.Fprintln(c.stdout, line)
				}
				return nil
			}

			runID := args[0]
			// Without --date, use the day the run was recorded
			if date == "" {
				if found := c.lookupRun(config, runID); found != nil {
					runID = found.ID
					day = found.CreatedAt
				}
			}

			section, err := reader.FindSection(day, runID)
			if err != nil {
				return fmt.Errorf("failed to read log: %w", err)
			}
			if section == nil {
				return fmt.Errorf("no log section for run %s on %s", runID, day.Format("20060102"))
			}

			fmt.Fprintf(c.stdout, "=== [%s] Download: %s ===\n", section.StartedAt, section.RunID)
			for _, line := range section.Lines {
				fmt.Fprintln(c.stdout, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to read, as YYYYMMDD (default today)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "Number of trailing lines to show (0 for all)")
	return cmd
}

// lookupRun resolves a full or 8-character run ID from history, or returns nil
func (c *cli) lookupRun(config *domain.Config, id string) *domain.Run {
	repo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
	if err != nil {
		return nil
	}
	defer repo.Close()

	if run, err := repo.FindByID(id); err == nil && run != nil {
		return run
	}

	runs, err := repo.FindRecent(domain.RunFilter{})
	if err != nil {
		return nil
	}
	for _, run := range runs {
		if len(id) >= 8 && len(run.ID) >= len(id) && run.ID[:len(id)] == id {
			return run
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// runDuration is the wall time of a finished run, "-" while it is running
func runDuration(r *domain.Run) string {
	if !r.IsTerminal() || r.CompletedAt == nil {
		return "-"
	}
	return r.CompletedAt.Sub(r.CreatedAt).Round(time.Second).String()
}
