package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List migration runs",
	Long:  `Lists recorded migration runs, most recent first.`,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the objects of a migration run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func requireHistory() (driving.HistoryService, error) {
	if services == nil || services.History == nil {
		return nil, errors.New("history service not configured")
	}
	return services.History, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	history, err := requireHistory()
	if err != nil {
		return err
	}

	runs, err := history.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No migration runs recorded.")
		return nil
	}

	cmd.Printf("Migration runs (%d):\n\n", len(runs))
	for i := range runs {
		printRun(cmd, &runs[i])
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	history, err := requireHistory()
	if err != nil {
		return err
	}

	run, outcomes, err := history.RunDetails(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run not found: %s", args[0])
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	printRun(cmd, run)
	if len(outcomes) == 0 {
		cmd.Println("  No objects recorded.")
		return nil
	}
	for _, o := range outcomes {
		line := fmt.Sprintf("  %-10s %s", o.Status, o.PID)
		if o.Versions > 0 {
			line += fmt.Sprintf(" (%d versions)", o.Versions)
		}
		if o.Error != "" {
			line += ": " + o.Error
		}
		cmd.Println(line)
	}
	return nil
}

func printRun(cmd *cobra.Command, run *domain.MigrationRun) {
	cmd.Printf("%s  %s\n", run.ID, run.Status)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	if !run.FinishedAt.IsZero() {
		cmd.Printf("  Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
	}
	if run.Limit >= 0 {
		cmd.Printf("  Limit:    %d\n", run.Limit)
	}
	cmd.Printf("  Objects:  %d\n", run.ObjectsProcessed)
	if run.Error != "" {
		cmd.Printf("  Error:    %s\n", run.Error)
	}
	cmd.Println()
}
