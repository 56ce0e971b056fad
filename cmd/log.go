package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/audit"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logWorkflow  string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated: new,pull,push)")
	logCmd.Flags().StringVar(&logWorkflow, "workflow", "", "filter by workflow id or name")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logWorkflow = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays every new, pull and push flowsync has performed on this machine.

Examples:
  flowsync log                         # View full log
  flowsync log -n 10                   # Last 10 entries
  flowsync log --reverse               # Most recent first
  flowsync log --operation pull,push   # Filter by operation
  flowsync log --workflow 42           # Filter by workflow
  flowsync log --since 2024-01-01      # Filter by date
  flowsync log --json                  # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Workflow:   logWorkflow,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(cmd.Context(), opts)
	if err != nil {
		fmt.Println(formatError("Failed to read audit log", err))
		return reportedError{err}
	}

	Logger.Debugf("Parsed %d entries from %s", result.TotalEntriesBeforeFilter, audit.LogPath())
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if logJSON {
			fmt.Println("[]")
			return nil
		}
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	outputLogDefault(result.Entries)
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-12s  %-5s  %-8s  %-10s  %s\n", datetime, e.User, e.Operation, e.Outcome, e.WorkflowID, details)
	}
}
