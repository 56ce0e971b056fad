package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/ui"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

var newSkipNodeVersions bool

func init() {
	newCmd.Flags().BoolVar(&newSkipNodeVersions, "skip-node-versions", false, "do not write node-versions.json")
}

// resetNewCommandState resets the new command's global state for testing.
func resetNewCommandState() {
	newSkipNodeVersions = false
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a workflow on n8n and a local directory for it",
	Long: `Creates an empty workflow on the n8n server, then creates a directory
named after it holding workflow.json, node-versions.json and a fresh git
repository with one commit.

Examples:
  flowsync new "Daily Report"      # creates ./daily-report/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting new command")
		name := strings.Join(args, " ")

		spinner, cleanup := startSpinner("Creating workflow...")
		defer cleanup()

		cfg, err := loadConfig()
		if err != nil {
			return failure(spinner, "Failed to load configuration", err)
		}
		deps, err := newDeps(cfg, nil)
		if err != nil {
			return failure(spinner, "Failed to connect", err)
		}

		result, err := workflows.New(cmd.Context(), deps, workflows.NewOptions{
			Name:             name,
			SkipNodeVersions: newSkipNodeVersions,
		})
		if err != nil {
			return failure(spinner, "Failed to create workflow", err)
		}

		finalMessage := ui.Done("Created workflow " + ui.Highlight.Sprint(result.Workflow.Name) + " " + ui.ID.Sprint(result.Workflow.ID)) + "\n" +
			ui.Next("Saved to " + ui.Path.Sprint(result.FilePath) + " " + ui.Muted.Sprint(shortHash(result.Commit)))
		if result.NodeVersions > 0 {
			finalMessage += "\n" + ui.Next("Recorded versions for " + ui.Highlight.Sprintf("%d", result.NodeVersions) + " node types")
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
