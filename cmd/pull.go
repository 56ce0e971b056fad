package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/repo"
	"github.com/PolarWolf314/flowsync/internal/ui"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

var (
	pullYes              bool
	pullSkipNodeVersions bool
)

func init() {
	pullCmd.Flags().BoolVarP(&pullYes, "yes", "y", false, "overwrite an existing workflow file without asking")
	pullCmd.Flags().BoolVar(&pullSkipNodeVersions, "skip-node-versions", false, "do not write node-versions.json")
}

// resetPullCommandState resets the pull command's global state for testing.
func resetPullCommandState() {
	pullYes = false
	pullSkipNodeVersions = false
}

var pullCmd = &cobra.Command{
	Use:   "pull <id> [path]",
	Short: "Download a workflow and commit it to its local history",
	Long: `Downloads a workflow from n8n into its directory and records a commit.

Without a path the directory is named after the workflow. A path that is an
existing directory, or has no extension, is used as the directory; any other
path is the file to write. If the file already exists you are asked before
it is overwritten.

Examples:
  flowsync pull 42                    # ./<workflow-name>/workflow.json
  flowsync pull 42 flows/report       # ./flows/report/workflow.json
  flowsync pull 42 report.json --yes  # ./report.json, no prompt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pull command")

		opts := workflows.PullOptions{ID: args[0], SkipNodeVersions: pullSkipNodeVersions}
		if len(args) > 1 {
			opts.Path = args[1]
		}
		Logger.Debugf("Pull options: %+v", opts)

		spinner, cleanup := startSpinner("Pulling workflow...")
		defer cleanup()

		cfg, err := loadConfig()
		if err != nil {
			return failure(spinner, "Failed to load configuration", err)
		}

		confirm := &promptConfirmer{assumeYes: pullYes || cfg.AssumeYes, spinner: spinner}
		deps, err := newDeps(cfg, confirm)
		if err != nil {
			return failure(spinner, "Failed to connect", err)
		}

		result, err := workflows.Pull(cmd.Context(), deps, opts)
		if err != nil {
			return failure(spinner, "Failed to pull workflow "+opts.ID, err)
		}

		if result.Outcome == repo.Aborted {
			spinner.FinalMSG = ui.Warn("Pull aborted, " + ui.Path.Sprint(result.FilePath) + " was not changed")
			return nil
		}

		finalMessage := ui.Done("Pulled " + ui.Highlight.Sprint(result.WorkflowName) + " " + ui.ID.Sprint(result.WorkflowID) +
			" to " + ui.Path.Sprint(result.FilePath) + " " + ui.Muted.Sprint(shortHash(result.Commit)))
		if result.Initialized {
			finalMessage += "\n" + ui.Next("Initialized a new git repository")
		}
		if result.NodeVersions > 0 {
			finalMessage += "\n" + ui.Next("Recorded versions for " + ui.Highlight.Sprintf("%d", result.NodeVersions) + " node types")
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
