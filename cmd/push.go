package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/ui"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

var pushCmd = &cobra.Command{
	Use:   "push [id] [path]",
	Short: "Upload a local workflow file to n8n",
	Long: `Uploads a workflow file to n8n, keeping only the fields the update API
accepts. The local file is not modified.

Without an id the file's own "id" is used. Without a path, workflow.json in
the current directory is used, or the only other .json file there.

Examples:
  flowsync push                        # ./workflow.json, id from the file
  flowsync push 42                     # ./workflow.json as workflow 42
  flowsync push daily-report/          # daily-report/workflow.json
  flowsync push 42 exported.json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting push command")

		opts := workflows.SplitPushArgs(args)
		Logger.Debugf("Push options: %+v", opts)

		spinner, cleanup := startSpinner("Pushing workflow...")
		defer cleanup()

		cfg, err := loadConfig()
		if err != nil {
			return failure(spinner, "Failed to load configuration", err)
		}
		deps, err := newDeps(cfg, nil)
		if err != nil {
			return failure(spinner, "Failed to connect", err)
		}

		result, err := workflows.Push(cmd.Context(), deps, opts)
		if err != nil {
			return failure(spinner, "Failed to push workflow", err)
		}

		finalMessage := ui.Done("Pushed " + ui.Path.Sprint(result.FilePath) +
			" to " + ui.Highlight.Sprint(result.Workflow.Name) + " " + ui.ID.Sprint(result.Workflow.ID))
		if len(result.Dropped) > 0 {
			finalMessage += "\n" + ui.Next("Not sent (read-only): " + ui.Muted.Sprint(strings.Join(result.Dropped, ", ")))
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
