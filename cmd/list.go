package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/ui"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

var (
	listOutput     string
	listActiveOnly bool
)

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format: table, json or yaml")
	listCmd.Flags().BoolVar(&listActiveOnly, "active", false, "only show active workflows")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listOutput = "table"
	listActiveOnly = false
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows on the n8n server",
	Long: `Lists every workflow on the configured n8n instance, sorted by name.

Examples:
  flowsync list
  flowsync list --active
  flowsync list -o json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")

	switch listOutput {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", listOutput)
	}

	result, err := fetchWorkflowList(cmd)
	if err != nil {
		return err
	}

	switch listOutput {
	case "json":
		return outputListJSON(result.Workflows)
	case "yaml":
		return outputListYAML(result.Workflows)
	default:
		outputListTable(result.Workflows)
		return nil
	}
}

func fetchWorkflowList(cmd *cobra.Command) (*workflows.ListResult, error) {
	spinner, cleanup := startSpinner("Fetching workflows...")
	defer cleanup()

	cfg, err := loadConfig()
	if err != nil {
		return nil, failure(spinner, "Failed to load configuration", err)
	}
	deps, err := newDeps(cfg, nil)
	if err != nil {
		return nil, failure(spinner, "Failed to connect", err)
	}

	result, err := workflows.List(cmd.Context(), deps, workflows.ListOptions{ActiveOnly: listActiveOnly})
	if err != nil {
		return nil, failure(spinner, "Failed to list workflows", err)
	}
	Logger.Infof("Found %d workflows", len(result.Workflows))
	return result, nil
}

func outputListJSON(wfs []n8n.Workflow) error {
	if wfs == nil {
		wfs = []n8n.Workflow{}
	}
	data, err := json.MarshalIndent(wfs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workflows to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputListYAML(wfs []n8n.Workflow) error {
	if wfs == nil {
		wfs = []n8n.Workflow{}
	}
	data, err := yaml.Marshal(wfs)
	if err != nil {
		return fmt.Errorf("failed to marshal workflows to YAML: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func outputListTable(wfs []n8n.Workflow) {
	if len(wfs) == 0 {
		fmt.Println("No workflows found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tACTIVE")
	for _, wf := range wfs {
		active := "no"
		if wf.Active {
			active = ui.Success.Sprint("yes")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", wf.ID, wf.Name, active)
	}
	_ = w.Flush()
}
