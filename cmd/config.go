package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage flowsync configuration",
	Long: `Provides commands for managing the n8n connection settings.

Settings live in ~/.config/flowsync/config.toml. Environment variables
(N8N_HOST, N8N_API_KEY, GITHUB_TOKEN, FLOWSYNC_ASSUME_YES,
FLOWSYNC_NODE_VERSIONS) override the file.

Examples:
  # Save your n8n host and API key
  flowsync config init

  # Show the effective configuration
  flowsync config show`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
