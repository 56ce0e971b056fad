package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/audit"
	"github.com/PolarWolf314/flowsync/internal/configs"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration flowsync would use, after applying
environment variables on top of the config file. Secrets are redacted.

Examples:
  flowsync config show
  flowsync config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		Logger.Debugf("Flags: json=%t", configShowJSON)

		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(formatError("Failed to load configuration", err))
			return reportedError{err}
		}

		redacted := cfg.Redacted()
		if configShowJSON {
			return outputConfigJSON(&redacted)
		}
		outputConfigText(&redacted)
		return nil
	},
}

// outputConfigJSON outputs the config in JSON format.
func outputConfigJSON(cfg *configs.Config) error {
	output, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

// outputConfigText outputs the config in human-readable format.
func outputConfigText(cfg *configs.Config) {
	path := configPath
	if path == "" {
		path = configs.ConfigFilePath()
	}

	fmt.Println(color.CyanString("Configuration") + " (" + path + "):")
	fmt.Println()
	fmt.Printf("  %-16s %s\n", "Host:", valueOrUnset(cfg.Host))
	fmt.Printf("  %-16s %s\n", "API key:", valueOrUnset(cfg.APIKey))
	fmt.Printf("  %-16s %s\n", "GitHub token:", valueOrUnset(cfg.GitHubToken))
	fmt.Printf("  %-16s %t\n", "Assume yes:", cfg.AssumeYes)
	fmt.Println()
	fmt.Println(color.CyanString("Node versions:"))
	fmt.Printf("  %-16s %t\n", "Enabled:", cfg.NodeVersions.Enabled)
	fmt.Printf("  %-16s %s@%s\n", "Source:", cfg.NodeVersions.Repo, cfg.NodeVersions.Ref)
	fmt.Printf("  %-16s %d\n", "Concurrency:", cfg.NodeVersions.Concurrency)
	fmt.Println()
	fmt.Printf("  %-16s %s\n", "Audit log:", audit.LogPath())
}

func valueOrUnset(v string) string {
	if v == "" {
		return color.YellowString("(not set)")
	}
	return color.GreenString(v)
}
