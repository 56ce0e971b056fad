package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/flowsync/internal/configs"
	logger "github.com/PolarWolf314/flowsync/internal/logging"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/nodes"
	"github.com/PolarWolf314/flowsync/internal/repo"
	"github.com/PolarWolf314/flowsync/internal/utils"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// Replaced in tests.
	stdin         io.Reader = os.Stdin
	isInteractive           = utils.IsTerminal
	newFetcher              = defaultFetcher
)

// Register adds the persistent flags and every flowsync command to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/flowsync/config.toml)")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
	}

	root.AddCommand(listCmd)
	root.AddCommand(newCmd)
	root.AddCommand(pullCmd)
	root.AddCommand(pushCmd)
	root.AddCommand(logCmd)
	root.AddCommand(ConfigCmd)
}

// loadConfig reads config.toml and the environment once per invocation.
func loadConfig() (*configs.Config, error) {
	Logger.Debugf("Loading config from %q", configPath)
	return configs.Load(configPath)
}

// newDeps builds the workflow collaborators from cfg. confirm answers
// overwrite prompts; nil declines them.
func newDeps(cfg *configs.Config, confirm repo.Confirmer) (workflows.Deps, error) {
	n8nCfg, err := cfg.N8n()
	if err != nil {
		return workflows.Deps{}, err
	}
	Logger.Debugf("Using n8n at %s", n8nCfg.Host)

	if confirm == nil {
		confirm = repo.Always(false)
	}

	deps := workflows.Deps{
		Remote: n8n.NewClient(n8nCfg, n8n.WithLogger(Logger)),
		Repo:   repo.NewManager(repo.WithConfirmer(confirm), repo.WithLogger(Logger)),
		Host:   n8nCfg.Host.String(),
		Log:    Logger,
	}
	if cfg.NodeVersions.Enabled {
		deps.Nodes = newFetcher(cfg)
	}
	return deps, nil
}

func defaultFetcher(cfg *configs.Config) workflows.VersionFetcher {
	return nodes.NewFetcher(
		nodes.WithToken(cfg.GitHubToken),
		nodes.WithRepository("", cfg.NodeVersions.Repo, cfg.NodeVersions.Ref),
		nodes.WithConcurrency(cfg.NodeVersions.Concurrency),
		nodes.WithLogger(Logger),
	)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	stdin = os.Stdin
	isInteractive = utils.IsTerminal
	newFetcher = defaultFetcher
	resetListCommandState()
	resetPullCommandState()
	resetNewCommandState()
	resetLogCommandState()
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState()
}

// resetCobraFlagState clears Changed on every flag to prevent test pollution.
func resetCobraFlagState() {
	for _, c := range []*cobra.Command{listCmd, newCmd, pullCmd, pushCmd, logCmd, ConfigCmd, configInitCmd, configShowCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
