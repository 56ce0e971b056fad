package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/configs"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/ui"
	"github.com/PolarWolf314/flowsync/internal/utils"
)

var (
	configInitHost   string
	configInitAPIKey string
	configInitForce  bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitHost, "host", "", "n8n base URL, e.g. https://n8n.example.com")
	configInitCmd.Flags().StringVar(&configInitAPIKey, "api-key", "", "n8n API key")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitHost = ""
	configInitAPIKey = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Save n8n connection settings",
	Long: `Writes ~/.config/flowsync/config.toml with your n8n host and API key.

Values not passed as flags are prompted for. The file is readable by you only.

Examples:
  flowsync config init
  flowsync config init --host https://n8n.example.com --api-key $KEY`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		return runConfigInit()
	},
}

// promptForInput prompts the user for input with an optional default value.
func promptForInput(reader *bufio.Reader, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) && defaultValue != "" {
			fmt.Println()
			return defaultValue, nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" && defaultValue != "" {
		return defaultValue, nil
	}
	return input, nil
}

func runConfigInit() error {
	path := configPath
	if path == "" {
		path = configs.ConfigFilePath()
	}

	exists, err := utils.FileExists(path)
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to check %s: %v", path, err)
	}
	if exists && !configInitForce {
		fmt.Println(ui.Warn(ui.Path.Sprint(path) + " already exists"))
		fmt.Println(ui.Next("Use " + ui.Flag.Sprint("--force") + " to overwrite it"))
		return nil
	}

	cfg := configs.Default()
	if exists {
		Logger.Debugf("Loading existing config from %s", path)
		if err := configs.LoadTOML(path, cfg); err != nil {
			Logger.Warnf("Ignoring unreadable config %s: %v", path, err)
			cfg = configs.Default()
		}
	}

	reader := bufio.NewReader(stdin)
	needsPrompt := configInitHost == "" || configInitAPIKey == ""
	if needsPrompt {
		fmt.Println(color.CyanString("Welcome to flowsync!") + " Let's connect to your n8n instance.\n")
	}

	host := configInitHost
	if host == "" {
		host, err = promptForInput(reader, "n8n host", cfg.Host)
		if err != nil {
			return err
		}
	}
	if _, err := n8n.NormalizeHost(host); err != nil {
		fmt.Println(formatError("Invalid host", err))
		return reportedError{err}
	}

	apiKey := configInitAPIKey
	if apiKey == "" {
		apiKey, err = promptForInput(reader, "n8n API key", "")
		if err != nil {
			return err
		}
	}
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		err := errors.New("an API key is required")
		fmt.Println(ui.Failed(err.Error()))
		return reportedError{err}
	}

	cfg.Host = host
	cfg.APIKey = apiKey

	Logger.Debugf("Writing config to %s", path)
	if err := configs.Save(path, cfg); err != nil {
		return Logger.ErrorfAndReturn("Failed to save config: %v", err)
	}

	fmt.Println(ui.Done("Saved configuration to " + ui.Path.Sprint(path)))
	fmt.Println(ui.Next("Run " + ui.Code.Sprint("flowsync list") + " to check the connection"))
	return nil
}
