package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/flowsync/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var UserFlowsyncSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	UserFlowsyncSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "flowsync"),
		UserDataPath:    filepath.Join(dataDir, "flowsync"),
		Username:        username,
	}
}

// ConfigFilePath returns the default location of config.toml.
func ConfigFilePath() string {
	return filepath.Join(UserFlowsyncSettings.UserConfigsPath, "config.toml")
}
