package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/flowsync/internal/configs"
	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
)

// TestConfigInit contains integration tests for the `flowsync config init` command.
func TestConfigInit(t *testing.T) {
	t.Run("FromFlags", testConfigInitFromFlags)
	t.Run("FromPrompts", testConfigInitFromPrompts)
	t.Run("ExistingWithoutForce", testConfigInitExistingWithoutForce)
	t.Run("ForceKeepsPreviousHost", testConfigInitForceKeepsHost)
	t.Run("CustomConfigPath", testConfigInitCustomPath)
	t.Run("InvalidHost", testConfigInitInvalidHost)
	t.Run("MissingAPIKey", testConfigInitMissingAPIKey)
}

func loadSavedConfig(t *testing.T, path string) *configs.Config {
	t.Helper()
	cfg := &configs.Config{}
	if err := configs.LoadTOML(path, cfg); err != nil {
		t.Fatalf("Failed to load %s: %v", path, err)
	}
	return cfg
}

func testConfigInitFromFlags(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "init", "--host", "https://n8n.example.com/api/v1", "--api-key", "abc123456")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	path := configs.ConfigFilePath()
	cfg := loadSavedConfig(t, path)
	if cfg.Host != "https://n8n.example.com/api/v1" || cfg.APIKey != "abc123456" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.NodeVersions.Enabled || cfg.NodeVersions.Repo != "n8n-io/n8n" {
		t.Errorf("Expected default node version settings, got %+v", cfg.NodeVersions)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("Expected mode 0600, got %o", perm)
	}
	assertContains(t, output, "Saved configuration", "flowsync list")
	if strings.Contains(output, "Welcome") {
		t.Errorf("No prompt expected when both flags are given:\n%s", output)
	}
}

func testConfigInitFromPrompts(t *testing.T) {
	setupTestEnvironment(t)
	stdin = strings.NewReader("http://localhost:5678\nprompted-key\n")

	output, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	cfg := loadSavedConfig(t, configs.ConfigFilePath())
	if cfg.Host != "http://localhost:5678" || cfg.APIKey != "prompted-key" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	assertContains(t, output, "Welcome to flowsync!", "n8n host:", "n8n API key:")
}

func testConfigInitExistingWithoutForce(t *testing.T) {
	setupTestEnvironment(t)

	if output, err := runCLI(t, "config", "init", "--host", "http://one.local", "--api-key", "first"); err != nil {
		t.Fatalf("First init failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI(t, "config", "init", "--host", "http://two.local", "--api-key", "second")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	assertContains(t, output, "already exists", "--force")

	if cfg := loadSavedConfig(t, configs.ConfigFilePath()); cfg.Host != "http://one.local" {
		t.Errorf("Config was overwritten without --force: %+v", cfg)
	}
}

func testConfigInitForceKeepsHost(t *testing.T) {
	setupTestEnvironment(t)

	if output, err := runCLI(t, "config", "init", "--host", "http://one.local", "--api-key", "first"); err != nil {
		t.Fatalf("First init failed: %v\nOutput: %s", err, output)
	}

	stdin = strings.NewReader("")
	output, err := runCLI(t, "config", "init", "--force", "--api-key", "rotated")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	cfg := loadSavedConfig(t, configs.ConfigFilePath())
	if cfg.Host != "http://one.local" || cfg.APIKey != "rotated" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	assertContains(t, output, "n8n host [http://one.local]:")
}

func testConfigInitCustomPath(t *testing.T) {
	workDir := setupTestEnvironment(t)
	path := filepath.Join(workDir, "custom", "flowsync.toml")

	output, err := runCLI(t, "--config", path, "config", "init", "--host", "http://n8n.local", "--api-key", "k")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if cfg := loadSavedConfig(t, path); cfg.Host != "http://n8n.local" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if _, err := os.Stat(configs.ConfigFilePath()); !os.IsNotExist(err) {
		t.Errorf("Default config file should not be written when --config is given")
	}
}

func testConfigInitInvalidHost(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "init", "--host", "localhost", "--api-key", "k")
	if !errors.Is(err, kerrors.ErrConfig) {
		t.Fatalf("Expected ErrConfig, got %v", err)
	}
	if !IsReported(err) {
		t.Errorf("Expected the error to be marked reported")
	}
	assertContains(t, output, "Invalid configuration")
	if _, err := os.Stat(configs.ConfigFilePath()); !os.IsNotExist(err) {
		t.Errorf("No config file should be written for an invalid host")
	}
}

func testConfigInitMissingAPIKey(t *testing.T) {
	setupTestEnvironment(t)
	stdin = strings.NewReader("\n")

	output, err := runCLI(t, "config", "init", "--host", "http://n8n.local")
	if err == nil {
		t.Fatal("Expected an error without an API key")
	}
	assertContains(t, output, "an API key is required")
}

// TestConfigShow contains integration tests for the `flowsync config show` command.
func TestConfigShow(t *testing.T) {
	t.Run("TextRedactsSecrets", testConfigShowText)
	t.Run("JSON", testConfigShowJSON)
	t.Run("EnvironmentOverridesFile", testConfigShowEnvOverrides)
}

func testConfigShowText(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("N8N_HOST", "https://n8n.example.com")
	t.Setenv("N8N_API_KEY", "supersecretkey")

	output, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	assertContains(t, output, "https://n8n.example.com", "****tkey", "n8n-io/n8n@master", "(not set)", "audit.jsonl")
	if strings.Contains(output, "supersecretkey") {
		t.Errorf("API key leaked in output:\n%s", output)
	}
}

func testConfigShowJSON(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("N8N_HOST", "https://n8n.example.com")
	t.Setenv("N8N_API_KEY", "supersecretkey")
	t.Setenv("GITHUB_TOKEN", "ghp_abcdefgh")

	output, err := runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	var cfg configs.Config
	if err := json.Unmarshal([]byte(output), &cfg); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, output)
	}
	if cfg.APIKey != "****tkey" || cfg.GitHubToken != "****efgh" {
		t.Errorf("Secrets not redacted: %+v", cfg)
	}
	if cfg.NodeVersions.Concurrency != 8 {
		t.Errorf("Expected default concurrency, got %d", cfg.NodeVersions.Concurrency)
	}
}

func testConfigShowEnvOverrides(t *testing.T) {
	setupTestEnvironment(t)

	if output, err := runCLI(t, "config", "init", "--host", "http://file.local", "--api-key", "from-file"); err != nil {
		t.Fatalf("Init failed: %v\nOutput: %s", err, output)
	}
	t.Setenv("N8N_HOST", "http://env.local")
	t.Setenv("FLOWSYNC_NODE_VERSIONS", "false")

	output, err := runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	var cfg configs.Config
	if err := json.Unmarshal([]byte(output), &cfg); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, output)
	}
	if cfg.Host != "http://env.local" {
		t.Errorf("Expected environment host, got %q", cfg.Host)
	}
	if cfg.APIKey != "****file" {
		t.Errorf("Expected file API key, got %q", cfg.APIKey)
	}
	if cfg.NodeVersions.Enabled {
		t.Error("Expected node versions disabled by environment")
	}
}
