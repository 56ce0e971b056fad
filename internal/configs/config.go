package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/nodes"
)

// Environment variables read by Load.
const (
	EnvHost         = "N8N_HOST"
	EnvAPIKey       = "N8N_API_KEY"
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvAssumeYes    = "FLOWSYNC_ASSUME_YES"
	EnvNodeVersions = "FLOWSYNC_NODE_VERSIONS"
)

type Config struct {
	Host         string       `mapstructure:"host" toml:"host" json:"host"`
	APIKey       string       `mapstructure:"api_key" toml:"api_key" json:"api_key"`
	GitHubToken  string       `mapstructure:"github_token" toml:"github_token,omitempty" json:"github_token,omitempty"`
	AssumeYes    bool         `mapstructure:"assume_yes" toml:"assume_yes" json:"assume_yes"`
	NodeVersions NodeVersions `mapstructure:"node_versions" toml:"node_versions" json:"node_versions"`
}

type NodeVersions struct {
	Enabled     bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Repo        string `mapstructure:"repo" toml:"repo" json:"repo"`
	Ref         string `mapstructure:"ref" toml:"ref" json:"ref"`
	Concurrency int    `mapstructure:"concurrency" toml:"concurrency" json:"concurrency"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		NodeVersions: NodeVersions{
			Enabled:     true,
			Repo:        nodes.DefaultOwner + "/" + nodes.DefaultRepo,
			Ref:         nodes.DefaultRef,
			Concurrency: nodes.DefaultConcurrency,
		},
	}
}

// Load reads the configuration from path and the environment. Environment
// variables take precedence over the file. A missing file is not an error;
// an empty path means ConfigFilePath().
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigFilePath()
	}

	v := viper.New()
	def := Default()
	v.SetDefault("host", def.Host)
	v.SetDefault("api_key", def.APIKey)
	v.SetDefault("github_token", def.GitHubToken)
	v.SetDefault("assume_yes", def.AssumeYes)
	v.SetDefault("node_versions.enabled", def.NodeVersions.Enabled)
	v.SetDefault("node_versions.repo", def.NodeVersions.Repo)
	v.SetDefault("node_versions.ref", def.NodeVersions.Ref)
	v.SetDefault("node_versions.concurrency", def.NodeVersions.Concurrency)

	bindings := map[string]string{
		"host":                  EnvHost,
		"api_key":               EnvAPIKey,
		"github_token":          EnvGitHubToken,
		"assume_yes":            EnvAssumeYes,
		"node_versions.enabled": EnvNodeVersions,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: bind %s: %w", kerrors.ErrConfig, env, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %w", kerrors.ErrConfig, path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrConfig, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", kerrors.ErrConfig, path, err)
	}
	return cfg, nil
}

// N8n validates the connection settings and returns the client config.
func (c *Config) N8n() (n8n.Config, error) {
	if c.Host == "" || c.APIKey == "" {
		var missing []string
		if c.Host == "" {
			missing = append(missing, EnvHost)
		}
		if c.APIKey == "" {
			missing = append(missing, EnvAPIKey)
		}
		return n8n.Config{}, fmt.Errorf("%w (export %s or run `flowsync config init`)", kerrors.ErrConfigMissing, strings.Join(missing, " and "))
	}
	return n8n.NewConfig(c.Host, c.APIKey)
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = ConfigFilePath()
	}
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	r := *c
	r.APIKey = redact(r.APIKey)
	r.GitHubToken = redact(r.GitHubToken)
	return r
}

func redact(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 4:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}
