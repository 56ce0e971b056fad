// Package configs loads flowsync's configuration.
//
// Settings are layered, lowest precedence first:
//
//   - Built-in defaults (node version fetching on, n8n-io/n8n@master)
//   - ~/.config/flowsync/config.toml (written by `flowsync config init`)
//   - Environment variables: N8N_HOST, N8N_API_KEY, GITHUB_TOKEN,
//     FLOWSYNC_ASSUME_YES, FLOWSYNC_NODE_VERSIONS
//
// The config is loaded once by the command layer and passed to every
// collaborator; nothing else reads the environment.
//
// # Settings
//
// UserFlowsyncSettings holds per-user paths resolved at startup, honouring
// XDG_CONFIG_HOME and XDG_DATA_HOME. Tests may point these at a temp dir.
package configs
