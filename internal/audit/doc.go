// Package audit records every new, pull and push flowsync performs.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	~/.local/share/flowsync/audit.jsonl
//
// Each entry contains:
//   - A random ID and a timestamp (RFC3339 with microseconds, UTC)
//   - The local username
//   - Operation name (new, pull, push)
//   - Workflow ID and name, local path, commit hash, n8n host
//   - Outcome (done, aborted, failed)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for `flowsync log`.
// Malformed entries are silently skipped to handle partial writes.
package audit
