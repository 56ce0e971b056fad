// Package workflows provides high-level orchestration for flowsync commands.
//
// Workflows coordinate the n8n client, the node version fetcher, the
// workspace resolver and the repository manager to implement complete
// user-facing features. Each workflow handles a single command's business
// logic, independent of CLI concerns like flag parsing, spinners, and
// output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds a Deps value from the loaded config
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Talking to n8n and GitHub
//   - Deciding where a workflow lives on disk
//   - Writing and committing through the repository manager
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - List: lists workflows on the server
//   - New: creates a workflow remotely and a fresh local directory for it
//   - Pull: downloads a workflow into its directory and commits it
//   - Push: uploads a local workflow file
//   - Log: reads the audit trail
//
// Every network call a workflow makes completes before anything on disk
// changes, so a failed download never leaves a half-written directory.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Pull(ctx, deps, opts)
//	if errors.Is(err, kerrors.ErrNotFound) {
//	    // Suggest `flowsync list`
//	}
//
// A declined overwrite is not an error: PullResult.Outcome is repo.Aborted.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it aborts in-flight HTTP requests.
package workflows
