// Package errors provides typed error values for the flowsync application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Local errors: filesystem and git history failures (ErrIO, ErrVersionControl)
//   - Configuration errors: missing or malformed settings (ErrConfig, ErrConfigMissing)
//   - Remote errors: n8n API failures (ErrRemote, ErrUnauthorized, ErrNotFound, ErrTransport)
//   - Input errors: the command cannot tell what to operate on (ErrAmbiguousInput and friends)
//
// # Usage
//
// Specific errors wrap their category, so both checks work:
//
//	if errors.Is(err, kerrors.ErrNoJSONFiles) { ... }
//	if errors.Is(err, kerrors.ErrAmbiguousInput) { ... }
//
// Wrap errors with the step that was being attempted:
//
//	return fmt.Errorf("failed to read %s: %w: %w", path, kerrors.ErrIO, err)
package errors
