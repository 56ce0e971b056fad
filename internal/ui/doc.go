// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("flowsync pull 42")        // Commands and code
//	ui.Path.Sprint("my-flow/workflow.json")   // File paths
//	ui.ID.Sprint("Wq3bX9aT2")                 // Workflow identifiers
//	ui.Highlight.Sprint("My Workflow")        // Workflow names
//	ui.Muted.Sprint("optional")               // De-emphasized text
//
// # Status Lines
//
// Command output is built from lines that start with a colored marker:
//
//	ui.Done("Pulled " + name)                  // ✓ result
//	ui.Failed("workflow not found")            // ✗ failure
//	ui.Warn("Pull aborted")                    // ⚠ nothing changed
//	ui.Next("Run " + ui.Code.Sprint("flowsync list"))  // → detail or hint
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - ID: #hash prefix
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
