// Package utils provides shared utility functions for flowsync.
//
// # Filesystem Utilities
//
//   - FileExists: reports whether a regular file exists at a path
//   - IsDir: reports whether a path is an existing directory
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//
// # Terminal Utilities
//
//   - IsTerminal: checks whether stdin is attached to a terminal
//   - ReadLine: reads one trimmed line of operator input
package utils
