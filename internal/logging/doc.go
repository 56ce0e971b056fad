// Package logger provides leveled console logging for flowsync commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed with a colored level tag.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only user-facing warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Shown with --verbose or --debug
//	Logger.WarnfUser()      // Always shown
//	Logger.Errorf()         // Always shown
//	Logger.ErrorfAndReturn() // Logs with --debug and returns the formatted error
//
// # Usage
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Pulling workflow %s", id)
//
// The zero value is a quiet logger, so internal packages can hold one
// without checking for nil.
package logger
