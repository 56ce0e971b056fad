package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	"github.com/PolarWolf314/flowsync/internal/ui"
	"github.com/PolarWolf314/flowsync/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// promptConfirmer asks on stdin before a workflow file is overwritten.
type promptConfirmer struct {
	assumeYes bool
	spinner   *spinner.Spinner
}

func (p *promptConfirmer) Confirm(prompt string) (bool, error) {
	if p.assumeYes {
		Logger.Infof("%s yes (--yes)", prompt)
		return true, nil
	}

	if !isInteractive() {
		Logger.WarnfUser("%s declined: stdin is not a terminal (pass %s to overwrite)", prompt, ui.Flag.Sprint("--yes"))
		return false, nil
	}

	// The spinner would draw over the prompt.
	if p.spinner != nil && p.spinner.Active() {
		p.spinner.Stop()
		defer p.spinner.Start()
	}

	fmt.Printf("%s %s ", prompt, ui.Muted.Sprint("[y/N]"))
	answer, err := utils.ReadLine(stdin)
	if errors.Is(err, io.EOF) {
		fmt.Println()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// IsReported returns true when err was already printed by a command.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// failure sets the spinner's final message for err and returns err marked
// as reported, so the command exits non-zero without printing twice.
func failure(s *spinner.Spinner, step string, err error) error {
	s.FinalMSG = formatError(step, err)
	Logger.Debugf("%s: %v", step, err)
	return reportedError{err}
}

// formatError formats an error with a hint for display to the user.
func formatError(step string, err error) string {
	switch {
	case errors.Is(err, kerrors.ErrConfigMissing):
		return ui.Failed("n8n connection is not configured") + "\n" +
			ui.Next("Run "+ui.Code.Sprint("flowsync config init")+" or export "+
				ui.Code.Sprint("N8N_HOST")+" and "+ui.Code.Sprint("N8N_API_KEY"))

	case errors.Is(err, kerrors.ErrConfig):
		return ui.Failed("Invalid configuration: "+err.Error()) + "\n" +
			ui.Next("Run "+ui.Code.Sprint("flowsync config show")+" to check your settings")

	case errors.Is(err, kerrors.ErrUnauthorized):
		return ui.Failed(step+": n8n rejected the API key") + "\n" +
			ui.Next("Check "+ui.Code.Sprint("N8N_API_KEY")+" or re-run "+ui.Code.Sprint("flowsync config init"))

	case errors.Is(err, kerrors.ErrNotFound):
		return ui.Failed(step+": workflow not found") + "\n" +
			ui.Next("Run "+ui.Code.Sprint("flowsync list")+" to see available workflows")

	case errors.Is(err, kerrors.ErrRemote):
		return ui.Failed(step+": "+err.Error()) + "\n" +
			ui.Next("Check that n8n is reachable and the host is correct")

	case errors.Is(err, kerrors.ErrNodeVersions):
		return ui.Failed(step+": "+err.Error()) + "\n" +
			ui.Next("Set "+ui.Code.Sprint("GITHUB_TOKEN")+" to raise the GitHub rate limit, or pass "+
				ui.Flag.Sprint("--skip-node-versions"))

	case errors.Is(err, kerrors.ErrMultipleJSONFiles):
		return ui.Failed(err.Error()) + "\n" +
			ui.Next("Pass the file to push as the last argument")

	case errors.Is(err, kerrors.ErrMissingWorkflowID):
		return ui.Failed(err.Error()) + "\n" +
			ui.Next("Pass the workflow ID: "+ui.Code.Sprint("flowsync push <id> [path]"))

	case errors.Is(err, kerrors.ErrAmbiguousInput),
		errors.Is(err, kerrors.ErrEmptyName),
		errors.Is(err, kerrors.ErrInvalidDocument),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Failed(err.Error())

	default:
		return ui.Failed(step + ": " + err.Error())
	}
}
