package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
)

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		name        string
		assumeYes   bool
		interactive bool
		input       string
		want        bool
	}{
		{"AssumeYes", true, false, "", true},
		{"NotInteractive", false, false, "y\n", false},
		{"Yes", false, true, "y\n", true},
		{"YesWord", false, true, "YES\n", true},
		{"No", false, true, "n\n", false},
		{"Default", false, true, "\n", false},
		{"EOF", false, true, "", false},
		{"NoTrailingNewline", false, true, "yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)
			isInteractive = func() bool { return tt.interactive }
			stdin = strings.NewReader(tt.input)

			c := &promptConfirmer{assumeYes: tt.assumeYes}
			var got bool
			_, err := captureOutput(func() error {
				var err error
				got, err = c.Confirm("Overwrite workflow.json?")
				return err
			})
			if err != nil {
				t.Fatalf("Confirm returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestIsReported(t *testing.T) {
	base := errors.New("boom")
	if IsReported(base) {
		t.Error("plain error must not be reported")
	}
	if !IsReported(reportedError{base}) {
		t.Error("reportedError must be reported")
	}
	if !IsReported(fmt.Errorf("wrapped: %w", reportedError{base})) {
		t.Error("wrapped reportedError must be reported")
	}
	if !errors.Is(reportedError{base}, base) {
		t.Error("reportedError must unwrap to its cause")
	}
}

func TestFormatError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"ConfigMissing", kerrors.ErrConfigMissing, []string{"not configured", "flowsync config init", "N8N_API_KEY"}},
		{"Config", fmt.Errorf("%w: bad toml", kerrors.ErrConfig), []string{"Invalid configuration", "flowsync config show"}},
		{"Unauthorized", kerrors.ErrUnauthorized, []string{"Step: n8n rejected the API key"}},
		{"NotFound", kerrors.ErrNotFound, []string{"Step: workflow not found", "flowsync list"}},
		{"Remote", fmt.Errorf("%w: 502", kerrors.ErrRemote), []string{"Step:", "Check that n8n is reachable"}},
		{"NodeVersions", kerrors.ErrNodeVersions, []string{"GITHUB_TOKEN", "--skip-node-versions"}},
		{"MultipleJSON", kerrors.ErrMultipleJSONFiles, []string{"multiple JSON files found", "last argument"}},
		{"MissingID", kerrors.ErrMissingWorkflowID, []string{"flowsync push <id> [path]"}},
		{"EmptyName", kerrors.ErrEmptyName, []string{"workflow name cannot be empty"}},
		{"Other", errors.New("disk full"), []string{"Step: disk full"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatError("Step", tt.err)
			if !strings.HasPrefix(got, "✗ ") {
				t.Errorf("Expected cross mark prefix, got %q", got)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("formatError() = %q, missing %q", got, want)
				}
			}
		})
	}
}
