package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
)

// TestPush contains integration tests for the `flowsync push` command.
func TestPush(t *testing.T) {
	t.Run("DefaultFileAndDocumentID", testPushDefault)
	t.Run("ExplicitIDAndFile", testPushExplicit)
	t.Run("DirectoryArgument", testPushDirectory)
	t.Run("LocalFileUnchanged", testPushLocalFileUnchanged)
	t.Run("MissingID", testPushMissingID)
	t.Run("MultipleCandidates", testPushMultipleCandidates)
	t.Run("InvalidDocument", testPushInvalidDocument)
	t.Run("RemoteNotFound", testPushRemoteNotFound)
}

const pushDocument = `{
  "id": "42",
  "name": "Daily Report",
  "active": true,
  "nodes": [],
  "connections": {},
  "settings": {},
  "createdAt": "2024-01-01T00:00:00.000Z",
  "updatedAt": "2024-01-02T00:00:00.000Z",
  "versionId": "abc"
}
`

func writeWorkflowFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func testPushDefault(t *testing.T) {
	workDir := setupTestEnvironment(t)
	f := newFakeN8n(t)
	seedDailyReport(t, f, "Daily Report")
	writeWorkflowFile(t, filepath.Join(workDir, "workflow.json"), pushDocument)

	output, err := runCLI(t, "push")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	body, ok := f.updated("42")
	if !ok {
		t.Fatal("Expected an update for workflow 42")
	}
	for _, key := range []string{"id", "createdAt", "updatedAt", "versionId"} {
		if _, present := body[key]; present {
			t.Errorf("Read-only field %q was sent", key)
		}
	}
	for _, key := range []string{"name", "nodes", "connections", "settings"} {
		if _, present := body[key]; !present {
			t.Errorf("Field %q was not sent", key)
		}
	}
	assertContains(t, output, "Pushed", "workflow.json", "#42", "Not sent", "createdAt")
}

func testPushExplicit(t *testing.T) {
	workDir := setupTestEnvironment(t)
	f := newFakeN8n(t)
	f.add(t, map[string]any{"id": "7", "name": "Other"})
	writeWorkflowFile(t, filepath.Join(workDir, "exported.json"), pushDocument)

	output, err := runCLI(t, "push", "7", "exported.json")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if _, ok := f.updated("7"); !ok {
		t.Error("Expected the explicit id to win over the document id")
	}
	if _, ok := f.updated("42"); ok {
		t.Error("Document id must not be used when an id is given")
	}
}

func testPushDirectory(t *testing.T) {
	workDir := setupTestEnvironment(t)
	f := newFakeN8n(t)
	seedDailyReport(t, f, "Daily Report")
	writeWorkflowFile(t, filepath.Join(workDir, "daily-report", "workflow.json"), pushDocument)
	writeWorkflowFile(t, filepath.Join(workDir, "daily-report", "node-versions.json"), `{"Set": 3}`)

	output, err := runCLI(t, "push", "daily-report")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if _, ok := f.updated("42"); !ok {
		t.Error("Expected an update for workflow 42")
	}
}

func testPushLocalFileUnchanged(t *testing.T) {
	workDir := setupTestEnvironment(t)
	f := newFakeN8n(t)
	seedDailyReport(t, f, "Daily Report")
	path := filepath.Join(workDir, "workflow.json")
	writeWorkflowFile(t, path, pushDocument)

	if output, err := runCLI(t, "push", "42"); err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if got := readFile(t, path); got != pushDocument {
		t.Errorf("Push modified the local file:\n%s", got)
	}
}

func testPushMissingID(t *testing.T) {
	workDir := setupTestEnvironment(t)
	newFakeN8n(t)
	writeWorkflowFile(t, filepath.Join(workDir, "workflow.json"), `{"name": "No ID", "nodes": []}`)

	output, err := runCLI(t, "push")
	if !errors.Is(err, kerrors.ErrMissingWorkflowID) {
		t.Fatalf("Expected ErrMissingWorkflowID, got %v", err)
	}
	assertContains(t, output, "flowsync push <id> [path]")
}

func testPushMultipleCandidates(t *testing.T) {
	workDir := setupTestEnvironment(t)
	newFakeN8n(t)
	writeWorkflowFile(t, filepath.Join(workDir, "a.json"), pushDocument)
	writeWorkflowFile(t, filepath.Join(workDir, "b.json"), pushDocument)

	output, err := runCLI(t, "push")
	if !errors.Is(err, kerrors.ErrMultipleJSONFiles) {
		t.Fatalf("Expected ErrMultipleJSONFiles, got %v", err)
	}
	assertContains(t, output, "Pass the file to push")
}

func testPushInvalidDocument(t *testing.T) {
	workDir := setupTestEnvironment(t)
	newFakeN8n(t)
	writeWorkflowFile(t, filepath.Join(workDir, "workflow.json"), `[1, 2, 3]`)

	_, err := runCLI(t, "push", "42")
	if !errors.Is(err, kerrors.ErrInvalidDocument) {
		t.Fatalf("Expected ErrInvalidDocument, got %v", err)
	}
}

func testPushRemoteNotFound(t *testing.T) {
	workDir := setupTestEnvironment(t)
	newFakeN8n(t)
	writeWorkflowFile(t, filepath.Join(workDir, "workflow.json"), pushDocument)

	output, err := runCLI(t, "push")
	if !errors.Is(err, kerrors.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	assertContains(t, output, "workflow not found")
}
