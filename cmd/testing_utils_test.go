package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/internal/configs"
	logger "github.com/PolarWolf314/flowsync/internal/logging"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/nodes"
	"github.com/PolarWolf314/flowsync/internal/workflows"
)

const testAPIKey = "test-api-key"

// setupTestEnvironment moves the test into a fresh working directory, points
// user settings at a temporary home and resets command state. It returns the
// working directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	workDir := t.TempDir()
	userDir := t.TempDir()
	t.Chdir(workDir)

	originalUserSettings := configs.UserFlowsyncSettings
	t.Cleanup(func() {
		configs.UserFlowsyncSettings = originalUserSettings
		ResetGlobalState()
	})

	configs.UserFlowsyncSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(userDir, "config"),
		UserDataPath:    filepath.Join(userDir, "data"),
		Username:        "testuser",
	}

	for _, env := range []string{
		configs.EnvHost, configs.EnvAPIKey, configs.EnvGitHubToken,
		configs.EnvAssumeYes, configs.EnvNodeVersions,
	} {
		t.Setenv(env, "")
	}
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	isInteractive = func() bool { return false }
	useFetcher(&stubFetcher{versions: nodes.Versions{}})
	return workDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a complete CLI instance that runs args.
func createTestCLI(args ...string) *cobra.Command {
	Logger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:           "flowsync",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	Register(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args against a fresh CLI and returns the combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args...).ExecuteContext(context.Background())
	})
}

// fakeN8n is an in-memory n8n public API.
type fakeN8n struct {
	mu        sync.Mutex
	workflows map[string]n8n.Document
	nextID    int
	updates   map[string]map[string]any
	server    *httptest.Server
}

// newFakeN8n starts a fake server and exports its address and key.
func newFakeN8n(t *testing.T) *fakeN8n {
	t.Helper()
	f := &fakeN8n{
		workflows: map[string]n8n.Document{},
		updates:   map[string]map[string]any{},
		nextID:    100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/workflows", f.list)
	mux.HandleFunc("POST /api/v1/workflows", f.create)
	mux.HandleFunc("GET /api/v1/workflows/{id}", f.get)
	mux.HandleFunc("PUT /api/v1/workflows/{id}", f.update)

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-N8N-API-KEY") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"unauthorized"}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)

	t.Setenv(configs.EnvHost, f.server.URL)
	t.Setenv(configs.EnvAPIKey, testAPIKey)
	return f
}

// add stores a workflow document built from fields.
func (f *fakeN8n) add(t *testing.T, fields map[string]any) {
	t.Helper()
	if _, err := f.store(fields); err != nil {
		t.Fatalf("Failed to store workflow: %v", err)
	}
}

func (f *fakeN8n) store(fields map[string]any) (n8n.Document, error) {
	doc := n8n.Document{}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", k, err)
		}
		doc[k] = raw
	}
	id, _ := doc.String("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.workflows[id] = doc
	return doc, nil
}

// updated returns the last body PUT for id.
func (f *fakeN8n) updated(id string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.updates[id]
	return body, ok
}

func (f *fakeN8n) summary(doc n8n.Document) n8n.Workflow {
	var wf n8n.Workflow
	data, _ := json.Marshal(doc)
	_ = json.Unmarshal(data, &wf)
	return wf
}

func (f *fakeN8n) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := []n8n.Workflow{}
	for _, doc := range f.workflows {
		data = append(data, f.summary(doc))
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "nextCursor": nil})
}

func (f *fakeN8n) create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.nextID++
	id := fmt.Sprint(f.nextID)
	f.mu.Unlock()

	body["id"] = id
	body["active"] = false
	body["createdAt"] = "2024-01-01T00:00:00.000Z"
	doc, err := f.store(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(f.summary(doc))
}

func (f *fakeN8n) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.workflows[r.PathValue("id")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
		return
	}
	_ = json.NewEncoder(w).Encode(doc)
}

func (f *fakeN8n) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.workflows[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
		return
	}
	f.updates[id] = body
	if name, ok := body["name"].(string); ok {
		doc["name"], _ = json.Marshal(name)
	}
	_ = json.NewEncoder(w).Encode(f.summary(doc))
}

// stubFetcher returns fixed node versions.
type stubFetcher struct {
	versions nodes.Versions
	err      error
	calls    int
}

func (s *stubFetcher) Fetch(ctx context.Context) (nodes.Versions, error) {
	s.calls++
	return s.versions, s.err
}

// useFetcher makes every command use f for node versions.
func useFetcher(f *stubFetcher) {
	newFetcher = func(*configs.Config) workflows.VersionFetcher { return f }
}

// readFile returns the contents of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// assertContains fails when output does not contain every want.
func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}
}
