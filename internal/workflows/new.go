package workflows

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/flowsync/internal/audit"
	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/repo"
	"github.com/PolarWolf314/flowsync/internal/workspace"
)

// NewOptions configures the new workflow.
type NewOptions struct {
	// Name is the display name of the workflow to create.
	Name string

	// SkipNodeVersions disables the node-versions.json snapshot.
	SkipNodeVersions bool
}

// NewResult contains the outcome of a new operation.
type NewResult struct {
	// Workflow is the server's record of the created workflow.
	Workflow n8n.Workflow

	// Dir is the new workflow directory.
	Dir string

	// FilePath is where workflow.json was written.
	FilePath string

	// Commit is the hash of the first commit.
	Commit string

	// NodeVersions is the number of node types recorded; 0 when skipped.
	NodeVersions int
}

// New creates an empty workflow on the server and a fresh local directory,
// named after the workflow, holding its document and a new git repository.
//
// Returns ErrEmptyName if the name is blank.
// Returns ErrVersionControl if the directory already has a repository and
// ErrIO if it already holds the document; both are detected before the
// server is called.
func New(ctx context.Context, deps Deps, opts NewOptions) (*NewResult, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, kerrors.ErrEmptyName
	}

	// A punctuation-only name is placed by id, known only after creation.
	if workspace.Slug(name) != "" {
		if err := deps.Repo.CheckNew(plannedRequest(workspace.Resolve(name, ""), opts.SkipNodeVersions)); err != nil {
			return nil, err
		}
	}

	created, err := deps.Remote.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	deps.Log.Infof("Created workflow %s (%s)", created.Name, created.ID)

	entry := audit.Entry{Operation: audit.OpNew, WorkflowID: created.ID, WorkflowName: created.Name}

	doc, err := deps.Remote.Get(ctx, created.ID)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	artifacts, count, err := deps.nodeVersionArtifacts(ctx, opts.SkipNodeVersions)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	serverName := created.Name
	if n, ok := doc.String("name"); ok {
		serverName = n
	}
	loc := workspace.Resolve(workspace.NameOrID(serverName, created.ID), "")
	entry.Path = loc.File

	req, err := request(loc, created.ID, doc, artifacts)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	res, err := deps.Repo.Create(ctx, req)
	if err != nil {
		deps.Log.Errorf("Workflow %s was created on the server but not saved locally", created.ID)
		deps.record(entry, err)
		return nil, err
	}

	entry.Commit = res.Commit
	entry.Outcome = audit.OutcomeDone
	deps.record(entry, nil)

	return &NewResult{
		Workflow:     *created,
		Dir:          loc.Dir,
		FilePath:     res.FilePath,
		Commit:       res.Commit,
		NodeVersions: count,
	}, nil
}

// plannedRequest describes what New will write into loc, without data.
func plannedRequest(loc workspace.Location, skipNodeVersions bool) repo.Request {
	req := repo.Request{Dir: loc.Dir, FileName: filepath.Base(loc.File)}
	if !skipNodeVersions {
		req.Artifacts = []repo.Artifact{{Name: workspace.NodeVersionsFile}}
	}
	return req
}
