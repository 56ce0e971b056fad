package workflows

import (
	"context"
	"strings"

	"github.com/PolarWolf314/flowsync/internal/audit"
	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	"github.com/PolarWolf314/flowsync/internal/repo"
	"github.com/PolarWolf314/flowsync/internal/workspace"
)

// PullOptions configures the pull workflow.
type PullOptions struct {
	// ID is the workflow to download.
	ID string

	// Path is an optional directory or file path; empty derives the
	// directory from the workflow name.
	Path string

	// SkipNodeVersions disables the node-versions.json snapshot.
	SkipNodeVersions bool
}

// PullResult contains the outcome of a pull operation.
type PullResult struct {
	WorkflowID   string
	WorkflowName string

	// Outcome is repo.Aborted when the operator declined to overwrite.
	Outcome repo.Outcome

	// FilePath is the workflow document path.
	FilePath string

	// Commit is the new commit hash; empty when aborted.
	Commit string

	// Initialized is true when the directory got a new repository.
	Initialized bool

	// NodeVersions is the number of node types recorded; 0 when skipped.
	NodeVersions int
}

// Pull downloads a workflow and records it as a new commit in its
// directory. Overwriting an existing file goes through the manager's
// Confirmer; a decline is reported as Outcome Aborted, not an error.
//
// Returns ErrNotFound if the workflow does not exist on the server.
func Pull(ctx context.Context, deps Deps, opts PullOptions) (*PullResult, error) {
	id := strings.TrimSpace(opts.ID)
	if id == "" {
		return nil, kerrors.ErrMissingWorkflowID
	}

	entry := audit.Entry{Operation: audit.OpPull, WorkflowID: id}

	doc, err := deps.Remote.Get(ctx, id)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	name, _ := doc.String("name")
	entry.WorkflowName = name

	artifacts, count, err := deps.nodeVersionArtifacts(ctx, opts.SkipNodeVersions)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	loc := workspace.Resolve(workspace.NameOrID(name, id), opts.Path)
	entry.Path = loc.File
	deps.Log.Debugf("Resolved workflow %s to %s", id, loc.File)

	req, err := request(loc, id, doc, artifacts)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	res, err := deps.Repo.Sync(ctx, req)
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	entry.Commit = res.Commit
	entry.Outcome = res.Outcome.String()
	deps.record(entry, nil)

	result := &PullResult{
		WorkflowID:   id,
		WorkflowName: name,
		Outcome:      res.Outcome,
		FilePath:     res.FilePath,
		Commit:       res.Commit,
		Initialized:  res.Initialized,
	}
	if res.Outcome == repo.Done {
		result.NodeVersions = count
	}
	return result, nil
}
