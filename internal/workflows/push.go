package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/flowsync/internal/audit"
	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/sanitize"
	"github.com/PolarWolf314/flowsync/internal/utils"
	"github.com/PolarWolf314/flowsync/internal/workspace"
)

// PushOptions configures the push workflow.
type PushOptions struct {
	// ID overrides the id stored in the document.
	ID string

	// Path is the workflow file or its directory; empty searches the
	// current directory.
	Path string
}

// PushResult contains the outcome of a push operation.
type PushResult struct {
	// Workflow is the server's record after the update.
	Workflow n8n.Workflow

	// FilePath is the local file that was uploaded.
	FilePath string

	// Dropped lists top-level keys removed before upload.
	Dropped []string
}

// SplitPushArgs maps `push [id] [path]` arguments to options. A single
// argument is a path when it names an existing file or directory or ends
// in .json, and an id otherwise.
func SplitPushArgs(args []string) PushOptions {
	switch len(args) {
	case 0:
		return PushOptions{}
	case 1:
		arg := args[0]
		if strings.EqualFold(filepath.Ext(arg), ".json") || utils.IsDir(arg) {
			return PushOptions{Path: arg}
		}
		if exists, _ := utils.FileExists(arg); exists {
			return PushOptions{Path: arg}
		}
		return PushOptions{ID: arg}
	default:
		return PushOptions{ID: args[0], Path: args[1]}
	}
}

// Push uploads a local workflow file, keeping only the fields the update
// API accepts. The local file is never modified.
//
// Returns ErrNoJSONFiles or ErrMultipleJSONFiles if no path was given and
// the directory has no single candidate file.
// Returns ErrInvalidDocument if the file is not a JSON object.
// Returns ErrMissingWorkflowID if no id was given and the file has none.
func Push(ctx context.Context, deps Deps, opts PushOptions) (*PushResult, error) {
	path, err := resolvePushPath(opts.Path)
	if err != nil {
		return nil, err
	}
	deps.Log.Debugf("Pushing %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", kerrors.ErrIO, path, err)
	}

	doc, err := n8n.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kerrors.ErrInvalidDocument, path, err)
	}

	id := strings.TrimSpace(opts.ID)
	if id == "" {
		id, _ = doc.String("id")
	}
	if id == "" {
		return nil, fmt.Errorf("%w (%s)", kerrors.ErrMissingWorkflowID, path)
	}

	name, _ := doc.String("name")
	entry := audit.Entry{Operation: audit.OpPush, WorkflowID: id, WorkflowName: name, Path: path}

	dropped := sanitize.Dropped(doc)
	if len(dropped) > 0 {
		deps.Log.Debugf("Dropping fields not accepted by the update API: %s", strings.Join(dropped, ", "))
	}

	updated, err := deps.Remote.Update(ctx, id, sanitize.ForUpdate(doc))
	if err != nil {
		deps.record(entry, err)
		return nil, err
	}

	entry.Outcome = audit.OutcomeDone
	deps.record(entry, nil)

	return &PushResult{Workflow: *updated, FilePath: path, Dropped: dropped}, nil
}

func resolvePushPath(path string) (string, error) {
	if path == "" {
		return workspace.FindDefaultJSON(".")
	}
	if utils.IsDir(path) {
		return workspace.FindDefaultJSON(path)
	}
	return path, nil
}
