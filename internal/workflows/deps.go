package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/flowsync/internal/audit"
	logger "github.com/PolarWolf314/flowsync/internal/logging"
	"github.com/PolarWolf314/flowsync/internal/n8n"
	"github.com/PolarWolf314/flowsync/internal/nodes"
	"github.com/PolarWolf314/flowsync/internal/repo"
	"github.com/PolarWolf314/flowsync/internal/workspace"
)

// RemoteClient is the subset of the n8n API the workflows use.
type RemoteClient interface {
	List(ctx context.Context) ([]n8n.Workflow, error)
	Create(ctx context.Context, name string) (*n8n.Workflow, error)
	Get(ctx context.Context, id string) (n8n.Document, error)
	Update(ctx context.Context, id string, doc n8n.Document) (*n8n.Workflow, error)
}

// VersionFetcher returns the latest version of every n8n node type.
type VersionFetcher interface {
	Fetch(ctx context.Context) (nodes.Versions, error)
}

// Deps holds the collaborators shared by every workflow.
type Deps struct {
	Remote RemoteClient

	// Nodes is optional; nil skips the node-versions.json snapshot.
	Nodes VersionFetcher

	Repo *repo.Manager

	// Host is recorded in audit entries.
	Host string

	Log logger.Logger

	// Audit records entries; defaults to audit.Log.
	Audit func(audit.Entry)
}

func (d Deps) record(entry audit.Entry, err error) {
	entry.Host = d.Host
	if err != nil {
		entry.Outcome = audit.OutcomeFailed
		entry.Error = err.Error()
	}
	if d.Audit != nil {
		d.Audit(entry)
		return
	}
	audit.Log(entry)
}

// nodeVersionArtifacts fetches node versions and renders them as the
// node-versions.json side file.
func (d Deps) nodeVersionArtifacts(ctx context.Context, skip bool) ([]repo.Artifact, int, error) {
	if d.Nodes == nil || skip {
		d.Log.Debugf("Skipping node version fetch")
		return nil, 0, nil
	}

	d.Log.Debugf("Fetching node versions")
	versions, err := d.Nodes.Fetch(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := versions.Marshal()
	if err != nil {
		return nil, 0, fmt.Errorf("encoding node versions: %w", err)
	}
	return []repo.Artifact{{Name: workspace.NodeVersionsFile, Data: data}}, len(versions), nil
}

// request builds a repository write of doc into loc.
func request(loc workspace.Location, id string, doc n8n.Document, artifacts []repo.Artifact) (repo.Request, error) {
	rel, err := loc.RelFile()
	if err != nil {
		return repo.Request{}, err
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return repo.Request{}, fmt.Errorf("encoding workflow %s: %w", id, err)
	}

	return repo.Request{
		Dir:       loc.Dir,
		FileName:  rel,
		Data:      data,
		Message:   repo.CommitMessage(id),
		Artifacts: artifacts,
	}, nil
}
