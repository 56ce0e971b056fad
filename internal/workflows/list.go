package workflows

import (
	"context"
	"sort"
	"strings"

	"github.com/PolarWolf314/flowsync/internal/n8n"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// ActiveOnly drops inactive workflows.
	ActiveOnly bool
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Workflows are sorted by name, then id.
	Workflows []n8n.Workflow
}

// List returns every workflow on the server.
func List(ctx context.Context, deps Deps, opts ListOptions) (*ListResult, error) {
	workflows, err := deps.Remote.List(ctx)
	if err != nil {
		return nil, err
	}

	if opts.ActiveOnly {
		active := workflows[:0]
		for _, wf := range workflows {
			if wf.Active {
				active = append(active, wf)
			}
		}
		workflows = active
	}

	sort.SliceStable(workflows, func(i, j int) bool {
		a, b := strings.ToLower(workflows[i].Name), strings.ToLower(workflows[j].Name)
		if a != b {
			return a < b
		}
		return workflows[i].ID < workflows[j].ID
	})

	deps.Log.Debugf("Listed %d workflows", len(workflows))
	return &ListResult{Workflows: workflows}, nil
}
