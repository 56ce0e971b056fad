package repo

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

// worktreeStatus returns porcelain-style two-letter codes for every path
// that is not clean.
func worktreeStatus(t *testing.T, dir string) map[string]string {
	t.Helper()
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)

	r, err := git.PlainOpen(abs)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)

	out := map[string]string{}
	for path, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		out[path] = string(fs.Staging) + string(fs.Worktree)
	}
	return out
}
