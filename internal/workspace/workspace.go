// Package workspace decides where a workflow lives on disk.
//
// A workflow directory is named after the workflow's slug unless the user
// gives an explicit path. The directory holds workflow.json, the
// node-versions.json side file, and the directory's own git history.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	"github.com/PolarWolf314/flowsync/internal/utils"
)

const (
	// WorkflowFile is the default name of the workflow document.
	WorkflowFile = "workflow.json"

	// NodeVersionsFile holds the node-type to version snapshot.
	NodeVersionsFile = "node-versions.json"

	separator = '-'
)

// Location is a resolved workflow directory and document path.
type Location struct {
	Dir  string
	File string
}

// Slug lowercases s and replaces every run of characters that are not ASCII
// letters or digits with a single '-'. Leading and trailing separators are
// trimmed, so input with no letters or digits yields "".
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// NameOrID returns name, or id when the name has nothing to slug
// (blank or punctuation only).
func NameOrID(name, id string) string {
	if Slug(name) == "" {
		return id
	}
	return name
}

// Resolve computes the directory and document path for a workflow.
//
// With no userPath the directory is the slug of nameOrID (the current
// directory if the slug is empty). A userPath that is
// an existing directory, or has no extension, is used as the directory.
// Anything else is taken as the document path itself and its parent becomes
// the directory.
func Resolve(nameOrID, userPath string) Location {
	if userPath == "" {
		dir := Slug(nameOrID)
		if dir == "" {
			dir = "."
		}
		return Location{Dir: dir, File: filepath.Join(dir, WorkflowFile)}
	}

	if utils.IsDir(userPath) || filepath.Ext(userPath) == "" {
		return Location{Dir: userPath, File: filepath.Join(userPath, WorkflowFile)}
	}

	return Location{Dir: filepath.Dir(userPath), File: userPath}
}

// RelFile returns the document path relative to the directory.
func (l Location) RelFile() (string, error) {
	rel, err := filepath.Rel(l.Dir, l.File)
	if err != nil {
		return "", fmt.Errorf("%s is not inside %s: %w", l.File, l.Dir, err)
	}
	return rel, nil
}

// FindDefaultJSON locates the workflow document in dir when the user did not
// name one. workflow.json wins; otherwise exactly one *.json file must exist.
// node-versions.json is never a candidate.
func FindDefaultJSON(dir string) (string, error) {
	preferred := filepath.Join(dir, WorkflowFile)
	exists, err := utils.FileExists(preferred)
	if err != nil {
		return "", fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	}
	if exists {
		return preferred, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "*.json", doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("%w: failed to list %s: %w", kerrors.ErrIO, dir, err)
	}

	var candidates []string
	for _, m := range matches {
		if m == NodeVersionsFile {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, m))
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w in %s", kerrors.ErrNoJSONFiles, dir)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w in %s, please specify which one to push:%s",
			kerrors.ErrMultipleJSONFiles, dir, utils.FormatPaths(candidates))
	}
}
