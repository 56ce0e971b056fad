package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Identity used for every commit flowsync records.
const (
	AuthorName  = "flowsync"
	AuthorEmail = "flowsync@localhost"
)

// VersionControl is the narrow slice of git that workflow directories need.
type VersionControl interface {
	// Init creates a new repository rooted at dir. It fails if one exists.
	Init(dir string) error

	// OpenOrInit opens the repository rooted at dir, creating it if absent.
	// initialized reports whether a new repository was created.
	OpenOrInit(dir string) (initialized bool, err error)

	// StageAndCommit stages relPath (relative to dir) and records one
	// commit, returning its hash.
	StageAndCommit(dir, relPath, message string) (string, error)

	// IsRepository reports whether dir itself is the root of a repository.
	IsRepository(dir string) (bool, error)

	// CommitCount returns the number of commits reachable from HEAD.
	CommitCount(dir string) (int, error)
}

// GitVersionControl implements VersionControl with go-git, so no git
// binary is required.
type GitVersionControl struct {
	// Now stamps commits; defaults to time.Now.
	Now func() time.Time
}

// NewGitVersionControl returns a GitVersionControl using the wall clock.
func NewGitVersionControl() *GitVersionControl {
	return &GitVersionControl{Now: time.Now}
}

func (g *GitVersionControl) Init(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if _, err := git.PlainInit(abs, false); err != nil {
		return err
	}
	return nil
}

func (g *GitVersionControl) OpenOrInit(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}

	_, err = git.PlainOpen(abs)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return false, fmt.Errorf("open: %w", err)
	}

	if _, err := git.PlainInit(abs, false); err != nil {
		return false, fmt.Errorf("init: %w", err)
	}
	return true, nil
}

func (g *GitVersionControl) IsRepository(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	_, err = git.PlainOpen(abs)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrRepositoryNotExists):
		return false, nil
	default:
		return false, fmt.Errorf("open: %w", err)
	}
}

func (g *GitVersionControl) StageAndCommit(dir, relPath, message string) (string, error) {
	r, err := g.open(dir)
	if err != nil {
		return "", err
	}

	wt, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}

	if _, err := wt.Add(filepath.ToSlash(relPath)); err != nil {
		return "", fmt.Errorf("stage %s: %w", relPath, err)
	}

	sig := g.signature()
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
		// A pull of an unchanged workflow still records the sync.
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// CommitCount returns the number of commits reachable from HEAD.
// A repository with no commits yet reports 0.
func (g *GitVersionControl) CommitCount(dir string) (int, error) {
	count := 0
	err := g.walk(dir, func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}

// Messages returns commit messages reachable from HEAD, newest first.
func (g *GitVersionControl) Messages(dir string) ([]string, error) {
	var msgs []string
	err := g.walk(dir, func(c *object.Commit) error {
		msgs = append(msgs, c.Message)
		return nil
	})
	return msgs, err
}

func (g *GitVersionControl) walk(dir string, fn func(*object.Commit) error) error {
	r, err := g.open(dir)
	if err != nil {
		return err
	}

	head, err := r.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := r.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer iter.Close()

	return iter.ForEach(fn)
}

func (g *GitVersionControl) open(dir string) (*git.Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	r, err := git.PlainOpen(abs)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return r, nil
}

func (g *GitVersionControl) signature() *object.Signature {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return &object.Signature{
		Name:  AuthorName,
		Email: AuthorEmail,
		When:  now(),
	}
}
