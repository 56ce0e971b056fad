package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	logger "github.com/PolarWolf314/flowsync/internal/logging"
	"github.com/PolarWolf314/flowsync/internal/utils"
)

// Outcome is how a create or sync ended.
type Outcome int

const (
	// Done means the file was written and committed.
	Done Outcome = iota

	// Aborted means the operator declined to overwrite; nothing changed.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// CommitMessage returns the message recorded for a sync of workflow id.
func CommitMessage(id string) string {
	return fmt.Sprintf("feat: sync from n8n (workflow %s)", id)
}

// Artifact is a side file written next to the workflow but never committed.
type Artifact struct {
	Name string
	Data []byte
}

// Request describes one write into a workflow directory.
type Request struct {
	// Dir is the workflow directory and repository root.
	Dir string

	// FileName is the document path relative to Dir.
	FileName string

	// Data is written to FileName verbatim.
	Data []byte

	// Message is the commit message.
	Message string

	// Artifacts are written after the document and left unstaged.
	Artifacts []Artifact
}

// Path returns the document path.
func (r Request) Path() string {
	return filepath.Join(r.Dir, r.FileName)
}

// Result reports what a create or sync did.
type Result struct {
	Outcome Outcome

	// FilePath is the document path.
	FilePath string

	// Commit is the new commit hash; empty when aborted.
	Commit string

	// Initialized is true when a new repository was created.
	Initialized bool
}

// Manager performs writes and commits for workflow directories.
type Manager struct {
	vcs     VersionControl
	confirm Confirmer
	log     logger.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithVersionControl replaces the go-git backend.
func WithVersionControl(vcs VersionControl) Option {
	return func(m *Manager) {
		m.vcs = vcs
	}
}

// WithConfirmer sets how overwrite confirmation is obtained.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) {
		m.confirm = c
	}
}

// WithLogger sets the logger for step tracing.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager returns a Manager backed by go-git that declines every
// overwrite unless a Confirmer is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		vcs:     NewGitVersionControl(),
		confirm: Always(false),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// errRepositoryExists is the cause reported when Create finds a repository.
var errRepositoryExists = errors.New("repository already exists")

// CheckNew fails if creating req would touch existing work: req.Dir is
// already a repository, or the document or one of the artifacts exists.
// Nothing is written.
func (m *Manager) CheckNew(req Request) error {
	isRepo, err := m.vcs.IsRepository(req.Dir)
	if err != nil {
		return &Error{Op: "open repository in", Path: req.Dir, Kind: kerrors.ErrVersionControl, Err: err}
	}
	if isRepo {
		return &Error{Op: "initialize repository in", Path: req.Dir, Kind: kerrors.ErrVersionControl, Err: errRepositoryExists}
	}

	paths := []string{req.Path()}
	for _, a := range req.Artifacts {
		paths = append(paths, filepath.Join(req.Dir, a.Name))
	}
	for _, p := range paths {
		exists, err := utils.FileExists(p)
		if err != nil {
			return &Error{Op: "check", Path: p, Kind: kerrors.ErrIO, Err: err}
		}
		if exists {
			return &Error{Op: "create", Path: p, Kind: kerrors.ErrIO, Err: fs.ErrExist}
		}
	}
	return nil
}

// Create writes a brand new workflow directory: it creates the directory,
// writes the document and artifacts, initializes a fresh repository and
// records the first commit. It writes nothing when CheckNew fails.
func (m *Manager) Create(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.CheckNew(req); err != nil {
		return nil, err
	}

	path, err := m.write(req)
	if err != nil {
		return nil, err
	}

	m.log.Debugf("Initializing git repository in %s", req.Dir)
	if err := m.vcs.Init(req.Dir); err != nil {
		return nil, &Error{Op: "initialize repository in", Path: req.Dir, Kind: kerrors.ErrVersionControl, Err: err, Written: true}
	}

	hash, err := m.commit(req)
	if err != nil {
		return nil, err
	}

	return &Result{Outcome: Done, FilePath: path, Commit: hash, Initialized: true}, nil
}

// Sync writes the document into an existing or new workflow directory.
// If the document already exists the Confirmer is asked first; a decline
// returns Outcome Aborted and leaves the directory untouched.
func (m *Manager) Sync(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := req.Path()
	exists, err := utils.FileExists(path)
	if err != nil {
		return nil, &Error{Op: "check", Path: path, Kind: kerrors.ErrIO, Err: err}
	}

	if exists {
		m.log.Debugf("%s exists, asking before overwriting", path)
		ok, err := m.confirm.Confirm(fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return nil, &Error{Op: "confirm overwrite of", Path: path, Kind: kerrors.ErrIO, Err: err}
		}
		if !ok {
			m.log.Infof("Overwrite of %s declined", path)
			return &Result{Outcome: Aborted, FilePath: path}, nil
		}
	}

	if _, err := m.write(req); err != nil {
		return nil, err
	}

	initialized, err := m.vcs.OpenOrInit(req.Dir)
	if err != nil {
		return nil, &Error{Op: "initialize repository in", Path: req.Dir, Kind: kerrors.ErrVersionControl, Err: err, Written: true}
	}
	if initialized {
		m.log.Infof("Initialized git repository in %s", req.Dir)
	}

	hash, err := m.commit(req)
	if err != nil {
		return nil, err
	}

	return &Result{Outcome: Done, FilePath: path, Commit: hash, Initialized: initialized}, nil
}

func (m *Manager) write(req Request) (string, error) {
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return "", &Error{Op: "create directory", Path: req.Dir, Kind: kerrors.ErrIO, Err: err}
	}

	path := req.Path()
	m.log.Debugf("Writing %d bytes to %s", len(req.Data), path)
	if err := os.WriteFile(path, req.Data, 0o644); err != nil {
		return "", &Error{Op: "write", Path: path, Kind: kerrors.ErrIO, Err: err}
	}

	for _, a := range req.Artifacts {
		p := filepath.Join(req.Dir, a.Name)
		m.log.Debugf("Writing %s", p)
		if err := os.WriteFile(p, a.Data, 0o644); err != nil {
			return "", &Error{Op: "write", Path: p, Kind: kerrors.ErrIO, Err: err, Written: true}
		}
	}
	return path, nil
}

func (m *Manager) commit(req Request) (string, error) {
	hash, err := m.vcs.StageAndCommit(req.Dir, req.FileName, req.Message)
	if err != nil {
		return "", &Error{Op: "commit " + req.FileName + " in", Path: req.Dir, Kind: kerrors.ErrVersionControl, Err: err, Written: true}
	}
	m.log.Debugf("Committed %s as %s", req.FileName, hash)
	return hash, nil
}
