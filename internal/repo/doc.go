// Package repo owns the on-disk state of a workflow directory.
//
// Every create or pull writes the workflow document, writes any side files
// (node-versions.json), and appends exactly one commit to the directory's
// own git repository. History is never rewritten.
//
// # Overwrite Gate
//
// Sync moves through these states:
//
//	CheckingExists -> Writing              (file absent)
//	CheckingExists -> Prompting            (file present)
//	Prompting      -> Writing | Aborted    (confirm | decline)
//	Writing        -> Committing | error
//	Committing     -> Done | error
//
// A decline is reported as Outcome Aborted with a nil error; nothing on disk
// changes. Failures are never retried or rolled back: if the write succeeds
// and the commit fails the file stays on disk and the returned *Error says so.
//
// # Collaborators
//
// Git access goes through VersionControl and operator confirmation through
// Confirmer, so tests can drive the gate with scripted answers:
//
//	m := repo.NewManager(repo.WithConfirmer(repo.Sequence(false)))
//	res, err := m.Sync(ctx, req) // res.Outcome == repo.Aborted
package repo
