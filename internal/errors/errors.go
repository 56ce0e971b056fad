package errors

import (
	"errors"
	"fmt"
)

// Local errors indicate a failure touching the workflow directory.
var (
	// ErrIO indicates a filesystem create, read, or write failed.
	ErrIO = errors.New("filesystem error")

	// ErrVersionControl indicates a git init, open, stage, or commit failed.
	ErrVersionControl = errors.New("version control error")
)

// Configuration errors indicate the tool cannot reach the n8n instance.
var (
	// ErrConfig indicates the configuration is invalid.
	ErrConfig = errors.New("configuration error")

	// ErrConfigMissing indicates the n8n host or API key is not set.
	ErrConfigMissing = fmt.Errorf("%w: n8n host or API key not set", ErrConfig)
)

// Remote errors indicate the n8n API call failed.
var (
	// ErrRemote is the category for every n8n API failure.
	ErrRemote = errors.New("remote error")

	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = fmt.Errorf("%w: authentication failed", ErrRemote)

	// ErrNotFound indicates the workflow does not exist on the server.
	ErrNotFound = fmt.Errorf("%w: workflow not found", ErrRemote)

	// ErrTransport indicates the request could not be sent or the response could not be parsed.
	ErrTransport = fmt.Errorf("%w: transport failure", ErrRemote)

	// ErrNodeVersions indicates node versions could not be fetched.
	ErrNodeVersions = errors.New("failed to fetch node versions")
)

// Input errors indicate the command cannot determine what to operate on.
var (
	// ErrAmbiguousInput is the category for unresolvable command input.
	ErrAmbiguousInput = errors.New("ambiguous input")

	// ErrNoJSONFiles indicates no JSON file was found in the directory.
	ErrNoJSONFiles = fmt.Errorf("%w: no JSON files found", ErrAmbiguousInput)

	// ErrMultipleJSONFiles indicates more than one candidate JSON file was found.
	ErrMultipleJSONFiles = fmt.Errorf("%w: multiple JSON files found", ErrAmbiguousInput)

	// ErrMissingWorkflowID indicates no workflow ID was given and the document has none.
	ErrMissingWorkflowID = fmt.Errorf("%w: workflow ID not provided and not found in JSON", ErrAmbiguousInput)

	// ErrEmptyName indicates a blank workflow name was given.
	ErrEmptyName = errors.New("workflow name cannot be empty")

	// ErrInvalidDocument indicates the workflow file is not a JSON object.
	ErrInvalidDocument = errors.New("workflow file is not a valid JSON object")

	// ErrInvalidDateFormat indicates a --since or --until date did not parse.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
