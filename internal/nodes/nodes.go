// Package nodes scrapes n8n's source tree for the latest version of every
// built-in node type.
//
// The result is saved next to each workflow as node-versions.json so a
// reviewer can tell whether a workflow uses outdated node versions.
package nodes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	kerrors "github.com/PolarWolf314/flowsync/internal/errors"
	logger "github.com/PolarWolf314/flowsync/internal/logging"
)

const (
	DefaultOwner       = "n8n-io"
	DefaultRepo        = "n8n"
	DefaultRef         = "master"
	DefaultRawBaseURL  = "https://raw.githubusercontent.com/"
	DefaultConcurrency = 8

	userAgent = "flowsync"
)

var (
	nodeFileRe = regexp.MustCompile(`^packages/nodes-base/nodes/([^/]+)/.*\.node\.[jt]s$`)
	versionRe  = regexp.MustCompile(`version:\s*(\[[^\]]*\]|\d+)`)
	numberRe   = regexp.MustCompile(`\d+`)
)

// Versions maps a node type (its directory under nodes-base/nodes) to the
// highest version number found.
type Versions map[string]int

// Marshal renders versions as pretty-printed JSON with sorted keys.
func (v Versions) Marshal() ([]byte, error) {
	if v == nil {
		v = Versions{}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Fetcher reads node sources from a GitHub repository.
type Fetcher struct {
	client      *github.Client
	owner       string
	repo        string
	ref         string
	rawBaseURL  string
	concurrency int
	log         logger.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithToken authenticates GitHub requests, raising the API rate limit.
func WithToken(token string) Option {
	return func(f *Fetcher) {
		if token == "" {
			return
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		f.client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}
}

// WithGitHubClient replaces the GitHub client.
func WithGitHubClient(c *github.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRepository reads node sources from owner/repo at ref.
// "owner/repo" may be given as repo with an empty owner.
func WithRepository(owner, repo, ref string) Option {
	return func(f *Fetcher) {
		if owner == "" {
			owner, repo, _ = strings.Cut(repo, "/")
		}
		if owner != "" && repo != "" {
			f.owner, f.repo = owner, repo
		}
		if ref != "" {
			f.ref = ref
		}
	}
}

// WithRawBaseURL changes where file contents are downloaded from.
func WithRawBaseURL(u string) Option {
	return func(f *Fetcher) {
		f.rawBaseURL = strings.TrimRight(u, "/") + "/"
	}
}

// WithConcurrency bounds the number of parallel file downloads.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// NewFetcher returns a Fetcher for n8n-io/n8n@master.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      github.NewClient(nil),
		owner:       DefaultOwner,
		repo:        DefaultRepo,
		ref:         DefaultRef,
		rawBaseURL:  DefaultRawBaseURL,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client.UserAgent = userAgent
	return f
}

// Fetch lists the repository tree, downloads every node source file and
// returns the highest version per node. Any failure fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context) (Versions, error) {
	tree, _, err := f.client.Git.GetTree(ctx, f.owner, f.repo, f.ref, true)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s/%s@%s: %w", kerrors.ErrNodeVersions, f.owner, f.repo, f.ref, err)
	}
	if tree.GetTruncated() {
		f.log.Warnf("GitHub truncated the tree listing for %s/%s; some nodes may be missing", f.owner, f.repo)
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if _, ok := NodeName(entry.GetPath()); ok {
			paths = append(paths, entry.GetPath())
		}
	}
	f.log.Debugf("Found %d node source files in %s/%s@%s", len(paths), f.owner, f.repo, f.ref)

	return f.scan(ctx, paths)
}

type scanResult struct {
	node    string
	version int
	found   bool
}

func (f *Fetcher) scan(ctx context.Context, paths []string) (Versions, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	results := make(chan scanResult)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for range min(f.concurrency, max(len(paths), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				contents, err := f.download(ctx, path)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				node, _ := NodeName(path)
				v, ok := ExtractVersion(contents)
				select {
				case results <- scanResult{node: node, version: v, found: ok}:
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	versions := Versions{}
	for r := range results {
		if !r.found {
			continue
		}
		if cur, ok := versions[r.node]; !ok || r.version > cur {
			versions[r.node] = r.version
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrNodeVersions, err)
	}
	return versions, nil
}

func (f *Fetcher) download(ctx context.Context, path string) ([]byte, error) {
	u := fmt.Sprintf("%s%s/%s/%s/%s", f.rawBaseURL, f.owner, f.repo, f.ref, path)
	req, err := f.client.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kerrors.ErrNodeVersions, path, err)
	}

	var buf bytes.Buffer
	if _, err := f.client.Do(ctx, req, &buf); err != nil {
		return nil, fmt.Errorf("%w: download %s: %w", kerrors.ErrNodeVersions, path, err)
	}
	return buf.Bytes(), nil
}

// NodeName returns the node type for a node source path such as
// packages/nodes-base/nodes/Slack/V2/SlackV2.node.ts ("Slack").
func NodeName(path string) (string, bool) {
	m := nodeFileRe.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractVersion finds the first "version:" declaration in a node source
// file. Both scalar (version: 2) and list (version: [1, 1.1, 2]) forms are
// understood; the integer part of the largest entry is returned.
func ExtractVersion(src []byte) (int, bool) {
	m := versionRe.FindSubmatch(src)
	if m == nil {
		return 0, false
	}

	best, found := 0, false
	for _, num := range numberRe.FindAll(integerParts(m[1]), -1) {
		v, err := strconv.Atoi(string(num))
		if err != nil {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	return best, found
}

// integerParts drops fractional parts so "1.1" counts as 1, not 1 and 1.
func integerParts(list []byte) []byte {
	var out []byte
	skipping := false
	for _, c := range list {
		switch {
		case c == '.':
			skipping = true
		case c >= '0' && c <= '9':
			if !skipping {
				out = append(out, c)
			}
		default:
			skipping = false
			out = append(out, ' ')
		}
	}
	return out
}
