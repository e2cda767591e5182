package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/go-git/go-git/v5"
	"github.com/google/go-github/v49/github"
	"golang.org/x/oauth2"
)

// Process tracks the state of a release as it moves through its steps. A
// step that cannot continue calls Choke, which runs the registered cleanup
// actions and exits.
type Process struct {
	Config

	gh     *github.Client
	repo   *git.Repository
	remote *git.Remote
	wc     *git.Worktree

	cleanupActions []func()

	addFiles []string
}

// ToAdd records a file to include in the release commit.
func (p *Process) ToAdd(fn string) {
	if p.addFiles == nil {
		p.addFiles = []string{}
	}
	p.addFiles = append(p.addFiles, fn)
}

// ForCleanup records an action to undo a completed step if a later one
// chokes.
func (p *Process) ForCleanup(action func()) {
	if p.cleanupActions == nil {
		p.cleanupActions = make([]func(), 0, 10)
	}
	p.cleanupActions = append(p.cleanupActions, action)
}

// Cleanup runs the recorded cleanup actions, most recent first.
func (p *Process) Cleanup() {
	for i := len(p.cleanupActions) - 1; i >= 0; i-- {
		action := p.cleanupActions[i]
		action()
	}
}

// Choke reports the failure, undoes completed steps, and exits.
func (p *Process) Choke(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "Failed: %s\n", msg)
	_, _ = fmt.Fprintln(os.Stderr, "Cancelling release.")
	p.Cleanup()
	os.Exit(1)
}

// Chokef is Choke with a format string.
func (p *Process) Chokef(f string, args ...any) {
	p.Choke(fmt.Sprintf(f, args...))
}

func initializeProcess(
	ctx context.Context,
	cfg *Config,
) (*Process, error) {
	p := &Process{
		Config: *cfg,
	}

	err := p.setupGithubClient(ctx)
	if err != nil {
		return nil, err
	}
	p.SetupGitRepo()

	return p, nil
}

func (p *Process) completeInitialization(v string) error {
	v = strings.TrimPrefix(v, "v")

	var err error
	p.Version, err = semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", v, err)
	}
	p.Branch = "release-v" + p.Version.String()
	p.Tag = "v" + p.Version.String()
	p.Today = time.Now().Format("2006-01-02")

	return nil
}

// NewProcess starts the release process for the given version string.
func NewProcess(ctx context.Context, v string, cfg *Config) (*Process, error) {
	p, err := initializeProcess(ctx, cfg)
	if err != nil {
		return nil, err
	}

	err = p.completeInitialization(v)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// NewProcessContinuation picks the release process back up on an existing
// release branch, taking the version from the branch name.
func NewProcessContinuation(ctx context.Context, cfg *Config) (*Process, error) {
	p, err := initializeProcess(ctx, cfg)
	if err != nil {
		return nil, err
	}

	headRef, err := p.repo.Head()
	if err != nil {
		p.Chokef("unable to find HEAD: %v", err)
	}

	const releasePrefix = "refs/heads/release-v"
	if !strings.HasPrefix(string(headRef.Name()), releasePrefix) {
		p.Choke("you must be on the release branch to finish the process")
	}

	v := string(headRef.Name()[len(releasePrefix):])
	err = p.completeInitialization(v)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Process) setupGithubClient(ctx context.Context) error {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return errors.New("GITHUB_TOKEN environment variable is missing")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	p.gh = github.NewClient(tc)

	return nil
}

// SetupGitRepo opens the repository in the current directory and finds the
// origin remote and working copy.
func (p *Process) SetupGitRepo() {
	l, err := git.PlainOpen(".")
	if err != nil {
		p.Chokef("unable to open git repository at .: %v", err)
	}

	p.repo = l

	r, err := p.repo.Remote("origin")
	if err != nil {
		p.Chokef("unable to connect to remote origin: %v", err)
	}

	p.remote = r

	w, err := p.repo.Worktree()
	if err != nil {
		p.Chokef("unable to examine the working copy: %v", err)
	}

	p.wc = w
}
