package release

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/go-github/v49/github"

	"github.com/zostay/go-httpmsg/tools/pm/changes"
)

// CheckGitCleanliness chokes unless the working copy is a clean checkout of
// the target branch in sync with origin.
func (p *Process) CheckGitCleanliness() {
	headRef, err := p.repo.Head()
	if err != nil {
		p.Chokef("unable to find HEAD: %v", err)
	}

	if headRef.Name() != p.TargetBranchRefName() {
		p.Chokef("you must checkout %s to release", p.TargetBranch)
	}

	remoteRefs, err := p.remote.List(&git.ListOptions{})
	if err != nil {
		p.Chokef("unable to list remote git references: %v", err)
	}

	var targetRef *plumbing.Reference
	for _, ref := range remoteRefs {
		if ref.Name() == p.TargetBranchRefName() {
			targetRef = ref
			break
		}
	}

	if targetRef == nil {
		p.Chokef("origin has no branch named %s", p.TargetBranch)
	}

	if headRef.Hash() != targetRef.Hash() {
		p.Choke("local copy differs from remote, you need to push or pull")
	}

	stat, err := p.wc.Status()
	if err != nil {
		p.Chokef("unable to check working copy status: %v", err)
	}

	if !stat.IsClean() {
		p.Choke("your working copy is dirty")
	}
}

// LintChangelog chokes unless the changelog is ready to start a release,
// meaning it passes every check and has a WIP section to fix up.
func (p *Process) LintChangelog() {
	changelog, err := os.Open(p.Changelog)
	if err != nil {
		p.Chokef("unable to open %s file: %v", p.Changelog, err)
	}

	linter := changes.NewLinter(changelog, changes.CheckPreRelease)
	err = linter.Check()
	if err != nil {
		p.Chokef("%v", err)
	}
}

// MakeReleaseBranch creates the release branch and switches the working copy
// to it.
func (p *Process) MakeReleaseBranch() {
	headRef, err := p.repo.Head()
	if err != nil {
		p.Chokef("unable to find HEAD: %v", err)
	}

	err = p.wc.Checkout(&git.CheckoutOptions{
		Hash:   headRef.Hash(),
		Branch: p.BranchRefName(),
		Create: true,
	})
	if err != nil {
		p.Chokef("unable to create release branch %s: %v", p.Branch, err)
	}

	p.ForCleanup(func() {
		_ = p.wc.Checkout(&git.CheckoutOptions{Branch: p.TargetBranchRefName()})
		_ = p.repo.Storer.RemoveReference(p.BranchRefName())
	})
}

// FixupChangelog replaces the changelog's WIP heading with the version and
// date of this release.
func (p *Process) FixupChangelog() {
	r, err := os.Open(p.Changelog)
	if err != nil {
		p.Chokef("unable to open %s: %v", p.Changelog, err)
	}

	newChangelog := p.Changelog + ".new"

	w, err := os.Create(newChangelog)
	if err != nil {
		p.Chokef("unable to create %s: %v", newChangelog, err)
	}

	p.ForCleanup(func() { _ = os.Remove(newChangelog) })

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if line == "WIP" || line == "WIP  TBD" {
			_, _ = fmt.Fprintf(w, "%s  %s\n", p.Tag, p.Today)
		} else {
			_, _ = fmt.Fprintln(w, line)
		}
	}

	_ = r.Close()
	err = w.Close()
	if err != nil {
		p.Chokef("unable to close %s: %v", newChangelog, err)
	}

	err = os.Rename(newChangelog, p.Changelog)
	if err != nil {
		p.Chokef("unable to overwrite %s with %s: %v", p.Changelog, newChangelog, err)
	}

	p.ToAdd(p.Changelog)
}

// AddAndCommit commits the files recorded by ToAdd to the release branch.
func (p *Process) AddAndCommit() {
	for _, fn := range p.addFiles {
		_, err := p.wc.Add(fn)
		if err != nil {
			p.Chokef("error adding file %s to git: %v", fn, err)
		}
	}

	_, err := p.wc.Commit("releng: "+p.Tag, &git.CommitOptions{})
	if err != nil {
		p.Chokef("error committing changes to git: %v", err)
	}
}

// PushReleaseBranch pushes the release branch to origin.
func (p *Process) PushReleaseBranch() {
	err := p.repo.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []config.RefSpec{p.BranchRefSpec()},
	})
	if err != nil {
		p.Chokef("error pushing changes to github: %v", err)
	}

	p.ForCleanup(func() {
		_ = p.remote.Push(&git.PushOptions{
			RemoteName: "origin",
			RefSpecs:   []config.RefSpec{p.BranchRefSpec()},
			Prune:      true,
		})
	})
}

// CreateGithubPullRequest opens the pull request that merges the release
// branch into the target branch.
func (p *Process) CreateGithubPullRequest(ctx context.Context) {
	_, _, err := p.gh.PullRequests.Create(ctx, p.Owner, p.Project, &github.NewPullRequest{
		Title: github.String("Release " + p.Tag),
		Head:  github.String(p.Branch),
		Base:  github.String(p.TargetBranch),
		Body: github.String(
			fmt.Sprintf("Pull request to release %s of %s.", p.Tag, p.Project),
		),
	})
	if err != nil {
		p.Chokef("unable to create pull request: %v", err)
	}
}
