package release

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/google/go-github/v49/github"

	"github.com/zostay/go-httpmsg/tools/pm/changes"
)

// CaptureChangesInfo loads the bullets for the changelog section relevant to
// this release into the process configuration for use when creating the
// release later.
func (p *Process) CaptureChangesInfo() {
	cr, err := changes.ExtractSection(p.Changelog, p.Tag)
	if err != nil {
		p.Chokef("unable to get log of changes: %v", err)
	}

	chgs, err := io.ReadAll(cr)
	if err != nil {
		p.Chokef("unable to read log of changes: %v", err)
	}

	p.ChangesInfo = string(chgs)
}

// requiredChecks names the status checks the target branch's protection
// demands. A branch with no protection configured demands nothing.
func (p *Process) requiredChecks(ctx context.Context) []string {
	bp, res, err := p.gh.Repositories.GetBranchProtection(ctx, p.Owner, p.Project, p.TargetBranch)
	if err != nil {
		if res != nil && res.StatusCode == 404 {
			return nil
		}
		p.Chokef("unable to get protection for branch %s: %v", p.TargetBranch, err)
	}

	rsc := bp.GetRequiredStatusChecks()
	if rsc == nil {
		return nil
	}

	names := make([]string, len(rsc.Checks))
	for i, check := range rsc.Checks {
		names[i] = check.Context
	}
	return names
}

// CheckReadyForMerge chokes unless every status check the target branch
// requires has completed successfully on the release branch.
func (p *Process) CheckReadyForMerge(ctx context.Context) {
	required := p.requiredChecks(ctx)
	if len(required) == 0 {
		return
	}

	crs, _, err := p.gh.Checks.ListCheckRunsForRef(ctx, p.Owner, p.Project, p.Branch, &github.ListCheckRunsOptions{})
	if err != nil {
		p.Chokef("unable to list check runs for branch %s: %v", p.Branch, err)
	}

	passed := make(map[string]bool, len(crs.CheckRuns))
	for _, run := range crs.CheckRuns {
		passed[run.GetName()] =
			run.GetStatus() == "completed" &&
				run.GetConclusion() == "success"
	}

	for _, name := range required {
		if !passed[name] {
			p.Chokef("cannot merge release branch because it has not passed check %q", name)
		}
	}
}

// MergePullRequest merges the release pull request into the target branch.
func (p *Process) MergePullRequest(ctx context.Context) {
	prs, _, err := p.gh.PullRequests.List(ctx, p.Owner, p.Project, &github.PullRequestListOptions{})
	if err != nil {
		p.Chokef("unable to list pull requests: %v", err)
	}

	prId := 0
	for _, pr := range prs {
		if pr.Head.GetRef() == p.Branch {
			prId = pr.GetNumber()
			break
		}
	}

	if prId == 0 {
		p.Chokef("cannot find pull request for branch %s", p.Branch)
	}

	msg := fmt.Sprintf("Merging release branch for %s.", p.Tag)
	m, _, err := p.gh.PullRequests.Merge(ctx, p.Owner, p.Project, prId, msg, &github.PullRequestOptions{})
	if err != nil {
		p.Chokef("unable to merge pull request %d: %v", prId, err)
	}

	if !m.GetMerged() {
		p.Chokef("failed to merge pull request %d", prId)
	}
}

// TagRelease creates and pushes a tag for the newly merged release on the
// target branch.
func (p *Process) TagRelease() {
	err := p.wc.Checkout(&git.CheckoutOptions{
		Branch: p.TargetBranchRefName(),
	})
	if err != nil {
		p.Chokef("unable to switch to %s branch: %v", p.TargetBranch, err)
	}

	headRef, err := p.repo.Head()
	if err != nil {
		p.Chokef("unable to get HEAD ref of %s branch: %v", p.TargetBranch, err)
	}

	head := headRef.Hash()
	_, err = p.repo.CreateTag(p.Tag, head, &git.CreateTagOptions{
		Message: fmt.Sprintf("Release tag for %s", p.Tag),
	})
	if err != nil {
		p.Chokef("unable to tag release %s: %v", p.Tag, err)
	}

	p.ForCleanup(func() { _ = p.repo.DeleteTag(p.Tag) })

	err = p.repo.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []config.RefSpec{p.TagRefSpec()},
	})
	if err != nil {
		p.Chokef("unable to push tags to origin: %v", err)
	}

	p.ForCleanup(func() {
		_ = p.remote.Push(&git.PushOptions{
			RemoteName: "origin",
			RefSpecs:   []config.RefSpec{p.TagRefSpec()},
			Prune:      true,
		})
	})
}

// CreateRelease creates a release on github with the captured changelog
// section as its body.
func (p *Process) CreateRelease(ctx context.Context) {
	releaseName := "Release " + p.Tag
	_, _, err := p.gh.Repositories.CreateRelease(ctx, p.Owner, p.Project, &github.RepositoryRelease{
		TagName:              github.String(p.Tag),
		Name:                 github.String(releaseName),
		Body:                 github.String(p.ChangesInfo),
		Draft:                github.Bool(false),
		Prerelease:           github.Bool(false),
		GenerateReleaseNotes: github.Bool(false),
		MakeLatest:           github.String("true"),
	})

	if err != nil {
		p.Chokef("failed to create release %q: %v", releaseName, err)
	}
}
