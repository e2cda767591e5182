package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zostay/go-httpmsg/tools/pm/release"
)

var (
	startReleaseCmd = &cobra.Command{
		Use:   "start-release <version>",
		Short: "Start a release",
		Args:  cobra.ExactArgs(1),
		RunE:  StartRelease,
	}
)

func StartRelease(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := MakeReleaseConfig()
	if err != nil {
		return err
	}

	process, err := release.NewProcess(ctx, args[0], cfg)
	if err != nil {
		return err
	}

	process.CheckGitCleanliness()
	process.LintChangelog()
	process.MakeReleaseBranch()
	process.FixupChangelog()
	process.AddAndCommit()
	process.PushReleaseBranch()
	process.CreateGithubPullRequest(ctx)

	return nil
}
