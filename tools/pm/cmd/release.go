package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-httpmsg/tools/pm/release"
)

var (
	releaseCmd = &cobra.Command{
		Use:   "release",
		Short: "commands related to software releases",
	}

	targetBranch string
)

func init() {
	releaseCmd.AddCommand(startReleaseCmd)
	releaseCmd.AddCommand(finishReleaseCmd)

	releaseCmd.PersistentFlags().StringVar(&targetBranch, "target-branch", "", "the branch to merge into during release (overrides pm.toml)")
}

func MakeReleaseConfig() (*release.Config, error) {
	cfg, err := release.LoadConfig()
	if err != nil {
		return nil, err
	}

	if targetBranch != "" {
		cfg.TargetBranch = targetBranch
	}

	return cfg, nil
}
