package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-httpmsg/tools/pm/changes"
	"github.com/zostay/go-httpmsg/tools/pm/release"
)

var (
	lintChangelogCmd = &cobra.Command{
		Use:   "lint-changelog",
		Short: "Check the changelog file for problems",
		Args:  cobra.NoArgs,
		Run:   LintChangelog,
	}

	isRelease    bool
	isPreRelease bool
)

func init() {
	lintChangelogCmd.Flags().BoolVarP(&isRelease, "release", "r", false, "verify the changelog is ready for release")
	lintChangelogCmd.Flags().BoolVarP(&isPreRelease, "pre-release", "p", false, "verify the changelog is ready to start a release")
}

func LintChangelog(_ *cobra.Command, _ []string) {
	cfg, err := release.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "unable to load project settings: %v\n", err)
		os.Exit(1)
	}

	changelog, err := os.Open(cfg.Changelog)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "unable to open %s file: %v\n", cfg.Changelog, err)
		os.Exit(1)
	}

	mode := changes.CheckStandard
	switch {
	case isRelease:
		mode = changes.CheckRelease
	case isPreRelease:
		mode = changes.CheckPreRelease
	}

	linter := changes.NewLinter(changelog, mode)
	err = linter.Check()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
