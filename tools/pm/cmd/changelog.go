package cmd

import "github.com/spf13/cobra"

var (
	changelogCmd = &cobra.Command{
		Use:   "changelog",
		Short: "work with the Changes.md change log",
	}
)

func init() {
	changelogCmd.AddCommand(lintChangelogCmd)
	changelogCmd.AddCommand(extractChangelogCmd)
}
