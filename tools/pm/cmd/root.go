package cmd

import "github.com/spf13/cobra"

var (
	rootCmd = &cobra.Command{
		Use:   "pm",
		Short: "maintenance and release tools for go-httpmsg",
	}
)

func init() {
	rootCmd.AddCommand(changelogCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(templateFileCmd)
}

// Execute runs the pm command line.
func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}
