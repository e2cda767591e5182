package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zostay/go-httpmsg/header"
)

var (
	rootCmd = &cobra.Command{
		Use:   "corpus",
		Short: "Tools for exercising header blocks by hand",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				header.Verbose = true
				header.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
			}
		},
	}

	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report the conditions the header store tolerates")
}

func Execute() error {
	return rootCmd.Execute()
}
