package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-httpmsg/header"
)

var oneCmd = &cobra.Command{
	Use:   "one header-block",
	Short: "Shows the diff of a single header block round-trip",
	Args:  cobra.ExactArgs(1),
	Run:   RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

func RunOne(cmd *cobra.Command, args []string) {
	path := args[0]
	block, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	h, err := header.Parse(block, header.Meh)
	if err != nil {
		badStart := &header.BadStartError{}
		if !errors.As(err, &badStart) {
			panic(err)
		}
		fmt.Printf("skipped junk before the header: %q\n", string(badStart.BadStart))
	}

	fmt.Printf("path = %s\n", path)

	rt := h.String()
	if rt == string(block) {
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(block), rt, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Println(dmp.DiffPrettyText(diffs))
}
