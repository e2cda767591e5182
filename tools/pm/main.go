package main

import (
	"github.com/zostay/go-httpmsg/tools/pm/cmd"
)

func main() {
	cmd.Execute()
}
