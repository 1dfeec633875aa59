package main

import (
	"fmt"
	"os"

	"github.com/readrawhex/logh/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "logh: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
