package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/gpm/cmd/gpm"
	"github.com/arthur-debert/gpm/internal/version"
)

func main() {
	rootCmd := gpm.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "GPM",
		Section: "1",
		Source:  "gpm " + version.Version,
		Manual:  "gpm manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
