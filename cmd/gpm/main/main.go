package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/gpm/cmd/gpm"
	"github.com/arthur-debert/gpm/pkg/ui/output/styles"
)

func main() {
	rootCmd := gpm.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
