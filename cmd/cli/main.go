package main

import (
	"fmt"
	"os"

	"github.com/de-tools/consumption-atlas/pkg/runtime/terminal"
	"github.com/de-tools/consumption-atlas/pkg/store/sources"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: sources.NewRegistry(),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
