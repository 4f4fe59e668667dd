package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	_ "go.uber.org/automaxprocs"
)

// Build information injected at build time via ldflags
var Version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("docs-pages"),
		kong.Description("Not-found search and status report pages for the documentation site."),
		kong.Vars{"version": Version},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
