package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"ramos/internal/cmd"
	"ramos/internal/version"
)

func main() {
	var cli cmd.CLI
	cli.AppVersion = version.Version

	ctx := kong.Parse(&cli,
		kong.Name("ramos"),
		kong.Description(version.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)
	defer cli.Close()

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
