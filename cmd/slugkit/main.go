package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/slugkit/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
