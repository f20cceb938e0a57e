package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/gravitational/trace"

	"github.com/phraselab/phraselab-cli/lib/logger"
)

var cli CLI

func main() {
	logger.Init()

	ctx := kong.Parse(
		&cli,
		kong.UsageOnError(),
		kong.Configuration(KongTOMLResolver, ".phraselab.toml"),
		kong.Name(toolName),
		kong.Description("Command-line client for the Phraselab translation platform"),
	)

	if cli.Debug {
		if err := logger.Setup(logger.Config{Severity: "debug"}); err != nil {
			ctx.FatalIfErrorf(err)
		}
	}

	err := ctx.Run()
	if err != nil && cli.Debug {
		fmt.Println(trace.DebugReport(err))
	}
	ctx.FatalIfErrorf(err)
}
