package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"logdeck/internal/cli"
	"logdeck/internal/config"
)

const quickStart = `logdeck - live log console for multi-process jobs

START HERE:
  logdeck view -x "worker --flag"

Flags:
  -x    Worker command to spawn and capture (repeatable)

Other useful commands:
  logdeck tail -x "worker"              Stream to stdout (pipes, CI)
  some-worker | logdeck tail            Capture wire frames from stdin
  logdeck levels                        Show the severity mapping
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config-derived defaults; CLI flags override when provided
	vars := kong.Vars{
		"config_level": cfg.Level,
	}

	ctx := kong.Parse(&c,
		kong.Name("logdeck"),
		kong.Description("logdeck: live log console for multi-process jobs\n\nSTART HERE: logdeck view -x \"<worker command>\""),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobals(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
