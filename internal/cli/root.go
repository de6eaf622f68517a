package cli

import (
	"fmt"
	"io"
	"os"

	"logdeck/internal/config"
	"logdeck/internal/domain"
)

// CLI is the root command structure for logdeck.
type CLI struct {
	// Global flags
	Level   string `short:"l" default:"${config_level}" enum:"trace,debug,info,success,warning,error,critical" help:"Minimum severity shown"`
	NoColor bool   `help:"Disable styled output"`
	Verbose bool   `short:"v" help:"Show internal diagnostics (drops, worker lifecycle)"`

	// Commands
	View    ViewCmd    `cmd:"" default:"withargs" help:"Interactive live console"`
	Tail    TailCmd    `cmd:"" help:"Stream the console to stdout (for pipes and CI)"`
	Emit    EmitCmd    `cmd:"" help:"Write test events as wire frames to stdout"`
	Levels  LevelsCmd  `cmd:"" help:"Show the severity to display-category mapping"`
	Config  ConfigCmd  `cmd:"" help:"Show effective configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands.
type Globals struct {
	Level   domain.Severity
	NoColor bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
}

// NewGlobals creates Globals from parsed flags and loaded config.
func NewGlobals(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	level := cli.Level
	if level == "" {
		level = cfg.Level
	}
	if cli.NoColor || cfg.NoColor {
		cli.NoColor = true
	}
	return &Globals{
		Level:   domain.ParseSeverity(level),
		NoColor: cli.NoColor,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
}

// Debug prints a diagnostic line when verbose mode is on.
func (g *Globals) Debug(format string, args ...any) {
	if g.Verbose {
		fmt.Fprintf(g.Stderr, "debug: "+format+"\n", args...)
	}
}
