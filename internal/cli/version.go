package cli

import "fmt"

// Build metadata, set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// VersionCmd shows version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(globals *Globals) error {
	fmt.Fprintf(globals.Stdout, "logdeck %s (commit %s, built %s)\n", Version, Commit, Date)
	return nil
}
