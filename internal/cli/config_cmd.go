package cli

import (
	"fmt"

	"logdeck/internal/config"
)

// ConfigCmd shows the effective configuration and where it came from.
type ConfigCmd struct{}

// Run executes the config command.
func (c *ConfigCmd) Run(globals *Globals) error {
	cfg := globals.Config

	source := config.ConfigFile()
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(globals.Stdout, "config file:      %s\n", source)
	fmt.Fprintf(globals.Stdout, "max_lines:        %d\n", cfg.MaxLines)
	fmt.Fprintf(globals.Stdout, "auto_scroll:      %t\n", cfg.AutoScroll)
	fmt.Fprintf(globals.Stdout, "channel_capacity: %d\n", cfg.ChannelCapacity)
	fmt.Fprintf(globals.Stdout, "drain_interval:   %s\n", cfg.DrainInterval)
	fmt.Fprintf(globals.Stdout, "drain_batch:      %d\n", cfg.DrainBatch)
	fmt.Fprintf(globals.Stdout, "level:            %s\n", cfg.Level)
	fmt.Fprintf(globals.Stdout, "no_color:         %t\n", cfg.NoColor)
	return nil
}
