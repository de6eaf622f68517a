package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"logdeck/internal/domain"
)

// LevelsCmd prints the fixed severity to display-category mapping.
type LevelsCmd struct{}

// Run executes the levels command.
func (c *LevelsCmd) Run(globals *Globals) error {
	t := table.NewWriter()
	t.SetOutputMirror(globals.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"SEVERITY", "CATEGORY", "PRIORITY"})
	for _, sev := range domain.Severities() {
		t.AppendRow(table.Row{string(sev), string(sev.Category()), sev.Priority()})
	}
	t.Render()
	return nil
}
