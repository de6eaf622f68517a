package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"logdeck/internal/capture"
	"logdeck/internal/display"
	"logdeck/internal/domain"
	"logdeck/internal/pipeline"
	"logdeck/internal/relay"
	"logdeck/internal/tui"
)

// ViewCmd runs the interactive live console.
type ViewCmd struct {
	Exec  []string `short:"x" help:"Worker command to spawn and capture (repeatable, split on spaces)"`
	Title string   `help:"Console title" default:"console"`
}

// Run executes the view command.
func (c *ViewCmd) Run(globals *Globals) error {
	cfg := globals.Config
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	view := tui.NewChannelView(cfg.ChannelCapacity)
	p := pipeline.New(view, pipeline.Options{
		ChannelCapacity: cfg.ChannelCapacity,
		Display: display.Options{
			Formatter:   display.NewFormatter(!globals.NoColor),
			MaxLines:    cfg.MaxLines,
			Interval:    cfg.DrainInterval,
			Batch:       cfg.DrainBatch,
			AutoScroll:  &cfg.AutoScroll,
			MinSeverity: globals.Level,
			// The terminal belongs to bubbletea while the console runs;
			// consumer-side failures must not scribble over it.
			Fallback: zap.NewNop(),
		},
	})
	p.Start()
	defer p.Stop()

	// Everything the application logs through this logger lands in the
	// console alongside worker output.
	log := zap.New(capture.NewCore(p.Sink(), "logdeck"))
	log.Info("console started")

	commands := splitCommands(c.Exec)
	if len(commands) > 0 {
		go func() {
			if err := relay.RunCommands(ctx, p.Sink(), commands); err != nil && ctx.Err() == nil {
				capture.Emitf(domain.SeverityError, "logdeck", "worker supervision: %v", err)
			}
		}()
	}

	title := c.Title
	if title == "console" && len(commands) > 0 {
		title = strings.Join(commands[0], " ")
	}

	prog := tea.NewProgram(
		tui.New(title, p.Controller(), view, p.Channel()),
		tea.WithAltScreen(),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// splitCommands parses repeatable --exec values into argv slices. Values
// are split on whitespace; shell quoting is not interpreted.
func splitCommands(specs []string) [][]string {
	var commands [][]string
	for _, spec := range specs {
		argv := strings.Fields(spec)
		if len(argv) > 0 {
			commands = append(commands, argv)
		}
	}
	return commands
}
