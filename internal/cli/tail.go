package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"logdeck/internal/display"
	"logdeck/internal/domain"
	"logdeck/internal/pipeline"
	"logdeck/internal/relay"
)

// TailCmd streams the console to stdout without the TUI, for pipes,
// CI logs, and agents. Events come from spawned workers or, when piped,
// from wire frames on stdin.
type TailCmd struct {
	Exec  []string `short:"x" help:"Worker command to spawn and capture (repeatable, split on spaces)"`
	Stdin bool     `help:"Read wire frames from stdin"`
}

// Run executes the tail command.
func (c *TailCmd) Run(globals *Globals) error {
	cfg := globals.Config
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	styled := !globals.NoColor
	if f, ok := globals.Stdout.(*os.File); ok {
		styled = styled && isatty.IsTerminal(f.Fd())
	}

	fallback, err := zap.NewProduction()
	if err != nil {
		fallback = zap.NewNop()
	}

	view := &streamView{out: globals.Stdout}
	p := pipeline.New(view, pipeline.Options{
		ChannelCapacity: cfg.ChannelCapacity,
		Display: display.Options{
			Formatter:   display.NewFormatter(styled),
			MaxLines:    cfg.MaxLines,
			Interval:    cfg.DrainInterval,
			Batch:       cfg.DrainBatch,
			AutoScroll:  &cfg.AutoScroll,
			MinSeverity: globals.Level,
			Fallback:    fallback,
		},
	})
	p.Start()
	defer p.Stop()

	commands := splitCommands(c.Exec)
	switch {
	case len(commands) > 0:
		err = relay.RunCommands(ctx, p.Sink(), commands)
	case c.Stdin || !stdinIsTerminal():
		err = relay.New(p.Sink()).Run(ctx, os.Stdin)
	default:
		return fmt.Errorf("tail: nothing to capture; pass --exec or pipe wire frames to stdin")
	}
	if err != nil && ctx.Err() == nil {
		return err
	}

	// Producers are done; give the controller a chance to drain what is
	// already buffered before teardown discards it.
	waitDrained(ctx, p.Channel(), cfg.DrainInterval, 2*time.Second)
	return nil
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}

// waitDrained polls until the channel is empty or the timeout expires.
func waitDrained(ctx context.Context, ch *pipeline.Channel, interval, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if ch.Len() == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// streamView prints rendered lines to a writer. ScrollToLatest is
// meaningless for a stream and ignored.
type streamView struct {
	out io.Writer
}

func (v *streamView) OnLogLine(text string, _ domain.Category) error {
	_, err := fmt.Fprintln(v.out, text)
	return err
}

func (v *streamView) ScrollToLatest() {}
