package relay

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"logdeck/internal/capture"
	"logdeck/internal/domain"
)

// RunCommands spawns one worker per argv and captures their output until
// every worker exits or the context is cancelled. Workers run
// independently: one failing does not stop the others. The first error
// is returned.
//
// Deployment contract: a worker's stdout must carry wire frames for its
// logs to be captured as structured events; its stderr is captured
// line-by-line as ERROR events either way.
func RunCommands(ctx context.Context, sink *capture.Sink, commands [][]string) error {
	g := new(errgroup.Group)
	for _, argv := range commands {
		g.Go(func() error {
			return runOne(ctx, sink, argv)
		})
	}
	return g.Wait()
}

func runOne(ctx context.Context, sink *capture.Sink, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("relay: empty worker command")
	}
	origin := filepath.Base(argv[0])

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	stderr := capture.NewWriter(sink, origin, domain.SeverityError)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("relay: stdout pipe for %s: %w", origin, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("relay: start %s: %w", origin, err)
	}

	capture.Emitf(domain.SeverityDebug, "logdeck", "worker %s started (pid %d)", origin, cmd.Process.Pid)

	r := New(sink)
	runErr := r.Run(ctx, stdout)

	waitErr := cmd.Wait()
	_ = stderr.Close()

	if waitErr != nil && ctx.Err() == nil {
		capture.Emitf(domain.SeverityError, "logdeck", "worker %s exited: %v", origin, waitErr)
	} else {
		capture.Emitf(domain.SeverityDebug, "logdeck", "worker %s exited", origin)
	}

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}
