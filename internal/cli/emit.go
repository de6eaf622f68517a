package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"logdeck/internal/domain"
	"logdeck/internal/wire"
)

// EmitCmd writes test events to stdout as wire frames, so a shell can
// act as a producer: `logdeck emit -s error boom | logdeck tail`.
type EmitCmd struct {
	Severity string        `short:"s" default:"info" enum:"trace,debug,info,success,warning,error,critical" help:"Event severity"`
	Origin   string        `default:"emit" help:"Producer identifier carried on each frame"`
	Count    int           `short:"n" default:"1" help:"Number of events to emit"`
	Interval time.Duration `default:"0s" help:"Delay between events"`
	Message  []string      `arg:"" optional:"" help:"Message text"`
}

// Run executes the emit command.
func (c *EmitCmd) Run(globals *Globals) error {
	enc := wire.NewEncoder(globals.Stdout)
	severity := domain.ParseSeverity(c.Severity)
	pid := os.Getpid()

	for i := 0; i < c.Count; i++ {
		msg := strings.Join(c.Message, " ")
		if msg == "" {
			msg = fmt.Sprintf("logdeck emit test event %d", i+1)
		}
		err := enc.Encode(domain.Event{
			Timestamp: time.Now(),
			Severity:  severity,
			Message:   msg,
			Origin:    c.Origin,
			PID:       pid,
		})
		if err != nil {
			return fmt.Errorf("emit: %w", err)
		}
		if c.Interval > 0 && i < c.Count-1 {
			time.Sleep(c.Interval)
		}
	}
	return nil
}
