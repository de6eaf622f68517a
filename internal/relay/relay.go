// Package relay feeds the capture sink from child processes. A worker
// writes wire frames to its stdout; the relay decodes them and hands the
// events to the sink. Unparseable lines are counted and skipped, never
// fatal: a noisy child must not take the console down.
package relay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"logdeck/internal/capture"
	"logdeck/internal/domain"
	"logdeck/internal/wire"
)

const (
	initialLineBuf = 64 * 1024
	maxLineBytes   = 1024 * 1024

	// Emit a diagnostic event every this many parse failures.
	parseDropNotice = 500
)

// Relay decodes wire frames from a reader into the sink.
type Relay struct {
	sink *capture.Sink

	mu         sync.Mutex
	frames     int
	parseDrops int
}

// New creates a relay feeding sink.
func New(sink *capture.Sink) *Relay {
	return &Relay{sink: sink}
}

// Run reads frames until the reader is exhausted or the context is
// cancelled. The per-origin order of decoded events matches the order
// the child wrote them.
func (r *Relay) Run(ctx context.Context, reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, initialLineBuf), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		event, err := wire.Decode(line)
		if errors.Is(err, wire.ErrSkip) {
			continue
		}
		if err != nil {
			r.recordParseDrop()
			continue
		}

		r.mu.Lock()
		r.frames++
		r.mu.Unlock()
		r.sink.Capture(event)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("relay: line exceeds %d bytes: %w", maxLineBytes, err)
		}
		return fmt.Errorf("relay: read: %w", err)
	}
	return nil
}

func (r *Relay) recordParseDrop() {
	r.mu.Lock()
	r.parseDrops++
	drops := r.parseDrops
	r.mu.Unlock()

	if drops%parseDropNotice == 0 {
		r.sink.Capture(domain.Event{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("relay: %d lines could not be parsed", drops),
			Origin:   "logdeck",
		})
	}
}

// Frames returns the number of decoded frames.
func (r *Relay) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// ParseDrops returns the number of skipped unparseable lines.
func (r *Relay) ParseDrops() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parseDrops
}
