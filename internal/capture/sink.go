// Package capture is the single ingestion point of the log pipeline. A
// Sink intercepts every emission that reaches it - from the process-wide
// registry, from a zap logger built on NewCore, or from a child-process
// relay - normalizes it into a domain.Event and hands it to the bounded
// channel. Producers never block and never observe pipeline failures.
package capture

import (
	"fmt"
	"sync"
	"time"

	"logdeck/internal/domain"
)

// EventWriter accepts normalized events. Satisfied by *pipeline.Channel.
type EventWriter interface {
	Send(domain.Event)
}

// Sink converts raw emissions into events and forwards them while
// installed. Safe for concurrent use from any goroutine.
type Sink struct {
	mu        sync.RWMutex
	out       EventWriter
	installed bool
}

// NewSink creates a sink writing to out. The sink delivers nothing until
// Install is called.
func NewSink(out EventWriter) *Sink {
	return &Sink{out: out}
}

// Install registers the sink in the process-wide registry. Idempotent:
// installing twice does not duplicate delivery.
func (s *Sink) Install() {
	s.mu.Lock()
	already := s.installed
	s.installed = true
	s.mu.Unlock()

	if !already {
		register(s)
	}
}

// Uninstall deregisters the sink. After it returns no further events are
// delivered, even if producers keep emitting.
func (s *Sink) Uninstall() {
	s.mu.Lock()
	was := s.installed
	s.installed = false
	s.mu.Unlock()

	if was {
		deregister(s)
	}
}

// Installed reports whether the sink is currently registered.
func (s *Sink) Installed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.installed
}

// Capture normalizes a raw event and forwards it. Unknown severities map
// to INFO and a zero timestamp is stamped with the current time; a
// malformed record is recovered, never rejected.
func (s *Sink) Capture(e domain.Event) {
	s.mu.RLock()
	installed := s.installed
	out := s.out
	s.mu.RUnlock()

	if !installed || out == nil {
		return
	}
	e.Severity = domain.ParseSeverity(string(e.Severity))
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	out.Send(e)
}

// registry is the ambient logging mechanism: process-wide state with an
// explicit install/uninstall lifecycle rather than singleton magic.
var registry struct {
	mu    sync.RWMutex
	sinks []*Sink
}

func register(s *Sink) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, existing := range registry.sinks {
		if existing == s {
			return
		}
	}
	registry.sinks = append(registry.sinks, s)
}

func deregister(s *Sink) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, existing := range registry.sinks {
		if existing == s {
			registry.sinks = append(registry.sinks[:i], registry.sinks[i+1:]...)
			return
		}
	}
}

// Emit fans an event out to every installed sink. Any code anywhere in
// the process can call it; with no sink installed it is a no-op.
func Emit(severity domain.Severity, origin, message string) {
	registry.mu.RLock()
	sinks := make([]*Sink, len(registry.sinks))
	copy(sinks, registry.sinks)
	registry.mu.RUnlock()

	e := domain.Event{
		Timestamp: time.Now(),
		Severity:  severity,
		Message:   message,
		Origin:    origin,
	}
	for _, s := range sinks {
		s.Capture(e)
	}
}

// Emitf is Emit with fmt formatting.
func Emitf(severity domain.Severity, origin, format string, args ...any) {
	Emit(severity, origin, fmt.Sprintf(format, args...))
}
