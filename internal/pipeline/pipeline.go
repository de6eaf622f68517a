// Package pipeline carries log events from many uncoordinated producers
// to the single display consumer: capture sink -> bounded channel ->
// display controller -> scrollback. The pipeline is built once at
// application start and torn down once at stop; no per-event structures
// are allocated along the way.
package pipeline

import (
	"sync"

	"logdeck/internal/capture"
	"logdeck/internal/display"
)

// Pipeline owns the pieces of the log path and their lifecycle.
type Pipeline struct {
	channel    *Channel
	sink       *capture.Sink
	controller *display.Controller

	mu      sync.Mutex
	started bool
}

// Options configures a pipeline.
type Options struct {
	ChannelCapacity int
	Display         display.Options
}

// New builds a pipeline delivering to view. Nothing runs until Start.
func New(view display.View, opts Options) *Pipeline {
	ch := NewChannel(opts.ChannelCapacity)
	return &Pipeline{
		channel:    ch,
		sink:       capture.NewSink(ch),
		controller: display.NewController(ch, view, opts.Display),
	}
}

// Start installs the sink and starts the display controller. Calling
// Start twice is a no-op.
func (p *Pipeline) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	p.sink.Install()
	p.controller.Start()
}

// Stop tears the pipeline down: controller first so no drain races the
// teardown, then the sink so producers stop reaching the channel, then
// the channel itself. Events arriving during the uninstall race are
// discarded by the closed channel. Stop before Start, or twice, is a
// no-op.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.started = false

	p.controller.Stop()
	p.sink.Uninstall()
	p.channel.Close()
}

// Sink returns the ingestion point for relays and logger bridges.
func (p *Pipeline) Sink() *capture.Sink {
	return p.sink
}

// Channel returns the bounded event channel.
func (p *Pipeline) Channel() *Channel {
	return p.channel
}

// Controller returns the display controller.
func (p *Pipeline) Controller() *display.Controller {
	return p.controller
}
