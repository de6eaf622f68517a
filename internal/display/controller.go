package display

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"logdeck/internal/domain"
)

const (
	defaultDrainInterval = 50 * time.Millisecond
	defaultDrainBatch    = 256
)

// EventSource is the consumer side of the bounded channel.
type EventSource interface {
	Receive() (domain.Event, bool)
}

// View is the external collaborator rendering the console. OnLogLine is
// invoked once per displayed line, in display order, from the single
// drain goroutine. A rejected line does not stop the drain.
type View interface {
	OnLogLine(text string, category domain.Category) error
	ScrollToLatest()
}

// Controller is the sole consumer of the event channel. It drains on a
// schedule - a bounded batch per tick, so a burst cannot starve the UI -
// formats each event, appends to the scrollback, and forwards lines to
// the view.
type Controller struct {
	src         EventSource
	view        View
	formatter   *Formatter
	scrollback  *Scrollback
	clk         clock.Clock
	interval    time.Duration
	batch       int
	fallback    *zap.Logger
	minSeverity domain.Severity

	mu         sync.Mutex
	autoScroll bool
	running    bool
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// Options configures a Controller. Zero values pick documented defaults.
type Options struct {
	Formatter  *Formatter
	MaxLines   int // scrollback capacity, default 1000
	Interval   time.Duration
	Batch      int
	AutoScroll *bool       // default enabled
	Clock      clock.Clock // real clock unless a test injects a mock
	Fallback   *zap.Logger // consumer-side failures, never routed back through the pipeline

	// MinSeverity hides events below the threshold. Empty shows all.
	MinSeverity domain.Severity
}

// NewController creates a controller draining src into view.
func NewController(src EventSource, view View, opts Options) *Controller {
	if opts.Formatter == nil {
		opts.Formatter = NewFormatter(false)
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultDrainInterval
	}
	if opts.Batch <= 0 {
		opts.Batch = defaultDrainBatch
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Fallback == nil {
		opts.Fallback = zap.NewNop()
	}
	autoScroll := true
	if opts.AutoScroll != nil {
		autoScroll = *opts.AutoScroll
	}
	return &Controller{
		src:         src,
		view:        view,
		formatter:   opts.Formatter,
		scrollback:  NewScrollback(opts.MaxLines),
		clk:         opts.Clock,
		interval:    opts.Interval,
		batch:       opts.Batch,
		fallback:    opts.Fallback,
		minSeverity: opts.MinSeverity,
		autoScroll:  autoScroll,
	}
}

// Start begins the scheduled drain. Idempotent.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})

	c.wg.Add(1)
	go c.loop(c.stopCh)
}

func (c *Controller) loop(stopCh chan struct{}) {
	defer c.wg.Done()

	ticker := c.clk.Ticker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			c.drainCycle()
		}
	}
}

// drainCycle pulls at most one batch, so the loop yields between bursts.
func (c *Controller) drainCycle() {
	appended := false
	for i := 0; i < c.batch; i++ {
		e, ok := c.src.Receive()
		if !ok {
			break
		}
		if c.minSeverity != "" && e.Severity.Priority() < c.minSeverity.Priority() {
			continue
		}
		line := c.formatter.Format(e)
		c.scrollback.Append(line)
		if err := c.view.OnLogLine(line.Text, line.Category); err != nil {
			c.fallback.Warn("view rejected line", zap.Error(err))
			continue
		}
		appended = true
	}

	if appended && c.AutoScroll() {
		c.view.ScrollToLatest()
	}
}

// Stop halts draining. Undisplayed backlog is discarded; the scrollback
// keeps what was already displayed. Safe to call before Start or twice.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()

	c.wg.Wait()
}

// SetAutoScroll toggles whether new lines force the view to the newest
// entry. When disabled, lines still append but the scroll position is
// left alone.
func (c *Controller) SetAutoScroll(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoScroll = enabled
}

// AutoScroll reports the current auto-scroll state.
func (c *Controller) AutoScroll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoScroll
}

// Scrollback exposes the retained history for readers.
func (c *Controller) Scrollback() *Scrollback {
	return c.scrollback
}
