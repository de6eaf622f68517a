package pipeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"logdeck/internal/display"
	"logdeck/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// collectView records every line the controller delivers.
type collectView struct {
	mu    sync.Mutex
	lines []string
}

func (v *collectView) OnLogLine(text string, _ domain.Category) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lines = append(v.lines, text)
	return nil
}

func (v *collectView) ScrollToLatest() {}

func (v *collectView) snapshot() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string{}, v.lines...)
}

func newTestPipeline(view display.View) *Pipeline {
	return New(view, Options{
		Display: display.Options{Interval: time.Millisecond},
	})
}

func TestPipelineEndToEnd(t *testing.T) {
	view := &collectView{}
	p := newTestPipeline(view)

	p.Start()
	defer p.Stop()

	for i := 0; i < 10; i++ {
		p.Sink().Capture(domain.Event{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("event %d", i),
			Origin:   "test",
		})
	}

	require.Eventually(t, func() bool {
		return len(view.snapshot()) == 10
	}, 2*time.Second, time.Millisecond)

	lines := view.snapshot()
	for i, line := range lines {
		assert.Contains(t, line, fmt.Sprintf("event %d", i))
	}
	assert.Equal(t, 10, p.Controller().Scrollback().Len())
}

func TestPipelineLifecycle(t *testing.T) {
	t.Run("start twice is a no-op", func(t *testing.T) {
		p := newTestPipeline(&collectView{})
		p.Start()
		p.Start()
		p.Stop()
	})

	t.Run("stop before start is a no-op", func(t *testing.T) {
		p := newTestPipeline(&collectView{})
		assert.NotPanics(t, p.Stop)
	})

	t.Run("stop twice is a no-op", func(t *testing.T) {
		p := newTestPipeline(&collectView{})
		p.Start()
		p.Stop()
		assert.NotPanics(t, p.Stop)
	})

	t.Run("captures before start are dropped", func(t *testing.T) {
		view := &collectView{}
		p := newTestPipeline(view)

		p.Sink().Capture(domain.Event{Severity: domain.SeverityInfo, Message: "early"})
		p.Start()

		p.Sink().Capture(domain.Event{Severity: domain.SeverityInfo, Message: "in time"})
		require.Eventually(t, func() bool {
			return len(view.snapshot()) == 1
		}, 2*time.Second, time.Millisecond)

		p.Stop()
		lines := view.snapshot()
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "in time")
	})

	t.Run("captures after stop are silent", func(t *testing.T) {
		view := &collectView{}
		p := newTestPipeline(view)
		p.Start()
		p.Stop()

		assert.NotPanics(t, func() {
			p.Sink().Capture(domain.Event{Severity: domain.SeverityError, Message: "late"})
		})
		assert.Empty(t, view.snapshot())
		assert.Equal(t, 0, p.Channel().Len())
	})
}

func TestPipelineStopDiscardsBacklog(t *testing.T) {
	// A full backlog at stop time must not delay teardown or leak to the
	// view afterwards.
	view := &collectView{}
	p := New(view, Options{
		ChannelCapacity: 64,
		Display:         display.Options{Interval: time.Hour},
	})

	p.Start()
	for i := 0; i < 64; i++ {
		p.Sink().Capture(domain.Event{Severity: domain.SeverityInfo, Message: "backlog"})
	}

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on an undrained backlog")
	}

	assert.Empty(t, view.snapshot())
	assert.True(t, p.Channel().Closed())
}

func TestPipelineConcurrentProducers(t *testing.T) {
	view := &collectView{}
	p := New(view, Options{
		ChannelCapacity: 4096,
		Display:         display.Options{Interval: time.Millisecond, Batch: 512},
	})

	p.Start()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				p.Sink().Capture(domain.Event{
					Severity: domain.SeverityInfo,
					Message:  fmt.Sprintf("p%d event %d", id, j),
					Origin:   fmt.Sprintf("p%d", id),
				})
			}
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return len(view.snapshot()) == producers*perProducer
	}, 5*time.Second, time.Millisecond)
	p.Stop()

	// Per-producer order must survive the shared path.
	lines := view.snapshot()
	next := make(map[int]int)
	for _, line := range lines {
		for id := 0; id < producers; id++ {
			marker := fmt.Sprintf("p%d event ", id)
			if idx := indexAfter(line, marker); idx >= 0 {
				assert.Equal(t, next[id], idx, "events from p%d out of order", id)
				next[id]++
				break
			}
		}
	}
}

// indexAfter parses the integer following marker in line, or -1.
func indexAfter(line, marker string) int {
	i := len(line)
	for j := 0; j+len(marker) <= len(line); j++ {
		if line[j:j+len(marker)] == marker {
			i = j + len(marker)
			break
		}
	}
	if i >= len(line) {
		return -1
	}
	var n int
	if _, err := fmt.Sscanf(line[i:], "%d", &n); err != nil {
		return -1
	}
	return n
}
