package pipeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logdeck/internal/domain"
)

func TestNewChannel(t *testing.T) {
	t.Run("creates channel with specified capacity", func(t *testing.T) {
		ch := NewChannel(10)
		require.NotNil(t, ch)
		assert.Equal(t, 0, ch.Len())
	})

	t.Run("uses default capacity for zero and negative", func(t *testing.T) {
		for _, capacity := range []int{0, -5} {
			ch := NewChannel(capacity)
			for i := 0; i < defaultCapacity+100; i++ {
				ch.Send(domain.Event{Message: "x"})
			}
			assert.Equal(t, defaultCapacity, ch.Len())
		}
	})
}

func TestChannelOrdering(t *testing.T) {
	t.Run("delivers in send order", func(t *testing.T) {
		ch := NewChannel(10)
		for i := 0; i < 5; i++ {
			ch.Send(domain.Event{Message: fmt.Sprintf("%d", i)})
		}
		for i := 0; i < 5; i++ {
			e, ok := ch.Receive()
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("%d", i), e.Message)
		}
		_, ok := ch.Receive()
		assert.False(t, ok)
	})

	t.Run("evicts oldest when full", func(t *testing.T) {
		ch := NewChannel(3)
		for i := 1; i <= 5; i++ {
			ch.Send(domain.Event{Message: fmt.Sprintf("%d", i)})
		}

		assert.Equal(t, uint64(2), ch.Dropped())

		var got []string
		for {
			e, ok := ch.Receive()
			if !ok {
				break
			}
			got = append(got, e.Message)
		}
		assert.Equal(t, []string{"3", "4", "5"}, got)
	})
}

func TestChannelClose(t *testing.T) {
	t.Run("send after close is silently discarded", func(t *testing.T) {
		ch := NewChannel(10)
		ch.Send(domain.Event{Message: "before"})
		ch.Close()

		assert.NotPanics(t, func() {
			ch.Send(domain.Event{Message: "after"})
		})
		assert.Equal(t, 1, ch.Len())
	})

	t.Run("receive drains buffered events after close", func(t *testing.T) {
		ch := NewChannel(10)
		ch.Send(domain.Event{Message: "a"})
		ch.Send(domain.Event{Message: "b"})
		ch.Close()

		e, ok := ch.Receive()
		require.True(t, ok)
		assert.Equal(t, "a", e.Message)
		e, ok = ch.Receive()
		require.True(t, ok)
		assert.Equal(t, "b", e.Message)
		_, ok = ch.Receive()
		assert.False(t, ok)
		assert.True(t, ch.Closed())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		ch := NewChannel(10)
		ch.Close()
		assert.NotPanics(t, ch.Close)
	})
}

func TestChannelNeverBlocks(t *testing.T) {
	// 10k sends with no receiver must complete almost immediately:
	// backpressure is eviction, not blocking.
	ch := NewChannel(100)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			ch.Send(domain.Event{Message: "burst"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Send blocked under sustained overload")
	}
	assert.Equal(t, 100, ch.Len())
	assert.Equal(t, uint64(9900), ch.Dropped())
}

func TestChannelConcurrentProducers(t *testing.T) {
	// Each producer's subsequence must survive in order. Capacity is
	// large enough that nothing is evicted here.
	const producers = 3
	const perProducer = 1000

	ch := NewChannel(producers * perProducer)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			origin := fmt.Sprintf("producer-%d", p)
			for i := 0; i < perProducer; i++ {
				ch.Send(domain.Event{
					Origin:  origin,
					Message: fmt.Sprintf("%d", i),
				})
			}
		}(p)
	}
	wg.Wait()

	require.Equal(t, producers*perProducer, ch.Len())

	lastSeen := map[string]int{}
	counts := map[string]int{}
	for {
		e, ok := ch.Receive()
		if !ok {
			break
		}
		var seq int
		_, err := fmt.Sscanf(e.Message, "%d", &seq)
		require.NoError(t, err)
		if n, seen := lastSeen[e.Origin]; seen {
			assert.Greater(t, seq, n, "reordered events from %s", e.Origin)
		}
		lastSeen[e.Origin] = seq
		counts[e.Origin]++
	}

	for p := 0; p < producers; p++ {
		assert.Equal(t, perProducer, counts[fmt.Sprintf("producer-%d", p)])
	}
}

func TestChannelSendRacingClose(t *testing.T) {
	ch := NewChannel(64)

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				ch.Send(domain.Event{Message: "racer"})
			}
		}()
	}
	ch.Close()
	wg.Wait() // no panic is the assertion
}

func BenchmarkChannelSend(b *testing.B) {
	ch := NewChannel(1000)
	e := domain.Event{Message: "benchmark event"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch.Send(e)
	}
}

func BenchmarkChannelSendReceive(b *testing.B) {
	ch := NewChannel(1000)
	e := domain.Event{Message: "benchmark event"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch.Send(e)
		ch.Receive()
	}
}
