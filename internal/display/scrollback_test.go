package display

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrollback(t *testing.T) {
	t.Run("uses default capacity for zero", func(t *testing.T) {
		s := NewScrollback(0)
		assert.Equal(t, defaultScrollback, s.Cap())
	})

	t.Run("respects configured capacity", func(t *testing.T) {
		s := NewScrollback(50)
		assert.Equal(t, 50, s.Cap())
	})
}

func TestScrollbackEviction(t *testing.T) {
	t.Run("length never exceeds capacity", func(t *testing.T) {
		s := NewScrollback(10)
		for i := 0; i < 100; i++ {
			s.Append(Line{Text: "line"})
			assert.LessOrEqual(t, s.Len(), 10)
		}
	})

	t.Run("keeps exactly the most recent capacity lines", func(t *testing.T) {
		s := NewScrollback(1000)
		for i := 1; i <= 1200; i++ {
			s.Append(Line{Text: fmt.Sprintf("%d", i)})
		}

		lines := s.Lines()
		require.Len(t, lines, 1000)
		assert.Equal(t, "201", lines[0].Text)
		assert.Equal(t, "1200", lines[999].Text)
	})

	t.Run("preserves order after wrap", func(t *testing.T) {
		s := NewScrollback(3)
		for i := 1; i <= 5; i++ {
			s.Append(Line{Text: fmt.Sprintf("%d", i)})
		}
		lines := s.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, "3", lines[0].Text)
		assert.Equal(t, "4", lines[1].Text)
		assert.Equal(t, "5", lines[2].Text)
	})
}

func TestScrollbackLast(t *testing.T) {
	t.Run("returns all if n exceeds count", func(t *testing.T) {
		s := NewScrollback(10)
		s.Append(Line{Text: "a"})
		s.Append(Line{Text: "b"})
		assert.Len(t, s.Last(100), 2)
	})

	t.Run("returns most recent n oldest first", func(t *testing.T) {
		s := NewScrollback(10)
		for _, text := range []string{"a", "b", "c", "d"} {
			s.Append(Line{Text: text})
		}
		last := s.Last(2)
		require.Len(t, last, 2)
		assert.Equal(t, "c", last[0].Text)
		assert.Equal(t, "d", last[1].Text)
	})
}

func TestScrollbackClear(t *testing.T) {
	s := NewScrollback(10)
	s.Append(Line{Text: "x"})
	s.Append(Line{Text: "y"})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Lines())
}

func TestScrollbackConcurrentReaders(t *testing.T) {
	s := NewScrollback(100)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Append(Line{Text: "line"})
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Lines()
				s.Last(10)
				s.Len()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}

func BenchmarkScrollbackAppend(b *testing.B) {
	s := NewScrollback(1000)
	line := Line{Text: "benchmark line"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Append(line)
	}
}
