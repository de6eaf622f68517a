package capture

import (
	"bytes"
	"strings"
	"sync"

	"logdeck/internal/domain"
)

// Writer adapts plain text output (child-process stderr, redirected
// stdout) into events: each complete line becomes one event at a fixed
// severity. Blank lines are skipped. A trailing partial line is held
// until the next write or Close.
type Writer struct {
	mu       sync.Mutex
	sink     *Sink
	origin   string
	severity domain.Severity
	buf      bytes.Buffer
}

// NewWriter creates a line-splitting writer feeding the sink.
func NewWriter(sink *Sink, origin string, severity domain.Severity) *Writer {
	return &Writer{
		sink:     sink,
		origin:   origin,
		severity: severity,
	}
}

// Write implements io.Writer. It never fails: a producer writing text
// must not be made responsible for pipeline state.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line: keep it buffered for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(line)
	}
	return len(p), nil
}

// Close flushes any buffered partial line.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
	return nil
}

func (w *Writer) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	w.sink.Capture(domain.Event{
		Severity: w.severity,
		Message:  line,
		Origin:   w.origin,
	})
}
