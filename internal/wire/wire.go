// Package wire defines the serialized form a log event takes across a
// process boundary. Child processes write one NDJSON frame per event to
// a pipe; the parent decodes frames back into events. The transport
// (a pipe) preserves per-origin order; no cross-process clock agreement
// is assumed.
package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/gjson"

	"logdeck/internal/domain"
)

// SchemaVersion identifies the frame layout for forward compatibility.
const SchemaVersion = 1

// TypeLog marks a frame carrying a log event. Frames of any other type
// are skipped by Decode, so the stream can carry heartbeats or metadata
// without breaking older readers.
const TypeLog = "log"

// Frame is the NDJSON representation of one event.
type Frame struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Timestamp     string `json:"timestamp"`
	Severity      string `json:"severity"`
	Message       string `json:"message"`
	Origin        string `json:"origin,omitempty"`
	PID           int    `json:"pid,omitempty"`
}

// Encoder writes events as NDJSON frames.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates an encoder over w.
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep log text unescaped
	return &Encoder{enc: enc}
}

// Encode writes one event as a frame.
func (e *Encoder) Encode(ev domain.Event) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return e.enc.Encode(Frame{
		Type:          TypeLog,
		SchemaVersion: SchemaVersion,
		Timestamp:     ts.Format(time.RFC3339Nano),
		Severity:      string(ev.Severity),
		Message:       ev.Message,
		Origin:        ev.Origin,
		PID:           ev.PID,
	})
}

// ErrSkip reports a well-formed frame that does not carry a log event.
var ErrSkip = fmt.Errorf("wire: not a log frame")

// Decode parses one NDJSON line into an event. Non-log frames return
// ErrSkip; an unparseable timestamp falls back to the receive time so a
// malformed frame still reaches the display.
func Decode(line []byte) (domain.Event, error) {
	// Cheap sniff before a full unmarshal; the stream may interleave
	// non-log frames.
	if t := gjson.GetBytes(line, "type"); t.Exists() && t.String() != TypeLog {
		return domain.Event{}, ErrSkip
	}

	var f Frame
	if err := json.Unmarshal(line, &f); err != nil {
		return domain.Event{}, fmt.Errorf("wire: decode frame: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, f.Timestamp)
	if err != nil {
		ts = time.Now()
	}
	return domain.Event{
		Timestamp: ts,
		Severity:  domain.ParseSeverity(f.Severity),
		Message:   f.Message,
		Origin:    f.Origin,
		PID:       f.PID,
	}, nil
}
