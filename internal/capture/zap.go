package capture

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"

	"logdeck/internal/domain"
)

// zapSinkCore forwards zap entries into a Sink so that any logger built
// on (or tee'd with) it appears in the live console.
type zapSinkCore struct {
	zapcore.LevelEnabler
	sink   *Sink
	origin string
	fields []zapcore.Field
}

// NewCore returns a zapcore.Core that captures entries into the sink.
// All levels are enabled; filtering belongs to the display side.
func NewCore(sink *Sink, origin string) zapcore.Core {
	return &zapSinkCore{
		LevelEnabler: zapcore.DebugLevel,
		sink:         sink,
		origin:       origin,
	}
}

func (c *zapSinkCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return &clone
}

func (c *zapSinkCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapSinkCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	msg := ent.Message
	if suffix := renderFields(c.fields, fields); suffix != "" {
		msg += " " + suffix
	}

	origin := c.origin
	if ent.LoggerName != "" {
		origin = ent.LoggerName
	}
	c.sink.Capture(domain.Event{
		Timestamp: ent.Time,
		Severity:  severityForZapLevel(ent.Level),
		Message:   msg,
		Origin:    origin,
	})
	return nil
}

func (c *zapSinkCore) Sync() error { return nil }

func severityForZapLevel(l zapcore.Level) domain.Severity {
	switch l {
	case zapcore.DebugLevel:
		return domain.SeverityDebug
	case zapcore.InfoLevel:
		return domain.SeverityInfo
	case zapcore.WarnLevel:
		return domain.SeverityWarning
	case zapcore.ErrorLevel:
		return domain.SeverityError
	default:
		return domain.SeverityCritical
	}
}

// renderFields flattens structured fields into "key=value" pairs, sorted
// for stable output.
func renderFields(accumulated, fields []zapcore.Field) string {
	if len(accumulated)+len(fields) == 0 {
		return ""
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range accumulated {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, enc.Fields[k])
	}
	return b.String()
}
