package display

import (
	"logdeck/internal/domain"
)

// Render caps. Messages are unbounded at capture; the display truncates.
const (
	defaultMaxMessageLen = 2048
	timestampLayout      = "15:04:05.000"
)

// Line is one rendered console line.
type Line struct {
	Text     string
	Category domain.Category
}

// Formatter renders events into display lines. It is a pure transform:
// it never fails, and an empty message renders as an empty but valid
// line so that no event is lost to formatting.
type Formatter struct {
	styled        bool
	maxMessageLen int
}

// NewFormatter creates a formatter. Styling is off for non-TTY output.
func NewFormatter(styled bool) *Formatter {
	return &Formatter{
		styled:        styled,
		maxMessageLen: defaultMaxMessageLen,
	}
}

// Format renders one event.
func (f *Formatter) Format(e domain.Event) Line {
	category := e.Severity.Category()

	timeStr := e.Timestamp.Format(timestampLayout)
	indicator := SeverityIndicator(e.Severity)
	msg := truncate(e.Message, f.maxMessageLen)

	if f.styled {
		timeStr = Styles.Timestamp.Render(timeStr)
		style := CategoryStyle(category)
		indicator = style.Render(indicator)
		msg = style.Render(msg)
	}

	text := timeStr + " " + indicator
	if e.Origin != "" {
		origin := "[" + e.Origin + "]"
		if f.styled {
			origin = Styles.Origin.Render(origin)
		}
		text += " " + origin
	}
	text += " " + msg

	return Line{Text: text, Category: category}
}

// truncate cuts s at a rune boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
