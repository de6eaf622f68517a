package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"logdeck/internal/domain"
)

// LineMsg carries one rendered line into the update loop.
type LineMsg struct {
	Text     string
	Category domain.Category
}

// scrollMsg asks the viewport to jump to the newest entry.
type scrollMsg struct{}

// ChannelView bridges the display controller to the bubbletea program.
// The controller's drain goroutine pushes messages in; the update loop -
// the single UI thread - pulls them out with waitForLine. OnLogLine is
// non-blocking: when the UI falls behind and the buffer fills, the line
// is rejected back to the controller rather than stalling the drain.
type ChannelView struct {
	msgs chan tea.Msg
}

// NewChannelView creates a view bridge with the given buffer depth.
func NewChannelView(buffer int) *ChannelView {
	if buffer <= 0 {
		buffer = 1024
	}
	return &ChannelView{msgs: make(chan tea.Msg, buffer)}
}

// OnLogLine implements display.View.
func (v *ChannelView) OnLogLine(text string, category domain.Category) error {
	select {
	case v.msgs <- LineMsg{Text: text, Category: category}:
		return nil
	default:
		return fmt.Errorf("tui: view buffer full")
	}
}

// ScrollToLatest implements display.View. Dropping the signal when the
// buffer is full is harmless; the next one lands.
func (v *ChannelView) ScrollToLatest() {
	select {
	case v.msgs <- scrollMsg{}:
	default:
	}
}

// waitForLine creates a command that waits for the next view message.
func waitForLine(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
