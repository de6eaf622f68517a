package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"logdeck/internal/display"
	"logdeck/internal/domain"
	"logdeck/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Background(lipgloss.Color("236")).Padding(0, 1)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Stats holds console counters.
type Stats struct {
	Total    int
	Warnings int
	Errors   int
}

// Model is the live console TUI state.
type Model struct {
	view     *ChannelView
	ctrl     *display.Controller
	ch       *pipeline.Channel
	appName  string
	lines    []display.Line
	content  string
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	follow   bool
	minRank  int
	stats    Stats
}

// New creates a console model. The controller must already be draining
// into view.
func New(appName string, ctrl *display.Controller, view *ChannelView, ch *pipeline.Channel) Model {
	capacity := ctrl.Scrollback().Cap()
	m := Model{
		view:    view,
		ctrl:    ctrl,
		ch:      ch,
		appName: appName,
		lines:   make([]display.Line, 0, capacity),
		follow:  ctrl.AutoScroll(),
	}
	// Preload whatever the controller displayed before the TUI attached.
	for _, line := range ctrl.Scrollback().Lines() {
		m.lines = append(m.lines, line)
		m.countLine(line)
	}
	return m
}

// Init starts waiting for rendered lines.
func (m Model) Init() tea.Cmd {
	return waitForLine(m.view.msgs)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.follow = !m.follow
			m.ctrl.SetAutoScroll(m.follow)
			if m.follow {
				m.viewport.GotoBottom()
			}
		case "c":
			m.lines = m.lines[:0]
			m.stats = Stats{}
			m.ctrl.Scrollback().Clear()
			m.rebuildContent()
		case "1":
			m.minRank = 0 // everything
			m.rebuildContent()
		case "2":
			m.minRank = categoryRank(domain.CategoryInfo)
			m.rebuildContent()
		case "3":
			m.minRank = categoryRank(domain.CategoryWarning)
			m.rebuildContent()
		case "4":
			m.minRank = categoryRank(domain.CategoryError)
			m.rebuildContent()
		case "g", "home":
			m.viewport.GotoTop()
		case "G", "end":
			m.viewport.GotoBottom()
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "ctrl+d", "pgdown":
			m.viewport.HalfViewDown()
		case "ctrl+u", "pgup":
			m.viewport.HalfViewUp()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 1
		viewportHeight := m.height - headerHeight - footerHeight

		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.rebuildContent()

	case LineMsg:
		line := display.Line{Text: msg.Text, Category: msg.Category}
		m.appendLine(line)
		cmds = append(cmds, waitForLine(m.view.msgs))

	case scrollMsg:
		if m.ready {
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, waitForLine(m.view.msgs))
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m *Model) appendLine(line display.Line) {
	m.lines = append(m.lines, line)
	m.countLine(line)

	// Mirror the scrollback bound so the view cannot outgrow it.
	if capacity := m.ctrl.Scrollback().Cap(); len(m.lines) > capacity {
		m.lines = m.lines[len(m.lines)-capacity:]
		m.rebuildContent()
		return
	}

	if categoryRank(line.Category) >= m.minRank {
		if m.content == "" {
			m.content = line.Text
		} else {
			m.content += "\n" + line.Text
		}
		if m.ready {
			m.viewport.SetContent(m.content)
		}
	}
}

func (m *Model) countLine(line display.Line) {
	m.stats.Total++
	switch line.Category {
	case domain.CategoryWarning:
		m.stats.Warnings++
	case domain.CategoryError:
		m.stats.Errors++
	}
}

func (m *Model) rebuildContent() {
	var b strings.Builder
	for _, line := range m.lines {
		if categoryRank(line.Category) < m.minRank {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Text)
	}
	m.content = b.String()

	if m.ready {
		m.viewport.SetContent(m.content)
		if m.follow {
			m.viewport.GotoBottom()
		}
	}
}

func (m *Model) renderHeader() string {
	title := "logdeck: " + m.appName
	if !m.follow {
		title += " [NO-FOLLOW]"
	}

	info := fmt.Sprintf("Lines: %d | Warnings: %d", m.stats.Total, m.stats.Warnings)
	if m.stats.Errors > 0 {
		info += " | " + errStyle.Render(fmt.Sprintf("Errors: %d", m.stats.Errors))
	} else {
		info += " | Errors: 0"
	}
	if dropped := m.ch.Dropped(); dropped > 0 {
		info += fmt.Sprintf(" | Dropped: %d", dropped)
	}

	return titleStyle.Width(m.width).Render(title) + "\n" + infoStyle.Width(m.width).Render(info)
}

func (m *Model) renderFooter() string {
	help := "q:quit f:follow c:clear 1-4:level g/G:top/bottom j/k:scroll"
	return helpStyle.Width(m.width).Render(help)
}

// categoryRank orders categories for threshold filtering.
func categoryRank(c domain.Category) int {
	switch c {
	case domain.CategoryDebug:
		return 0
	case domain.CategoryInfo:
		return 1
	case domain.CategorySuccess:
		return 2
	case domain.CategoryWarning:
		return 3
	case domain.CategoryError:
		return 4
	default:
		return 1
	}
}
