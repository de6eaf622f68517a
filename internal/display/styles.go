package display

import (
	"github.com/charmbracelet/lipgloss"

	"logdeck/internal/domain"
)

// Styles holds the lipgloss styles for rendered console lines.
var Styles = struct {
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Timestamp lipgloss.Style
	Origin    lipgloss.Style
}{
	Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),             // Gray
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),              // Cyan
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),   // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),  // Orange
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),  // Red

	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Origin:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
}

// CategoryStyle returns the style for a display category.
func CategoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryDebug:
		return Styles.Debug
	case domain.CategorySuccess:
		return Styles.Success
	case domain.CategoryWarning:
		return Styles.Warning
	case domain.CategoryError:
		return Styles.Error
	default:
		return Styles.Info
	}
}

// SeverityIndicator returns the three-letter tag for a severity.
func SeverityIndicator(s domain.Severity) string {
	switch s {
	case domain.SeverityTrace:
		return "TRC"
	case domain.SeverityDebug:
		return "DBG"
	case domain.SeverityInfo:
		return "INF"
	case domain.SeveritySuccess:
		return "SUC"
	case domain.SeverityWarning:
		return "WRN"
	case domain.SeverityError:
		return "ERR"
	case domain.SeverityCritical:
		return "CRT"
	default:
		return "INF"
	}
}
