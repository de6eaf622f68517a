package domain

import "time"

// Severity is the producer-assigned log level.
type Severity string

const (
	SeverityTrace    Severity = "TRACE"
	SeverityDebug    Severity = "DEBUG"
	SeverityInfo     Severity = "INFO"
	SeveritySuccess  Severity = "SUCCESS"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Category is the fixed style bucket a severity maps to for rendering.
type Category string

const (
	CategoryDebug   Category = "debug"
	CategoryInfo    Category = "info"
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryError   Category = "error"
)

// Category returns the display category for a severity. The mapping is
// total: unrecognized severities fall back to the info category so that
// display is never blocked by an unknown level.
func (s Severity) Category() Category {
	switch s {
	case SeverityTrace, SeverityDebug:
		return CategoryDebug
	case SeverityInfo:
		return CategoryInfo
	case SeveritySuccess:
		return CategorySuccess
	case SeverityWarning:
		return CategoryWarning
	case SeverityError, SeverityCritical:
		return CategoryError
	default:
		return CategoryInfo
	}
}

// Priority returns the rank of a severity (higher = more severe).
// Unknown severities rank as INFO.
func (s Severity) Priority() int {
	switch s {
	case SeverityTrace:
		return 0
	case SeverityDebug:
		return 1
	case SeverityInfo:
		return 2
	case SeveritySuccess:
		return 3
	case SeverityWarning:
		return 4
	case SeverityError:
		return 5
	case SeverityCritical:
		return 6
	default:
		return 2
	}
}

// ParseSeverity converts a string to a Severity. Unknown input maps to
// INFO rather than failing.
func ParseSeverity(s string) Severity {
	switch s {
	case "TRACE", "trace", "Trace":
		return SeverityTrace
	case "DEBUG", "debug", "Debug":
		return SeverityDebug
	case "INFO", "info", "Info":
		return SeverityInfo
	case "SUCCESS", "success", "Success":
		return SeveritySuccess
	case "WARNING", "warning", "Warning", "WARN", "warn":
		return SeverityWarning
	case "ERROR", "error", "Error":
		return SeverityError
	case "CRITICAL", "critical", "Critical", "FATAL", "fatal":
		return SeverityCritical
	default:
		return SeverityInfo
	}
}

// Severities lists the fixed enumeration in ascending priority order.
func Severities() []Severity {
	return []Severity{
		SeverityTrace,
		SeverityDebug,
		SeverityInfo,
		SeveritySuccess,
		SeverityWarning,
		SeverityError,
		SeverityCritical,
	}
}

// Event is the unit flowing through the pipeline. Events are immutable
// after creation; the pipeline only moves and renders them.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`

	// Origin identifies the producer (process, goroutine, or logical
	// subsystem name). Diagnostics only; ordering is per-origin.
	Origin string `json:"origin,omitempty"`
	PID    int    `json:"pid,omitempty"`
}
