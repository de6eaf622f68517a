package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityCategory(t *testing.T) {
	t.Run("maps every known severity", func(t *testing.T) {
		expected := map[Severity]Category{
			SeverityTrace:    CategoryDebug,
			SeverityDebug:    CategoryDebug,
			SeverityInfo:     CategoryInfo,
			SeveritySuccess:  CategorySuccess,
			SeverityWarning:  CategoryWarning,
			SeverityError:    CategoryError,
			SeverityCritical: CategoryError,
		}
		for sev, want := range expected {
			assert.Equal(t, want, sev.Category(), "severity %s", sev)
		}
	})

	t.Run("unknown severity falls back to info", func(t *testing.T) {
		assert.Equal(t, CategoryInfo, Severity("NOTICE").Category())
		assert.Equal(t, CategoryInfo, Severity("").Category())
		assert.Equal(t, CategoryInfo, Severity("garbage\x00").Category())
	})
}

func TestSeverityPriority(t *testing.T) {
	t.Run("is strictly increasing across the enumeration", func(t *testing.T) {
		sevs := Severities()
		for i := 1; i < len(sevs); i++ {
			assert.Greater(t, sevs[i].Priority(), sevs[i-1].Priority())
		}
	})

	t.Run("unknown severity ranks as info", func(t *testing.T) {
		assert.Equal(t, SeverityInfo.Priority(), Severity("bogus").Priority())
	})
}

func TestParseSeverity(t *testing.T) {
	t.Run("parses common spellings", func(t *testing.T) {
		assert.Equal(t, SeverityDebug, ParseSeverity("debug"))
		assert.Equal(t, SeverityDebug, ParseSeverity("DEBUG"))
		assert.Equal(t, SeveritySuccess, ParseSeverity("Success"))
		assert.Equal(t, SeverityWarning, ParseSeverity("warn"))
		assert.Equal(t, SeverityCritical, ParseSeverity("FATAL"))
	})

	t.Run("unknown input maps to info", func(t *testing.T) {
		assert.Equal(t, SeverityInfo, ParseSeverity(""))
		assert.Equal(t, SeverityInfo, ParseSeverity("verbose"))
	})
}
