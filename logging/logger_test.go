package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityAssignment(t *testing.T) {
	// severity belongs to the sink: the reporting component never chooses it
	err := &Diagnostic{Code: DiagUndeclaredIdentifier, Args: []interface{}{"x"}}
	warn := &Diagnostic{Code: DiagWidthMismatch, Args: []interface{}{16, 8}}

	assert.Equal(t, SeverityError, err.Severity())
	assert.Equal(t, SeverityWarning, warn.Severity())
}

func TestDiagnosticMessages(t *testing.T) {
	d := &Diagnostic{Code: DiagUndeclaredIdentifier, Args: []interface{}{"foo"}}
	assert.Equal(t, "undeclared identifier `foo`", d.Message())

	d = &Diagnostic{Code: DiagWrongArgumentCount, Args: []interface{}{2, 3}}
	assert.Equal(t, "expected 2 arguments, got 3", d.Message())
}

func TestStableCodes(t *testing.T) {
	// external tooling keys off the numeric values; they must never shift
	stable := map[DiagCode]int{
		DiagUndeclaredIdentifier: 1,
		DiagTypeMismatch:         2,
		DiagConstantRequired:     3,
		DiagWidthMismatch:        4,
		DiagDivideByZero:         5,
		DiagIndexOutOfBounds:     6,
		DiagRecursionLimit:       7,
		DiagEvalTimeout:          8,
		DiagReturnNotInSubroutine: 9,
	}
	for code, value := range stable {
		assert.Equal(t, value, int(code))
	}
}

func TestLoggerCounting(t *testing.T) {
	log := NewLogger(LogLevelSilent)
	assert.True(t, log.ShouldProceed())

	log.ReportCode(DiagWidthMismatch, NoPosition, 16, 8)
	assert.True(t, log.ShouldProceed(), "warnings don't block")
	assert.Equal(t, 0, log.ErrorCount())

	log.ReportCode(DiagUndeclaredIdentifier, NoPosition, "x")
	log.ReportCode(DiagTypeMismatch, NoPosition, "int", "string")

	assert.False(t, log.ShouldProceed())
	assert.Equal(t, 2, log.ErrorCount())
	assert.Len(t, log.Diagnostics(), 3)
}

func TestFlushWarnings(t *testing.T) {
	log := NewLogger(LogLevelSilent)
	log.ReportCode(DiagWidthMismatch, NoPosition, 16, 8)

	// flushing drains the buffer but keeps the record history
	log.FlushWarnings()
	log.FlushWarnings()
	assert.Len(t, log.Diagnostics(), 1)
}
