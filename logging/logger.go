package logging

import (
	"sync"
)

// Logger is the diagnostic sink for a single compilation.  All components
// report structured diagnostics here; the logger assigns severities, counts
// errors, and defers warning display until the end of elaboration.  It is
// passed as an explicit dependency, never accessed through a global.
type Logger struct {
	LogLevel int

	errorCount int // Total encountered errors

	// warnings is a list of all warnings to be logged at the end of elaboration
	warnings []*Diagnostic

	// diags is every diagnostic reported, in report order
	diags []*Diagnostic

	// m is the mutex used to synchronize reporting -- independent design
	// units may elaborate concurrently and share one sink
	m sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, and progress summary (DEFAULT)
)

// NewLogger creates a new diagnostic sink with the given log level
func NewLogger(loglevel int) *Logger {
	return &Logger{LogLevel: loglevel}
}

// Report accepts a diagnostic record from a component.  Errors are displayed
// immediately; warnings are buffered until FlushWarnings.
func (l *Logger) Report(d *Diagnostic) {
	l.m.Lock()
	defer l.m.Unlock()

	l.diags = append(l.diags, d)

	if d.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayDiagnostic(d)
		}
	} else {
		l.warnings = append(l.warnings, d)
	}
}

// ReportCode builds and reports a diagnostic in one call
func (l *Logger) ReportCode(code DiagCode, pos *TextPosition, args ...interface{}) {
	l.Report(&Diagnostic{Code: code, Position: pos, Args: args})
}

// ErrorCount returns the number of error-severity diagnostics reported so far
func (l *Logger) ErrorCount() int {
	l.m.Lock()
	defer l.m.Unlock()

	return l.errorCount
}

// ShouldProceed indicates whether or not the sink has seen any errors.  This
// is useful for phases that process multiple items and want a single
// accumulated go/no-go signal.
func (l *Logger) ShouldProceed() bool {
	return l.ErrorCount() == 0
}

// Diagnostics returns every diagnostic reported so far in report order
func (l *Logger) Diagnostics() []*Diagnostic {
	l.m.Lock()
	defer l.m.Unlock()

	out := make([]*Diagnostic, len(l.diags))
	copy(out, l.diags)
	return out
}

// FlushWarnings displays all buffered warnings.  It is called once at the end
// of elaboration so warnings don't interleave with error output.
func (l *Logger) FlushWarnings() {
	l.m.Lock()
	defer l.m.Unlock()

	if l.LogLevel >= LogLevelWarning {
		for _, w := range l.warnings {
			displayDiagnostic(w)
		}
	}

	l.warnings = nil
}
