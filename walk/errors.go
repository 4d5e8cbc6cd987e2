package walk

import (
	"svlang/logging"
	"svlang/sem"
)

// logError reports a diagnostic against the current walk position
func (w *Walker) logError(code logging.DiagCode, pos *logging.TextPosition, args ...interface{}) {
	w.Log.ReportCode(code, pos, args...)
}

// badExpr reports a diagnostic and wraps the offending expression (which may
// be nil) in an invalid node
func (w *Walker) badExpr(child sem.Expression, pos *logging.TextPosition, code logging.DiagCode, args ...interface{}) sem.Expression {
	w.logError(code, pos, args...)
	return sem.NewInvalid(child, pos)
}

// silentBad wraps an already-diagnosed expression without reporting again
func silentBad(child sem.Expression, pos *logging.TextPosition) sem.Expression {
	return sem.NewInvalid(child, pos)
}
