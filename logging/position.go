package logging

import "fmt"

// TextPosition represents a positional range in source text over which a
// symbol, expression, or diagnostic spans
type TextPosition struct {
	StartLn, StartCol int
	EndLn, EndCol     int
}

// Span builds a text position spanning from the start of one position to the
// end of another
func Span(start, end *TextPosition) *TextPosition {
	return &TextPosition{
		StartLn:  start.StartLn,
		StartCol: start.StartCol,
		EndLn:    end.EndLn,
		EndCol:   end.EndCol,
	}
}

// Repr returns the position formatted as it appears in diagnostic banners
func (tp *TextPosition) Repr() string {
	return fmt.Sprintf("%d:%d", tp.StartLn, tp.StartCol)
}

// NoPosition is used for diagnostics that have no meaningful source location
// such as those produced while folding compiler-generated expressions
var NoPosition = &TextPosition{}
