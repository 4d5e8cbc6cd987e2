package logging

import "fmt"

// DiagCode identifies a class of diagnostic produced by the semantic core.
// The numeric values are stable: external tooling keys off of them, so new
// codes must only ever be appended.
type DiagCode int

// Enumeration of diagnostic codes
const (
	DiagUndeclaredIdentifier            DiagCode = 1
	DiagTypeMismatch                    DiagCode = 2
	DiagConstantRequired                DiagCode = 3
	DiagWidthMismatch                   DiagCode = 4
	DiagDivideByZero                    DiagCode = 5
	DiagIndexOutOfBounds                DiagCode = 6
	DiagRecursionLimit                  DiagCode = 7
	DiagEvalTimeout                     DiagCode = 8
	DiagReturnNotInSubroutine           DiagCode = 9
	DiagWrongArgumentCount              DiagCode = 10
	DiagInvalidLValue                   DiagCode = 11
	DiagInvalidSelect                   DiagCode = 12
	DiagRedefinedSymbol                 DiagCode = 13
	DiagNotAScope                       DiagCode = 14
	DiagUnknownSystemFunction           DiagCode = 15
	DiagUnsupportedConditionalPredicate DiagCode = 16
	DiagMissingReturnValue              DiagCode = 17
	DiagUninitializedVariable           DiagCode = 18
	DiagHierarchicalNotConstant         DiagCode = 19
	DiagZeroWidthVector                 DiagCode = 20
	DiagEvalCanceled                    DiagCode = 21
	DiagUsedBeforeDeclared              DiagCode = 22
	DiagInvalidConversion               DiagCode = 23
	DiagAmbiguousCall                   DiagCode = 24
	DiagInvalidEnumBase                 DiagCode = 25
	DiagNotASubroutine                  DiagCode = 26
	DiagNotAType                        DiagCode = 27
	DiagNotConstant                     DiagCode = 28
)

// Enumeration of diagnostic severities.  Severity is assigned by the sink,
// never by the component reporting the diagnostic.
const (
	SeverityError = iota
	SeverityWarning
	SeverityNote
)

// diagSeverities maps each code to the severity the sink assigns it
var diagSeverities = map[DiagCode]int{
	DiagUndeclaredIdentifier:            SeverityError,
	DiagTypeMismatch:                    SeverityError,
	DiagConstantRequired:                SeverityError,
	DiagWidthMismatch:                   SeverityWarning,
	DiagDivideByZero:                    SeverityWarning,
	DiagIndexOutOfBounds:                SeverityWarning,
	DiagRecursionLimit:                  SeverityError,
	DiagEvalTimeout:                     SeverityError,
	DiagReturnNotInSubroutine:           SeverityError,
	DiagWrongArgumentCount:              SeverityError,
	DiagInvalidLValue:                   SeverityError,
	DiagInvalidSelect:                   SeverityError,
	DiagRedefinedSymbol:                 SeverityError,
	DiagNotAScope:                       SeverityError,
	DiagUnknownSystemFunction:           SeverityError,
	DiagUnsupportedConditionalPredicate: SeverityError,
	DiagMissingReturnValue:              SeverityError,
	DiagUninitializedVariable:           SeverityWarning,
	DiagHierarchicalNotConstant:         SeverityError,
	DiagZeroWidthVector:                 SeverityError,
	DiagEvalCanceled:                    SeverityError,
	DiagUsedBeforeDeclared:              SeverityError,
	DiagInvalidConversion:               SeverityError,
	DiagAmbiguousCall:                   SeverityError,
	DiagInvalidEnumBase:                 SeverityError,
	DiagNotASubroutine:                  SeverityError,
	DiagNotAType:                        SeverityError,
	DiagNotConstant:                     SeverityError,
}

// diagMessages maps each code to its display message format string.  The
// argument list of a Diagnostic must match the verbs here.
var diagMessages = map[DiagCode]string{
	DiagUndeclaredIdentifier:            "undeclared identifier `%s`",
	DiagTypeMismatch:                    "cannot convert from `%s` to `%s`",
	DiagConstantRequired:                "expression is not constant: %s",
	DiagWidthMismatch:                   "implicit conversion from %d bits to %d bits may truncate",
	DiagDivideByZero:                    "division by zero",
	DiagIndexOutOfBounds:                "index %s is out of bounds for type `%s`",
	DiagRecursionLimit:                  "constant evaluation exceeded maximum call depth of %d",
	DiagEvalTimeout:                     "constant evaluation exceeded its step budget",
	DiagReturnNotInSubroutine:           "return statement is only valid inside a subroutine",
	DiagWrongArgumentCount:              "expected %d arguments, got %d",
	DiagInvalidLValue:                   "expression cannot be assigned to",
	DiagInvalidSelect:                   "invalid select: %s",
	DiagRedefinedSymbol:                 "symbol `%s` is already declared in this scope",
	DiagNotAScope:                       "`%s` does not name a scope",
	DiagUnknownSystemFunction:           "unknown system function `%s`",
	DiagUnsupportedConditionalPredicate: "`&&&` and pattern-matching clauses are not supported in conditional predicates",
	DiagMissingReturnValue:              "non-void subroutine must return a value",
	DiagUninitializedVariable:           "variable `%s` is used before it is assigned",
	DiagHierarchicalNotConstant:         "hierarchical reference `%s` cannot appear in a constant expression",
	DiagZeroWidthVector:                 "vector width must be at least 1",
	DiagEvalCanceled:                    "constant evaluation was canceled",
	DiagUsedBeforeDeclared:              "`%s` is used before its declaration",
	DiagInvalidConversion:               "explicit cast required to convert from `%s` to `%s`",
	DiagAmbiguousCall:                   "call to `%s` is ambiguous",
	DiagInvalidEnumBase:                 "enum base type must be an integral type",
	DiagNotASubroutine:                  "`%s` is not callable",
	DiagNotAType:                        "`%s` does not name a type",
	DiagNotConstant:                     "reference to `%s` is not constant",
}

// Diagnostic is the record every component of the core reports through the
// sink: a stable code, a position, and the arguments that complete the
// message.  Severity is a property of the sink, not the record.
type Diagnostic struct {
	Code     DiagCode
	Position *TextPosition
	Args     []interface{}
}

// Message renders the diagnostic's human-readable message
func (d *Diagnostic) Message() string {
	if fmtStr, ok := diagMessages[d.Code]; ok {
		return fmt.Sprintf(fmtStr, d.Args...)
	}

	return fmt.Sprintf("diagnostic %d", d.Code)
}

// Severity returns the sink-assigned severity for the diagnostic's code
func (d *Diagnostic) Severity() int {
	if sev, ok := diagSeverities[d.Code]; ok {
		return sev
	}

	return SeverityError
}

func (d *Diagnostic) isError() bool {
	return d.Severity() == SeverityError
}
