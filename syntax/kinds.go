package syntax

// SyntaxKind discriminates every node kind the semantic core consumes.  The
// parser producing these trees lives outside this module; the core only ever
// reads nodes, it never constructs or mutates them during binding.
type SyntaxKind int

// Enumeration of syntax node kinds
const (
	SynUnknown SyntaxKind = iota

	// expressions
	SynIntegerLiteral
	SynIntegerVectorLiteral
	SynUnbasedUnsizedLiteral
	SynRealLiteral
	SynStringLiteral
	SynNullLiteral
	SynIdentifierName
	SynScopedName
	SynSystemName
	SynUnaryExpression
	SynBinaryExpression
	SynConditionalExpression
	SynInsideExpression
	SynOpenRange
	SynConcatenation
	SynReplication
	SynElementSelectExpression
	SynMemberAccessExpression
	SynInvocation
	SynCastExpression
	SynAssignmentExpression
	SynDataTypeExpression
	SynEmptyArgument

	// selectors
	SynBitSelect
	SynSimpleRangeSelect
	SynAscendingRangeSelect
	SynDescendingRangeSelect

	// statements
	SynExpressionStatement
	SynConditionalStatement
	SynReturnStatement
	SynBlockStatement
	SynForLoopStatement
	SynCaseStatement
	SynDataDeclaration

	// declarations
	SynModuleDeclaration
	SynPackageDeclaration
	SynParameterDeclaration
	SynFunctionDeclaration
	SynTypedefDeclaration

	// data types
	SynNamedType
	SynIntegerType
	SynRealType
	SynStringType
	SynVoidType
	SynEnumType
	SynStructType
	SynPackedDimension
)

// IsStatement indicates whether the kind is a statement node kind
func IsStatement(kind SyntaxKind) bool {
	switch kind {
	case SynExpressionStatement, SynConditionalStatement, SynReturnStatement,
		SynBlockStatement, SynForLoopStatement, SynCaseStatement:
		return true
	}

	return false
}
