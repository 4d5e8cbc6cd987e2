package syntax

import (
	"svlang/logging"
)

// IntegerLiteral is an unsized decimal literal such as `42`
type IntegerLiteral struct {
	Tok *Token
}

func (*IntegerLiteral) Kind() SyntaxKind                   { return SynIntegerLiteral }
func (n *IntegerLiteral) Position() *logging.TextPosition  { return n.Tok.Position() }
func (*IntegerLiteral) exprNode()                          {}

// IntegerVectorLiteral is a sized, based literal such as `4'b10x0`.  The
// token value holds the full literal text; the semantic core parses it.
type IntegerVectorLiteral struct {
	Tok *Token
}

func (*IntegerVectorLiteral) Kind() SyntaxKind                  { return SynIntegerVectorLiteral }
func (n *IntegerVectorLiteral) Position() *logging.TextPosition { return n.Tok.Position() }
func (*IntegerVectorLiteral) exprNode()                         {}

// UnbasedUnsizedLiteral is one of `'0`, `'1`, `'x`, `'z`
type UnbasedUnsizedLiteral struct {
	Tok *Token
}

func (*UnbasedUnsizedLiteral) Kind() SyntaxKind                  { return SynUnbasedUnsizedLiteral }
func (n *UnbasedUnsizedLiteral) Position() *logging.TextPosition { return n.Tok.Position() }
func (*UnbasedUnsizedLiteral) exprNode()                         {}

// RealLiteral is a floating literal such as `3.14`
type RealLiteral struct {
	Tok *Token
}

func (*RealLiteral) Kind() SyntaxKind                  { return SynRealLiteral }
func (n *RealLiteral) Position() *logging.TextPosition { return n.Tok.Position() }
func (*RealLiteral) exprNode()                         {}

// StringLiteral is a quoted string literal.  The token value holds the
// unescaped contents.
type StringLiteral struct {
	Tok *Token
}

func (*StringLiteral) Kind() SyntaxKind                  { return SynStringLiteral }
func (n *StringLiteral) Position() *logging.TextPosition { return n.Tok.Position() }
func (*StringLiteral) exprNode()                         {}

// NullLiteral is the `null` keyword in expression position
type NullLiteral struct {
	Tok *Token
}

func (*NullLiteral) Kind() SyntaxKind                  { return SynNullLiteral }
func (n *NullLiteral) Position() *logging.TextPosition { return n.Tok.Position() }
func (*NullLiteral) exprNode()                         {}

// IdentifierName is a simple, unqualified name reference
type IdentifierName struct {
	Ident *Token
}

func (*IdentifierName) Kind() SyntaxKind                  { return SynIdentifierName }
func (n *IdentifierName) Position() *logging.TextPosition { return n.Ident.Position() }
func (*IdentifierName) exprNode()                         {}

// ScopedName is a dotted name reference such as `pkg.block.value`
type ScopedName struct {
	Parts []*Token
}

func (*ScopedName) Kind() SyntaxKind { return SynScopedName }

func (n *ScopedName) Position() *logging.TextPosition {
	return logging.Span(n.Parts[0].Position(), n.Parts[len(n.Parts)-1].Position())
}

func (*ScopedName) exprNode() {}

// SystemName is a `$`-prefixed system function name such as `$bits`
type SystemName struct {
	Tok *Token
}

func (*SystemName) Kind() SyntaxKind                  { return SynSystemName }
func (n *SystemName) Position() *logging.TextPosition { return n.Tok.Position() }
func (*SystemName) exprNode()                         {}

// UnaryExpression applies a prefix or postfix operator to a single operand
type UnaryExpression struct {
	OpTok   *Token
	Operand ExpressionNode

	// Postfix indicates `x++` / `x--` as opposed to the prefix forms
	Postfix bool
}

func (*UnaryExpression) Kind() SyntaxKind { return SynUnaryExpression }

func (n *UnaryExpression) Position() *logging.TextPosition {
	if n.Postfix {
		return logging.Span(n.Operand.Position(), n.OpTok.Position())
	}
	return logging.Span(n.OpTok.Position(), n.Operand.Position())
}

func (*UnaryExpression) exprNode() {}

// BinaryExpression applies an infix operator to two operands
type BinaryExpression struct {
	OpTok       *Token
	Left, Right ExpressionNode
}

func (*BinaryExpression) Kind() SyntaxKind { return SynBinaryExpression }

func (n *BinaryExpression) Position() *logging.TextPosition {
	return logging.Span(n.Left.Position(), n.Right.Position())
}

func (*BinaryExpression) exprNode() {}

// ConditionalExpression is the ternary `cond ? left : right`
type ConditionalExpression struct {
	Cond        ExpressionNode
	Left, Right ExpressionNode
}

func (*ConditionalExpression) Kind() SyntaxKind { return SynConditionalExpression }

func (n *ConditionalExpression) Position() *logging.TextPosition {
	return logging.Span(n.Cond.Position(), n.Right.Position())
}

func (*ConditionalExpression) exprNode() {}

// InsideExpression is the set membership operator `value inside { ... }`.
// Range entries use OpenRange nodes; all other entries are plain expressions.
type InsideExpression struct {
	Value  ExpressionNode
	Ranges []ExpressionNode
}

func (*InsideExpression) Kind() SyntaxKind { return SynInsideExpression }

func (n *InsideExpression) Position() *logging.TextPosition {
	if len(n.Ranges) == 0 {
		return n.Value.Position()
	}
	return logging.Span(n.Value.Position(), n.Ranges[len(n.Ranges)-1].Position())
}

func (*InsideExpression) exprNode() {}

// OpenRange is a `[low:high]` entry in an inside set
type OpenRange struct {
	Left, Right ExpressionNode
}

func (*OpenRange) Kind() SyntaxKind { return SynOpenRange }

func (n *OpenRange) Position() *logging.TextPosition {
	return logging.Span(n.Left.Position(), n.Right.Position())
}

func (*OpenRange) exprNode() {}

// Concatenation is `{a, b, c}`
type Concatenation struct {
	Elements []ExpressionNode
}

func (*Concatenation) Kind() SyntaxKind { return SynConcatenation }

func (n *Concatenation) Position() *logging.TextPosition {
	if len(n.Elements) == 0 {
		return logging.NoPosition
	}
	return logging.Span(n.Elements[0].Position(), n.Elements[len(n.Elements)-1].Position())
}

func (*Concatenation) exprNode() {}

// Replication is `{count{a, b}}`
type Replication struct {
	Count  ExpressionNode
	Concat *Concatenation
}

func (*Replication) Kind() SyntaxKind { return SynReplication }

func (n *Replication) Position() *logging.TextPosition {
	return logging.Span(n.Count.Position(), n.Concat.Position())
}

func (*Replication) exprNode() {}

// ElementSelectExpression is `value[selector]` for any selector flavor
type ElementSelectExpression struct {
	Value    ExpressionNode
	Selector SelectorNode
}

func (*ElementSelectExpression) Kind() SyntaxKind { return SynElementSelectExpression }

func (n *ElementSelectExpression) Position() *logging.TextPosition {
	return logging.Span(n.Value.Position(), n.Selector.Position())
}

func (*ElementSelectExpression) exprNode() {}

// BitSelect is the `[index]` selector
type BitSelect struct {
	Index ExpressionNode
}

func (*BitSelect) Kind() SyntaxKind                  { return SynBitSelect }
func (n *BitSelect) Position() *logging.TextPosition { return n.Index.Position() }
func (*BitSelect) selectorNode()                     {}

// SimpleRangeSelect is the `[msb:lsb]` selector; both bounds must be constant
type SimpleRangeSelect struct {
	Left, Right ExpressionNode
}

func (*SimpleRangeSelect) Kind() SyntaxKind { return SynSimpleRangeSelect }

func (n *SimpleRangeSelect) Position() *logging.TextPosition {
	return logging.Span(n.Left.Position(), n.Right.Position())
}

func (*SimpleRangeSelect) selectorNode() {}

// AscendingRangeSelect is the `[base +: width]` selector
type AscendingRangeSelect struct {
	Base, Width ExpressionNode
}

func (*AscendingRangeSelect) Kind() SyntaxKind { return SynAscendingRangeSelect }

func (n *AscendingRangeSelect) Position() *logging.TextPosition {
	return logging.Span(n.Base.Position(), n.Width.Position())
}

func (*AscendingRangeSelect) selectorNode() {}

// DescendingRangeSelect is the `[base -: width]` selector
type DescendingRangeSelect struct {
	Base, Width ExpressionNode
}

func (*DescendingRangeSelect) Kind() SyntaxKind { return SynDescendingRangeSelect }

func (n *DescendingRangeSelect) Position() *logging.TextPosition {
	return logging.Span(n.Base.Position(), n.Width.Position())
}

func (*DescendingRangeSelect) selectorNode() {}

// MemberAccessExpression is `value.member`
type MemberAccessExpression struct {
	Value  ExpressionNode
	Member *Token
}

func (*MemberAccessExpression) Kind() SyntaxKind { return SynMemberAccessExpression }

func (n *MemberAccessExpression) Position() *logging.TextPosition {
	return logging.Span(n.Value.Position(), n.Member.Position())
}

func (*MemberAccessExpression) exprNode() {}

// Invocation is a call `target(args...)`.  The target is an IdentifierName,
// ScopedName, or SystemName; arguments may include EmptyArgument nodes.
type Invocation struct {
	Target ExpressionNode
	Args   []ExpressionNode
}

func (*Invocation) Kind() SyntaxKind { return SynInvocation }

func (n *Invocation) Position() *logging.TextPosition {
	if len(n.Args) == 0 {
		return n.Target.Position()
	}
	return logging.Span(n.Target.Position(), n.Args[len(n.Args)-1].Position())
}

func (*Invocation) exprNode() {}

// CastExpression is a type cast `type'(operand)`
type CastExpression struct {
	Target  TypeNode
	Operand ExpressionNode
}

func (*CastExpression) Kind() SyntaxKind { return SynCastExpression }

func (n *CastExpression) Position() *logging.TextPosition {
	return logging.Span(n.Target.Position(), n.Operand.Position())
}

func (*CastExpression) exprNode() {}

// AssignmentExpression is a blocking assignment `lhs = rhs` in expression
// position (for-loop steps and expression statements)
type AssignmentExpression struct {
	Left, Right ExpressionNode
}

func (*AssignmentExpression) Kind() SyntaxKind { return SynAssignmentExpression }

func (n *AssignmentExpression) Position() *logging.TextPosition {
	return logging.Span(n.Left.Position(), n.Right.Position())
}

func (*AssignmentExpression) exprNode() {}

// DataTypeExpression adapts a data type for use in expression position, such
// as the argument of `$bits(logic [7:0])`
type DataTypeExpression struct {
	Type TypeNode
}

func (*DataTypeExpression) Kind() SyntaxKind                  { return SynDataTypeExpression }
func (n *DataTypeExpression) Position() *logging.TextPosition { return n.Type.Position() }
func (*DataTypeExpression) exprNode()                         {}

// EmptyArgument is the hole in a call argument list such as `f(, 2)`
type EmptyArgument struct {
	Tok *Token
}

func (*EmptyArgument) Kind() SyntaxKind { return SynEmptyArgument }

func (n *EmptyArgument) Position() *logging.TextPosition {
	if n.Tok == nil {
		return logging.NoPosition
	}
	return n.Tok.Position()
}

func (*EmptyArgument) exprNode() {}
