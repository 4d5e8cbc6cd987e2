package syntax

import (
	"svlang/logging"
)

// Node is the interface implemented by every piece of the syntax tree.  Nodes
// are immutable: the semantic core reads them but never writes them.
type Node interface {
	// Kind returns the node's kind discriminator
	Kind() SyntaxKind

	// Position should span the entire node (meaningfully)
	Position() *logging.TextPosition
}

// ExpressionNode is the marker interface for expression syntax
type ExpressionNode interface {
	Node
	exprNode()
}

// StatementNode is the marker interface for statement syntax
type StatementNode interface {
	Node
	stmtNode()
}

// TypeNode is the marker interface for data type syntax
type TypeNode interface {
	Node
	typeNode()
}

// SelectorNode is the marker interface for the selector of an element or
// range select expression
type SelectorNode interface {
	Node
	selectorNode()
}

// MemberNode is the marker interface for declaration syntax that can appear
// as a deferred member of a scope
type MemberNode interface {
	Node
	memberNode()
}
