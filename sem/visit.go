package sem

// WalkExpression visits an expression tree in preorder.  The callback
// returns false to skip the node's children.  External serializers use this
// to traverse bound trees without knowing the concrete variants.
func WalkExpression(e Expression, visit func(Expression) bool) {
	if e == nil || !visit(e) {
		return
	}

	switch v := e.(type) {
	case *InvalidExpr:
		WalkExpression(v.Child, visit)
	case *UnaryExpr:
		WalkExpression(v.Operand, visit)
	case *BinaryExpr:
		WalkExpression(v.Left, visit)
		WalkExpression(v.Right, visit)
	case *ConditionalExpr:
		WalkExpression(v.Cond, visit)
		WalkExpression(v.Left, visit)
		WalkExpression(v.Right, visit)
	case *InsideExpr:
		WalkExpression(v.Value, visit)
		for _, r := range v.RangeList {
			WalkExpression(r, visit)
		}
	case *OpenRangeExpr:
		WalkExpression(v.Left, visit)
		WalkExpression(v.Right, visit)
	case *AssignmentExpr:
		WalkExpression(v.Left, visit)
		WalkExpression(v.Right, visit)
	case *ConcatenationExpr:
		for _, op := range v.Operands {
			WalkExpression(op, visit)
		}
	case *ReplicationExpr:
		WalkExpression(v.Operand, visit)
	case *ElementSelectExpr:
		WalkExpression(v.Value, visit)
		WalkExpression(v.Selector, visit)
	case *RangeSelectExpr:
		WalkExpression(v.Value, visit)
		WalkExpression(v.Left, visit)
		WalkExpression(v.Right, visit)
	case *MemberAccessExpr:
		WalkExpression(v.Value, visit)
	case *CallExpr:
		for _, arg := range v.Args {
			WalkExpression(arg, visit)
		}
	case *ConversionExpr:
		WalkExpression(v.Operand, visit)
	}
}

// WalkStatement visits a statement tree in preorder, descending into nested
// statements but not into expressions.  The callback returns false to skip
// the node's children.
func WalkStatement(s Statement, visit func(Statement) bool) {
	if s == nil || !visit(s) {
		return
	}

	switch v := s.(type) {
	case *StatementList:
		for _, stmt := range v.Stmts {
			WalkStatement(stmt, visit)
		}
	case *ConditionalStmt:
		WalkStatement(v.IfTrue, visit)
		WalkStatement(v.IfFalse, visit)
	case *BlockStmt:
		WalkStatement(v.Body, visit)
	case *ForLoopStmt:
		for _, init := range v.Initializers {
			WalkStatement(init, visit)
		}
		WalkStatement(v.Body, visit)
	case *CaseStmt:
		for _, item := range v.Items {
			WalkStatement(item.Stmt, visit)
		}
		WalkStatement(v.Default, visit)
	}
}
