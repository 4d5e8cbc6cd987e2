package walk

import (
	"svlang/logging"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// Statement binds a single statement node
func (w *Walker) Statement(node syntax.StatementNode) sem.Statement {
	switch v := node.(type) {
	case *syntax.ExpressionStatement:
		return w.walkExprStmt(v)
	case *syntax.ConditionalStatement:
		return w.walkConditionalStmt(v)
	case *syntax.ReturnStatement:
		return w.walkReturnStmt(v)
	case *syntax.BlockStatement:
		return w.walkBlockStmt(v)
	case *syntax.ForLoopStatement:
		return w.walkForLoopStmt(v)
	case *syntax.CaseStatement:
		return w.walkCaseStmt(v)
	default:
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}
}

// StatementList binds a group of items, folding data declarations into
// local variables declared in the current scope
func (w *Walker) StatementList(items []syntax.Node, pos *logging.TextPosition) *sem.StatementList {
	list := &sem.StatementList{StmtBase: sem.NewStmtBase(pos)}

	for _, item := range items {
		if decl, ok := item.(*syntax.DataDeclaration); ok {
			list.Stmts = append(list.Stmts, w.walkDataDeclaration(decl)...)
			continue
		}

		if stmt, ok := item.(syntax.StatementNode); ok {
			list.Stmts = append(list.Stmts, w.Statement(stmt))
		}
	}

	return list
}

// -----------------------------------------------------------------------------

// walkExprStmt binds an expression statement
func (w *Walker) walkExprStmt(node *syntax.ExpressionStatement) sem.Statement {
	expr := w.SelfDetermined(node.Expr)
	if sem.Bad(expr) {
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}

	return &sem.ExpressionStmt{StmtBase: sem.NewStmtBase(node.Position()), Expr: expr}
}

// walkConditionalStmt binds an if/else statement.  Multiple predicate
// conditions (`&&&`) and matches clauses are not supported and produce a
// diagnostic rather than a bound tree.
func (w *Walker) walkConditionalStmt(node *syntax.ConditionalStatement) sem.Statement {
	if len(node.Conditions) != 1 || node.Conditions[0].HasMatchesClause {
		w.logError(logging.DiagUnsupportedConditionalPredicate, node.Position())
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}

	cond := w.SelfDetermined(node.Conditions[0].Expr)
	if !sem.Bad(cond) {
		// the predicate must be usable as a single bit
		if !predicateType(cond.Type()) {
			cond = w.badExpr(cond, cond.Position(), logging.DiagTypeMismatch,
				cond.Type().Repr(), "a 1-bit predicate")
		}
	}

	ifTrue := w.Statement(node.IfTrue)

	var ifFalse sem.Statement
	if node.IfFalse != nil {
		ifFalse = w.Statement(node.IfFalse)
	}

	return &sem.ConditionalStmt{
		StmtBase: sem.NewStmtBase(node.Position()),
		Cond:     cond,
		IfTrue:   ifTrue,
		IfFalse:  ifFalse,
	}
}

// walkReturnStmt binds a return statement, which is only permitted inside a
// subroutine; the value converts to the subroutine's return type
func (w *Walker) walkReturnStmt(node *syntax.ReturnStatement) sem.Statement {
	sub := w.subroutine
	if sub == nil {
		if ancestor, ok := w.Scope.FindAncestor(sem.SymSubroutine); ok {
			sub = ancestor.(*sem.SubroutineSymbol)
		}
	}
	if sub == nil {
		w.logError(logging.DiagReturnNotInSubroutine, node.ReturnKw.Position())
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}

	var value sem.Expression
	if node.Value != nil {
		value = w.AssignmentLike(sub.ReturnType, node.Value, node.Value.Position())
		if sem.Bad(value) {
			return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
		}
	} else if !typing.Equivalent(sub.ReturnType, typing.VoidTyp) {
		w.logError(logging.DiagMissingReturnValue, node.ReturnKw.Position())
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}

	return &sem.ReturnStmt{StmtBase: sem.NewStmtBase(node.Position()), Value: value}
}

// walkBlockStmt binds a begin/end block, introducing a nested scope for any
// local data declarations
func (w *Walker) walkBlockStmt(node *syntax.BlockStatement) sem.Statement {
	block := sem.NewBlock("", node.Position(), w.Scope)
	inner := w.inScope(block.MemberScope())

	body := inner.StatementList(node.Items, node.Position())

	return &sem.BlockStmt{
		StmtBase: sem.NewStmtBase(node.Position()),
		Block:    block,
		Body:     body,
	}
}

// walkForLoopStmt binds a for loop; header declarations live in a scope of
// their own so the loop variable does not leak
func (w *Walker) walkForLoopStmt(node *syntax.ForLoopStatement) sem.Statement {
	block := sem.NewBlock("", node.Position(), w.Scope)
	inner := w.inScope(block.MemberScope())

	var inits []sem.Statement
	for _, initSyn := range node.Initializers {
		switch init := initSyn.(type) {
		case *syntax.DataDeclaration:
			inits = append(inits, inner.walkDataDeclaration(init)...)
		case syntax.ExpressionNode:
			e := inner.SelfDetermined(init)
			if !sem.Bad(e) {
				inits = append(inits, &sem.ExpressionStmt{StmtBase: sem.NewStmtBase(init.Position()), Expr: e})
			}
		}
	}

	var stop sem.Expression
	if node.StopExpr != nil {
		stop = inner.SelfDetermined(node.StopExpr)
		if !sem.Bad(stop) && !predicateType(stop.Type()) {
			stop = inner.badExpr(stop, stop.Position(), logging.DiagTypeMismatch,
				stop.Type().Repr(), "a 1-bit predicate")
		}
	}

	steps := make([]sem.Expression, 0, len(node.Steps))
	for _, stepSyn := range node.Steps {
		step := inner.SelfDetermined(stepSyn)
		if !sem.Bad(step) {
			steps = append(steps, step)
		}
	}

	body := inner.Statement(node.Body)

	return &sem.ForLoopStmt{
		StmtBase:     sem.NewStmtBase(node.Position()),
		Block:        block,
		Initializers: inits,
		StopExpr:     stop,
		Steps:        steps,
		Body:         body,
	}
}

// walkCaseStmt binds a case statement.  The selector and every item
// expression influence each other to find a common comparison type; arms
// match by case equality at evaluation.
func (w *Walker) walkCaseStmt(node *syntax.CaseStatement) sem.Statement {
	selector := w.walkExpr(node.Selector)
	if sem.Bad(selector) {
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}

	common := selector.Type()
	items := make([]*sem.CaseItemStmt, 0, len(node.Items))
	for _, itemSyn := range node.Items {
		item := &sem.CaseItemStmt{}
		for _, exprSyn := range itemSyn.Exprs {
			e := w.walkExpr(exprSyn)
			if sem.Bad(e) {
				return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
			}
			common = typing.BinaryOperatorType(common, e.Type(), false)
			item.Exprs = append(item.Exprs, e)
		}
		item.Stmt = w.Statement(itemSyn.Stmt)
		items = append(items, item)
	}

	if typing.IsError(common) {
		w.logError(logging.DiagTypeMismatch, node.Selector.Position(),
			selector.Type().Repr(), "the case item expressions")
		return &sem.InvalidStmt{StmtBase: sem.NewStmtBase(node.Position())}
	}

	selector = w.contextDetermined(selector, common)
	w.foldConstant(selector)
	for _, item := range items {
		for i, e := range item.Exprs {
			item.Exprs[i] = w.contextDetermined(e, common)
			w.foldConstant(item.Exprs[i])
		}
	}

	var def sem.Statement
	if node.DefaultStmt != nil {
		def = w.Statement(node.DefaultStmt)
	}

	return &sem.CaseStmt{
		StmtBase: sem.NewStmtBase(node.Position()),
		Selector: selector,
		Items:    items,
		Default:  def,
	}
}

// walkDataDeclaration declares the variables of a data declaration in the
// current scope and yields their declaration statements
func (w *Walker) walkDataDeclaration(node *syntax.DataDeclaration) []sem.Statement {
	declType := w.walkType(node.Type)

	var stmts []sem.Statement
	for _, d := range node.Declarators {
		varType := declType
		for i := len(d.UnpackedDims) - 1; i >= 0; i-- {
			rng, ok := w.walkPackedDimension(d.UnpackedDims[i])
			if !ok {
				varType = typing.ErrorTyp
				break
			}
			varType = &typing.UnpackedArrayType{Elem: varType, Range: rng}
		}

		v := sem.NewVariable(d.Name.Value, d.Name.Position(), varType, true)

		if d.Initializer != nil {
			init := w.AssignmentLike(varType, d.Initializer, d.Initializer.Position())
			if !sem.Bad(init) {
				v.Initializer = init
			}
		}

		if !w.Scope.Define(v) {
			w.logError(logging.DiagRedefinedSymbol, d.Name.Position(), d.Name.Value)
			continue
		}

		stmts = append(stmts, &sem.VariableDeclStmt{StmtBase: sem.NewStmtBase(node.Position()), Variable: v})
	}

	return stmts
}

// predicateType indicates whether a type can serve as a 1-bit predicate
func predicateType(dt typing.DataType) bool {
	if _, ok := typing.Integral(dt); ok {
		return true
	}
	_, isFloat := typing.InnerType(dt).(*typing.FloatType)
	return isFloat
}
