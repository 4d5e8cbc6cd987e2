package eval

import (
	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/typing"
)

// execResult reports how a statement finished
type execResult int

// Enumeration of statement execution results
const (
	execNormal execResult = iota
	execReturned
	execFailed
)

// ExecStatement runs a bound statement in the current frame, returning false
// only when execution failed; completing normally and returning from the
// subroutine both report true
func (ctx *Context) ExecStatement(s sem.Statement) bool {
	return ctx.execStatement(s) != execFailed
}

// execStatement is the internal statement dispatcher.  Every statement other
// than a statement list or block consumes one unit of the step budget and
// polls the cancellation flag.
func (ctx *Context) execStatement(s sem.Statement) execResult {
	if s == nil {
		return execNormal
	}

	// groupings don't consume budget; only the statements inside them do
	switch v := s.(type) {
	case *sem.StatementList:
		for _, stmt := range v.Stmts {
			if r := ctx.execStatement(stmt); r != execNormal {
				return r
			}
		}
		return execNormal

	case *sem.BlockStmt:
		return ctx.execStatement(v.Body)
	}

	if !ctx.checkCancel(s.Position()) || !ctx.step(s.Position()) {
		return execFailed
	}

	switch v := s.(type) {
	case *sem.InvalidStmt:
		return execFailed

	case *sem.ExpressionStmt:
		if ctx.Eval(v.Expr).IsBad() {
			return execFailed
		}
		return execNormal

	case *sem.ReturnStmt:
		f := ctx.topFrame()
		f.returned = true
		if v.Value != nil {
			cv := ctx.Eval(v.Value)
			if cv.IsBad() {
				return execFailed
			}
			f.returnValue = cv
		}
		return execReturned

	case *sem.ConditionalStmt:
		return ctx.execConditional(v)

	case *sem.ForLoopStmt:
		return ctx.execForLoop(v)

	case *sem.CaseStmt:
		return ctx.execCase(v)

	case *sem.VariableDeclStmt:
		return ctx.execVariableDecl(v)

	default:
		return execFailed
	}
}

// execConditional evaluates the predicate and runs the matching branch.  An
// unknown predicate takes the else branch, or fails outright in strict
// mode.
func (ctx *Context) execConditional(v *sem.ConditionalStmt) execResult {
	switch ctx.truthOf(v.Cond) {
	case truthTrue:
		return ctx.execStatement(v.IfTrue)
	case truthFalse:
		return ctx.execStatement(v.IfFalse)
	case truthX:
		if ctx.opts.StrictX {
			ctx.fail(logging.DiagConstantRequired, v.Cond.Position(),
				"conditional predicate is unknown")
			return execFailed
		}
		return ctx.execStatement(v.IfFalse)
	default:
		return execFailed
	}
}

// execForLoop runs a bound for loop; every iteration consumes one unit of
// budget before the stop expression is re-evaluated, plus whatever its body
// statements consume
func (ctx *Context) execForLoop(v *sem.ForLoopStmt) execResult {
	for _, init := range v.Initializers {
		if r := ctx.execStatement(init); r != execNormal {
			return r
		}
	}

	for {
		if !ctx.checkCancel(v.Position()) || !ctx.step(v.Position()) {
			return execFailed
		}

		if v.StopExpr != nil {
			switch ctx.truthOf(v.StopExpr) {
			case truthTrue:
			case truthFalse:
				return execNormal
			case truthX:
				if ctx.opts.StrictX {
					ctx.fail(logging.DiagConstantRequired, v.StopExpr.Position(),
						"loop condition is unknown")
					return execFailed
				}
				return execNormal
			default:
				return execFailed
			}
		}

		if r := ctx.execStatement(v.Body); r != execNormal {
			return r
		}

		for _, step := range v.Steps {
			if ctx.Eval(step).IsBad() {
				return execFailed
			}
		}
	}
}

// execCase matches the selector against each arm by case equality, exactly
// as `===` compares, falling back to the default arm
func (ctx *Context) execCase(v *sem.CaseStmt) execResult {
	selector := ctx.Eval(v.Selector)
	if selector.IsBad() {
		return execFailed
	}

	for _, item := range v.Items {
		for _, e := range item.Exprs {
			cv := ctx.Eval(e)
			if cv.IsBad() {
				return execFailed
			}

			matched := false
			if selector.Kind() == numeric.CVInteger && cv.Kind() == numeric.CVInteger {
				matched = selector.Integer().CaseEq(cv.Integer()) == numeric.Bit1
			} else {
				matched = selector.Equal(cv)
			}

			if matched {
				return ctx.execStatement(item.Stmt)
			}
		}
	}

	return ctx.execStatement(v.Default)
}

// execVariableDecl brings a block local into the current frame, running its
// initializer or defaulting the value
func (ctx *Context) execVariableDecl(v *sem.VariableDeclStmt) execResult {
	value := defaultValue(v.Variable.Type)
	if v.Variable.Initializer != nil {
		cv := ctx.Eval(v.Variable.Initializer)
		if cv.IsBad() {
			return execFailed
		}
		value = ConvertValue(cv, v.Variable.Type)
	}

	ctx.topFrame().vars[v.Variable] = value
	return execNormal
}

// EvalSubroutine executes a bound subroutine with the given argument
// values, as the interactive session does.  Arguments map positionally to
// the subroutine's formals.
func (ctx *Context) EvalSubroutine(sub *sem.SubroutineSymbol, args []numeric.ConstantValue) numeric.ConstantValue {
	if sub.Body == nil || len(args) != len(sub.Args) {
		return numeric.BadValue
	}

	if !ctx.pushFrame(sub, sub.Position()) {
		return numeric.BadValue
	}
	for i, formal := range sub.Args {
		ctx.topFrame().vars[formal] = ConvertValue(args[i], formal.Type)
	}

	ctx.execStatement(sub.Body)
	f := ctx.popFrame()

	if ctx.failed {
		return numeric.BadValue
	}
	if !f.returned {
		if typing.Equivalent(sub.ReturnType, typing.VoidTyp) {
			return numeric.NullValue()
		}
		return defaultValue(sub.ReturnType)
	}

	return ConvertValue(f.returnValue, sub.ReturnType)
}
