package walk

import (
	"go.uber.org/zap"

	"svlang/eval"
	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// Walker is the construct responsible for turning expression and statement
// syntax into typed bound trees.  A walker is positioned at a scope; nested
// scopes get child walkers via inScope.  Walkers are cheap values: copying
// one to reposition it is the normal mode of use.
type Walker struct {
	// Scope is the scope names resolve against
	Scope *sem.Scope

	// Log is the compilation's diagnostic sink
	Log *logging.Logger

	// Types is the compilation's shared type intern table
	Types *typing.Table

	// Tracer receives debug traces of binding decisions
	Tracer *zap.Logger

	// LookupKind selects the visibility rule for name resolution
	LookupKind sem.LookupKind

	// subroutine is the innermost subroutine being bound, for return
	// statements
	subroutine *sem.SubroutineSymbol
}

// NewWalker creates a walker positioned at the given scope
func NewWalker(scope *sem.Scope, log *logging.Logger, types *typing.Table) *Walker {
	return &Walker{
		Scope:  scope,
		Log:    log,
		Types:  types,
		Tracer: zap.NewNop(),
	}
}

// WithLogger sets the trace logger for the walker
func (w *Walker) WithLogger(log *zap.Logger) *Walker {
	w.Tracer = log.With(zap.String("component", "walk"))
	return w
}

// inScope returns a child walker positioned at the given scope
func (w *Walker) inScope(scope *sem.Scope) *Walker {
	child := *w
	child.Scope = scope
	return &child
}

// inSubroutine returns a child walker positioned inside the given
// subroutine's scope with procedural lookup rules
func (w *Walker) inSubroutine(sub *sem.SubroutineSymbol) *Walker {
	child := *w
	child.Scope = sub.MemberScope()
	child.subroutine = sub
	child.LookupKind = sem.LookupProcedural
	return &child
}

// -----------------------------------------------------------------------------

// SelfDetermined binds an expression whose type is decided by its operands
// alone, then folds it if it is constant
func (w *Walker) SelfDetermined(node syntax.ExpressionNode) sem.Expression {
	e := w.walkExpr(node)
	w.foldConstant(e)
	return e
}

// AssignmentLike binds an expression typed and width-adjusted to the given
// left-hand type, as for assignments, argument passing, and returns
func (w *Walker) AssignmentLike(lhsType typing.DataType, node syntax.ExpressionNode, pos *logging.TextPosition) sem.Expression {
	e := w.walkExpr(node)
	if sem.Bad(e) {
		return e
	}

	e = w.convertAssignment(lhsType, e, pos)
	w.foldConstant(e)

	w.Tracer.Debug("bound assignment-like expression",
		zap.String("lhs", lhsType.Repr()),
		zap.String("result", e.Type().Repr()))
	return e
}

// convertAssignment applies the assignment-compatibility rules, widening or
// converting the expression to the left-hand type
func (w *Walker) convertAssignment(lhsType typing.DataType, e sem.Expression, pos *logging.TextPosition) sem.Expression {
	if pos == nil {
		pos = e.Position()
	}

	switch typing.AssignableFrom(lhsType, e.Type()) {
	case typing.ConvertImplicit:
		lInfo, lok := typing.Integral(lhsType)
		rInfo, rok := typing.Integral(e.Type())
		if lok && rok && lInfo.Width < rInfo.Width {
			w.Log.ReportCode(logging.DiagWidthMismatch, pos, rInfo.Width, lInfo.Width)
		}
		return w.contextDetermined(e, lhsType)

	case typing.ConvertExplicit:
		w.Log.ReportCode(logging.DiagInvalidConversion, pos, e.Type().Repr(), lhsType.Repr())

	default:
		w.Log.ReportCode(logging.DiagTypeMismatch, pos, e.Type().Repr(), lhsType.Repr())
	}

	return sem.NewInvalid(e, pos)
}

// WalkType resolves data type syntax to a semantic type
func (w *Walker) WalkType(node syntax.TypeNode) typing.DataType {
	return w.walkType(node)
}

// WalkRange folds a packed or unpacked dimension to a constant range
func (w *Walker) WalkRange(dim *syntax.PackedDimension) (typing.Range, bool) {
	return w.walkPackedDimension(dim)
}

// SubroutineBody binds a subroutine's item list inside its scope, with
// return statements targeting the subroutine
func (w *Walker) SubroutineBody(sub *sem.SubroutineSymbol, items []syntax.Node, pos *logging.TextPosition) *sem.StatementList {
	return w.inSubroutine(sub).StatementList(items, pos)
}

// -----------------------------------------------------------------------------

// foldConstant attempts constant evaluation of a bound expression and caches
// the result on the node.  Failures are silent: folding is opportunistic,
// and constant-required contexts re-evaluate with diagnostics.
func (w *Walker) foldConstant(e sem.Expression) {
	if sem.Bad(e) || !foldable(e) {
		return
	}
	if _, ok := e.Constant(); ok {
		return
	}

	ctx := eval.NewContext(eval.DefaultOptions())
	cv := ctx.Eval(e)
	if cv.IsBad() {
		return
	}

	type constSetter interface{ SetConstant(numeric.ConstantValue) }
	if setter, ok := e.(constSetter); ok {
		setter.SetConstant(cv)
	}
}

// foldable rejects trees whose value depends on evaluation state: anything
// with side effects or reads of frame variables must not cache a bind-time
// value
func foldable(e sem.Expression) bool {
	ok := true
	sem.WalkExpression(e, func(n sem.Expression) bool {
		switch v := n.(type) {
		case *sem.AssignmentExpr:
			ok = false
		case *sem.UnaryExpr:
			switch v.Op {
			case sem.UnaryPreincrement, sem.UnaryPredecrement,
				sem.UnaryPostincrement, sem.UnaryPostdecrement:
				ok = false
			}
		case *sem.NamedValueExpr:
			switch v.Symbol.(type) {
			case *sem.ParameterSymbol, *sem.EnumMemberSymbol:
			default:
				ok = false
			}
		case *sem.CallExpr:
			if v.Subroutine != nil {
				for _, formal := range v.Subroutine.Args {
					if formal.Direction != syntax.DirIn {
						ok = false
					}
				}
			}
		}
		return ok
	})
	return ok
}

// foldInteger folds an expression that must be a compile-time integer,
// reporting a constant-required diagnostic on failure
func (w *Walker) foldInteger(e sem.Expression, what string) (numeric.SVInt, bool) {
	if sem.Bad(e) {
		return numeric.SVInt{}, false
	}

	// a read of a variable or a side effect is never a compile-time integer,
	// even where evaluation outside a frame would yield a default value
	if !foldable(e) {
		w.Log.ReportCode(logging.DiagConstantRequired, e.Position(), what)
		return numeric.SVInt{}, false
	}

	ctx := eval.NewContext(eval.DefaultOptions())
	cv := ctx.Eval(e)
	if cv.IsBad() || cv.Kind() != numeric.CVInteger {
		w.Log.ReportCode(logging.DiagConstantRequired, e.Position(), what)
		ctx.FlushTo(w.Log)
		return numeric.SVInt{}, false
	}

	return cv.Integer(), true
}

// foldInt32 folds an expression to a machine integer
func (w *Walker) foldInt32(e sem.Expression, what string) (int32, bool) {
	sv, ok := w.foldInteger(e, what)
	if !ok {
		return 0, false
	}

	v, ok := sv.AsInt32()
	if !ok {
		w.Log.ReportCode(logging.DiagConstantRequired, e.Position(), what)
		return 0, false
	}

	return v, true
}
