package walk

import (
	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// systemSubroutine describes one `$name` function: argument bounds and a
// checker that validates the bound arguments and supplies the result type
type systemSubroutine struct {
	name             string
	minArgs, maxArgs int
	check            func(w *Walker, node *syntax.Invocation, args []sem.Expression) (typing.DataType, bool)
}

// systemSubroutines is the registry of system functions the binder knows.
// Evaluation lives with the evaluator; the entries here only type-check.
var systemSubroutines = map[string]*systemSubroutine{
	"$bits": {
		name: "$bits", minArgs: 1, maxArgs: 1,
		check: func(w *Walker, node *syntax.Invocation, args []sem.Expression) (typing.DataType, bool) {
			target := args[0].Type()
			if dt, ok := args[0].(*sem.DataTypeExpr); ok {
				target = dt.Stored
			}
			if typing.BitWidth(target) == 0 {
				w.logError(logging.DiagTypeMismatch, args[0].Position(),
					target.Repr(), "a fixed-size type")
				return nil, false
			}
			return typing.IntType, true
		},
	},
	"$clog2": {
		name: "$clog2", minArgs: 1, maxArgs: 1,
		check: func(w *Walker, node *syntax.Invocation, args []sem.Expression) (typing.DataType, bool) {
			if _, ok := typing.Integral(args[0].Type()); !ok {
				w.logError(logging.DiagTypeMismatch, args[0].Position(),
					args[0].Type().Repr(), "an integral type")
				return nil, false
			}
			return typing.IntType, true
		},
	},
}

// walkSystemCall binds a `$name(...)` call through the registry
func (w *Walker) walkSystemCall(node *syntax.Invocation, name string) sem.Expression {
	sub, ok := systemSubroutines[name]
	if !ok {
		return w.badExpr(nil, node.Position(), logging.DiagUnknownSystemFunction, name)
	}

	if len(node.Args) < sub.minArgs || len(node.Args) > sub.maxArgs {
		return w.badExpr(nil, node.Position(), logging.DiagWrongArgumentCount,
			sub.minArgs, len(node.Args))
	}

	args := make([]sem.Expression, len(node.Args))
	for i, argSyn := range node.Args {
		args[i] = w.SelfDetermined(argSyn)
		if sem.Bad(args[i]) {
			return silentBad(args[i], node.Position())
		}
	}

	typ, ok := sub.check(w, node, args)
	if !ok {
		return silentBad(nil, node.Position())
	}

	call := &sem.CallExpr{
		ExprBase:   sem.NewExprBase(typ, node.Position()),
		SystemName: name,
		Args:       args,
	}

	// $bits folds immediately: the answer depends only on the argument type
	if name == "$bits" {
		target := args[0].Type()
		if dt, ok := args[0].(*sem.DataTypeExpr); ok {
			target = dt.Stored
		}
		width, err := numeric.New(32, true, uint64(typing.BitWidth(target)))
		if err == nil {
			call.SetConstant(numeric.IntegerValue(width))
		}
	}

	return call
}
