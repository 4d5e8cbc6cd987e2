package walk

import (
	"svlang/logging"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// walkInvocation binds a call to a user subroutine or a system subroutine
func (w *Walker) walkInvocation(node *syntax.Invocation) sem.Expression {
	if sysName, ok := node.Target.(*syntax.SystemName); ok {
		return w.walkSystemCall(node, sysName.Tok.Value)
	}

	var parts []*syntax.Token
	switch t := node.Target.(type) {
	case *syntax.IdentifierName:
		parts = []*syntax.Token{t.Ident}
	case *syntax.ScopedName:
		parts = t.Parts
	default:
		return w.badExpr(nil, node.Position(), logging.DiagNotASubroutine, "expression")
	}

	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Value
	}

	sym, failed, ok := w.Scope.LookupPath(names, node.Target.Position(), w.LookupKind)
	if !ok {
		if sym != nil {
			return w.badExpr(nil, node.Target.Position(), logging.DiagNotAScope, sym.Name())
		}
		return w.badExpr(nil, node.Target.Position(), logging.DiagUndeclaredIdentifier, failed)
	}

	sub, ok := sym.(*sem.SubroutineSymbol)
	if !ok {
		return w.badExpr(nil, node.Target.Position(), logging.DiagNotASubroutine, sym.Name())
	}

	sub.EnsureBound()
	return w.walkUserCall(node, sub)
}

// walkUserCall validates the argument list against the subroutine's formals
// and binds each argument assignment-like to its declared type
func (w *Walker) walkUserCall(node *syntax.Invocation, sub *sem.SubroutineSymbol) sem.Expression {
	if len(node.Args) > len(sub.Args) {
		return w.badExpr(nil, node.Position(), logging.DiagWrongArgumentCount,
			len(sub.Args), len(node.Args))
	}

	args := make([]sem.Expression, len(sub.Args))
	for i, formal := range sub.Args {
		var argSyn syntax.ExpressionNode
		if i < len(node.Args) {
			argSyn = node.Args[i]
		}

		// a missing or empty argument falls back to the formal's default
		if argSyn == nil || argSyn.Kind() == syntax.SynEmptyArgument {
			if formal.Default == nil {
				return w.badExpr(nil, node.Position(), logging.DiagWrongArgumentCount,
					len(sub.Args), len(node.Args))
			}
			args[i] = formal.Default
			continue
		}

		if formal.Direction == syntax.DirIn {
			args[i] = w.AssignmentLike(formal.Type, argSyn, argSyn.Position())
		} else {
			// out, inout, and ref arguments must be lvalues of a compatible
			// type; the value flows back at call return
			arg := w.walkExpr(argSyn)
			if sem.Bad(arg) {
				return silentBad(arg, node.Position())
			}
			if _, ok := w.requireLValue(arg); !ok {
				return w.badExpr(arg, argSyn.Position(), logging.DiagInvalidLValue)
			}
			if typing.AssignableFrom(formal.Type, arg.Type()) == typing.ConvertNone {
				return w.badExpr(arg, argSyn.Position(), logging.DiagTypeMismatch,
					arg.Type().Repr(), formal.Type.Repr())
			}
			args[i] = arg
		}

		if sem.Bad(args[i]) {
			return silentBad(args[i], node.Position())
		}
	}

	return &sem.CallExpr{
		ExprBase:   sem.NewExprBase(sub.ReturnType, node.Position()),
		Subroutine: sub,
		Args:       args,
	}
}
