package walk

import (
	"svlang/sem"
	"svlang/typing"
)

// Context-Determined Propagation
// ------------------------------
// Expression trees are first built bottom-up with self-determined types.
// When a subexpression feeds a wider context -- the other side of an
// assignment, the common type of a comparison, the arms of a conditional --
// the wider type is pushed back down so intermediate arithmetic happens at
// the full width.  Nodes that participate in propagation retype themselves
// and recurse into their context-determined operands; everything else is a
// propagation boundary and gets a conversion node inserted above it.

// contextDetermined propagates a context type into an expression, returning
// the retyped expression or a conversion wrapping it
func (w *Walker) contextDetermined(e sem.Expression, newType typing.DataType) sem.Expression {
	if sem.Bad(e) {
		return e
	}

	if w.propagateType(e, newType) {
		return e
	}

	if typing.Equivalent(e.Type(), newType) {
		return e
	}

	return &sem.ConversionExpr{
		ExprBase:   sem.NewExprBase(newType, e.Position()),
		Operand:    e,
		IsImplicit: true,
	}
}

// propagateType attempts to retype the node in place, recursing into
// context-determined operands.  It returns false when the node is a
// propagation boundary.
func (w *Walker) propagateType(e sem.Expression, newType typing.DataType) bool {
	// only integral contexts propagate; a real context converts instead
	if _, ok := typing.Integral(newType); !ok {
		return false
	}
	info, ok := typing.Integral(e.Type())
	if !ok {
		return false
	}
	newInfo, _ := typing.Integral(newType)
	if newInfo.Width < info.Width {
		// propagation only ever widens; narrowing is a conversion
		return false
	}

	switch v := e.(type) {
	case *sem.IntegerLiteralExpr:
		v.SetType(newType)
		v.ClearConstant()
		return true

	case *sem.UnbasedUnsizedLiteralExpr:
		v.SetType(newType)
		v.ClearConstant()
		return true

	case *sem.UnaryExpr:
		switch v.Op {
		case sem.UnaryPlus, sem.UnaryMinus, sem.UnaryBitwiseNot:
			v.SetType(newType)
			v.ClearConstant()
			v.Operand = w.contextDetermined(v.Operand, newType)
			return true
		}
		return false

	case *sem.BinaryExpr:
		switch {
		case isArithmeticOp(v.Op), isBitwiseOp(v.Op):
			v.SetType(newType)
			v.ClearConstant()
			v.Left = w.contextDetermined(v.Left, newType)
			v.Right = w.contextDetermined(v.Right, newType)
			return true
		case isShiftOp(v.Op), isDivisionOp(v.Op):
			// the shift amount and the divisor remain self-determined
			v.SetType(newType)
			v.ClearConstant()
			v.Left = w.contextDetermined(v.Left, newType)
			return true
		}
		return false

	case *sem.ConditionalExpr:
		// the predicate is self-determined; only the arms widen
		v.SetType(newType)
		v.ClearConstant()
		v.Left = w.contextDetermined(v.Left, newType)
		v.Right = w.contextDetermined(v.Right, newType)
		return true
	}

	return false
}
