package walk

import (
	"strconv"

	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// walkExpr walks an expression node and returns a bound expression with its
// self-determined type.  Binding failures return an invalid expression; the
// parents short-circuit without further diagnostics.
func (w *Walker) walkExpr(node syntax.ExpressionNode) sem.Expression {
	switch v := node.(type) {
	case *syntax.IntegerLiteral:
		return w.walkIntegerLiteral(v.Tok, v.Position())
	case *syntax.IntegerVectorLiteral:
		return w.walkIntegerLiteral(v.Tok, v.Position())
	case *syntax.UnbasedUnsizedLiteral:
		return w.walkUnbasedUnsized(v)
	case *syntax.RealLiteral:
		return w.walkRealLiteral(v)
	case *syntax.StringLiteral:
		e := &sem.StringLiteralExpr{ExprBase: sem.NewExprBase(typing.StrType, v.Position()), Value: v.Tok.Value}
		e.SetConstant(numeric.StringValue(v.Tok.Value))
		return e
	case *syntax.NullLiteral:
		e := &sem.NullLiteralExpr{ExprBase: sem.NewExprBase(typing.NullTyp, v.Position())}
		e.SetConstant(numeric.NullValue())
		return e
	case *syntax.IdentifierName:
		return w.walkName([]*syntax.Token{v.Ident}, v.Position())
	case *syntax.ScopedName:
		return w.walkName(v.Parts, v.Position())
	case *syntax.UnaryExpression:
		return w.walkUnary(v)
	case *syntax.BinaryExpression:
		return w.walkBinary(v)
	case *syntax.ConditionalExpression:
		return w.walkConditional(v)
	case *syntax.InsideExpression:
		return w.walkInside(v)
	case *syntax.Concatenation:
		return w.walkConcatenation(v)
	case *syntax.Replication:
		return w.walkReplication(v)
	case *syntax.ElementSelectExpression:
		return w.walkSelect(v)
	case *syntax.MemberAccessExpression:
		return w.walkMemberAccess(v)
	case *syntax.Invocation:
		return w.walkInvocation(v)
	case *syntax.CastExpression:
		return w.walkCast(v)
	case *syntax.AssignmentExpression:
		return w.walkAssignment(v)
	case *syntax.DataTypeExpression:
		typ := w.walkType(v.Type)
		return &sem.DataTypeExpr{ExprBase: sem.NewExprBase(typ, v.Position()), Stored: typ}
	case *syntax.EmptyArgument:
		return &sem.EmptyArgumentExpr{ExprBase: sem.NewExprBase(typing.VoidTyp, v.Position())}
	default:
		return silentBad(nil, node.Position())
	}
}

// -----------------------------------------------------------------------------

// walkIntegerLiteral parses a sized or unsized integer literal into a typed
// literal expression
func (w *Walker) walkIntegerLiteral(tok *syntax.Token, pos *logging.TextPosition) sem.Expression {
	sv, err := numeric.ParseVector(tok.Value)
	if err != nil {
		if err == numeric.ErrLiteralWidth {
			return w.badExpr(nil, pos, logging.DiagZeroWidthVector)
		}
		return silentBad(nil, pos)
	}

	typ := w.Types.Integral(sv.Width(), sv.IsSigned(), sv.IsFourState())
	e := &sem.IntegerLiteralExpr{ExprBase: sem.NewExprBase(typ, pos), Value: sv}
	e.SetConstant(numeric.IntegerValue(sv))
	return e
}

// walkUnbasedUnsized binds `'0`, `'1`, `'x`, `'z`; its provisional type is a
// single bit, widened by whatever context it propagates into
func (w *Walker) walkUnbasedUnsized(node *syntax.UnbasedUnsizedLiteral) sem.Expression {
	fill, err := numeric.ParseUnbasedUnsized(node.Tok.Value)
	if err != nil {
		return silentBad(nil, node.Position())
	}

	typ := w.Types.Integral(1, false, true)
	return &sem.UnbasedUnsizedLiteralExpr{ExprBase: sem.NewExprBase(typ, node.Position()), Fill: fill}
}

// walkRealLiteral binds a floating literal
func (w *Walker) walkRealLiteral(node *syntax.RealLiteral) sem.Expression {
	value, err := strconv.ParseFloat(node.Tok.Value, 64)
	if err != nil {
		return silentBad(nil, node.Position())
	}

	e := &sem.RealLiteralExpr{ExprBase: sem.NewExprBase(typing.RealType, node.Position()), Value: value}
	e.SetConstant(numeric.RealValue(value))
	return e
}

// walkName resolves a simple or dotted name to a named value expression
func (w *Walker) walkName(parts []*syntax.Token, pos *logging.TextPosition) sem.Expression {
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Value
	}

	var sym sem.Symbol
	if len(names) == 1 {
		var ok bool
		sym, ok = w.Scope.Lookup(names[0], pos, w.LookupKind)
		if !ok {
			return w.badExpr(nil, pos, logging.DiagUndeclaredIdentifier, names[0])
		}
	} else {
		var failed string
		var ok bool
		sym, failed, ok = w.Scope.LookupPath(names, pos, w.LookupKind)
		if !ok {
			if sym != nil {
				return w.badExpr(nil, pos, logging.DiagNotAScope, sym.Name())
			}
			return w.badExpr(nil, pos, logging.DiagUndeclaredIdentifier, failed)
		}
	}

	// late-bound symbols resolve their types on first reference
	sem.ForceBound(sym)

	switch v := sym.(type) {
	case *sem.TypeAliasSymbol:
		// a type name in expression position adapts to a data type operand
		return &sem.DataTypeExpr{ExprBase: sem.NewExprBase(v.Aliased, pos), Stored: v.Aliased}

	case sem.ValueSymbol:
		hierarchical := len(names) > 1
		e := &sem.NamedValueExpr{
			ExprBase:       sem.NewExprBase(v.DataType(), pos),
			Symbol:         v,
			IsHierarchical: hierarchical,
		}
		return e

	default:
		return w.badExpr(nil, pos, logging.DiagTypeMismatch, sym.Name(), "value")
	}
}

// -----------------------------------------------------------------------------

// walkUnary binds a unary operator application
func (w *Walker) walkUnary(node *syntax.UnaryExpression) sem.Expression {
	op, ok := unaryOperator(node.OpTok, node.Postfix)
	if !ok {
		return silentBad(nil, node.Position())
	}

	operand := w.walkExpr(node.Operand)
	if sem.Bad(operand) {
		return silentBad(operand, node.Position())
	}

	info, integral := typing.Integral(operand.Type())
	_, isFloat := typing.InnerType(operand.Type()).(*typing.FloatType)

	var typ typing.DataType
	switch op {
	case sem.UnaryPlus, sem.UnaryMinus:
		if !integral && !isFloat {
			return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
				operand.Type().Repr(), "a numeric type")
		}
		typ = operand.Type()

	case sem.UnaryBitwiseNot:
		if !integral {
			return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
				operand.Type().Repr(), "an integral type")
		}
		typ = operand.Type()

	case sem.UnaryReductionAnd, sem.UnaryReductionOr, sem.UnaryReductionXor,
		sem.UnaryReductionNand, sem.UnaryReductionNor, sem.UnaryReductionXnor:
		if !integral {
			return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
				operand.Type().Repr(), "an integral type")
		}
		typ = w.Types.Integral(1, false, info.FourState)

	case sem.UnaryLogicalNot:
		if !integral && !isFloat {
			return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
				operand.Type().Repr(), "a numeric type")
		}
		typ = w.Types.Integral(1, false, info.FourState)

	default:
		// increment and decrement require a mutable storage location
		if _, ok := w.requireLValue(operand); !ok {
			return w.badExpr(operand, node.Position(), logging.DiagInvalidLValue)
		}
		if !integral {
			return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
				operand.Type().Repr(), "an integral type")
		}
		typ = operand.Type()
	}

	return &sem.UnaryExpr{ExprBase: sem.NewExprBase(typ, node.Position()), Op: op, Operand: operand}
}

// walkBinary binds a binary operator application with the self-determined
// operator typing rules
func (w *Walker) walkBinary(node *syntax.BinaryExpression) sem.Expression {
	op, ok := binaryOperator(node.OpTok)
	if !ok {
		return silentBad(nil, node.Position())
	}

	left := w.walkExpr(node.Left)
	right := w.walkExpr(node.Right)
	if sem.Bad(left) || sem.Bad(right) {
		return silentBad(nil, node.Position())
	}

	pos := node.Position()
	lt, rt := left.Type(), right.Type()

	var typ typing.DataType
	switch {
	case isArithmeticOp(op):
		typ = typing.BinaryOperatorType(lt, rt, false)
		if typing.IsError(typ) {
			return w.badExpr(nil, pos, logging.DiagTypeMismatch, rt.Repr(), lt.Repr())
		}

	case isDivisionOp(op):
		// the result follows the dividend's width; the divisor stays
		// self-determined
		typ = typing.DivisionOperatorType(lt, rt, false)
		if typing.IsError(typ) {
			return w.badExpr(nil, pos, logging.DiagTypeMismatch, rt.Repr(), lt.Repr())
		}

	case isBitwiseOp(op):
		if !bothIntegral(lt, rt) {
			return w.badExpr(nil, pos, logging.DiagTypeMismatch, rt.Repr(), lt.Repr())
		}
		typ = typing.BinaryOperatorType(lt, rt, false)

	case isComparisonOp(op):
		// the operands still share a common comparison type even though the
		// result collapses to a single bit
		common := typing.BinaryOperatorType(lt, rt, false)
		if typing.IsError(common) {
			if !comparableNonNumeric(lt, rt) {
				return w.badExpr(nil, pos, logging.DiagTypeMismatch, rt.Repr(), lt.Repr())
			}
		} else {
			left = w.contextDetermined(left, common)
			right = w.contextDetermined(right, common)
		}
		typ = w.comparisonResultType(op, lt, rt)

	case isLogicalOp(op):
		typ = w.Types.Integral(1, false, eitherFourState(lt, rt))

	case isShiftOp(op):
		if !bothIntegral(lt, rt) {
			return w.badExpr(nil, pos, logging.DiagTypeMismatch, rt.Repr(), lt.Repr())
		}
		// the result follows the left operand; the shift amount stays
		// self-determined
		typ = lt

	default:
		return silentBad(nil, pos)
	}

	return &sem.BinaryExpr{ExprBase: sem.NewExprBase(typ, pos), Op: op, Left: left, Right: right}
}

// comparisonResultType yields the single-bit result type of a comparison:
// case equality is always two-state, everything else is four-state when
// either operand is
func (w *Walker) comparisonResultType(op sem.BinaryOperator, lt, rt typing.DataType) typing.DataType {
	switch op {
	case sem.BinaryCaseEquality, sem.BinaryCaseInequality:
		return w.Types.Integral(1, false, false)
	default:
		return w.Types.Integral(1, false, eitherFourState(lt, rt))
	}
}

// walkConditional binds the ternary operator; the result type is the common
// type of the two arms
func (w *Walker) walkConditional(node *syntax.ConditionalExpression) sem.Expression {
	cond := w.SelfDetermined(node.Cond)
	left := w.walkExpr(node.Left)
	right := w.walkExpr(node.Right)
	if sem.Bad(cond) || sem.Bad(left) || sem.Bad(right) {
		return silentBad(nil, node.Position())
	}

	typ := typing.BinaryOperatorType(left.Type(), right.Type(), false)
	if typing.IsError(typ) {
		if typing.Equivalent(left.Type(), right.Type()) {
			typ = left.Type()
		} else {
			return w.badExpr(nil, node.Position(), logging.DiagTypeMismatch,
				right.Type().Repr(), left.Type().Repr())
		}
	}

	return &sem.ConditionalExpr{
		ExprBase: sem.NewExprBase(typ, node.Position()),
		Cond:     cond, Left: left, Right: right,
	}
}

// walkInside binds the set membership operator.  The checked value and
// every member of the set influence each other to find a common comparison
// type.
func (w *Walker) walkInside(node *syntax.InsideExpression) sem.Expression {
	value := w.walkExpr(node.Value)
	if sem.Bad(value) {
		return silentBad(value, node.Position())
	}

	entries := make([]sem.Expression, 0, len(node.Ranges))
	common := value.Type()
	for _, r := range node.Ranges {
		if or, ok := r.(*syntax.OpenRange); ok {
			left := w.walkExpr(or.Left)
			right := w.walkExpr(or.Right)
			if sem.Bad(left) || sem.Bad(right) {
				return silentBad(nil, node.Position())
			}
			common = typing.BinaryOperatorType(common, left.Type(), false)
			common = typing.BinaryOperatorType(common, right.Type(), false)
			entries = append(entries, &sem.OpenRangeExpr{
				ExprBase: sem.NewExprBase(typing.VoidTyp, or.Position()),
				Left:     left, Right: right,
			})
			continue
		}

		e := w.walkExpr(r)
		if sem.Bad(e) {
			return silentBad(e, node.Position())
		}
		common = typing.BinaryOperatorType(common, e.Type(), false)
		entries = append(entries, e)
	}

	if typing.IsError(common) {
		return w.badExpr(nil, node.Position(), logging.DiagTypeMismatch,
			value.Type().Repr(), "the membership set")
	}

	value = w.contextDetermined(value, common)
	for i, e := range entries {
		if or, ok := e.(*sem.OpenRangeExpr); ok {
			or.Left = w.contextDetermined(or.Left, common)
			or.Right = w.contextDetermined(or.Right, common)
			continue
		}
		entries[i] = w.contextDetermined(e, common)
	}

	typ := w.Types.Integral(1, false, true)
	return &sem.InsideExpr{ExprBase: sem.NewExprBase(typ, node.Position()), Value: value, RangeList: entries}
}

// walkConcatenation binds `{...}`; every operand is self-determined and the
// result is an unsigned vector of the summed widths
func (w *Walker) walkConcatenation(node *syntax.Concatenation) sem.Expression {
	operands := make([]sem.Expression, len(node.Elements))
	totalWidth := uint32(0)
	fourState := false

	for i, el := range node.Elements {
		e := w.SelfDetermined(el)
		if sem.Bad(e) {
			return silentBad(e, node.Position())
		}

		info, ok := typing.Integral(e.Type())
		if !ok {
			return w.badExpr(e, el.Position(), logging.DiagTypeMismatch,
				e.Type().Repr(), "an integral type")
		}

		operands[i] = e
		totalWidth += info.Width
		fourState = fourState || info.FourState
	}

	if totalWidth == 0 {
		return w.badExpr(nil, node.Position(), logging.DiagZeroWidthVector)
	}

	typ := w.Types.Integral(totalWidth, false, fourState)
	return &sem.ConcatenationExpr{ExprBase: sem.NewExprBase(typ, node.Position()), Operands: operands}
}

// walkReplication binds `{count{...}}`; the count must fold to a positive
// constant
func (w *Walker) walkReplication(node *syntax.Replication) sem.Expression {
	countExpr := w.SelfDetermined(node.Count)
	count, ok := w.foldInt32(countExpr, "replication count")
	if !ok {
		return silentBad(countExpr, node.Position())
	}
	if count < 1 {
		return w.badExpr(countExpr, node.Count.Position(), logging.DiagInvalidSelect,
			"replication count must be positive")
	}

	operand := w.SelfDetermined(node.Concat)
	if sem.Bad(operand) {
		return silentBad(operand, node.Position())
	}

	info, ok := typing.Integral(operand.Type())
	if !ok {
		return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
			operand.Type().Repr(), "an integral type")
	}

	typ := w.Types.Integral(info.Width*uint32(count), false, info.FourState)
	return &sem.ReplicationExpr{
		ExprBase: sem.NewExprBase(typ, node.Position()),
		Count:    uint32(count),
		Operand:  operand,
	}
}

// walkCast binds an explicit cast `type'(operand)`
func (w *Walker) walkCast(node *syntax.CastExpression) sem.Expression {
	target := w.walkType(node.Target)
	operand := w.SelfDetermined(node.Operand)
	if typing.IsError(target) || sem.Bad(operand) {
		return silentBad(operand, node.Position())
	}

	if typing.AssignableFrom(target, operand.Type()) == typing.ConvertNone {
		return w.badExpr(operand, node.Position(), logging.DiagTypeMismatch,
			operand.Type().Repr(), target.Repr())
	}

	return &sem.ConversionExpr{
		ExprBase:   sem.NewExprBase(target, node.Position()),
		Operand:    operand,
		IsImplicit: false,
	}
}

// walkAssignment binds a blocking assignment in expression position
func (w *Walker) walkAssignment(node *syntax.AssignmentExpression) sem.Expression {
	left := w.walkExpr(node.Left)
	if sem.Bad(left) {
		return silentBad(left, node.Position())
	}

	if _, ok := w.requireLValue(left); !ok {
		return w.badExpr(left, node.Left.Position(), logging.DiagInvalidLValue)
	}

	right := w.AssignmentLike(left.Type(), node.Right, node.Position())
	if sem.Bad(right) {
		return silentBad(right, node.Position())
	}

	return &sem.AssignmentExpr{
		ExprBase: sem.NewExprBase(left.Type(), node.Position()),
		Left:     left, Right: right,
	}
}

// requireLValue checks that an expression denotes a mutable storage
// location: a named variable or formal argument, possibly refined by
// selects and member accesses
func (w *Walker) requireLValue(e sem.Expression) (sem.Expression, bool) {
	switch v := e.(type) {
	case *sem.NamedValueExpr:
		switch v.Symbol.(type) {
		case *sem.VariableSymbol, *sem.FormalArgumentSymbol:
			return e, true
		}
		return e, false
	case *sem.ElementSelectExpr:
		return w.requireLValue(v.Value)
	case *sem.RangeSelectExpr:
		return w.requireLValue(v.Value)
	case *sem.MemberAccessExpr:
		return w.requireLValue(v.Value)
	case *sem.ConcatenationExpr:
		for _, op := range v.Operands {
			if _, ok := w.requireLValue(op); !ok {
				return e, false
			}
		}
		return e, true
	default:
		return e, false
	}
}

// -----------------------------------------------------------------------------

// bothIntegral indicates whether both types carry a bit-level layout
func bothIntegral(a, b typing.DataType) bool {
	_, aok := typing.Integral(a)
	_, bok := typing.Integral(b)
	return aok && bok
}

// eitherFourState indicates whether either type is four-state
func eitherFourState(a, b typing.DataType) bool {
	ai, aok := typing.Integral(a)
	bi, bok := typing.Integral(b)
	return (aok && ai.FourState) || (bok && bi.FourState)
}

// comparableNonNumeric permits equality between strings or matching
// non-numeric types where no common arithmetic type exists
func comparableNonNumeric(a, b typing.DataType) bool {
	return typing.Equivalent(a, b)
}
