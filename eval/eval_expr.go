package eval

import (
	"math"
	"math/big"

	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// Eval evaluates a bound expression to a constant value.  Errors are
// recorded on the context and surface as the bad value; callers decide
// whether they become compilation diagnostics.
func (ctx *Context) Eval(e sem.Expression) numeric.ConstantValue {
	if e == nil {
		return numeric.BadValue
	}

	// a cached fold is authoritative
	if cv, ok := e.Constant(); ok {
		return cv
	}

	switch v := e.(type) {
	case *sem.InvalidExpr:
		return numeric.BadValue

	case *sem.IntegerLiteralExpr:
		return ConvertValue(numeric.IntegerValue(v.Value), v.Type())

	case *sem.UnbasedUnsizedLiteralExpr:
		info, ok := typing.Integral(v.Type())
		if !ok {
			return numeric.BadValue
		}
		sv, err := numeric.Fill(info.Width, info.Signed, v.Fill)
		if err != nil {
			return numeric.BadValue
		}
		if !info.FourState {
			sv = sv.AsTwoState()
		}
		return numeric.IntegerValue(sv)

	case *sem.RealLiteralExpr:
		return numeric.RealValue(v.Value)

	case *sem.StringLiteralExpr:
		return numeric.StringValue(v.Value)

	case *sem.NullLiteralExpr:
		return numeric.NullValue()

	case *sem.NamedValueExpr:
		return ctx.evalNamedValue(v)

	case *sem.UnaryExpr:
		return ctx.evalUnary(v)

	case *sem.BinaryExpr:
		return ctx.evalBinary(v)

	case *sem.ConditionalExpr:
		return ctx.evalConditional(v)

	case *sem.InsideExpr:
		return ctx.evalInside(v)

	case *sem.AssignmentExpr:
		return ctx.evalAssignment(v)

	case *sem.ConcatenationExpr:
		return ctx.evalConcatenation(v)

	case *sem.ReplicationExpr:
		operand, ok := ctx.evalInteger(v.Operand)
		if !ok {
			return numeric.BadValue
		}
		return ConvertValue(numeric.IntegerValue(operand.Replicate(v.Count)), v.Type())

	case *sem.ElementSelectExpr:
		return ctx.evalElementSelect(v)

	case *sem.RangeSelectExpr:
		return ctx.evalRangeSelect(v)

	case *sem.MemberAccessExpr:
		return ctx.evalMemberAccess(v)

	case *sem.CallExpr:
		return ctx.evalCall(v)

	case *sem.ConversionExpr:
		inner := ctx.Eval(v.Operand)
		if inner.IsBad() {
			return numeric.BadValue
		}
		return ConvertValue(inner, v.Type())

	case *sem.DataTypeExpr:
		// a type operand has no value of its own; $bits reads the type
		return numeric.BadValue

	default:
		return numeric.BadValue
	}
}

// evalInteger evaluates an expression that must produce an integer
func (ctx *Context) evalInteger(e sem.Expression) (numeric.SVInt, bool) {
	cv := ctx.Eval(e)
	if cv.IsBad() || cv.Kind() != numeric.CVInteger {
		return numeric.SVInt{}, false
	}
	return cv.Integer(), true
}

// -----------------------------------------------------------------------------

// evalNamedValue resolves a name reference to its current value.
// Parameters and enum members evaluate to their compile-time constants;
// variables read from the frame stack.
func (ctx *Context) evalNamedValue(v *sem.NamedValueExpr) numeric.ConstantValue {
	if v.IsHierarchical {
		return ctx.fail(logging.DiagHierarchicalNotConstant, v.Position(), v.Symbol.Name())
	}

	switch sym := v.Symbol.(type) {
	case *sem.EnumMemberSymbol:
		return numeric.IntegerValue(sym.Value)

	case *sem.ParameterSymbol:
		sym.EnsureBound()
		if cv, ok := sym.Value(); ok {
			return cv
		}
		if sym.Initializer == nil {
			return ctx.fail(logging.DiagNotConstant, v.Position(), sym.Name())
		}
		cv := ctx.Eval(sym.Initializer)
		if cv.IsBad() {
			return numeric.BadValue
		}
		cv = ConvertValue(cv, sym.Type)
		sym.SetValue(cv)
		return cv

	case *sem.VariableSymbol:
		if cv, ok := ctx.findVar(sym); ok {
			return cv
		}
		if !sym.IsAutomatic {
			return ctx.fail(logging.DiagNotConstant, v.Position(), sym.Name())
		}
		if ctx.opts.StrictX {
			return ctx.fail(logging.DiagUninitializedVariable, v.Position(), sym.Name())
		}
		return defaultValue(sym.Type)

	case *sem.FormalArgumentSymbol:
		if cv, ok := ctx.findVar(sym); ok {
			return cv
		}
		return ctx.fail(logging.DiagNotConstant, v.Position(), sym.Name())

	default:
		return ctx.fail(logging.DiagNotConstant, v.Position(), v.Symbol.Name())
	}
}

// -----------------------------------------------------------------------------

// evalUnary dispatches a unary operator over its evaluated operand
func (ctx *Context) evalUnary(v *sem.UnaryExpr) numeric.ConstantValue {
	switch v.Op {
	case sem.UnaryPreincrement, sem.UnaryPredecrement,
		sem.UnaryPostincrement, sem.UnaryPostdecrement:
		return ctx.evalIncrDecr(v)
	}

	cv := ctx.Eval(v.Operand)
	if cv.IsBad() {
		return numeric.BadValue
	}

	if cv.Kind() == numeric.CVReal || cv.Kind() == numeric.CVShortReal {
		return ctx.evalUnaryReal(v, cv)
	}
	if cv.Kind() != numeric.CVInteger {
		return numeric.BadValue
	}

	sv := cv.Integer()
	switch v.Op {
	case sem.UnaryPlus:
		return ConvertValue(cv, v.Type())
	case sem.UnaryMinus:
		return ConvertValue(numeric.IntegerValue(sv.Neg()), v.Type())
	case sem.UnaryBitwiseNot:
		return ConvertValue(numeric.IntegerValue(sv.Not()), v.Type())
	case sem.UnaryReductionAnd:
		return bitResult(sv.ReduceAnd(), v.Type())
	case sem.UnaryReductionOr:
		return bitResult(sv.ReduceOr(), v.Type())
	case sem.UnaryReductionXor:
		return bitResult(sv.ReduceXor(), v.Type())
	case sem.UnaryReductionNand:
		return bitResult(notBit(sv.ReduceAnd()), v.Type())
	case sem.UnaryReductionNor:
		return bitResult(notBit(sv.ReduceOr()), v.Type())
	case sem.UnaryReductionXnor:
		return bitResult(notBit(sv.ReduceXor()), v.Type())
	case sem.UnaryLogicalNot:
		return bitResult(notBit(sv.Truth()), v.Type())
	default:
		return numeric.BadValue
	}
}

// evalUnaryReal handles the unary operators defined over floating values
func (ctx *Context) evalUnaryReal(v *sem.UnaryExpr, cv numeric.ConstantValue) numeric.ConstantValue {
	f, _ := floatOf(cv)
	switch v.Op {
	case sem.UnaryPlus:
		return cv
	case sem.UnaryMinus:
		return numeric.RealValue(-f)
	case sem.UnaryLogicalNot:
		if f == 0 {
			return bitResult(numeric.Bit1, v.Type())
		}
		return bitResult(numeric.Bit0, v.Type())
	default:
		return numeric.BadValue
	}
}

// evalIncrDecr mutates an lvalue in place and yields the pre or post value
func (ctx *Context) evalIncrDecr(v *sem.UnaryExpr) numeric.ConstantValue {
	lv, ok := ctx.EvalLValue(v.Operand)
	if !ok {
		return numeric.BadValue
	}

	old := ctx.loadLValue(lv, v.Position())
	if old.IsBad() || old.Kind() != numeric.CVInteger {
		return numeric.BadValue
	}

	one, err := numeric.New(old.Integer().Width(), old.Integer().IsSigned(), 1)
	if err != nil {
		return numeric.BadValue
	}

	var next numeric.SVInt
	switch v.Op {
	case sem.UnaryPreincrement, sem.UnaryPostincrement:
		next = old.Integer().Add(one)
	default:
		next = old.Integer().Sub(one)
	}

	updated := ConvertValue(numeric.IntegerValue(next), v.Operand.Type())
	if !ctx.storeLValue(lv, updated, v.Position()) {
		return numeric.BadValue
	}

	switch v.Op {
	case sem.UnaryPreincrement, sem.UnaryPredecrement:
		return updated
	default:
		return old
	}
}

// -----------------------------------------------------------------------------

// evalBinary dispatches a binary operator.  Logical operators short-circuit
// per the LRM; everything else evaluates both operands first.
func (ctx *Context) evalBinary(v *sem.BinaryExpr) numeric.ConstantValue {
	switch v.Op {
	case sem.BinaryLogicalAnd, sem.BinaryLogicalOr,
		sem.BinaryLogicalImplication, sem.BinaryLogicalEquivalence:
		return ctx.evalLogical(v)
	}

	lcv := ctx.Eval(v.Left)
	if lcv.IsBad() {
		return numeric.BadValue
	}
	rcv := ctx.Eval(v.Right)
	if rcv.IsBad() {
		return numeric.BadValue
	}

	if _, ok := typing.InnerType(v.Type()).(*typing.FloatType); ok {
		return ctx.evalBinaryReal(v, lcv, rcv)
	}
	if isRealComparison(lcv, rcv) {
		return ctx.evalRealComparison(v, lcv, rcv)
	}
	if lcv.Kind() == numeric.CVString && rcv.Kind() == numeric.CVString {
		return ctx.evalStringComparison(v, lcv, rcv)
	}

	if lcv.Kind() != numeric.CVInteger || rcv.Kind() != numeric.CVInteger {
		return numeric.BadValue
	}

	return ctx.evalBinaryInteger(v, lcv.Integer(), rcv.Integer())
}

// evalBinaryInteger delegates integer arithmetic to the four-state integer
func (ctx *Context) evalBinaryInteger(v *sem.BinaryExpr, l, r numeric.SVInt) numeric.ConstantValue {
	// arithmetic and bitwise operands share the expression's own type;
	// shifts and division only adjust the dividend side -- the shift amount
	// and the divisor are self-determined
	switch v.Op {
	case sem.BinaryAdd, sem.BinarySubtract, sem.BinaryMultiply,
		sem.BinaryPower, sem.BinaryAnd, sem.BinaryOr,
		sem.BinaryXor, sem.BinaryXnor:
		l = toTypeInt(l, v.Type())
		r = toTypeInt(r, v.Type())
	case sem.BinaryDivide, sem.BinaryMod,
		sem.BinaryLogicalShiftLeft, sem.BinaryLogicalShiftRight,
		sem.BinaryArithmeticShiftLeft, sem.BinaryArithmeticShiftRight:
		l = toTypeInt(l, v.Type())
	}

	switch v.Op {
	case sem.BinaryAdd:
		return intResult(l.Add(r), v.Type())
	case sem.BinarySubtract:
		return intResult(l.Sub(r), v.Type())
	case sem.BinaryMultiply:
		return intResult(l.Mul(r), v.Type())
	case sem.BinaryDivide:
		q, ok := l.Div(r)
		if !ok {
			// the all-X quotient keeps its unknown bits even under a
			// two-state result type
			ctx.note(logging.DiagDivideByZero, v.Position())
			return numeric.IntegerValue(q)
		}
		return intResult(q, v.Type())
	case sem.BinaryMod:
		m, ok := l.Mod(r)
		if !ok {
			ctx.note(logging.DiagDivideByZero, v.Position())
			return numeric.IntegerValue(m)
		}
		return intResult(m, v.Type())
	case sem.BinaryPower:
		return intResult(l.Pow(r), v.Type())

	case sem.BinaryAnd:
		return intResult(l.And(r), v.Type())
	case sem.BinaryOr:
		return intResult(l.Or(r), v.Type())
	case sem.BinaryXor:
		return intResult(l.Xor(r), v.Type())
	case sem.BinaryXnor:
		return intResult(l.Xnor(r), v.Type())

	case sem.BinaryEquality:
		return bitResult(l.Eq(r), v.Type())
	case sem.BinaryInequality:
		return bitResult(l.Neq(r), v.Type())
	case sem.BinaryCaseEquality:
		return bitResult(l.CaseEq(r), v.Type())
	case sem.BinaryCaseInequality:
		return bitResult(l.CaseNeq(r), v.Type())
	case sem.BinaryWildcardEquality:
		return bitResult(l.WildcardEq(r), v.Type())
	case sem.BinaryWildcardInequality:
		return bitResult(l.WildcardNeq(r), v.Type())
	case sem.BinaryGreaterThan:
		return bitResult(l.Gt(r), v.Type())
	case sem.BinaryGreaterThanEqual:
		return bitResult(l.Geq(r), v.Type())
	case sem.BinaryLessThan:
		return bitResult(l.Lt(r), v.Type())
	case sem.BinaryLessThanEqual:
		return bitResult(l.Leq(r), v.Type())

	case sem.BinaryLogicalShiftLeft, sem.BinaryArithmeticShiftLeft:
		return intResult(l.Shl(r), v.Type())
	case sem.BinaryLogicalShiftRight:
		return intResult(l.WithSign(false).LShr(r).WithSign(l.IsSigned()), v.Type())
	case sem.BinaryArithmeticShiftRight:
		return intResult(l.AShr(r), v.Type())

	default:
		return numeric.BadValue
	}
}

// evalLogical implements the short-circuiting operators with LRM X rules:
// a known 0 decides &&, a known 1 decides ||
func (ctx *Context) evalLogical(v *sem.BinaryExpr) numeric.ConstantValue {
	lt := ctx.truthOf(v.Left)
	if lt == truthBad {
		return numeric.BadValue
	}

	switch v.Op {
	case sem.BinaryLogicalAnd:
		if lt == truthFalse {
			return bitResult(numeric.Bit0, v.Type())
		}
		rt := ctx.truthOf(v.Right)
		return bitResult(andTruth(lt, rt), v.Type())

	case sem.BinaryLogicalOr:
		if lt == truthTrue {
			return bitResult(numeric.Bit1, v.Type())
		}
		rt := ctx.truthOf(v.Right)
		return bitResult(orTruth(lt, rt), v.Type())

	case sem.BinaryLogicalImplication:
		// a -> b is !a || b
		if lt == truthFalse {
			return bitResult(numeric.Bit1, v.Type())
		}
		rt := ctx.truthOf(v.Right)
		return bitResult(orTruth(negTruth(lt), rt), v.Type())

	default: // logical equivalence
		rt := ctx.truthOf(v.Right)
		if rt == truthBad {
			return numeric.BadValue
		}
		if lt == truthX || rt == truthX {
			return bitResult(numeric.BitX, v.Type())
		}
		if lt == rt {
			return bitResult(numeric.Bit1, v.Type())
		}
		return bitResult(numeric.Bit0, v.Type())
	}
}

// truth lattice for logical operators
type truth int

const (
	truthBad truth = iota
	truthFalse
	truthTrue
	truthX
)

func (ctx *Context) truthOf(e sem.Expression) truth {
	cv := ctx.Eval(e)
	if cv.IsBad() {
		return truthBad
	}

	switch cv.Kind() {
	case numeric.CVInteger:
		switch cv.Integer().Truth() {
		case numeric.Bit1:
			return truthTrue
		case numeric.Bit0:
			return truthFalse
		default:
			return truthX
		}
	case numeric.CVReal, numeric.CVShortReal, numeric.CVString:
		if cv.IsTrue() {
			return truthTrue
		}
		return truthFalse
	default:
		return truthBad
	}
}

func andTruth(a, b truth) numeric.Bit {
	switch {
	case a == truthBad || b == truthBad:
		return numeric.BitX
	case a == truthFalse || b == truthFalse:
		return numeric.Bit0
	case a == truthTrue && b == truthTrue:
		return numeric.Bit1
	default:
		return numeric.BitX
	}
}

func orTruth(a, b truth) numeric.Bit {
	switch {
	case a == truthBad || b == truthBad:
		return numeric.BitX
	case a == truthTrue || b == truthTrue:
		return numeric.Bit1
	case a == truthFalse && b == truthFalse:
		return numeric.Bit0
	default:
		return numeric.BitX
	}
}

func negTruth(a truth) truth {
	switch a {
	case truthTrue:
		return truthFalse
	case truthFalse:
		return truthTrue
	default:
		return a
	}
}

// evalBinaryReal handles arithmetic whose result type is floating
func (ctx *Context) evalBinaryReal(v *sem.BinaryExpr, lcv, rcv numeric.ConstantValue) numeric.ConstantValue {
	l, lok := floatOf(lcv)
	r, rok := floatOf(rcv)
	if !lok || !rok {
		return numeric.BadValue
	}

	var f float64
	switch v.Op {
	case sem.BinaryAdd:
		f = l + r
	case sem.BinarySubtract:
		f = l - r
	case sem.BinaryMultiply:
		f = l * r
	case sem.BinaryDivide:
		if r == 0 {
			ctx.note(logging.DiagDivideByZero, v.Position())
		}
		f = l / r
	case sem.BinaryPower:
		f = math.Pow(l, r)
	default:
		return numeric.BadValue
	}

	return ConvertValue(numeric.RealValue(f), v.Type())
}

// evalRealComparison compares mixed or floating operands numerically
func (ctx *Context) evalRealComparison(v *sem.BinaryExpr, lcv, rcv numeric.ConstantValue) numeric.ConstantValue {
	l, lok := floatOf(lcv)
	r, rok := floatOf(rcv)
	if !lok || !rok {
		return numeric.BadValue
	}

	var b bool
	switch v.Op {
	case sem.BinaryEquality, sem.BinaryCaseEquality:
		b = l == r
	case sem.BinaryInequality, sem.BinaryCaseInequality:
		b = l != r
	case sem.BinaryGreaterThan:
		b = l > r
	case sem.BinaryGreaterThanEqual:
		b = l >= r
	case sem.BinaryLessThan:
		b = l < r
	case sem.BinaryLessThanEqual:
		b = l <= r
	default:
		return numeric.BadValue
	}

	if b {
		return bitResult(numeric.Bit1, v.Type())
	}
	return bitResult(numeric.Bit0, v.Type())
}

// evalStringComparison compares string operands lexicographically
func (ctx *Context) evalStringComparison(v *sem.BinaryExpr, lcv, rcv numeric.ConstantValue) numeric.ConstantValue {
	c := lcv.Compare(rcv)

	var b bool
	switch v.Op {
	case sem.BinaryEquality, sem.BinaryCaseEquality:
		b = c == 0
	case sem.BinaryInequality, sem.BinaryCaseInequality:
		b = c != 0
	case sem.BinaryGreaterThan:
		b = c > 0
	case sem.BinaryGreaterThanEqual:
		b = c >= 0
	case sem.BinaryLessThan:
		b = c < 0
	case sem.BinaryLessThanEqual:
		b = c <= 0
	default:
		return numeric.BadValue
	}

	if b {
		return bitResult(numeric.Bit1, v.Type())
	}
	return bitResult(numeric.Bit0, v.Type())
}

// -----------------------------------------------------------------------------

// evalConditional evaluates the ternary operator.  An unknown predicate
// evaluates both arms and merges them bit-wise: agreeing known bits stay,
// everything else becomes X.
func (ctx *Context) evalConditional(v *sem.ConditionalExpr) numeric.ConstantValue {
	switch ctx.truthOf(v.Cond) {
	case truthTrue:
		return ConvertValue(ctx.Eval(v.Left), v.Type())
	case truthFalse:
		return ConvertValue(ctx.Eval(v.Right), v.Type())
	case truthX:
		l := ctx.Eval(v.Left)
		r := ctx.Eval(v.Right)
		if l.IsBad() || r.IsBad() {
			return numeric.BadValue
		}
		if l.Kind() == numeric.CVInteger && r.Kind() == numeric.CVInteger {
			// the arms take the result layout before merging so the X bits
			// survive a two-state result type
			l, r = ConvertValue(l, v.Type()), ConvertValue(r, v.Type())
			if l.Kind() == numeric.CVInteger && r.Kind() == numeric.CVInteger {
				return numeric.IntegerValue(l.Integer().Merge(r.Integer()))
			}
		}
		if l.Equal(r) {
			return ConvertValue(l, v.Type())
		}
		return numeric.BadValue
	default:
		return numeric.BadValue
	}
}

// evalInside checks set membership: wildcard equality against plain
// entries, inclusive bounds against ranges.  A miss with any unknown
// comparison yields X.
func (ctx *Context) evalInside(v *sem.InsideExpr) numeric.ConstantValue {
	value := ctx.Eval(v.Value)
	if value.IsBad() {
		return numeric.BadValue
	}

	sawUnknown := false
	for _, entry := range v.RangeList {
		if or, ok := entry.(*sem.OpenRangeExpr); ok {
			low := ctx.Eval(or.Left)
			high := ctx.Eval(or.Right)
			if low.IsBad() || high.IsBad() {
				return numeric.BadValue
			}
			if value.Kind() == numeric.CVInteger && low.Kind() == numeric.CVInteger &&
				high.Kind() == numeric.CVInteger {
				ge := value.Integer().Geq(low.Integer())
				le := value.Integer().Leq(high.Integer())
				if ge == numeric.Bit1 && le == numeric.Bit1 {
					return bitResult(numeric.Bit1, v.Type())
				}
				if ge.IsUnknown() || le.IsUnknown() {
					sawUnknown = true
				}
			} else if value.Compare(low) >= 0 && value.Compare(high) <= 0 {
				return bitResult(numeric.Bit1, v.Type())
			}
			continue
		}

		entryVal := ctx.Eval(entry)
		if entryVal.IsBad() {
			return numeric.BadValue
		}
		if value.Kind() == numeric.CVInteger && entryVal.Kind() == numeric.CVInteger {
			switch value.Integer().WildcardEq(entryVal.Integer()) {
			case numeric.Bit1:
				return bitResult(numeric.Bit1, v.Type())
			case numeric.BitX, numeric.BitZ:
				sawUnknown = true
			}
		} else if value.Equal(entryVal) {
			return bitResult(numeric.Bit1, v.Type())
		}
	}

	if sawUnknown {
		return bitResult(numeric.BitX, v.Type())
	}
	return bitResult(numeric.Bit0, v.Type())
}

// evalConcatenation joins the operand vectors most significant first
func (ctx *Context) evalConcatenation(v *sem.ConcatenationExpr) numeric.ConstantValue {
	if len(v.Operands) == 0 {
		return numeric.BadValue
	}

	first, ok := ctx.evalInteger(v.Operands[0])
	if !ok {
		return numeric.BadValue
	}

	rest := make([]numeric.SVInt, 0, len(v.Operands)-1)
	for _, op := range v.Operands[1:] {
		sv, ok := ctx.evalInteger(op)
		if !ok {
			return numeric.BadValue
		}
		rest = append(rest, sv)
	}

	return ConvertValue(numeric.IntegerValue(first.Concat(rest...)), v.Type())
}

// -----------------------------------------------------------------------------

// evalAssignment performs a procedural assignment and yields the stored
// value
func (ctx *Context) evalAssignment(v *sem.AssignmentExpr) numeric.ConstantValue {
	value := ctx.Eval(v.Right)
	if value.IsBad() {
		return numeric.BadValue
	}

	if concat, ok := v.Left.(*sem.ConcatenationExpr); ok {
		if !ctx.storeConcat(concat, value, v.Position()) {
			return numeric.BadValue
		}
		return value
	}

	lv, ok := ctx.EvalLValue(v.Left)
	if !ok {
		return numeric.BadValue
	}

	value = ConvertValue(value, v.Left.Type())
	if !ctx.storeLValue(lv, value, v.Position()) {
		return numeric.BadValue
	}
	return value
}

// storeConcat splits an integer across the lvalue operands of a
// concatenation, most significant operand first
func (ctx *Context) storeConcat(concat *sem.ConcatenationExpr, value numeric.ConstantValue, pos *logging.TextPosition) bool {
	if value.Kind() != numeric.CVInteger {
		return false
	}
	sv := value.Integer()

	// walk from the last (least significant) operand upward
	offset := int32(0)
	for i := len(concat.Operands) - 1; i >= 0; i-- {
		op := concat.Operands[i]
		width := typing.BitWidth(op.Type())
		piece := sv.Slice(offset, width)
		offset += int32(width)

		lv, ok := ctx.EvalLValue(op)
		if !ok {
			return false
		}
		if !ctx.storeLValue(lv, ConvertValue(numeric.IntegerValue(piece), op.Type()), pos) {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// evalCall executes a subroutine call: arguments bind to formals by
// direction, the body runs in a fresh frame, and out/inout writes propagate
// back at return
func (ctx *Context) evalCall(v *sem.CallExpr) numeric.ConstantValue {
	if v.IsSystemCall() {
		return ctx.evalSystemCall(v)
	}

	sub := v.Subroutine
	sub.EnsureBound()
	if sub.Body == nil {
		return ctx.fail(logging.DiagNotConstant, v.Position(), sub.Name())
	}

	// bind argument values and writeback targets in the caller's frame
	type writeback struct {
		lv     *LValue
		formal *sem.FormalArgumentSymbol
		typ    typing.DataType
	}

	values := make(map[sem.ValueSymbol]numeric.ConstantValue)
	var writebacks []writeback

	for i, formal := range sub.Args {
		arg := v.Args[i]

		switch formal.Direction {
		case syntax.DirIn:
			cv := ctx.Eval(arg)
			if cv.IsBad() {
				return numeric.BadValue
			}
			values[formal] = ConvertValue(cv, formal.Type)

		case syntax.DirOut:
			lv, ok := ctx.EvalLValue(arg)
			if !ok {
				return numeric.BadValue
			}
			values[formal] = defaultValue(formal.Type)
			writebacks = append(writebacks, writeback{lv: lv, formal: formal, typ: arg.Type()})

		default: // inout and ref copy in and copy out
			lv, ok := ctx.EvalLValue(arg)
			if !ok {
				return numeric.BadValue
			}
			cv := ctx.loadLValue(lv, arg.Position())
			if cv.IsBad() {
				return numeric.BadValue
			}
			values[formal] = ConvertValue(cv, formal.Type)
			writebacks = append(writebacks, writeback{lv: lv, formal: formal, typ: arg.Type()})
		}
	}

	if !ctx.pushFrame(sub, v.Position()) {
		return numeric.BadValue
	}
	for sym, cv := range values {
		ctx.topFrame().vars[sym] = cv
	}

	ctx.execStatement(sub.Body)
	f := ctx.popFrame()

	if ctx.failed {
		return numeric.BadValue
	}

	// propagate out/inout writes into the caller
	for _, wb := range writebacks {
		cv, ok := f.vars[wb.formal]
		if !ok {
			cv = defaultValue(wb.formal.Type)
		}
		if !ctx.storeLValue(wb.lv, ConvertValue(cv, wb.typ), v.Position()) {
			return numeric.BadValue
		}
	}

	result := f.returnValue
	if !f.returned {
		if typing.Equivalent(sub.ReturnType, typing.VoidTyp) {
			return numeric.NullValue()
		}
		result = defaultValue(sub.ReturnType)
	}

	return ConvertValue(result, v.Type())
}

// evalSystemCall computes the known system functions
func (ctx *Context) evalSystemCall(v *sem.CallExpr) numeric.ConstantValue {
	switch v.SystemName {
	case "$bits":
		target := v.Args[0].Type()
		if dt, ok := v.Args[0].(*sem.DataTypeExpr); ok {
			target = dt.Stored
		}
		width, err := numeric.New(32, true, uint64(typing.BitWidth(target)))
		if err != nil {
			return numeric.BadValue
		}
		return numeric.IntegerValue(width)

	case "$clog2":
		sv, ok := ctx.evalInteger(v.Args[0])
		if !ok || sv.HasUnknown() {
			return numeric.BadValue
		}
		n := sv.ToBig()
		if n.Sign() <= 0 {
			zero, _ := numeric.New(32, true, 0)
			return numeric.IntegerValue(zero)
		}
		n.Sub(n, big.NewInt(1))
		out, err := numeric.New(32, true, uint64(n.BitLen()))
		if err != nil {
			return numeric.BadValue
		}
		return numeric.IntegerValue(out)

	default:
		return ctx.fail(logging.DiagUnknownSystemFunction, v.Position(), v.SystemName)
	}
}

// -----------------------------------------------------------------------------

// intResult converts an integer operation result to the expression's type
func intResult(sv numeric.SVInt, dt typing.DataType) numeric.ConstantValue {
	return ConvertValue(numeric.IntegerValue(sv), dt)
}

// bitResult wraps a single logic bit as the expression's 1-bit result type
func bitResult(b numeric.Bit, dt typing.DataType) numeric.ConstantValue {
	return ConvertValue(numeric.IntegerValue(numeric.FromBit(b)), dt)
}

func notBit(b numeric.Bit) numeric.Bit {
	switch b {
	case numeric.Bit0:
		return numeric.Bit1
	case numeric.Bit1:
		return numeric.Bit0
	default:
		return numeric.BitX
	}
}

func floatOf(cv numeric.ConstantValue) (float64, bool) {
	switch cv.Kind() {
	case numeric.CVReal:
		return cv.Real(), true
	case numeric.CVShortReal:
		return float64(cv.ShortReal()), true
	case numeric.CVInteger:
		f, _ := new(big.Float).SetInt(cv.Integer().ToBig()).Float64()
		return f, true
	default:
		return 0, false
	}
}

// isRealComparison indicates a comparison with at least one floating
// operand
func isRealComparison(l, r numeric.ConstantValue) bool {
	lf := l.Kind() == numeric.CVReal || l.Kind() == numeric.CVShortReal
	rf := r.Kind() == numeric.CVReal || r.Kind() == numeric.CVShortReal
	return lf || rf
}

// toTypeInt resizes an integer operand into the layout of the given type
func toTypeInt(sv numeric.SVInt, dt typing.DataType) numeric.SVInt {
	cv := ConvertValue(numeric.IntegerValue(sv), dt)
	if cv.Kind() != numeric.CVInteger {
		return sv
	}
	return cv.Integer()
}
