package eval

import (
	"strconv"

	"svlang/logging"
	"svlang/numeric"
	"svlang/sem"
	"svlang/typing"
)

// selector is one step of an lvalue path: a bit range into a packed value
// or an element index into an unpacked one
type selector struct {
	bits  bool
	lsb   int32
	width uint32
	index int64

	// oob marks a selector whose index fell outside the value; reads yield
	// X and writes are dropped
	oob bool
}

// LValue is the result of lvalue evaluation: a root variable plus a
// sequence of selectors refining the storage location
type LValue struct {
	symbol sem.ValueSymbol
	path   []selector
}

// scheme describes how a type is indexed
type scheme struct {
	elem      typing.DataType
	rng       typing.Range
	elemWidth uint32
	packed    bool
}

// schemeOf mirrors the binder's view of how a value type is selected into
func schemeOf(dt typing.DataType) (scheme, bool) {
	switch v := typing.InnerType(dt).(type) {
	case *typing.UnpackedArrayType:
		return scheme{elem: v.Elem, rng: v.Range}, true

	case *typing.PackedArrayType:
		info, ok := typing.Integral(v.Elem)
		if !ok {
			return scheme{}, false
		}
		return scheme{elem: v.Elem, rng: v.Range, elemWidth: info.Width, packed: true}, true

	default:
		info, ok := typing.Integral(dt)
		if !ok {
			return scheme{}, false
		}
		return scheme{
			rng:       typing.Range{Left: int32(info.Width) - 1, Right: 0},
			elemWidth: 1,
			packed:    true,
		}, true
	}
}

// signedOffset maps a source index into a storage offset, which is negative
// or past the width when the index is out of bounds
func signedOffset(rng typing.Range, index int64) int64 {
	if rng.Left >= rng.Right {
		return index - int64(rng.Right)
	}
	return int64(rng.Right) - index
}

// -----------------------------------------------------------------------------

// EvalLValue evaluates an expression as a storage location: a root variable
// plus selectors.  The binder guarantees only lvalue-shaped expressions
// reach here.
func (ctx *Context) EvalLValue(e sem.Expression) (*LValue, bool) {
	switch v := e.(type) {
	case *sem.NamedValueExpr:
		switch v.Symbol.(type) {
		case *sem.VariableSymbol, *sem.FormalArgumentSymbol:
			return &LValue{symbol: v.Symbol}, true
		}
		ctx.fail(logging.DiagInvalidLValue, v.Position())
		return nil, false

	case *sem.ElementSelectExpr:
		lv, ok := ctx.EvalLValue(v.Value)
		if !ok {
			return nil, false
		}
		sel, ok := ctx.elementSelector(v)
		if !ok {
			return nil, false
		}
		lv.path = append(lv.path, sel)
		return lv, true

	case *sem.RangeSelectExpr:
		lv, ok := ctx.EvalLValue(v.Value)
		if !ok {
			return nil, false
		}
		sel, ok := ctx.rangeSelector(v)
		if !ok {
			return nil, false
		}
		lv.path = append(lv.path, sel)
		return lv, true

	case *sem.MemberAccessExpr:
		lv, ok := ctx.EvalLValue(v.Value)
		if !ok {
			return nil, false
		}

		st, _ := typing.InnerType(v.Value.Type()).(*typing.StructType)
		if st != nil && st.Packed {
			lv.path = append(lv.path, selector{
				bits:  true,
				lsb:   int32(v.Field.Offset),
				width: typing.BitWidth(v.Field.Type),
			})
		} else {
			lv.path = append(lv.path, selector{index: int64(v.Field.Offset)})
		}
		return lv, true

	case *sem.ConversionExpr:
		// implicit conversions on assignment targets are transparent
		return ctx.EvalLValue(v.Operand)

	default:
		ctx.fail(logging.DiagInvalidLValue, e.Position())
		return nil, false
	}
}

// elementSelector computes the selector for `value[index]`
func (ctx *Context) elementSelector(v *sem.ElementSelectExpr) (selector, bool) {
	sch, ok := schemeOf(v.Value.Type())
	if !ok {
		ctx.fail(logging.DiagInvalidLValue, v.Position())
		return selector{}, false
	}

	idx, known := ctx.evalIndex(v.Selector)
	if !known {
		return selector{bits: sch.packed, width: sch.elemWidth, oob: true}, true
	}

	off := signedOffset(sch.rng, idx)
	oob := off < 0 || off >= int64(sch.rng.Width())

	if sch.packed {
		return selector{
			bits:  true,
			lsb:   int32(off) * int32(sch.elemWidth),
			width: sch.elemWidth,
			oob:   oob,
		}, true
	}
	return selector{index: off, oob: oob}, true
}

// rangeSelector computes the selector for a range select in any flavor
func (ctx *Context) rangeSelector(v *sem.RangeSelectExpr) (selector, bool) {
	sch, ok := schemeOf(v.Value.Type())
	if !ok {
		ctx.fail(logging.DiagInvalidLValue, v.Position())
		return selector{}, false
	}

	lo, hi, known := ctx.rangeIndexes(v)
	if !known {
		return selector{bits: sch.packed, width: typing.BitWidth(v.Type()), oob: true}, true
	}

	o1 := signedOffset(sch.rng, lo)
	o2 := signedOffset(sch.rng, hi)
	if o2 < o1 {
		o1, o2 = o2, o1
	}
	count := uint32(o2-o1) + 1
	oob := o1 < 0 || o2 >= int64(sch.rng.Width())

	if sch.packed {
		return selector{
			bits:  true,
			lsb:   int32(o1) * int32(sch.elemWidth),
			width: count * sch.elemWidth,
			oob:   oob,
		}, true
	}
	return selector{index: o1, width: count, oob: oob}, true
}

// rangeIndexes yields the two source index endpoints of a range select
func (ctx *Context) rangeIndexes(v *sem.RangeSelectExpr) (int64, int64, bool) {
	switch v.SelectionKind {
	case sem.RangeSimple:
		l, lok := ctx.evalIndex(v.Left)
		r, rok := ctx.evalIndex(v.Right)
		return l, r, lok && rok

	default:
		base, bok := ctx.evalIndex(v.Left)
		width, wok := ctx.evalIndex(v.Right)
		if !bok || !wok || width < 1 {
			return 0, 0, false
		}
		if v.SelectionKind == sem.RangeIndexedUp {
			return base, base + width - 1, true
		}
		return base - width + 1, base, true
	}
}

// evalIndex evaluates a selector expression to a machine integer; unknown
// bits make the index unknown
func (ctx *Context) evalIndex(e sem.Expression) (int64, bool) {
	sv, ok := ctx.evalInteger(e)
	if !ok || sv.HasUnknown() {
		return 0, false
	}
	v := sv.ToBig()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// -----------------------------------------------------------------------------

// loadLValue reads the current value at a storage location
func (ctx *Context) loadLValue(lv *LValue, pos *logging.TextPosition) numeric.ConstantValue {
	cur, ok := ctx.findVar(lv.symbol)
	if !ok {
		cur = defaultValue(lv.symbol.DataType())
	}

	for _, sel := range lv.path {
		if sel.bits {
			if cur.Kind() != numeric.CVInteger {
				return numeric.BadValue
			}
			if sel.oob {
				xs, err := numeric.Fill(sel.width, false, numeric.BitX)
				if err != nil {
					return numeric.BadValue
				}
				cur = numeric.IntegerValue(xs)
				continue
			}
			cur = numeric.IntegerValue(cur.Integer().Slice(sel.lsb, sel.width))
			continue
		}

		if cur.Kind() != numeric.CVArray {
			return numeric.BadValue
		}
		if sel.oob || sel.index < 0 || sel.index >= int64(len(cur.Elements())) {
			ctx.note(logging.DiagIndexOutOfBounds, pos, "", "")
			return numeric.BadValue
		}
		cur = cur.Elements()[sel.index]
	}

	return cur
}

// storeLValue writes a value through a storage location, preserving bits
// outside the written range (including their unknown-ness) and copying
// aggregates
func (ctx *Context) storeLValue(lv *LValue, value numeric.ConstantValue, pos *logging.TextPosition) bool {
	cur, ok := ctx.findVar(lv.symbol)
	if !ok {
		cur = defaultValue(lv.symbol.DataType())
	}

	updated, ok := ctx.applyPath(cur, lv.path, value, pos)
	if !ok {
		return false
	}

	ctx.setVar(lv.symbol, updated)
	return true
}

// applyPath rebuilds a value with the write applied at the end of the path
func (ctx *Context) applyPath(cur numeric.ConstantValue, path []selector, value numeric.ConstantValue, pos *logging.TextPosition) (numeric.ConstantValue, bool) {
	if len(path) == 0 {
		return value, true
	}

	sel := path[0]
	if sel.oob {
		// writes past the bounds vanish
		return cur, true
	}

	if sel.bits {
		if cur.Kind() != numeric.CVInteger {
			return numeric.BadValue, false
		}

		inner := numeric.IntegerValue(cur.Integer().Slice(sel.lsb, sel.width))
		replaced, ok := ctx.applyPath(inner, path[1:], value, pos)
		if !ok || replaced.Kind() != numeric.CVInteger {
			return numeric.BadValue, false
		}

		return numeric.IntegerValue(cur.Integer().SetSlice(sel.lsb, replaced.Integer())), true
	}

	if cur.Kind() != numeric.CVArray {
		return numeric.BadValue, false
	}
	if sel.index < 0 || sel.index >= int64(len(cur.Elements())) {
		ctx.note(logging.DiagIndexOutOfBounds, pos, "", "")
		return cur, true
	}

	elems := append([]numeric.ConstantValue(nil), cur.Elements()...)

	if sel.width > 0 {
		// an unpacked slice write distributes array elements
		if value.Kind() != numeric.CVArray || len(value.Elements()) != int(sel.width) {
			return numeric.BadValue, false
		}
		for i, e := range value.Elements() {
			elems[sel.index+int64(i)] = e
		}
		return numeric.ArrayValue(elems), true
	}

	replaced, ok := ctx.applyPath(elems[sel.index], path[1:], value, pos)
	if !ok {
		return numeric.BadValue, false
	}
	elems[sel.index] = replaced
	return numeric.ArrayValue(elems), true
}

// -----------------------------------------------------------------------------

// evalElementSelect reads `value[index]` as an rvalue.  Out-of-bounds or
// unknown indexes yield X for packed values and bad (with a diagnostic) for
// unpacked ones.
func (ctx *Context) evalElementSelect(v *sem.ElementSelectExpr) numeric.ConstantValue {
	value := ctx.Eval(v.Value)
	if value.IsBad() {
		return numeric.BadValue
	}

	sch, ok := schemeOf(v.Value.Type())
	if !ok {
		return numeric.BadValue
	}

	idx, known := ctx.evalIndex(v.Selector)
	var off int64
	oob := !known
	if known {
		off = signedOffset(sch.rng, idx)
		oob = off < 0 || off >= int64(sch.rng.Width())
	}

	if sch.packed {
		if value.Kind() != numeric.CVInteger {
			return numeric.BadValue
		}
		if oob {
			return xFill(v.Type())
		}
		sv := value.Integer().Slice(int32(off)*int32(sch.elemWidth), sch.elemWidth)
		return ConvertValue(numeric.IntegerValue(sv), v.Type())
	}

	if value.Kind() != numeric.CVArray {
		return numeric.BadValue
	}
	if oob {
		ctx.note(logging.DiagIndexOutOfBounds, v.Position(), formatIndex(idx, known), v.Value.Type().Repr())
		return numeric.BadValue
	}
	return value.Elements()[off]
}

// evalRangeSelect reads a part select as an rvalue
func (ctx *Context) evalRangeSelect(v *sem.RangeSelectExpr) numeric.ConstantValue {
	value := ctx.Eval(v.Value)
	if value.IsBad() {
		return numeric.BadValue
	}

	sch, ok := schemeOf(v.Value.Type())
	if !ok {
		return numeric.BadValue
	}

	lo, hi, known := ctx.rangeIndexes(v)
	if !known {
		if sch.packed {
			return xFill(v.Type())
		}
		ctx.note(logging.DiagIndexOutOfBounds, v.Position(), "unknown", v.Value.Type().Repr())
		return numeric.BadValue
	}

	o1 := signedOffset(sch.rng, lo)
	o2 := signedOffset(sch.rng, hi)
	if o2 < o1 {
		o1, o2 = o2, o1
	}

	if sch.packed {
		if value.Kind() != numeric.CVInteger {
			return numeric.BadValue
		}
		width := uint32(o2-o1+1) * sch.elemWidth
		sv := value.Integer().Slice(int32(o1)*int32(sch.elemWidth), width)
		return ConvertValue(numeric.IntegerValue(sv), v.Type())
	}

	if value.Kind() != numeric.CVArray {
		return numeric.BadValue
	}
	if o1 < 0 || o2 >= int64(len(value.Elements())) {
		ctx.note(logging.DiagIndexOutOfBounds, v.Position(), formatIndex(lo, true), v.Value.Type().Repr())
		return numeric.BadValue
	}

	elems := append([]numeric.ConstantValue(nil), value.Elements()[o1:o2+1]...)
	return numeric.ArrayValue(elems)
}

// evalMemberAccess reads one struct field as an rvalue
func (ctx *Context) evalMemberAccess(v *sem.MemberAccessExpr) numeric.ConstantValue {
	value := ctx.Eval(v.Value)
	if value.IsBad() {
		return numeric.BadValue
	}

	st, _ := typing.InnerType(v.Value.Type()).(*typing.StructType)
	if st != nil && st.Packed {
		if value.Kind() != numeric.CVInteger {
			return numeric.BadValue
		}
		sv := value.Integer().Slice(int32(v.Field.Offset), typing.BitWidth(v.Field.Type))
		return ConvertValue(numeric.IntegerValue(sv), v.Type())
	}

	if value.Kind() != numeric.CVArray || int(v.Field.Offset) >= len(value.Elements()) {
		return numeric.BadValue
	}
	return value.Elements()[v.Field.Offset]
}

// xFill builds the all-X value of an integral type, or zero for a
// two-state one
func xFill(dt typing.DataType) numeric.ConstantValue {
	info, ok := typing.Integral(dt)
	if !ok {
		return numeric.BadValue
	}

	fill := numeric.BitX
	if !info.FourState {
		fill = numeric.Bit0
	}
	sv, err := numeric.Fill(info.Width, info.Signed, fill)
	if err != nil {
		return numeric.BadValue
	}
	return numeric.IntegerValue(sv)
}

func formatIndex(idx int64, known bool) string {
	if !known {
		return "unknown"
	}
	return strconv.FormatInt(idx, 10)
}
