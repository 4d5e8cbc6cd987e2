package walk

import (
	"svlang/logging"
	"svlang/sem"
	"svlang/syntax"
	"svlang/typing"
)

// selectScheme describes how a value type is indexed: the element type, the
// index range, and the element width in bits for packed values
type selectScheme struct {
	elem      typing.DataType
	rng       typing.Range
	elemWidth uint32
	packed    bool
	fourState bool
}

// selectSchemeOf computes the indexing scheme for a selectable type
func (w *Walker) selectSchemeOf(dt typing.DataType) (selectScheme, bool) {
	switch v := typing.InnerType(dt).(type) {
	case *typing.UnpackedArrayType:
		return selectScheme{elem: v.Elem, rng: v.Range}, true

	case *typing.PackedArrayType:
		info, ok := typing.Integral(v.Elem)
		if !ok {
			return selectScheme{}, false
		}
		return selectScheme{
			elem:      v.Elem,
			rng:       v.Range,
			elemWidth: info.Width,
			packed:    true,
			fourState: info.FourState,
		}, true

	default:
		// a plain vector selects single bits over [width-1:0]
		info, ok := typing.Integral(dt)
		if !ok {
			return selectScheme{}, false
		}
		return selectScheme{
			elem:      w.Types.Integral(1, false, info.FourState),
			rng:       typing.Range{Left: int32(info.Width) - 1, Right: 0},
			elemWidth: 1,
			packed:    true,
			fourState: info.FourState,
		}, true
	}
}

// walkSelect binds an element or range select expression
func (w *Walker) walkSelect(node *syntax.ElementSelectExpression) sem.Expression {
	value := w.walkExpr(node.Value)
	if sem.Bad(value) {
		return silentBad(value, node.Position())
	}

	scheme, ok := w.selectSchemeOf(value.Type())
	if !ok {
		return w.badExpr(value, node.Position(), logging.DiagInvalidSelect,
			"type `"+value.Type().Repr()+"` cannot be indexed")
	}

	switch sel := node.Selector.(type) {
	case *syntax.BitSelect:
		return w.walkBitSelect(node, value, scheme, sel)
	case *syntax.SimpleRangeSelect:
		return w.walkSimpleRange(node, value, scheme, sel)
	case *syntax.AscendingRangeSelect:
		return w.walkIndexedRange(node, value, scheme, sem.RangeIndexedUp, sel.Base, sel.Width)
	case *syntax.DescendingRangeSelect:
		return w.walkIndexedRange(node, value, scheme, sem.RangeIndexedDown, sel.Base, sel.Width)
	default:
		return silentBad(value, node.Position())
	}
}

// walkBitSelect binds `value[index]`; the selector is self-determined and
// may be a runtime value
func (w *Walker) walkBitSelect(node *syntax.ElementSelectExpression, value sem.Expression, scheme selectScheme, sel *syntax.BitSelect) sem.Expression {
	selector := w.SelfDetermined(sel.Index)
	if sem.Bad(selector) {
		return silentBad(selector, node.Position())
	}

	if _, ok := typing.Integral(selector.Type()); !ok {
		return w.badExpr(selector, sel.Index.Position(), logging.DiagTypeMismatch,
			selector.Type().Repr(), "an integral type")
	}

	return &sem.ElementSelectExpr{
		ExprBase: sem.NewExprBase(scheme.elem, node.Position()),
		Value:    value,
		Selector: selector,
	}
}

// walkSimpleRange binds `value[msb:lsb]`; both bounds must be constant
func (w *Walker) walkSimpleRange(node *syntax.ElementSelectExpression, value sem.Expression, scheme selectScheme, sel *syntax.SimpleRangeSelect) sem.Expression {
	left := w.SelfDetermined(sel.Left)
	right := w.SelfDetermined(sel.Right)

	lv, lok := w.foldInt32(left, "range select bound")
	rv, rok := w.foldInt32(right, "range select bound")
	if !lok || !rok {
		return silentBad(value, node.Position())
	}

	// the bounds must run in the same direction as the selected range
	if (scheme.rng.Left >= scheme.rng.Right) != (lv >= rv) {
		return w.badExpr(value, node.Position(), logging.DiagInvalidSelect,
			"range select bounds run opposite to the type's range")
	}

	count := lv - rv
	if count < 0 {
		count = -count
	}
	width := uint32(count) + 1

	return &sem.RangeSelectExpr{
		ExprBase:      sem.NewExprBase(w.rangeResultType(scheme, width, lv, rv), node.Position()),
		SelectionKind: sem.RangeSimple,
		Value:         value,
		Left:          left,
		Right:         right,
	}
}

// walkIndexedRange binds `value[base +: N]` and `value[base -: N]`; the
// width must fold to a positive constant while the base may be runtime
func (w *Walker) walkIndexedRange(node *syntax.ElementSelectExpression, value sem.Expression, scheme selectScheme, kind sem.RangeSelectionKind, baseSyn, widthSyn syntax.ExpressionNode) sem.Expression {
	base := w.SelfDetermined(baseSyn)
	if sem.Bad(base) {
		return silentBad(base, node.Position())
	}

	widthExpr := w.SelfDetermined(widthSyn)
	width, ok := w.foldInt32(widthExpr, "indexed select width")
	if !ok {
		return silentBad(value, node.Position())
	}
	if width < 1 {
		return w.badExpr(widthExpr, widthSyn.Position(), logging.DiagInvalidSelect,
			"indexed select width must be positive")
	}

	return &sem.RangeSelectExpr{
		ExprBase:      sem.NewExprBase(w.rangeResultType(scheme, uint32(width), 0, 0), node.Position()),
		SelectionKind: kind,
		Value:         value,
		Left:          base,
		Right:         widthExpr,
	}
}

// rangeResultType computes the type a range selection yields: a packed
// vector of the summed element widths, or an unpacked slice of the element
// type
func (w *Walker) rangeResultType(scheme selectScheme, count uint32, left, right int32) typing.DataType {
	if scheme.packed {
		return w.Types.Integral(count*scheme.elemWidth, false, scheme.fourState)
	}
	return &typing.UnpackedArrayType{Elem: scheme.elem, Range: typing.Range{Left: left, Right: right}}
}

// walkMemberAccess binds `value.member` over a struct value
func (w *Walker) walkMemberAccess(node *syntax.MemberAccessExpression) sem.Expression {
	value := w.walkExpr(node.Value)
	if sem.Bad(value) {
		return silentBad(value, node.Position())
	}

	st, ok := typing.InnerType(value.Type()).(*typing.StructType)
	if !ok {
		return w.badExpr(value, node.Position(), logging.DiagTypeMismatch,
			value.Type().Repr(), "a struct type")
	}

	field, ok := st.FieldByName(node.Member.Value)
	if !ok {
		return w.badExpr(value, node.Member.Position(), logging.DiagUndeclaredIdentifier,
			node.Member.Value)
	}

	return &sem.MemberAccessExpr{
		ExprBase: sem.NewExprBase(field.Type, node.Position()),
		Value:    value,
		Field:    field,
	}
}
