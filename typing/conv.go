package typing

// Assignment Compatibility Rules
// ------------------------------
// 1. An implicit conversion is one the binder inserts on its own at
// assignment-like boundaries: integral to integral (with a possible
// narrowing warning), string/integral packing in both directions, and
// real/integral with rounding.  Aggregates convert implicitly when their
// shapes match and their elements convert implicitly.
// 2. An explicit conversion requires a cast in the source: integral to enum
// is the notable case.
// 3. Everything else does not convert, and the binder diagnoses a type
// mismatch.

// ConvertKind classifies how a right-hand type reaches a left-hand type
type ConvertKind int

// Enumeration of conversion kinds
const (
	ConvertNone ConvertKind = iota
	ConvertImplicit
	ConvertExplicit
)

// AssignableFrom determines how a value of type rhs can be assigned to a
// location of type lhs.  Either side being the error type converts
// implicitly so invalid subtrees short-circuit without cascades.
func AssignableFrom(lhs, rhs DataType) ConvertKind {
	lt, rt := InnerType(lhs), InnerType(rhs)

	if IsError(lt) || IsError(rt) {
		return ConvertImplicit
	}

	if Equivalent(lt, rt) {
		return ConvertImplicit
	}

	_, lIntegral := Integral(lt)
	_, rIntegral := Integral(rt)

	// enums are nominal: any integral source requires a cast, while an enum
	// assigns implicitly to any integral destination
	if _, ok := lt.(*EnumType); ok {
		if rIntegral {
			return ConvertExplicit
		}
		return ConvertNone
	}

	if lIntegral && rIntegral {
		return ConvertImplicit
	}

	// string/integral packing per the LRM works in both directions
	if _, ok := lt.(*StringType); ok && rIntegral {
		return ConvertImplicit
	}
	if _, ok := rt.(*StringType); ok && lIntegral {
		return ConvertImplicit
	}

	// real/integral converts with rounding toward the integral side
	_, lFloat := lt.(*FloatType)
	_, rFloat := rt.(*FloatType)
	if lFloat && (rIntegral || rFloat) {
		return ConvertImplicit
	}
	if rFloat && lIntegral {
		return ConvertImplicit
	}

	// aggregates convert element-wise when the shapes agree
	if lArr, ok := lt.(*UnpackedArrayType); ok {
		if rArr, ok := rt.(*UnpackedArrayType); ok {
			if lArr.Range.Width() == rArr.Range.Width() {
				return AssignableFrom(lArr.Elem, rArr.Elem)
			}
		}
		return ConvertNone
	}

	return ConvertNone
}

// -----------------------------------------------------------------------------

// BinaryOperatorType computes the common type two integral or floating
// operands share under an arithmetic or bitwise operator: the larger width,
// signed only when both operands are signed, four-state when either operand
// is (or when the operator forces it).  Division and modulo use
// DivisionOperatorType instead.
func BinaryOperatorType(lt, rt DataType, forceFourState bool) DataType {
	lt, rt = InnerType(lt), InnerType(rt)

	if IsError(lt) || IsError(rt) {
		return ErrorTyp
	}

	if ft, ok := promoteFloat(lt, rt); ok {
		return ft
	}

	lInfo, lok := Integral(lt)
	rInfo, rok := Integral(rt)
	if !lok || !rok {
		return ErrorTyp
	}

	width := lInfo.Width
	if rInfo.Width > width {
		width = rInfo.Width
	}

	return MakeIntegral(width, lInfo.Signed && rInfo.Signed,
		lInfo.FourState || rInfo.FourState || forceFourState)
}

// DivisionOperatorType computes the result type of division and modulo:
// the result takes its width from the dividend per the LRM, while the
// divisor still contributes its signedness and state
func DivisionOperatorType(lt, rt DataType, forceFourState bool) DataType {
	lt, rt = InnerType(lt), InnerType(rt)

	if IsError(lt) || IsError(rt) {
		return ErrorTyp
	}

	if ft, ok := promoteFloat(lt, rt); ok {
		return ft
	}

	lInfo, lok := Integral(lt)
	rInfo, rok := Integral(rt)
	if !lok || !rok {
		return ErrorTyp
	}

	return MakeIntegral(lInfo.Width, lInfo.Signed && rInfo.Signed,
		lInfo.FourState || rInfo.FourState || forceFourState)
}

// promoteFloat yields the promoted floating result when either operand is
// floating
func promoteFloat(lt, rt DataType) (DataType, bool) {
	lf, lFloat := lt.(*FloatType)
	rf, rFloat := rt.(*FloatType)
	switch {
	case lFloat && rFloat:
		if lf.ShortReal && rf.ShortReal {
			return ShortRealType, true
		}
		return RealType, true
	case lFloat:
		return lf, true
	case rFloat:
		return rf, true
	default:
		return nil, false
	}
}

// MakeIntegral builds an anonymous integral type with the given layout,
// reusing a predefined type when one matches exactly
func MakeIntegral(width uint32, signed, fourState bool) *IntegralType {
	for _, pt := range []*IntegralType{
		LogicType, BitType, IntType, IntegerType, ShortIntType, LongIntType, ByteType,
	} {
		if pt.Width == width && pt.Signed == signed && pt.FourState == fourState {
			return pt
		}
	}

	return &IntegralType{Width: width, Signed: signed, FourState: fourState}
}
