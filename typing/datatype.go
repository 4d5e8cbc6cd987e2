package typing

// DataType is the interface for all data types in the semantic core.
type DataType interface {
	// Repr returns a string representing the data type
	Repr() string

	// equals takes in another DataType and returns if the two data types are
	// equal.  This method should return exact/true equality with no
	// consideration for aliases.  It is meant to only be called internally.
	equals(other DataType) bool
}

// -----------------------------------------------------------------------------

// Equivalent computes type equivalence between two data types: structural on
// integrals, nominal on structs and enums, element-and-shape equality on
// arrays.  Aliases are resolved to their canonical representative first.
func Equivalent(a, b DataType) bool {
	ia, ib := InnerType(a), InnerType(b)

	// vector types compare structurally on their bit-level layout; structs
	// and enums stay nominal even though they are integral
	if vectorLike(ia) && vectorLike(ib) {
		infoA, _ := Integral(ia)
		infoB, _ := Integral(ib)
		return infoA == infoB
	}

	return ia.equals(ib)
}

// vectorLike reports whether the type is a plain integer vector type for
// the purposes of structural equivalence
func vectorLike(dt DataType) bool {
	switch dt.(type) {
	case *IntegralType, *PackedArrayType:
		return true
	}
	return false
}

// InnerType returns the canonical representative of a type, resolving any
// chain of typedef aliases.  This is used for quickly unwrapping types
// before comparison and analysis.
func InnerType(dt DataType) DataType {
	for {
		alias, ok := dt.(*AliasType)
		if !ok {
			return dt
		}
		dt = alias.Target
	}
}

// IntegralInfo describes the bit-level layout shared by every integral type
type IntegralInfo struct {
	Width     uint32
	Signed    bool
	FourState bool
}

// Integral returns the bit-level layout of a type if it is integral: a
// predefined integer type, a packed array, a packed struct, or an enum.
func Integral(dt DataType) (IntegralInfo, bool) {
	switch v := InnerType(dt).(type) {
	case *IntegralType:
		return IntegralInfo{Width: v.Width, Signed: v.Signed, FourState: v.FourState}, true
	case *PackedArrayType:
		elem, ok := Integral(v.Elem)
		if !ok {
			return IntegralInfo{}, false
		}
		return IntegralInfo{
			Width:     elem.Width * v.Range.Width(),
			Signed:    v.Signed,
			FourState: elem.FourState,
		}, true
	case *StructType:
		if !v.Packed {
			return IntegralInfo{}, false
		}
		info := IntegralInfo{}
		for _, f := range v.Fields {
			fi, ok := Integral(f.Type)
			if !ok {
				return IntegralInfo{}, false
			}
			info.Width += fi.Width
			info.FourState = info.FourState || fi.FourState
		}
		return info, true
	case *EnumType:
		return Integral(v.Base)
	default:
		return IntegralInfo{}, false
	}
}

// IsError indicates whether the type is the error type, possibly behind
// aliases
func IsError(dt DataType) bool {
	_, ok := InnerType(dt).(*ErrorType)
	return ok
}

// BitWidth returns the width in bits of an integral type, or 0 for
// non-integral types
func BitWidth(dt DataType) uint32 {
	info, ok := Integral(dt)
	if !ok {
		return 0
	}
	return info.Width
}
