package typing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEquivalence(t *testing.T) {
	t.Run("integrals are structural", func(t *testing.T) {
		assert.True(t, Equivalent(IntType, &IntegralType{Width: 32, Signed: true}))
		assert.False(t, Equivalent(IntType, IntegerType), "two-state int vs four-state integer")
		assert.False(t, Equivalent(IntType, LongIntType))
		assert.False(t, Equivalent(BitType, LogicType))
	})

	t.Run("packed array equals matching plain vector", func(t *testing.T) {
		byte8 := &PackedArrayType{Elem: LogicType, Range: Range{Left: 7, Right: 0}}
		assert.True(t, Equivalent(byte8, &IntegralType{Width: 8, FourState: true}))
		assert.False(t, Equivalent(byte8, &IntegralType{Width: 8}))
	})

	t.Run("structs and enums are nominal", func(t *testing.T) {
		mk := func() *StructType {
			return &StructType{Packed: true, Fields: []*StructField{
				{Name: "a", Type: ByteType, Offset: 0},
			}}
		}
		s1, s2 := mk(), mk()
		assert.True(t, Equivalent(s1, s1))
		assert.False(t, Equivalent(s1, s2))

		e1 := &EnumType{Base: IntType}
		e2 := &EnumType{Base: IntType}
		assert.True(t, Equivalent(e1, e1))
		assert.False(t, Equivalent(e1, e2))
	})

	t.Run("aliases resolve eagerly", func(t *testing.T) {
		alias := &AliasType{Name: "word_t", Target: IntType}
		nested := &AliasType{Name: "dword_t", Target: alias}
		assert.True(t, Equivalent(alias, IntType))
		assert.True(t, Equivalent(nested, IntType))
		assert.True(t, Equivalent(nested, alias))
	})

	t.Run("unpacked arrays match on shape and element", func(t *testing.T) {
		a := &UnpackedArrayType{Elem: IntType, Range: Range{Left: 0, Right: 3}}
		b := &UnpackedArrayType{Elem: IntType, Range: Range{Left: 3, Right: 0}}
		c := &UnpackedArrayType{Elem: IntType, Range: Range{Left: 0, Right: 4}}
		assert.True(t, Equivalent(a, b), "same width, same element")
		assert.False(t, Equivalent(a, c))
	})
}

func TestIntegralInfo(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		want IntegralInfo
		ok   bool
	}{
		{"int", IntType, IntegralInfo{Width: 32, Signed: true}, true},
		{"logic", LogicType, IntegralInfo{Width: 1, FourState: true}, true},
		{
			"packed array",
			&PackedArrayType{Elem: LogicType, Range: Range{Left: 7, Right: 0}},
			IntegralInfo{Width: 8, FourState: true},
			true,
		},
		{
			"packed struct",
			&StructType{Packed: true, Fields: []*StructField{
				{Name: "hi", Type: ByteType}, {Name: "lo", Type: ByteType},
			}},
			IntegralInfo{Width: 16, FourState: false},
			true,
		},
		{"real", RealType, IntegralInfo{}, false},
		{"string", StrType, IntegralInfo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := Integral(tt.typ)
			assert.Equal(t, tt.ok, ok)
			if diff := cmp.Diff(tt.want, info); ok && diff != "" {
				t.Errorf("unexpected layout (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssignableFrom(t *testing.T) {
	enum := &EnumType{Base: IntType}
	stru := &StructType{Fields: []*StructField{{Name: "a", Type: IntType}}}

	tests := []struct {
		name     string
		lhs, rhs DataType
		want     ConvertKind
	}{
		{"integral to integral", IntType, ByteType, ConvertImplicit},
		{"narrowing still implicit", ByteType, IntType, ConvertImplicit},
		{"string from integral", StrType, IntType, ConvertImplicit},
		{"integral from string", IntType, StrType, ConvertImplicit},
		{"real from integral", RealType, IntType, ConvertImplicit},
		{"integral from real", IntType, RealType, ConvertImplicit},
		{"enum from integral needs cast", enum, IntType, ConvertExplicit},
		{"integral from enum", IntType, enum, ConvertImplicit},
		{"enum from same enum", enum, enum, ConvertImplicit},
		{"struct from integral", stru, IntType, ConvertNone},
		{"error absorbs", ErrorTyp, stru, ConvertImplicit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignableFrom(tt.lhs, tt.rhs))
		})
	}

	t.Run("unpacked arrays element-wise", func(t *testing.T) {
		a := &UnpackedArrayType{Elem: IntType, Range: Range{Left: 3, Right: 0}}
		b := &UnpackedArrayType{Elem: ByteType, Range: Range{Left: 3, Right: 0}}
		c := &UnpackedArrayType{Elem: IntType, Range: Range{Left: 4, Right: 0}}
		assert.Equal(t, ConvertImplicit, AssignableFrom(a, b))
		assert.Equal(t, ConvertNone, AssignableFrom(a, c))
	})
}

func TestBinaryOperatorType(t *testing.T) {
	t.Run("max width, and of signs, or of states", func(t *testing.T) {
		got := BinaryOperatorType(IntType, LongIntType, false)
		info, ok := Integral(got)
		assert.True(t, ok)
		assert.Equal(t, IntegralInfo{Width: 64, Signed: true}, info)

		got = BinaryOperatorType(IntType, &IntegralType{Width: 16}, false)
		info, _ = Integral(got)
		assert.Equal(t, IntegralInfo{Width: 32, Signed: false}, info)

		got = BinaryOperatorType(IntType, IntegerType, false)
		info, _ = Integral(got)
		assert.Equal(t, IntegralInfo{Width: 32, Signed: true, FourState: true}, info)
	})

	t.Run("division takes the dividend's width", func(t *testing.T) {
		got := DivisionOperatorType(ByteType, LongIntType, false)
		info, ok := Integral(got)
		assert.True(t, ok)
		assert.Equal(t, IntegralInfo{Width: 8, Signed: true}, info)

		got = DivisionOperatorType(LongIntType, ByteType, false)
		info, _ = Integral(got)
		assert.Equal(t, IntegralInfo{Width: 64, Signed: true}, info)

		// the divisor still contributes signedness and state
		got = DivisionOperatorType(IntType, IntegerType, false)
		info, _ = Integral(got)
		assert.Equal(t, IntegralInfo{Width: 32, Signed: true, FourState: true}, info)

		got = DivisionOperatorType(IntType, &IntegralType{Width: 8}, false)
		info, _ = Integral(got)
		assert.Equal(t, IntegralInfo{Width: 32, Signed: false}, info)

		assert.True(t, Equivalent(DivisionOperatorType(RealType, IntType, false), RealType))
		assert.True(t, IsError(DivisionOperatorType(StrType, IntType, false)))
	})

	t.Run("force four state", func(t *testing.T) {
		got := BinaryOperatorType(IntType, IntType, true)
		info, _ := Integral(got)
		assert.True(t, info.FourState)
	})

	t.Run("float dominates", func(t *testing.T) {
		assert.True(t, Equivalent(BinaryOperatorType(RealType, IntType, false), RealType))
		assert.True(t, Equivalent(BinaryOperatorType(ShortRealType, ShortRealType, false), ShortRealType))
		assert.True(t, Equivalent(BinaryOperatorType(ShortRealType, RealType, false), RealType))
	})

	t.Run("non-numeric is error", func(t *testing.T) {
		assert.True(t, IsError(BinaryOperatorType(StrType, IntType, false)))
	})
}

func TestRange(t *testing.T) {
	le := Range{Left: 7, Right: 0}
	be := Range{Left: 0, Right: 7}

	assert.Equal(t, uint32(8), le.Width())
	assert.Equal(t, uint32(8), be.Width())

	assert.Equal(t, uint32(0), le.Offset(0))
	assert.Equal(t, uint32(7), le.Offset(7))
	assert.Equal(t, uint32(7), be.Offset(0))
	assert.Equal(t, uint32(0), be.Offset(7))

	assert.True(t, le.Contains(0))
	assert.True(t, le.Contains(7))
	assert.False(t, le.Contains(8))
	assert.False(t, le.Contains(-1))
}

func TestTable(t *testing.T) {
	table := NewTable()

	a := table.Integral(12, false, true)
	b := table.Integral(12, false, true)
	assert.Same(t, a, b, "interned layouts share one representative")

	c := table.Integral(12, true, true)
	assert.NotSame(t, a, c)

	// predefined layouts come back as the predefined types
	assert.Same(t, IntType, table.Integral(32, true, false))
	assert.Same(t, LogicType, table.Integral(1, false, true))
}
