package typing

import (
	"fmt"
	"strings"

	"svlang/numeric"
)

// IntegralType is a predefined scalar or vector integer type: `logic`,
// `bit`, `int`, and friends, or a keyword type refined by a signing
// specifier.  Equality is structural on the (width, signed, fourState)
// triple.
type IntegralType struct {
	// Keyword is the display keyword; structurally identical types with
	// different keywords are still equivalent
	Keyword string

	Width     uint32
	Signed    bool
	FourState bool
}

func (it *IntegralType) equals(other DataType) bool {
	oit, ok := other.(*IntegralType)
	if !ok {
		return false
	}
	return it.Width == oit.Width && it.Signed == oit.Signed && it.FourState == oit.FourState
}

// Repr of a predefined type is its keyword; signing differing from the
// keyword default is spelled out
func (it *IntegralType) Repr() string {
	if it.Keyword != "" {
		return it.Keyword
	}
	base := "bit"
	if it.FourState {
		base = "logic"
	}
	if it.Signed {
		return fmt.Sprintf("%s signed [%d:0]", base, it.Width-1)
	}
	return fmt.Sprintf("%s [%d:0]", base, it.Width-1)
}

// Predefined types
var (
	LogicType     = &IntegralType{Keyword: "logic", Width: 1, FourState: true}
	BitType       = &IntegralType{Keyword: "bit", Width: 1}
	IntType       = &IntegralType{Keyword: "int", Width: 32, Signed: true}
	IntegerType   = &IntegralType{Keyword: "integer", Width: 32, Signed: true, FourState: true}
	ShortIntType  = &IntegralType{Keyword: "shortint", Width: 16, Signed: true}
	LongIntType   = &IntegralType{Keyword: "longint", Width: 64, Signed: true}
	ByteType      = &IntegralType{Keyword: "byte", Width: 8, Signed: true}
	TimeType      = &IntegralType{Keyword: "time", Width: 64, FourState: true}
	RealType      = &FloatType{Keyword: "real", ShortReal: false}
	ShortRealType = &FloatType{Keyword: "shortreal", ShortReal: true}
	RealTimeType  = &FloatType{Keyword: "realtime", ShortReal: false}
	StrType       = &StringType{}
	VoidTyp       = &VoidType{}
	NullTyp       = &NullType{}
	EventTyp      = &EventType{}
	ErrorTyp      = &ErrorType{}
	UnboundedTyp  = &UnboundedType{}
)

// FloatType is one of the floating types; `real` and `realtime` are 64-bit,
// `shortreal` is 32-bit
type FloatType struct {
	Keyword   string
	ShortReal bool
}

func (ft *FloatType) equals(other DataType) bool {
	oft, ok := other.(*FloatType)
	return ok && ft.ShortReal == oft.ShortReal
}

func (ft *FloatType) Repr() string { return ft.Keyword }

// StringType is the dynamic `string` type
type StringType struct{}

func (*StringType) equals(other DataType) bool {
	_, ok := other.(*StringType)
	return ok
}

func (*StringType) Repr() string { return "string" }

// VoidType is the `void` type
type VoidType struct{}

func (*VoidType) equals(other DataType) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (*VoidType) Repr() string { return "void" }

// NullType is the type of the `null` literal
type NullType struct{}

func (*NullType) equals(other DataType) bool {
	_, ok := other.(*NullType)
	return ok
}

func (*NullType) Repr() string { return "null" }

// EventType is the `event` type
type EventType struct{}

func (*EventType) equals(other DataType) bool {
	_, ok := other.(*EventType)
	return ok
}

func (*EventType) Repr() string { return "event" }

// ErrorType marks a type that failed to bind; expressions of this type
// short-circuit all further analysis
type ErrorType struct{}

func (*ErrorType) equals(other DataType) bool {
	_, ok := other.(*ErrorType)
	return ok
}

func (*ErrorType) Repr() string { return "<error>" }

// UnboundedType is the type of the `$` unbounded-range marker
type UnboundedType struct{}

func (*UnboundedType) equals(other DataType) bool {
	_, ok := other.(*UnboundedType)
	return ok
}

func (*UnboundedType) Repr() string { return "$" }

// -----------------------------------------------------------------------------

// Range is a packed or unpacked dimension `[Left:Right]`.  Left is the MSB
// bound; a range is little endian when Left >= Right.
type Range struct {
	Left, Right int32
}

// Width returns the number of elements the range spans
func (r Range) Width() uint32 {
	d := r.Left - r.Right
	if d < 0 {
		d = -d
	}
	return uint32(d) + 1
}

// Lower returns the numerically smaller bound
func (r Range) Lower() int32 {
	if r.Left < r.Right {
		return r.Left
	}
	return r.Right
}

// Contains indicates whether the index falls within the range bounds
func (r Range) Contains(index int32) bool {
	return index >= r.Lower() && index < r.Lower()+int32(r.Width())
}

// Offset translates a source-level index into a zero-based element offset.
// For a little-endian range [7:0], index 0 is offset 0; for a big-endian
// range [0:7], index 0 is the topmost element.
func (r Range) Offset(index int32) uint32 {
	if r.Left >= r.Right {
		return uint32(index - r.Right)
	}
	return uint32(r.Right - index)
}

// Repr renders the range in source form
func (r Range) Repr() string {
	return fmt.Sprintf("[%d:%d]", r.Left, r.Right)
}

// PackedArrayType is a packed vector of an integral element type
type PackedArrayType struct {
	Elem   DataType
	Range  Range
	Signed bool
}

func (pat *PackedArrayType) equals(other DataType) bool {
	opat, ok := other.(*PackedArrayType)
	if !ok {
		// a packed array of 1-bit elements is structurally an integral
		if info, iok := Integral(pat); iok {
			if oinfo, ook := Integral(other); ook {
				return info == oinfo
			}
		}
		return false
	}
	return pat.Range.Width() == opat.Range.Width() && Equivalent(pat.Elem, opat.Elem) &&
		pat.Signed == opat.Signed
}

func (pat *PackedArrayType) Repr() string {
	return fmt.Sprintf("%s %s", pat.Elem.Repr(), pat.Range.Repr())
}

// UnpackedArrayType is a fixed-size unpacked array
type UnpackedArrayType struct {
	Elem  DataType
	Range Range
}

func (uat *UnpackedArrayType) equals(other DataType) bool {
	ouat, ok := other.(*UnpackedArrayType)
	if !ok {
		return false
	}
	return uat.Range.Width() == ouat.Range.Width() && Equivalent(uat.Elem, ouat.Elem)
}

func (uat *UnpackedArrayType) Repr() string {
	return fmt.Sprintf("%s $%s", uat.Elem.Repr(), uat.Range.Repr())
}

// -----------------------------------------------------------------------------

// StructField is a single named field of a struct type
type StructField struct {
	Name string
	Type DataType

	// Offset is the field's bit offset within a packed struct or its element
	// index within an unpacked one
	Offset uint32
}

// StructType is a packed or unpacked structure.  Struct equality is nominal:
// two struct types are equivalent only if they are the same declaration.
type StructType struct {
	Name   string
	Packed bool
	Fields []*StructField
}

func (st *StructType) equals(other DataType) bool {
	return st == other
}

func (st *StructType) Repr() string {
	if st.Name != "" {
		return st.Name
	}
	parts := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		parts[i] = f.Type.Repr() + " " + f.Name
	}
	kw := "struct"
	if st.Packed {
		kw = "struct packed"
	}
	return kw + " {" + strings.Join(parts, "; ") + "}"
}

// FieldByName returns the named field, if any
func (st *StructType) FieldByName(name string) (*StructField, bool) {
	for _, f := range st.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// -----------------------------------------------------------------------------

// EnumValue is a single named member of an enum type
type EnumValue struct {
	Name  string
	Value numeric.SVInt
}

// EnumType is an enumeration over an integral base type.  Enum equality is
// nominal.
type EnumType struct {
	Name    string
	Base    DataType
	Members []*EnumValue
}

func (et *EnumType) equals(other DataType) bool {
	return et == other
}

func (et *EnumType) Repr() string {
	if et.Name != "" {
		return et.Name
	}
	parts := make([]string, len(et.Members))
	for i, m := range et.Members {
		parts[i] = m.Name
	}
	return "enum {" + strings.Join(parts, ", ") + "}"
}

// MemberByName returns the named member, if any
func (et *EnumType) MemberByName(name string) (*EnumValue, bool) {
	for _, m := range et.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// -----------------------------------------------------------------------------

// AliasType is a typedef: a name bound to a target type.  Equivalence
// resolves aliases eagerly, so an alias is interchangeable with its target.
type AliasType struct {
	Name   string
	Target DataType
}

func (at *AliasType) equals(other DataType) bool {
	return InnerType(at.Target).equals(other)
}

func (at *AliasType) Repr() string { return at.Name }
