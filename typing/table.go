package typing

import (
	"sync"
)

// Table interns anonymous vector types so repeated layouts share one
// representative.  A single table belongs to a compilation; it is the only
// typing structure that may be shared across concurrently elaborating design
// units, so access is lock-protected.
type Table struct {
	m        sync.Mutex
	integral map[IntegralInfo]*IntegralType
}

// NewTable creates an empty intern table
func NewTable() *Table {
	return &Table{integral: make(map[IntegralInfo]*IntegralType)}
}

// Integral returns the interned integral type with the given layout
func (t *Table) Integral(width uint32, signed, fourState bool) *IntegralType {
	key := IntegralInfo{Width: width, Signed: signed, FourState: fourState}

	t.m.Lock()
	defer t.m.Unlock()

	if it, ok := t.integral[key]; ok {
		return it
	}

	it := MakeIntegral(width, signed, fourState)
	t.integral[key] = it
	return it
}

// Packed returns a packed array type over the element with the given range
func (t *Table) Packed(elem DataType, rng Range) *PackedArrayType {
	// packed arrays are not interned: equivalence is structural, so sharing
	// is an optimization the table does not need for correctness
	return &PackedArrayType{Elem: elem, Range: rng}
}
