package numeric

import (
	"errors"
	"math/big"
)

// MaxWidth is the exclusive upper bound on vector widths
const MaxWidth = 1 << 24

// SVInt is an arbitrary-width two- or four-state integer.  The value is
// stored in little-endian 64-bit words; a four-state integer carries a
// parallel plane of unknown indicator bits.  An unknown bit with a clear
// value bit is X, with a set value bit is Z; operation results only ever
// produce X.  Bits beyond the width are zero in both planes.
//
// SVInt behaves as a value type: operations never mutate their receiver or
// arguments and always allocate fresh word storage for their result.
type SVInt struct {
	width     uint32
	signed    bool
	fourState bool

	words    []uint64
	unknowns []uint64 // nil unless fourState
}

var errBadWidth = errors.New("vector width must be in [1, 2^24)")

// New creates a two- or four-state integer of the given width holding a
// 64-bit value.  The value is masked to the width.
func New(width uint32, signed bool, value uint64) (SVInt, error) {
	if width == 0 || width >= MaxWidth {
		return SVInt{}, errBadWidth
	}

	sv := makeSVInt(width, signed, false)
	sv.words[0] = value
	if width < 64 {
		sv.words[0] &= (uint64(1) << width) - 1
	} else {
		// widths above 64 leave the upper words zero
		for i := 1; i < len(sv.words); i++ {
			sv.words[i] = 0
		}
	}

	return sv, nil
}

// FromBig creates an integer of the given width from a big integer value,
// truncating to the width.  Negative values are stored in two's complement.
func FromBig(width uint32, signed bool, value *big.Int) (SVInt, error) {
	if width == 0 || width >= MaxWidth {
		return SVInt{}, errBadWidth
	}

	sv := makeSVInt(width, signed, false)
	sv.storeBig(value)
	return sv, nil
}

// Fill creates an integer with every bit set to the given logic value.  A
// width filled with X or Z is four-state.
func Fill(width uint32, signed bool, b Bit) (SVInt, error) {
	if width == 0 || width >= MaxWidth {
		return SVInt{}, errBadWidth
	}

	sv := makeSVInt(width, signed, b.IsUnknown())
	for i := range sv.words {
		if b == Bit1 || b == BitZ {
			sv.words[i] = ^uint64(0)
		}
		if b.IsUnknown() {
			sv.unknowns[i] = ^uint64(0)
		}
	}
	sv.maskTop()

	return sv, nil
}

// makeSVInt allocates an integer with all-zero planes.  Callers must have
// already validated the width.
func makeSVInt(width uint32, signed, fourState bool) SVInt {
	nw := int((width + 63) / 64)
	sv := SVInt{
		width:     width,
		signed:    signed,
		fourState: fourState,
		words:     make([]uint64, nw),
	}
	if fourState {
		sv.unknowns = make([]uint64, nw)
	}
	return sv
}

// allX builds the all-X value every arithmetic operation collapses to when
// an operand carries unknown bits
func allX(width uint32, signed bool) SVInt {
	sv, _ := Fill(width, signed, BitX)
	return sv
}

// Width returns the bit width
func (sv SVInt) Width() uint32 { return sv.width }

// IsSigned indicates whether comparisons, division, and extension treat the
// value as two's complement
func (sv SVInt) IsSigned() bool { return sv.signed }

// IsFourState indicates whether the integer can carry X or Z bits
func (sv SVInt) IsFourState() bool { return sv.fourState }

// HasUnknown indicates whether any bit is X or Z
func (sv SVInt) HasUnknown() bool {
	for _, u := range sv.unknowns {
		if u != 0 {
			return true
		}
	}
	return false
}

// Bit returns the logic value of bit i; bits at or beyond the width read as
// X for four-state integers and 0 for two-state ones
func (sv SVInt) Bit(i uint32) Bit {
	if i >= sv.width {
		if sv.fourState {
			return BitX
		}
		return Bit0
	}

	w, b := i/64, i%64
	value := sv.words[w]>>b&1 == 1
	unknown := sv.fourState && sv.unknowns[w]>>b&1 == 1
	return bitFromPlanes(value, unknown)
}

// setBit writes a logic value into bit i of a freshly allocated integer.
// Only construction and lvalue update paths use it.
func (sv *SVInt) setBit(i uint32, b Bit) {
	w, off := i/64, i%64
	mask := uint64(1) << off

	if b == Bit1 || b == BitZ {
		sv.words[w] |= mask
	} else {
		sv.words[w] &^= mask
	}

	if sv.fourState {
		if b.IsUnknown() {
			sv.unknowns[w] |= mask
		} else {
			sv.unknowns[w] &^= mask
		}
	}
}

// maskTop clears the bits beyond the width in both planes
func (sv *SVInt) maskTop() {
	if rem := sv.width % 64; rem != 0 {
		mask := (uint64(1) << rem) - 1
		sv.words[len(sv.words)-1] &= mask
		if sv.fourState {
			sv.unknowns[len(sv.unknowns)-1] &= mask
		}
	}
}

// clone produces an independent copy of the integer
func (sv SVInt) clone() SVInt {
	out := sv
	out.words = append([]uint64(nil), sv.words...)
	if sv.unknowns != nil {
		out.unknowns = append([]uint64(nil), sv.unknowns...)
	}
	return out
}

// WithSign returns the same bits reinterpreted with the given signedness
func (sv SVInt) WithSign(signed bool) SVInt {
	out := sv.clone()
	out.signed = signed
	return out
}

// AsFourState returns a four-state view of the value; a four-state receiver
// is returned unchanged
func (sv SVInt) AsFourState() SVInt {
	if sv.fourState {
		return sv
	}
	out := sv.clone()
	out.fourState = true
	out.unknowns = make([]uint64, len(out.words))
	return out
}

// AsTwoState flattens unknown bits to zero and drops the unknown plane
func (sv SVInt) AsTwoState() SVInt {
	out := sv.clone()
	if out.fourState {
		for i := range out.words {
			out.words[i] &^= out.unknowns[i]
		}
		out.fourState = false
		out.unknowns = nil
	}
	return out
}

// Extend widens the integer to the given width, sign-extending when
// signExtend is set and the MSB is 1 (or X/Z, which extend with themselves).
// Extending to the current width or below returns the value unchanged.
func (sv SVInt) Extend(toWidth uint32, signExtend bool) SVInt {
	if toWidth <= sv.width {
		return sv
	}

	out := makeSVInt(toWidth, sv.signed, sv.fourState)
	copy(out.words, sv.words)
	if sv.fourState {
		copy(out.unknowns, sv.unknowns)
	}

	if signExtend {
		msb := sv.Bit(sv.width - 1)
		if msb != Bit0 {
			for i := sv.width; i < toWidth; i++ {
				out.setBit(i, msb)
			}
		}
	}

	return out
}

// Truncate drops the most significant bits down to the given width,
// preserving unknown-ness bit-wise
func (sv SVInt) Truncate(toWidth uint32) SVInt {
	if toWidth >= sv.width {
		return sv
	}

	out := makeSVInt(toWidth, sv.signed, sv.fourState)
	copy(out.words, sv.words[:len(out.words)])
	if sv.fourState {
		copy(out.unknowns, sv.unknowns[:len(out.unknowns)])
	}
	out.maskTop()

	return out
}

// Resize widens or narrows the value to the given width.  Widening extends
// per the value's own signedness.
func (sv SVInt) Resize(toWidth uint32) SVInt {
	if toWidth > sv.width {
		return sv.Extend(toWidth, sv.signed)
	}
	return sv.Truncate(toWidth)
}

// Slice extracts width bits starting at bit lsb.  Bits read from beyond the
// receiver are X for four-state values and 0 otherwise.
func (sv SVInt) Slice(lsb int32, width uint32) SVInt {
	out := makeSVInt(width, false, sv.fourState)
	for i := uint32(0); i < width; i++ {
		src := int64(lsb) + int64(i)
		if src < 0 || src >= int64(sv.width) {
			if sv.fourState {
				out.setBit(i, BitX)
			}
			continue
		}
		out.setBit(i, sv.Bit(uint32(src)))
	}
	return out
}

// SetSlice returns a copy of the receiver with src written at bit lsb.
// Bits outside the written range keep their value, including unknown-ness;
// writes beyond either edge are dropped.
func (sv SVInt) SetSlice(lsb int32, src SVInt) SVInt {
	out := sv.clone()
	if src.HasUnknown() && !out.fourState {
		out = out.AsFourState()
	}

	for i := uint32(0); i < src.width; i++ {
		dst := int64(lsb) + int64(i)
		if dst < 0 || dst >= int64(sv.width) {
			continue
		}
		b := src.Bit(i)
		if !out.fourState && b.IsUnknown() {
			b = Bit0
		}
		out.setBit(uint32(dst), b)
	}

	return out
}

// Merge combines two values bit-wise: where the bits agree and are known the
// common bit is kept, everywhere else the result is X.  The evaluator uses
// this for conditionals whose predicate is unknown.
func (sv SVInt) Merge(other SVInt) SVInt {
	width := sv.width
	if other.width > width {
		width = other.width
	}

	out := makeSVInt(width, sv.signed && other.signed, true)
	for i := uint32(0); i < width; i++ {
		a, b := sv.Bit(i), other.Bit(i)
		if a == b && !a.IsUnknown() {
			out.setBit(i, a)
		} else {
			out.setBit(i, BitX)
		}
	}

	return out
}

// ToBig returns the value interpreted per the signedness as a big integer.
// Unknown bits read as zero.
func (sv SVInt) ToBig() *big.Int {
	v := new(big.Int)
	for i := len(sv.words) - 1; i >= 0; i-- {
		w := sv.words[i]
		if sv.fourState {
			w &^= sv.unknowns[i]
		}
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(w))
	}

	if sv.signed && sv.Bit(sv.width-1) == Bit1 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(sv.width))
		v.Sub(v, modulus)
	}

	return v
}

// AsUint64 returns the low 64 bits of the value and whether the full value
// fit losslessly (no unknowns, no truncation, non-negative); a value with
// unknown bits yields 0
func (sv SVInt) AsUint64() (uint64, bool) {
	if sv.HasUnknown() {
		return 0, false
	}

	v := sv.ToBig()
	if !v.IsUint64() {
		return sv.words[0], false
	}
	return v.Uint64(), true
}

// AsInt32 returns the value as a 32-bit integer and whether it fit
func (sv SVInt) AsInt32() (int32, bool) {
	if sv.HasUnknown() {
		return 0, false
	}

	v := sv.ToBig()
	if !v.IsInt64() {
		return 0, false
	}
	i := v.Int64()
	if i < -1<<31 || i > 1<<31-1 {
		return 0, false
	}
	return int32(i), true
}

// storeBig writes a big integer's two's complement representation into the
// value plane, truncating to the width
func (sv *SVInt) storeBig(value *big.Int) {
	v := new(big.Int).Set(value)
	if v.Sign() < 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(sv.width))
		v.Mod(v, modulus)
		if v.Sign() < 0 {
			v.Add(v, modulus)
		}
	}

	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int)
	for i := range sv.words {
		sv.words[i] = tmp.And(v, mask).Uint64()
		v.Rsh(v, 64)
	}
	sv.maskTop()
}
