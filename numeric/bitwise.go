package numeric

// commonBitwise resizes both operands to the larger width for a per-bit
// operation.  Widening follows each operand's own signedness.
func commonBitwise(a, b SVInt) (SVInt, SVInt, uint32, bool, bool) {
	width := a.width
	if b.width > width {
		width = b.width
	}
	signed := a.signed && b.signed
	fourState := a.fourState || b.fourState

	return a.Resize(width), b.Resize(width), width, signed, fourState
}

// And returns the per-bit AND: a known 0 wins, two known 1s produce 1, and
// everything else is X
func (sv SVInt) And(other SVInt) SVInt {
	a, b, width, signed, fourState := commonBitwise(sv, other)
	out := makeSVInt(width, signed, fourState)

	for i := range out.words {
		av, au := a.plane(i)
		bv, bu := b.plane(i)

		known0 := (^av & ^au) | (^bv & ^bu)
		ru := (au | bu) &^ known0
		rv := (av &^ au) & (bv &^ bu)

		out.words[i] = rv
		if fourState {
			out.unknowns[i] = ru
		}
	}
	out.maskTop()

	return out
}

// Or returns the per-bit OR: a known 1 wins, two known 0s produce 0, and
// everything else is X
func (sv SVInt) Or(other SVInt) SVInt {
	a, b, width, signed, fourState := commonBitwise(sv, other)
	out := makeSVInt(width, signed, fourState)

	for i := range out.words {
		av, au := a.plane(i)
		bv, bu := b.plane(i)

		known1 := (av &^ au) | (bv &^ bu)
		ru := (au | bu) &^ known1
		rv := known1

		out.words[i] = rv
		if fourState {
			out.unknowns[i] = ru
		}
	}
	out.maskTop()

	return out
}

// Xor returns the per-bit XOR; any unknown input bit produces X
func (sv SVInt) Xor(other SVInt) SVInt {
	a, b, width, signed, fourState := commonBitwise(sv, other)
	out := makeSVInt(width, signed, fourState)

	for i := range out.words {
		av, au := a.plane(i)
		bv, bu := b.plane(i)

		ru := au | bu
		rv := (av ^ bv) &^ ru

		out.words[i] = rv
		if fourState {
			out.unknowns[i] = ru
		}
	}
	out.maskTop()

	return out
}

// Xnor returns the per-bit XNOR; any unknown input bit produces X
func (sv SVInt) Xnor(other SVInt) SVInt {
	a, b, width, signed, fourState := commonBitwise(sv, other)
	out := makeSVInt(width, signed, fourState)

	for i := range out.words {
		av, au := a.plane(i)
		bv, bu := b.plane(i)

		ru := au | bu
		rv := ^(av ^ bv) &^ ru

		out.words[i] = rv
		if fourState {
			out.unknowns[i] = ru
		}
	}
	out.maskTop()

	return out
}

// Not returns the per-bit negation; unknown bits stay X
func (sv SVInt) Not() SVInt {
	out := makeSVInt(sv.width, sv.signed, sv.fourState)

	for i := range out.words {
		av, au := sv.plane(i)
		out.words[i] = ^av &^ au
		if sv.fourState {
			out.unknowns[i] = au
		}
	}
	out.maskTop()

	return out
}

// plane returns word i of the value and unknown planes
func (sv SVInt) plane(i int) (uint64, uint64) {
	if i >= len(sv.words) {
		return 0, 0
	}
	if !sv.fourState {
		return sv.words[i], 0
	}
	return sv.words[i], sv.unknowns[i]
}

// -----------------------------------------------------------------------------

// ReduceAnd collapses the value to a single bit: 1 if every bit is 1, 0 if
// any bit is a known 0, X otherwise
func (sv SVInt) ReduceAnd() Bit {
	result := Bit1
	for i := uint32(0); i < sv.width; i++ {
		switch sv.Bit(i) {
		case Bit0:
			return Bit0
		case BitX, BitZ:
			result = BitX
		}
	}
	return result
}

// ReduceOr collapses the value to a single bit: 1 if any bit is a known 1,
// 0 if every bit is 0, X otherwise
func (sv SVInt) ReduceOr() Bit {
	result := Bit0
	for i := uint32(0); i < sv.width; i++ {
		switch sv.Bit(i) {
		case Bit1:
			return Bit1
		case BitX, BitZ:
			result = BitX
		}
	}
	return result
}

// ReduceXor collapses the value to its bit-parity, or X if any bit is
// unknown
func (sv SVInt) ReduceXor() Bit {
	parity := Bit0
	for i := uint32(0); i < sv.width; i++ {
		switch sv.Bit(i) {
		case Bit1:
			if parity == Bit0 {
				parity = Bit1
			} else {
				parity = Bit0
			}
		case BitX, BitZ:
			return BitX
		}
	}
	return parity
}

// -----------------------------------------------------------------------------

// Concat places the receiver in the most significant position followed by
// the arguments in order.  The result is unsigned and four-state if any
// operand is.
func (sv SVInt) Concat(others ...SVInt) SVInt {
	width := sv.width
	fourState := sv.fourState
	for _, o := range others {
		width += o.width
		fourState = fourState || o.fourState
	}

	out := makeSVInt(width, false, fourState)

	pos := uint32(0)
	for i := len(others) - 1; i >= 0; i-- {
		o := others[i]
		for b := uint32(0); b < o.width; b++ {
			out.setBit(pos+b, o.Bit(b))
		}
		pos += o.width
	}
	for b := uint32(0); b < sv.width; b++ {
		out.setBit(pos+b, sv.Bit(b))
	}

	return out
}

// Replicate concatenates count copies of the value
func (sv SVInt) Replicate(count uint32) SVInt {
	out := makeSVInt(sv.width*count, false, sv.fourState)
	for c := uint32(0); c < count; c++ {
		for b := uint32(0); b < sv.width; b++ {
			out.setBit(c*sv.width+b, sv.Bit(b))
		}
	}
	return out
}
