package numeric

import (
	"math/big"
)

// commonArith prepares two operands for a max-width arithmetic operation:
// both are resized to the larger width and the result signedness is
// computed.  Any unknown bit in either operand collapses the whole
// operation to all-X.  Division and modulo size to the dividend instead
// and do their own preparation.
func commonArith(a, b SVInt) (SVInt, SVInt, uint32, bool, bool) {
	width := a.width
	if b.width > width {
		width = b.width
	}
	signed := a.signed && b.signed

	if a.HasUnknown() || b.HasUnknown() {
		return a, b, width, signed, true
	}

	return a.WithSign(signed).Resize(width), b.WithSign(signed).Resize(width), width, signed, false
}

// finishArith truncates a big-integer result back into a vector of the
// operation width
func finishArith(width uint32, signed, fourState bool, v *big.Int) SVInt {
	out := makeSVInt(width, signed, fourState)
	out.storeBig(v)
	return out
}

// Add returns the sum at the larger operand width
func (sv SVInt) Add(other SVInt) SVInt {
	a, b, width, signed, unknown := commonArith(sv, other)
	fourState := sv.fourState || other.fourState
	if unknown {
		return allX(width, signed)
	}

	return finishArith(width, signed, fourState, new(big.Int).Add(a.ToBig(), b.ToBig()))
}

// Sub returns the difference at the larger operand width
func (sv SVInt) Sub(other SVInt) SVInt {
	a, b, width, signed, unknown := commonArith(sv, other)
	fourState := sv.fourState || other.fourState
	if unknown {
		return allX(width, signed)
	}

	return finishArith(width, signed, fourState, new(big.Int).Sub(a.ToBig(), b.ToBig()))
}

// Mul returns the product at the larger operand width
func (sv SVInt) Mul(other SVInt) SVInt {
	a, b, width, signed, unknown := commonArith(sv, other)
	fourState := sv.fourState || other.fourState
	if unknown {
		return allX(width, signed)
	}

	return finishArith(width, signed, fourState, new(big.Int).Mul(a.ToBig(), b.ToBig()))
}

// Neg returns the two's complement negation
func (sv SVInt) Neg() SVInt {
	if sv.HasUnknown() {
		return allX(sv.width, sv.signed)
	}

	return finishArith(sv.width, sv.signed, sv.fourState, new(big.Int).Neg(sv.ToBig()))
}

// Div returns the quotient truncated toward zero.  Unlike the max-width
// operators, the result takes the dividend's width per the LRM rule for
// division; the divisor contributes only its signedness and state.  The
// second result is false on division by zero, in which case the value is
// all-X at the dividend's width; the caller records the diagnostic.
func (sv SVInt) Div(other SVInt) (SVInt, bool) {
	signed := sv.signed && other.signed
	fourState := sv.fourState || other.fourState

	if sv.HasUnknown() || other.HasUnknown() {
		return allX(sv.width, signed), true
	}

	bv := other.WithSign(signed).ToBig()
	if bv.Sign() == 0 {
		return allX(sv.width, signed), false
	}

	av := sv.WithSign(signed).ToBig()
	return finishArith(sv.width, signed, fourState, new(big.Int).Quo(av, bv)), true
}

// Mod returns the remainder with the sign of the dividend, at the
// dividend's width like Div.  The second result is false on division by
// zero.
func (sv SVInt) Mod(other SVInt) (SVInt, bool) {
	signed := sv.signed && other.signed
	fourState := sv.fourState || other.fourState

	if sv.HasUnknown() || other.HasUnknown() {
		return allX(sv.width, signed), true
	}

	bv := other.WithSign(signed).ToBig()
	if bv.Sign() == 0 {
		return allX(sv.width, signed), false
	}

	av := sv.WithSign(signed).ToBig()
	return finishArith(sv.width, signed, fourState, new(big.Int).Rem(av, bv)), true
}

// Pow returns sv raised to the power of other, following the LRM table for
// zero and negative cases
func (sv SVInt) Pow(other SVInt) SVInt {
	a, b, width, signed, unknown := commonArith(sv, other)
	fourState := sv.fourState || other.fourState
	if unknown {
		return allX(width, signed)
	}

	base, exp := a.ToBig(), b.ToBig()
	one := big.NewInt(1)

	switch {
	case exp.Sign() == 0:
		return finishArith(width, signed, fourState, one)

	case exp.Sign() < 0:
		// negative exponents only survive a base of magnitude one or zero
		switch {
		case base.CmpAbs(one) == 0:
			if base.Sign() > 0 || new(big.Int).And(exp, one).Sign() == 0 {
				return finishArith(width, signed, fourState, one)
			}
			return finishArith(width, signed, fourState, big.NewInt(-1))
		case base.Sign() == 0:
			return allX(width, signed)
		default:
			return finishArith(width, signed, fourState, new(big.Int))
		}

	default:
		// bound the intermediate: the result is truncated to width bits, so
		// exponentiation is carried out modulo 2^width
		modulus := new(big.Int).Lsh(one, uint(width))
		result := new(big.Int).Exp(new(big.Int).Mod(base, modulus), exp, modulus)
		return finishArith(width, signed, fourState, result)
	}
}

// Shl returns the value shifted left by the amount, dropping bits shifted
// beyond the width.  An unknown amount produces all-X.
func (sv SVInt) Shl(amount SVInt) SVInt {
	n, ok := amount.AsUint64()
	if !ok {
		return allX(sv.width, sv.signed)
	}

	out := makeSVInt(sv.width, sv.signed, sv.fourState)
	for i := uint32(0); i < sv.width; i++ {
		if uint64(i) >= n {
			out.setBit(i, sv.Bit(i-uint32(n)))
		}
	}
	return out
}

// LShr returns the value logically shifted right, zero-filling the MSBs
func (sv SVInt) LShr(amount SVInt) SVInt {
	n, ok := amount.AsUint64()
	if !ok {
		return allX(sv.width, sv.signed)
	}

	out := makeSVInt(sv.width, sv.signed, sv.fourState)
	for i := uint32(0); i < sv.width; i++ {
		src := uint64(i) + n
		if src < uint64(sv.width) {
			out.setBit(i, sv.Bit(uint32(src)))
		}
	}
	return out
}

// AShr returns the value arithmetically shifted right.  Signed values fill
// with the MSB, including an X or Z MSB; unsigned values zero-fill.
func (sv SVInt) AShr(amount SVInt) SVInt {
	if !sv.signed {
		return sv.LShr(amount)
	}

	n, ok := amount.AsUint64()
	if !ok {
		return allX(sv.width, sv.signed)
	}

	msb := sv.Bit(sv.width - 1)
	out := makeSVInt(sv.width, sv.signed, sv.fourState)
	for i := uint32(0); i < sv.width; i++ {
		src := uint64(i) + n
		if src < uint64(sv.width) {
			out.setBit(i, sv.Bit(uint32(src)))
		} else {
			out.setBit(i, msb)
		}
	}
	return out
}
