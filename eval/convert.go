package eval

import (
	"math"
	"math/big"

	"svlang/numeric"
	"svlang/typing"
)

// ConvertValue applies a declared type conversion to a constant value:
// width, signedness, and representation changes.  Conversions the type
// system rejected never reach here.  An unpacked array target yields bad
// for a non-array value or an element that does not convert; a target type
// with no conversion rule returns the value unchanged.
func ConvertValue(cv numeric.ConstantValue, to typing.DataType) numeric.ConstantValue {
	if cv.IsBad() {
		return cv
	}

	target := typing.InnerType(to)

	if info, ok := typing.Integral(target); ok {
		return convertToIntegral(cv, info)
	}

	switch v := target.(type) {
	case *typing.FloatType:
		return convertToFloat(cv, v)

	case *typing.StringType:
		return convertToString(cv)

	case *typing.UnpackedArrayType:
		if cv.Kind() != numeric.CVArray {
			return numeric.BadValue
		}
		elems := make([]numeric.ConstantValue, len(cv.Elements()))
		for i, e := range cv.Elements() {
			elems[i] = ConvertValue(e, v.Elem)
			if elems[i].IsBad() {
				return numeric.BadValue
			}
		}
		return numeric.ArrayValue(elems)

	default:
		return cv
	}
}

// convertToIntegral resizes and re-flags a value into an integral layout.
// Extension follows the source's own signedness per the LRM; the result
// takes the target's signedness and state kind.
func convertToIntegral(cv numeric.ConstantValue, info typing.IntegralInfo) numeric.ConstantValue {
	var sv numeric.SVInt

	switch cv.Kind() {
	case numeric.CVInteger:
		sv = cv.Integer().Resize(info.Width)

	case numeric.CVReal, numeric.CVShortReal:
		f := 0.0
		if cv.Kind() == numeric.CVReal {
			f = cv.Real()
		} else {
			f = float64(cv.ShortReal())
		}
		// reals round to the nearest integer, ties away from zero
		rounded := big.NewFloat(math.Round(f))
		iv, _ := rounded.Int(nil)
		out, err := numeric.FromBig(info.Width, info.Signed, iv)
		if err != nil {
			return numeric.BadValue
		}
		sv = out

	case numeric.CVString:
		sv = packString(cv.Str(), info.Width)

	default:
		return numeric.BadValue
	}

	sv = sv.WithSign(info.Signed)
	if info.FourState {
		sv = sv.AsFourState()
	} else {
		sv = sv.AsTwoState()
	}
	return numeric.IntegerValue(sv)
}

// convertToFloat converts an integer or floating value to a float type
func convertToFloat(cv numeric.ConstantValue, ft *typing.FloatType) numeric.ConstantValue {
	var f float64
	switch cv.Kind() {
	case numeric.CVInteger:
		bf := new(big.Float).SetInt(cv.Integer().ToBig())
		f, _ = bf.Float64()
	case numeric.CVReal:
		f = cv.Real()
	case numeric.CVShortReal:
		f = float64(cv.ShortReal())
	default:
		return numeric.BadValue
	}

	if ft.ShortReal {
		return numeric.ShortRealValue(float32(f))
	}
	return numeric.RealValue(f)
}

// convertToString unpacks an integer into the string whose bytes it packs,
// dropping leading zero bytes per the LRM
func convertToString(cv numeric.ConstantValue) numeric.ConstantValue {
	switch cv.Kind() {
	case numeric.CVString:
		return cv
	case numeric.CVInteger:
		sv := cv.Integer().AsTwoState()
		width := sv.Width()
		nbytes := (width + 7) / 8

		out := make([]byte, 0, nbytes)
		for i := int32(nbytes) - 1; i >= 0; i-- {
			b, _ := sv.Slice(i*8, 8).AsUint64()
			if b == 0 && len(out) == 0 {
				continue
			}
			out = append(out, byte(b))
		}
		return numeric.StringValue(string(out))
	default:
		return numeric.BadValue
	}
}

// packString packs a string's bytes into an integer, last character in the
// low-order byte
func packString(s string, width uint32) numeric.SVInt {
	v := new(big.Int)
	for i := 0; i < len(s); i++ {
		v.Lsh(v, 8)
		v.Or(v, big.NewInt(int64(s[i])))
	}

	out, err := numeric.FromBig(width, false, v)
	if err != nil {
		out, _ = numeric.New(1, false, 0)
	}
	return out
}
