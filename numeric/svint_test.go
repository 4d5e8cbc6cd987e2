package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) SVInt {
	t.Helper()
	sv, err := ParseVector(text)
	require.NoError(t, err, "parsing %q", text)
	return sv
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		text      string
		width     uint32
		signed    bool
		fourState bool
		bits      string // MSB first
	}{
		{"4'b1010", 4, false, false, "1010"},
		{"4'b10x0", 4, false, true, "10x0"},
		{"8'hff", 8, false, false, "11111111"},
		{"8'shff", 8, true, false, "11111111"},
		{"8'hzf", 8, false, true, "zzzz1111"},
		{"12'o777", 12, false, false, "000111111111"},
		{"16'd255", 16, false, false, "0000000011111111"},
		{"8'dx", 8, false, true, "xxxxxxxx"},
		{"8'b1", 8, false, false, "00000001"},
		{"8'bx1", 8, false, true, "xxxxxxx1"},
		{"8'bz1", 8, false, true, "zzzzzzz1"},
		{"4'hff", 4, false, false, "1111"},
		{"42", 32, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sv := mustParse(t, tt.text)
			assert.Equal(t, tt.width, sv.Width())
			assert.Equal(t, tt.signed, sv.IsSigned())
			assert.Equal(t, tt.fourState, sv.IsFourState())

			if tt.bits != "" {
				for i, c := range tt.bits {
					bit := sv.Bit(tt.width - 1 - uint32(i))
					assert.Equal(t, string(c), string(bit.Rune()), "bit %d", tt.width-1-uint32(i))
				}
			}
		})
	}

	t.Run("plain decimal value", func(t *testing.T) {
		sv := mustParse(t, "42")
		v, ok := sv.AsUint64()
		require.True(t, ok)
		assert.Equal(t, uint64(42), v)
	})

	t.Run("zero width rejected", func(t *testing.T) {
		_, err := ParseVector("0'b1")
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseVector("8'b12")
		assert.Error(t, err)
	})
}

func TestStringRoundTrip(t *testing.T) {
	literals := []string{
		"4'b10x0", "4'b1010", "8'hff", "8'shff", "8'bz1", "16'd255",
		"1'b1", "1'bx", "65'h1ffffffffffffffff", "12'o777", "7'b1z0x1z0",
	}

	for _, lit := range literals {
		t.Run(lit, func(t *testing.T) {
			sv := mustParse(t, lit)
			back := mustParse(t, sv.String())

			assert.Equal(t, sv.Width(), back.Width())
			assert.Equal(t, sv.IsSigned(), back.IsSigned())
			for i := uint32(0); i < sv.Width(); i++ {
				assert.Equal(t, sv.Bit(i), back.Bit(i), "bit %d of %s", i, sv.String())
			}
		})
	}
}

func TestExtendTruncate(t *testing.T) {
	t.Run("extend then truncate is identity", func(t *testing.T) {
		for _, lit := range []string{"4'b1010", "4'b10x0", "8'shff", "4'sb1001"} {
			sv := mustParse(t, lit)
			back := sv.Extend(32, sv.IsSigned()).Truncate(sv.Width())
			assert.True(t, sv.Equal(back), "%s", lit)
		}
	})

	t.Run("zero extension", func(t *testing.T) {
		sv := mustParse(t, "4'b1010").Extend(8, false)
		assert.Equal(t, uint32(8), sv.Width())
		v, _ := sv.AsUint64()
		assert.Equal(t, uint64(0b1010), v)
	})

	t.Run("sign extension", func(t *testing.T) {
		sv := mustParse(t, "4'sb1010").Extend(8, true)
		v, _ := sv.AsUint64()
		assert.Equal(t, uint64(0b11111010), v)
	})

	t.Run("X MSB extends with X", func(t *testing.T) {
		sv := mustParse(t, "4'bx010")
		ext := sv.Extend(8, true)
		assert.Equal(t, BitX, ext.Bit(7))
		assert.Equal(t, Bit1, ext.Bit(1))
	})
}

func TestArithmetic(t *testing.T) {
	t.Run("x propagation makes all-x", func(t *testing.T) {
		a := mustParse(t, "4'b10x0")
		b := mustParse(t, "4'b0001")
		sum := a.Add(b)

		assert.Equal(t, uint32(4), sum.Width())
		assert.True(t, sum.IsFourState())
		for i := uint32(0); i < 4; i++ {
			assert.Equal(t, BitX, sum.Bit(i))
		}
	})

	t.Run("matches modular arithmetic at width", func(t *testing.T) {
		cases := []struct{ a, b uint64 }{
			{200, 100}, {255, 1}, {0, 0}, {17, 42}, {255, 255},
		}
		for _, c := range cases {
			a, _ := New(8, false, c.a)
			b, _ := New(8, false, c.b)

			sum, _ := a.Add(b).AsUint64()
			assert.Equal(t, (c.a+c.b)%256, sum)

			prod, _ := a.Mul(b).AsUint64()
			assert.Equal(t, (c.a*c.b)%256, prod)

			diff, _ := a.Sub(b).AsUint64()
			assert.Equal(t, (c.a-c.b)%256&0xff, diff)
		}
	})

	t.Run("identities", func(t *testing.T) {
		for _, lit := range []string{"8'd0", "8'd1", "8'd127", "8'hff", "8'sd5"} {
			x := mustParse(t, lit)
			zero, _ := New(8, true, 0)
			one, _ := New(8, true, 1)

			assert.True(t, x.Add(zero).Eq(x) == Bit1, "%s + 0", lit)
			assert.True(t, x.Mul(one).Eq(x) == Bit1, "%s * 1", lit)
			assert.True(t, x.And(x).Eq(x) == Bit1, "%s & %s", lit, lit)
			assert.True(t, x.Or(x).Eq(x) == Bit1, "%s | %s", lit, lit)
		}
	})

	t.Run("signed division truncates toward zero", func(t *testing.T) {
		a := mustParse(t, "8'sd7").Neg()
		b := mustParse(t, "8'sd2")
		q, ok := a.Div(b)
		require.True(t, ok)
		assert.Equal(t, int64(-3), q.ToBig().Int64())
	})

	t.Run("division takes the dividend's width", func(t *testing.T) {
		a := mustParse(t, "8'd10")
		b := mustParse(t, "3'd3")

		q, ok := a.Div(b)
		require.True(t, ok)
		assert.Equal(t, uint32(8), q.Width())
		v, _ := q.AsUint64()
		assert.Equal(t, uint64(3), v)

		m, ok := a.Mod(b)
		require.True(t, ok)
		assert.Equal(t, uint32(8), m.Width())
		v, _ = m.AsUint64()
		assert.Equal(t, uint64(1), v)

		// a narrow dividend keeps its own width against a wide divisor
		q, ok = b.Div(a)
		require.True(t, ok)
		assert.Equal(t, uint32(3), q.Width())
		v, _ = q.AsUint64()
		assert.Equal(t, uint64(0), v)
	})

	t.Run("division by zero is all-x", func(t *testing.T) {
		a := mustParse(t, "8'd10")
		b := mustParse(t, "8'd0")
		q, ok := a.Div(b)

		assert.False(t, ok)
		assert.Equal(t, uint32(8), q.Width())
		for i := uint32(0); i < 8; i++ {
			assert.Equal(t, BitX, q.Bit(i))
		}

		m, ok := a.Mod(b)
		assert.False(t, ok)
		assert.Equal(t, BitX, m.Bit(0))

		// the dividend's width is preserved even with a narrower zero
		q, ok = a.Div(mustParse(t, "4'd0"))
		assert.False(t, ok)
		assert.Equal(t, uint32(8), q.Width())
	})

	t.Run("power table", func(t *testing.T) {
		two, _ := New(32, true, 2)
		ten, _ := New(32, true, 10)
		v, _ := two.Pow(ten).AsUint64()
		assert.Equal(t, uint64(1024), v)

		zero, _ := New(32, true, 0)
		one, _ := New(32, true, 1)
		negOne := one.Neg()

		v, _ = ten.Pow(zero).AsUint64()
		assert.Equal(t, uint64(1), v)

		// 10 ** -1 == 0, (-1) ** -1 == -1, 0 ** -1 == 'x
		q := ten.Pow(negOne)
		u, _ := q.AsUint64()
		assert.Equal(t, uint64(0), u)

		assert.Equal(t, int64(-1), negOne.Pow(negOne).ToBig().Int64())
		assert.True(t, zero.Pow(negOne).HasUnknown())
	})

	t.Run("wide values", func(t *testing.T) {
		a := mustParse(t, "128'hffffffffffffffffffffffffffffffff")
		one, _ := New(128, false, 1)
		sum := a.Add(one)
		assert.Equal(t, 0, sum.ToBig().Cmp(big.NewInt(0)))
	})
}

func TestBitwise(t *testing.T) {
	t.Run("four state and", func(t *testing.T) {
		a := mustParse(t, "4'b01xz")
		b := mustParse(t, "4'b0101")
		// 0&0=0 1&1=1 x&0=0 z&1=x
		r := a.And(b)
		assert.Equal(t, Bit0, r.Bit(3))
		assert.Equal(t, Bit1, r.Bit(2))
		assert.Equal(t, Bit0, r.Bit(1))
		assert.Equal(t, BitX, r.Bit(0))
	})

	t.Run("four state or", func(t *testing.T) {
		a := mustParse(t, "4'b01xz")
		b := mustParse(t, "4'b0101")
		// 0|0=0 1|1=1 x|0=x z|1=1
		r := a.Or(b)
		assert.Equal(t, Bit0, r.Bit(3))
		assert.Equal(t, Bit1, r.Bit(2))
		assert.Equal(t, BitX, r.Bit(1))
		assert.Equal(t, Bit1, r.Bit(0))
	})

	t.Run("de morgan bit-exact including unknowns", func(t *testing.T) {
		vals := []string{"4'b0000", "4'b1111", "4'b10x0", "4'bzx01", "4'b1z1x"}
		for _, la := range vals {
			for _, lb := range vals {
				a, b := mustParse(t, la), mustParse(t, lb)

				left := a.And(b).Not()
				right := a.Not().Or(b.Not())
				for i := uint32(0); i < 4; i++ {
					assert.Equal(t, left.Bit(i), right.Bit(i),
						"~(%s & %s) bit %d", la, lb, i)
				}
			}
		}
	})

	t.Run("xor with unknowns", func(t *testing.T) {
		a := mustParse(t, "4'b1x01")
		b := mustParse(t, "4'b1101")
		r := a.Xor(b)
		assert.Equal(t, Bit0, r.Bit(3))
		assert.Equal(t, BitX, r.Bit(2))
		assert.Equal(t, Bit0, r.Bit(1))
		assert.Equal(t, Bit0, r.Bit(0))
	})
}

func TestShifts(t *testing.T) {
	amount2, _ := New(32, false, 2)

	t.Run("logical left", func(t *testing.T) {
		v, _ := mustParse(t, "8'b00001111").Shl(amount2).AsUint64()
		assert.Equal(t, uint64(0b00111100), v)
	})

	t.Run("logical right zero fills", func(t *testing.T) {
		v, _ := mustParse(t, "8'b11110000").LShr(amount2).AsUint64()
		assert.Equal(t, uint64(0b00111100), v)
	})

	t.Run("arithmetic right sign fills", func(t *testing.T) {
		v, _ := mustParse(t, "8'sb10000000").AShr(amount2).AsUint64()
		assert.Equal(t, uint64(0b11100000), v)
	})

	t.Run("arithmetic right x fills from x msb", func(t *testing.T) {
		r := mustParse(t, "8'sbx0000000").AShr(amount2)
		assert.Equal(t, BitX, r.Bit(7))
		assert.Equal(t, BitX, r.Bit(6))
		assert.Equal(t, BitX, r.Bit(5))
		assert.Equal(t, Bit0, r.Bit(4))
	})

	t.Run("unknown amount is all-x", func(t *testing.T) {
		amt := mustParse(t, "4'bxxxx")
		r := mustParse(t, "8'hff").Shl(amt)
		assert.Equal(t, BitX, r.Bit(0))
	})
}

func TestComparisons(t *testing.T) {
	t.Run("equality returns x on any unknown", func(t *testing.T) {
		a := mustParse(t, "4'b10x0")
		b := mustParse(t, "4'b1000")
		assert.Equal(t, BitX, a.Eq(b))
		assert.Equal(t, BitX, a.Lt(b))
	})

	t.Run("case equality is exact and always known", func(t *testing.T) {
		a := mustParse(t, "4'b10x0")
		assert.Equal(t, Bit1, a.CaseEq(mustParse(t, "4'b10x0")))
		assert.Equal(t, Bit0, a.CaseEq(mustParse(t, "4'b10z0")))
		assert.Equal(t, Bit0, a.CaseEq(mustParse(t, "4'b1000")))
	})

	t.Run("wildcard equality ignores x and z in the pattern", func(t *testing.T) {
		a := mustParse(t, "4'b1010")
		assert.Equal(t, Bit1, a.WildcardEq(mustParse(t, "4'b1x1z")))
		assert.Equal(t, Bit0, a.WildcardEq(mustParse(t, "4'b0x1z")))
	})

	t.Run("signed comparison", func(t *testing.T) {
		a := mustParse(t, "8'shff") // -1
		b := mustParse(t, "8'sh01")
		assert.Equal(t, Bit1, a.Lt(b))

		// unsigned view: 255 > 1
		ua := a.WithSign(false)
		ub := b.WithSign(false)
		assert.Equal(t, Bit0, ua.Lt(ub))
	})
}

func TestReductions(t *testing.T) {
	tests := []struct {
		lit           string
		and, or, xor Bit
	}{
		{"4'b1111", Bit1, Bit1, Bit0},
		{"4'b0000", Bit0, Bit0, Bit0},
		{"4'b1010", Bit0, Bit1, Bit0},
		{"4'b1110", Bit0, Bit1, Bit1},
		{"4'b1x11", BitX, Bit1, BitX},
		{"4'b0x00", Bit0, BitX, BitX},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			sv := mustParse(t, tt.lit)
			assert.Equal(t, tt.and, sv.ReduceAnd())
			assert.Equal(t, tt.or, sv.ReduceOr())
			assert.Equal(t, tt.xor, sv.ReduceXor())
		})
	}
}

func TestConcatReplicate(t *testing.T) {
	t.Run("concat orders msb first", func(t *testing.T) {
		a := mustParse(t, "4'b1010")
		b := mustParse(t, "4'b0011")
		r := a.Concat(b)

		assert.Equal(t, uint32(8), r.Width())
		v, _ := r.AsUint64()
		assert.Equal(t, uint64(0b10100011), v)
	})

	t.Run("concat carries unknowns", func(t *testing.T) {
		a := mustParse(t, "2'b1x")
		b := mustParse(t, "2'b01")
		r := a.Concat(b)
		assert.Equal(t, Bit1, r.Bit(3))
		assert.Equal(t, BitX, r.Bit(2))
		assert.Equal(t, Bit0, r.Bit(1))
		assert.Equal(t, Bit1, r.Bit(0))
	})

	t.Run("replicate", func(t *testing.T) {
		r := mustParse(t, "2'b10").Replicate(3)
		assert.Equal(t, uint32(6), r.Width())
		v, _ := r.AsUint64()
		assert.Equal(t, uint64(0b101010), v)
	})
}

func TestSliceSetSlice(t *testing.T) {
	t.Run("set slice preserves outside bits", func(t *testing.T) {
		v := mustParse(t, "8'b00000000")
		nib := mustParse(t, "4'b1x01")
		r := v.SetSlice(0, nib)

		assert.Equal(t, Bit1, r.Bit(3))
		assert.Equal(t, BitX, r.Bit(2))
		assert.Equal(t, Bit0, r.Bit(1))
		assert.Equal(t, Bit1, r.Bit(0))
		for i := uint32(4); i < 8; i++ {
			assert.Equal(t, Bit0, r.Bit(i))
		}
	})

	t.Run("slice beyond width reads x on four-state", func(t *testing.T) {
		v := mustParse(t, "4'b10x0")
		s := v.Slice(2, 4)
		assert.Equal(t, BitX, s.Bit(3))
		assert.Equal(t, BitX, s.Bit(2))
		assert.Equal(t, Bit1, s.Bit(1))
		assert.Equal(t, Bit0, s.Bit(0))
	})
}

func TestMerge(t *testing.T) {
	a := mustParse(t, "4'b1100")
	b := mustParse(t, "4'b1010")
	m := a.Merge(b)

	assert.Equal(t, Bit1, m.Bit(3))
	assert.Equal(t, BitX, m.Bit(2))
	assert.Equal(t, BitX, m.Bit(1))
	assert.Equal(t, Bit0, m.Bit(0))
}
