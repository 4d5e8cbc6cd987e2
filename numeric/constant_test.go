package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantValueKinds(t *testing.T) {
	sv, err := New(8, false, 42)
	require.NoError(t, err)

	assert.Equal(t, CVInteger, IntegerValue(sv).Kind())
	assert.Equal(t, CVReal, RealValue(3.14).Kind())
	assert.Equal(t, CVShortReal, ShortRealValue(1.5).Kind())
	assert.Equal(t, CVString, StringValue("hi").Kind())
	assert.Equal(t, CVNull, NullValue().Kind())
	assert.Equal(t, CVUnbounded, UnboundedValue().Kind())
	assert.Equal(t, CVArray, ArrayValue(nil).Kind())

	assert.True(t, BadValue.IsBad())
	assert.False(t, IntegerValue(sv).IsBad())
}

func TestConstantValueEqual(t *testing.T) {
	a, _ := New(8, false, 1)
	b, _ := New(8, false, 2)

	assert.True(t, IntegerValue(a).Equal(IntegerValue(a)))
	assert.False(t, IntegerValue(a).Equal(IntegerValue(b)))
	assert.False(t, IntegerValue(a).Equal(RealValue(1)))

	arr1 := ArrayValue([]ConstantValue{IntegerValue(a), IntegerValue(b)})
	arr2 := ArrayValue([]ConstantValue{IntegerValue(a), IntegerValue(b)})
	arr3 := ArrayValue([]ConstantValue{IntegerValue(b), IntegerValue(a)})
	assert.True(t, arr1.Equal(arr2))
	assert.False(t, arr1.Equal(arr3))
}

func TestConstantValueCompare(t *testing.T) {
	one, _ := New(8, false, 1)
	two, _ := New(8, false, 2)

	assert.Equal(t, -1, IntegerValue(one).Compare(IntegerValue(two)))
	assert.Equal(t, 1, IntegerValue(two).Compare(IntegerValue(one)))
	assert.Equal(t, 0, IntegerValue(one).Compare(IntegerValue(one)))

	assert.Equal(t, -1, RealValue(1.5).Compare(RealValue(2.5)))
	assert.Equal(t, -1, StringValue("a").Compare(StringValue("b")))

	// kinds impose an order so mixed membership sets still sort totally
	assert.NotEqual(t, 0, IntegerValue(one).Compare(RealValue(1)))
}

func TestConstantValueTruth(t *testing.T) {
	zero, _ := New(8, false, 0)
	one, _ := New(8, false, 1)
	x, _ := Fill(8, false, BitX)

	assert.False(t, IntegerValue(zero).IsTrue())
	assert.True(t, IntegerValue(one).IsTrue())
	assert.False(t, IntegerValue(x).IsTrue())
	assert.True(t, RealValue(0.5).IsTrue())
	assert.False(t, StringValue("").IsTrue())
	assert.False(t, NullValue().IsTrue())
}

func TestConstantValueRepr(t *testing.T) {
	one, _ := New(8, false, 1)

	assert.Equal(t, "<bad>", BadValue.Repr())
	assert.Equal(t, "null", NullValue().Repr())
	assert.Equal(t, "$", UnboundedValue().Repr())
	assert.Equal(t, `"hi"`, StringValue("hi").Repr())
	assert.Equal(t, "'{8'h1, 8'h1}", ArrayValue([]ConstantValue{IntegerValue(one), IntegerValue(one)}).Repr())
}
