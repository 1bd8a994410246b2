package offence

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestPerbillFromRational(t *testing.T) {
	assert.Equal(t, Perbill(120000000), PerbillFromRational(12, 100))
	assert.Equal(t, Perbill(333333333), PerbillFromRational(1, 3))
	assert.Equal(t, One, PerbillFromRational(5, 5))
	assert.Equal(t, One, PerbillFromRational(7, 5))
	assert.Equal(t, Zero, PerbillFromRational(0, 5))
	assert.Equal(t, Perbill(500000000), PerbillFromRational(1<<62, 1<<63))
}

func TestPerbillFromRationalZeroDenominator(t *testing.T) {
	assert.Panics(t, func() {
		PerbillFromRational(1, 0)
	})
}

func TestPerbillFromPercent(t *testing.T) {
	assert.Equal(t, Perbill(70000000), PerbillFromPercent(7))
	assert.Equal(t, One, PerbillFromPercent(100))
	assert.Equal(t, One, PerbillFromPercent(250))
}

func TestPerbillArithmetic(t *testing.T) {
	half := PerbillFromPercent(50)
	assert.Equal(t, PerbillFromPercent(25), half.Square())
	assert.Equal(t, PerbillFromPercent(5), half.Mul(PerbillFromPercent(10)))
	assert.Equal(t, One, half.SaturatingAdd(PerbillFromPercent(60)))
	assert.Equal(t, PerbillFromPercent(90), half.SaturatingAdd(PerbillFromPercent(40)))

	assert.Equal(t, PerbillFromPercent(75), half.Scale(Billion+Billion/2))
	assert.Equal(t, One, half.Scale(3*Billion))
	assert.Equal(t, One, One.Scale(math.MaxUint64))
	assert.Equal(t, half, half.Scale(Billion))
}

func TestPerbillValidity(t *testing.T) {
	assert.True(t, One.IsValid())
	assert.False(t, (One + 1).IsValid())
	assert.Equal(t, "12.0000000%", Perbill(120000000).String())
	assert.Equal(t, "100.0000000%", One.String())
}

func TestCheckFraction(t *testing.T) {
	kind := NewKind("test")
	assert.Equal(t, One, CheckFraction(kind, One))
	assert.Panics(t, func() {
		CheckFraction(kind, One+1)
	})
}
