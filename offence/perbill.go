package offence

import (
	"fmt"
	"github.com/pkg/errors"
	"math/bits"
)

const Billion = 1000000000

//Perbill is a fraction in [0, 1] stored as parts per billion.
//Integer arithmetic keeps slash fractions bit-identical on every node.
type Perbill uint32

const (
	Zero Perbill = 0
	One  Perbill = Billion
)

func PerbillFromPercent(p uint32) Perbill {
	if p >= 100 {
		return One
	}
	return Perbill(p * (Billion / 100))
}

//PerbillFromRational returns n/d rounded down, saturating at One
func PerbillFromRational(n, d uint64) Perbill {
	if d == 0 {
		panic(errors.New("perbill: zero denominator"))
	}
	if n >= d {
		return One
	}
	hi, lo := bits.Mul64(n, Billion)
	q, _ := bits.Div64(hi, lo, d)
	return Perbill(q)
}

func (p Perbill) IsValid() bool {
	return p <= One
}

func (p Perbill) Mul(q Perbill) Perbill {
	return Perbill(uint64(p) * uint64(q) / Billion)
}

func (p Perbill) Square() Perbill {
	return p.Mul(p)
}

func (p Perbill) SaturatingAdd(q Perbill) Perbill {
	s := uint64(p) + uint64(q)
	if s > Billion {
		return One
	}
	return Perbill(s)
}

//Scale multiplies p by factor/Billion, saturating at One
func (p Perbill) Scale(factor uint64) Perbill {
	hi, lo := bits.Mul64(uint64(p), factor)
	if hi >= Billion {
		return One
	}
	q, _ := bits.Div64(hi, lo, Billion)
	if q >= Billion {
		return One
	}
	return Perbill(q)
}

func (p Perbill) String() string {
	return fmt.Sprintf("%d.%07d%%", p/10000000, p%10000000)
}
