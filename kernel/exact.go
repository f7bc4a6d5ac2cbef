package kernel

// Extended-precision fallback for Orient and InCircle, invoked only when the
// double-precision fast path in predicates.go could not certify its sign.
// This implements double-double (two float64 words, roughly 106 bits of
// significand) arithmetic via Dekker/Knuth TwoSum and TwoProduct, which is
// the "bounded extended-precision fallback" spec.md §4.1 and §9 call for,
// as opposed to unbounded arbitrary-precision rationals (explicitly a
// Non-goal in spec.md §1).

// splitter is 2^27 + 1, used by twoProduct's Veltkamp split of a float64
// mantissa into two non-overlapping halves.
const splitter = 134217729.0

// twoSum returns (hi, lo) such that hi+lo == a+b exactly (as real numbers)
// and hi == float64(a+b).
func twoSum(a, b float64) (hi, lo float64) {
	hi = a + b
	bv := hi - a
	av := hi - bv
	br := b - bv
	ar := a - av
	lo = ar + br

	return hi, lo
}

// twoDiff returns (hi, lo) such that hi+lo == a-b exactly and hi == float64(a-b).
func twoDiff(a, b float64) (hi, lo float64) {
	hi = a - b
	bv := a - hi
	av := hi + bv
	br := bv - b
	ar := a - av
	lo = ar + br

	return hi, lo
}

// split performs a Veltkamp split of a into high and low halves such that
// a == aHi+aLo and aHi has at most 26 significant bits.
func split(a float64) (aHi, aLo float64) {
	c := splitter * a
	aHi = c - (c - a)
	aLo = a - aHi

	return aHi, aLo
}

// twoProduct returns (hi, lo) such that hi+lo == a*b exactly and hi == float64(a*b).
func twoProduct(a, b float64) (hi, lo float64) {
	hi = a * b
	aHi, aLo := split(a)
	bHi, bLo := split(b)
	err1 := hi - aHi*bHi
	err2 := err1 - aLo*bHi
	err3 := err2 - aHi*bLo
	lo = aLo*bLo - err3

	return hi, lo
}

// ddNum is a double-double number: the represented value is hi+lo with
// |lo| <= ulp(hi)/2, i.e. a non-overlapping expansion of two float64s.
type ddNum struct{ hi, lo float64 }

func ddFromFloat(v float64) ddNum { return ddNum{hi: v} }

func ddAdd(a, b ddNum) ddNum {
	hi, lo := twoSum(a.hi, b.hi)
	lo += a.lo + b.lo

	return ddRenorm(hi, lo)
}

func ddSub(a, b ddNum) ddNum {
	return ddAdd(a, ddNum{hi: -b.hi, lo: -b.lo})
}

func ddMul(a, b ddNum) ddNum {
	hi, lo := twoProduct(a.hi, b.hi)
	lo += a.hi*b.lo + a.lo*b.hi

	return ddRenorm(hi, lo)
}

func ddRenorm(hi, lo float64) ddNum {
	nhi, nlo := twoSum(hi, lo)

	return ddNum{hi: nhi, lo: nlo}
}

func (d ddNum) sign() int {
	if d.hi != 0 {
		return sign(d.hi)
	}

	return sign(d.lo)
}

func ddSub2(a, b float64) ddNum {
	hi, lo := twoDiff(a, b)

	return ddNum{hi: hi, lo: lo}
}

// orient2dExact recomputes Orient's determinant in double-double arithmetic
// and returns its exact sign.
func orient2dExact(a, b, c Point) int {
	acx := ddSub2(a.X, c.X)
	bcx := ddSub2(b.X, c.X)
	acy := ddSub2(a.Y, c.Y)
	bcy := ddSub2(b.Y, c.Y)

	left := ddMul(acx, bcy)
	right := ddMul(acy, bcx)
	det := ddSub(left, right)

	return det.sign()
}

// inCircleExact recomputes InCircle's determinant in double-double
// arithmetic and returns its exact sign.
func inCircleExact(a, b, c, d Point) int {
	adx := ddSub2(a.X, d.X)
	ady := ddSub2(a.Y, d.Y)
	bdx := ddSub2(b.X, d.X)
	bdy := ddSub2(b.Y, d.Y)
	cdx := ddSub2(c.X, d.X)
	cdy := ddSub2(c.Y, d.Y)

	alift := ddAdd(ddMul(adx, adx), ddMul(ady, ady))
	blift := ddAdd(ddMul(bdx, bdx), ddMul(bdy, bdy))
	clift := ddAdd(ddMul(cdx, cdx), ddMul(cdy, cdy))

	t1 := ddMul(adx, ddSub(ddMul(bdy, clift), ddMul(cdy, blift)))
	t2 := ddMul(ady, ddSub(ddMul(bdx, clift), ddMul(cdx, blift)))
	t3 := ddMul(alift, ddSub(ddMul(bdx, cdy), ddMul(cdx, bdy)))

	det := ddAdd(ddSub(t1, t2), t3)

	return det.sign()
}
