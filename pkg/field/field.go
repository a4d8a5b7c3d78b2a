// Package field implements arithmetic over prime fields F_p.
//
// Every scalar operation used by the polynomial ring and the Reed-Solomon codec is
// routed through PrimeField so that no caller performs raw modular arithmetic. Results
// are always normalized into [0, p).
package field

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Element is a value of a prime field, normalized into [0, p).
type Element = uint64

// MaxModulus is the exclusive upper bound on supported moduli. Keeping p below 2^63
// means the sum of two reduced elements never overflows a uint64.
const MaxModulus = uint64(1) << 63

// PrimeField is the field of integers modulo a prime p. It is a small immutable value
// and is meant to be passed by value; two fields are equal when their moduli are equal.
type PrimeField struct {
	p uint64
}

// New returns the prime field with modulus p.
func New(p uint64) (PrimeField, error) {
	if p < 2 || p >= MaxModulus {
		return PrimeField{}, fmt.Errorf("%w: %d is outside [2, 2^63)", ErrInvalidModulus, p)
	}
	if !new(big.Int).SetUint64(p).ProbablyPrime(20) {
		return PrimeField{}, fmt.Errorf("%w: %d", ErrNotPrime, p)
	}
	return PrimeField{p: p}, nil
}

// MustNew is like New but panics if p is not a supported prime.
func MustNew(p uint64) PrimeField {
	f, err := New(p)
	if err != nil {
		panic(err)
	}
	return f
}

// Prime returns the modulus.
func (f PrimeField) Prime() uint64 {
	return f.p
}

// Equal reports whether f and other are the same field.
func (f PrimeField) Equal(other PrimeField) bool {
	return f.p == other.p
}

// IsZero reports whether f is the zero value, which is not a usable field.
func (f PrimeField) IsZero() bool {
	return f.p == 0
}

func (f PrimeField) String() string {
	return fmt.Sprintf("GF(%d)", f.p)
}

// Reduce maps an arbitrary uint64 into [0, p).
func (f PrimeField) Reduce(x uint64) Element {
	if x < f.p {
		return x
	}
	return x % f.p
}

// FromInt maps a signed integer into [0, p) using the mathematical modulus, so the
// result is never negative.
func (f PrimeField) FromInt(x int64) Element {
	if x >= 0 {
		return f.Reduce(uint64(x))
	}
	// -x may overflow for MinInt64; go through the unsigned magnitude.
	r := f.Reduce(uint64(-(x + 1)) + 1)
	if r == 0 {
		return 0
	}
	return f.p - r
}

// Add returns x + y mod p.
func (f PrimeField) Add(x, y Element) Element {
	s := f.Reduce(x) + f.Reduce(y)
	if s >= f.p {
		s -= f.p
	}
	return s
}

// Sub returns x - y mod p.
func (f PrimeField) Sub(x, y Element) Element {
	x, y = f.Reduce(x), f.Reduce(y)
	if x >= y {
		return x - y
	}
	return f.p - (y - x)
}

// Neg returns -x mod p.
func (f PrimeField) Neg(x Element) Element {
	return f.Sub(0, x)
}

// Mul returns x * y mod p.
func (f PrimeField) Mul(x, y Element) Element {
	hi, lo := bits.Mul64(f.Reduce(x), f.Reduce(y))
	return bits.Rem64(hi, lo, f.p)
}

// Inverse returns b such that a*b ≡ 1 (mod p), using the extended Euclidean algorithm.
func (f PrimeField) Inverse(a Element) (Element, error) {
	a = f.Reduce(a)
	if a == 0 {
		return 0, &NoInverseError{Value: a, Prime: f.p}
	}

	// Invariant: oldS*a ≡ oldR and s*a ≡ r (mod p). Coefficients stay within (-p, p).
	oldR, r := int64(a), int64(f.p)
	oldS, s := int64(1), int64(0)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, &NoInverseError{Value: a, Prime: f.p}
	}
	return f.FromInt(oldS), nil
}

// Div returns x / y mod p.
func (f PrimeField) Div(x, y Element) (Element, error) {
	inv, err := f.Inverse(y)
	if err != nil {
		return 0, err
	}
	return f.Mul(x, inv), nil
}

// PowMod returns base^exponent mod p by repeated squaring.
func (f PrimeField) PowMod(base Element, exponent uint64) Element {
	result := f.Reduce(1)
	base = f.Reduce(base)
	for exponent > 0 {
		if exponent&1 == 1 {
			result = f.Mul(result, base)
		}
		base = f.Mul(base, base)
		exponent >>= 1
	}
	return result
}

// PrimitiveElement returns the smallest α in [2, p-1] whose powers α^1..α^(p-1) cover
// every nonzero element. For p = 2 the multiplicative group is {1} and 1 is returned.
//
// A candidate is primitive iff α^((p-1)/q) ≠ 1 for every prime q dividing p-1, which
// selects the same lowest candidate as enumerating the power table.
func (f PrimeField) PrimitiveElement() (Element, error) {
	if f.p == 2 {
		return 1, nil
	}
	order := f.p - 1
	factors := primeFactors(order)

	for candidate := Element(2); candidate < f.p; candidate++ {
		primitive := true
		for _, q := range factors {
			if f.PowMod(candidate, order/q) == 1 {
				primitive = false
				break
			}
		}
		if primitive {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("%w: no primitive element in %s", ErrInvalidFieldOperation, f)
}

// IsPrimitive reports whether alpha generates the multiplicative group.
func (f PrimeField) IsPrimitive(alpha Element) bool {
	alpha = f.Reduce(alpha)
	if alpha == 0 {
		return false
	}
	if f.p == 2 {
		return alpha == 1
	}
	order := f.p - 1
	for _, q := range primeFactors(order) {
		if f.PowMod(alpha, order/q) == 1 {
			return false
		}
	}
	return true
}

// primeFactors returns the distinct prime factors of n in increasing order.
func primeFactors(n uint64) []uint64 {
	var factors []uint64
	for d := uint64(2); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		factors = append(factors, d)
		for n%d == 0 {
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}
