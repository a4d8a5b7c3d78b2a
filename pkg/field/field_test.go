package field

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		prime   uint64
		wantErr error
	}{
		{name: "Smallest prime", prime: 2},
		{name: "Small prime", prime: 7},
		{name: "PDF417 prime", prime: 929},
		{name: "Mersenne prime 2^61-1", prime: 1<<61 - 1},
		{name: "Zero", prime: 0, wantErr: ErrInvalidModulus},
		{name: "One", prime: 1, wantErr: ErrInvalidModulus},
		{name: "Composite", prime: 15, wantErr: ErrNotPrime},
		{name: "Too large", prime: math.MaxUint64, wantErr: ErrInvalidModulus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.prime)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.prime, f.Prime())
		})
	}
}

func TestArithmeticGF7(t *testing.T) {
	f := MustNew(7)

	assert.Equal(t, Element(6), f.Add(2, 4))
	assert.Equal(t, Element(3), f.Add(3, 0))
	assert.Equal(t, Element(2), f.Add(3, 6))
	assert.Equal(t, Element(2), f.Add(f.FromInt(-3), 5))

	assert.Equal(t, Element(2), f.Sub(6, 4))
	assert.Equal(t, Element(3), f.Sub(3, 0))
	assert.Equal(t, Element(4), f.Sub(3, 6))
	assert.Equal(t, Element(6), f.Sub(1, f.FromInt(-5)))

	assert.Equal(t, Element(6), f.Mul(2, 3))
	assert.Equal(t, Element(0), f.Mul(3, 0))
	assert.Equal(t, Element(3), f.Mul(3, 1))
	assert.Equal(t, Element(1), f.Mul(3, 5))

	assert.Equal(t, Element(6), f.Reduce(6))
	assert.Equal(t, Element(1), f.Reduce(15))
	assert.Equal(t, Element(3), f.FromInt(-4))
	assert.Equal(t, Element(0), f.FromInt(-14))
	assert.Equal(t, Element(4), f.Neg(3))
	assert.Equal(t, Element(0), f.Neg(0))
}

func TestFromIntExtremes(t *testing.T) {
	f := MustNew(7)
	// -2^63 = -(7*1317624576693539401 + 1) so it is ≡ -1 ≡ 6.
	assert.Equal(t, Element(6), f.FromInt(math.MinInt64))
	assert.Equal(t, Element(math.MaxInt64%7), f.FromInt(math.MaxInt64))
}

func TestInverse(t *testing.T) {
	f := MustNew(7)

	inv, err := f.Inverse(3)
	require.NoError(t, err)
	assert.Equal(t, Element(5), inv)

	inv, err = f.Inverse(f.FromInt(-2))
	require.NoError(t, err)
	assert.Equal(t, Element(3), inv)

	_, err = f.Inverse(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFieldOperation)
	var noInv *NoInverseError
	assert.True(t, errors.As(err, &noInv))

	_, err = f.Inverse(14)
	assert.ErrorIs(t, err, ErrInvalidFieldOperation)
}

func TestDiv(t *testing.T) {
	f := MustNew(7)

	tests := []struct {
		x, y, want Element
	}{
		{4, 2, 2},
		{3, 1, 3},
		{3, 5, 2},
		{0, 4, 0},
	}
	for _, tt := range tests {
		got, err := f.Div(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d / %d", tt.x, tt.y)
	}

	_, err := f.Div(3, 0)
	assert.ErrorIs(t, err, ErrInvalidFieldOperation)
}

func TestClosure(t *testing.T) {
	for _, p := range []uint64{2, 3, 7, 13, 101} {
		f := MustNew(p)
		for x := Element(0); x < p; x++ {
			for y := Element(0); y < p; y++ {
				assert.Less(t, f.Add(x, y), p)
				assert.Less(t, f.Sub(x, y), p)
				assert.Less(t, f.Mul(x, y), p)
			}
			if x == 0 {
				continue
			}
			inv, err := f.Inverse(x)
			require.NoError(t, err)
			assert.Equal(t, Element(1), f.Mul(x, inv), "p=%d x=%d", p, x)
		}
	}
}

func TestLargeModulusArithmetic(t *testing.T) {
	const p = 1<<61 - 1
	f := MustNew(p)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		x := rng.Uint64N(p)
		y := rng.Uint64N(p-1) + 1

		assert.Less(t, f.Add(x, y), uint64(p))
		assert.Equal(t, x, f.Sub(f.Add(x, y), y))

		inv, err := f.Inverse(y)
		require.NoError(t, err)
		assert.Equal(t, Element(1), f.Mul(y, inv))

		q, err := f.Div(x, y)
		require.NoError(t, err)
		assert.Equal(t, x, f.Mul(q, y))
	}
}

func TestPowMod(t *testing.T) {
	f := MustNew(7)
	assert.Equal(t, Element(1), f.PowMod(3, 0))
	assert.Equal(t, Element(3), f.PowMod(3, 1))
	assert.Equal(t, Element(2), f.PowMod(3, 2))
	assert.Equal(t, Element(1), f.PowMod(3, 6))
	assert.Equal(t, Element(0), f.PowMod(0, 5))
	assert.Equal(t, Element(1), f.PowMod(0, 0))

	g := MustNew(929)
	for a := Element(1); a < 929; a += 37 {
		assert.Equal(t, Element(1), g.PowMod(a, 928), "Fermat for a=%d", a)
	}
}

func TestPrimitiveElement(t *testing.T) {
	tests := []struct {
		prime uint64
		want  Element
	}{
		{2, 1},
		{3, 2},
		{5, 2},
		{7, 3},
		{11, 2},
		{13, 2},
		{17, 3},
		{23, 5},
		{41, 6},
		{929, 3},
	}

	for _, tt := range tests {
		f := MustNew(tt.prime)
		alpha, err := f.PrimitiveElement()
		require.NoError(t, err)
		assert.Equal(t, tt.want, alpha, "p=%d", tt.prime)
		assert.True(t, f.IsPrimitive(alpha))
	}
}

func TestPrimitiveElementMatchesPowerTable(t *testing.T) {
	for _, p := range []uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 97, 101} {
		f := MustNew(p)
		alpha, err := f.PrimitiveElement()
		require.NoError(t, err)
		assert.Equal(t, bruteForcePrimitive(f), alpha, "p=%d", p)
	}
}

// bruteForcePrimitive enumerates α^1..α^(p-1) for each candidate and rejects on the
// first repeated power.
func bruteForcePrimitive(f PrimeField) Element {
	p := f.Prime()
	for candidate := Element(2); candidate < p; candidate++ {
		seen := make([]bool, p)
		power := Element(1)
		ok := true
		for i := uint64(1); i < p; i++ {
			power = f.Mul(power, candidate)
			if seen[power] {
				ok = false
				break
			}
			seen[power] = true
		}
		if ok {
			return candidate
		}
	}
	return 0
}

func TestCache(t *testing.T) {
	c := NewCache()
	f := MustNew(929)

	alpha, err := c.PrimitiveElement(f)
	require.NoError(t, err)
	assert.Equal(t, Element(3), alpha)
	assert.Equal(t, 1, c.Len())

	alpha, err = c.PrimitiveElement(f)
	require.NoError(t, err)
	assert.Equal(t, Element(3), alpha)
	assert.Equal(t, 1, c.Len())

	var nilCache *Cache
	alpha, err = nilCache.PrimitiveElement(MustNew(7))
	require.NoError(t, err)
	assert.Equal(t, Element(3), alpha)
}

func TestMustMatch(t *testing.T) {
	assert.NotPanics(t, func() { MustMatch(MustNew(7), MustNew(7)) })
	assert.Panics(t, func() { MustMatch(MustNew(7), MustNew(11)) })
}
