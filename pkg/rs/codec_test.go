package rs

import (
	"errors"
	"testing"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gf7 = field.MustNew(7)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "Valid", config: Config{Prime: 7, N: 6, K: 3}, wantErr: false},
		{name: "N equals prime", config: Config{Prime: 7, N: 7, K: 3}, wantErr: false},
		{name: "Zero parity", config: Config{Prime: 7, N: 3, K: 3}, wantErr: true},
		{name: "Empty message", config: Config{Prime: 7, N: 3, K: 0}, wantErr: true},
		{name: "N exceeds prime", config: Config{Prime: 7, N: 8, K: 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCodecRejectsBadField(t *testing.T) {
	_, err := NewCodec(Config{Prime: 8, N: 6, K: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, field.ErrNotPrime)

	_, err = NewCodec(Config{Prime: 1, N: 1, K: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewCodecParameters(t *testing.T) {
	cache := field.NewCache()
	c, err := NewCodec(Config{Prime: 7, N: 6, K: 3}, WithCache(cache))
	require.NoError(t, err)

	assert.Equal(t, 6, c.N())
	assert.Equal(t, 3, c.K())
	assert.Equal(t, 1, c.MaxErrors())
	assert.Equal(t, field.Element(3), c.PrimitiveElement())
	assert.True(t, c.Field().Equal(gf7))
	assert.Equal(t, 3, c.Generator().Degree())
	assert.Equal(t, 1, cache.Len())

	_, err = NewCodec(Config{Prime: 7, N: 5, K: 1}, WithCache(cache))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestGeneratorPolynomial(t *testing.T) {
	g := GeneratorPolynomial(gf7, 12, 3, 3)
	assert.Equal(t, []field.Element{1, 6, 4, 6, 0, 0, 6, 1, 3, 1}, g.Coefficients())

	for i := uint64(1); i <= 9; i++ {
		assert.Equal(t, field.Element(0), g.Evaluate(gf7.PowMod(3, i)))
	}

	encoded := poly.New(gf7, 3, 2, 1).Mul(g)
	assert.Equal(t, []field.Element{3, 6, 4, 4, 2, 6, 4, 1, 3, 3, 5, 1}, encoded.Coefficients())

	assert.True(t, GeneratorPolynomial(gf7, 3, 3, 3).Equal(poly.One(gf7)))
}

func TestEncode(t *testing.T) {
	c, err := NewCodec(Config{Prime: 7, N: 6, K: 3})
	require.NoError(t, err)

	res, err := c.Encode([]field.Element{3, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, []field.Element{3, 2, 1, 0, 6, 5}, res.Codeword.Symbols)
	assert.Equal(t, 6, res.Codeword.Len())
	assert.Equal(t, 3, res.K)
	assert.True(t, res.Generator.Equal(c.Generator()))
	assert.True(t, res.GeneratorEncoded.Equal(poly.New(gf7, 3, 2, 1).Mul(c.Generator())))
	assert.True(t, c.Verify(res.Codeword))
}

func TestEncodeKeepsTrailingZeros(t *testing.T) {
	c, err := NewCodec(Config{Prime: 7, N: 6, K: 3})
	require.NoError(t, err)

	// P(x) = 5 − x vanishes at the last position.
	res, err := c.Encode([]field.Element{5, 4, 3})
	require.NoError(t, err)
	assert.Equal(t, []field.Element{5, 4, 3, 2, 1, 0}, res.Codeword.Symbols)

	res, err = c.Encode([]field.Element{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []field.Element{0, 0, 0, 0, 0, 0}, res.Codeword.Symbols)
}

func TestEncodeInvalidMessage(t *testing.T) {
	c, err := NewCodec(Config{Prime: 7, N: 6, K: 3})
	require.NoError(t, err)

	_, err = c.Encode([]field.Element{1, 2})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = c.Encode([]field.Element{1, 2, 7})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestVerify(t *testing.T) {
	c, err := NewCodec(Config{Prime: 7, N: 6, K: 3})
	require.NoError(t, err)

	assert.True(t, c.Verify(Codeword{Field: gf7, Symbols: []field.Element{3, 2, 1, 0, 6, 5}}))
	assert.False(t, c.Verify(Codeword{Field: gf7, Symbols: []field.Element{3, 2, 1, 0, 6, 4}}))
	assert.False(t, c.Verify(Codeword{Field: gf7, Symbols: []field.Element{3, 2, 1}}))
	assert.False(t, c.Verify(Codeword{Field: field.MustNew(11), Symbols: []field.Element{3, 2, 1, 0, 6, 5}}))
}

func TestPackageLevelEncode(t *testing.T) {
	res, err := Encode(poly.New(gf7, 3, 2, 1), 6)
	require.NoError(t, err)
	assert.Equal(t, []field.Element{3, 2, 1, 0, 6, 5}, res.Codeword.Symbols)
	assert.Equal(t, 3, res.K)

	// A vector with a trailing zero keeps its length.
	res, err = EncodeSymbols(gf7, []field.Element{3, 0}, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, res.K)
	assert.Equal(t, []field.Element{3, 0, 4, 1}, res.Codeword.Symbols)

	_, err = Encode(poly.New(gf7, 3, 2, 1), 8)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCodewordHelpers(t *testing.T) {
	w := Codeword{Field: gf7, Symbols: []field.Element{3, 2, 1, 0, 0}}
	clone := w.Clone()
	clone.Symbols[0] = 6
	assert.Equal(t, field.Element(3), w.Symbols[0])

	assert.Equal(t, []field.Element{3, 2, 1}, w.Polynomial().Coefficients())
}

func TestDecodeFailureError(t *testing.T) {
	err := error(&DecodeFailure{N: 6, K: 3, MaxErrors: 1})
	assert.True(t, errors.Is(err, ErrDecodeFailure))
	assert.Contains(t, err.Error(), "more than 1 symbol errors")
}
