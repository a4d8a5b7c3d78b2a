package rs

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBatch(t *testing.T) {
	c := newGF7Codec(t, WithParallelSearch(2))

	messages := [][]field.Element{{3, 2, 1}, {5, 4, 3}, {0, 0, 0}}
	results, err := c.EncodeBatch(context.Background(), messages)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []field.Element{3, 2, 1, 0, 6, 5}, results[0].Codeword.Symbols)
	assert.Equal(t, []field.Element{5, 4, 3, 2, 1, 0}, results[1].Codeword.Symbols)
	assert.Equal(t, []field.Element{0, 0, 0, 0, 0, 0}, results[2].Codeword.Symbols)

	_, err = c.EncodeBatch(context.Background(), [][]field.Element{{1, 2, 3}, {1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Contains(t, err.Error(), "message 1")
}

func TestDecodeBatch(t *testing.T) {
	c := newGF7Codec(t)

	words := []Codeword{
		{Field: gf7, Symbols: []field.Element{3, 2, 1, 0, 2, 5}},
		{Field: gf7, Symbols: []field.Element{3, 2, 1, 1, 0, 6}},
		{Field: gf7, Symbols: []field.Element{5, 4, 3, 2, 1, 0}},
		{Field: gf7, Symbols: []field.Element{1}},
	}
	results, err := c.DecodeBatch(context.Background(), words)
	require.NoError(t, err)
	require.Len(t, results, 4)

	require.NoError(t, results[0].Err)
	assert.Equal(t, []field.Element{3, 2, 1}, results[0].Result.Message)

	assert.ErrorIs(t, results[1].Err, ErrDecodeFailure)
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.Equal(t, []field.Element{5, 4, 3}, results[2].Result.Message)

	assert.ErrorIs(t, results[3].Err, ErrInvalidMessage)
}

func TestDecodeBatchMatchesSequential(t *testing.T) {
	c, err := NewCodec(Config{Prime: 929, N: 14, K: 6})
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(5, 8))

	words := make([]Codeword, 40)
	for i := range words {
		enc, err := c.Encode(randomMessage(rng, c.Field(), 6))
		require.NoError(t, err)
		words[i], _ = corrupt(rng, enc.Codeword, rng.IntN(c.MaxErrors()+2))
	}

	results, err := c.DecodeBatch(context.Background(), words)
	require.NoError(t, err)

	for i, w := range words {
		want, wantErr := c.Decode(w)
		if wantErr != nil {
			assert.Error(t, results[i].Err)
			continue
		}
		require.NoError(t, results[i].Err)
		assert.Equal(t, want.Message, results[i].Result.Message)
	}
}

func TestDecodeBatchCancelled(t *testing.T) {
	c := newGF7Codec(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.DecodeBatch(ctx, []Codeword{{Field: gf7, Symbols: []field.Element{3, 2, 1, 0, 6, 5}}})
	assert.ErrorIs(t, err, context.Canceled)
}
