package simulate

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T, cfg rs.Config) *rs.Codec {
	t.Helper()
	c, err := rs.NewCodec(cfg)
	require.NoError(t, err)
	return c
}

func TestRunWithinCapacity(t *testing.T) {
	codec := newCodec(t, rs.Config{Prime: 929, N: 12, K: 4})

	calls := 0
	report, err := Run(context.Background(), codec, Options{Trials: 25, Errors: 4, Seed: 7}, func() { calls++ })
	require.NoError(t, err)

	assert.Equal(t, 25, calls)
	assert.Equal(t, 25, report.Recovered)
	assert.Zero(t, report.Failed)
	assert.Zero(t, report.Miscorrected)
	assert.Equal(t, 4, report.MaxErrors)
	assert.Len(t, report.Outcomes, 25)
}

func TestRunBeyondCapacity(t *testing.T) {
	codec := newCodec(t, rs.Config{Prime: 929, N: 12, K: 4})

	report, err := Run(context.Background(), codec, Options{Trials: 20, Errors: 8, Seed: 3}, nil)
	require.NoError(t, err)

	assert.Zero(t, report.Recovered)
	assert.Equal(t, 20, report.Failed+report.Miscorrected)
}

func TestRunDeterministic(t *testing.T) {
	codec := newCodec(t, rs.Config{Prime: 7, N: 6, K: 3})
	opts := Options{Trials: 30, Errors: 2, Seed: 11}

	a, err := Run(context.Background(), codec, opts, nil)
	require.NoError(t, err)
	b, err := Run(context.Background(), codec, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunInvalidOptions(t *testing.T) {
	codec := newCodec(t, rs.Config{Prime: 7, N: 6, K: 3})

	_, err := Run(context.Background(), codec, Options{Trials: 1, Errors: 7}, nil)
	assert.Error(t, err)
	_, err = Run(context.Background(), codec, Options{Trials: -1}, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, codec, Options{Trials: 1}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCorrupt(t *testing.T) {
	f := field.MustNew(7)
	w := rs.Codeword{Field: f, Symbols: []field.Element{3, 2, 1, 0, 6, 5}}
	rng := rand.New(rand.NewPCG(1, 1))

	for count := 0; count <= 6; count++ {
		out := Corrupt(rng, w, count)
		diff := 0
		for i := range out.Symbols {
			if out.Symbols[i] != w.Symbols[i] {
				diff++
			}
		}
		assert.Equal(t, count, diff)
	}
	assert.Equal(t, []field.Element{3, 2, 1, 0, 6, 5}, w.Symbols)
}

func TestWriteNpy(t *testing.T) {
	report := &Report{Outcomes: []Outcome{Recovered, Failed, Miscorrected, Recovered}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteNpy(&buf))

	var got []int32
	require.NoError(t, npyio.Read(&buf, &got))
	assert.Equal(t, []int32{0, 1, 2, 0}, got)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "recovered", Recovered.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "miscorrected", Miscorrected.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
