// Package simulate measures decoder behaviour by corrupting random codewords.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/rs"
	"github.com/sbinet/npyio"
)

// Outcome classifies a single trial.
type Outcome int32

const (
	// Recovered means the original message was returned.
	Recovered Outcome = iota
	// Failed means the decoder reported a DecodeFailure.
	Failed
	// Miscorrected means the decoder returned a different codeword's message.
	Miscorrected
)

func (o Outcome) String() string {
	switch o {
	case Recovered:
		return "recovered"
	case Failed:
		return "failed"
	case Miscorrected:
		return "miscorrected"
	default:
		return fmt.Sprintf("outcome(%d)", int32(o))
	}
}

type Options struct {
	Trials int
	// Errors is the number of symbols corrupted per trial.
	Errors int
	Seed   uint64
}

type Report struct {
	Trials       int       `json:"trials"`
	Errors       int       `json:"errors"`
	MaxErrors    int       `json:"max_errors"`
	Recovered    int       `json:"recovered"`
	Failed       int       `json:"failed"`
	Miscorrected int       `json:"miscorrected"`
	Outcomes     []Outcome `json:"-"`
}

// Run encodes opts.Trials random messages, corrupts opts.Errors distinct symbols of
// each and decodes the result. progress, when non-nil, is called after every trial.
func Run(ctx context.Context, codec *rs.Codec, opts Options, progress func()) (*Report, error) {
	if opts.Trials < 0 {
		return nil, fmt.Errorf("trial count cannot be negative (got %d)", opts.Trials)
	}
	if opts.Errors < 0 || opts.Errors > codec.N() {
		return nil, fmt.Errorf("error count must be between 0 and %d (got %d)", codec.N(), opts.Errors)
	}

	f := codec.Field()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	report := &Report{
		Trials:    opts.Trials,
		Errors:    opts.Errors,
		MaxErrors: codec.MaxErrors(),
		Outcomes:  make([]Outcome, 0, opts.Trials),
	}

	for trial := 0; trial < opts.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg := make([]field.Element, codec.K())
		for i := range msg {
			msg[i] = rng.Uint64N(f.Prime())
		}
		enc, err := codec.Encode(msg)
		if err != nil {
			return nil, err
		}

		received := Corrupt(rng, enc.Codeword, opts.Errors)
		outcome, err := classify(ctx, codec, received, msg)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}

		switch outcome {
		case Recovered:
			report.Recovered++
		case Failed:
			report.Failed++
		case Miscorrected:
			report.Miscorrected++
		}
		report.Outcomes = append(report.Outcomes, outcome)

		if progress != nil {
			progress()
		}
	}
	return report, nil
}

func classify(ctx context.Context, codec *rs.Codec, received rs.Codeword, msg []field.Element) (Outcome, error) {
	res, err := codec.DecodeContext(ctx, received)
	if err != nil {
		if errors.Is(err, rs.ErrDecodeFailure) {
			return Failed, nil
		}
		return 0, err
	}
	for i := range msg {
		if res.Message[i] != msg[i] {
			return Miscorrected, nil
		}
	}
	return Recovered, nil
}

// Corrupt returns a copy of w with count distinct symbols replaced by different values.
func Corrupt(rng *rand.Rand, w rs.Codeword, count int) rs.Codeword {
	out := w.Clone()
	p := w.Field.Prime()
	for _, pos := range rng.Perm(len(out.Symbols))[:count] {
		out.Symbols[pos] = w.Field.Add(out.Symbols[pos], 1+rng.Uint64N(p-1))
	}
	return out
}

// WriteNpy writes the per-trial outcomes as a one-dimensional int32 NumPy array.
func (r *Report) WriteNpy(w io.Writer) error {
	data := make([]int32, len(r.Outcomes))
	for i, o := range r.Outcomes {
		data[i] = int32(o)
	}
	return npyio.Write(w, data)
}
