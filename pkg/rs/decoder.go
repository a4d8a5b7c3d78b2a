package rs

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/poly"
	"golang.org/x/sync/errgroup"
)

// DecodeResult is a successfully decoded codeword.
type DecodeResult struct {
	Message []field.Element
	// Corrected is the nearest codeword to the received word.
	Corrected Codeword
	// ErrorPositions lists the roots of the error locator in 0..n-1, ascending.
	ErrorPositions []int
	// ErrorCount is the error-count hypothesis that validated.
	ErrorCount int
}

// hypothesis is the outcome of assuming exactly e errors. Either it is infeasible, or
// it carries the locator E, the product Q = M·E and the quotient M.
type hypothesis struct {
	e         int
	validated bool
	locator   poly.Polynomial
	product   poly.Polynomial
	message   poly.Polynomial
}

// Decode corrects up to MaxErrors symbol errors in received and returns the message.
func (c *Codec) Decode(received Codeword) (*DecodeResult, error) {
	return c.DecodeContext(context.Background(), received)
}

// DecodeContext is Decode with cancellation between hypotheses.
func (c *Codec) DecodeContext(ctx context.Context, received Codeword) (*DecodeResult, error) {
	return c.decode(ctx, received, c.workers > 1)
}

func (c *Codec) decode(ctx context.Context, received Codeword, parallel bool) (*DecodeResult, error) {
	if err := c.checkCodeword(received); err != nil {
		return nil, err
	}

	var (
		h   *hypothesis
		err error
	)
	if parallel {
		h, err = c.searchParallel(ctx, received.Symbols)
	} else {
		h, err = c.search(ctx, received.Symbols)
	}
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, &DecodeFailure{N: c.n, K: c.k, MaxErrors: c.t}
	}

	return c.correct(received.Symbols, h)
}

// search tries e = t, t-1, …, 0 and returns the first validated hypothesis, or nil.
func (c *Codec) search(ctx context.Context, y []field.Element) (*hypothesis, error) {
	for e := c.t; e >= 0; e-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h, err := c.try(y, e)
		if err != nil {
			return nil, err
		}
		if h.validated {
			return h, nil
		}
	}
	return nil, nil
}

// searchParallel solves all hypotheses concurrently and picks the largest validated e,
// which is the hypothesis the sequential sweep would stop at.
func (c *Codec) searchParallel(ctx context.Context, y []field.Element) (*hypothesis, error) {
	results := make([]*hypothesis, c.t+1)
	var best atomic.Int64
	best.Store(-1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for e := c.t; e >= 0; e-- {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// A larger hypothesis already won.
			if int64(e) < best.Load() {
				return nil
			}
			h, err := c.try(y, e)
			if err != nil {
				return err
			}
			results[e] = h
			if h.validated {
				for {
					cur := best.Load()
					if int64(e) <= cur || best.CompareAndSwap(cur, int64(e)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for e := c.t; e >= 0; e-- {
		if h := results[e]; h != nil && h.validated {
			return h, nil
		}
	}
	return nil, nil
}

// try solves the Berlekamp-Welch key equation under the assumption of e errors.
//
// Unknowns are a₀..a_{e-1}, the low coefficients of the monic locator E of degree e,
// followed by b₀..b_{n-1-e}, the coefficients of Q. Row i encodes
//
//	Σ bⱼ iʲ − yᵢ Σ aⱼ iʲ = yᵢ iᵉ
//
// so that Q(i) = yᵢ E(i) at every position.
func (c *Codec) try(y []field.Element, e int) (*hypothesis, error) {
	f := c.field
	n := c.n

	matrix := make([][]field.Element, n)
	rhs := make([]field.Element, n)
	for i := 0; i < n; i++ {
		row := make([]field.Element, n)
		x := field.Element(i)
		pow := f.Reduce(1)
		for j := 0; j < n-e; j++ {
			if j < e {
				row[j] = f.Neg(f.Mul(y[i], pow))
			}
			row[e+j] = pow
			pow = f.Mul(pow, x)
		}
		rhs[i] = f.Mul(y[i], f.PowMod(x, uint64(e)))
		matrix[i] = row
	}

	sol, err := f.SolveLinearSystem(matrix, rhs)
	if err != nil {
		if errors.Is(err, field.ErrSingularSystem) {
			log.Debugf("hypothesis e=%d: singular system", e)
			return &hypothesis{e: e}, nil
		}
		return nil, fmt.Errorf("hypothesis e=%d: %w", e, err)
	}

	locator := poly.New(f, append(append([]field.Element(nil), sol[:e]...), 1)...)
	product := poly.New(f, sol[e:]...)

	m, r, err := product.DivMod(locator)
	if err != nil {
		return nil, fmt.Errorf("hypothesis e=%d: %w", e, err)
	}
	if !r.IsZero() || m.Degree() >= c.k {
		log.Debugf("hypothesis e=%d: rejected (remainder %s, quotient degree %d)", e, r, m.Degree())
		return &hypothesis{e: e}, nil
	}

	log.Debugf("hypothesis e=%d: validated, locator %s", e, locator)
	return &hypothesis{e: e, validated: true, locator: locator, product: product, message: m}, nil
}

// correct replaces the symbols at the locator's roots and recovers the message from the
// corrected codeword.
func (c *Codec) correct(y []field.Element, h *hypothesis) (*DecodeResult, error) {
	corrected := append([]field.Element(nil), y...)
	var positions []int
	for i := range corrected {
		x := field.Element(i)
		if h.locator.Evaluate(x) == 0 {
			positions = append(positions, i)
			corrected[i] = h.message.Evaluate(x)
		}
	}

	l, err := c.codeword.Interpolate(corrected)
	if err != nil {
		return nil, fmt.Errorf("failed to interpolate corrected codeword: %w", err)
	}
	if l.Degree() >= c.k || !l.Equal(h.message) {
		return nil, &DecodeFailure{
			N: c.n, K: c.k, MaxErrors: c.t,
			Reason: fmt.Sprintf("corrected word does not lie on the message polynomial (e=%d)", h.e),
		}
	}

	message := make([]field.Element, c.k)
	for i := range message {
		message[i] = l.Evaluate(field.Element(i))
	}

	return &DecodeResult{
		Message:        message,
		Corrected:      Codeword{Field: c.field, Symbols: corrected},
		ErrorPositions: positions,
		ErrorCount:     h.e,
	}, nil
}

// Decode decodes the coefficients of received, treated as n = degree+1 symbols, with
// message length k and returns the message as a polynomial. Use DecodeSymbols when the
// received word ends in zero symbols.
func Decode(received poly.Polynomial, k int) (poly.Polynomial, error) {
	f := received.Field()
	res, err := DecodeSymbols(f, received.Coefficients(), k)
	if err != nil {
		return poly.Polynomial{}, err
	}
	return poly.New(f, res.Message...), nil
}

// DecodeSymbols decodes n = len(symbols) received symbols with message length k.
func DecodeSymbols(f field.PrimeField, symbols []field.Element, k int) (*DecodeResult, error) {
	codec, err := NewCodec(Config{Prime: f.Prime(), N: len(symbols), K: k})
	if err != nil {
		return nil, err
	}
	return codec.Decode(Codeword{Field: f, Symbols: symbols})
}
