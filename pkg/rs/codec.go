// Package rs implements systematic Reed-Solomon codes over prime fields with
// Berlekamp-Welch unique decoding.
//
// A message of k symbols m₀..m_{k-1} defines the message polynomial P of degree < k
// with P(i) = mᵢ. The codeword is (P(0), …, P(n-1)), so its first k symbols are the
// message itself. Up to t = ⌊(n-k)/2⌋ symbol errors are corrected.
package rs

import (
	"fmt"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/interp"
	"github.com/Davincible/rscodec/pkg/poly"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rs")

type Config struct {
	Prime uint64
	N     int
	K     int
}

func (c *Config) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("%w: message length must be at least 1, got %d", ErrInvalidConfig, c.K)
	}
	if c.N <= c.K {
		return fmt.Errorf("%w: codeword length (%d) must exceed message length (%d)", ErrInvalidConfig, c.N, c.K)
	}
	if uint64(c.N) > c.Prime {
		return fmt.Errorf("%w: codeword length (%d) cannot exceed the field size (%d)", ErrInvalidConfig, c.N, c.Prime)
	}
	return nil
}

// MaxErrors returns t = ⌊(n-k)/2⌋.
func (c *Config) MaxErrors() int {
	return (c.N - c.K) / 2
}

// Option configures a Codec.
type Option func(*Codec)

// WithCache shares primitive-element lookups between codecs over the same field.
func WithCache(cache *field.Cache) Option {
	return func(c *Codec) {
		c.cache = cache
	}
}

// WithParallelSearch solves the decoder's error-count hypotheses on up to workers
// goroutines. Values below 2 keep the sequential sweep.
func WithParallelSearch(workers int) Option {
	return func(c *Codec) {
		c.workers = workers
	}
}

// Codec encodes and decodes for one (field, n, k). It is immutable after construction
// and safe for concurrent use.
type Codec struct {
	field field.PrimeField
	n, k  int
	t     int
	alpha field.Element

	generator poly.Polynomial
	message   *interp.Evaluator // abscissas 0..k-1
	codeword  *interp.Evaluator // abscissas 0..n-1

	cache   *field.Cache
	workers int
}

// NewCodec validates cfg and precomputes the generator polynomial and the Lagrange
// bases used by Encode and Decode.
func NewCodec(cfg Config, opts ...Option) (*Codec, error) {
	f, err := field.New(cfg.Prime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Codec{
		field: f,
		n:     cfg.N,
		k:     cfg.K,
		t:     cfg.MaxErrors(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.alpha, err = c.cache.PrimitiveElement(f)
	if err != nil {
		return nil, fmt.Errorf("failed to find primitive element: %w", err)
	}
	c.generator = GeneratorPolynomial(f, c.n, c.k, c.alpha)

	if c.message, err = interp.NewEvaluator(f, positions(c.k)); err != nil {
		return nil, err
	}
	if c.codeword, err = interp.NewEvaluator(f, positions(c.n)); err != nil {
		return nil, err
	}

	log.Debugf("codec ready: %s n=%d k=%d t=%d alpha=%d", f, c.n, c.k, c.t, c.alpha)
	return c, nil
}

func positions(n int) []field.Element {
	xs := make([]field.Element, n)
	for i := range xs {
		xs[i] = field.Element(i)
	}
	return xs
}

func (c *Codec) Field() field.PrimeField { return c.field }

func (c *Codec) N() int { return c.n }

func (c *Codec) K() int { return c.k }

// MaxErrors returns the number of symbol errors the code is guaranteed to correct.
func (c *Codec) MaxErrors() int { return c.t }

// PrimitiveElement returns the generator α of F_p^* used for the generator polynomial.
func (c *Codec) PrimitiveElement() field.Element { return c.alpha }

// Generator returns g(x) = Πᵢ₌₁..n-k (x − αⁱ).
func (c *Codec) Generator() poly.Polynomial { return c.generator }

// GeneratorPolynomial returns Πᵢ₌₁..n-k (x − alphaⁱ).
func GeneratorPolynomial(f field.PrimeField, n, k int, alpha field.Element) poly.Polynomial {
	roots := make([]field.Element, 0, max(n-k, 0))
	for i := 1; i <= n-k; i++ {
		roots = append(roots, f.PowMod(alpha, uint64(i)))
	}
	return poly.FromRoots(f, roots...)
}

// Codeword is a vector of symbols over a field. Unlike a Polynomial it keeps trailing
// zero symbols, so its length is always n.
type Codeword struct {
	Field   field.PrimeField
	Symbols []field.Element
}

// Len returns the number of symbols.
func (w Codeword) Len() int {
	return len(w.Symbols)
}

// Clone returns a deep copy.
func (w Codeword) Clone() Codeword {
	return Codeword{Field: w.Field, Symbols: append([]field.Element(nil), w.Symbols...)}
}

// Polynomial returns the symbols as polynomial coefficients.
func (w Codeword) Polynomial() poly.Polynomial {
	return poly.New(w.Field, w.Symbols...)
}

// EncodeResult holds a codeword together with the generator-framing outputs.
type EncodeResult struct {
	Codeword Codeword
	K        int

	// Generator is g(x) for the codec parameters.
	Generator poly.Polynomial
	// GeneratorEncoded is the message coefficients multiplied by g(x). It is not the
	// codeword and Decode does not accept it.
	GeneratorEncoded poly.Polynomial
}

// Encode maps k message symbols to an n-symbol systematic codeword.
func (c *Codec) Encode(message []field.Element) (*EncodeResult, error) {
	if len(message) != c.k {
		return nil, fmt.Errorf("%w: expected %d symbols, got %d", ErrInvalidMessage, c.k, len(message))
	}
	if err := c.checkSymbols(message); err != nil {
		return nil, err
	}

	p, err := c.message.Interpolate(message)
	if err != nil {
		return nil, fmt.Errorf("failed to build message polynomial: %w", err)
	}

	symbols := make([]field.Element, c.n)
	for i := range symbols {
		symbols[i] = p.Evaluate(field.Element(i))
	}

	return &EncodeResult{
		Codeword:         Codeword{Field: c.field, Symbols: symbols},
		K:                c.k,
		Generator:        c.generator,
		GeneratorEncoded: poly.New(c.field, message...).Mul(c.generator),
	}, nil
}

// Verify reports whether w is a codeword, i.e. its n symbols lie on a polynomial of
// degree < k.
func (c *Codec) Verify(w Codeword) bool {
	if err := c.checkCodeword(w); err != nil {
		return false
	}
	p, err := c.codeword.Interpolate(w.Symbols)
	if err != nil {
		return false
	}
	return p.Degree() < c.k
}

func (c *Codec) checkSymbols(symbols []field.Element) error {
	for i, s := range symbols {
		if s >= c.field.Prime() {
			return fmt.Errorf("%w: symbol %d (%d) is not an element of %s", ErrInvalidMessage, i, s, c.field)
		}
	}
	return nil
}

func (c *Codec) checkCodeword(w Codeword) error {
	if !w.Field.Equal(c.field) {
		return fmt.Errorf("%w: codeword over %s, codec over %s", ErrInvalidMessage, w.Field, c.field)
	}
	if len(w.Symbols) != c.n {
		return fmt.Errorf("%w: expected %d symbols, got %d", ErrInvalidMessage, c.n, len(w.Symbols))
	}
	return c.checkSymbols(w.Symbols)
}

// Encode encodes the coefficients of message, treated as k = degree+1 symbols, into
// an n-symbol codeword. Use EncodeSymbols when the message ends in zero symbols.
func Encode(message poly.Polynomial, n int) (*EncodeResult, error) {
	return EncodeSymbols(message.Field(), message.Coefficients(), n)
}

// EncodeSymbols encodes k = len(symbols) message symbols into an n-symbol codeword.
func EncodeSymbols(f field.PrimeField, symbols []field.Element, n int) (*EncodeResult, error) {
	codec, err := NewCodec(Config{Prime: f.Prime(), N: n, K: len(symbols)})
	if err != nil {
		return nil, err
	}
	return codec.Encode(symbols)
}
