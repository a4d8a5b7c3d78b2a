// Package poly implements the polynomial ring F_p[x] over a prime field.
//
// Polynomials are immutable values. Coefficients are indexed by degree and kept in
// canonical form: trailing (highest-degree) zeros are trimmed, and the zero polynomial
// is the single coefficient 0.
package poly

import (
	"fmt"
	"strings"

	"github.com/Davincible/rscodec/pkg/field"
)

// ErrDivisionByZero is returned when dividing by the zero polynomial.
var ErrDivisionByZero = fmt.Errorf("%w: division by zero polynomial", field.ErrInvalidFieldOperation)

// Polynomial is an element of F_p[x]. The zero value is not usable; construct with New.
type Polynomial struct {
	field  field.PrimeField
	coeffs []field.Element
}

// New returns the polynomial with the given coefficients (index = degree). Every
// coefficient is reduced into the field and the input slice is copied. An empty
// coefficient list yields the zero polynomial.
func New(f field.PrimeField, coeffs ...field.Element) Polynomial {
	c := make([]field.Element, len(coeffs))
	for i, v := range coeffs {
		c[i] = f.Reduce(v)
	}
	return canonical(f, c)
}

// FromInts is like New for signed coefficients, which are mapped into [0, p).
func FromInts(f field.PrimeField, coeffs []int64) Polynomial {
	c := make([]field.Element, len(coeffs))
	for i, v := range coeffs {
		c[i] = f.FromInt(v)
	}
	return canonical(f, c)
}

// Zero returns the zero polynomial.
func Zero(f field.PrimeField) Polynomial {
	return Polynomial{field: f, coeffs: []field.Element{0}}
}

// One returns the constant polynomial 1.
func One(f field.PrimeField) Polynomial {
	return Polynomial{field: f, coeffs: []field.Element{f.Reduce(1)}}
}

// Monomial returns coeff·x^degree.
func Monomial(f field.PrimeField, coeff field.Element, degree int) Polynomial {
	if degree < 0 {
		panic(fmt.Sprintf("poly: negative degree %d", degree))
	}
	c := make([]field.Element, degree+1)
	c[degree] = f.Reduce(coeff)
	return canonical(f, c)
}

// FromRoots returns the monic polynomial Π (x − r) over the given roots. With no roots
// the result is One.
func FromRoots(f field.PrimeField, roots ...field.Element) Polynomial {
	result := One(f)
	for _, r := range roots {
		result = result.Mul(New(f, f.Neg(r), 1))
	}
	return result
}

// canonical takes ownership of c and trims trailing zeros.
func canonical(f field.PrimeField, c []field.Element) Polynomial {
	end := len(c)
	for end > 1 && c[end-1] == 0 {
		end--
	}
	if end == 0 {
		return Zero(f)
	}
	return Polynomial{field: f, coeffs: c[:end:end]}
}

// Field returns the field the polynomial is defined over.
func (p Polynomial) Field() field.PrimeField {
	return p.field
}

// Degree returns len(coefficients)-1; the zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.coeffs) == 1 && p.coeffs[0] == 0
}

// Coefficient returns the coefficient of x^i, or 0 when i is out of range.
func (p Polynomial) Coefficient(i int) field.Element {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// Coefficients returns a copy of the canonical coefficients, lowest degree first.
func (p Polynomial) Coefficients() []field.Element {
	out := make([]field.Element, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// LeadingCoefficient returns the coefficient of the highest-degree term.
func (p Polynomial) LeadingCoefficient() field.Element {
	return p.coeffs[len(p.coeffs)-1]
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	field.MustMatch(p.field, q.field)
	out := make([]field.Element, max(len(p.coeffs), len(q.coeffs)))
	for i := range out {
		out[i] = p.field.Add(p.Coefficient(i), q.Coefficient(i))
	}
	return canonical(p.field, out)
}

// Sub returns p − q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	field.MustMatch(p.field, q.field)
	out := make([]field.Element, max(len(p.coeffs), len(q.coeffs)))
	for i := range out {
		out[i] = p.field.Sub(p.Coefficient(i), q.Coefficient(i))
	}
	return canonical(p.field, out)
}

// Neg returns −p.
func (p Polynomial) Neg() Polynomial {
	return Zero(p.field).Sub(p)
}

// Scale returns c·p.
func (p Polynomial) Scale(c field.Element) Polynomial {
	out := make([]field.Element, len(p.coeffs))
	for i, v := range p.coeffs {
		out[i] = p.field.Mul(v, c)
	}
	return canonical(p.field, out)
}

// Mul returns p·q by full convolution.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	field.MustMatch(p.field, q.field)
	if p.IsZero() || q.IsZero() {
		return Zero(p.field)
	}
	f := p.field
	out := make([]field.Element, len(p.coeffs)+len(q.coeffs)-1)
	for i, a := range p.coeffs {
		if a == 0 {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = f.Add(out[i+j], f.Mul(a, b))
		}
	}
	return canonical(f, out)
}

// DivMod returns the quotient and remainder of p divided by divisor, so that
// quotient·divisor + remainder == p and the remainder is zero or of lower degree than
// the divisor.
func (p Polynomial) DivMod(divisor Polynomial) (quotient, remainder Polynomial, err error) {
	field.MustMatch(p.field, divisor.field)
	if divisor.IsZero() {
		return Polynomial{}, Polynomial{}, ErrDivisionByZero
	}

	f := p.field
	lead, err := f.Inverse(divisor.LeadingCoefficient())
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}

	dd := divisor.Degree()
	if p.Degree() < dd {
		return Zero(f), p, nil
	}

	rem := p.Coefficients()
	quot := make([]field.Element, p.Degree()-dd+1)

	for deg := len(rem) - 1; deg >= dd; deg-- {
		c := rem[deg]
		if c == 0 {
			continue
		}
		term := f.Mul(c, lead)
		shift := deg - dd
		quot[shift] = term
		for i, dc := range divisor.coeffs {
			rem[shift+i] = f.Sub(rem[shift+i], f.Mul(term, dc))
		}
	}

	// Degrees at or above dd were eliminated above.
	if dd > 0 {
		rem = rem[:dd]
	} else {
		rem = rem[:0]
	}
	return canonical(f, quot), canonical(f, rem), nil
}

// Div returns the quotient of p divided by divisor.
func (p Polynomial) Div(divisor Polynomial) (Polynomial, error) {
	q, _, err := p.DivMod(divisor)
	return q, err
}

// Mod returns the remainder of p divided by divisor.
func (p Polynomial) Mod(divisor Polynomial) (Polynomial, error) {
	_, r, err := p.DivMod(divisor)
	return r, err
}

// Evaluate returns p(x) using Horner's rule.
func (p Polynomial) Evaluate(x field.Element) field.Element {
	f := p.field
	x = f.Reduce(x)
	var acc field.Element
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = f.Add(f.Mul(acc, x), p.coeffs[i])
	}
	return acc
}

// EvaluateAll returns p evaluated at every point of xs.
func (p Polynomial) EvaluateAll(xs []field.Element) []field.Element {
	out := make([]field.Element, len(xs))
	for i, x := range xs {
		out[i] = p.Evaluate(x)
	}
	return out
}

// Equal reports whether p and q are over the same field with identical coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	if !p.field.Equal(q.field) || len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i] != q.coeffs[i] {
			return false
		}
	}
	return true
}

// String renders p highest degree first, e.g. "x^2 + 2x + 3".
func (p Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		var b strings.Builder
		if c != 1 || i == 0 {
			fmt.Fprintf(&b, "%d", c)
		}
		switch {
		case i == 1:
			b.WriteString("x")
		case i > 1:
			fmt.Fprintf(&b, "x^%d", i)
		}
		terms = append(terms, b.String())
	}
	return strings.Join(terms, " + ")
}
