// Package interp reconstructs polynomials from coordinate pairs by Lagrange
// interpolation over a prime field.
package interp

import (
	"fmt"

	"github.com/Davincible/rscodec/pkg/field"
	"github.com/Davincible/rscodec/pkg/poly"
)

// Point is a coordinate pair (X, Y) over a field.
type Point struct {
	X, Y field.Element
}

// DuplicateAbscissaError is returned when two points share an x-coordinate.
type DuplicateAbscissaError struct {
	X      field.Element
	First  int
	Second int
}

func (e *DuplicateAbscissaError) Error() string {
	return fmt.Sprintf("points %d and %d share x-coordinate %d", e.First, e.Second, e.X)
}

func (e *DuplicateAbscissaError) Unwrap() error {
	return field.ErrInvalidFieldOperation
}

// Interpolate returns the unique polynomial of degree < len(points) passing through
// every point:
//
//	L(x) = Σᵢ yᵢ · Πⱼ≠ᵢ (x − xⱼ)/(xᵢ − xⱼ)
//
// No points yields the zero polynomial. All x-coordinates must be distinct modulo p.
func Interpolate(f field.PrimeField, points []Point) (poly.Polynomial, error) {
	seen := make(map[field.Element]int, len(points))
	for i, pt := range points {
		x := f.Reduce(pt.X)
		if j, dup := seen[x]; dup {
			return poly.Polynomial{}, &DuplicateAbscissaError{X: x, First: j, Second: i}
		}
		seen[x] = i
	}

	result := poly.Zero(f)
	for i, pi := range points {
		if f.Reduce(pi.Y) == 0 {
			continue
		}

		basis := poly.One(f)
		denom := f.Reduce(1)
		for j, pj := range points {
			if i == j {
				continue
			}
			basis = basis.Mul(poly.New(f, f.Neg(pj.X), 1))
			denom = f.Mul(denom, f.Sub(pi.X, pj.X))
		}

		scale, err := f.Div(pi.Y, denom)
		if err != nil {
			return poly.Polynomial{}, err
		}
		result = result.Add(basis.Scale(scale))
	}
	return result, nil
}

// CoordinatesExcluding returns the (position, symbol) pairs of symbols whose position
// is not in skip, in position order.
func CoordinatesExcluding(symbols []field.Element, skip map[int]struct{}) []Point {
	points := make([]Point, 0, len(symbols))
	for i, s := range symbols {
		if _, ok := skip[i]; ok {
			continue
		}
		points = append(points, Point{X: field.Element(i), Y: s})
	}
	return points
}

// Sequential returns (i, symbols[i]) for every position.
func Sequential(symbols []field.Element) []Point {
	return CoordinatesExcluding(symbols, nil)
}

// Evaluator holds the Lagrange basis polynomials for a fixed set of abscissas so that
// many value vectors can be interpolated over the same positions.
type Evaluator struct {
	field field.PrimeField
	xs    []field.Element
	basis []poly.Polynomial
}

// NewEvaluator prepares the Lagrange basis for xs. Each basis polynomial is obtained by
// dividing Z(x) = Π (x − xⱼ) by (x − xᵢ) and scaling by 1/Πⱼ≠ᵢ (xᵢ − xⱼ).
func NewEvaluator(f field.PrimeField, xs []field.Element) (*Evaluator, error) {
	seen := make(map[field.Element]int, len(xs))
	for i, x := range xs {
		x = f.Reduce(x)
		if j, dup := seen[x]; dup {
			return nil, &DuplicateAbscissaError{X: x, First: j, Second: i}
		}
		seen[x] = i
	}

	z := poly.FromRoots(f, xs...)
	basis := make([]poly.Polynomial, len(xs))
	for i, xi := range xs {
		num, err := z.Div(poly.New(f, f.Neg(xi), 1))
		if err != nil {
			return nil, err
		}
		denom := f.Reduce(1)
		for j, xj := range xs {
			if i != j {
				denom = f.Mul(denom, f.Sub(xi, xj))
			}
		}
		inv, err := f.Inverse(denom)
		if err != nil {
			return nil, err
		}
		basis[i] = num.Scale(inv)
	}
	return &Evaluator{field: f, xs: append([]field.Element(nil), xs...), basis: basis}, nil
}

// Len returns the number of abscissas.
func (e *Evaluator) Len() int {
	return len(e.xs)
}

// Interpolate returns the polynomial taking ys[i] at the i-th prepared abscissa.
func (e *Evaluator) Interpolate(ys []field.Element) (poly.Polynomial, error) {
	if len(ys) != len(e.xs) {
		return poly.Polynomial{}, fmt.Errorf("%w: %d values for %d positions", field.ErrDimension, len(ys), len(e.xs))
	}
	result := poly.Zero(e.field)
	for i, y := range ys {
		if e.field.Reduce(y) == 0 {
			continue
		}
		result = result.Add(e.basis[i].Scale(y))
	}
	return result, nil
}
