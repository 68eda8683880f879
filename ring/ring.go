// Package ring implements modular arithmetic for polynomials over the
// quotient ring Z[X]/(X^N + 1) with RNS-represented coefficients, including
// negacyclic convolution and uniform, Gaussian and ternary sampling.
package ring

import (
	"errors"
	"math/big"

	"github.com/alibillalhammoud/FHEforEEs/rns"
)

// Ring keeps the variables required to operate on polynomials with
// coefficients represented over an RNS basis. It is immutable after
// construction and can be shared between goroutines.
type Ring struct {

	// Polynomial degree
	N int

	// Coefficient basis
	Basis *rns.Basis
}

// NewRing creates a new Ring with degree N over the provided coefficient
// basis. N must be a power of two.
func NewRing(N int, basis *rns.Basis) (*Ring, error) {

	if N < 2 || N&(N-1) != 0 {
		return nil, errors.New("ring: invalid ring degree (must be a power of 2)")
	}

	if basis == nil {
		return nil, errors.New("ring: nil basis")
	}

	return &Ring{N: N, Basis: basis}, nil
}

// NewPoly creates a new polynomial with all coefficients set to 0.
func (r *Ring) NewPoly() *Poly {
	p := &Poly{Coeffs: make([]rns.Integer, r.N)}
	for i := range p.Coeffs {
		p.Coeffs[i] = rns.NewInteger(r.Basis)
	}
	return p
}

// checkPoly asserts that every operand has the ring's degree and basis.
func (r *Ring) checkPoly(pols ...*Poly) {
	for _, p := range pols {
		if len(p.Coeffs) != r.N {
			panic("ring: polynomial degree does not match the ring degree")
		}
		for i := range p.Coeffs {
			if !p.Coeffs[i].Basis().Equal(r.Basis) {
				panic("ring: polynomial basis does not match the ring basis")
			}
		}
	}
}

// SetCoefficientsUint64 sets the coefficients of p from a uint64 slice.
func (r *Ring) SetCoefficientsUint64(coeffs []uint64, p *Poly) {
	r.checkPoly(p)
	if len(coeffs) != r.N {
		panic("ring: coefficient slice length does not match the ring degree")
	}
	for i, c := range coeffs {
		p.Coeffs[i] = rns.NewIntegerFromUint64(c, r.Basis)
	}
}

// SetCoefficientsInt64 sets the coefficients of p from an int64 slice.
func (r *Ring) SetCoefficientsInt64(coeffs []int64, p *Poly) {
	r.checkPoly(p)
	if len(coeffs) != r.N {
		panic("ring: coefficient slice length does not match the ring degree")
	}
	for i, c := range coeffs {
		p.Coeffs[i] = rns.NewIntegerFromInt64(c, r.Basis)
	}
}

// SetCoefficientsBigint sets the coefficients of p from a slice of big.Int.
func (r *Ring) SetCoefficientsBigint(coeffs []*big.Int, p *Poly) {
	r.checkPoly(p)
	if len(coeffs) != r.N {
		panic("ring: coefficient slice length does not match the ring degree")
	}
	for i, c := range coeffs {
		p.Coeffs[i] = rns.NewIntegerFromBig(c, r.Basis)
	}
}

// PolyToBigint reconstructs p and returns the coefficients in [0, Q).
func (r *Ring) PolyToBigint(p *Poly) []*big.Int {
	r.checkPoly(p)
	coeffs := make([]*big.Int, r.N)
	for i := range p.Coeffs {
		coeffs[i] = p.Coeffs[i].BigInt()
	}
	return coeffs
}

// PolyToBigintCentered reconstructs p and returns the coefficients centered
// in (-Q/2, Q/2].
func (r *Ring) PolyToBigintCentered(p *Poly) []*big.Int {
	r.checkPoly(p)
	coeffs := make([]*big.Int, r.N)
	for i := range p.Coeffs {
		coeffs[i] = p.Coeffs[i].CenteredBigInt()
	}
	return coeffs
}

// Equal returns true if p0 and p1 are equal coefficient-wise in the ring.
func (r *Ring) Equal(p0, p1 *Poly) bool {
	r.checkPoly(p0, p1)
	for i := range p0.Coeffs {
		if !p0.Coeffs[i].Equal(p1.Coeffs[i]) {
			return false
		}
	}
	return true
}
