package ring

import (
	"github.com/alibillalhammoud/FHEforEEs/rns"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Coefficient i is the coefficient of X^i, and all coefficients are
// represented over the same RNS basis.
type Poly struct {
	Coeffs []rns.Integer
}

// N returns the number of coefficients of the polynomial.
func (p *Poly) N() int {
	return len(p.Coeffs)
}

// Basis returns the RNS basis of the coefficients.
func (p *Poly) Basis() *rns.Basis {
	return p.Coeffs[0].Basis()
}

// CopyNew creates an exact copy of the target polynomial.
func (p *Poly) CopyNew() *Poly {
	q := &Poly{Coeffs: make([]rns.Integer, len(p.Coeffs))}
	for i := range p.Coeffs {
		q.Coeffs[i] = p.Coeffs[i].CopyNew()
	}
	return q
}

// Copy copies the coefficients of other on the target polynomial. Both
// polynomials must have the same degree and basis.
func (p *Poly) Copy(other *Poly) {
	if p == other {
		return
	}
	if len(p.Coeffs) != len(other.Coeffs) {
		panic("ring: polynomial degrees do not match")
	}
	for i := range p.Coeffs {
		copy(p.Coeffs[i].Residues, other.Coeffs[i].Residues)
	}
}

// Zero sets all coefficients of the target polynomial to 0.
func (p *Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i].Zero()
	}
}

// Equal returns true if the receiver Poly is equal to the provided other
// Poly, coefficient by coefficient.
func (p *Poly) Equal(other *Poly) bool {
	if p == other {
		return true
	}
	if other == nil || len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if !p.Coeffs[i].Equal(other.Coeffs[i]) {
			return false
		}
	}
	return true
}
