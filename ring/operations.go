package ring

import (
	"math/big"

	"github.com/alibillalhammoud/FHEforEEs/rns"
)

// Add sets pOut = p0 + p1 coefficient-wise.
func (r *Ring) Add(p0, p1, pOut *Poly) {
	r.checkPoly(p0, p1, pOut)
	moduli := r.Basis.Moduli()
	for i := 0; i < r.N; i++ {
		for j, m := range moduli {
			pOut.Coeffs[i].Residues[j] = rns.AddMod(p0.Coeffs[i].Residues[j], p1.Coeffs[i].Residues[j], m)
		}
	}
}

// Sub sets pOut = p0 - p1 coefficient-wise.
func (r *Ring) Sub(p0, p1, pOut *Poly) {
	r.checkPoly(p0, p1, pOut)
	moduli := r.Basis.Moduli()
	for i := 0; i < r.N; i++ {
		for j, m := range moduli {
			pOut.Coeffs[i].Residues[j] = rns.SubMod(p0.Coeffs[i].Residues[j], p1.Coeffs[i].Residues[j], m)
		}
	}
}

// Neg sets pOut = -p0 coefficient-wise.
func (r *Ring) Neg(p0, pOut *Poly) {
	r.checkPoly(p0, pOut)
	moduli := r.Basis.Moduli()
	for i := 0; i < r.N; i++ {
		for j, m := range moduli {
			pOut.Coeffs[i].Residues[j] = rns.NegMod(p0.Coeffs[i].Residues[j], m)
		}
	}
}

// MulScalar sets pOut = p0 * scalar for a word-sized scalar.
func (r *Ring) MulScalar(p0 *Poly, scalar uint64, pOut *Poly) {
	r.checkPoly(p0, pOut)
	moduli := r.Basis.Moduli()
	for i := 0; i < r.N; i++ {
		for j, m := range moduli {
			pOut.Coeffs[i].Residues[j] = rns.MulMod(p0.Coeffs[i].Residues[j], scalar, m)
		}
	}
}

// MulScalarRNS sets pOut = p0 * scalar, where the scalar is given in
// per-modulus representation over the ring basis.
func (r *Ring) MulScalarRNS(p0 *Poly, scalar rns.Scalar, pOut *Poly) {
	r.checkPoly(p0, pOut)
	moduli := r.Basis.Moduli()
	if len(scalar) != len(moduli) {
		panic("ring: scalar length does not match the basis length")
	}
	for i := 0; i < r.N; i++ {
		for j, m := range moduli {
			pOut.Coeffs[i].Residues[j] = rns.MulMod(p0.Coeffs[i].Residues[j], scalar[j], m)
		}
	}
}

// MulScalarBigint sets pOut = p0 * scalar for an arbitrary-precision scalar.
func (r *Ring) MulScalarBigint(p0 *Poly, scalar *big.Int, pOut *Poly) {
	r.MulScalarRNS(p0, rns.NewScalarFromBig(scalar, r.Basis), pOut)
}

// MulPolyNaive sets pOut = p0 * p1 mod X^N + 1 using the schoolbook
// negacyclic convolution: products wrapping around index N are subtracted.
// The output may alias the inputs.
func (r *Ring) MulPolyNaive(p0, p1, pOut *Poly) {
	r.checkPoly(p0, p1, pOut)

	acc := r.NewPoly()

	for i := 0; i < r.N; i++ {
		for j := 0; j < r.N; j++ {
			if k := i + j; k < r.N {
				acc.Coeffs[k].MulThenAddAssign(p0.Coeffs[i], p1.Coeffs[j])
			} else {
				acc.Coeffs[k-r.N].MulThenSubAssign(p0.Coeffs[i], p1.Coeffs[j])
			}
		}
	}

	pOut.Copy(acc)
}

// MulPolyNaiveNew returns p0 * p1 mod X^N + 1 on a new polynomial.
func (r *Ring) MulPolyNaiveNew(p0, p1 *Poly) *Poly {
	pOut := r.NewPoly()
	r.MulPolyNaive(p0, p1, pOut)
	return pOut
}

// MulPolyNaiveThenAdd sets pOut = pOut + p0 * p1 mod X^N + 1.
func (r *Ring) MulPolyNaiveThenAdd(p0, p1, pOut *Poly) {
	r.checkPoly(p0, p1, pOut)

	prod := r.MulPolyNaiveNew(p0, p1)
	r.Add(pOut, prod, pOut)
}
