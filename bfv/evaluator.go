package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/ring"
	"github.com/alibillalhammoud/FHEforEEs/rns"
)

// Evaluator is a structure holding the elements needed to operate
// homomorphically on ciphertexts: the shared parameters and their
// precomputed base-conversion constants. It holds no key material.
type Evaluator struct {
	params  Parameters
	encoder *Encoder
}

// NewEvaluator creates a new Evaluator from the provided parameters.
func NewEvaluator(params Parameters) *Evaluator {
	return &Evaluator{params: params, encoder: NewEncoder(params)}
}

// checkCiphertext asserts that the inputs are well-formed ciphertexts over
// the evaluator's ring.
func (eval *Evaluator) checkCiphertext(cts ...*Ciphertext) {
	ringQ := eval.params.RingQ()
	for _, ct := range cts {
		for _, pol := range []*ring.Poly{ct.A, ct.B} {
			if pol.N() != ringQ.N || !pol.Basis().Equal(ringQ.Basis) {
				panic("bfv: ciphertext is not over the evaluator ring")
			}
		}
	}
}

// AddNew adds ct0 to ct1 coefficient-wise and returns the result on a new
// ciphertext.
func (eval *Evaluator) AddNew(ct0, ct1 *Ciphertext) *Ciphertext {
	eval.checkCiphertext(ct0, ct1)
	ringQ := eval.params.RingQ()
	out := NewCiphertext(eval.params)
	ringQ.Add(ct0.A, ct1.A, out.A)
	ringQ.Add(ct0.B, ct1.B, out.B)
	return out
}

// SubNew subtracts ct1 from ct0 coefficient-wise and returns the result on
// a new ciphertext.
func (eval *Evaluator) SubNew(ct0, ct1 *Ciphertext) *Ciphertext {
	eval.checkCiphertext(ct0, ct1)
	ringQ := eval.params.RingQ()
	out := NewCiphertext(eval.params)
	ringQ.Sub(ct0.A, ct1.A, out.A)
	ringQ.Sub(ct0.B, ct1.B, out.B)
	return out
}

// AddPlainNew adds the plaintext vector to the ciphertext and returns the
// result on a new ciphertext: the vector is encoded, scaled by Delta and
// added to B only.
func (eval *Evaluator) AddPlainNew(ct *Ciphertext, values []int64) *Ciphertext {
	eval.checkCiphertext(ct)

	ringQ := eval.params.RingQ()
	scaled := ringQ.NewPoly()
	for i, mi := range eval.encoder.EncodeInt(values) {
		scaled.Coeffs[i] = rns.NewIntegerFromUint64(mi, eval.params.BasisQ()).MulScalar(eval.params.DeltaRNS())
	}

	out := ct.CopyNew()
	ringQ.Add(out.B, scaled, out.B)
	return out
}

// MulPlainNew multiplies the ciphertext by the plaintext vector and returns
// the result on a new ciphertext: both A and B are negacyclic-multiplied by
// the encoded (unscaled) plaintext polynomial.
func (eval *Evaluator) MulPlainNew(ct *Ciphertext, values []int64) *Ciphertext {
	eval.checkCiphertext(ct)

	ringQ := eval.params.RingQ()
	pt := ringQ.NewPoly()
	ringQ.SetCoefficientsUint64(eval.encoder.EncodeInt(values), pt)

	out := NewCiphertext(eval.params)
	ringQ.MulPolyNaive(ct.A, pt, out.A)
	ringQ.MulPolyNaive(ct.B, pt, out.B)
	return out
}

// MulNew multiplies ct0 by ct1 and returns the result on a new ciphertext,
// relinearized back to a pair with the provided relinearization key.
//
// The multiplication follows the BEHZ pipeline: mod-raise the four input
// ring elements from q to q u B u {ba}, tensor, scale by t, divide by Q_q
// via modulus switching, convert back to q exactly through the single-prime
// correction base, and relinearize the degree-2 term.
func (eval *Evaluator) MulNew(ct0, ct1 *Ciphertext, rlk *RelinearizationKey) *Ciphertext {
	eval.checkCiphertext(ct0, ct1)

	if len(rlk.Keys) != eval.params.BasisQ().Len() {
		panic("bfv: relinearization key length does not match the basis length")
	}

	ringQBBa := eval.params.RingQBBa()
	t := eval.params.T()

	// Mod-raise
	a1 := eval.modRaise(ct0.A)
	b1 := eval.modRaise(ct0.B)
	a2 := eval.modRaise(ct1.A)
	b2 := eval.modRaise(ct1.B)

	// Tensor
	d0 := ringQBBa.MulPolyNaiveNew(b1, b2)
	d1 := ringQBBa.MulPolyNaiveNew(b1, a2)
	ringQBBa.MulPolyNaiveThenAdd(b2, a1, d1)
	d2 := ringQBBa.MulPolyNaiveNew(a1, a2)

	// Scale by t
	ringQBBa.MulScalar(d0, t, d0)
	ringQBBa.MulScalar(d1, t, d1)
	ringQBBa.MulScalar(d2, t, d2)

	// Divide by Q_q and convert back to q
	d0q := eval.scaleDown(d0)
	d1q := eval.scaleDown(d1)
	d2q := eval.scaleDown(d2)

	return eval.relinearize(d0q, d1q, d2q, rlk)
}

// modRaise extends the basis of every coefficient from q to q u B u {ba}
// with the approximate fast conversion.
func (eval *Evaluator) modRaise(p *ring.Poly) *ring.Poly {
	out := eval.params.RingQBBa().NewPoly()
	for i := range p.Coeffs {
		out.Coeffs[i] = eval.params.convQToQBBa.Convert(p.Coeffs[i])
	}
	return out
}

// scaleDown divides every coefficient by Q_q, dropping the q moduli, and
// converts the result from B u {ba} back to q exactly.
func (eval *Evaluator) scaleDown(p *ring.Poly) *ring.Poly {
	out := eval.params.RingQ().NewPoly()
	for i := range p.Coeffs {
		out.Coeffs[i] = eval.params.convBBaToQ.Convert(eval.params.switchQBBaToBBa.Switch(p.Coeffs[i]))
	}
	return out
}

// relinearize collapses the degree-2 ciphertext (d0, d1, d2) back to a pair
// by gadget-decomposing d2 along the RNS basis and multiplying the pieces
// with the matching evaluation-key entries.
func (eval *Evaluator) relinearize(d0, d1, d2 *ring.Poly, rlk *RelinearizationKey) *Ciphertext {

	ringQ := eval.params.RingQ()
	basisQ := eval.params.BasisQ()

	accA := ringQ.NewPoly()
	accB := ringQ.NewPoly()

	pi := ringQ.NewPoly()
	for i := range rlk.Keys {

		// P_i holds the i-th residue of every coefficient of d2, broadcast
		// to a full RNS integer over q.
		for j := range d2.Coeffs {
			pi.Coeffs[j] = rns.NewIntegerFromUint64(d2.Coeffs[j].Residues[i], basisQ)
		}

		ringQ.MulPolyNaiveThenAdd(pi, rlk.Keys[i].A, accA)
		ringQ.MulPolyNaiveThenAdd(pi, rlk.Keys[i].B, accB)
	}

	out := NewCiphertext(eval.params)
	ringQ.Add(d1, accA, out.A)
	ringQ.Add(d0, accB, out.B)
	return out
}
