package bfv

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/alibillalhammoud/FHEforEEs/ring"
	"github.com/alibillalhammoud/FHEforEEs/rns"
)

// DefaultSigma is the standard deviation of the discrete Gaussian error
// distribution used when the parameters literal leaves Sigma unset.
const DefaultSigma = 3.2

// residueBound is the exclusive upper bound R on the basis primes. Prime
// scanning starts at R/2, so every basis prime other than t lies in
// [R/2, R).
const residueBound = uint64(1) << rns.MaxModulusBits

var (
	// ErrPlaintextModulusNotPrime is returned when the plaintext modulus t
	// is not prime.
	ErrPlaintextModulusNotPrime = errors.New("bfv: plaintext modulus must be prime")

	// ErrRingDegreeNotPowerOfTwo is returned when the ring degree n is not a
	// power of two.
	ErrRingDegreeNotPowerOfTwo = errors.New("bfv: ring degree must be a power of two")

	// ErrBatchingUnsupported is returned when 2n does not divide t-1, i.e.
	// Z_t has no 2n-th root of unity and the slot encoding does not exist.
	ErrBatchingUnsupported = errors.New("bfv: 2n must divide t-1")

	// ErrBasisInfeasible is returned when the RNS bases cannot be built
	// within the residue bound.
	ErrBasisInfeasible = errors.New("bfv: cannot build RNS bases within the residue bound")
)

// ParametersLiteral is a literal representation of BFV parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The NewParametersFromLiteral function is used
// to generate the actual checked parameters from the literal representation.
type ParametersLiteral struct {
	// T is the plaintext modulus. Must be prime with 2n | t-1.
	T uint64 `json:"t"`
	// QBits is the desired bit-length of the ciphertext modulus.
	QBits int `json:"q_bits"`
	// N is the ring degree. Must be a power of two.
	N int `json:"n"`
	// Ternary selects a ternary {-1, 0, 1} secret key; otherwise the secret
	// key is binary {0, 1}.
	Ternary bool `json:"ternary"`
	// Sigma is the standard deviation of the error distribution. Defaults
	// to DefaultSigma when 0.
	Sigma float64 `json:"sigma,omitempty"`
}

// Parameters represents a parameter set for the BFV cryptosystem. Its fields
// are precomputed once by NewParametersFromLiteral and are read-only
// afterwards, so a Parameters value can be shared between a client and any
// number of servers.
type Parameters struct {
	lit ParametersLiteral

	basisQ    *rns.Basis // ciphertext basis q
	basisB    *rns.Basis // auxiliary basis B
	basisQBBa *rns.Basis // extended basis q u B u {ba}
	ba        uint64     // single-prime correction base

	ringQ    *ring.Ring
	ringQBBa *ring.Ring

	delta    *big.Int   // floor(Q_q / t), exact since t | Q_q
	deltaRNS rns.Scalar // delta mod each qi
	bigQ     *big.Int   // Q_q * delta, bound on the tensored coefficients

	crtCoeffsQ []*big.Int // alpha_i, the CRT coefficients of the basis q

	convQToQBBa     *rns.BaseConverter
	switchQBBaToBBa *rns.ModSwitcher
	convBBaToQ      *rns.ExactBaseConverter

	encodeMatrix [][]uint64 // E
	decodeMatrix [][]uint64 // W^T = E^-1 mod t
}

// NewParametersFromLiteral instantiates a set of BFV parameters from a
// ParametersLiteral specification. It returns the empty parameters and a
// non-nil error if the specified parameters are invalid or if the RNS bases
// cannot be built within the residue bound.
func NewParametersFromLiteral(pl ParametersLiteral) (Parameters, error) {

	if pl.Sigma == 0 {
		pl.Sigma = DefaultSigma
	}

	if !rns.IsPrime(pl.T) {
		return Parameters{}, fmt.Errorf("%w: t=%d", ErrPlaintextModulusNotPrime, pl.T)
	}

	if pl.N < 2 || pl.N&(pl.N-1) != 0 {
		return Parameters{}, fmt.Errorf("%w: n=%d", ErrRingDegreeNotPowerOfTwo, pl.N)
	}

	if (pl.T-1)%uint64(2*pl.N) != 0 {
		return Parameters{}, fmt.Errorf("%w: t=%d, n=%d", ErrBatchingUnsupported, pl.T, pl.N)
	}

	p := Parameters{lit: pl}

	// Basis q: t followed by NTT-friendly primes in ascending order, until
	// the product exceeds 2^QBits.
	qTarget := new(big.Int).Lsh(big.NewInt(1), uint(pl.QBits))
	qModuli := []uint64{pl.T}
	qProd := new(big.Int).SetUint64(pl.T)

	cand := residueBound / 2
	var err error
	for qProd.Cmp(qTarget) <= 0 {
		if cand, err = nextNTTPrime(cand, pl.N); err != nil {
			return Parameters{}, err
		}
		qModuli = append(qModuli, cand)
		qProd.Mul(qProd, new(big.Int).SetUint64(cand))
		cand++
	}

	p.delta = new(big.Int).Quo(qProd, new(big.Int).SetUint64(pl.T))
	p.bigQ = new(big.Int).Mul(qProd, p.delta)

	// Basis B: extends q until the product of q u B exceeds Q.
	var bModuli []uint64
	qbProd := new(big.Int).Set(qProd)
	for qbProd.Cmp(p.bigQ) <= 0 {
		if cand, err = nextNTTPrime(cand, pl.N); err != nil {
			return Parameters{}, err
		}
		bModuli = append(bModuli, cand)
		qbProd.Mul(qbProd, new(big.Int).SetUint64(cand))
		cand++
	}

	// Base Ba: a single extra prime bringing the product of q u B u {ba}
	// above Q*R/2, so that the exact conversion correction always fits in
	// one residue.
	if p.ba, err = nextNTTPrime(cand, pl.N); err != nil {
		return Parameters{}, err
	}
	qbbaProd := new(big.Int).Mul(qbProd, new(big.Int).SetUint64(p.ba))
	baTarget := new(big.Int).Mul(p.bigQ, new(big.Int).SetUint64(residueBound/2))
	if qbbaProd.Cmp(baTarget) <= 0 {
		return Parameters{}, fmt.Errorf("%w: correction base does not fit in a single prime", ErrBasisInfeasible)
	}

	if p.basisQ, err = rns.NewBasis(qModuli); err != nil {
		return Parameters{}, err
	}
	if p.basisB, err = rns.NewBasis(bModuli); err != nil {
		return Parameters{}, err
	}

	qbbaModuli := append(append(append([]uint64{}, qModuli...), bModuli...), p.ba)
	if p.basisQBBa, err = rns.NewBasis(qbbaModuli); err != nil {
		return Parameters{}, err
	}

	if p.ringQ, err = ring.NewRing(pl.N, p.basisQ); err != nil {
		return Parameters{}, err
	}
	if p.ringQBBa, err = ring.NewRing(pl.N, p.basisQBBa); err != nil {
		return Parameters{}, err
	}

	p.deltaRNS = rns.NewScalarFromBig(p.delta, p.basisQ)

	// CRT coefficients alpha_i = (Q_q/q_i) * ((Q_q/q_i)^-1 mod q_i) mod Q_q.
	p.crtCoeffsQ = make([]*big.Int, len(qModuli))
	tmp := new(big.Int)
	for i, qi := range qModuli {
		qiBig := new(big.Int).SetUint64(qi)
		alpha := new(big.Int).Quo(qProd, qiBig)
		tmp.ModInverse(alpha, qiBig)
		alpha.Mul(alpha, tmp)
		alpha.Mod(alpha, qProd)
		p.crtCoeffsQ[i] = alpha
	}

	p.convQToQBBa = rns.NewBaseConverter(p.basisQ, p.basisQBBa)
	if p.switchQBBaToBBa, err = rns.NewModSwitcher(p.basisQBBa, qModuli); err != nil {
		return Parameters{}, err
	}
	if p.convBBaToQ, err = rns.NewExactBaseConverter(p.basisB, p.ba, p.basisQ); err != nil {
		return Parameters{}, err
	}

	p.encodeMatrix, p.decodeMatrix = genBatchMatrices(pl.N, pl.T)

	return p, nil
}

// nextNTTPrime returns the smallest prime p >= start with p = 1 mod 2n,
// or ErrBasisInfeasible if no such prime exists below the residue bound.
func nextNTTPrime(start uint64, n int) (uint64, error) {

	twoN := uint64(2 * n)

	p := start
	if rem := (p - 1) % twoN; rem != 0 {
		p += twoN - rem
	}

	for ; p < residueBound; p += twoN {
		if rns.IsPrime(p) {
			return p, nil
		}
	}

	return 0, ErrBasisInfeasible
}

// genBatchMatrices builds the slot decode matrix W^T, the Vandermonde of the
// odd powers of a 2n-th root of unity in Z_t, and the encode matrix
// E = (W^T)^-1 mod t.
func genBatchMatrices(n int, t uint64) (encode, decode [][]uint64) {

	g := rns.PrimitiveRoot(t)
	omega := rns.ModExp(g, (t-1)/uint64(2*n), t)

	decode = make([][]uint64, n)
	for k := 0; k < n; k++ {
		alpha := rns.ModExp(omega, uint64(2*k+1), t)
		decode[k] = make([]uint64, n)
		decode[k][0] = 1
		for j := 1; j < n; j++ {
			decode[k][j] = rns.MulMod(decode[k][j-1], alpha, t)
		}
	}

	encode = invertMatrixMod(decode, t)

	return
}

// invertMatrixMod returns the inverse of the square matrix m over Z_t for
// prime t, by Gauss-Jordan elimination.
func invertMatrixMod(m [][]uint64, t uint64) [][]uint64 {

	n := len(m)

	// [work | inv], work initialized to m, inv to the identity.
	work := make([][]uint64, n)
	inv := make([][]uint64, n)
	for i := range m {
		work[i] = append([]uint64{}, m[i]...)
		inv[i] = make([]uint64, n)
		inv[i][i] = 1
	}

	for col := 0; col < n; col++ {

		pivot := -1
		for row := col; row < n; row++ {
			if work[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			panic("bfv: singular batching matrix")
		}
		work[col], work[pivot] = work[pivot], work[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		pInv := rns.ModInverse(work[col][col], t)
		for j := 0; j < n; j++ {
			work[col][j] = rns.MulMod(work[col][j], pInv, t)
			inv[col][j] = rns.MulMod(inv[col][j], pInv, t)
		}

		for row := 0; row < n; row++ {
			if row == col || work[row][col] == 0 {
				continue
			}
			f := work[row][col]
			for j := 0; j < n; j++ {
				work[row][j] = rns.SubMod(work[row][j], rns.MulMod(f, work[col][j], t), t)
				inv[row][j] = rns.SubMod(inv[row][j], rns.MulMod(f, inv[col][j], t), t)
			}
		}
	}

	return inv
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.lit.N
}

// T returns the plaintext modulus.
func (p Parameters) T() uint64 {
	return p.lit.T
}

// Sigma returns the standard deviation of the error distribution.
func (p Parameters) Sigma() float64 {
	return p.lit.Sigma
}

// Ternary returns true if the secret key coefficients are sampled from
// {-1, 0, 1}, false if they are sampled from {0, 1}.
func (p Parameters) Ternary() bool {
	return p.lit.Ternary
}

// BasisQ returns the ciphertext basis q.
func (p Parameters) BasisQ() *rns.Basis {
	return p.basisQ
}

// BasisB returns the auxiliary basis B.
func (p Parameters) BasisB() *rns.Basis {
	return p.basisB
}

// BasisQBBa returns the extended basis q u B u {ba}.
func (p Parameters) BasisQBBa() *rns.Basis {
	return p.basisQBBa
}

// Ba returns the single-prime correction base.
func (p Parameters) Ba() uint64 {
	return p.ba
}

// RingQ returns the polynomial ring over the ciphertext basis.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// RingQBBa returns the polynomial ring over the extended basis.
func (p Parameters) RingQBBa() *ring.Ring {
	return p.ringQBBa
}

// Q returns the product of the ciphertext basis. The returned value is
// read-only.
func (p Parameters) Q() *big.Int {
	return p.basisQ.Product()
}

// Delta returns the plaintext scaling factor Q_q/t. The returned value is
// read-only.
func (p Parameters) Delta() *big.Int {
	return p.delta
}

// DeltaRNS returns Delta in per-modulus representation over the basis q.
func (p Parameters) DeltaRNS() rns.Scalar {
	return p.deltaRNS
}

// CRTCoefficients returns the CRT coefficients alpha_i of the basis q. The
// returned values are read-only.
func (p Parameters) CRTCoefficients() []*big.Int {
	return p.crtCoeffsQ
}

// Equal returns true if the two parameter sets were built from the same
// literal. Since the construction is deterministic, equal literals imply
// equal precomputations.
func (p Parameters) Equal(other Parameters) bool {
	return p.lit == other.lit
}

// MarshalJSON marshals the receiver into a JSON representation of its
// literal.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.lit)
}

// UnmarshalJSON reads a JSON literal representation on the receiver and
// rebuilds the full parameter set from it.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var pl ParametersLiteral
	if err := json.Unmarshal(data, &pl); err != nil {
		return err
	}
	params, err := NewParametersFromLiteral(pl)
	if err != nil {
		return err
	}
	*p = params
	return nil
}
