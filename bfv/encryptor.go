package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/ring"
	"github.com/alibillalhammoud/FHEforEEs/rns"
	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// Encryptor is a structure holding the secret key and the samplers needed
// to encrypt plaintext vectors.
type Encryptor struct {
	params  Parameters
	encoder *Encoder
	sk      *SecretKey

	uniform  *ring.UniformSampler
	gaussian *ring.GaussianSampler
}

// NewEncryptor creates a new Encryptor for the provided secret key, drawing
// its randomness from the provided PRNG.
func NewEncryptor(params Parameters, sk *SecretKey, prng sampling.PRNG) *Encryptor {
	ringQ := params.RingQ()
	return &Encryptor{
		params:   params,
		encoder:  NewEncoder(params),
		sk:       sk,
		uniform:  ring.NewUniformSampler(prng, ringQ),
		gaussian: ring.NewGaussianSampler(prng, ringQ, params.Sigma(), 6*params.Sigma()),
	}
}

// EncryptNew encodes the input vector of n slot values, scales it by Delta
// and encrypts it, returning the result on a new ciphertext.
func (enc *Encryptor) EncryptNew(values []uint64) *Ciphertext {

	m := enc.encoder.EncodeUint(values)

	// X = Delta * M mod Q_q
	x := enc.params.RingQ().NewPoly()
	for i, mi := range m {
		x.Coeffs[i] = rns.NewIntegerFromUint64(mi, enc.params.BasisQ()).MulScalar(enc.params.DeltaRNS())
	}

	return rlweEncrypt(enc.params, enc.uniform, enc.gaussian, enc.sk, x)
}

// rlweEncrypt encrypts the integer-coefficient polynomial x under sk:
// A is uniform in [0, Q_q)^n, E is a small Gaussian error, and
// B = -A*S + x + E mod Q_q.
func rlweEncrypt(params Parameters, uniform *ring.UniformSampler, gaussian *ring.GaussianSampler, sk *SecretKey, x *ring.Poly) *Ciphertext {

	ringQ := params.RingQ()
	ct := NewCiphertext(params)

	uniform.Read(ct.A)

	ringQ.MulPolyNaive(ct.A, sk.Value, ct.B)
	ringQ.Neg(ct.B, ct.B)
	ringQ.Add(ct.B, x, ct.B)

	e := gaussian.ReadNew()
	ringQ.Add(ct.B, e, ct.B)

	return ct
}
