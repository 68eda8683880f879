package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/ring"
	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// KeyGenerator generates the secret key and the relinearization key.
type KeyGenerator struct {
	params Parameters

	ternary  *ring.TernarySampler
	binary   *ring.BinarySampler
	uniform  *ring.UniformSampler
	gaussian *ring.GaussianSampler
}

// NewKeyGenerator creates a new KeyGenerator drawing its randomness from
// the provided PRNG.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	ringQ := params.RingQ()
	return &KeyGenerator{
		params:   params,
		ternary:  ring.NewTernarySampler(prng, ringQ),
		binary:   ring.NewBinarySampler(prng, ringQ),
		uniform:  ring.NewUniformSampler(prng, ringQ),
		gaussian: ring.NewGaussianSampler(prng, ringQ, params.Sigma(), 6*params.Sigma()),
	}
}

// GenSecretKey samples a new secret key from the configured small
// distribution.
func (kgen *KeyGenerator) GenSecretKey() *SecretKey {
	if kgen.params.Ternary() {
		return &SecretKey{Value: kgen.ternary.ReadNew()}
	}
	return &SecretKey{Value: kgen.binary.ReadNew()}
}

// GenRelinearizationKey generates the relinearization key for the provided
// secret key: one RLWE encryption of alpha_i * S^2 per modulus of the
// basis q.
func (kgen *KeyGenerator) GenRelinearizationKey(sk *SecretKey) *RelinearizationKey {

	ringQ := kgen.params.RingQ()

	s2 := ringQ.MulPolyNaiveNew(sk.Value, sk.Value)

	keys := make([]*Ciphertext, kgen.params.BasisQ().Len())

	x := ringQ.NewPoly()
	for i, alpha := range kgen.params.CRTCoefficients() {
		ringQ.MulScalarBigint(s2, alpha, x)
		keys[i] = rlweEncrypt(kgen.params, kgen.uniform, kgen.gaussian, sk, x)
	}

	return &RelinearizationKey{Keys: keys}
}
