package ring

import (
	"math/bits"

	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// UniformSampler samples polynomials with coefficients uniform in [0, Q),
// one independent uniform residue per modulus.
type UniformSampler struct {
	baseSampler
	masks []uint64
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and
// a ring definition.
func NewUniformSampler(prng sampling.PRNG, baseRing *Ring) *UniformSampler {
	s := &UniformSampler{baseSampler: newBaseSampler(prng, baseRing)}
	s.masks = make([]uint64, baseRing.Basis.Len())
	for j, qi := range baseRing.Basis.Moduli() {
		s.masks[j] = (1 << uint64(bits.Len64(qi))) - 1
	}
	return s
}

// Read samples a polynomial with coefficients uniform in [0, Q) on pol.
func (s *UniformSampler) Read(pol *Poly) {
	s.baseRing.checkPoly(pol)

	for j, qi := range s.baseRing.Basis.Moduli() {
		mask := s.masks[j]
		for i := 0; i < s.baseRing.N; i++ {
			var v uint64
			for {
				v = s.randUint64() & mask
				if v < qi {
					break
				}
			}
			pol.Coeffs[i].Residues[j] = v
		}
	}
}

// ReadNew samples a new polynomial with coefficients uniform in [0, Q).
func (s *UniformSampler) ReadNew() *Poly {
	pol := s.baseRing.NewPoly()
	s.Read(pol)
	return pol
}
