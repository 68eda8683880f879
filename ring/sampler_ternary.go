package ring

import (
	"github.com/alibillalhammoud/FHEforEEs/rns"
	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// TernarySampler samples polynomials with coefficients uniform in {-1, 0, 1}.
type TernarySampler struct {
	baseSampler
}

// NewTernarySampler creates a new instance of TernarySampler from a PRNG and
// a ring definition.
func NewTernarySampler(prng sampling.PRNG, baseRing *Ring) *TernarySampler {
	return &TernarySampler{baseSampler: newBaseSampler(prng, baseRing)}
}

// Read samples a polynomial with coefficients uniform in {-1, 0, 1} on pol.
func (s *TernarySampler) Read(pol *Poly) {
	s.baseRing.checkPoly(pol)

	for i := 0; i < s.baseRing.N; i++ {
		var v uint64
		for {
			v = s.randUint64() & 3
			if v < 3 {
				break
			}
		}
		pol.Coeffs[i] = rns.NewIntegerFromInt64(int64(v)-1, s.baseRing.Basis)
	}
}

// ReadNew samples a new polynomial with coefficients uniform in {-1, 0, 1}.
func (s *TernarySampler) ReadNew() *Poly {
	pol := s.baseRing.NewPoly()
	s.Read(pol)
	return pol
}

// BinarySampler samples polynomials with coefficients uniform in {0, 1}.
type BinarySampler struct {
	baseSampler
}

// NewBinarySampler creates a new instance of BinarySampler from a PRNG and a
// ring definition.
func NewBinarySampler(prng sampling.PRNG, baseRing *Ring) *BinarySampler {
	return &BinarySampler{baseSampler: newBaseSampler(prng, baseRing)}
}

// Read samples a polynomial with coefficients uniform in {0, 1} on pol.
func (s *BinarySampler) Read(pol *Poly) {
	s.baseRing.checkPoly(pol)

	for i := 0; i < s.baseRing.N; i++ {
		pol.Coeffs[i] = rns.NewIntegerFromUint64(s.randUint64()&1, s.baseRing.Basis)
	}
}

// ReadNew samples a new polynomial with coefficients uniform in {0, 1}.
func (s *BinarySampler) ReadNew() *Poly {
	pol := s.baseRing.NewPoly()
	s.Read(pol)
	return pol
}
