package ring

import (
	"math"

	"github.com/alibillalhammoud/FHEforEEs/rns"
	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// GaussianSampler samples polynomials with integer coefficients drawn from a
// rounded centered Gaussian of the given standard deviation, truncated to
// the given bound in absolute value.
type GaussianSampler struct {
	baseSampler
	sigma    float64
	bound    float64
	spare    float64
	hasSpare bool
}

// NewGaussianSampler creates a new instance of GaussianSampler from a PRNG,
// a ring definition, the standard deviation and the truncation bound.
func NewGaussianSampler(prng sampling.PRNG, baseRing *Ring, sigma, bound float64) *GaussianSampler {
	return &GaussianSampler{baseSampler: newBaseSampler(prng, baseRing), sigma: sigma, bound: bound}
}

// Read samples a truncated Gaussian polynomial on pol.
func (g *GaussianSampler) Read(pol *Poly) {
	g.baseRing.checkPoly(pol)

	for i := 0; i < g.baseRing.N; i++ {
		var z float64
		for {
			z = g.normFloat64() * g.sigma
			if math.Abs(z) <= g.bound {
				break
			}
		}
		pol.Coeffs[i] = rns.NewIntegerFromInt64(int64(math.Round(z)), g.baseRing.Basis)
	}
}

// ReadNew samples a new truncated Gaussian polynomial.
func (g *GaussianSampler) ReadNew() *Poly {
	pol := g.baseRing.NewPoly()
	g.Read(pol)
	return pol
}

// normFloat64 returns a normally distributed float64 with mean 0 and
// standard deviation 1, using the Box-Muller transform over the sampler's
// random source.
func (g *GaussianSampler) normFloat64() float64 {

	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}

	var u1 float64
	for u1 == 0 {
		u1 = g.randFloat64()
	}
	u2 := g.randFloat64()

	radius := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2

	g.spare = radius * math.Sin(theta)
	g.hasSpare = true

	return radius * math.Cos(theta)
}
