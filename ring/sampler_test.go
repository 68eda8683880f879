package ring

import (
	"math/big"
	"testing"

	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

func TestUniformSampler(t *testing.T) {

	r := testRing(t, 16, []uint64{97, 101, 103})

	s := NewUniformSampler(sampling.NewSeededPRNG([]byte("uniform")), r)
	pol := s.ReadNew()

	for i := 0; i < r.N; i++ {
		for j, qi := range r.Basis.Moduli() {
			require.Less(t, pol.Coeffs[i].Residues[j], qi)
		}
	}

	// Same seed, same polynomial.
	s2 := NewUniformSampler(sampling.NewSeededPRNG([]byte("uniform")), r)
	require.True(t, pol.Equal(s2.ReadNew()))

	// Different seed, different polynomial.
	s3 := NewUniformSampler(sampling.NewSeededPRNG([]byte("other")), r)
	require.False(t, pol.Equal(s3.ReadNew()))
}

func TestTernarySampler(t *testing.T) {

	r := testRing(t, 64, []uint64{97, 101})

	s := NewTernarySampler(sampling.NewSeededPRNG([]byte("ternary")), r)
	pol := s.ReadNew()

	seen := map[int64]bool{}
	for _, c := range r.PolyToBigintCentered(pol) {
		v := c.Int64()
		require.True(t, v >= -1 && v <= 1)
		seen[v] = true
	}
	require.True(t, len(seen) > 1, "64 draws should hit more than one value")
}

func TestBinarySampler(t *testing.T) {

	r := testRing(t, 64, []uint64{97, 101})

	s := NewBinarySampler(sampling.NewSeededPRNG([]byte("binary")), r)
	pol := s.ReadNew()

	for _, c := range r.PolyToBigint(pol) {
		v := c.Int64()
		require.True(t, v == 0 || v == 1)
	}
}

func TestGaussianSampler(t *testing.T) {

	const (
		sigma = 3.2
		bound = 6 * sigma
	)

	r := testRing(t, 4096, []uint64{4294967291})

	s := NewGaussianSampler(sampling.NewSeededPRNG([]byte("gaussian")), r, sigma, bound)
	pol := s.ReadNew()

	values := make([]float64, r.N)
	for i, c := range r.PolyToBigintCentered(pol) {
		v := float64(c.Int64())
		require.LessOrEqual(t, v, bound)
		require.GreaterOrEqual(t, v, -bound)
		values[i] = v
	}

	mean, err := stats.Mean(values)
	require.NoError(t, err)
	require.InDelta(t, 0, mean, 0.5)

	std, err := stats.StandardDeviation(values)
	require.NoError(t, err)
	require.InDelta(t, sigma, std, 0.3)
}

func TestGaussianSamplerSmallNorm(t *testing.T) {

	// With the basis product far above the bound, sampled coefficients must
	// reconstruct to small centered integers.
	r := testRing(t, 16, []uint64{97, 101, 103})

	s := NewGaussianSampler(sampling.NewSeededPRNG([]byte("gaussian")), r, 3.2, 19.2)
	pol := s.ReadNew()

	bound := big.NewInt(20)
	for _, c := range r.PolyToBigintCentered(pol) {
		require.LessOrEqual(t, c.CmpAbs(bound), 0)
	}
}
