package ring

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/alibillalhammoud/FHEforEEs/rns"
	"github.com/stretchr/testify/require"
)

func testRing(t *testing.T, N int, moduli []uint64) *Ring {
	basis, err := rns.NewBasis(moduli)
	require.NoError(t, err)
	r, err := NewRing(N, basis)
	require.NoError(t, err)
	return r
}

func randomBigCoeffs(r *rand.Rand, N int, Q *big.Int) []*big.Int {
	coeffs := make([]*big.Int, N)
	for i := range coeffs {
		coeffs[i] = new(big.Int).Rand(r, Q)
	}
	return coeffs
}

// mulPolyNaiveRef computes a * b mod X^N + 1 over big integers.
func mulPolyNaiveRef(a, b []*big.Int, Q *big.Int) []*big.Int {
	N := len(a)
	out := make([]*big.Int, N)
	for i := range out {
		out[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			tmp.Mul(a[i], b[j])
			if k := i + j; k < N {
				out[k].Add(out[k], tmp)
			} else {
				out[k-N].Sub(out[k-N], tmp)
			}
		}
	}
	for i := range out {
		out[i].Mod(out[i], Q)
	}
	return out
}

func TestNewRing(t *testing.T) {

	basis, err := rns.NewBasis([]uint64{97})
	require.NoError(t, err)

	_, err = NewRing(8, basis)
	require.NoError(t, err)

	_, err = NewRing(12, basis)
	require.Error(t, err, "degree must be a power of two")

	_, err = NewRing(0, basis)
	require.Error(t, err)

	_, err = NewRing(8, nil)
	require.Error(t, err)
}

func TestRingCoefficientOps(t *testing.T) {

	r := testRing(t, 8, []uint64{97, 101, 103})
	Q := r.Basis.Product()
	rng := rand.New(rand.NewSource(0x5eed))

	aBig := randomBigCoeffs(rng, r.N, Q)
	bBig := randomBigCoeffs(rng, r.N, Q)

	a := r.NewPoly()
	b := r.NewPoly()
	r.SetCoefficientsBigint(aBig, a)
	r.SetCoefficientsBigint(bBig, b)

	t.Run("Add", func(t *testing.T) {
		out := r.NewPoly()
		r.Add(a, b, out)
		for i, c := range r.PolyToBigint(out) {
			want := new(big.Int).Add(aBig[i], bBig[i])
			want.Mod(want, Q)
			require.Equal(t, want, c)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		out := r.NewPoly()
		r.Sub(a, b, out)
		for i, c := range r.PolyToBigint(out) {
			want := new(big.Int).Sub(aBig[i], bBig[i])
			want.Mod(want, Q)
			require.Equal(t, want, c)
		}
	})

	t.Run("Neg", func(t *testing.T) {
		out := r.NewPoly()
		r.Neg(a, out)
		for i, c := range r.PolyToBigint(out) {
			want := new(big.Int).Neg(aBig[i])
			want.Mod(want, Q)
			require.Equal(t, want, c)
		}
	})

	t.Run("MulScalar", func(t *testing.T) {
		out := r.NewPoly()
		r.MulScalar(a, 12345, out)
		for i, c := range r.PolyToBigint(out) {
			want := new(big.Int).Mul(aBig[i], big.NewInt(12345))
			want.Mod(want, Q)
			require.Equal(t, want, c)
		}
	})

	t.Run("MulScalarBigint", func(t *testing.T) {
		scalar := new(big.Int).Rand(rng, Q)
		out := r.NewPoly()
		r.MulScalarBigint(a, scalar, out)
		for i, c := range r.PolyToBigint(out) {
			want := new(big.Int).Mul(aBig[i], scalar)
			want.Mod(want, Q)
			require.Equal(t, want, c)
		}
	})
}

func TestRingMulPolyNaive(t *testing.T) {

	r := testRing(t, 8, []uint64{97, 101, 103})
	Q := r.Basis.Product()
	rng := rand.New(rand.NewSource(0x5eed))

	t.Run("Random", func(t *testing.T) {
		for trial := 0; trial < 10; trial++ {
			aBig := randomBigCoeffs(rng, r.N, Q)
			bBig := randomBigCoeffs(rng, r.N, Q)

			a := r.NewPoly()
			b := r.NewPoly()
			r.SetCoefficientsBigint(aBig, a)
			r.SetCoefficientsBigint(bBig, b)

			out := r.MulPolyNaiveNew(a, b)
			require.Equal(t, mulPolyNaiveRef(aBig, bBig, Q), r.PolyToBigint(out))
		}
	})

	t.Run("NegacyclicWrap", func(t *testing.T) {
		// X^(N-1) * X = X^N = -1 mod X^N + 1
		a := r.NewPoly()
		b := r.NewPoly()
		aCoeffs := make([]uint64, r.N)
		bCoeffs := make([]uint64, r.N)
		aCoeffs[r.N-1] = 1
		bCoeffs[1] = 1
		r.SetCoefficientsUint64(aCoeffs, a)
		r.SetCoefficientsUint64(bCoeffs, b)

		out := r.MulPolyNaiveNew(a, b)
		coeffs := r.PolyToBigint(out)
		want := new(big.Int).Sub(Q, big.NewInt(1))
		require.Equal(t, want, coeffs[0])
		for i := 1; i < r.N; i++ {
			require.Zero(t, coeffs[i].Sign())
		}
	})

	t.Run("Aliased", func(t *testing.T) {
		aBig := randomBigCoeffs(rng, r.N, Q)
		a := r.NewPoly()
		r.SetCoefficientsBigint(aBig, a)

		want := mulPolyNaiveRef(aBig, aBig, Q)
		r.MulPolyNaive(a, a, a)
		require.Equal(t, want, r.PolyToBigint(a))
	})
}

func TestRingDegreeMismatchPanics(t *testing.T) {

	r := testRing(t, 8, []uint64{97})
	small := testRing(t, 4, []uint64{97})

	p := small.NewPoly()
	require.Panics(t, func() { r.Add(p, p, p) })
}
