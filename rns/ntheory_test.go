package rns

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	for _, p := range []uint64{2, 3, 257, 65537, 4294967291} {
		require.True(t, IsPrime(p), "%d should be prime", p)
	}
	for _, c := range []uint64{0, 1, 4, 255, 65535, 4294967295} {
		require.False(t, IsPrime(c), "%d should be composite", c)
	}
}

func TestModExp(t *testing.T) {
	require.Equal(t, uint64(1), ModExp(3, 0, 257))
	require.Equal(t, uint64(3), ModExp(3, 1, 257))
	require.Equal(t, uint64(1), ModExp(3, 256, 257)) // Fermat
	require.Equal(t, uint64(256), ModExp(3, 128, 257))
}

func TestModInverse(t *testing.T) {
	for _, q := range []uint64{257, 65537, 4294967291} {
		for _, a := range []uint64{1, 2, 123, q - 1} {
			inv := ModInverse(a, q)
			require.Equal(t, uint64(1), MulMod(a, inv, q))
		}
	}
	require.Panics(t, func() { ModInverse(6, 9) })
}

func TestPrimitiveRoot(t *testing.T) {

	for _, p := range []uint64{257, 65537, 1073750017} {

		g := PrimitiveRoot(p)

		// g generates the full multiplicative group iff g^((p-1)/f) != 1
		// for every prime factor f of p-1.
		for _, f := range primeFactors(p - 1) {
			require.NotEqual(t, uint64(1), ModExp(g, (p-1)/f, p))
		}
		require.Equal(t, uint64(1), ModExp(g, p-1, p))
	}
}

func TestCRTReconstruct(t *testing.T) {

	moduli := []uint64{13, 17, 19, 23}

	prod := new(big.Int).SetUint64(13 * 17 * 19 * 23)
	r := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {

		x := new(big.Int).Rand(r, prod)

		residues := make([]uint64, len(moduli))
		tmp := new(big.Int)
		for i, m := range moduli {
			residues[i] = tmp.Mod(x, tmp.SetUint64(m)).Uint64()
		}

		require.Equal(t, x, CRTReconstruct(residues, moduli, false))

		centered := CRTReconstruct(residues, moduli, true)
		half := new(big.Int).Rsh(prod, 1)
		require.True(t, centered.Cmp(half) <= 0)
		diff := new(big.Int).Sub(centered, x)
		require.Zero(t, new(big.Int).Mod(diff, prod).Sign())
	}
}
