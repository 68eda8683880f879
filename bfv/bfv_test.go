package bfv

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alibillalhammoud/FHEforEEs/rns"
	"github.com/stretchr/testify/require"
)

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/N=%d/T=%d/Qi=%d", opname, p.N(), p.T(), p.BasisQ().Len())
}

type testContext struct {
	params Parameters
	client *Client
	server *Server
}

func genTestContext(t *testing.T) *testContext {

	params, err := NewParametersFromLiteral(testParametersLiteral)
	require.NoError(t, err)

	return &testContext{
		params: params,
		client: NewClientWithSeed(params, []byte("bfv test vectors")),
		server: NewServer(params),
	}
}

func TestBFV(t *testing.T) {

	tc := genTestContext(t)

	for _, testSet := range []func(tc *testContext, t *testing.T){
		testEncryptDecrypt,
		testReferenceScenarios,
		testEvaluatorRandom,
		testNoiseBudget,
		testDeterministicClient,
	} {
		testSet(tc, t)
	}
}

func testEncryptDecrypt(tc *testContext, t *testing.T) {

	params, client := tc.params, tc.client

	t.Run(testString("EncryptDecrypt", params), func(t *testing.T) {

		r := rand.New(rand.NewSource(0x5eed))
		for trial := 0; trial < 5; trial++ {
			v := randomSlots(r, params.N(), params.T())
			require.Equal(t, v, client.Decrypt(client.Encrypt(v)))
		}
	})

	t.Run(testString("FreshCiphertextsDiffer", params), func(t *testing.T) {

		v := []uint64{1, 2, 3, 4, 5, 6, 7, 8}

		ct0 := client.Encrypt(v)
		ct1 := client.Encrypt(v)

		// Fresh randomness: element-wise distinct with overwhelming
		// probability, yet both decrypt to the same vector.
		for i := 0; i < params.N(); i++ {
			require.False(t, ct0.A.Coeffs[i].Equal(ct1.A.Coeffs[i]))
		}
		require.Equal(t, v, client.Decrypt(ct0))
		require.Equal(t, v, client.Decrypt(ct1))
	})
}

// testReferenceScenarios runs the concrete end-to-end scenarios for
// t = 257, n = 8.
func testReferenceScenarios(tc *testContext, t *testing.T) {

	params, client, server := tc.params, tc.client, tc.server

	v1 := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	v2 := []uint64{2, 3, 4, 5, 4, 3, 2, 3}
	p := []int64{1, 2, 3, 4, 5, 6, 7, 8}

	c1 := client.Encrypt(v1)
	c2 := client.Encrypt(v2)

	t.Run(testString("Add", params), func(t *testing.T) {
		require.Equal(t, []uint64{3, 5, 7, 9, 9, 9, 9, 11}, client.Decrypt(server.Add(c1, c2)))
	})

	t.Run(testString("AddPlain", params), func(t *testing.T) {
		require.Equal(t, []uint64{2, 4, 6, 8, 10, 12, 14, 16}, client.Decrypt(server.AddPlain(c1, p)))
	})

	t.Run(testString("MulPlain", params), func(t *testing.T) {
		require.Equal(t, []uint64{1, 4, 9, 16, 25, 36, 49, 64}, client.Decrypt(server.MulPlain(c1, p)))
	})

	t.Run(testString("Mul", params), func(t *testing.T) {
		require.Equal(t, []uint64{2, 6, 12, 20, 20, 18, 14, 24},
			client.Decrypt(server.Mul(c1, c2, client.RelinearizationKey())))
	})
}

func testEvaluatorRandom(tc *testContext, t *testing.T) {

	params, client, server := tc.params, tc.client, tc.server
	tMod := params.T()

	r := rand.New(rand.NewSource(0x5eed))

	v1 := randomSlots(r, params.N(), tMod)
	v2 := randomSlots(r, params.N(), tMod)

	c1 := client.Encrypt(v1)
	c2 := client.Encrypt(v2)

	t.Run(testString("AddRandom", params), func(t *testing.T) {
		want := make([]uint64, params.N())
		for i := range want {
			want[i] = rns.AddMod(v1[i], v2[i], tMod)
		}
		require.Equal(t, want, client.Decrypt(server.Add(c1, c2)))
	})

	t.Run(testString("SubRandom", params), func(t *testing.T) {
		want := make([]uint64, params.N())
		for i := range want {
			want[i] = rns.SubMod(v1[i], v2[i], tMod)
		}
		require.Equal(t, want, client.Decrypt(server.Sub(c1, c2)))
	})

	t.Run(testString("AddPlainNegative", params), func(t *testing.T) {
		// Signed calibration offsets, as applied to sensor readings.
		calibration := make([]int64, params.N())
		for i := range calibration {
			calibration[i] = r.Int63n(5) - 2
		}
		want := make([]uint64, params.N())
		for i := range want {
			c := calibration[i] % int64(tMod)
			if c < 0 {
				c += int64(tMod)
			}
			want[i] = rns.AddMod(v1[i], uint64(c), tMod)
		}
		require.Equal(t, want, client.Decrypt(server.AddPlain(c1, calibration)))
	})

	t.Run(testString("MulRandom", params), func(t *testing.T) {
		want := make([]uint64, params.N())
		for i := range want {
			want[i] = rns.MulMod(v1[i], v2[i], tMod)
		}
		require.Equal(t, want, client.Decrypt(server.Mul(c1, c2, client.RelinearizationKey())))
	})

	t.Run(testString("MulThenAdd", params), func(t *testing.T) {
		// (v1*v2 + v1) mod t, exercising a fresh ciphertext against a
		// multiplied one.
		prod := server.Mul(c1, c2, client.RelinearizationKey())
		want := make([]uint64, params.N())
		for i := range want {
			want[i] = rns.AddMod(rns.MulMod(v1[i], v2[i], tMod), v1[i], tMod)
		}
		require.Equal(t, want, client.Decrypt(server.Add(prod, c1)))
	})
}

func testNoiseBudget(tc *testContext, t *testing.T) {

	params, client, server := tc.params, tc.client, tc.server

	t.Run(testString("NoiseBudget", params), func(t *testing.T) {

		v := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
		ct := client.Encrypt(v)

		fresh := client.NoiseBudget(ct)
		require.Positive(t, fresh)

		prod := server.Mul(ct, ct, client.RelinearizationKey())
		afterMul := client.NoiseBudget(prod)

		require.Less(t, afterMul, fresh, "multiplication consumes noise budget")
		require.Positive(t, afterMul, "parameters leave budget after one multiplication")
	})
}

func TestTernarySecretKey(t *testing.T) {

	pl := testParametersLiteral
	pl.Ternary = true

	params, err := NewParametersFromLiteral(pl)
	require.NoError(t, err)

	client := NewClientWithSeed(params, []byte("ternary"))
	server := NewServer(params)

	v1 := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	v2 := []uint64{2, 3, 4, 5, 4, 3, 2, 3}

	c1 := client.Encrypt(v1)
	c2 := client.Encrypt(v2)

	require.Equal(t, v1, client.Decrypt(c1))
	require.Equal(t, []uint64{2, 6, 12, 20, 20, 18, 14, 24},
		client.Decrypt(server.Mul(c1, c2, client.RelinearizationKey())))
}

func testDeterministicClient(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString("SeededClient", params), func(t *testing.T) {

		v := []uint64{42, 0, 256, 1, 2, 3, 4, 5}

		c0 := NewClientWithSeed(params, []byte("seed"))
		c1 := NewClientWithSeed(params, []byte("seed"))

		// Same seed: same random tape, hence identical ciphertexts.
		require.True(t, c0.Encrypt(v).Equal(c1.Encrypt(v)))
		require.True(t, c0.RelinearizationKey().Equal(c1.RelinearizationKey()))

		// A differently seeded client still interoperates at the plaintext
		// level with its own key material.
		c2 := NewClientWithSeed(params, []byte("another seed"))
		require.Equal(t, v, c2.Decrypt(c2.Encrypt(v)))
	})
}
