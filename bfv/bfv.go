// Package bfv implements an RNS-accelerated Fan-Vercauteren version of
// Brakerski's scale-invariant homomorphic encryption scheme. It provides
// modular arithmetic over encrypted vectors of integers: a client encrypts
// length-n vectors over Z_t, an untrusted server evaluates additions and
// multiplications over the ciphertexts, and the client decrypts the result.
package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// Client holds the key material of the owner of the data: the secret key,
// the derived relinearization key, and the encryption and decryption
// engines.
type Client struct {
	params Parameters

	sk  *SecretKey
	rlk *RelinearizationKey

	encryptor *Encryptor
	decryptor *Decryptor
}

// NewClient creates a new Client with a fresh secret key and
// relinearization key, drawing its randomness from crypto/rand.
func NewClient(params Parameters) (*Client, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, err
	}
	return newClient(params, prng), nil
}

// NewClientWithSeed creates a new Client whose key material and encryption
// randomness are derived deterministically from the provided seed.
func NewClientWithSeed(params Parameters, seed []byte) *Client {
	return newClient(params, sampling.NewSeededPRNG(seed))
}

func newClient(params Parameters, prng sampling.PRNG) *Client {

	kgen := NewKeyGenerator(params, prng)
	sk := kgen.GenSecretKey()

	return &Client{
		params:    params,
		sk:        sk,
		rlk:       kgen.GenRelinearizationKey(sk),
		encryptor: NewEncryptor(params, sk, prng),
		decryptor: NewDecryptor(params, sk),
	}
}

// Parameters returns the parameters of the client.
func (c *Client) Parameters() Parameters {
	return c.params
}

// RelinearizationKey returns the evaluation key to be shared with the
// server. The returned key is read-only.
func (c *Client) RelinearizationKey() *RelinearizationKey {
	return c.rlk
}

// Encrypt encrypts a vector of n slot values over Z_t and returns the
// ciphertext. Two encryptions of the same vector are element-wise distinct
// with overwhelming probability, but both decrypt to the same vector.
func (c *Client) Encrypt(values []uint64) *Ciphertext {
	return c.encryptor.EncryptNew(values)
}

// Decrypt decrypts a ciphertext and returns the vector of its n slot
// values.
func (c *Client) Decrypt(ct *Ciphertext) []uint64 {
	return c.decryptor.DecryptNew(ct)
}

// NoiseBudget returns an estimate, in bits, of the remaining noise budget
// of the ciphertext.
func (c *Client) NoiseBudget(ct *Ciphertext) float64 {
	return c.decryptor.NoiseBudget(ct)
}

// Server evaluates arithmetic circuits over ciphertexts. It holds no key
// material beyond the public parameters; the relinearization key is
// provided by the caller on multiplication.
type Server struct {
	params    Parameters
	evaluator *Evaluator
}

// NewServer creates a new Server from the provided parameters.
func NewServer(params Parameters) *Server {
	return &Server{params: params, evaluator: NewEvaluator(params)}
}

// Parameters returns the parameters of the server.
func (s *Server) Parameters() Parameters {
	return s.params
}

// Add returns the ciphertext encrypting the slot-wise sum of the two input
// ciphertexts.
func (s *Server) Add(ct0, ct1 *Ciphertext) *Ciphertext {
	return s.evaluator.AddNew(ct0, ct1)
}

// Sub returns the ciphertext encrypting the slot-wise difference of the two
// input ciphertexts.
func (s *Server) Sub(ct0, ct1 *Ciphertext) *Ciphertext {
	return s.evaluator.SubNew(ct0, ct1)
}

// AddPlain returns the ciphertext encrypting the slot-wise sum of the input
// ciphertext and the plaintext vector.
func (s *Server) AddPlain(ct *Ciphertext, values []int64) *Ciphertext {
	return s.evaluator.AddPlainNew(ct, values)
}

// MulPlain returns the ciphertext encrypting the slot-wise product of the
// input ciphertext and the plaintext vector.
func (s *Server) MulPlain(ct *Ciphertext, values []int64) *Ciphertext {
	return s.evaluator.MulPlainNew(ct, values)
}

// Mul returns the ciphertext encrypting the slot-wise product of the two
// input ciphertexts, relinearized with the provided key.
func (s *Server) Mul(ct0, ct1 *Ciphertext, rlk *RelinearizationKey) *Ciphertext {
	return s.evaluator.MulNew(ct0, ct1, rlk)
}
