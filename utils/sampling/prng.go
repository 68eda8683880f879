// Package sampling provides the pseudo-random number generators used by the
// polynomial samplers.
package sampling

import (
	"crypto/rand"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure (keyed) deterministic generation of random
// bytes. Implementations of this interface must be safe to re-read from the
// beginning only by reconstructing them with the same key.
type PRNG interface {
	io.Reader
}

// KeyedPRNG is a structure storing the parameters used to securely and
// deterministically generate shared sequences of random bytes among different
// parties using the XOF blake2b. The blake2b XOF delivers 2^64 bytes per key.
type KeyedPRNG struct {
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG. Accepts an optional key,
// else set key=nil which is treated as key=[]byte{}.
// WARNING: A PRNG INITIALISED WITH key=nil IS INSECURE!
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = key
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// NewPRNG creates a new instance of KeyedPRNG keyed with 64 bytes sampled
// from crypto/rand.
func NewPRNG() (*KeyedPRNG, error) {
	key := make([]byte, 64)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return NewKeyedPRNG(key)
}

// NewSeededPRNG creates a new instance of KeyedPRNG deterministically keyed
// from an arbitrary-length seed, which is hashed with blake3 into a
// fixed-size XOF key. Two instances created from the same seed produce the
// same stream of bytes.
func NewSeededPRNG(seed []byte) *KeyedPRNG {
	key := blake3.Sum512(seed)
	prng, err := NewKeyedPRNG(key[:])
	if err != nil {
		// Sanity check: a 64-byte key is always valid for the blake2b XOF.
		panic(err)
	}
	return prng
}

// Key returns a copy of the key used to seed the PRNG.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.xof.Reset()
}
