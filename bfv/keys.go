package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/ring"
)

// SecretKey is a structure storing the secret key: a ring element over the
// basis q with coefficients sampled from the configured small distribution.
// It never leaves the client.
type SecretKey struct {
	Value *ring.Poly
}

// RelinearizationKey is the evaluation key used to collapse a degree-2
// ciphertext back to a pair. Entry i is a fresh RLWE encryption of
// alpha_i * S^2, where alpha_i is the i-th CRT coefficient of the basis q.
// It is shared with the server and read-only thereafter.
type RelinearizationKey struct {
	Keys []*Ciphertext
}

// CopyNew creates a deep copy of the target relinearization key.
func (rlk *RelinearizationKey) CopyNew() *RelinearizationKey {
	keys := make([]*Ciphertext, len(rlk.Keys))
	for i := range rlk.Keys {
		keys[i] = rlk.Keys[i].CopyNew()
	}
	return &RelinearizationKey{Keys: keys}
}

// Equal returns true if the two relinearization keys are equal entry-wise.
func (rlk *RelinearizationKey) Equal(other *RelinearizationKey) bool {
	if other == nil || len(rlk.Keys) != len(other.Keys) {
		return false
	}
	for i := range rlk.Keys {
		if !rlk.Keys[i].Equal(other.Keys[i]) {
			return false
		}
	}
	return true
}
