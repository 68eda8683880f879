package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/ring"
)

// Ciphertext is an RLWE ciphertext pair (A, B) of ring elements over the
// basis q. A fresh encryption of a plaintext polynomial M satisfies
// B + A*S = Delta*M + E mod Q_q for the secret key S and a small error E.
type Ciphertext struct {
	A *ring.Poly
	B *ring.Poly
}

// NewCiphertext creates a new zero ciphertext over the ciphertext ring of
// the provided parameters.
func NewCiphertext(params Parameters) *Ciphertext {
	return &Ciphertext{
		A: params.RingQ().NewPoly(),
		B: params.RingQ().NewPoly(),
	}
}

// CopyNew creates a deep copy of the target ciphertext.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{A: ct.A.CopyNew(), B: ct.B.CopyNew()}
}

// Equal returns true if the two ciphertexts are equal element-wise.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return other != nil && ct.A.Equal(other.A) && ct.B.Equal(other.B)
}
