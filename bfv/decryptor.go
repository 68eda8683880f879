package bfv

import (
	"math/big"
)

// Decryptor is a structure used to decrypt ciphertexts. It stores the
// secret key.
type Decryptor struct {
	params  Parameters
	encoder *Encoder
	sk      *SecretKey
}

// NewDecryptor creates a new Decryptor for the provided secret key.
func NewDecryptor(params Parameters, sk *SecretKey) *Decryptor {
	return &Decryptor{params: params, encoder: NewEncoder(params), sk: sk}
}

// DecryptNew decrypts the input ciphertext and returns the vector of its n
// slot values. If the ciphertext noise exceeds Delta/2 the returned values
// are silently wrong; staying below that bound is a parameter-choice
// concern, not a runtime check.
func (dec *Decryptor) DecryptNew(ct *Ciphertext) []uint64 {

	u := dec.phase(ct)

	delta := dec.params.Delta()
	halfDelta := new(big.Int).Rsh(delta, 1)
	tBig := new(big.Int).SetUint64(dec.params.T())

	m := make([]uint64, dec.params.N())
	tmp := new(big.Int)
	for i, ui := range u {
		// Nearest multiple of Delta, then mod t.
		tmp.Add(ui, halfDelta)
		tmp.Div(tmp, delta)
		tmp.Mod(tmp, tBig)
		m[i] = tmp.Uint64()
	}

	return dec.encoder.DecodeUint(m)
}

// phase computes B + A*S mod Q_q and returns the coefficients center-lifted
// to (-Q_q/2, Q_q/2].
func (dec *Decryptor) phase(ct *Ciphertext) []*big.Int {

	ringQ := dec.params.RingQ()

	u := ringQ.MulPolyNaiveNew(ct.A, dec.sk.Value)
	ringQ.Add(u, ct.B, u)

	return ringQ.PolyToBigintCentered(u)
}
