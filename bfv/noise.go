package bfv

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NoiseBudget returns an estimate, in bits, of the remaining noise budget
// of the ciphertext: the gap between the largest residual noise coefficient
// and the decryption threshold Delta/2. A non-positive budget means the
// ciphertext is no longer guaranteed to decrypt correctly.
func (dec *Decryptor) NoiseBudget(ct *Ciphertext) float64 {

	u := dec.phase(ct)

	delta := dec.params.Delta()
	halfDelta := new(big.Int).Rsh(delta, 1)

	maxNoise := new(big.Int)
	tmp := new(big.Int)
	for _, ui := range u {
		// Residual noise: distance of u to the nearest multiple of Delta.
		tmp.Add(ui, halfDelta)
		tmp.Div(tmp, delta)
		tmp.Mul(tmp, delta)
		tmp.Sub(ui, tmp)
		if tmp.CmpAbs(maxNoise) > 0 {
			maxNoise.Abs(tmp)
		}
	}

	if maxNoise.Sign() == 0 {
		maxNoise.SetUint64(1)
	}

	return log2Big(halfDelta) - log2Big(maxNoise)
}

// log2Big returns log2(x) for a positive arbitrary-precision integer.
func log2Big(x *big.Int) float64 {
	ln := bigfloat.Log(new(big.Float).SetInt(x))
	ln2 := bigfloat.Log(big.NewFloat(2))
	out, _ := new(big.Float).Quo(ln, ln2).Float64()
	return out
}
